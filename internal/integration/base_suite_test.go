package integration_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking/internal/app"
	"github.com/metinatakli/cinema-booking/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "cinema_booking"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
	mysqlImageName = "mysql:8.4"
	bookingsKey    = "cinema_bookings_test"
)

// BaseSuite runs the service over a Postgres-backed booked seats record with
// Redis-backed sessions.
type BaseSuite struct {
	suite.Suite
	app            *TestApp
	cfg            app.Config
	db             *pgxpool.Pool
	redisClient    *redis.Client
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		s.T().Fatalf("failed to start container: %s", err)
	}
	s.dbContainer = postgresContainer

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		s.T().Fatalf("failed to start container: %s", err)
	}
	s.cacheContainer = redisContainer

	s.cfg = app.Config{
		Port:      3000,
		Env:       "test",
		DialogTTL: 10 * time.Minute,
		Store: app.StoreConfig{
			Backend: app.StorePostgres,
			Key:     bookingsKey,
		},
		DB: app.DBConfig{
			DSN:          postgresContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
	}

	s.db, err = app.NewDatabasePool(s.cfg)
	if err != nil {
		s.T().Fatalf("cannot connect to database: %s", err)
	}

	s.redisClient, err = app.NewRedisClient(s.cfg)
	if err != nil {
		s.T().Fatalf("cannot connect to redis: %s", err)
	}
}

// SetupTest starts every test from an empty record and a fresh process.
func (s *BaseSuite) SetupTest() {
	_, err := s.db.Exec(context.Background(), "TRUNCATE booking_records")
	s.Require().NoError(err)

	s.app = s.newApp()
}

func (s *BaseSuite) TearDownTest() {
	if s.app != nil {
		s.app.Receipts.Server.Close()
	}
}

// newApp starts another service instance sharing the same database and Redis.
func (s *BaseSuite) newApp() *TestApp {
	testApp, err := newTestApp(s.cfg, repository.NewPostgresBookingStore(s.db), s.redisClient)
	s.Require().NoError(err)

	return testApp
}

func (s *BaseSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

// Run executes the scenario as the visitor holding jar's cookies and stores any
// cookie the response sets back into jar.
func (s Scenario) Run(t *testing.T, testApp *TestApp, jar *[]*http.Cookie) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers, *jar)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		if cookies := res.Cookies(); len(cookies) > 0 {
			*jar = cookies
		}

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
