package integration_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/metinatakli/cinema-booking/internal/app"
	"github.com/metinatakli/cinema-booking/internal/booking"
	"github.com/metinatakli/cinema-booking/internal/catalog"
	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/metinatakli/cinema-booking/internal/inventory"
	"github.com/metinatakli/cinema-booking/internal/notify"
	appvalidator "github.com/metinatakli/cinema-booking/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App       *app.Application
	Inventory *inventory.Inventory
	Receipts  *ReceiptService
}

// ReceiptService stands in for the external receipt endpoint and records what it was sent.
type ReceiptService struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []ReceivedReceipt
	reject   string
}

type ReceivedReceipt struct {
	IdempotencyKey string
	Request        domain.BookingRequest
}

func newReceiptService() *ReceiptService {
	rs := &ReceiptService{}

	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rs.mu.Lock()
		rs.requests = append(rs.requests, ReceivedReceipt{IdempotencyKey: r.Header.Get("Idempotency-Key"), Request: req})
		reject := rs.reject
		rs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if reject != "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": reject})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "sent", "email": req.Email, "total": req.Total()})
	}))

	return rs
}

func (rs *ReceiptService) Reject(reason string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.reject = reason
}

func (rs *ReceiptService) Received() []ReceivedReceipt {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]ReceivedReceipt(nil), rs.requests...)
}

func (rs *ReceiptService) Reset() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.requests = nil
	rs.reject = ""
}

// newTestApp assembles the service the way the binary does, over the given store.
// Sessions live in Redis when a client is given.
func newTestApp(cfg app.Config, store domain.BookingStore, redisClient *redis.Client) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	receipts := newReceiptService()

	inv, err := inventory.Load(context.Background(), store, cfg.Store.Key, logger)
	if err != nil {
		receipts.Server.Close()
		return nil, err
	}

	cat := catalog.Default()
	gateway := notify.NewHTTPGateway(receipts.Server.URL, 5*time.Second)

	orchestrator, err := booking.NewOrchestrator(cat, inv, gateway, booking.NewRegistry(cfg.DialogTTL), logger)
	if err != nil {
		receipts.Server.Close()
		return nil, err
	}

	application := app.NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		app.NewSessionManager(redisClient, cfg.DialogTTL),
		cat,
		inv,
		orchestrator,
	)

	return &TestApp{
		App:       application,
		Inventory: inv,
		Receipts:  receipts,
	}, nil
}
