package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/booking"
	"github.com/metinatakli/cinema-booking/internal/catalog"
	"github.com/metinatakli/cinema-booking/internal/inventory"
	"github.com/metinatakli/cinema-booking/internal/mocks"
	"github.com/metinatakli/cinema-booking/internal/repository"
	"github.com/metinatakli/cinema-booking/internal/validator"
)

// fixedNow is 09:00 local time, an hour and a half before the first screening.
var fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

type testApplication struct {
	*Application
	store   *repository.MemoryBookingStore
	gateway *mocks.MockReceiptGateway
}

// newTestApplication wires the real catalog, inventory and orchestrator over an
// in-memory store. booked seeds the persisted record before the inventory loads.
func newTestApplication(t *testing.T, booked string) *testApplication {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := repository.NewMemoryBookingStore()
	if booked != "" {
		if _, err := store.Write(ctx, inventory.DefaultKey, []byte(booked), 0); err != nil {
			t.Fatal(err)
		}
	}

	inv, err := inventory.Load(ctx, store, inventory.DefaultKey, logger)
	if err != nil {
		t.Fatal(err)
	}

	gateway := new(mocks.MockReceiptGateway)
	cat := catalog.Default()

	orchestrator, err := booking.NewOrchestrator(cat, inv, gateway, booking.NewRegistry(10*time.Minute), logger)
	if err != nil {
		t.Fatal(err)
	}

	app := NewApp(Config{Env: "test"}, logger, validator.NewValidator(), scs.New(), cat, inv, orchestrator)
	app.now = func() time.Time { return fixedNow }

	return &testApplication{Application: app, store: store, gateway: gateway}
}

// newSession starts a session the way ensureSession does and returns its context.
// Requests sharing the context belong to the same visitor.
func newSession(t *testing.T, app *testApplication) context.Context {
	t.Helper()

	ctx, err := app.sessionManager.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, sessionKeyGuest, true)

	if _, _, err := app.sessionManager.Commit(ctx); err != nil {
		t.Fatalf("Failed to commit session: %v", err)
	}

	return ctx
}

func executeRequest(t *testing.T, ctx context.Context, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	if ctx != nil {
		r = r.WithContext(ctx)
	}
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if w.Code != tt.wantStatus {
		t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
	}

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return v
}
