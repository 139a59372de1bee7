// Package booking drives the booking dialog: seat and concession picking, confirm,
// seat commit and the receipt hand-off.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-booking/internal/catalog"
	"github.com/metinatakli/cinema-booking/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/metinatakli/cinema-booking/internal/booking"

type SeatInventory interface {
	IsBooked(sessionKey string, id domain.SeatID) bool
	Commit(ctx context.Context, sessionKey string, seats []domain.SeatID) error
}

// View is a read-only snapshot of a dialog.
type View struct {
	State        domain.DialogState
	Movie        domain.Movie
	Showtime     string
	SessionKey   string
	Seats        []domain.SeatID
	Cart         []domain.CartItem
	Email        string
	TicketsTotal int64
	CartTotal    int64
	Total        int64
}

type Receipt struct {
	Status  domain.ReceiptStatus
	Message string
}

// Confirmation describes a committed booking. The receipt outcome is informational.
type Confirmation struct {
	BookingID  string
	SessionKey string
	Seats      []domain.SeatID
	Total      int64
	Receipt    Receipt
}

type Orchestrator struct {
	catalog   *catalog.Catalog
	inventory SeatInventory
	gateway   domain.ReceiptGateway
	dialogs   *Registry
	logger    *slog.Logger
	newID     func() string

	confirmations  metric.Int64Counter
	commitFailures metric.Int64Counter
}

func NewOrchestrator(
	cat *catalog.Catalog,
	inventory SeatInventory,
	gateway domain.ReceiptGateway,
	dialogs *Registry,
	logger *slog.Logger) (*Orchestrator, error) {

	meter := otel.Meter(meterName)

	confirmations, err := meter.Int64Counter("booking.confirmations",
		metric.WithDescription("Committed bookings by receipt outcome"))
	if err != nil {
		return nil, err
	}

	commitFailures, err := meter.Int64Counter("booking.commit.failures",
		metric.WithDescription("Confirms whose seat commit failed"))
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		catalog:        cat,
		inventory:      inventory,
		gateway:        gateway,
		dialogs:        dialogs,
		logger:         logger,
		newID:          uuid.NewString,
		confirmations:  confirmations,
		commitFailures: commitFailures,
	}, nil
}

// Open starts a fresh dialog for the screening, discarding any previous selection.
func (o *Orchestrator) Open(dialogID string, movieID int, showtime string) (View, error) {
	movie, err := o.catalog.Screening(movieID, showtime)
	if err != nil {
		return View{}, err
	}

	e := o.dialogs.acquire(dialogID, true)
	defer e.mu.Unlock()

	if e.dialog != nil && e.dialog.State == domain.DialogSubmitting {
		return View{}, domain.ErrBookingInProgress
	}

	e.dialog = domain.NewDialog(movie, showtime)

	return viewOf(e.dialog), nil
}

// Close abandons the dialog. Closing a session without a dialog is a no-op.
func (o *Orchestrator) Close(dialogID string) error {
	e := o.dialogs.acquire(dialogID, false)
	if e == nil {
		return nil
	}
	defer e.mu.Unlock()

	if e.dialog != nil && e.dialog.State == domain.DialogSubmitting {
		return domain.ErrBookingInProgress
	}

	o.dialogs.remove(dialogID, e)

	return nil
}

// View reports the dialog, including one that is being confirmed.
func (o *Orchestrator) View(dialogID string) (View, error) {
	e := o.dialogs.acquire(dialogID, false)
	if e == nil {
		return View{}, domain.ErrDialogNotOpen
	}
	defer e.mu.Unlock()

	if e.dialog == nil {
		return View{}, domain.ErrDialogNotOpen
	}

	return viewOf(e.dialog), nil
}

// ToggleSeat flips a seat in the selection. Seats already booked for the screening
// are refused and leave the selection untouched.
func (o *Orchestrator) ToggleSeat(dialogID string, seat domain.SeatID) (View, error) {
	return o.update(dialogID, func(d *domain.Dialog) error {
		booked := seat.Valid() && o.inventory.IsBooked(d.SessionKey(), seat)

		if _, err := d.Selection.Toggle(seat, booked); err != nil {
			return err
		}

		if booked {
			return fmt.Errorf("%w: %d", domain.ErrSeatAlreadyBooked, seat)
		}

		return nil
	})
}

func (o *Orchestrator) AddItem(dialogID, name string) (View, error) {
	item, err := o.catalog.MenuItem(name)
	if err != nil {
		return View{}, err
	}

	return o.update(dialogID, func(d *domain.Dialog) error {
		d.Cart.Add(item)
		return nil
	})
}

func (o *Orchestrator) RemoveItem(dialogID, name string) (View, error) {
	return o.update(dialogID, func(d *domain.Dialog) error {
		d.Cart.Remove(name)
		return nil
	})
}

func (o *Orchestrator) SetEmail(dialogID, email string) (View, error) {
	return o.update(dialogID, func(d *domain.Dialog) error {
		d.Email = email
		return nil
	})
}

// Confirm commits the selected seats and then requests a receipt. Validation
// failures leave the dialog open with nothing persisted or sent. A failed commit
// returns the dialog to Open with booked seats pruned from the selection. Once the
// commit succeeds the booking stands whatever the receipt outcome, and the dialog
// is closed.
func (o *Orchestrator) Confirm(ctx context.Context, dialogID string) (Confirmation, error) {
	e := o.dialogs.acquire(dialogID, false)
	if e == nil {
		return Confirmation{}, domain.ErrDialogNotOpen
	}

	d := e.dialog

	switch {
	case d == nil:
		e.mu.Unlock()
		return Confirmation{}, domain.ErrDialogNotOpen
	case d.State == domain.DialogSubmitting:
		e.mu.Unlock()
		o.logger.WarnContext(ctx, "duplicate confirm ignored", "dialog_state", d.State.String())
		return Confirmation{}, domain.ErrBookingInProgress
	}

	if err := d.Validate(); err != nil {
		e.mu.Unlock()
		return Confirmation{}, err
	}

	d.State = domain.DialogSubmitting

	sessionKey := d.SessionKey()
	seats := d.Selection.Seats()
	total := d.Total()
	req := d.Request()

	e.mu.Unlock()

	err := o.inventory.Commit(ctx, sessionKey, seats)
	if err != nil {
		o.commitFailures.Add(ctx, 1)
		o.reopen(e, sessionKey)

		return Confirmation{}, fmt.Errorf("commit seats: %w", err)
	}

	bookingID := o.newID()

	o.logger.InfoContext(ctx, "booking committed",
		"booking_id", bookingID, "session_key", sessionKey, "seats", seats, "total", total)

	receipt := o.sendReceipt(ctx, bookingID, req)

	o.confirmations.Add(ctx, 1, metric.WithAttributes(attribute.String("receipt", string(receipt.Status))))

	e.mu.Lock()
	d.Reset()
	d.State = domain.DialogIdle
	o.dialogs.remove(dialogID, e)
	e.mu.Unlock()

	return Confirmation{
		BookingID:  bookingID,
		SessionKey: sessionKey,
		Seats:      seats,
		Total:      total,
		Receipt:    receipt,
	}, nil
}

func (o *Orchestrator) reopen(e *entry, sessionKey string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := e.dialog
	d.State = domain.DialogOpen

	for _, seat := range d.Selection.Seats() {
		if o.inventory.IsBooked(sessionKey, seat) {
			d.Selection.Remove(seat)
		}
	}
}

func (o *Orchestrator) sendReceipt(ctx context.Context, bookingID string, req domain.BookingRequest) Receipt {
	err := o.gateway.SendReceipt(ctx, bookingID, req)
	if err == nil {
		return Receipt{
			Status:  domain.ReceiptDelivered,
			Message: fmt.Sprintf("Booking confirmed! The receipt was sent to %s.", req.Email),
		}
	}

	var rejected *domain.ReceiptRejectedError
	if errors.As(err, &rejected) {
		reason := rejected.Reason
		if reason == "" {
			reason = "unknown error"
		}

		o.logger.WarnContext(ctx, "receipt rejected", "booking_id", bookingID, "status", rejected.StatusCode, "reason", reason)

		return Receipt{
			Status:  domain.ReceiptRejected,
			Message: fmt.Sprintf("Booking confirmed! The receipt could not be sent: %s.", reason),
		}
	}

	o.logger.ErrorContext(ctx, "receipt delivery failed", "booking_id", bookingID, "error", err)

	return Receipt{
		Status:  domain.ReceiptFailed,
		Message: fmt.Sprintf("Booking confirmed! The receipt could not be delivered: %v.", err),
	}
}

// update runs fn against an open dialog and returns the resulting view.
func (o *Orchestrator) update(dialogID string, fn func(d *domain.Dialog) error) (View, error) {
	e := o.dialogs.acquire(dialogID, false)
	if e == nil {
		return View{}, domain.ErrDialogNotOpen
	}
	defer e.mu.Unlock()

	d := e.dialog
	if d == nil || d.State == domain.DialogIdle {
		return View{}, domain.ErrDialogNotOpen
	}

	if d.State == domain.DialogSubmitting {
		return View{}, domain.ErrBookingInProgress
	}

	if err := fn(d); err != nil {
		return viewOf(d), err
	}

	return viewOf(d), nil
}

func viewOf(d *domain.Dialog) View {
	return View{
		State:        d.State,
		Movie:        d.Movie,
		Showtime:     d.Showtime,
		SessionKey:   d.SessionKey(),
		Seats:        d.Selection.Seats(),
		Cart:         d.Cart.Items(),
		Email:        d.Email,
		TicketsTotal: d.TicketsTotal(),
		CartTotal:    d.Cart.Total(),
		Total:        d.Total(),
	}
}
