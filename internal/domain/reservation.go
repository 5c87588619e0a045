package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reservation is an atomic group of tickets booked together by one user.
// Once committed it is an immutable fact; there is no pending state.
type Reservation struct {
	ID         int
	UserID     int
	BookingRef string
	CreatedAt  time.Time
	Tickets    []Ticket
}

// Ticket claims one seat of one performance. Tickets are only ever created
// inside a reservation's transaction and never updated in place.
type Ticket struct {
	ID            int
	PerformanceID int
	ReservationID int
	Row           int
	Seat          int
}

// TicketRequest is a caller's claim on a seat, before validation.
type TicketRequest struct {
	PerformanceID int
	Row           int
	Seat          int
}

// TicketWithPerformance is the ticket listing shape.
type TicketWithPerformance struct {
	Ticket
	Performance PerformanceSummary
}

type ReservationRepository interface {
	// Create persists the reservation and all of its tickets in a single
	// transaction. A seat uniqueness violation aborts the transaction and
	// surfaces as ErrSeatAlreadyTaken.
	Create(ctx context.Context, reservation *Reservation) error

	// AddTicket attaches a single ticket to the user's reservation,
	// creating the reservation first if the user has none. Same
	// transactional and uniqueness semantics as Create.
	AddTicket(ctx context.Context, reservation *Reservation, ticket *Ticket) error

	GetById(ctx context.Context, id int) (*Reservation, error)
	GetAllByUserId(ctx context.Context, userID int, pagination Pagination) ([]Reservation, *Metadata, error)
}

type TicketRepository interface {
	GetAllByUserId(ctx context.Context, userID int, pagination Pagination) ([]TicketWithPerformance, *Metadata, error)
}

// ReservationManager orchestrates ticket booking. All seat validation and
// all ticket creation go through it; the storage layer's unique constraint
// on (performance, row, seat) is the sole arbiter between concurrent
// writers, so the manager never takes application-level locks.
type ReservationManager struct {
	performances PerformanceRepository
	reservations ReservationRepository
}

func NewReservationManager(
	performances PerformanceRepository,
	reservations ReservationRepository) *ReservationManager {

	return &ReservationManager{
		performances: performances,
		reservations: reservations,
	}
}

// CreateReservation books all requested seats atomically. Any invalid seat
// aborts the whole batch before anything is written; a seat conflict during
// the transaction rolls the whole batch back.
func (m *ReservationManager) CreateReservation(
	ctx context.Context,
	userID int,
	requests []TicketRequest) (*Reservation, error) {

	if len(requests) == 0 {
		return nil, ErrEmptyReservation
	}

	err := m.validateRequests(ctx, requests, true)
	if err != nil {
		return nil, err
	}

	reservation := &Reservation{
		UserID:     userID,
		BookingRef: uuid.NewString(),
		Tickets:    make([]Ticket, len(requests)),
	}

	for i, req := range requests {
		reservation.Tickets[i] = Ticket{
			PerformanceID: req.PerformanceID,
			Row:           req.Row,
			Seat:          req.Seat,
		}
	}

	err = m.reservations.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// AddTicket is the single-ticket path: it reuses the user's reservation if
// one exists, creating it otherwise. Validation and uniqueness rules are
// identical to the batch path; only the one-reservation-per-request
// grouping guarantee is narrower.
func (m *ReservationManager) AddTicket(
	ctx context.Context,
	userID int,
	request TicketRequest) (*Reservation, *Ticket, error) {

	err := m.validateRequests(ctx, []TicketRequest{request}, false)
	if err != nil {
		return nil, nil, err
	}

	reservation := &Reservation{
		UserID:     userID,
		BookingRef: uuid.NewString(),
	}

	ticket := &Ticket{
		PerformanceID: request.PerformanceID,
		Row:           request.Row,
		Seat:          request.Seat,
	}

	err = m.reservations.AddTicket(ctx, reservation, ticket)
	if err != nil {
		return nil, nil, err
	}

	return reservation, ticket, nil
}

// validateRequests checks every requested seat against the hall of its
// performance and accumulates all failures before reporting, so a caller
// sees every offending field in one round trip. Performance lookups are
// deduplicated across the batch.
func (m *ReservationManager) validateRequests(
	ctx context.Context,
	requests []TicketRequest,
	indexed bool) error {

	performances := make(map[int]*Performance)
	errs := ValidationErrors{}

	for i, req := range requests {
		performance, ok := performances[req.PerformanceID]
		if !ok {
			var err error

			performance, err = m.performances.GetById(ctx, req.PerformanceID)
			if err != nil {
				return fmt.Errorf("performance %d: %w", req.PerformanceID, err)
			}

			performances[req.PerformanceID] = performance
		}

		for field, message := range ValidateTicketSeat(req.Row, req.Seat, performance.Hall) {
			if indexed {
				field = fmt.Sprintf("tickets[%d].%s", i, field)
			}
			errs[field] = message
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
