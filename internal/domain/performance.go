package domain

import (
	"context"
	"time"
)

type Performance struct {
	ID       int
	PlayID   int
	Hall     TheaterHall
	ShowTime time.Time
}

// PerformanceSummary is the listing shape. TicketsSold is a live count
// taken at query time, never a stored column, so availability always
// reflects tickets committed by concurrent writers.
type PerformanceSummary struct {
	ID           int
	PlayTitle    string
	HallName     string
	HallCapacity int
	TicketsSold  int
	ShowTime     time.Time
}

// TicketsAvailable can go negative only if the seat uniqueness constraint
// was bypassed; callers treat that as an invariant violation, not a value
// to clamp.
func (p PerformanceSummary) TicketsAvailable() int {
	return p.HallCapacity - p.TicketsSold
}

type PerformanceDetail struct {
	Performance
	PlayTitle   string
	TicketsSold int
	TakenSeats  []SeatRef
}

func (p PerformanceDetail) TicketsAvailable() int {
	return p.Hall.Capacity() - p.TicketsSold
}

// SeatRef identifies one occupied seat of a performance.
type SeatRef struct {
	Row  int
	Seat int
}

// GroupTakenSeats folds occupied seats into a row -> seats mapping.
// Seats must arrive ordered by (row, seat); the per-row slices keep
// that order.
func GroupTakenSeats(seats []SeatRef) map[int][]int {
	taken := make(map[int][]int)
	for _, s := range seats {
		taken[s.Row] = append(taken[s.Row], s.Seat)
	}

	return taken
}

// PerformanceFilters narrows performance listings by calendar day of the
// show time and/or play.
type PerformanceFilters struct {
	Date   *time.Time
	PlayID int
	Pagination
}

type PerformanceRepository interface {
	Create(ctx context.Context, performance *Performance) error
	Update(ctx context.Context, performance *Performance) error
	GetById(ctx context.Context, id int) (*Performance, error)
	GetDetailById(ctx context.Context, id int) (*PerformanceDetail, error)
	GetAll(ctx context.Context, filters PerformanceFilters) ([]PerformanceSummary, *Metadata, error)
}
