package domain

import "context"

type TheaterHall struct {
	ID         int
	Name       string
	Rows       int
	SeatsInRow int
}

// Capacity is the maximum number of tickets sellable for a single
// performance held in this hall.
func (h TheaterHall) Capacity() int {
	return h.Rows * h.SeatsInRow
}

type TheaterHallRepository interface {
	Create(ctx context.Context, hall *TheaterHall) error
	GetById(ctx context.Context, id int) (*TheaterHall, error)
	GetAll(ctx context.Context) ([]TheaterHall, error)
}
