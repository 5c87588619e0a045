package domain

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("user already exists with this email")
	ErrSeatAlreadyTaken = errors.New("seat is already taken for this performance")
	ErrEmptyReservation = errors.New("a reservation must contain at least one ticket")
)
