package mocks

import (
	"context"

	"github.com/curtainup/theater-reservation-system/internal/domain"
)

type MockTicketRepo struct {
	domain.TicketRepository
	GetAllByUserIdFunc func(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.TicketWithPerformance, *domain.Metadata, error)
}

func (m *MockTicketRepo) GetAllByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.TicketWithPerformance, *domain.Metadata, error) {

	return m.GetAllByUserIdFunc(ctx, userID, pagination)
}
