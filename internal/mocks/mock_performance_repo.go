package mocks

import (
	"context"

	"github.com/curtainup/theater-reservation-system/internal/domain"
)

type MockPerformanceRepo struct {
	domain.PerformanceRepository
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Performance, error)
	GetDetailByIdFunc func(ctx context.Context, id int) (*domain.PerformanceDetail, error)
	GetAllFunc        func(ctx context.Context, filters domain.PerformanceFilters) ([]domain.PerformanceSummary, *domain.Metadata, error)
}

func (m *MockPerformanceRepo) GetById(ctx context.Context, id int) (*domain.Performance, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockPerformanceRepo) GetDetailById(ctx context.Context, id int) (*domain.PerformanceDetail, error) {
	return m.GetDetailByIdFunc(ctx, id)
}

func (m *MockPerformanceRepo) GetAll(
	ctx context.Context,
	filters domain.PerformanceFilters) ([]domain.PerformanceSummary, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, filters)
}
