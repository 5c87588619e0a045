package repository

import (
	"context"
	"errors"

	"github.com/curtainup/theater-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPerformanceRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPerformanceRepository(db *pgxpool.Pool) *PostgresPerformanceRepository {
	return &PostgresPerformanceRepository{
		db: db,
	}
}

func (p *PostgresPerformanceRepository) Create(ctx context.Context, performance *domain.Performance) error {
	query := `INSERT INTO performances (play_id, theater_hall_id, show_time)
		VALUES ($1, $2, $3)
		RETURNING id`

	return p.db.QueryRow(ctx, query,
		performance.PlayID, performance.Hall.ID, performance.ShowTime).Scan(&performance.ID)
}

func (p *PostgresPerformanceRepository) Update(ctx context.Context, performance *domain.Performance) error {
	query := `UPDATE performances
		SET play_id = $1, theater_hall_id = $2, show_time = $3
		WHERE id = $4`

	tag, err := p.db.Exec(ctx, query,
		performance.PlayID, performance.Hall.ID, performance.ShowTime, performance.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresPerformanceRepository) GetById(ctx context.Context, id int) (*domain.Performance, error) {
	query := `
		SELECT p.id, p.play_id, p.show_time, h.id, h.name, h.rows, h.seats_in_row
		FROM performances p
		JOIN theater_halls h ON p.theater_hall_id = h.id
		WHERE p.id = $1`

	var performance domain.Performance

	err := p.db.QueryRow(ctx, query, id).Scan(
		&performance.ID,
		&performance.PlayID,
		&performance.ShowTime,
		&performance.Hall.ID,
		&performance.Hall.Name,
		&performance.Hall.Rows,
		&performance.Hall.SeatsInRow,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &performance, nil
}

// GetDetailById loads a performance together with its live ticket count and
// the occupied seats. Both are read fresh from the tickets table on every
// call; availability is never cached.
func (p *PostgresPerformanceRepository) GetDetailById(
	ctx context.Context,
	id int) (*domain.PerformanceDetail, error) {

	query := `
		SELECT
			p.id, p.play_id, pl.title, p.show_time,
			h.id, h.name, h.rows, h.seats_in_row,
			(SELECT count(*) FROM tickets t WHERE t.performance_id = p.id)
		FROM performances p
		JOIN plays pl ON p.play_id = pl.id
		JOIN theater_halls h ON p.theater_hall_id = h.id
		WHERE p.id = $1`

	var detail domain.PerformanceDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.PlayID,
		&detail.PlayTitle,
		&detail.ShowTime,
		&detail.Hall.ID,
		&detail.Hall.Name,
		&detail.Hall.Rows,
		&detail.Hall.SeatsInRow,
		&detail.TicketsSold,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveTakenSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	detail.TakenSeats = seats

	return &detail, nil
}

func (p *PostgresPerformanceRepository) retrieveTakenSeats(
	ctx context.Context,
	performanceId int) ([]domain.SeatRef, error) {

	query := `
		SELECT seat_row, seat_number
		FROM tickets
		WHERE performance_id = $1
		ORDER BY seat_row, seat_number`

	rows, err := p.db.Query(ctx, query, performanceId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SeatRef, 0)

	for rows.Next() {
		var seat domain.SeatRef

		err = rows.Scan(&seat.Row, &seat.Seat)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresPerformanceRepository) GetAll(
	ctx context.Context,
	filters domain.PerformanceFilters) ([]domain.PerformanceSummary, *domain.Metadata, error) {

	query := `
		SELECT
			count(*) OVER(),
			p.id, pl.title, h.name,
			h.rows * h.seats_in_row,
			(SELECT count(*) FROM tickets t WHERE t.performance_id = p.id),
			p.show_time
		FROM performances p
		JOIN plays pl ON p.play_id = pl.id
		JOIN theater_halls h ON p.theater_hall_id = h.id
		WHERE ($1::date IS NULL OR (p.show_time AT TIME ZONE 'UTC')::date = $1::date)
			AND ($2 = 0 OR p.play_id = $2)
		ORDER BY p.show_time DESC
		LIMIT $3 OFFSET $4`

	rows, err := p.db.Query(ctx, query,
		filters.Date, filters.PlayID, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	performances := make([]domain.PerformanceSummary, 0)

	for rows.Next() {
		var summary domain.PerformanceSummary

		err = rows.Scan(
			&totalRecords,
			&summary.ID,
			&summary.PlayTitle,
			&summary.HallName,
			&summary.HallCapacity,
			&summary.TicketsSold,
			&summary.ShowTime,
		)

		if err != nil {
			return nil, nil, err
		}

		performances = append(performances, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return performances, metadata, nil
}
