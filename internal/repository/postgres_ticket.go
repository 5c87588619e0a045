package repository

import (
	"context"

	"github.com/curtainup/theater-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) GetAllByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.TicketWithPerformance, *domain.Metadata, error) {

	query := `
		SELECT
			count(*) OVER(),
			t.id, t.performance_id, t.reservation_id, t.seat_row, t.seat_number,
			pl.title, h.name,
			h.rows * h.seats_in_row,
			(SELECT count(*) FROM tickets tc WHERE tc.performance_id = p.id),
			p.show_time
		FROM tickets t
		JOIN reservations r ON t.reservation_id = r.id
		JOIN performances p ON t.performance_id = p.id
		JOIN plays pl ON p.play_id = pl.id
		JOIN theater_halls h ON p.theater_hall_id = h.id
		WHERE r.user_id = $1
		ORDER BY t.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	tickets := make([]domain.TicketWithPerformance, 0)

	for rows.Next() {
		var ticket domain.TicketWithPerformance

		err = rows.Scan(
			&totalRecords,
			&ticket.ID,
			&ticket.PerformanceID,
			&ticket.ReservationID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.Performance.PlayTitle,
			&ticket.Performance.HallName,
			&ticket.Performance.HallCapacity,
			&ticket.Performance.TicketsSold,
			&ticket.Performance.ShowTime,
		)

		if err != nil {
			return nil, nil, err
		}

		ticket.Performance.ID = ticket.PerformanceID

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return tickets, metadata, nil
}
