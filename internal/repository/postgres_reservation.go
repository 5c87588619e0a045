package repository

import (
	"context"
	"errors"

	"github.com/curtainup/theater-reservation-system/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Create inserts the reservation and every ticket inside one transaction.
// The UNIQUE (performance_id, seat_row, seat_number) constraint on tickets
// is the arbiter between concurrent bookings: when two requests race for
// the same seat, exactly one insert succeeds and the loser's whole batch
// rolls back with ErrSeatAlreadyTaken.
func (p *PostgresReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `INSERT INTO reservations (user_id, booking_ref)
			VALUES ($1, $2)
			RETURNING id, created_at`

		err := tx.QueryRow(ctx, query, reservation.UserID, reservation.BookingRef).
			Scan(&reservation.ID, &reservation.CreatedAt)
		if err != nil {
			return err
		}

		for i := range reservation.Tickets {
			ticket := &reservation.Tickets[i]
			ticket.ReservationID = reservation.ID

			err = p.insertTicket(ctx, tx, ticket)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// AddTicket reuses the user's existing reservation when there is one,
// creating it otherwise, then inserts the single ticket. All of it runs in
// one transaction with the same conflict mapping as Create.
func (p *PostgresReservationRepository) AddTicket(
	ctx context.Context,
	reservation *domain.Reservation,
	ticket *domain.Ticket) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `SELECT id, booking_ref, created_at
			FROM reservations
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT 1`

		err := tx.QueryRow(ctx, query, reservation.UserID).
			Scan(&reservation.ID, &reservation.BookingRef, &reservation.CreatedAt)

		if errors.Is(err, pgx.ErrNoRows) {
			query = `INSERT INTO reservations (user_id, booking_ref)
				VALUES ($1, $2)
				RETURNING id, created_at`

			err = tx.QueryRow(ctx, query, reservation.UserID, reservation.BookingRef).
				Scan(&reservation.ID, &reservation.CreatedAt)
		}

		if err != nil {
			return err
		}

		ticket.ReservationID = reservation.ID

		return p.insertTicket(ctx, tx, ticket)
	})
}

func (p *PostgresReservationRepository) insertTicket(ctx context.Context, tx pgx.Tx, ticket *domain.Ticket) error {
	query := `INSERT INTO tickets (performance_id, reservation_id, seat_row, seat_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := tx.QueryRow(ctx, query,
		ticket.PerformanceID,
		ticket.ReservationID,
		ticket.Row,
		ticket.Seat).Scan(&ticket.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatAlreadyTaken
		}

		return err
	}

	return nil
}

func (p *PostgresReservationRepository) GetById(ctx context.Context, id int) (*domain.Reservation, error) {
	query := `SELECT id, user_id, booking_ref, created_at
		FROM reservations
		WHERE id = $1`

	var reservation domain.Reservation

	err := p.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.BookingRef,
		&reservation.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	tickets, err := p.retrieveTickets(ctx, []int{reservation.ID})
	if err != nil {
		return nil, err
	}

	reservation.Tickets = tickets[reservation.ID]
	if reservation.Tickets == nil {
		reservation.Tickets = make([]domain.Ticket, 0)
	}

	return &reservation, nil
}

func (p *PostgresReservationRepository) GetAllByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.Reservation, *domain.Metadata, error) {

	query := `SELECT count(*) OVER(), id, user_id, booking_ref, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	reservations := make([]domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation

		err = rows.Scan(
			&totalRecords,
			&reservation.ID,
			&reservation.UserID,
			&reservation.BookingRef,
			&reservation.CreatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	ids := make([]int, len(reservations))
	for i := range reservations {
		ids[i] = reservations[i].ID
	}

	tickets, err := p.retrieveTickets(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	for i := range reservations {
		reservations[i].Tickets = tickets[reservations[i].ID]
		if reservations[i].Tickets == nil {
			reservations[i].Tickets = make([]domain.Ticket, 0)
		}
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return reservations, metadata, nil
}

func (p *PostgresReservationRepository) retrieveTickets(
	ctx context.Context,
	reservationIds []int) (map[int][]domain.Ticket, error) {

	if len(reservationIds) == 0 {
		return map[int][]domain.Ticket{}, nil
	}

	query := `SELECT id, performance_id, reservation_id, seat_row, seat_number
		FROM tickets
		WHERE reservation_id = ANY($1)
		ORDER BY seat_row, seat_number`

	rows, err := p.db.Query(ctx, query, reservationIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make(map[int][]domain.Ticket)

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(
			&ticket.ID,
			&ticket.PerformanceID,
			&ticket.ReservationID,
			&ticket.Row,
			&ticket.Seat,
		)

		if err != nil {
			return nil, err
		}

		tickets[ticket.ReservationID] = append(tickets[ticket.ReservationID], ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
