package repository

import (
	"context"
	"errors"

	"github.com/curtainup/theater-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTheaterHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheaterHallRepository(db *pgxpool.Pool) *PostgresTheaterHallRepository {
	return &PostgresTheaterHallRepository{
		db: db,
	}
}

func (p *PostgresTheaterHallRepository) Create(ctx context.Context, hall *domain.TheaterHall) error {
	query := `INSERT INTO theater_halls (name, rows, seats_in_row)
		VALUES ($1, $2, $3)
		RETURNING id`

	return p.db.QueryRow(ctx, query, hall.Name, hall.Rows, hall.SeatsInRow).Scan(&hall.ID)
}

func (p *PostgresTheaterHallRepository) GetById(ctx context.Context, id int) (*domain.TheaterHall, error) {
	query := `SELECT id, name, rows, seats_in_row
		FROM theater_halls
		WHERE id = $1`

	var hall domain.TheaterHall

	err := p.db.QueryRow(ctx, query, id).Scan(&hall.ID, &hall.Name, &hall.Rows, &hall.SeatsInRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresTheaterHallRepository) GetAll(ctx context.Context) ([]domain.TheaterHall, error) {
	query := `SELECT id, name, rows, seats_in_row
		FROM theater_halls
		ORDER BY name`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]domain.TheaterHall, 0)

	for rows.Next() {
		var hall domain.TheaterHall

		err = rows.Scan(&hall.ID, &hall.Name, &hall.Rows, &hall.SeatsInRow)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}
