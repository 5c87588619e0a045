package repository

import (
	"context"
	"errors"

	"github.com/curtainup/theater-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPlayRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPlayRepository(db *pgxpool.Pool) *PostgresPlayRepository {
	return &PostgresPlayRepository{
		db: db,
	}
}

func (p *PostgresPlayRepository) Create(ctx context.Context, play *domain.Play) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `INSERT INTO plays (title, description, duration)
			VALUES ($1, $2, $3)
			RETURNING id`

		err := tx.QueryRow(ctx, query, play.Title, play.Description, play.Duration).Scan(&play.ID)
		if err != nil {
			return err
		}

		return p.replaceLinks(ctx, tx, play)
	})
}

func (p *PostgresPlayRepository) Update(ctx context.Context, play *domain.Play) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `UPDATE plays
			SET title = $1, description = $2, duration = $3
			WHERE id = $4`

		tag, err := tx.Exec(ctx, query, play.Title, play.Description, play.Duration, play.ID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `DELETE FROM play_genres WHERE play_id = $1`, play.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM play_actors WHERE play_id = $1`, play.ID)
		if err != nil {
			return err
		}

		return p.replaceLinks(ctx, tx, play)
	})
}

func (p *PostgresPlayRepository) replaceLinks(ctx context.Context, tx pgx.Tx, play *domain.Play) error {
	for _, genre := range play.Genres {
		_, err := tx.Exec(ctx,
			`INSERT INTO play_genres (play_id, genre_id) VALUES ($1, $2)`,
			play.ID, genre.ID)
		if err != nil {
			return err
		}
	}

	for _, actor := range play.Actors {
		_, err := tx.Exec(ctx,
			`INSERT INTO play_actors (play_id, actor_id) VALUES ($1, $2)`,
			play.ID, actor.ID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *PostgresPlayRepository) GetById(ctx context.Context, id int) (*domain.Play, error) {
	query := `SELECT id, title, description, duration
		FROM plays
		WHERE id = $1`

	var play domain.Play

	err := p.db.QueryRow(ctx, query, id).Scan(&play.ID, &play.Title, &play.Description, &play.Duration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	err = p.loadLinks(ctx, []*domain.Play{&play})
	if err != nil {
		return nil, err
	}

	return &play, nil
}

func (p *PostgresPlayRepository) GetAll(
	ctx context.Context,
	filters domain.PlayFilters) ([]domain.Play, *domain.Metadata, error) {

	query := `
		SELECT count(*) OVER(), pl.id, pl.title, pl.description, pl.duration
		FROM plays pl
		WHERE ($1 = '' OR pl.title ILIKE '%' || $1 || '%')
			AND ($2 = '' OR EXISTS (
				SELECT 1 FROM play_genres pg
				JOIN genres g ON pg.genre_id = g.id
				WHERE pg.play_id = pl.id AND g.name ILIKE '%' || $2 || '%'))
			AND ($3 = '' OR EXISTS (
				SELECT 1 FROM play_actors pa
				JOIN actors a ON pa.actor_id = a.id
				WHERE pa.play_id = pl.id
					AND (a.first_name ILIKE '%' || $3 || '%' OR a.last_name ILIKE '%' || $3 || '%')))
		ORDER BY pl.title
		LIMIT $4 OFFSET $5`

	rows, err := p.db.Query(ctx, query,
		filters.Title, filters.Genre, filters.Actor, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	plays := make([]domain.Play, 0)

	for rows.Next() {
		var play domain.Play

		err = rows.Scan(&totalRecords, &play.ID, &play.Title, &play.Description, &play.Duration)
		if err != nil {
			return nil, nil, err
		}

		plays = append(plays, play)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	playRefs := make([]*domain.Play, len(plays))
	for i := range plays {
		playRefs[i] = &plays[i]
	}

	err = p.loadLinks(ctx, playRefs)
	if err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return plays, metadata, nil
}

// loadLinks populates genres and actors for the given plays in two queries.
func (p *PostgresPlayRepository) loadLinks(ctx context.Context, plays []*domain.Play) error {
	if len(plays) == 0 {
		return nil
	}

	byId := make(map[int]*domain.Play, len(plays))
	ids := make([]int, len(plays))

	for i, play := range plays {
		play.Genres = make([]domain.Genre, 0)
		play.Actors = make([]domain.Actor, 0)
		byId[play.ID] = play
		ids[i] = play.ID
	}

	genreRows, err := p.db.Query(ctx, `
		SELECT pg.play_id, g.id, g.name
		FROM play_genres pg
		JOIN genres g ON pg.genre_id = g.id
		WHERE pg.play_id = ANY($1)
		ORDER BY g.name`, ids)
	if err != nil {
		return err
	}
	defer genreRows.Close()

	for genreRows.Next() {
		var playId int
		var genre domain.Genre

		err = genreRows.Scan(&playId, &genre.ID, &genre.Name)
		if err != nil {
			return err
		}

		byId[playId].Genres = append(byId[playId].Genres, genre)
	}

	if err = genreRows.Err(); err != nil {
		return err
	}

	actorRows, err := p.db.Query(ctx, `
		SELECT pa.play_id, a.id, a.first_name, a.last_name
		FROM play_actors pa
		JOIN actors a ON pa.actor_id = a.id
		WHERE pa.play_id = ANY($1)
		ORDER BY a.last_name, a.first_name`, ids)
	if err != nil {
		return err
	}
	defer actorRows.Close()

	for actorRows.Next() {
		var playId int
		var actor domain.Actor

		err = actorRows.Scan(&playId, &actor.ID, &actor.FirstName, &actor.LastName)
		if err != nil {
			return err
		}

		byId[playId].Actors = append(byId[playId].Actors, actor)
	}

	return actorRows.Err()
}
