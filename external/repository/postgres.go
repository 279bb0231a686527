package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/starfieldlab/cosmobot/internal/repository"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetVerified(ctx context.Context, userID string) (bool, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT 1 FROM verified WHERE user_id = $1`, userID)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) PutVerified(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO verified (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`, userID)
	return err
}

func (r *PostgresRepository) ListVerified(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM verified`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) GetStory(ctx context.Context, userID string) (*repository.StoryRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT user_id, enabled, progression FROM story WHERE user_id = $1`, userID)
	var rec repository.StoryRecord
	if err := row.Scan(&rec.UserID, &rec.Enabled, &rec.Progression); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresRepository) EnableStory(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO story (user_id, enabled, progression) VALUES ($1, TRUE, 1)
		 ON CONFLICT (user_id) DO UPDATE SET enabled = TRUE`, userID)
	return err
}

func (r *PostgresRepository) SetProgression(ctx context.Context, userID string, progression int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE story SET progression = $2 WHERE user_id = $1`, userID, progression)
	return err
}
