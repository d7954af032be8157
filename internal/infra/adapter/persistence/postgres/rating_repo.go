package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// counterColumns is the closed set of brief counters a rating adjusts.
var counterColumns = map[bool]string{
	true:  "upvote_count",
	false: "downvote_count",
}

type RatingRepo struct {
	db Querier
}

func NewRatingRepo(db Querier) repository.RatingRepository {
	return &RatingRepo{db: db}
}

// Create inserts the rating, then increments the brief counter in a second statement.
func (repo *RatingRepo) Create(ctx context.Context, in repository.RatingInput) (*entity.Rating, error) {
	const query = `
INSERT INTO brief_ratings (brief_id, session_id, is_positive, feedback)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	r := entity.Rating{
		BriefID:    in.BriefID,
		SessionID:  in.SessionID,
		IsPositive: in.IsPositive,
		Feedback:   in.Feedback,
	}
	err := queryOne(ctx, repo.db, func(s rowScanner) error {
		return s.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	}, query, in.BriefID, in.SessionID, in.IsPositive, in.Feedback)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, repository.ErrRatingExists
			case pgForeignKeyViolation:
				return nil, fmt.Errorf("CreateRating: brief %d: %w", in.BriefID, entity.ErrNotFound)
			}
		}
		return nil, fmt.Errorf("CreateRating: %w", err)
	}

	if err := repo.adjust(ctx, in.BriefID, in.IsPositive, 1); err != nil {
		return nil, fmt.Errorf("CreateRating: %w", err)
	}
	return &r, nil
}

// Update rewrites the rating and reads its previous polarity in one statement.
// A flip moves one vote from the old counter to the new one.
func (repo *RatingRepo) Update(ctx context.Context, in repository.RatingInput) (*entity.Rating, error) {
	const query = `
UPDATE brief_ratings r
SET is_positive = $3, feedback = $4, updated_at = NOW()
FROM (
    SELECT id, is_positive
    FROM brief_ratings
    WHERE brief_id = $1 AND session_id = $2
    FOR UPDATE
) old
WHERE r.id = old.id
RETURNING r.id, r.created_at, r.updated_at, old.is_positive`

	r := entity.Rating{
		BriefID:    in.BriefID,
		SessionID:  in.SessionID,
		IsPositive: in.IsPositive,
		Feedback:   in.Feedback,
	}
	var wasPositive bool
	err := queryOne(ctx, repo.db, func(s rowScanner) error {
		return s.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt, &wasPositive)
	}, query, in.BriefID, in.SessionID, in.IsPositive, in.Feedback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("UpdateRating: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateRating: %w", err)
	}

	if wasPositive != in.IsPositive {
		if err := repo.adjust(ctx, in.BriefID, wasPositive, -1); err != nil {
			return nil, fmt.Errorf("UpdateRating: %w", err)
		}
		if err := repo.adjust(ctx, in.BriefID, in.IsPositive, 1); err != nil {
			return nil, fmt.Errorf("UpdateRating: %w", err)
		}
	}
	return &r, nil
}

func (repo *RatingRepo) Find(ctx context.Context, briefID int64, sessionID string) (*entity.Rating, error) {
	const query = `
SELECT id, brief_id, session_id, is_positive, feedback, created_at, updated_at
FROM brief_ratings
WHERE brief_id = $1 AND session_id = $2
LIMIT 1`

	var r entity.Rating
	err := queryOne(ctx, repo.db, func(s rowScanner) error {
		return s.Scan(&r.ID, &r.BriefID, &r.SessionID, &r.IsPositive, &r.Feedback, &r.CreatedAt, &r.UpdatedAt)
	}, query, briefID, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindRating: %w", err)
	}
	return &r, nil
}

// adjust adds delta to the brief counter selected by positive.
func (repo *RatingRepo) adjust(ctx context.Context, briefID int64, positive bool, delta int) error {
	col := counterColumns[positive]
	query := fmt.Sprintf("UPDATE briefs SET %[1]s = %[1]s + $2 WHERE id = $1", col)
	if _, err := repo.db.ExecContext(ctx, query, briefID, delta); err != nil {
		return fmt.Errorf("adjust %s: %w", col, err)
	}
	return nil
}
