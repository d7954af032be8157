package rating

import (
	"context"
	"errors"
	"fmt"

	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

// Input is a rating submission from one session.
type Input struct {
	BriefID    int64
	SessionID  string
	IsPositive bool
	Feedback   *string
}

func (in Input) toRepo() (repository.RatingInput, error) {
	if err := entity.ValidateRating(in.BriefID, in.SessionID, in.Feedback); err != nil {
		return repository.RatingInput{}, err
	}
	return repository.RatingInput{
		BriefID:    in.BriefID,
		SessionID:  in.SessionID,
		IsPositive: in.IsPositive,
		Feedback:   entity.NormalizeFeedback(in.Feedback),
	}, nil
}

// Service applies rating writes through the counter-maintaining repository.
type Service struct {
	Repo repository.RatingRepository
}

// Submit creates the session's rating or, if one exists, updates it.
// The repository only signals NotFound or ErrRatingExists; the upsert
// decision is made here. The bool reports whether a rating was created.
func (s *Service) Submit(ctx context.Context, in Input) (*entity.Rating, bool, error) {
	ri, err := in.toRepo()
	if err != nil {
		return nil, false, err
	}

	r, err := s.Repo.Update(ctx, ri)
	if err == nil {
		return r, false, nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return nil, false, fmt.Errorf("submit rating: %w", err)
	}

	r, err = s.Repo.Create(ctx, ri)
	switch {
	case err == nil:
		return r, true, nil
	case errors.Is(err, repository.ErrRatingExists):
		// lost a race with a concurrent create for the same session
		r, err = s.Repo.Update(ctx, ri)
		if err != nil {
			return nil, false, fmt.Errorf("submit rating: %w", err)
		}
		return r, false, nil
	case errors.Is(err, entity.ErrNotFound):
		return nil, false, ErrBriefNotFound
	default:
		return nil, false, fmt.Errorf("submit rating: %w", err)
	}
}

// Update changes an existing rating. Returns ErrRatingNotFound if none exists.
func (s *Service) Update(ctx context.Context, in Input) (*entity.Rating, error) {
	ri, err := in.toRepo()
	if err != nil {
		return nil, err
	}
	r, err := s.Repo.Update(ctx, ri)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return r, nil
}

// Get returns the session's rating of a brief.
func (s *Service) Get(ctx context.Context, briefID int64, sessionID string) (*entity.Rating, error) {
	if err := entity.ValidateRating(briefID, sessionID, nil); err != nil {
		return nil, err
	}
	r, err := s.Repo.Find(ctx, briefID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}
	if r == nil {
		return nil, ErrRatingNotFound
	}
	return r, nil
}
