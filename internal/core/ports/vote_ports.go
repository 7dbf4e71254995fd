package ports

import (
	"context"

	"github.com/openvote/ballot/internal/core/domain"
)

type VoteRepository interface {
	// Save inserts the vote and fills in the generated id and timestamp.
	// A uniqueness conflict on google_id or email surfaces as
	// domain.ErrAlreadyVoted.
	Save(ctx context.Context, vote *domain.Vote) error
	GetByGoogleID(ctx context.Context, googleID string) (*domain.Vote, error)
	Totals(ctx context.Context) ([]domain.PartyTotal, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.Vote, error)
}

type VoteService interface {
	Submit(ctx context.Context, identity domain.Identity, party domain.Party) (*domain.Vote, error)
	Status(ctx context.Context, identity domain.Identity) (*domain.Vote, error)
}
