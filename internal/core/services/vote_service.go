package services

import (
	"context"

	"github.com/openvote/ballot/internal/core/domain"
	"github.com/openvote/ballot/internal/core/ports"
)

type voteService struct {
	repo ports.VoteRepository
}

func NewVoteService(repo ports.VoteRepository) ports.VoteService {
	return &voteService{
		repo: repo,
	}
}

func (s *voteService) Submit(ctx context.Context, identity domain.Identity, party domain.Party) (*domain.Vote, error) {
	if !party.Valid() {
		return nil, domain.ErrInvalidParty
	}

	// Fast path only. Two submissions can race past this check; the
	// unique constraint on google_id decides the winner and the loser
	// comes back from Save as ErrAlreadyVoted.
	existing, err := s.repo.GetByGoogleID(ctx, identity.GoogleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		GoogleID: identity.GoogleID,
		Email:    identity.Email,
		Name:     identity.Name,
		Party:    party,
	}

	if err := s.repo.Save(ctx, vote); err != nil {
		return nil, err
	}

	return vote, nil
}

func (s *voteService) Status(ctx context.Context, identity domain.Identity) (*domain.Vote, error) {
	return s.repo.GetByGoogleID(ctx, identity.GoogleID)
}
