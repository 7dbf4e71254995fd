package services

import (
	"context"
	"fmt"

	"github.com/openvote/ballot/internal/core/domain"
	"github.com/openvote/ballot/internal/core/ports"
)

// recentLimit bounds the activity feed returned to the admin view.
const recentLimit = 20

type resultService struct {
	repo ports.VoteRepository
}

func NewResultService(repo ports.VoteRepository) ports.ResultService {
	return &resultService{
		repo: repo,
	}
}

func (s *resultService) Results(ctx context.Context) (*domain.Results, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch totals: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	recent, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent votes: %w", err)
	}

	// Keep empty tallies as [] rather than null on the wire.
	if totals == nil {
		totals = []domain.PartyTotal{}
	}
	if recent == nil {
		recent = []domain.Vote{}
	}

	return &domain.Results{
		Totals: totals,
		Total:  total,
		Recent: recent,
	}, nil
}
