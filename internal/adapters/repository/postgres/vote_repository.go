package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/openvote/ballot/internal/core/domain"
	"github.com/openvote/ballot/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (google_id, email, name, party)
		VALUES ($1, $2, $3, $4)
		RETURNING id, voted_at
	`
	err := r.db.QueryRowContext(ctx, query, vote.GoogleID, vote.Email, vote.Name, vote.Party).
		Scan(&vote.ID, &vote.VotedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.Vote, error) {
	query := `
		SELECT id, google_id, email, name, party, voted_at
		FROM votes
		WHERE google_id = $1
	`
	vote := &domain.Vote{}
	err := r.db.QueryRowContext(ctx, query, googleID).Scan(
		&vote.ID,
		&vote.GoogleID,
		&vote.Email,
		&vote.Name,
		&vote.Party,
		&vote.VotedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return vote, nil
}

func (r *voteRepository) Totals(ctx context.Context) ([]domain.PartyTotal, error) {
	query := `
		SELECT party, COUNT(*) AS count
		FROM votes
		GROUP BY party
		ORDER BY count DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.PartyTotal
	for rows.Next() {
		var t domain.PartyTotal
		if err := rows.Scan(&t.Party, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating totals: %w", err)
	}
	return totals, nil
}

func (r *voteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return total, nil
}

func (r *voteRepository) Recent(ctx context.Context, limit int) ([]domain.Vote, error) {
	query := `
		SELECT id, google_id, email, name, party, voted_at
		FROM votes
		ORDER BY voted_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent votes: %w", err)
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.GoogleID, &v.Email, &v.Name, &v.Party, &v.VotedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

// isUniqueViolation reports whether err is a postgres unique_violation
// (class 23505), raised when a second vote races past the existence check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
