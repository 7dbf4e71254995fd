package ports

import (
	"context"

	"github.com/openvote/ballot/internal/core/domain"
)

type ResultService interface {
	Results(ctx context.Context) (*domain.Results, error)
}
