package generation

import (
	"context"

	"github.com/vibecoding/vibe-backend/internal/entity"
)

type GenerationUsecase interface {
	Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.MergedResult, error)
}
