package generators

import (
	"context"

	"github.com/instant-idea-buddy/server/internal/idea/model"
)

// Generator sends one prompt to the remote text-generation capability.
// Errors are returned as *errx.AppError.
type Generator interface {
	Generate(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error)
}
