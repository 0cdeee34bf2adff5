package interfaces

import (
	"context"

	"bgmix/internal/models"
)

// FetcherInterface retrieves one user's collection from an upstream
// source, already normalized into the canonical record shape.
type FetcherInterface interface {
	FetchCollection(ctx context.Context, username string) (models.UserCollection, error)
	Source() string
}
