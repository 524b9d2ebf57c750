package repository

import (
	"context"

	"github.com/pkg/errors"
)

// ErrImageNotFound is returned by an ImageStore before the first image has
// been stored.
var ErrImageNotFound = errors.New("image not found")

// ImageStore keeps the most recent screenshot of the board.
type ImageStore interface {
	Put(ctx context.Context, png []byte) error
	Get(ctx context.Context) ([]byte, error)
}
