package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/scribe/internal/sanitize"
)

// Errors returned by stores.
var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidID   = errors.New("invalid document id")
	ErrUnsanitized = errors.New("content is not sanitized")
)

// Document is a persisted document.
type Document struct {
	ID        string
	Content   string
	Revision  int64
	UpdatedAt time.Time
}

// Persister accepts sanitized content for a document.
type Persister interface {
	Save(ctx context.Context, id, content string) error
}

// Store is a complete document store.
type Store interface {
	Persister
	Load(ctx context.Context, id string) (Document, error)
	List(ctx context.Context) ([]Document, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewID returns a fresh document ID.
func NewID() string {
	return uuid.NewString()
}

func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return u, nil
}

func checkSanitized(content string) error {
	if sanitize.Sanitize(content) != content {
		return ErrUnsanitized
	}
	return nil
}
