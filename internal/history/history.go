// Package history archives prompt/response exchanges made by the prompter.
//
// Exchanges are keyed by KSUID, so listing an archive returns them oldest
// first (to the second). The archive is opt-in and is never consulted when generating.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/picatz/xai/internal/history/storage"
	pebbleStorage "github.com/picatz/xai/internal/history/storage/pebble"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

// Exchange is one call to the model: what was sent and what came back.
type Exchange struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Input     string    `json:"input"`
	Output    []string  `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

// Archive records exchanges in a storage backend.
type Archive struct {
	backend storage.Backend[string, Exchange]
	now     func() time.Time
}

// New returns an Archive backed by the given storage backend.
func New(backend storage.Backend[string, Exchange]) *Archive {
	return &Archive{backend: backend, now: time.Now}
}

// Open opens (or creates) a pebble-backed archive in dir.
func Open(dir string, opts *pebble.Options) (*Archive, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	if opts.Logger == nil && opts.LoggerAndTracer == nil {
		opts.Logger = pebbleLogger{logger: log.Logger}
	}

	backend, err := pebbleStorage.NewBackend(dir, opts, storage.JSONCodec[string, Exchange]{})
	if err != nil {
		return nil, fmt.Errorf("failed to open history archive: %w", err)
	}
	return New(backend), nil
}

// Record stores a new exchange and returns it with its ID set.
func (a *Archive) Record(ctx context.Context, model, input string, output []string) (Exchange, error) {
	createdAt := a.now().UTC()

	id, err := ksuid.NewRandomWithTime(createdAt)
	if err != nil {
		return Exchange{}, fmt.Errorf("failed to generate exchange id: %w", err)
	}

	if output == nil {
		output = []string{}
	}

	ex := Exchange{
		ID:        id.String(),
		Model:     model,
		Input:     input,
		Output:    output,
		CreatedAt: createdAt,
	}

	if err := a.backend.Set(ctx, ex.ID, ex); err != nil {
		return Exchange{}, fmt.Errorf("failed to record exchange: %w", err)
	}

	return ex, nil
}

// ErrNotFound is returned by Get for unknown exchange IDs.
var ErrNotFound = errors.New("exchange not found")

// Get returns the exchange with the given ID.
func (a *Archive) Get(ctx context.Context, id string) (Exchange, error) {
	ex, ok, err := a.backend.Get(ctx, id)
	if err != nil {
		return Exchange{}, fmt.Errorf("failed to get exchange %q: %w", id, err)
	}
	if !ok {
		return Exchange{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return ex, nil
}

// List returns up to limit exchanges, oldest first. A limit of zero or less
// returns every exchange.
func (a *Archive) List(ctx context.Context, limit int) ([]Exchange, error) {
	var (
		out       []Exchange
		pageToken *string
	)

	for {
		pageSize := storage.DefaultListPageSize
		if limit > 0 {
			pageSize = min(pageSize, limit-len(out))
		}

		entries, next, err := a.backend.List(ctx, storage.PageSize(pageSize), pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list exchanges: %w", err)
		}

		for _, ex := range entries {
			out = append(out, ex)
		}

		if next == nil || (limit > 0 && len(out) >= limit) {
			return out, nil
		}
		pageToken = next
	}
}

// Clear deletes every exchange and returns how many were removed.
func (a *Archive) Clear(ctx context.Context) (int, error) {
	exchanges, err := a.List(ctx, 0)
	if err != nil {
		return 0, err
	}

	for i, ex := range exchanges {
		if err := a.backend.Delete(ctx, ex.ID); err != nil {
			return i, fmt.Errorf("failed to delete exchange %q: %w", ex.ID, err)
		}
	}

	return len(exchanges), nil
}

// Close flushes and closes the underlying backend.
func (a *Archive) Close(ctx context.Context) error {
	return errors.Join(a.backend.Flush(ctx), a.backend.Close(ctx))
}
