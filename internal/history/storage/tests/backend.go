// Package tests holds a conformance suite shared by the storage backends.
package tests

import (
	"testing"
	"time"

	"github.com/picatz/xai/internal/history/storage"
	"github.com/shoenig/test/must"
)

// collect drains a page into a slice.
func collect[K, V any](t *testing.T, b storage.Backend[K, V], pageSize *int, pageToken *K) ([]storage.Entry[K, V], *K) {
	t.Helper()

	entries, next, err := b.List(t.Context(), pageSize, pageToken)
	must.NoError(t, err)

	var out []storage.Entry[K, V]
	for k, v := range entries {
		out = append(out, storage.Entry[K, V]{Key: k, Value: v})
	}
	return out, next
}

// BackendSuite tests a backend implementation of the storage package, using
// the provided backend instance to perform the tests. The backend must be empty.
func BackendSuite(t *testing.T, backend storage.Backend[string, string]) {
	t.Helper()

	ctx := t.Context()

	_, ok, err := backend.Get(ctx, "missing")
	must.NoError(t, err)
	must.False(t, ok)

	must.NoError(t, backend.Set(ctx, "exchange-2", "world2"))
	must.NoError(t, backend.Set(ctx, "exchange-1", "world"))
	must.NoError(t, backend.Set(ctx, "exchange-3", "world3"))

	value, ok, err := backend.Get(ctx, "exchange-1")
	must.NoError(t, err)
	must.True(t, ok)
	must.Eq(t, "world", value)

	// Overwrite.
	must.NoError(t, backend.Set(ctx, "exchange-3", "world3!"))
	value, ok, err = backend.Get(ctx, "exchange-3")
	must.NoError(t, err)
	must.True(t, ok)
	must.Eq(t, "world3!", value)

	// Pages come back in key order, and tokens chain.
	page, next := collect(t, backend, storage.PageSize(2), nil)
	must.Eq(t, []storage.Entry[string, string]{
		{Key: "exchange-1", Value: "world"},
		{Key: "exchange-2", Value: "world2"},
	}, page)
	must.NotNil(t, next)
	must.Eq(t, "exchange-3", *next)

	page, next = collect(t, backend, storage.PageSize(2), next)
	must.Eq(t, []storage.Entry[string, string]{{Key: "exchange-3", Value: "world3!"}}, page)
	must.Nil(t, next)

	page, next = collect(t, backend, nil, nil)
	must.Len(t, 3, page)
	must.Nil(t, next)

	must.NoError(t, backend.Delete(ctx, "exchange-2"))
	must.NoError(t, backend.Delete(ctx, "exchange-2"))

	_, ok, err = backend.Get(ctx, "exchange-2")
	must.NoError(t, err)
	must.False(t, ok)

	page, _ = collect(t, backend, nil, nil)
	must.Eq(t, []storage.Entry[string, string]{
		{Key: "exchange-1", Value: "world"},
		{Key: "exchange-3", Value: "world3!"},
	}, page)

	must.NoError(t, backend.Flush(ctx))
}

// Record is a structured value used to check that backends round trip more
// than plain strings.
type Record struct {
	Model     string
	Output    []string
	MaxTokens *int
	CreatedAt time.Time
}

// BackendSuite_records tests a backend storing structured values.
func BackendSuite_records(t *testing.T, b storage.Backend[string, Record]) {
	t.Helper()

	n := 16
	first := Record{Model: "grok-3-mini", Output: []string{"Hel", "lo"}, MaxTokens: &n, CreatedAt: time.Unix(1758188599, 0).UTC()}
	second := Record{Model: "grok-4-0709", Output: []string{}}

	must.NoError(t, b.Set(t.Context(), "a", first))
	must.NoError(t, b.Set(t.Context(), "b", second))

	value, ok, err := b.Get(t.Context(), "a")
	must.NoError(t, err)
	must.True(t, ok)
	must.Eq(t, first.Output, value.Output)
	must.Eq(t, 16, *value.MaxTokens)
	must.True(t, first.CreatedAt.Equal(value.CreatedAt))

	page, next := collect(t, b, storage.PageSize(1), nil)
	must.Len(t, 1, page)
	must.Eq(t, "a", page[0].Key)
	must.NotNil(t, next)

	page, next = collect(t, b, nil, next)
	must.Len(t, 1, page)
	must.Eq(t, "b", page[0].Key)
	must.Eq(t, "grok-4-0709", page[0].Value.Model)
	must.Nil(t, next)
}
