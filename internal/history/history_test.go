package history_test

import (
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/picatz/xai/internal/history"
	"github.com/picatz/xai/internal/history/storage/memory"
	"github.com/segmentio/ksuid"
	"github.com/shoenig/test/must"
)

func TestArchive(t *testing.T) {
	ctx := t.Context()

	archive := history.New(memory.NewBackend[string, history.Exchange]())

	first, err := archive.Record(ctx, "grok-3-mini", "Hi", []string{"Hello!"})
	must.NoError(t, err)
	must.NotEq(t, "", first.ID)
	must.Eq(t, "grok-3-mini", first.Model)

	id, err := ksuid.Parse(first.ID)
	must.NoError(t, err)
	must.Eq(t, first.CreatedAt.Unix(), id.Time().Unix())

	second, err := archive.Record(ctx, "grok-3-mini", "Quiet", nil)
	must.NoError(t, err)
	must.NotNil(t, second.Output)
	must.SliceEmpty(t, second.Output)

	got, err := archive.Get(ctx, first.ID)
	must.NoError(t, err)
	must.Eq(t, []string{"Hello!"}, got.Output)
	must.Eq(t, "Hi", got.Input)

	_, err = archive.Get(ctx, "missing")
	must.ErrorIs(t, err, history.ErrNotFound)

	all, err := archive.List(ctx, 0)
	must.NoError(t, err)
	must.Len(t, 2, all)

	one, err := archive.List(ctx, 1)
	must.NoError(t, err)
	must.Len(t, 1, one)

	n, err := archive.Clear(ctx)
	must.NoError(t, err)
	must.Eq(t, 2, n)

	all, err = archive.List(ctx, 0)
	must.NoError(t, err)
	must.SliceEmpty(t, all)

	must.NoError(t, archive.Close(ctx))
}

func TestArchive_listManyPages(t *testing.T) {
	ctx := t.Context()

	archive, err := history.Open("", &pebble.Options{FS: vfs.NewMem()})
	must.NoError(t, err)
	t.Cleanup(func() { archive.Close(ctx) })

	for range 60 {
		_, err := archive.Record(ctx, "m", "in", []string{"out"})
		must.NoError(t, err)
	}

	all, err := archive.List(ctx, 0)
	must.NoError(t, err)
	must.Len(t, 60, all)

	some, err := archive.List(ctx, 30)
	must.NoError(t, err)
	must.Len(t, 30, some)

	n, err := archive.Clear(ctx)
	must.NoError(t, err)
	must.Eq(t, 60, n)
}

func TestOpen_dir(t *testing.T) {
	dir := t.TempDir()

	archive, err := history.Open(dir, nil)
	must.NoError(t, err)

	ex, err := archive.Record(t.Context(), "m", "in", []string{"a", "b"})
	must.NoError(t, err)
	must.NoError(t, archive.Close(t.Context()))

	archive, err = history.Open(dir, nil)
	must.NoError(t, err)
	t.Cleanup(func() { archive.Close(t.Context()) })

	got, err := archive.Get(t.Context(), ex.ID)
	must.NoError(t, err)
	must.Eq(t, []string{"a", "b"}, got.Output)
	must.True(t, ex.CreatedAt.Equal(got.CreatedAt))
}
