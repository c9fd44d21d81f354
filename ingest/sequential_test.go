package ingest

import (
	"context"
	"testing"

	"github.com/poiesic/inflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequential_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes all documents", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeSequential))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/a.txt", "text:alpha\ntext:beta"),
			doc("file:///docs/b.txt", "text:gamma"),
		})

		require.Len(t, result.Successful, 2)
		require.Empty(t, result.Failed)
		assert.Equal(t, 2, result.Successful[0].NumElements)
		assert.Equal(t, 1, result.Successful[1].NumElements)
		assert.Len(t, listEntries(t, env), 3)
	})

	t.Run("failure stops that document only", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeSequential))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/good.txt", "text:fine"),
			doc("file:///docs/bad.txt", "fail"),
			doc("file:///docs/also-good.txt", "text:fine too"),
		})

		require.Len(t, result.Successful, 2)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "file:///docs/bad.txt", result.Failed[0].DocumentURI)
		assert.Equal(t, FailureKindParser, result.Failed[0].Failure.Kind)
		assert.Equal(t, 3, result.Total())
	})

	t.Run("enrich not invoked without intermediate elements", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeSequential))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/plain.txt", "text:no images here"),
		})

		require.Len(t, result.Successful, 1)
		assert.Zero(t, env.spy.Calls())
	})

	t.Run("one intermediate plus one regular yields two entries", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeSequential))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/mixed.txt", "text:paragraph\nimage:chart.png"),
		})

		require.Len(t, result.Successful, 1)
		assert.Equal(t, 2, result.Successful[0].NumElements)
		assert.Equal(t, 1, env.spy.Calls())

		entries := listEntries(t, env)
		require.Len(t, entries, 2)
		texts := map[string]bool{}
		for _, e := range entries {
			texts[e.Text] = true
		}
		assert.True(t, texts["paragraph"])
		assert.True(t, texts["caption of chart.png"])
	})

	t.Run("reingesting does not double entries", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeSequential))
		meta := doc("file:///docs/stable.txt", "text:one\ntext:two")

		first := s.Ingest(ctx, []core.DocumentMeta{meta})
		require.Len(t, first.Successful, 1)
		require.Len(t, listEntries(t, env), 2)

		second := s.Ingest(ctx, []core.DocumentMeta{meta})
		require.Len(t, second.Successful, 1)
		assert.Len(t, listEntries(t, env), 2, "second run removes the first run's entries before inserting")
	})

	t.Run("enricher failure captured", func(t *testing.T) {
		env := newEnv(t)
		env.spy.err = assert.AnError
		s := newStrategy(t, env, testConfig(ModeSequential))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/img.txt", "image:photo.png"),
		})

		require.Len(t, result.Failed, 1)
		assert.Equal(t, FailureKindEnricher, result.Failed[0].Failure.Kind)
	})

	t.Run("store failure captured with store kind", func(t *testing.T) {
		env := newEnv(t)
		env.store.storeErr = func(entries []*core.Entry) error { return assert.AnError }
		s := newStrategy(t, env, testConfig(ModeSequential))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/a.txt", "text:alpha"),
		})

		require.Len(t, result.Failed, 1)
		assert.Equal(t, FailureKindStore, result.Failed[0].Failure.Kind)
		assert.NotEmpty(t, result.Failed[0].Failure.Stack)
	})
}
