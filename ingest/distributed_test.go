package ingest

import (
	"context"
	"testing"

	"github.com/poiesic/inflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalCluster(t *testing.T) {
	t.Run("rejects non-positive workers", func(t *testing.T) {
		_, err := NewLocalCluster(0, 4)
		assert.ErrorIs(t, err, ErrInvalidWorkers)
	})

	t.Run("runs tasks on both pools", func(t *testing.T) {
		c, err := NewLocalCluster(2, 2)
		require.NoError(t, err)
		defer c.Release()

		results := make([]int, 4)
		c.MapCPU([]func(){
			func() { results[0] = 1 },
			func() { results[1] = 2 },
		})
		c.MapIO([]func(){
			func() { results[2] = 3 },
			func() { results[3] = 4 },
		})
		assert.Equal(t, []int{1, 2, 3, 4}, results)
	})
}

func TestDistributed_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes all documents", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeDistributed))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/a.txt", "text:alpha"),
			doc("file:///docs/b.txt", "text:beta\nimage:pic.png"),
			doc("file:///docs/c.txt", "text:gamma"),
		})

		require.Len(t, result.Successful, 3)
		require.Empty(t, result.Failed)
		assert.Len(t, listEntries(t, env), 4)
	})

	t.Run("conservation of documents", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeDistributed))

		docs := []core.DocumentMeta{
			doc("file:///docs/a.txt", "text:a"),
			doc("file:///docs/b.txt", "fail"),
			doc("file:///docs/c.txt", "text:c"),
			doc("file:///docs/d.txt", "fail"),
			doc("file:///docs/e.txt", "image:e.png"),
		}

		result := s.Ingest(ctx, docs)
		assert.Equal(t, len(docs), result.Total())
		assert.Len(t, result.Failed, 2)
	})

	t.Run("failed slot carries its error past later stages", func(t *testing.T) {
		env := newEnv(t)
		// Store stage would classify as store; the slot must keep the
		// original parser failure instead of reaching the store at all.
		env.store.storeErr = func(entries []*core.Entry) error { return assert.AnError }
		s := newStrategy(t, env, testConfig(ModeDistributed))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/bad.txt", "fail"),
		})

		require.Len(t, result.Failed, 1)
		assert.Equal(t, FailureKindParser, result.Failed[0].Failure.Kind)
		assert.Zero(t, env.store.StoreCalls(), "insert skipped for failed slot")
	})

	t.Run("insert failure is per document, not per batch", func(t *testing.T) {
		env := newEnv(t)
		env.store.storeErr = func(entries []*core.Entry) error {
			for _, e := range entries {
				if e.Text == "poison" {
					return assert.AnError
				}
			}
			return nil
		}
		s := newStrategy(t, env, testConfig(ModeDistributed))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/fine.txt", "text:fine"),
			doc("file:///docs/poison.txt", "text:poison"),
		})

		require.Len(t, result.Successful, 1)
		assert.Equal(t, "file:///docs/fine.txt", result.Successful[0].DocumentURI)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "file:///docs/poison.txt", result.Failed[0].DocumentURI)
		assert.Equal(t, FailureKindStore, result.Failed[0].Failure.Kind)
	})

	t.Run("enrichment folded into the parse stage", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeDistributed))

		result := s.Ingest(ctx, []core.DocumentMeta{
			doc("file:///docs/plain.txt", "text:plain"),
			doc("file:///docs/rich.txt", "image:figure.png"),
		})

		require.Len(t, result.Successful, 2)
		assert.Equal(t, 1, env.spy.Calls())
	})

	t.Run("reingesting does not double entries", func(t *testing.T) {
		env := newEnv(t)
		s := newStrategy(t, env, testConfig(ModeDistributed))
		metas := []core.DocumentMeta{doc("file:///docs/stable.txt", "text:one\ntext:two")}

		s.Ingest(ctx, metas)
		s.Ingest(ctx, metas)
		assert.Len(t, listEntries(t, env), 2)
	})
}
