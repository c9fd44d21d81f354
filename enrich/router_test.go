package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/inflow/ai/mock"
	"github.com/poiesic/inflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageElement(id core.ID, data []byte) core.Element {
	return core.Element{
		ID:          id,
		Kind:        core.ElementKindImage,
		Raw:         data,
		SourceID:    core.IDFromContent("file:///docs/test"),
		DocumentURI: "file:///docs/test",
	}
}

func tableElement(id core.ID, markup string) core.Element {
	return core.Element{
		ID:          id,
		Kind:        core.ElementKindTable,
		Raw:         []byte(markup),
		SourceID:    core.IDFromContent("file:///docs/test"),
		DocumentURI: "file:///docs/test",
	}
}

func TestRouter(t *testing.T) {
	captioner := mock.NewCaptioner()

	t.Run("default router covers intermediate kinds", func(t *testing.T) {
		r := DefaultRouter(captioner)
		assert.True(t, r.Has(core.ElementKindImage))
		assert.True(t, r.Has(core.ElementKindTable))
		assert.False(t, r.Has(core.ElementKindText))
	})

	t.Run("get unregistered kind", func(t *testing.T) {
		r := NewRouter()
		_, err := r.Get(core.ElementKindImage)
		assert.ErrorIs(t, err, ErrNoEnricher)
	})

	t.Run("register nil enricher", func(t *testing.T) {
		r := NewRouter()
		err := r.Register(core.ElementKindImage, nil)
		assert.ErrorIs(t, err, ErrNilEnricher)
	})
}

func TestImageEnricher_Enrich(t *testing.T) {
	ctx := context.Background()

	t.Run("captions every element", func(t *testing.T) {
		captioner := mock.NewCaptioner()
		captioner.CaptionImageFunc = func(ctx context.Context, mimeType string, data []byte) (string, error) {
			return "a cat on a mat", nil
		}

		e := NewImageEnricher(captioner)
		elements := []core.Element{
			imageElement(1, []byte{0x89, 0x50}),
			imageElement(2, []byte{0x89, 0x51}),
		}

		enriched, err := e.Enrich(ctx, elements)
		require.NoError(t, err)
		require.Len(t, enriched, 2)

		for i, out := range enriched {
			assert.Equal(t, "a cat on a mat", out.Text)
			assert.Nil(t, out.Raw)
			assert.Equal(t, elements[i].ID, out.ID, "back-reference preserved")
			assert.Equal(t, elements[i].SourceID, out.SourceID)
		}
	})

	t.Run("uses mime type from metadata", func(t *testing.T) {
		var gotMIME string
		captioner := mock.NewCaptioner()
		captioner.CaptionImageFunc = func(ctx context.Context, mimeType string, data []byte) (string, error) {
			gotMIME = mimeType
			return "caption", nil
		}

		e := NewImageEnricher(captioner)
		elem := imageElement(1, []byte{0xff})
		elem.Metadata = map[string]string{"mime_type": "image/jpeg"}

		_, err := e.Enrich(ctx, []core.Element{elem})
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", gotMIME)
	})

	t.Run("captioner failure wraps ErrEnrich", func(t *testing.T) {
		captioner := mock.NewCaptioner()
		captioner.CaptionImageFunc = func(ctx context.Context, mimeType string, data []byte) (string, error) {
			return "", errors.New("model unavailable")
		}

		e := NewImageEnricher(captioner)
		_, err := e.Enrich(ctx, []core.Element{imageElement(1, []byte{0xff})})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEnrich)
	})

	t.Run("mixed kinds rejected", func(t *testing.T) {
		e := NewImageEnricher(mock.NewCaptioner())
		_, err := e.Enrich(ctx, []core.Element{
			imageElement(1, []byte{0xff}),
			tableElement(2, "<table></table>"),
		})
		assert.ErrorIs(t, err, ErrMixedKinds)
	})

	t.Run("empty input", func(t *testing.T) {
		e := NewImageEnricher(mock.NewCaptioner())
		enriched, err := e.Enrich(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, enriched)
	})
}

func TestTableEnricher_Enrich(t *testing.T) {
	ctx := context.Background()

	t.Run("summarizes markup", func(t *testing.T) {
		var gotMarkup string
		captioner := mock.NewCaptioner()
		captioner.SummarizeTableFunc = func(ctx context.Context, markup string) (string, error) {
			gotMarkup = markup
			return "quarterly revenue by region", nil
		}

		e := NewTableEnricher(captioner)
		enriched, err := e.Enrich(ctx, []core.Element{tableElement(1, "<table><tr><td>1</td></tr></table>")})
		require.NoError(t, err)
		require.Len(t, enriched, 1)

		assert.Equal(t, "quarterly revenue by region", enriched[0].Text)
		assert.Equal(t, "<table><tr><td>1</td></tr></table>", gotMarkup)
		assert.NotNil(t, enriched[0].Raw, "markup kept for diagnostics")
	})

	t.Run("summarizer failure wraps ErrEnrich", func(t *testing.T) {
		captioner := mock.NewCaptioner()
		captioner.SummarizeTableFunc = func(ctx context.Context, markup string) (string, error) {
			return "", errors.New("model unavailable")
		}

		e := NewTableEnricher(captioner)
		_, err := e.Enrich(ctx, []core.Element{tableElement(1, "<table></table>")})
		assert.ErrorIs(t, err, ErrEnrich)
	})
}
