package storage

import (
	"testing"
	"time"

	"github.com/poiesic/inflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEntry_RoundTrip(t *testing.T) {
	entry := &core.Entry{
		ID:          core.IDFromContent("entry content"),
		SourceID:    core.IDFromContent("file:///docs/report.html"),
		DocumentURI: "file:///docs/report.html",
		Kind:        core.ElementKindText,
		Text:        "quarterly results exceeded expectations",
		Vector:      []float32{0.1, -0.25, 0.93},
		Metadata:    map[string]string{"page": "3"},
		InsertedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	data := MarshalEntry(entry)
	require.NotEmpty(t, data)

	got, err := UnmarshalEntry(data)
	require.NoError(t, err)

	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.SourceID, got.SourceID)
	assert.Equal(t, entry.DocumentURI, got.DocumentURI)
	assert.Equal(t, entry.Kind, got.Kind)
	assert.Equal(t, entry.Text, got.Text)
	assert.Equal(t, entry.Vector, got.Vector)
	assert.Equal(t, entry.Metadata, got.Metadata)
	assert.True(t, entry.InsertedAt.Equal(got.InsertedAt))
}

func TestMarshalID_RoundTrip(t *testing.T) {
	id := core.IDFromContent("some source uri")

	got, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestUnmarshalEntry_Truncated(t *testing.T) {
	entry := &core.Entry{
		ID:          1,
		SourceID:    2,
		DocumentURI: "file:///docs/a.txt",
		Kind:        core.ElementKindText,
		Text:        "hello",
	}

	data := MarshalEntry(entry)
	_, err := UnmarshalEntry(data[:len(data)/2])
	assert.Error(t, err)
}
