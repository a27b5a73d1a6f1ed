package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Index(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "index.html", map[string]any{"Title": "Little Lemon", "Tagline": "Chicago", "Year": 2024}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Book now")
	assert.Contains(t, buf.String(), "<title>Little Lemon</title>")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "missing.html", nil, nil))
}
