package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestHashEmbedderDeterministic(t *testing.T) {
	e := NewHashEmbedder(0)
	ctx := context.Background()

	a, err := e.Embed(ctx, "Zupa krem z dyni")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "zupa KREM z dyni!")
	require.NoError(t, err)

	assert.Len(t, a, DefaultDimensions)
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, cosine(a, a), 1e-6)
}

func TestHashEmbedderSimilarity(t *testing.T) {
	e := NewHashEmbedder(256)
	ctx := context.Background()

	query, _ := e.Embed(ctx, "kremowa zupa z dyni")
	soup, _ := e.Embed(ctx, "Zupa krem z dyni z imbirem")
	pasta, _ := e.Embed(ctx, "Spaghetti carbonara z boczkiem")

	assert.Greater(t, cosine(query, soup), cosine(query, pasta))
}

func TestHashEmbedderEmptyText(t *testing.T) {
	v, err := NewHashEmbedder(8).Embed(context.Background(), " ,.! ")
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 8), v)
}
