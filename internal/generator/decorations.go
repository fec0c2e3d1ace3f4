package generator

import (
	"fmt"
	"math"

	"github.com/arcanaland/greetcard/internal/card"
)

const (
	// jitter is the width of the random band around each grid cell, as a
	// fraction of the unit square
	jitter = 0.15

	minSize     = 12.0
	sizeSpread  = 35.0
	minOpacity  = 0.25
	opacitySpan = 0.6
)

// GenerateDecorations places count decorations on a jittered grid so that
// they cover the card evenly without looking regular. Each decoration draws
// its type from the pattern set of the card type.
func (g *Generator) GenerateDecorations(t card.Type, count int) ([]card.Decoration, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	patterns, err := g.pack.PatternsFor(t)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []card.Decoration{}, nil
	}

	gridSize := int(math.Ceil(math.Sqrt(float64(count))))
	decorations := make([]card.Decoration, 0, count)

	for i := 0; i < count; i++ {
		kind := patterns[g.rng.IntN(len(patterns))]

		gridX := float64(i%gridSize) / float64(gridSize)
		gridY := float64(i/gridSize) / float64(gridSize)

		x := (gridX + (g.rng.Float64()-0.5)*jitter) * 100
		y := (gridY + (g.rng.Float64()-0.5)*jitter) * 100

		decorations = append(decorations, card.Decoration{
			Type:     kind,
			Position: card.Position{X: clampPercent(x), Y: clampPercent(y)},
			Size:     minSize + g.rng.Float64()*sizeSpread,
			Rotation: g.rng.Float64() * 360,
			Opacity:  minOpacity + g.rng.Float64()*opacitySpan,
		})
	}

	return decorations, nil
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
