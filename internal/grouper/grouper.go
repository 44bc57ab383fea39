// Package grouper turns raw positioned spans into enriched TextElements
// and chunks them into vertically-contiguous groups.
package grouper

import (
	"math"

	"github.com/screenplaykit/screenplay/internal/model"
)

const defaultPageWidth = 612

const (
	centerToleranceDefault = 20.0
	centerToleranceWidened = 35.0
)

// BuildTextElements maps spans to TextElements, computing gap-to-prev,
// gap-to-next, and centered for each, in input order. pageWidth falls
// back to 612 (US Letter) when zero.
func BuildTextElements(spans []model.Span, pageWidth float64) []*model.TextElement {
	if pageWidth == 0 {
		pageWidth = defaultPageWidth
	}

	elements := make([]*model.TextElement, len(spans))
	for i, s := range spans {
		elements[i] = &model.TextElement{
			Text:     s.Text,
			X:        s.X,
			Y:        s.Y,
			Width:    s.Width,
			Height:   s.Height,
			FontSize: s.FontSize,
			Font:     s.Font,
			Centered: isCentered(s, pageWidth),
		}
	}

	for i := range elements {
		if i > 0 {
			gap := gapBetween(spans[i-1], spans[i])
			elements[i].GapToPrev = &gap
			elements[i-1].GapToNext = &gap
		}
	}

	return elements
}

func gapBetween(prev, cur model.Span) float64 {
	g := cur.Y - (prev.Y + prev.Height)
	return math.Max(0, g)
}

func isCentered(s model.Span, pageWidth float64) bool {
	midpoint := s.X + s.Width/2
	pageMid := pageWidth / 2
	deviation := math.Abs(midpoint - pageMid)

	tolerance := centerToleranceDefault
	if s.X >= 280 && s.X <= 320 {
		tolerance = centerToleranceWidened
	}

	if deviation > tolerance {
		return false
	}

	// Left-dialogue column exclusion.
	if s.X >= 170 && s.X <= 190 && deviation > 8 {
		return false
	}
	// Character column exclusion.
	if s.X >= 240 && s.X <= 270 && deviation > 18 {
		return false
	}

	return true
}

// GroupByGap chunks elements into groups, starting a new group after any
// element whose GapToNext is at or above threshold. Trailing elements
// with no following gap close out the final group. Empty groups are
// dropped.
func GroupByGap(elements []*model.TextElement, threshold float64) []*model.Group {
	var groups []*model.Group
	var current []*model.TextElement

	for _, el := range elements {
		current = append(current, el)
		if el.GapToNext != nil && *el.GapToNext >= threshold {
			groups = append(groups, &model.Group{Elements: current})
			current = nil
		}
	}

	if len(current) > 0 {
		groups = append(groups, &model.Group{Elements: current})
	}

	return groups
}
