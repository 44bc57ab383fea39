// Package assemble implements the StructureAssembler: the final step
// that turns classified pages into a Script, extracting the title and
// synthesizing a missing opening scene heading where appropriate.
package assemble

import (
	"strings"

	"github.com/screenplaykit/screenplay/internal/model"
)

// Assemble consumes classified pages and produces a Script: title
// extraction from page 0, synthetic OPENING insertion, and per-kind
// element counts.
func Assemble(pages []*model.Page, language string, totalPages int) *model.Script {
	title := extractTitle(pages)
	synthetic := maybeInsertOpening(pages)

	script := &model.Script{
		Title:      title,
		Pages:      pages,
		Language:   language,
		TotalPages: totalPages,
		Metadata: model.Metadata{
			ElementCountByKind: countByKind(pages),
			SyntheticOpening:   synthetic,
		},
	}
	script.FullText = PlainText(script)
	return script
}

// extractTitle joins the text of every title-kind element on page 0,
// in document order, with newlines. Returns nil if page 0 has none.
func extractTitle(pages []*model.Page) *string {
	if len(pages) == 0 {
		return nil
	}
	var lines []string
	for _, group := range pages[0].Groups {
		for _, el := range group.Elements {
			if el.Type == model.KindTitle {
				lines = append(lines, el.Text)
			}
		}
	}
	if len(lines) == 0 {
		return nil
	}
	joined := strings.Join(lines, "\n")
	return &joined
}

// maybeInsertOpening synthesizes a scene heading at the start of page 1
// iff there are at least 2 pages, page 0 carries no scene heading, and
// page 1's first element is neither a scene heading nor a transition.
func maybeInsertOpening(pages []*model.Page) bool {
	if len(pages) < 2 {
		return false
	}
	if pageHasSceneHeading(pages[0]) {
		return false
	}

	page1 := pages[1]
	first := firstElement(page1)
	if first != nil && (first.Type == model.KindSceneHeading || first.Type == model.KindTransition) {
		return false
	}

	y := 144.0
	if first != nil {
		y = first.Y - 24
	}

	opening := &model.TextElement{
		Text:     "OPENING",
		Type:     model.KindSceneHeading,
		X:        72,
		Y:        y,
		Width:    70,
		Height:   12,
		FontSize: 12,
		Centered: false,
	}

	group := &model.Group{Elements: []*model.TextElement{opening}}
	page1.Groups = append([]*model.Group{group}, page1.Groups...)
	return true
}

func pageHasSceneHeading(page *model.Page) bool {
	for _, group := range page.Groups {
		for _, el := range group.Elements {
			if el.Type == model.KindSceneHeading {
				return true
			}
		}
	}
	return false
}

func firstElement(page *model.Page) *model.TextElement {
	for _, group := range page.Groups {
		if len(group.Elements) > 0 {
			return group.Elements[0]
		}
	}
	return nil
}

func countByKind(pages []*model.Page) map[model.Kind]int {
	counts := make(map[model.Kind]int)
	for _, page := range pages {
		for _, group := range page.Groups {
			for _, el := range group.Elements {
				if el.Type != model.KindUnset {
					counts[el.Type]++
				}
			}
		}
	}
	return counts
}

// PlainText renders a Script as screenplay-conventional indented text:
// action and dialogue are left-flush, character cues and parentheticals
// are indented, scene headings are upper-margin flush.
func PlainText(script *model.Script) string {
	var b strings.Builder
	for _, page := range script.Pages {
		for _, group := range page.Groups {
			for _, el := range group.Elements {
				b.WriteString(renderLine(el))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func renderLine(el *model.TextElement) string {
	text := strings.TrimSpace(el.Text)
	switch el.Type {
	case model.KindCharacter:
		return strings.Repeat(" ", 20) + text
	case model.KindParenthetical:
		return strings.Repeat(" ", 16) + text
	case model.KindDialogue:
		return strings.Repeat(" ", 10) + text
	case model.KindTransition:
		return strings.Repeat(" ", 40) + text
	case model.KindSceneHeading, model.KindSubheading:
		return text
	default:
		return text
	}
}
