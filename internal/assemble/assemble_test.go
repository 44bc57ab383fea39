package assemble

import (
	"strings"
	"testing"

	"github.com/screenplaykit/screenplay/internal/model"
)

func titleElement(text string) *model.TextElement {
	return &model.TextElement{Text: text, Type: model.KindTitle}
}

func TestAssembleExtractsTitleFromPageZero(t *testing.T) {
	pages := []*model.Page{
		{PageNumber: 0, Groups: []*model.Group{
			{Elements: []*model.TextElement{titleElement("THE LONG ROAD HOME")}},
		}},
	}

	script := Assemble(pages, "english", 1)
	if script.Title == nil || *script.Title != "THE LONG ROAD HOME" {
		t.Fatalf("expected extracted title, got %+v", script.Title)
	}
}

func TestAssembleNoTitleWhenNoneOnPageZero(t *testing.T) {
	pages := []*model.Page{
		{PageNumber: 0, Groups: []*model.Group{
			{Elements: []*model.TextElement{{Text: "INT. KITCHEN - DAY", Type: model.KindSceneHeading}}},
		}},
	}

	script := Assemble(pages, "english", 1)
	if script.Title != nil {
		t.Fatalf("expected no title, got %q", *script.Title)
	}
}

// S5: page 0 has no scene heading and page 1 opens with action, not a
// scene heading or transition -- assembly synthesizes an OPENING heading.
func TestAssembleSynthesizesOpening(t *testing.T) {
	pages := []*model.Page{
		{PageNumber: 0, Groups: []*model.Group{
			{Elements: []*model.TextElement{{Text: "Somewhere far away.", Type: model.KindAction}}},
		}},
		{PageNumber: 1, Groups: []*model.Group{
			{Elements: []*model.TextElement{{Text: "A door creaks open.", Type: model.KindAction, Y: 700}}},
		}},
	}

	script := Assemble(pages, "english", 2)
	if !script.Metadata.SyntheticOpening {
		t.Fatal("expected SyntheticOpening to be true")
	}

	page1 := script.Pages[1]
	if len(page1.Groups) == 0 || len(page1.Groups[0].Elements) == 0 {
		t.Fatal("expected a synthesized group prepended to page 1")
	}
	opening := page1.Groups[0].Elements[0]
	if opening.Type != model.KindSceneHeading || opening.Text != "OPENING" {
		t.Errorf("expected a synthetic OPENING scene heading, got %+v", opening)
	}
	if opening.Y != 700-24 {
		t.Errorf("expected opening.Y placed above the first existing element, got %v", opening.Y)
	}
}

func TestAssembleNoOpeningWhenPageZeroHasSceneHeading(t *testing.T) {
	pages := []*model.Page{
		{PageNumber: 0, Groups: []*model.Group{
			{Elements: []*model.TextElement{{Text: "INT. KITCHEN - DAY", Type: model.KindSceneHeading}}},
		}},
		{PageNumber: 1, Groups: []*model.Group{
			{Elements: []*model.TextElement{{Text: "A door creaks open.", Type: model.KindAction}}},
		}},
	}

	script := Assemble(pages, "english", 2)
	if script.Metadata.SyntheticOpening {
		t.Fatal("did not expect a synthetic opening when page 0 already has a scene heading")
	}
}

func TestAssembleNoOpeningWhenPage1AlreadyOpensWithSceneHeading(t *testing.T) {
	pages := []*model.Page{
		{PageNumber: 0, Groups: []*model.Group{
			{Elements: []*model.TextElement{{Text: "Somewhere far away.", Type: model.KindAction}}},
		}},
		{PageNumber: 1, Groups: []*model.Group{
			{Elements: []*model.TextElement{{Text: "INT. SHIP - DAY", Type: model.KindSceneHeading}}},
		}},
	}

	script := Assemble(pages, "english", 2)
	if script.Metadata.SyntheticOpening {
		t.Fatal("did not expect a synthetic opening when page 1 already opens with a scene heading")
	}
}

func TestAssembleElementCountByKind(t *testing.T) {
	pages := []*model.Page{
		{PageNumber: 0, Groups: []*model.Group{
			{Elements: []*model.TextElement{
				{Type: model.KindSceneHeading},
				{Type: model.KindAction},
				{Type: model.KindAction},
				{Type: model.KindUnset},
			}},
		}},
	}

	script := Assemble(pages, "english", 1)
	if script.Metadata.ElementCountByKind[model.KindAction] != 2 {
		t.Errorf("expected 2 action elements, got %d", script.Metadata.ElementCountByKind[model.KindAction])
	}
	if script.Metadata.ElementCountByKind[model.KindSceneHeading] != 1 {
		t.Errorf("expected 1 scene_heading element, got %d", script.Metadata.ElementCountByKind[model.KindSceneHeading])
	}
	if _, ok := script.Metadata.ElementCountByKind[model.KindUnset]; ok {
		t.Error("did not expect unclassified elements to be counted")
	}
}

func TestPlainTextIndentation(t *testing.T) {
	script := &model.Script{
		Pages: []*model.Page{
			{Groups: []*model.Group{
				{Elements: []*model.TextElement{
					{Text: "JOHN", Type: model.KindCharacter},
					{Text: "Hello.", Type: model.KindDialogue},
				}},
			}},
		},
	}

	text := PlainText(script)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], strings.Repeat(" ", 20)) {
		t.Errorf("expected character line indented 20 spaces, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], strings.Repeat(" ", 10)) {
		t.Errorf("expected dialogue line indented 10 spaces, got %q", lines[1])
	}
}
