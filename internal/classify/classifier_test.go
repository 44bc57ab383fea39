package classify

import (
	"context"
	"testing"

	"github.com/screenplaykit/screenplay/internal/config"
	"github.com/screenplaykit/screenplay/internal/model"
)

func span(text string, x, y, width, height float64) model.Span {
	return model.Span{Text: text, X: x, Y: y, Width: width, Height: height}
}

func kindsOf(t *testing.T, result *Result) []model.Kind {
	t.Helper()
	var kinds []model.Kind
	for _, page := range result.Pages {
		for _, group := range page.Groups {
			for _, el := range group.Elements {
				kinds = append(kinds, el.Type)
			}
		}
	}
	return kinds
}

func firstOfKind(result *Result, kind model.Kind) *model.TextElement {
	for _, page := range result.Pages {
		for _, group := range page.Groups {
			for _, el := range group.Elements {
				if el.Type == kind {
					return el
				}
			}
		}
	}
	return nil
}

// S1: a minimal scene heading followed by action is classified as
// scene_heading then action.
func TestClassifyMinimalSceneHeading(t *testing.T) {
	input := model.ScriptInput{
		Pages: []model.PageInput{
			{
				PageNumber: 1,
				Width:      612,
				Height:     792,
				TextItems: []model.Span{
					span("INT. KITCHEN - DAY", 100, 100, 200, 12),
					span("John pours coffee.", 100, 130, 200, 12),
				},
			},
		},
		TotalPages: 1,
	}

	result, err := Classify(context.Background(), input, config.DefaultConfig())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	heading := firstOfKind(result, model.KindSceneHeading)
	if heading == nil {
		t.Fatal("expected a scene_heading element")
	}
	action := firstOfKind(result, model.KindAction)
	if action == nil {
		t.Fatal("expected the trailing line to become action")
	}
}

// S2: character cue establishes the character column, and the indented
// line beneath it becomes dialogue at the character's x once the scene
// heading column is also established.
func TestClassifyCharacterAndDialogueColumnEstablishment(t *testing.T) {
	input := model.ScriptInput{
		Pages: []model.PageInput{
			{
				PageNumber: 1,
				Width:      612,
				Height:     792,
				TextItems: []model.Span{
					span("INT. KITCHEN - DAY", 108, 100, 200, 12),
					span("JOHN", 250, 130, 60, 12),
					span("Coffee's ready.", 200, 145, 150, 12),
				},
			},
		},
		TotalPages: 1,
	}

	result, err := Classify(context.Background(), input, config.DefaultConfig())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	character := firstOfKind(result, model.KindCharacter)
	if character == nil {
		t.Fatal("expected a character element")
	}
	if result.Context.CharacterXPosition == nil || *result.Context.CharacterXPosition != 250 {
		t.Errorf("expected character column to be established at x=250, got %+v", result.Context.CharacterXPosition)
	}
}

// S3: a title-page pattern (centered title, "by", author name) is
// classified as title, author_marker, author.
func TestClassifyTitlePagePattern(t *testing.T) {
	input := model.ScriptInput{
		Pages: []model.PageInput{
			{
				PageNumber: 1,
				Width:      612,
				Height:     792,
				TextItems: []model.Span{
					span("THE LONG ROAD HOME", 200, 200, 200, 16),
					span("by", 290, 230, 20, 12),
					span("Jane Doe", 270, 250, 60, 12),
				},
			},
			{
				PageNumber: 2,
				Width:      612,
				Height:     792,
				TextItems: []model.Span{
					span("INT. HOUSE - DAY", 108, 100, 200, 12),
				},
			},
		},
		TotalPages: 2,
	}

	result, err := Classify(context.Background(), input, config.DefaultConfig())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if firstOfKind(result, model.KindTitle) == nil {
		t.Error("expected a title element")
	}
	if firstOfKind(result, model.KindAuthorMarker) == nil {
		t.Error("expected an author_marker element")
	}
	if firstOfKind(result, model.KindAuthor) == nil {
		t.Error("expected an author element")
	}
}

// S4: two unclassified character cues side by side, left and right of the
// page, are both recognized as simultaneous dialogue and tagged
// IsDualDialogue. dualDialogueDetection only ever sees elements the main
// pass left unclassified, so it is exercised directly here rather than
// through the full pipeline (which would classify a same-line character
// cue on its own before the second pass ever runs).
func TestClassifyDualDialogue(t *testing.T) {
	page := &model.Page{
		PageNumber: 0,
		Groups: []*model.Group{
			{Elements: []*model.TextElement{
				{Text: "JOHN", X: 180, Type: model.KindUnset},
				{Text: "JANE", X: 380, Type: model.KindUnset},
				{Text: "Hello there.", X: 100, Type: model.KindUnset},
				{Text: "Hi yourself.", X: 350, Type: model.KindUnset},
			}},
		},
	}

	boundary := &model.Boundary{PageIdx: 0, GroupIdx: -1, ElementIdx: 0}
	dualDialogueDetection(page, 0, boundary)

	var dualCharacters, dualDialogue int
	for _, el := range page.Groups[0].Elements {
		if !el.IsDualDialogue {
			continue
		}
		switch el.Type {
		case model.KindCharacter:
			dualCharacters++
		case model.KindDialogue:
			dualDialogue++
		}
	}
	if dualCharacters != 2 {
		t.Errorf("expected 2 dual-dialogue character elements, got %d", dualCharacters)
	}
	if dualDialogue != 2 {
		t.Errorf("expected 2 dual-dialogue dialogue elements, got %d", dualDialogue)
	}
}

// S5: when page 0 has no scene heading and page 1 doesn't open with one
// either, assembly (not classification itself) is responsible for the
// synthetic OPENING heading -- verified in the assemble package. Here we
// confirm classification alone leaves such content unclassified-to-action
// once a later scene heading is found.
func TestClassifyNoSceneHeadingOnFirstPage(t *testing.T) {
	input := model.ScriptInput{
		Pages: []model.PageInput{
			{
				PageNumber: 1,
				Width:      612,
				Height:     792,
				TextItems: []model.Span{
					span("Somewhere far away.", 100, 100, 200, 12),
				},
			},
			{
				PageNumber: 2,
				Width:      612,
				Height:     792,
				TextItems: []model.Span{
					span("INT. SHIP - DAY", 108, 100, 200, 12),
				},
			},
		},
		TotalPages: 2,
	}

	result, err := Classify(context.Background(), input, config.DefaultConfig())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !result.Context.SceneHeadingFound {
		t.Error("expected scene_heading_found to be true once page 2's heading is reached")
	}
}

// S6: a bare page number near the top margin is classified as
// page_number, not notes or action.
func TestClassifyPageNumberVsNotes(t *testing.T) {
	input := model.ScriptInput{
		Pages: []model.PageInput{
			{
				PageNumber: 1,
				Width:      612,
				Height:     792,
				TextItems: []model.Span{
					span("2.", 550, 20, 20, 12),
					span("INT. KITCHEN - DAY", 108, 100, 200, 12),
				},
			},
		},
		TotalPages: 1,
	}

	result, err := Classify(context.Background(), input, config.DefaultConfig())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if firstOfKind(result, model.KindPageNumber) == nil {
		t.Error("expected a page_number element near the top margin")
	}
}

// The boundary pre-pass is pattern-only: a transition that isn't the
// first element in its group, and sits outside isTransition's geometry
// bands, must still mark the boundary.
func TestFindBoundaryMatchesTransitionByPatternAlone(t *testing.T) {
	page := &model.Page{
		Groups: []*model.Group{
			{Elements: []*model.TextElement{
				{Text: "Meanwhile, across town.", X: 100},
				{Text: "CUT TO:", X: 250},
			}},
		},
	}

	boundary := findBoundary([]*model.Page{page})
	if boundary == nil {
		t.Fatal("expected a boundary to be found")
	}
	if boundary.PageIdx != 0 || boundary.GroupIdx != 0 || boundary.ElementIdx != 1 {
		t.Errorf("expected boundary at (0,0,1), got %+v", boundary)
	}
}

func TestFindBoundaryMatchesSceneHeadingByPatternAlone(t *testing.T) {
	page := &model.Page{
		Groups: []*model.Group{
			{Elements: []*model.TextElement{
				{Text: "Some preamble.", X: 100},
				{Text: "INT. KITCHEN - DAY", X: 100},
			}},
		},
	}

	boundary := findBoundary([]*model.Page{page})
	if boundary == nil || boundary.ElementIdx != 1 {
		t.Fatalf("expected boundary at element index 1, got %+v", boundary)
	}
}

func TestClassifyRejectsMissingPages(t *testing.T) {
	_, err := Classify(context.Background(), model.ScriptInput{}, config.DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for missing pages")
	}
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("expected a *model.ValidationError, got %T", err)
	}
}

func TestClassifyAcceptsEmptyPages(t *testing.T) {
	input := model.ScriptInput{Pages: []model.PageInput{}, TotalPages: 0}
	result, err := Classify(context.Background(), input, config.DefaultConfig())
	if err != nil {
		t.Fatalf("expected no error for an explicitly empty page list, got %v", err)
	}
	if len(result.Pages) != 0 {
		t.Errorf("expected zero pages, got %d", len(result.Pages))
	}
}
