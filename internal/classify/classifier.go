// Package classify implements the classifier: a multi-pass, position-
// and pattern-driven state machine that assigns each grouped text
// element a screenplay element kind.
package classify

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/screenplaykit/screenplay/internal/config"
	"github.com/screenplaykit/screenplay/internal/grouper"
	"github.com/screenplaykit/screenplay/internal/model"
	"github.com/screenplaykit/screenplay/internal/svcctx"
	"github.com/screenplaykit/screenplay/internal/textpatterns"
)

// rule pairs a predicate with the kind it produces and the context
// mutation that follows a successful match.
type rule struct {
	kind  model.Kind
	match predicateFn
	apply func(ctx *model.Context, el *model.TextElement)
}

// priority is the fixed, first-match-wins evaluation order. Order
// matters: title is tried before author_marker, scene_heading before
// character, and so on, exactly as laid out for the main pass.
var priority = []rule{
	{model.KindTitle, isTitle, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindAuthorMarker, isAuthorMarker, func(ctx *model.Context, el *model.TextElement) {
		ctx.RecentAuthorMarker = true
	}},
	{model.KindAuthor, isAuthor, func(ctx *model.Context, el *model.TextElement) {
		ctx.RecentAuthorMarker = false
	}},
	{model.KindSourceCredit, isSourceCredit, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindSourceMarker, isSourceMarker, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindSourceNames, isSourceNames, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindPageNumber, isPageNumber, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindNotes, isNotes, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindSceneHeading, isSceneHeading, func(ctx *model.Context, el *model.TextElement) {
		ctx.SetSceneHeadingX(el.X)
		ctx.SceneHeadingFound = true
		if ctx.FirstSceneHeadingY == nil {
			y := el.Y
			ctx.FirstSceneHeadingY = &y
		}
	}},
	{model.KindCharacter, isCharacter, func(ctx *model.Context, el *model.TextElement) {
		ctx.SetCharacterX(el.X)
	}},
	{model.KindAction, isAction, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindParenthetical, isParenthetical, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindDialogue, isDialogue, func(ctx *model.Context, el *model.TextElement) {
		ctx.SetDialogueX(el.X)
	}},
	{model.KindContinuation, isContinuation, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindSubheading, isSubheading, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindTransition, isTransition, func(ctx *model.Context, el *model.TextElement) {}},
	{model.KindSceneNumber, isSceneNumber, func(ctx *model.Context, el *model.TextElement) {}},
}

// ClassificationError reports an unexpected failure inside the
// classifier. The core is total on well-formed input, so this should be
// rare in practice.
type ClassificationError struct {
	Stage  string
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classification error in %s: %s: %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("classification error in %s: %s", e.Stage, e.Reason)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Result is the classifier's output before StructureAssembler turns it
// into a Script: classified pages plus the final global context.
type Result struct {
	Pages   []*model.Page
	Context *model.Context
}

// Classify runs the full boundary pre-pass, main pass, second pass, and
// final pass over input, in that order, and returns the classified
// pages. It never mutates input.
func Classify(ctx context.Context, input model.ScriptInput, cfg *config.Config) (*Result, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := svcctx.LoggerFrom(ctx)
	if logger != nil {
		logger.Info("classify: starting", "run_id", runID, "pages", len(input.Pages))
	}

	pages, err := buildPages(input.Pages, cfg)
	if err != nil {
		return nil, &ClassificationError{Stage: "grouping", Reason: err.Error(), Err: err}
	}

	boundary := findBoundary(pages)

	global := &model.Context{ScreenplayBoundary: boundary}
	runMainPass(pages, global)
	runSecondPass(pages, boundary, global)
	runFinalPass(pages, global)

	if logger != nil {
		logger.Info("classify: finished", "run_id", runID, "scene_heading_found", global.SceneHeadingFound)
	}

	return &Result{Pages: pages, Context: global}, nil
}

func validate(input model.ScriptInput) error {
	if input.Pages == nil {
		return &model.ValidationError{Field: "pages", Reason: "missing"}
	}
	return nil
}

func buildPages(inputs []model.PageInput, cfg *config.Config) ([]*model.Page, error) {
	pages := make([]*model.Page, len(inputs))
	for i, pi := range inputs {
		width := pi.Width
		if width == 0 {
			width = cfg.PDF.DefaultWidth
		}
		height := pi.Height
		if height == 0 {
			height = cfg.PDF.DefaultHeight
		}

		elements := grouper.BuildTextElements(pi.TextItems, width)
		groups := grouper.GroupByGap(elements, cfg.Grouping.GapThreshold)

		pages[i] = &model.Page{
			PageNumber: i,
			PageWidth:  width,
			PageHeight: height,
			Groups:     groups,
			RawSpans:   pi.TextItems,
		}
	}
	return pages, nil
}

// findBoundary is the pre-pass: the first element in document order
// whose text is a scene heading or transition by pattern alone defines
// the screenplay boundary.
func findBoundary(pages []*model.Page) *model.Boundary {
	for pi, page := range pages {
		for gi, group := range page.Groups {
			for ei, el := range group.Elements {
				if textpatterns.SceneHeading(el.Text) || textpatterns.Transition(el.Text) {
					return &model.Boundary{PageIdx: pi, GroupIdx: gi, ElementIdx: ei}
				}
			}
		}
	}
	return nil
}

// comparePosition orders (pageIdx, groupIdx, elIdx) against b: -1 before,
// 0 equal, 1 after. A nil boundary means "never reached" -- everything
// compares before it.
func comparePosition(pageIdx, groupIdx, elIdx int, b *model.Boundary) int {
	if b == nil {
		return -1
	}
	if pageIdx != b.PageIdx {
		if pageIdx < b.PageIdx {
			return -1
		}
		return 1
	}
	if groupIdx != b.GroupIdx {
		if groupIdx < b.GroupIdx {
			return -1
		}
		return 1
	}
	if elIdx != b.ElementIdx {
		if elIdx < b.ElementIdx {
			return -1
		}
		return 1
	}
	return 0
}

func runMainPass(pages []*model.Page, global *model.Context) {
	for pi, page := range pages {
		global.PageNumber = page.PageNumber
		global.PageWidth = page.PageWidth
		global.PageHeight = page.PageHeight

		for gi, group := range page.Groups {
			for ei, el := range group.Elements {
				global.ScreenplayStarted = comparePosition(pi, gi, ei, global.ScreenplayBoundary) >= 0

				for _, r := range priority {
					if r.match(el, ei, group, global) {
						el.Type = r.kind
						r.apply(global, el)
						break
					}
				}
			}
		}
	}
}

func runSecondPass(pages []*model.Page, boundary *model.Boundary, global *model.Context) {
	for _, page := range pages {
		if page.PageNumber == 0 {
			retroactiveTitleRecovery(page)
		}
	}
	for pi, page := range pages {
		dualDialogueDetection(page, pi, boundary)
	}
	subheadingRecovery(pages, global)
}

// retroactiveTitleRecovery re-examines page-0 groups once the whole page
// has been classified: everything before the first author-attribution
// marker that looks like a title gets reclassified as one.
func retroactiveTitleRecovery(page *model.Page) {
	for _, group := range page.Groups {
		var markerIdxs []int
		for i, el := range group.Elements {
			if el.Type == model.KindAuthorMarker {
				markerIdxs = append(markerIdxs, i)
			}
			if el.Type == model.KindTitle && strings.ToLower(strings.TrimSpace(el.Text)) == "screenplay" {
				markerIdxs = append(markerIdxs, i)
			}
		}

		if len(markerIdxs) > 0 {
			first := markerIdxs[0]
			for _, i := range markerIdxs {
				if i < first {
					first = i
				}
			}
			for i := 0; i < first; i++ {
				el := group.Elements[i]
				text := strings.ToLower(strings.TrimSpace(el.Text))
				if !el.Centered || !isTitleLike(el.Text) || text == "screenplay" {
					continue
				}
				if el.Type == model.KindCharacter || el.Type == model.KindUnset || el.Type == model.KindTitle {
					el.Type = model.KindTitle
				}
			}
		}

		for _, el := range group.Elements {
			if el.Type == model.KindTitle && strings.ToLower(strings.TrimSpace(el.Text)) == "screenplay" {
				el.Type = model.KindAuthorMarker
			}
		}
	}
}

// dualDialogueDetection looks for two character cues side by side within
// one group -- simultaneous dialogue laid out in two columns.
func dualDialogueDetection(page *model.Page, pageIdx int, boundary *model.Boundary) {
	for gi, group := range page.Groups {
		if comparePosition(pageIdx, gi, 0, boundary) < 0 {
			continue
		}

		var left, right []int
		for i, el := range group.Elements {
			if el.Type != model.KindUnset {
				continue
			}
			if !textpatterns.Character(el.Text) {
				continue
			}
			if el.X >= 150 && el.X <= 220 {
				left = append(left, i)
			}
			if el.X >= 350 && el.X <= 450 {
				right = append(right, i)
			}
		}
		if len(left) == 0 || len(right) == 0 {
			continue
		}

		candidate := make(map[int]bool)
		for _, i := range left {
			candidate[i] = true
		}
		for _, i := range right {
			candidate[i] = true
		}

		for i, el := range group.Elements {
			switch {
			case candidate[i]:
				el.Type = model.KindCharacter
				el.IsDualDialogue = true
			case el.X >= 80 && el.X <= 140 && (el.Type == model.KindUnset || el.Type == model.KindAction):
				el.Type = model.KindDialogue
				el.IsDualDialogue = true
			case el.Type == model.KindUnset && el.X >= 300 && el.X <= 370:
				el.Type = model.KindDialogue
				el.IsDualDialogue = true
			}
		}
	}
}

// subheadingRecovery catches subheadings the main pass missed because
// screenplay_started flipped mid-group: anything left unclassified that
// looks like a subheading and sits at the scene-heading column or hard
// left margin becomes one. The left-margin threshold here (110) is
// intentionally narrower than the main pass's (140).
func subheadingRecovery(pages []*model.Page, global *model.Context) {
	for _, page := range pages {
		for _, group := range page.Groups {
			for _, el := range group.Elements {
				if el.Type != model.KindUnset || !textpatterns.Subheading(el.Text) {
					continue
				}
				atColumn := el.X <= 110
				if global.SceneHeadingXPosition != nil && math.Abs(el.X-*global.SceneHeadingXPosition) <= 5 {
					atColumn = true
				}
				if atColumn {
					el.Type = model.KindSubheading
				}
			}
		}
	}
}

func runFinalPass(pages []*model.Page, global *model.Context) {
	if !global.SceneHeadingFound {
		return
	}
	for _, page := range pages {
		for _, group := range page.Groups {
			for _, el := range group.Elements {
				if el.Type == model.KindUnset {
					el.Type = model.KindAction
				}
			}
		}
	}
}
