package classify

import (
	"math"
	"strings"
	"unicode"

	"github.com/screenplaykit/screenplay/internal/model"
	"github.com/screenplaykit/screenplay/internal/textpatterns"
)

// predicateFn decides whether element el, at position idx within group,
// qualifies for one element kind. All predicates here combine geometry
// (el.X/Y/Centered, ctx column positions) with the pure text predicates
// in textpatterns.
type predicateFn func(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool

// characterPosition: once the character column is established, require a
// 1pt match; otherwise accept the wide default band.
func characterPosition(x float64, ctx *model.Context) bool {
	if ctx.CharacterXPosition != nil {
		return math.Abs(x-*ctx.CharacterXPosition) <= 1
	}
	return x >= 180 && x <= 400
}

// actionPosition: once the scene-heading column is established, require a
// 1pt match; otherwise accept the left-margin default.
func actionPosition(x float64, ctx *model.Context) bool {
	if ctx.SceneHeadingXPosition != nil {
		return math.Abs(x-*ctx.SceneHeadingXPosition) <= 1
	}
	return x <= 140
}

// dialoguePosition requires both the scene-heading and character columns
// to already be established.
func dialoguePosition(x float64, ctx *model.Context) bool {
	if ctx.SceneHeadingXPosition == nil || ctx.CharacterXPosition == nil {
		return false
	}
	if ctx.DialogueXPosition != nil {
		return math.Abs(x-*ctx.DialogueXPosition) <= 1
	}
	return x > *ctx.SceneHeadingXPosition && x < *ctx.CharacterXPosition
}

func isTitleLike(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if textpatterns.AllCapsText(t) {
		return true
	}
	return isTitleCase(t)
}

// isTitleCase treats text as title-case when a majority of its words
// begin with an uppercase letter.
func isTitleCase(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	capCount := properWordCount(text)
	return capCount*2 >= len(words)
}

func properWordCount(text string) int {
	count := 0
	for _, w := range strings.Fields(text) {
		r := []rune(w)
		if len(r) > 0 && unicode.IsUpper(r[0]) {
			count++
		}
	}
	return count
}

func looksLikeHumanName(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" || len(t) > 50 {
		return false
	}
	words := strings.Fields(t)
	if len(words) < 1 || len(words) > 4 {
		return false
	}
	hasLetter := false
	for _, r := range t {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}
	lower := strings.ToLower(t)
	for _, bad := range []string{"based on", "novel", "draft", "version"} {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	return true
}

func isTitle(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	t := strings.TrimSpace(el.Text)
	if !el.Centered || t == "" {
		return false
	}
	if len(t) > 50 {
		return false
	}
	if len(group.Elements) > 3 {
		return false
	}
	if !isTitleLike(t) {
		return false
	}
	if properWordCount(t) > 6 {
		return false
	}
	lower := strings.ToLower(t)
	if lower == "by" || lower == "written" || lower == "based on the novel" {
		return false
	}
	if ctx.PageNumber != 0 {
		return false
	}
	if textpatterns.AuthorMarker(t) || textpatterns.SourceMarker(t) ||
		textpatterns.SourceCredit(t) || textpatterns.SourceNames(t) {
		return false
	}
	return !ctx.RecentAuthorMarker
}

func isAuthorMarker(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	return ctx.PageNumber == 0 && el.Centered && textpatterns.AuthorMarker(el.Text)
}

func isAuthor(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if ctx.PageNumber != 0 || !el.Centered {
		return false
	}
	if idx > 0 && textpatterns.AuthorMarker(group.Elements[idx-1].Text) {
		return true
	}
	return ctx.RecentAuthorMarker && looksLikeHumanName(el.Text)
}

func isSourceCredit(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	return ctx.PageNumber == 0 && el.Centered && textpatterns.SourceCredit(el.Text)
}

func isSourceMarker(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	return ctx.PageNumber == 0 && el.Centered && textpatterns.SourceMarker(el.Text)
}

func isSourceNames(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	return ctx.PageNumber == 0 && el.Centered && textpatterns.SourceNames(el.Text)
}

func isPageNumber(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if !textpatterns.PageNumber(el.Text) {
		return false
	}
	return el.Y < 100 || el.Y > 700
}

func isNotes(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if ctx.PageNumber == 0 && textpatterns.Notes(el.Text) {
		return true
	}
	return el.Y < 40
}

func isSceneHeading(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	return textpatterns.SceneHeading(el.Text)
}

func isCharacter(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if !characterPosition(el.X, ctx) || !textpatterns.Character(el.Text) {
		return false
	}
	if !(ctx.ScreenplayStarted || ctx.PageNumber <= 2) {
		return false
	}

	if idx > 0 {
		prev := group.Elements[idx-1]
		gapOK := el.GapToPrev != nil && *el.GapToPrev > 15
		if math.Abs(el.X-prev.X) > 50 {
			gapOK = true
		}
		return gapOK
	}

	if len(group.Elements) == 1 {
		return true
	}
	for _, following := range group.Elements[1:] {
		if following.GapToPrev != nil && *following.GapToPrev > 3 {
			return false
		}
	}
	return true
}

func isAction(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if !ctx.ScreenplayStarted {
		return false
	}
	if textpatterns.Transition(el.Text) || textpatterns.SceneHeading(el.Text) {
		return false
	}
	return actionPosition(el.X, ctx)
}

func isParenthetical(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if !textpatterns.Parenthetical(el.Text) {
		return false
	}
	if el.X < 180 || el.X > 280 {
		return false
	}
	for i := 0; i < idx; i++ {
		prior := group.Elements[i]
		if prior.Type == model.KindCharacter || textpatterns.Character(prior.Text) {
			return true
		}
	}
	return false
}

func isDialogue(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if !(ctx.ScreenplayStarted || ctx.PageNumber <= 2) {
		return false
	}
	if ctx.CharacterXPosition == nil {
		return false
	}
	return dialoguePosition(el.X, ctx)
}

func isContinuation(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	return textpatterns.Continuation(el.Text)
}

func isSubheading(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if !ctx.ScreenplayStarted || !textpatterns.Subheading(el.Text) {
		return false
	}
	if ctx.SceneHeadingXPosition != nil && math.Abs(el.X-*ctx.SceneHeadingXPosition) <= 1 {
		return true
	}
	return el.X <= 140
}

func isTransition(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if idx != 0 || !textpatterns.Transition(el.Text) {
		return false
	}
	return el.X <= 180 || el.X >= 400
}

func isSceneNumber(el *model.TextElement, idx int, group *model.Group, ctx *model.Context) bool {
	if !textpatterns.SceneNumber(el.Text) {
		return false
	}
	if !(el.X < 100 || el.X >= 500) {
		return false
	}
	return el.Y >= 100 && el.Y <= 700
}
