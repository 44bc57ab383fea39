// Package model defines the data shapes the classifier consumes and
// produces: spans in, a typed Script out.
package model

// Kind is the closed set of screenplay element types a TextElement can
// be classified as. The zero value means "unclassified".
type Kind string

const (
	KindUnset Kind = ""

	KindTitle         Kind = "title"
	KindAuthorMarker  Kind = "author_marker"
	KindAuthor        Kind = "author"
	KindSourceMarker  Kind = "source_marker"
	KindSourceCredit  Kind = "source_credit"
	KindSourceNames   Kind = "source_names"
	KindNotes         Kind = "notes"
	KindPageNumber    Kind = "page_number"
	KindSceneNumber   Kind = "scene_number"
	KindSceneHeading  Kind = "scene_heading"
	KindSubheading    Kind = "subheading"
	KindCharacter     Kind = "character"
	KindParenthetical Kind = "parenthetical"
	KindDialogue      Kind = "dialogue"
	KindAction        Kind = "action"
	KindTransition    Kind = "transition"
	KindContinuation  Kind = "continuation"
)

// validKinds supports IsValid / the round-trip invariant that every
// element's type is unset or one of the closed set.
var validKinds = map[Kind]bool{
	KindTitle: true, KindAuthorMarker: true, KindAuthor: true,
	KindSourceMarker: true, KindSourceCredit: true, KindSourceNames: true,
	KindNotes: true, KindPageNumber: true, KindSceneNumber: true,
	KindSceneHeading: true, KindSubheading: true, KindCharacter: true,
	KindParenthetical: true, KindDialogue: true, KindAction: true,
	KindTransition: true, KindContinuation: true,
}

// IsValid reports whether k is the unset kind or a member of the closed set.
func (k Kind) IsValid() bool {
	return k == KindUnset || validKinds[k]
}

// Span is one contiguous run of text on a PDF page as reported by the
// extraction collaborator. Font and FontSize are optional; zero values
// are tolerated and defaulted by callers that care.
type Span struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"font_size,omitempty"`
	Font     string  `json:"font,omitempty"`
}

// TextElement is a Span enriched with gap and centering information and,
// once classified, a Kind.
type TextElement struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"font_size,omitempty"`
	Font     string  `json:"font,omitempty"`

	GapToPrev *float64 `json:"gap_to_prev,omitempty"`
	GapToNext *float64 `json:"gap_to_next,omitempty"`
	Centered  bool     `json:"centered"`

	Type           Kind `json:"type,omitempty"`
	IsDualDialogue bool `json:"is_dual_dialogue,omitempty"`
}

// Group is an ordered run of TextElements within one page, delimited by
// vertical gaps at or above the grouping threshold.
type Group struct {
	Elements []*TextElement `json:"elements"`
}

// Page holds one page's raw spans, grouped elements, and geometry.
type Page struct {
	PageNumber int     `json:"page_number"` // 0-based in output
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
	Groups     []*Group `json:"groups"`
	RawSpans   []Span   `json:"raw_spans,omitempty"`
}

// Boundary marks a document-order position by page/group/element index.
type Boundary struct {
	PageIdx    int `json:"page_idx"`
	GroupIdx   int `json:"group_idx"`
	ElementIdx int `json:"element_idx"`
}

// Context is the mutable state threaded through classification. Column
// x-positions are first-write-wins: once set, never reassigned.
type Context struct {
	SceneHeadingXPosition *float64
	CharacterXPosition    *float64
	DialogueXPosition     *float64

	FirstSceneHeadingY *float64
	SceneHeadingFound  bool

	ScreenplayBoundary *Boundary
	ScreenplayStarted  bool

	RecentAuthorMarker bool

	PageNumber int
	PageWidth  float64
	PageHeight float64
}

// SetSceneHeadingX sets the scene-heading column the first time it is
// observed; later calls are no-ops.
func (c *Context) SetSceneHeadingX(x float64) {
	if c.SceneHeadingXPosition == nil {
		v := x
		c.SceneHeadingXPosition = &v
	}
}

// SetCharacterX sets the character-name column the first time it is observed.
func (c *Context) SetCharacterX(x float64) {
	if c.CharacterXPosition == nil {
		v := x
		c.CharacterXPosition = &v
	}
}

// SetDialogueX sets the dialogue column the first time it is observed.
func (c *Context) SetDialogueX(x float64) {
	if c.DialogueXPosition == nil {
		v := x
		c.DialogueXPosition = &v
	}
}

// Script is the classifier's output: a typed, page-ordered document.
type Script struct {
	Title       *string  `json:"title,omitempty"`
	Pages       []*Page  `json:"pages"`
	FullText    string   `json:"full_text,omitempty"`
	Language    string   `json:"language,omitempty"`
	TotalPages  int      `json:"total_pages"`
	Metadata    Metadata `json:"metadata"`
}

// Metadata summarizes a Script: counts by kind and whether a synthetic
// OPENING scene heading was inserted during assembly.
type Metadata struct {
	ElementCountByKind map[Kind]int `json:"element_count_by_kind,omitempty"`
	SyntheticOpening   bool         `json:"synthetic_opening"`
}

// PageInput is the per-page shape the external PDF extraction
// collaborator hands to the core.
type PageInput struct {
	PageNumber int     `json:"page_number"` // 1-based, as emitted by the extractor
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	TextItems  []Span  `json:"text_items"`
}

// ScriptInput is the full external input record: pages plus a
// precomputed language label.
type ScriptInput struct {
	Pages      []PageInput `json:"pages"`
	Language   string      `json:"language"`
	TotalPages int         `json:"total_pages"`
}

// ValidationError reports a malformed input document at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Reason
	}
	return "validation error: " + e.Field + ": " + e.Reason
}
