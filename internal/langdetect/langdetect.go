// Package langdetect wraps lingua-go: the external language-detection
// collaborator. It produces a label string; the classifier core only
// stores it on Script.Language, never branches on it.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector wraps a configured lingua-go detector over a candidate
// language set.
type Detector struct {
	inner lingua.LanguageDetector
}

// byName maps the English names used in config to lingua-go's Language
// constants. Unrecognized names are ignored by New.
var byName = map[string]lingua.Language{
	"english": lingua.English,
	"french":  lingua.French,
	"spanish": lingua.Spanish,
	"german":  lingua.German,
}

// New builds a Detector restricted to the given language names (e.g.
// "English", "French"). Unrecognized names are ignored; if none match,
// all languages lingua-go ships are used.
func New(languageNames []string) *Detector {
	var languages []lingua.Language
	for _, name := range languageNames {
		if lang, ok := byName[strings.ToLower(name)]; ok {
			languages = append(languages, lang)
		}
	}
	if len(languages) == 0 {
		languages = lingua.AllLanguages()
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	return &Detector{inner: detector}
}

// Detect returns a lowercase language label ("english", "french", ...)
// for the combined text of a document, or "unknown" if no confident
// match is found.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return "unknown"
	}
	lang, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return "unknown"
	}
	return strings.ToLower(lang.String())
}
