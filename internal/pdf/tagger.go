package pdf

import (
	"regexp"
	"strings"
)

const (
	NoChapter  = "Sem Capítulo"
	NoTheme    = "Sem Tema"
	NoSubtheme = "Sem Subtema"
)

var (
	chapterPattern  = regexp.MustCompile(`(?i)(CAP[ÍI]TULO|CHAPTER)\s*(\d+)[.:]\s*(.+)`)
	themePattern    = regexp.MustCompile(`(?i)\b(TEMA|TOPIC)\s*(\d+)[.:]\s*(.+)`)
	subthemePattern = regexp.MustCompile(`(?i)(SUB?TEMA|SUBTOPIC)\s*(\d+)[.:]\s*(.+)`)
)

// Block is a page of text tagged with the section it belongs to.
type Block struct {
	Page     int    `json:"page" yaml:"page"`
	Chapter  string `json:"chapter" yaml:"chapter"`
	Theme    string `json:"theme" yaml:"theme"`
	Subtheme string `json:"subtheme" yaml:"subtheme"`
	Text     string `json:"text" yaml:"text"`
}

// SectionTagger carries the current chapter, theme and subtheme across blocks.
// At most one heading is applied per block, checked in chapter, theme, subtheme order.
type SectionTagger struct {
	chapter  string
	theme    string
	subtheme string
}

func NewSectionTagger() *SectionTagger {
	return &SectionTagger{}
}

// Tag updates the carried state from the headings found in text and returns the labelled block.
func (t *SectionTagger) Tag(page int, text string) Block {
	if m := chapterPattern.FindStringSubmatch(text); m != nil {
		t.chapter = strings.TrimSpace(m[3])
		t.theme = ""
		t.subtheme = ""
	} else if m := themePattern.FindStringSubmatch(text); m != nil {
		t.theme = strings.TrimSpace(m[3])
		t.subtheme = ""
	} else if m := subthemePattern.FindStringSubmatch(text); m != nil {
		t.subtheme = strings.TrimSpace(m[3])
	}

	return Block{
		Page:     page,
		Chapter:  orDefault(t.chapter, NoChapter),
		Theme:    orDefault(t.theme, NoTheme),
		Subtheme: orDefault(t.subtheme, NoSubtheme),
		Text:     text,
	}
}

// Reset clears the carried state so the tagger can be reused for another document.
func (t *SectionTagger) Reset() {
	t.chapter, t.theme, t.subtheme = "", "", ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
