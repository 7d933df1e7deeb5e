package export

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/estudazilla/internal/export/docx"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

// Deck is the file form of a set of flashcards.
type Deck struct {
	Title string     `yaml:"title"`
	Cards []DeckCard `yaml:"cards"`
}

type DeckCard struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Chapter    string `yaml:"chapter,omitempty"`
	Theme      string `yaml:"theme,omitempty"`
	Difficulty int    `yaml:"difficulty,omitempty"`
}

// NewDeck converts stored flashcards into a deck.
func NewDeck(title string, cards []study.Flashcard) Deck {
	deck := Deck{Title: title, Cards: make([]DeckCard, 0, len(cards))}
	for _, c := range cards {
		deck.Cards = append(deck.Cards, DeckCard{
			Question:   c.Question,
			Answer:     c.Answer,
			Chapter:    c.Chapter,
			Theme:      c.Theme,
			Difficulty: int(c.Difficulty),
		})
	}
	return deck
}

// FlashcardsText renders each card as a question and answer pair.
func FlashcardsText(cards []study.Flashcard) string {
	var b strings.Builder
	for _, c := range cards {
		fmt.Fprintf(&b, "Pergunta: %s\nResposta: %s\n\n", c.Question, c.Answer)
	}
	return b.String()
}

func flashcardsMarkdown(title string, cards []study.Flashcard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for i, c := range cards {
		fmt.Fprintf(&b, "## %d. %s\n\n**Resposta:** %s\n\n", i+1, c.Question, c.Answer)
	}
	return b.String()
}

// ExportFlashcards writes flashcards in format. YAML writes a Deck that ImportDeck reads back.
func (e *Exporter) ExportFlashcards(name string, cards []study.Flashcard, format Format) (string, error) {
	path, err := e.prepare(name, format)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatTXT:
		return writeFile(path, []byte(FlashcardsText(cards)))
	case FormatYAML:
		data, err := yaml.Marshal(NewDeck(name, cards))
		if err != nil {
			return "", fmt.Errorf("yaml.Marshal() > %w", err)
		}
		return writeFile(path, data)
	case FormatDOCX:
		doc := docx.New()
		doc.AddHeading(name, 1)
		for _, c := range cards {
			doc.AddParagraph("Pergunta: " + c.Question)
			doc.AddParagraph("Resposta: " + c.Answer)
			doc.AddParagraph("")
		}
		if err := doc.Save(path); err != nil {
			return "", fmt.Errorf("doc.Save() > %w", err)
		}
		return path, nil
	case FormatMarkdown, FormatPDF, FormatHTML:
		return writeMarkdown(path, name, []byte(flashcardsMarkdown(name, cards)), format)
	}
	return "", fmt.Errorf("flashcards as %s: %w", format, ErrUnsupportedFormat)
}

// ImportDeck reads a deck written by ExportFlashcards.
func ImportDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var deck Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return &deck, nil
}
