// Package summary condenses study text into bullet lists, flashcards, essays and mind maps.
package summary

import (
	"fmt"
	"sort"
	"strings"
)

// Style selects the shape of a summary.
type Style string

const (
	StyleBullet       Style = "bullet"
	StyleFlashcard    Style = "flashcard"
	StyleDissertative Style = "dissertative"
	StyleMindmap      Style = "mindmap"
)

// Styles lists every supported style.
var Styles = []Style{StyleBullet, StyleFlashcard, StyleDissertative, StyleMindmap}

// ParseStyle returns the style named s. Unknown names select the bullet style.
func ParseStyle(s string) Style {
	for _, style := range Styles {
		if strings.EqualFold(s, string(style)) {
			return style
		}
	}
	return StyleBullet
}

const (
	bulletSeparator  = "\n• "
	mindmapBranch    = "    └── "
	defaultMainTopic = "Tópico Principal"
	defaultQuestion  = "Qual é o tópico principal?"
)

// Summarizer produces summaries in the fixed styles.
type Summarizer struct {
	sentences int
	keywords  int
}

// NewSummarizer creates a summarizer keeping up to sentences sentences in bullet summaries.
func NewSummarizer(sentences, keywords int) *Summarizer {
	if sentences <= 0 {
		sentences = 5
	}
	if keywords <= 0 {
		keywords = 5
	}
	return &Summarizer{sentences: sentences, keywords: keywords}
}

// Summarize renders text in the given style.
func (s *Summarizer) Summarize(text string, style Style) string {
	switch style {
	case StyleFlashcard:
		return s.flashcard(text)
	case StyleDissertative:
		return s.dissertative(text)
	case StyleMindmap:
		return s.mindmap(text)
	default:
		return s.bullet(text)
	}
}

// bullet keeps the highest scoring sentences in their original order.
// A sentence scores the document frequency of its content words, averaged over its length.
func (s *Summarizer) bullet(text string) string {
	sentences := Sentences(text)
	if len(sentences) <= s.sentences {
		return strings.Join(sentences, bulletSeparator)
	}

	freq := make(map[string]int)
	for _, w := range ContentWords(text) {
		freq[w]++
	}

	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, sentence := range sentences {
		words := ContentWords(sentence)
		total := 0
		for _, w := range words {
			total += freq[w]
		}
		score := 0.0
		if len(words) > 0 {
			score = float64(total) / float64(len(words))
		}
		scores[i] = scored{index: i, score: score}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	picked := scores[:s.sentences]
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].index < picked[j].index
	})
	kept := make([]string, 0, len(picked))
	for _, p := range picked {
		kept = append(kept, sentences[p.index])
	}
	return strings.Join(kept, bulletSeparator)
}

func (s *Summarizer) flashcard(text string) string {
	sentences := Sentences(text)
	if len(sentences) < 2 {
		return fmt.Sprintf("Pergunta: %s\nResposta: %s...", defaultQuestion, Truncate(Normalize(text), 200))
	}

	question := Question(sentences[0])
	end := min(3, len(sentences))
	answer := Truncate(strings.Join(sentences[1:end], " "), 300) + "..."
	return fmt.Sprintf("Pergunta: %s\nResposta: %s", question, answer)
}

func (s *Summarizer) dissertative(text string) string {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return ""
	}

	keywords := Keywords(text, s.keywords)
	intro := fmt.Sprintf("O texto aborda principalmente sobre %s. ", strings.Join(keywords[:min(3, len(keywords))], ", "))
	development := Truncate(strings.Join(sentences[:min(3, len(sentences))], " "), 500) + "..."
	conclusion := "Portanto, pode-se compreender que " + Truncate(sentences[len(sentences)-1], 150) + "..."
	return intro + development + conclusion
}

func (s *Summarizer) mindmap(text string) string {
	keywords := Keywords(text, s.keywords)
	if len(keywords) == 0 {
		return defaultMainTopic + "\n"
	}

	branches := make([]string, 0, 3)
	for _, kw := range keywords[1:min(4, len(keywords))] {
		branches = append(branches, mindmapBranch+kw)
	}
	return keywords[0] + "\n" + strings.Join(branches, "\n")
}

// Question turns a statement into a flashcard question.
func Question(sentence string) string {
	return Truncate(ToPastTense(sentence), 100) + "?"
}

// SplitFlashcard separates a flashcard summary into its question and answer.
func SplitFlashcard(card string) (question, answer string) {
	q, a, found := strings.Cut(card, "\nResposta: ")
	question = strings.TrimPrefix(q, "Pergunta: ")
	if !found {
		return question, ""
	}
	return question, a
}
