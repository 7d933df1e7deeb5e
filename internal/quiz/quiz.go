// Package quiz builds practice questions from study text by slicing sentences.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/at-ishikawa/estudazilla/internal/pdf"
	"github.com/at-ishikawa/estudazilla/internal/summary"
)

// Type is the kind of a question.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeTrueFalse      Type = "true_false"
	TypeShortAnswer    Type = "short_answer"
	TypeCaseStudy      Type = "case_study"
)

// Types lists every supported question type.
var Types = []Type{TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer, TypeCaseStudy}

// ParseType returns the type named s. Unknown names select multiple choice.
func ParseType(s string) Type {
	for _, t := range Types {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return TypeMultipleChoice
}

const (
	True  = "Verdadeiro"
	False = "Falso"

	multipleChoicePrefix = "Qual das alternativas abaixo completa corretamente: "
	caseStudyPrompt      = "Como você resolveria esta situação?"
	caseStudyAnswer      = "Uma possível solução seria "

	explanationMultipleChoice = "Esta informação pode ser encontrada no texto original."
	explanationTrue           = "Esta afirmação está de acordo com o texto original."
	explanationFalse          = "Esta afirmação contradiz o texto original."
	explanationShortAnswer    = "A resposta pode ser encontrada no texto original."
	explanationCaseStudy      = "Esta é uma das possíveis abordagens baseadas no conteúdo estudado."
)

// Question is a generated practice question.
type Question struct {
	Type        Type     `json:"type" yaml:"type"`
	Context     string   `json:"context,omitempty" yaml:"context,omitempty"`
	Prompt      string   `json:"question" yaml:"question"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Answer      string   `json:"answer" yaml:"answer"`
	Explanation string   `json:"explanation" yaml:"explanation"`
	Difficulty  int      `json:"difficulty" yaml:"difficulty"`
}

// Text returns the prompt preceded by its context, if any.
func (q Question) Text() string {
	if q.Context == "" {
		return q.Prompt
	}
	return q.Context + "\n\n" + q.Prompt
}

// AnswerIndex returns the position of the answer among the options, or -1.
func (q Question) AnswerIndex() int {
	for i, o := range q.Options {
		if o == q.Answer {
			return i
		}
	}
	return -1
}

// Generator builds questions. It is not safe for concurrent use.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a generator seeded with seed, or with the current time when seed is 0.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGeneratorWithSource(rand.NewPCG(uint64(seed), uint64(seed>>1)))
}

// NewGeneratorWithSource creates a generator drawing randomness from src.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rand: rand.New(src)}
}

// Generate builds up to n questions of type t. Question i is built from the sentences
// starting at i, so the first question always starts at the first sentence.
// Windows too short for the type produce no question.
func (g *Generator) Generate(sentences []string, n int, t Type) []Question {
	if n <= 0 {
		return nil
	}
	build := g.builder(t)
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		q, ok := build(sentences, i)
		if !ok {
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

// GenerateFromText splits text into sentences before generating.
func (g *Generator) GenerateFromText(text string, n int, t Type) []Question {
	return g.Generate(summary.Sentences(text), n, t)
}

// GenerateFromStructure uses every sentence of every block in tree order.
func (g *Generator) GenerateFromStructure(s *pdf.Structure, n int, t Type) []Question {
	return g.Generate(SentencesFromStructure(s), n, t)
}

// SentencesFromStructure flattens the blocks of s into sentences.
func SentencesFromStructure(s *pdf.Structure) []string {
	var sentences []string
	s.Walk(func(_, _, _ string, c pdf.Content) {
		sentences = append(sentences, summary.Sentences(c.Text)...)
	})
	return sentences
}

func (g *Generator) builder(t Type) func(all []string, offset int) (Question, bool) {
	switch t {
	case TypeTrueFalse:
		return g.trueFalse
	case TypeShortAnswer:
		return g.shortAnswer
	case TypeCaseStudy:
		return g.caseStudy
	default:
		return g.multipleChoice
	}
}

func (g *Generator) multipleChoice(all []string, offset int) (Question, bool) {
	s := window(all, offset)
	if len(s) < 4 {
		return Question{}, false
	}

	correct := summary.Truncate(s[1], 100)
	options := []string{
		correct,
		summary.Truncate(s[2], 100),
		summary.Truncate(s[3], 100),
		Distractor(correct),
	}
	g.rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		Type:        TypeMultipleChoice,
		Prompt:      prompt(s[0]),
		Options:     options,
		Answer:      correct,
		Explanation: explanationMultipleChoice,
		Difficulty:  1,
	}, true
}

func (g *Generator) trueFalse(all []string, _ int) (Question, bool) {
	if len(all) == 0 {
		return Question{}, false
	}

	statement := all[g.rand.IntN(len(all))]
	if g.rand.IntN(2) == 0 {
		return Question{
			Type:        TypeTrueFalse,
			Prompt:      statement,
			Options:     []string{True, False},
			Answer:      True,
			Explanation: explanationTrue,
			Difficulty:  1,
		}, true
	}
	return Question{
		Type:        TypeTrueFalse,
		Prompt:      Distractor(statement),
		Options:     []string{True, False},
		Answer:      False,
		Explanation: explanationFalse,
		Difficulty:  1,
	}, true
}

func (g *Generator) shortAnswer(all []string, offset int) (Question, bool) {
	s := window(all, offset)
	if len(s) < 2 {
		return Question{}, false
	}
	return Question{
		Type:        TypeShortAnswer,
		Prompt:      prompt(s[0]),
		Answer:      summary.Truncate(s[1], 150),
		Explanation: explanationShortAnswer,
		Difficulty:  1,
	}, true
}

func (g *Generator) caseStudy(all []string, offset int) (Question, bool) {
	s := window(all, offset)
	if len(s) < 3 {
		return Question{}, false
	}
	return Question{
		Type:        TypeCaseStudy,
		Context:     strings.Join(s[:3], " "),
		Prompt:      caseStudyPrompt,
		Answer:      caseStudyAnswer + summary.Truncate(s[len(s)-1], 150),
		Explanation: explanationCaseStudy,
		Difficulty:  2,
	}, true
}

func window(all []string, offset int) []string {
	if offset >= len(all) {
		return nil
	}
	return all[offset:]
}

func prompt(sentence string) string {
	return fmt.Sprintf("%s%s...", multipleChoicePrefix, summary.Truncate(summary.ToPastTense(sentence), 100))
}
