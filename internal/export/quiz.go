package export

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/estudazilla/internal/assets"
	"github.com/at-ishikawa/estudazilla/internal/export/docx"
	"github.com/at-ishikawa/estudazilla/internal/quiz"
)

const (
	quizTitle      = "SIMULADO GERADO PELO ESTUDAZILLA"
	answerKeyTitle = "GABARITO"
)

type quizData struct {
	Questions []quiz.Question
}

// QuizText renders questions followed by the answer key.
func QuizText(questions []quiz.Question) string {
	var b strings.Builder
	b.WriteString(quizTitle + "\n\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Text())
		for j, o := range q.Options {
			fmt.Fprintf(&b, "   %s) %s\n", assets.Letter(j), o)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n\n" + answerKeyTitle + "\n\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, assets.AnswerKey(q.Options, q.Answer))
		if q.Explanation != "" {
			fmt.Fprintf(&b, "   Explicação: %s\n", q.Explanation)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// QuizDocument lays questions out with the answer key on a new page.
func QuizDocument(questions []quiz.Question) *docx.Document {
	doc := docx.New()
	doc.AddHeading(quizTitle, 1)
	for i, q := range questions {
		doc.AddParagraph(fmt.Sprintf("%d. %s", i+1, q.Text()))
		for j, o := range q.Options {
			doc.AddListItem(fmt.Sprintf("%s) %s", assets.Letter(j), o))
		}
		doc.AddParagraph("")
	}

	doc.AddPageBreak()
	doc.AddHeading(answerKeyTitle, 1)
	for i, q := range questions {
		doc.AddParagraph(fmt.Sprintf("%d. %s", i+1, assets.AnswerKey(q.Options, q.Answer)))
		if q.Explanation != "" {
			doc.AddParagraph("   Explicação: " + q.Explanation)
		}
		doc.AddParagraph("")
	}
	return doc
}

// ExportQuiz writes questions and their answer key in format.
func (e *Exporter) ExportQuiz(name string, questions []quiz.Question, format Format) (string, error) {
	path, err := e.prepare(name, format)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatTXT:
		return writeFile(path, []byte(QuizText(questions)))
	case FormatDOCX:
		if err := QuizDocument(questions).Save(path); err != nil {
			return "", fmt.Errorf("doc.Save() > %w", err)
		}
		return path, nil
	case FormatMarkdown, FormatPDF, FormatHTML:
		md, err := e.renderQuizMarkdown(quizData{Questions: questions})
		if err != nil {
			return "", err
		}
		return writeMarkdown(path, quizTitle, md, format)
	}
	return "", fmt.Errorf("quiz as %s: %w", format, ErrUnsupportedFormat)
}
