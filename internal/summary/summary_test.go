package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const cellText = `A célula é a unidade básica da vida. A membrana da célula controla a entrada de substâncias.
O núcleo da célula guarda o material genético. As mitocôndrias são responsáveis pela energia da célula.
A parede celular existe nas plantas. Organismos unicelulares possuem uma única célula.`

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "splits on terminators followed by whitespace",
			text: "Primeira frase. Segunda frase!  Terceira?\nQuarta",
			want: []string{"Primeira frase.", "Segunda frase!", "Terceira?", "Quarta"},
		},
		{
			name: "keeps decimals and ellipses inside sentences",
			text: "O valor é 3.5 metros... Depois vem outra.",
			want: []string{"O valor é 3.5 metros...", "Depois vem outra."},
		},
		{
			name: "collapses line breaks",
			text: "Uma frase\nquebrada em linhas.",
			want: []string{"Uma frase quebrada em linhas."},
		},
		{
			name: "empty text",
			text: "  \n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.text))
		})
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{
			name: "most frequent content words first",
			text: cellText,
			n:    3,
			want: []string{"célula", "unidade", "básica"},
		},
		{
			name: "ties keep first occurrence order",
			text: "Energia solar e energia eólica. Vento e sol.",
			n:    5,
			want: []string{"energia", "solar", "eólica", "vento", "sol"},
		},
		{
			name: "stopwords only",
			text: "de para com o a",
			n:    5,
			want: []string{},
		},
		{
			name: "negative count",
			text: cellText,
			n:    -1,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keywords(tt.text, tt.n))
		})
	}
}

func TestToPastTense(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     string
	}{
		{name: "singular", sentence: "A célula é a unidade.", want: "A célula foi a unidade."},
		{name: "plural", sentence: "Elas são importantes.", want: "Elas foram importantes."},
		{name: "capitalized", sentence: "É simples.", want: "Foi simples."},
		{name: "words containing é are kept", sentence: "Também até café.", want: "Também até café."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPastTense(tt.sentence))
		})
	}
}

func TestSummarizer_Summarize(t *testing.T) {
	s := NewSummarizer(2, 5)

	tests := []struct {
		name  string
		text  string
		style Style
		want  string
	}{
		{
			name:  "flashcard",
			text:  cellText,
			style: StyleFlashcard,
			want: "Pergunta: A célula foi a unidade básica da vida.?\n" +
				"Resposta: A membrana da célula controla a entrada de substâncias. O núcleo da célula guarda o material genético....",
		},
		{
			name:  "flashcard with a single sentence",
			text:  "Apenas uma frase",
			style: StyleFlashcard,
			want:  "Pergunta: Qual é o tópico principal?\nResposta: Apenas uma frase...",
		},
		{
			name:  "mindmap",
			text:  cellText,
			style: StyleMindmap,
			want:  "célula\n    └── unidade\n    └── básica\n    └── vida",
		},
		{
			name:  "mindmap without keywords",
			text:  "de para",
			style: StyleMindmap,
			want:  "Tópico Principal\n",
		},
		{
			name:  "dissertative without sentences",
			text:  "",
			style: StyleDissertative,
			want:  "",
		},
		{
			name:  "bullet with fewer sentences than the limit",
			text:  "Uma. Duas.",
			style: StyleBullet,
			want:  "Uma.\n• Duas.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Summarize(tt.text, tt.style))
		})
	}
}

func TestSummarizer_Dissertative(t *testing.T) {
	got := NewSummarizer(5, 5).Summarize(cellText, StyleDissertative)

	assert.True(t, strings.HasPrefix(got, "O texto aborda principalmente sobre célula, unidade, básica. A célula é a unidade básica da vida."))
	assert.Contains(t, got, "...Portanto, pode-se compreender que Organismos unicelulares possuem uma única célula....")
}

func TestSummarizer_Bullet(t *testing.T) {
	got := NewSummarizer(3, 5).Summarize(cellText, StyleBullet)

	lines := strings.Split(got, "\n• ")
	assert.Len(t, lines, 3)
	sentences := Sentences(cellText)
	last := -1
	for _, line := range lines {
		idx := indexOf(sentences, line)
		assert.Greater(t, idx, last, "sentences must keep their original order")
		last = idx
	}
}

func TestSummarizer_BulletPrefersDenseSentences(t *testing.T) {
	text := "Energia solar. Energia solar. Energia solar. " +
		"Ontem choveu forte na cidade antiga de pedra sem energia."

	got := NewSummarizer(3, 5).Summarize(text, StyleBullet)

	assert.Equal(t, "Energia solar.\n• Energia solar.\n• Energia solar.", got)
}

func indexOf(items []string, item string) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return -1
}

func TestParseStyle(t *testing.T) {
	assert.Equal(t, StyleMindmap, ParseStyle("MINDMAP"))
	assert.Equal(t, StyleBullet, ParseStyle("unknown"))
}

func TestSplitFlashcard(t *testing.T) {
	q, a := SplitFlashcard("Pergunta: O que foi?\nResposta: Uma resposta...")
	assert.Equal(t, "O que foi?", q)
	assert.Equal(t, "Uma resposta...", a)

	q, a = SplitFlashcard("sem formato")
	assert.Equal(t, "sem formato", q)
	assert.Empty(t, a)
}
