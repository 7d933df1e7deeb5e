package pdf_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/at-ishikawa/estudazilla/internal/pdf"
)

var _ = Describe("SectionTagger", func() {
	var tagger *pdf.SectionTagger

	BeforeEach(func() {
		tagger = pdf.NewSectionTagger()
	})

	It("labels blocks before any heading with placeholders", func() {
		block := tagger.Tag(1, "Texto introdutório sem cabeçalho.")
		Expect(block).To(Equal(pdf.Block{
			Page:     1,
			Chapter:  pdf.NoChapter,
			Theme:    pdf.NoTheme,
			Subtheme: pdf.NoSubtheme,
			Text:     "Texto introdutório sem cabeçalho.",
		}))
	})

	DescribeTable("heading recognition",
		func(text, chapter, theme, subtheme string) {
			block := tagger.Tag(1, text)
			Expect(block.Chapter).To(Equal(chapter))
			Expect(block.Theme).To(Equal(theme))
			Expect(block.Subtheme).To(Equal(subtheme))
		},
		Entry("accented chapter", "CAPÍTULO 1: Introdução\ntexto", "Introdução", pdf.NoTheme, pdf.NoSubtheme),
		Entry("unaccented lower case chapter", "capitulo 2. Fundamentos", "Fundamentos", pdf.NoTheme, pdf.NoSubtheme),
		Entry("english chapter", "Chapter 3: Basics", "Basics", pdf.NoTheme, pdf.NoSubtheme),
		Entry("theme", "TEMA 1: Células", pdf.NoChapter, "Células", pdf.NoSubtheme),
		Entry("english topic", "Topic 4. Energy", pdf.NoChapter, "Energy", pdf.NoSubtheme),
		Entry("subtheme", "SUBTEMA 1: Mitocôndria", pdf.NoChapter, pdf.NoTheme, "Mitocôndria"),
		Entry("misspelled subtheme", "SUTEMA 2: Núcleo", pdf.NoChapter, pdf.NoTheme, "Núcleo"),
		Entry("english subtopic", "Subtopic 1: Cells", pdf.NoChapter, pdf.NoTheme, "Cells"),
		Entry("number without separator is not a heading", "TEMA 1 Células", pdf.NoChapter, pdf.NoTheme, pdf.NoSubtheme),
	)

	It("carries labels across blocks and clears lower levels", func() {
		blocks := []pdf.Block{
			tagger.Tag(1, "CAPÍTULO 1: Biologia"),
			tagger.Tag(2, "TEMA 1: Células"),
			tagger.Tag(3, "SUBTEMA 1: Organelas"),
			tagger.Tag(4, "conteúdo sem cabeçalho"),
			tagger.Tag(5, "TEMA 2: Tecidos"),
			tagger.Tag(6, "CAPÍTULO 2: Química"),
		}

		Expect(blocks[3]).To(Equal(pdf.Block{
			Page: 4, Chapter: "Biologia", Theme: "Células", Subtheme: "Organelas", Text: "conteúdo sem cabeçalho",
		}))
		Expect(blocks[4].Theme).To(Equal("Tecidos"))
		Expect(blocks[4].Subtheme).To(Equal(pdf.NoSubtheme))
		Expect(blocks[5].Chapter).To(Equal("Química"))
		Expect(blocks[5].Theme).To(Equal(pdf.NoTheme))
		Expect(blocks[5].Subtheme).To(Equal(pdf.NoSubtheme))
	})

	It("applies only the highest level heading of a block", func() {
		tagger.Tag(1, "TEMA 1: Antigo")
		block := tagger.Tag(2, "CAPÍTULO 5: Novo\nTEMA 9: Ignorado")
		Expect(block.Chapter).To(Equal("Novo"))
		Expect(block.Theme).To(Equal(pdf.NoTheme))
	})

	It("never emits empty labels", func() {
		for i, text := range []string{"a", "SUBTEMA 1: x", "b", "CAPÍTULO 1: y", "c"} {
			block := tagger.Tag(i+1, text)
			Expect(block.Chapter).NotTo(BeEmpty())
			Expect(block.Theme).NotTo(BeEmpty())
			Expect(block.Subtheme).NotTo(BeEmpty())
		}
	})

	It("forgets the carried state on reset", func() {
		tagger.Tag(1, "CAPÍTULO 1: Biologia")
		tagger.Reset()
		Expect(tagger.Tag(2, "texto").Chapter).To(Equal(pdf.NoChapter))
	})
})
