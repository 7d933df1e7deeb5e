package pdf_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/at-ishikawa/estudazilla/internal/pdf"
)

var _ = Describe("Structure", func() {
	blocks := []pdf.Block{
		{Page: 1, Chapter: "B", Theme: "T1", Subtheme: "S1", Text: "one"},
		{Page: 2, Chapter: "A", Theme: "T1", Subtheme: "S1", Text: "two"},
		{Page: 3, Chapter: "B", Theme: "T2", Subtheme: "S1", Text: "three"},
		{Page: 4, Chapter: "B", Theme: "T1", Subtheme: "S2", Text: "four"},
		{Page: 5, Chapter: "B", Theme: "T1", Subtheme: "S1", Text: "five"},
	}

	It("keeps first-seen order at every level", func() {
		s := pdf.FromBlocks(blocks)

		Expect(s.Chapters).To(HaveLen(2))
		Expect(s.Chapters[0].Title).To(Equal("B"))
		Expect(s.Chapters[1].Title).To(Equal("A"))

		b := s.Chapters[0]
		Expect(b.Themes).To(HaveLen(2))
		Expect(b.Themes[0].Title).To(Equal("T1"))
		Expect(b.Themes[0].Subthemes).To(HaveLen(2))
		Expect(b.Themes[0].Subthemes[0].Blocks).To(Equal([]pdf.Content{
			{Page: 1, Text: "one"},
			{Page: 5, Text: "five"},
		}))
		Expect(s.Len()).To(Equal(5))
	})

	It("flattens back into tree order", func() {
		got := pdf.FromBlocks(blocks).Blocks()
		var pages []int
		for _, b := range got {
			pages = append(pages, b.Page)
		}
		Expect(pages).To(Equal([]int{1, 5, 4, 3, 2}))
	})

	It("replaces empty labels with placeholders", func() {
		s := &pdf.Structure{}
		s.Add("", "", "", pdf.Content{Page: 1, Text: "x"})
		Expect(s.Blocks()).To(Equal([]pdf.Block{{
			Page: 1, Chapter: pdf.NoChapter, Theme: pdf.NoTheme, Subtheme: pdf.NoSubtheme, Text: "x",
		}}))
	})
})
