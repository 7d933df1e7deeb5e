package pdf

// Structure is the chapter, theme, subtheme tree of a document.
// Every level keeps the order in which its entries were first seen.
type Structure struct {
	Chapters []Chapter `json:"chapters" yaml:"chapters"`
}

type Chapter struct {
	Title  string  `json:"title" yaml:"title"`
	Themes []Theme `json:"themes" yaml:"themes"`
}

type Theme struct {
	Title     string     `json:"title" yaml:"title"`
	Subthemes []Subtheme `json:"subthemes" yaml:"subthemes"`
}

type Subtheme struct {
	Title  string    `json:"title" yaml:"title"`
	Blocks []Content `json:"blocks" yaml:"blocks"`
}

// Content is a single block inside a subtheme. ID is set when the block was loaded from storage.
type Content struct {
	ID        int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Page      int    `json:"page" yaml:"page"`
	Text      string `json:"text" yaml:"text"`
	Important bool   `json:"important,omitempty" yaml:"important,omitempty"`
}

// FromBlocks groups tagged blocks into a Structure.
func FromBlocks(blocks []Block) *Structure {
	s := &Structure{}
	for _, b := range blocks {
		s.Add(b.Chapter, b.Theme, b.Subtheme, Content{Page: b.Page, Text: b.Text})
	}
	return s
}

// Add appends content under the given labels, creating missing levels.
// Empty labels are replaced with the placeholders.
func (s *Structure) Add(chapter, theme, subtheme string, c Content) {
	chapter = orDefault(chapter, NoChapter)
	theme = orDefault(theme, NoTheme)
	subtheme = orDefault(subtheme, NoSubtheme)

	ci := -1
	for i := range s.Chapters {
		if s.Chapters[i].Title == chapter {
			ci = i
			break
		}
	}
	if ci < 0 {
		s.Chapters = append(s.Chapters, Chapter{Title: chapter})
		ci = len(s.Chapters) - 1
	}
	ch := &s.Chapters[ci]

	ti := -1
	for i := range ch.Themes {
		if ch.Themes[i].Title == theme {
			ti = i
			break
		}
	}
	if ti < 0 {
		ch.Themes = append(ch.Themes, Theme{Title: theme})
		ti = len(ch.Themes) - 1
	}
	th := &ch.Themes[ti]

	si := -1
	for i := range th.Subthemes {
		if th.Subthemes[i].Title == subtheme {
			si = i
			break
		}
	}
	if si < 0 {
		th.Subthemes = append(th.Subthemes, Subtheme{Title: subtheme})
		si = len(th.Subthemes) - 1
	}
	th.Subthemes[si].Blocks = append(th.Subthemes[si].Blocks, c)
}

// Blocks flattens the structure back into tagged blocks in tree order.
func (s *Structure) Blocks() []Block {
	var blocks []Block
	s.Walk(func(chapter, theme, subtheme string, c Content) {
		blocks = append(blocks, Block{
			Page:     c.Page,
			Chapter:  chapter,
			Theme:    theme,
			Subtheme: subtheme,
			Text:     c.Text,
		})
	})
	return blocks
}

// Walk visits every content block in tree order.
func (s *Structure) Walk(fn func(chapter, theme, subtheme string, c Content)) {
	for _, ch := range s.Chapters {
		for _, th := range ch.Themes {
			for _, sub := range th.Subthemes {
				for _, c := range sub.Blocks {
					fn(ch.Title, th.Title, sub.Title, c)
				}
			}
		}
	}
}

// Len returns the number of content blocks.
func (s *Structure) Len() int {
	n := 0
	s.Walk(func(string, string, string, Content) { n++ })
	return n
}
