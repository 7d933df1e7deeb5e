package summary

import (
	_ "embed"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

//go:embed stopwords_pt.txt
var stopwordsFile string

var stopwords = func() map[string]struct{} {
	words := make(map[string]struct{})
	for _, line := range strings.Split(stopwordsFile, "\n") {
		w := strings.TrimSpace(line)
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}()

var lower = cases.Lower(language.BrazilianPortuguese)

// IsStopword reports whether word (lower case) is a Portuguese stopword.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// Normalize composes accents and collapses every run of whitespace into one space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

// Sentences splits text after '.', '!' or '?' when followed by whitespace or the end of text.
// Runs of terminators such as "..." stay with their sentence.
func Sentences(text string) []string {
	text = Normalize(text)
	var (
		sentences []string
		start     int
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isTerminator(runes[j+1]) {
			j++
		}
		if j+1 == len(runes) || unicode.IsSpace(runes[j+1]) {
			if s := strings.TrimSpace(string(runes[start : j+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = j + 1
		}
		i = j
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Words returns the lower-cased alphanumeric tokens of text.
func Words(text string) []string {
	return strings.FieldsFunc(lower.String(norm.NFC.String(text)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContentWords returns Words without stopwords.
func ContentWords(text string) []string {
	words := Words(text)
	kept := words[:0]
	for _, w := range words {
		if !IsStopword(w) {
			kept = append(kept, w)
		}
	}
	return kept
}

// Keywords returns the n most frequent content words, ties broken by first occurrence.
func Keywords(text string, n int) []string {
	type entry struct {
		word  string
		count int
		first int
	}
	index := make(map[string]int)
	var entries []entry
	for i, w := range ContentWords(text) {
		if k, ok := index[w]; ok {
			entries[k].count++
			continue
		}
		index[w] = len(entries)
		entries = append(entries, entry{word: w, count: 1, first: i})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	n = max(0, min(n, len(entries)))
	keywords := make([]string, 0, n)
	for _, e := range entries[:n] {
		keywords = append(keywords, e.word)
	}
	return keywords
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var pastTense = map[string]string{
	"é":   "foi",
	"É":   "Foi",
	"são": "foram",
	"São": "Foram",
}

// ToPastTense rewrites the standalone verbs "é" and "são" as "foi" and "foram".
func ToPastTense(sentence string) string {
	fields := strings.Fields(sentence)
	for i, f := range fields {
		core := strings.TrimFunc(f, func(r rune) bool { return !unicode.IsLetter(r) })
		if replacement, ok := pastTense[core]; ok {
			fields[i] = strings.Replace(f, core, replacement, 1)
		}
	}
	return strings.Join(fields, " ")
}
