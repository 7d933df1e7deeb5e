package quiz

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const incorrectMarker = " (incorreta)"

// antonyms is the fixed substitution table for wrong alternatives.
var antonyms = map[string]string{
	"grande":   "pequeno",
	"aumento":  "diminuição",
	"positivo": "negativo",
	"melhor":   "pior",
	"certo":    "errado",
}

// Distractor returns a plausible wrong version of sentence: the first word found in the
// antonym table is swapped and "..." appended. Sentences with fewer than three words,
// or without any word from the table, get the "(incorreta)" marker instead.
// Nothing guarantees the result is actually wrong.
func Distractor(sentence string) string {
	words := strings.Fields(sentence)
	if len(words) < 3 {
		return sentence + incorrectMarker
	}

	for i, w := range words {
		core := strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) })
		replacement, ok := antonyms[strings.ToLower(core)]
		if !ok {
			continue
		}
		if first, _ := utf8.DecodeRuneInString(core); unicode.IsUpper(first) {
			replacement = capitalize(replacement)
		}
		words[i] = strings.Replace(w, core, replacement, 1)
		return strings.Join(words, " ") + "..."
	}
	return sentence + incorrectMarker
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
