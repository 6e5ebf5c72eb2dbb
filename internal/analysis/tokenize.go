package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Token is a lower-cased word with its position in the document.
type Token struct {
	Word     string
	Index    int // word index across the whole document
	Sentence int
}

// foldText applies compatibility normalization and strips combining marks so
// "naïve" and "naive" tokenize the same.
func foldText(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFKC.String(s)
	}
	return out
}

func isSentenceBreak(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '\n', '…':
		return true
	}
	return false
}

// Tokenize splits text into sentences of lower-cased word tokens. Apostrophes
// inside words are dropped ("don't" -> "dont"); empty sentences are skipped.
func Tokenize(text string) [][]Token {
	text = foldText(text)

	var (
		sentences [][]Token
		current   []Token
		word      strings.Builder
		index     int
	)
	flushWord := func() {
		if word.Len() == 0 {
			return
		}
		current = append(current, Token{Word: word.String(), Index: index, Sentence: len(sentences)})
		index++
		word.Reset()
	}
	flushSentence := func() {
		flushWord()
		if len(current) > 0 {
			sentences = append(sentences, current)
			current = nil
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(unicode.ToLower(r))
		case r == '\'' || r == '’':
			// elided inside words
		case isSentenceBreak(r):
			flushSentence()
		default:
			flushWord()
		}
	}
	flushSentence()
	return sentences
}
