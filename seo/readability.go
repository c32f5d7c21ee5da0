package seo

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

// DefaultReadability is reported when the text has no measurable words.
const DefaultReadability = 70

var errNoWords = errors.New("readability: text has no words")

// FleschReadingEase computes 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Latin words count vowel groups as syllables; words in other scripts count as one syllable.
func FleschReadingEase(text string) (float64, error) {
	words := 0
	syllables := 0
	for _, tok := range strings.Fields(text) {
		w := strings.TrimFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if w == "" {
			continue
		}
		words++
		syllables += countSyllables(w)
	}
	if words == 0 {
		return 0, errNoWords
	}
	sentences := countSentences(text)
	if sentences == 0 {
		sentences = 1
	}
	score := 206.835 - 1.015*(float64(words)/float64(sentences)) - 84.6*(float64(syllables)/float64(words))
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, errNoWords
	}
	return score, nil
}

// ReadabilityScore clamps the Flesch score to [0,100], falling back to DefaultReadability.
func ReadabilityScore(text string) int {
	score, err := FleschReadingEase(text)
	if err != nil {
		return DefaultReadability
	}
	return clampInt(int(score), 0, 100)
}

func countSentences(text string) int {
	n := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?', '。', '！', '？':
			if !inTerminator {
				n++
			}
			inTerminator = true
		default:
			inTerminator = false
		}
	}
	return n
}

func countSyllables(word string) int {
	lower := strings.ToLower(word)
	groups := 0
	latin := 0
	prevVowel := false
	for _, r := range lower {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			prevVowel = false
			continue
		}
		latin++
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			groups++
		}
		prevVowel = vowel
	}
	if latin == 0 {
		return 1
	}
	if strings.HasSuffix(lower, "e") && !strings.HasSuffix(lower, "le") && groups > 1 {
		groups--
	}
	if groups < 1 {
		groups = 1
	}
	return groups
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
