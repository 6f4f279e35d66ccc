package scoring

import (
	"strings"
	"unicode"
)

// FleschReadingEase computes 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Text with no words scores 0.
func FleschReadingEase(text string) float64 {
	words := lexicon(text)
	if len(words) == 0 {
		return 0
	}
	sentences := sentenceCount(text)
	syllables := 0
	for _, w := range words {
		syllables += syllableCount(w)
	}
	wordCount := float64(len(words))
	return 206.835 - 1.015*(wordCount/float64(sentences)) - 84.6*(float64(syllables)/wordCount)
}

// lexicon splits text into words with punctuation stripped, dropping tokens
// that were punctuation only.
func lexicon(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, f)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// sentenceCount counts runs terminated by '.', '!', '?' or end of text.
// Runs of two words or fewer are not counted; the result is at least 1.
func sentenceCount(text string) int {
	count := 0
	for _, s := range strings.FieldsFunc(text, isSentenceEnd) {
		if len(lexicon(s)) > 2 {
			count++
		}
	}
	if count < 1 {
		return 1
	}
	return count
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// syllableCount estimates syllables as vowel groups, discounting a silent
// trailing "e". Every word has at least one syllable.
func syllableCount(word string) int {
	w := strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if len(w) > 2 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && !isVowel(rune(w[len(w)-2])) {
		count--
	}
	if count < 1 {
		return 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
