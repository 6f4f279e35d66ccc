package scoring

import "strings"

// Keywords counted toward essay relevance. Each counts once.
var Keywords = []string{"education", "career", "financial", "future", "support"}

const (
	MinEssayWords      = 150
	minReadability     = 40.0
	maxRelevanceCredit = 30
	maxEssayScore      = 100
	goodEssayScore     = 60
)

// EssayResult holds the essay score and the metrics it was built from.
// Relevance is reported uncapped.
type EssayResult struct {
	Score       int     `json:"score"`
	WordCount   int     `json:"wordCount"`
	Readability float64 `json:"readability"`
	Relevance   int     `json:"relevance"`
	Quality     string  `json:"quality"`
}

func ScoreEssay(text string) EssayResult {
	words := len(strings.Fields(text))
	readability := FleschReadingEase(text)
	relevance := Relevance(text)

	score := 0
	if words >= MinEssayWords {
		score += 30
	}
	if readability > minReadability {
		score += 20
	}
	score += min(relevance, maxRelevanceCredit)
	score = min(score, maxEssayScore)

	quality := "Needs Improvement"
	if score >= goodEssayScore {
		quality = "Good"
	}
	return EssayResult{
		Score:       score,
		WordCount:   words,
		Readability: readability,
		Relevance:   relevance,
		Quality:     quality,
	}
}

// Relevance is 10 points per distinct keyword found as a case-insensitive substring.
func Relevance(text string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n * 10
}
