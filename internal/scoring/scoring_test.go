package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainEssay returns n words of short, easy sentences with no keywords.
func plainEssay(n int) string {
	base := strings.Fields("I want to learn and grow each day.")
	words := make([]string, 0, n)
	for len(words) < n {
		words = append(words, base[len(words)%len(base)])
	}
	return strings.Join(words, " ")
}

// denseEssay returns n long words as a single sentence.
func denseEssay(n int) string {
	base := []string{"considerable", "administrative", "responsibilities", "notwithstanding"}
	words := make([]string, 0, n)
	for len(words) < n {
		words = append(words, base[len(words)%len(base)])
	}
	return strings.Join(words, " ") + "."
}

func baseInput() EligibilityInput {
	return EligibilityInput{
		CGPA:       6.0,
		Income:     250000,
		Category:   CategoryGeneral,
		Attendance: 60,
		Scheme:     SchemeNeedBased,
	}
}

func TestCGPABands(t *testing.T) {
	cases := []struct {
		cgpa   float64
		points int
		low    bool
	}{
		{10, 40, false},
		{9, 40, false},
		{8.99, 30, false},
		{8, 30, false},
		{7.99, 20, false},
		{7, 20, false},
		{6.99, 0, true},
		{0, 0, true},
	}
	for _, tc := range cases {
		in := baseInput()
		in.CGPA = tc.cgpa
		got := ScoreEligibility(in)
		assert.Equal(t, tc.points, got.Score, "cgpa %v", tc.cgpa)
		assert.Equal(t, tc.low, contains(got.Reasons, ReasonLowCGPA), "cgpa %v", tc.cgpa)
	}
}

func TestIncomeBands(t *testing.T) {
	cases := []struct {
		income int64
		points int
		high   bool
	}{
		{0, 30, false},
		{150000, 30, false},
		{150001, 20, false},
		{200000, 20, false},
		{200001, 0, true},
	}
	for _, tc := range cases {
		in := baseInput()
		in.Income = tc.income
		got := ScoreEligibility(in)
		assert.Equal(t, tc.points, got.Score, "income %d", tc.income)
		assert.Equal(t, tc.high, contains(got.Reasons, ReasonHighIncome), "income %d", tc.income)
	}
}

func TestAttendanceBands(t *testing.T) {
	cases := []struct {
		attendance int
		points     int
		low        bool
	}{
		{100, 20, false},
		{85, 20, false},
		{84, 10, false},
		{75, 10, false},
		{74, 0, true},
	}
	for _, tc := range cases {
		in := baseInput()
		in.Attendance = tc.attendance
		got := ScoreEligibility(in)
		assert.Equal(t, tc.points, got.Score, "attendance %d", tc.attendance)
		assert.Equal(t, tc.low, contains(got.Reasons, ReasonLowAttendance), "attendance %d", tc.attendance)
	}
}

func TestCategoryAndHostellerBonus(t *testing.T) {
	for _, c := range Categories {
		in := baseInput()
		in.Category = c
		want := 0
		if c == CategorySC || c == CategoryST {
			want = 10
		}
		assert.Equal(t, want, ScoreEligibility(in).Score, "category %s", c)
	}

	in := baseInput()
	in.Hosteller = true
	assert.Equal(t, 5, ScoreEligibility(in).Score)
}

func TestEligibilityIsNotClamped(t *testing.T) {
	got := ScoreEligibility(EligibilityInput{
		CGPA:       9.5,
		Income:     100000,
		Category:   CategoryST,
		Attendance: 95,
		Hosteller:  true,
		Scheme:     SchemeMeritBased,
	})
	assert.Equal(t, 105, got.Score)
	assert.Empty(t, got.Reasons)
	assert.True(t, got.Eligible)
}

func TestThresholdBySchemeIsCosmetic(t *testing.T) {
	assert.Equal(t, 70, Threshold(SchemeMeritBased))
	assert.Equal(t, 60, Threshold(SchemeMeritAndMeans))
	assert.Equal(t, 50, Threshold(SchemeNeedBased))

	// 60 points: eligible for Merit + Means, not for Merit Based.
	in := EligibilityInput{CGPA: 8.5, Income: 180000, Attendance: 80, Category: CategoryGeneral}
	in.Scheme = SchemeMeritBased
	merit := ScoreEligibility(in)
	in.Scheme = SchemeMeritAndMeans
	means := ScoreEligibility(in)
	require.Equal(t, 60, merit.Score)
	assert.False(t, merit.Eligible)
	assert.Equal(t, "Academically Not Eligible", merit.Verdict())
	assert.True(t, means.Eligible)
	assert.Equal(t, "Academically Eligible", means.Verdict())
}

func TestEssayLengthReadabilityAndTwoKeywords(t *testing.T) {
	text := "Education helps my career. " + plainEssay(146)
	got := ScoreEssay(text)
	require.Equal(t, 150, got.WordCount)
	require.Greater(t, got.Readability, 40.0)
	assert.Equal(t, 20, got.Relevance)
	assert.Equal(t, 70, got.Score)
	assert.Equal(t, "Good", got.Quality)
}

func TestEssayBelowMinimumLength(t *testing.T) {
	got := ScoreEssay("Education helps my career. " + plainEssay(145))
	require.Equal(t, 149, got.WordCount)
	assert.Equal(t, 40, got.Score)
	assert.Equal(t, "Needs Improvement", got.Quality)
}

func TestEssayRelevanceCapAndRepetition(t *testing.T) {
	keywords := strings.Repeat("Education career financial future support. ", 3)
	text := plainEssay(200) + ". " + keywords + strings.Repeat("education ", 50)
	got := ScoreEssay(text)
	assert.Equal(t, 50, got.Relevance)
	assert.LessOrEqual(t, got.Score, 100)
	assert.Equal(t, 30+20+30, got.Score)
}

func TestRelevanceIsCaseInsensitiveSubstring(t *testing.T) {
	assert.Equal(t, 20, Relevance("FUTURES and supportive friends"))
	assert.Equal(t, 10, Relevance("education education EDUCATION"))
	assert.Equal(t, 0, Relevance("nothing relevant here"))
}

func TestEmptyEssay(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		got := ScoreEssay(text)
		assert.Equal(t, EssayResult{Quality: "Needs Improvement"}, got)
	}
}

func TestReadabilityHeuristics(t *testing.T) {
	assert.Equal(t, 1, syllableCount("cat"))
	assert.Equal(t, 1, syllableCount("make"))
	assert.Equal(t, 1, syllableCount("the"))
	assert.Equal(t, 2, syllableCount("table"))
	assert.Equal(t, 4, syllableCount("education"))

	assert.Equal(t, 1, sentenceCount("Yes. No."))
	assert.Equal(t, 1, sentenceCount("Hi. I went to the store today."))
	assert.Equal(t, 2, sentenceCount("I went to the store. Then I came home!"))

	assert.Greater(t, FleschReadingEase(plainEssay(80)), 40.0)
	assert.Less(t, FleschReadingEase(denseEssay(40)), 40.0)
}

func TestDecideBoundary(t *testing.T) {
	assert.Equal(t, StatusRejected, Classify(64.99))
	assert.Equal(t, StatusApproved, Classify(65.00))

	d := Decide(65, 65)
	assert.Equal(t, 65.0, d.FinalScore)
	assert.Equal(t, StatusApproved, d.Status)

	d = Decide(64, 65)
	assert.Equal(t, 64.5, d.FinalScore)
	assert.Equal(t, StatusRejected, d.Status)
	assert.Equal(t, "64.50", d.DisplayScore())
}

func TestDecisionIgnoresEligibilityLabel(t *testing.T) {
	// Below the Merit Based threshold but approved on the combined score.
	elig := ScoreEligibility(EligibilityInput{CGPA: 8.5, Income: 180000, Attendance: 80, Scheme: SchemeMeritBased})
	require.False(t, elig.Eligible)
	d := Decide(elig.Score, 70)
	assert.Equal(t, StatusApproved, d.Status)
}

func TestScenarioApproved(t *testing.T) {
	scheme, err := ParseScheme("Merit Based")
	require.NoError(t, err)
	category, err := ParseCategory("General")
	require.NoError(t, err)

	elig := ScoreEligibility(EligibilityInput{
		CGPA:       9.2,
		Income:     120000,
		Category:   category,
		Attendance: 90,
		Hosteller:  false,
		Scheme:     scheme,
	})
	essay := ScoreEssay("Education shapes my future. " + plainEssay(150))
	d := Decide(elig.Score, essay.Score)

	assert.Equal(t, 90, elig.Score)
	assert.Equal(t, 70, essay.Score)
	assert.Equal(t, 80.0, d.FinalScore)
	assert.Equal(t, StatusApproved, d.Status)
}

func TestScenarioRejected(t *testing.T) {
	scheme, err := ParseScheme("Need Based")
	require.NoError(t, err)

	elig := ScoreEligibility(EligibilityInput{
		CGPA:       6.0,
		Income:     250000,
		Category:   CategoryGeneral,
		Attendance: 60,
		Scheme:     scheme,
	})
	essay := ScoreEssay(denseEssay(40))
	d := Decide(elig.Score, essay.Score)

	assert.Equal(t, 0, elig.Score)
	assert.Equal(t, []string{ReasonLowCGPA, ReasonHighIncome, ReasonLowAttendance}, elig.Reasons)
	assert.Equal(t, 40, essay.WordCount)
	assert.Equal(t, 0, essay.Score)
	assert.Equal(t, 0.0, d.FinalScore)
	assert.Equal(t, StatusRejected, d.Status)
}

func TestParseEnums(t *testing.T) {
	cases := map[string]Scheme{
		"MeritBased":      SchemeMeritBased,
		"Merit Based":     SchemeMeritBased,
		"Merit + Means":   SchemeMeritAndMeans,
		"merit_and_means": SchemeMeritAndMeans,
		"need-based":      SchemeNeedBased,
	}
	for raw, want := range cases {
		got, err := ParseScheme(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseScheme("Sports Quota")
	assert.Error(t, err)

	c, err := ParseCategory(" obc ")
	require.NoError(t, err)
	assert.Equal(t, CategoryOBC, c)
	_, err = ParseCategory("Other")
	assert.Error(t, err)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
