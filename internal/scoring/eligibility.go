package scoring

// Deficiency reasons reported by ScoreEligibility.
const (
	ReasonLowCGPA       = "Low CGPA"
	ReasonHighIncome    = "High Income"
	ReasonLowAttendance = "Low Attendance"
)

// EligibilityInput carries the academic and financial fields of an application.
type EligibilityInput struct {
	CGPA       float64
	Income     int64
	Category   Category
	Attendance int
	Hosteller  bool
	Scheme     Scheme
}

// Eligibility is the academic/financial evaluation of an application.
//
// Score is not clamped and can reach 105. Eligible compares Score against the
// scheme threshold for display only; approval is decided by Decide.
type Eligibility struct {
	Score     int      `json:"score"`
	Reasons   []string `json:"reasons"`
	Threshold int      `json:"threshold"`
	Eligible  bool     `json:"eligible"`
}

// Verdict is the human-readable eligibility label.
func (e Eligibility) Verdict() string {
	if e.Eligible {
		return "Academically Eligible"
	}
	return "Academically Not Eligible"
}

// ScoreEligibility applies the additive CGPA, income, attendance, category and
// hosteller rules.
func ScoreEligibility(in EligibilityInput) Eligibility {
	score := 0
	reasons := []string{}

	switch {
	case in.CGPA >= 9:
		score += 40
	case in.CGPA >= 8:
		score += 30
	case in.CGPA >= 7:
		score += 20
	default:
		reasons = append(reasons, ReasonLowCGPA)
	}

	switch {
	case in.Income <= 150000:
		score += 30
	case in.Income <= 200000:
		score += 20
	default:
		reasons = append(reasons, ReasonHighIncome)
	}

	switch {
	case in.Attendance >= 85:
		score += 20
	case in.Attendance >= 75:
		score += 10
	default:
		reasons = append(reasons, ReasonLowAttendance)
	}

	if in.Category == CategorySC || in.Category == CategoryST {
		score += 10
	}
	if in.Hosteller {
		score += 5
	}

	threshold := Threshold(in.Scheme)
	return Eligibility{
		Score:     score,
		Reasons:   reasons,
		Threshold: threshold,
		Eligible:  score >= threshold,
	}
}

// Threshold returns the eligibility cutoff for a scheme. Unknown schemes use
// the need-based cutoff.
func Threshold(s Scheme) int {
	switch s {
	case SchemeMeritBased:
		return 70
	case SchemeMeritAndMeans:
		return 60
	default:
		return 50
	}
}
