package scoring

import "strconv"

// ApprovalCutoff is the minimum final score for approval.
const ApprovalCutoff = 65.0

// Decision is the combined outcome. FinalScore keeps full precision.
type Decision struct {
	AcademicScore int     `json:"academicScore"`
	EssayScore    int     `json:"essayScore"`
	FinalScore    float64 `json:"finalScore"`
	Status        Status  `json:"status"`
}

// Decide averages the academic and essay scores and classifies the result.
// The academic eligibility label plays no part here.
func Decide(academic, essay int) Decision {
	final := float64(academic+essay) / 2
	return Decision{
		AcademicScore: academic,
		EssayScore:    essay,
		FinalScore:    final,
		Status:        Classify(final),
	}
}

func Classify(final float64) Status {
	if final >= ApprovalCutoff {
		return StatusApproved
	}
	return StatusRejected
}

// DisplayScore renders FinalScore rounded to two decimals.
func (d Decision) DisplayScore() string {
	return strconv.FormatFloat(d.FinalScore, 'f', 2, 64)
}
