package applications

import (
	"net/mail"
	"strings"
	"time"

	"scholarship-intake/internal/scoring"
)

// Application is one submitted form. It is scored and discarded; only the
// derived Record is stored.
type Application struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	CGPA       float64          `json:"cgpa"`
	Income     int64            `json:"income"`
	Category   scoring.Category `json:"category"`
	Attendance int              `json:"attendance"`
	Hosteller  bool             `json:"hosteller"`
	Scheme     scoring.Scheme   `json:"scheme"`
	Essay      string           `json:"essay"`
}

// Validate enforces the form's ranges. Email is checked only when
// requireEmail is set, or when one was supplied.
func (a Application) Validate(requireEmail bool) error {
	fields := map[string]string{}
	if strings.TrimSpace(a.Name) == "" {
		fields["name"] = "required"
	}
	email := strings.TrimSpace(a.Email)
	switch {
	case email == "" && requireEmail:
		fields["email"] = "required when notifications are enabled"
	case email != "":
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			fields["email"] = "not a valid address"
		}
	}
	// Written as a negated range so NaN fails too.
	if !(a.CGPA >= 0 && a.CGPA <= 10) {
		fields["cgpa"] = "must be between 0 and 10"
	}
	if a.Income < 0 {
		fields["income"] = "must not be negative"
	}
	if a.Attendance < 0 || a.Attendance > 100 {
		fields["attendance"] = "must be between 0 and 100"
	}
	if _, err := scoring.ParseCategory(string(a.Category)); err != nil {
		fields["category"] = "must be one of General, OBC, SC, ST"
	}
	if _, err := scoring.ParseScheme(string(a.Scheme)); err != nil {
		fields["scheme"] = "must be one of Merit Based, Merit + Means, Need Based"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (a Application) eligibilityInput() scoring.EligibilityInput {
	return scoring.EligibilityInput{
		CGPA:       a.CGPA,
		Income:     a.Income,
		Category:   a.Category,
		Attendance: a.Attendance,
		Hosteller:  a.Hosteller,
		Scheme:     a.Scheme,
	}
}

// Record is the persisted form of a decided application. The essay text is
// not stored.
type Record struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email,omitempty"`
	CGPA          float64          `json:"cgpa"`
	Income        int64            `json:"income"`
	Category      scoring.Category `json:"category"`
	Attendance    int              `json:"attendance"`
	Hosteller     bool             `json:"hosteller"`
	Scheme        scoring.Scheme   `json:"scheme"`
	AcademicScore int              `json:"academicScore"`
	EssayScore    int              `json:"essayScore"`
	FinalScore    float64          `json:"finalScore"`
	Status        scoring.Status   `json:"status"`
	SubmittedAt   time.Time        `json:"submittedAt"`
}

// normalize canonicalizes enum spellings so display strings from the form
// and enum names from the API are stored identically.
func (a Application) normalize() Application {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.TrimSpace(a.Email)
	if c, err := scoring.ParseCategory(string(a.Category)); err == nil {
		a.Category = c
	}
	if s, err := scoring.ParseScheme(string(a.Scheme)); err == nil {
		a.Scheme = s
	}
	return a
}
