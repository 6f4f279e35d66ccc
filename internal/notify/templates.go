package notify

import (
	"bytes"
	"fmt"
	"text/template"
)

// Summary carries the decision fields rendered into the email.
type Summary struct {
	Name          string
	Scheme        string
	Status        string
	AcademicScore int
	EssayScore    int
	FinalScore    string
}

var (
	approvedTmpl = template.Must(template.New("approved").Parse(`Dear {{.Name}},

Congratulations! Your application for the {{.Scheme}} scholarship has been approved.

Academic score: {{.AcademicScore}}
Essay score: {{.EssayScore}}
Final score: {{.FinalScore}}/100

Please keep the following documents ready for verification:
- Income Certificate
- CGPA Marksheet
- Attendance Proof
- Aadhaar
- Bank Passbook

Scholarship Office
`))

	rejectedTmpl = template.Must(template.New("rejected").Parse(`Dear {{.Name}},

Thank you for applying for the {{.Scheme}} scholarship. After review, we are unable to approve your application this time.

Academic score: {{.AcademicScore}}
Essay score: {{.EssayScore}}
Final score: {{.FinalScore}}/100

You are welcome to apply again in the next cycle.

Scholarship Office
`))
)

// Render picks the approved or rejected template by s.Status.
func Render(s Summary) (subject, body string, err error) {
	tmpl := rejectedTmpl
	subject = "Scholarship application update"
	if s.Status == "Approved" {
		tmpl = approvedTmpl
		subject = "Scholarship application approved"
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return "", "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return subject, buf.String(), nil
}
