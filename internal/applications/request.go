package applications

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"scholarship-intake/internal/extract"
	"scholarship-intake/internal/scoring"
)

// RequiredDocuments is the fixed checklist shown with every decision.
var RequiredDocuments = []string{
	"Income Certificate",
	"CGPA Marksheet",
	"Attendance Proof",
	"Aadhaar",
	"Bank Passbook",
}

const maxFormSize = extract.MaxEssayFileBytes + 1<<20

// submitRequest is the JSON body of POST /api/v1/applications.
type submitRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	CGPA       float64 `json:"cgpa"`
	Income     int64   `json:"income"`
	Category   string  `json:"category"`
	Attendance int     `json:"attendance"`
	Hosteller  bool    `json:"hosteller"`
	Scheme     string  `json:"scheme"`
	Essay      string  `json:"essay"`
}

func (r submitRequest) application() Application {
	return Application{
		Name:       r.Name,
		Email:      r.Email,
		CGPA:       r.CGPA,
		Income:     r.Income,
		Category:   scoring.Category(r.Category),
		Attendance: r.Attendance,
		Hosteller:  r.Hosteller,
		Scheme:     scoring.Scheme(r.Scheme),
		Essay:      r.Essay,
	}
}

// formValues keeps the raw submitted strings so a rejected form can be
// re-rendered as typed.
type formValues struct {
	Name       string
	Email      string
	CGPA       string
	Income     string
	Category   string
	Attendance string
	Hosteller  string
	Scheme     string
	Essay      string
}

func readFormValues(c *gin.Context) formValues {
	return formValues{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		CGPA:       strings.TrimSpace(c.PostForm("cgpa")),
		Income:     strings.TrimSpace(c.PostForm("income")),
		Category:   c.PostForm("category"),
		Attendance: strings.TrimSpace(c.PostForm("attendance")),
		Hosteller:  c.PostForm("hosteller"),
		Scheme:     c.PostForm("scheme"),
		Essay:      c.PostForm("essay"),
	}
}

// application converts form strings. Unparseable numbers are reported as
// field errors alongside the rest of validation.
func (f formValues) application() (Application, map[string]string) {
	fields := map[string]string{}
	app := Application{
		Name:     f.Name,
		Email:    f.Email,
		Category: scoring.Category(f.Category),
		Scheme:   scoring.Scheme(f.Scheme),
		Essay:    f.Essay,
	}
	var err error
	if app.CGPA, err = strconv.ParseFloat(f.CGPA, 64); err != nil {
		fields["cgpa"] = "must be a number"
	}
	if app.Income, err = strconv.ParseInt(f.Income, 10, 64); err != nil {
		fields["income"] = "must be a whole number"
	}
	if app.Attendance, err = strconv.Atoi(f.Attendance); err != nil {
		fields["attendance"] = "must be a whole number"
	}
	switch strings.ToLower(strings.TrimSpace(f.Hosteller)) {
	case "yes", "true", "on", "1":
		app.Hosteller = true
	case "", "no", "false", "off", "0":
	default:
		fields["hosteller"] = "must be Yes or No"
	}
	return app, fields
}

// applicationFromForm reads a urlencoded or multipart form. An uploaded
// essayFile replaces an empty essay field.
func applicationFromForm(c *gin.Context, requireEmail bool) (Application, formValues, error) {
	values := readFormValues(c)
	app, fields := values.application()

	if strings.TrimSpace(app.Essay) == "" {
		text, err := essayFromUpload(c)
		switch {
		case err == nil:
			app.Essay = text
			values.Essay = text
		case errors.Is(err, errNoUpload):
		default:
			fields["essayFile"] = err.Error()
		}
	}

	if err := app.Validate(requireEmail); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			for k, v := range verr.Fields {
				if _, taken := fields[k]; !taken {
					fields[k] = v
				}
			}
		}
	}
	if len(fields) > 0 {
		return app, values, &ValidationError{Fields: fields}
	}
	return app, values, nil
}

var errNoUpload = errors.New("no essay file")

func essayFromUpload(c *gin.Context) (string, error) {
	fh, err := c.FormFile("essayFile")
	if err != nil {
		return "", errNoUpload
	}
	return readEssayFile(c.Request.Context(), fh)
}

func readEssayFile(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > extract.MaxEssayFileBytes {
		return "", errors.New("essay file is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return "", errors.New("unable to read essay file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, extract.MaxEssayFileBytes+1))
	if err != nil {
		return "", errors.New("unable to read essay file")
	}
	text, err := extract.EssayText(ctx, data, fh.Header.Get("Content-Type"), fh.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			return "", errors.New("essay file must be PDF, DOCX or plain text")
		}
		return "", errors.New("could not read text from essay file")
	}
	return text, nil
}
