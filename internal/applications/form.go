package applications

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"scholarship-intake/internal/scoring"
	"scholarship-intake/internal/shared/server/middleware"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTmpl = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"yes": func(b bool) string { return yesNo(b) },
}).ParseFS(templateFiles, "templates/page.html"))

type option struct {
	Value string
	Label string
}

// pageData feeds templates/page.html.
type pageData struct {
	Categories   []option
	Schemes      []option
	MinWords     int
	RequireEmail bool
	Form         formValues
	Errors       map[string]string
	Result       *submitResponse
	Record       *Record
	Notice       string
}

// FormHandler serves the interactive HTML form.
type FormHandler struct {
	Svc *Service
}

// NewFormHandler constructs a FormHandler.
func NewFormHandler(svc *Service) *FormHandler {
	return &FormHandler{Svc: svc}
}

// RegisterRoutes attaches the form routes at the root of the engine.
func (h *FormHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.show)
	r.POST("/apply", h.apply)
	r.GET("/download", h.download)
}

func (h *FormHandler) page() pageData {
	data := pageData{
		MinWords:     scoring.MinEssayWords,
		RequireEmail: h.Svc.RequireEmail(),
		Form:         formValues{Hosteller: "No", Category: string(scoring.CategoryGeneral), Scheme: string(scoring.SchemeMeritBased)},
	}
	for _, c := range scoring.Categories {
		data.Categories = append(data.Categories, option{Value: string(c), Label: string(c)})
	}
	for _, s := range scoring.Schemes {
		data.Schemes = append(data.Schemes, option{Value: string(s), Label: s.Label()})
	}
	return data
}

func (h *FormHandler) render(c *gin.Context, status int, data pageData) {
	c.Render(status, render.HTML{Template: pageTmpl, Name: "page.html", Data: data})
}

func (h *FormHandler) show(c *gin.Context) {
	h.render(c, http.StatusOK, h.page())
}

func (h *FormHandler) apply(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormSize)
	data := h.page()

	app, values, err := applicationFromForm(c, data.RequireEmail)
	data.Form = values
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			data.Errors = verr.Fields
		}
		h.render(c, http.StatusBadRequest, data)
		return
	}

	out, err := h.Svc.Submit(c.Request.Context(), app)
	if err != nil && !errors.Is(err, ErrPersist) {
		var verr *ValidationError
		if errors.As(err, &verr) {
			data.Errors = verr.Fields
			h.render(c, http.StatusBadRequest, data)
			return
		}
		data.Notice = "Something went wrong while processing your application."
		h.render(c, http.StatusInternalServerError, data)
		return
	}

	c.Set(middleware.ApplicationIDKey, out.Record.ID)
	c.Set(middleware.DecisionKey, string(out.Decision.Status))
	resp := toSubmitResponse(out)
	data.Result = &resp
	data.Record = &out.Record
	h.render(c, http.StatusOK, data)
}

// download streams the store as CSV, or explains that there is nothing yet.
func (h *FormHandler) download(c *gin.Context) {
	var buf bytes.Buffer
	rows, err := h.Svc.ExportCSV(c.Request.Context(), &buf)
	if err != nil && !errors.Is(err, ErrCorruptStore) {
		data := h.page()
		data.Notice = "Applications could not be read right now. Please try again later."
		h.render(c, http.StatusInternalServerError, data)
		return
	}
	if err != nil || rows == 0 {
		data := h.page()
		data.Notice = "No applications yet."
		h.render(c, http.StatusNotFound, data)
		return
	}
	writeCSVAttachment(c, buf.Bytes())
}
