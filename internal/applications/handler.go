package applications

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scholarship-intake/internal/notify"
	"scholarship-intake/internal/scoring"
	"scholarship-intake/internal/shared/server/middleware"
	"scholarship-intake/internal/shared/server/respond"
)

const exportFileName = "applications.csv"

// Handler serves the JSON API.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.submit)
	rg.GET("/applications", h.list)
	rg.GET("/applications/export.csv", h.export)
	rg.POST("/applications/snapshots", h.snapshot)
}

type eligibilityResponse struct {
	scoring.Eligibility
	Verdict string `json:"verdict"`
}

type submitResponse struct {
	ID                string              `json:"id"`
	Status            scoring.Status      `json:"status"`
	FinalScore        float64             `json:"finalScore"`
	FinalScoreDisplay string              `json:"finalScoreDisplay"`
	Eligibility       eligibilityResponse `json:"eligibility"`
	Essay             scoring.EssayResult `json:"essay"`
	RequiredDocuments []string            `json:"requiredDocuments"`
	Saved             bool                `json:"saved"`
	Notification      notify.Result       `json:"notification"`
	SubmittedAt       string              `json:"submittedAt"`
	Warnings          []string            `json:"warnings"`
}

func toSubmitResponse(out Outcome) submitResponse {
	return submitResponse{
		ID:                out.Record.ID,
		Status:            out.Decision.Status,
		FinalScore:        out.Decision.FinalScore,
		FinalScoreDisplay: out.Decision.DisplayScore(),
		Eligibility:       eligibilityResponse{Eligibility: out.Eligibility, Verdict: out.Eligibility.Verdict()},
		Essay:             out.Essay,
		RequiredDocuments: RequiredDocuments,
		Saved:             out.Saved,
		Notification:      out.Notification,
		SubmittedAt:       out.Record.SubmittedAt.Format(TimeLayout),
		Warnings:          warnings(out),
	}
}

// warnings lists the non-fatal problems worth showing the applicant.
func warnings(out Outcome) []string {
	list := []string{}
	if !out.Saved {
		list = append(list, "Your decision was computed but could not be saved. Please contact the scholarship office.")
	}
	if out.Notification.Status == notify.ResultFailed {
		list = append(list, "The result email could not be sent: "+out.Notification.Reason)
	}
	return list
}

func (h *Handler) submit(c *gin.Context) {
	var app Application
	if strings.HasPrefix(c.ContentType(), "multipart/") || c.ContentType() == "application/x-www-form-urlencoded" {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormSize)
		parsed, _, err := applicationFromForm(c, h.Svc.RequireEmail())
		if err != nil {
			respondValidation(c, err)
			return
		}
		app = parsed
	} else {
		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		app = req.application()
	}

	out, err := h.Svc.Submit(c.Request.Context(), app)
	if err != nil && !errors.Is(err, ErrPersist) {
		if errors.Is(err, ErrInvalidInput) {
			respondValidation(c, err)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process application", nil)
		return
	}

	c.Set(middleware.ApplicationIDKey, out.Record.ID)
	c.Set(middleware.DecisionKey, string(out.Decision.Status))
	status := http.StatusCreated
	if !out.Saved {
		status = http.StatusOK
	}
	respond.JSON(c, status, toSubmitResponse(out))
}

func respondValidation(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid application", verr.Fields)
		return
	}
	respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
}

func (h *Handler) list(c *gin.Context) {
	recs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "failed to list applications")
		return
	}
	if recs == nil {
		recs = []Record{}
	}
	respond.OK(c, gin.H{"applications": recs, "count": len(recs)})
}

func (h *Handler) export(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.Svc.ExportCSV(c.Request.Context(), &buf); err != nil {
		respondStoreError(c, err, "failed to export applications")
		return
	}
	writeCSVAttachment(c, buf.Bytes())
}

func writeCSVAttachment(c *gin.Context, data []byte) {
	c.Header("Content-Disposition", "attachment; filename=\""+exportFileName+"\"")
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *Handler) snapshot(c *gin.Context) {
	snap, err := h.Svc.Snapshot(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			respond.Error(c, http.StatusNotImplemented, "not_configured", "snapshot storage is not configured", nil)
			return
		}
		respondStoreError(c, err, "failed to write snapshot")
		return
	}
	respond.JSON(c, http.StatusCreated, snap)
}

func respondStoreError(c *gin.Context, err error, message string) {
	if errors.Is(err, ErrCorruptStore) {
		respond.Error(c, http.StatusInternalServerError, "store_corrupt", "the application store could not be read", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
}
