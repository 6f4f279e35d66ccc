package applications

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"scholarship-intake/internal/notify"
	"scholarship-intake/internal/scoring"
	"scholarship-intake/internal/shared/metrics"
	"scholarship-intake/internal/shared/storage/object"
	"scholarship-intake/internal/shared/telemetry"
	"scholarship-intake/internal/shared/util"
)

// Service runs the intake pipeline: score, decide, persist, notify.
type Service struct {
	Repo      Repo
	Notifier  *notify.Dispatcher
	Snapshots object.Store

	Now   func() time.Time
	NewID func() string
}

// Outcome is everything computed for one submission.
type Outcome struct {
	Record       Record              `json:"record"`
	Eligibility  scoring.Eligibility `json:"eligibility"`
	Essay        scoring.EssayResult `json:"essay"`
	Decision     scoring.Decision    `json:"decision"`
	Saved        bool                `json:"saved"`
	Notification notify.Result       `json:"notification"`
}

// Snapshot describes a CSV export written to the object store.
type Snapshot struct {
	Key       string    `json:"key"`
	Rows      int       `json:"rows"`
	SizeBytes int64     `json:"sizeBytes"`
	SHA256    string    `json:"sha256"`
	CreatedAt time.Time `json:"createdAt"`
}

// RequireEmail reports whether applicants must supply an email address.
func (s *Service) RequireEmail() bool {
	return s.Notifier.Enabled()
}

// Submit scores and decides app, then stores and announces the result.
//
// Invalid input returns an error wrapping ErrInvalidInput and no Outcome. A
// storage failure still returns the full Outcome, with Saved false, together
// with an error wrapping ErrPersist. Notification problems never produce an
// error; they are reported in Outcome.Notification.
func (s *Service) Submit(ctx context.Context, app Application) (Outcome, error) {
	if err := app.Validate(s.RequireEmail()); err != nil {
		return Outcome{}, err
	}
	app = app.normalize()

	elig := scoring.ScoreEligibility(app.eligibilityInput())
	essay := scoring.ScoreEssay(app.Essay)
	decision := scoring.Decide(elig.Score, essay.Score)
	metrics.ObserveDecision(string(decision.Status), decision.FinalScore)

	rec := Record{
		ID:            s.newID(),
		Name:          app.Name,
		Email:         app.Email,
		CGPA:          app.CGPA,
		Income:        app.Income,
		Category:      app.Category,
		Attendance:    app.Attendance,
		Hosteller:     app.Hosteller,
		Scheme:        app.Scheme,
		AcademicScore: elig.Score,
		EssayScore:    essay.Score,
		FinalScore:    decision.FinalScore,
		Status:        decision.Status,
		SubmittedAt:   s.now(),
	}
	out := Outcome{
		Record:      rec,
		Eligibility: elig,
		Essay:       essay,
		Decision:    decision,
	}

	var persistErr error
	if err := s.Repo.Append(ctx, rec); err != nil {
		metrics.IncStoreError("append")
		telemetry.Error("application.persist_failed", map[string]any{
			"application_id": rec.ID,
			"error":          err,
		})
		persistErr = fmt.Errorf("%w: %w", ErrPersist, err)
		out.Notification = notify.Result{Status: notify.ResultSkipped, Reason: "record not saved"}
	} else {
		out.Saved = true
		out.Notification = s.Notifier.Send(ctx, rec.Email, notify.Summary{
			Name:          rec.Name,
			Scheme:        rec.Scheme.Label(),
			Status:        string(rec.Status),
			AcademicScore: rec.AcademicScore,
			EssayScore:    rec.EssayScore,
			FinalScore:    decision.DisplayScore(),
		})
	}

	telemetry.Info("application.decided", map[string]any{
		"application_id": rec.ID,
		"scheme":         string(rec.Scheme),
		"academic_score": rec.AcademicScore,
		"essay_score":    rec.EssayScore,
		"final_score":    rec.FinalScore,
		"status":         string(rec.Status),
		"saved":          out.Saved,
		"notification":   string(out.Notification.Status),
	})
	return out, persistErr
}

// List returns every stored record, oldest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	recs, err := s.Repo.List(ctx)
	if err != nil {
		metrics.IncStoreError("list")
		return nil, err
	}
	return recs, nil
}

// ExportCSV writes the whole store as CSV. An empty store yields the header only.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(recs), WriteCSV(w, recs)
}

// Snapshot copies the current CSV export to the object store under a dated key.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	if s.Snapshots == nil {
		return Snapshot{}, fmt.Errorf("snapshot store: %w", ErrNotConfigured)
	}
	var buf bytes.Buffer
	rows, err := s.ExportCSV(ctx, &buf)
	if err != nil {
		return Snapshot{}, err
	}
	createdAt := s.now()
	key, err := object.DatedKey("snapshots", createdAt, "applications.csv")
	if err != nil {
		return Snapshot{}, err
	}
	sum := util.SHA256Hex(buf.Bytes())
	size, err := s.Snapshots.Put(ctx, key, "text/csv", &buf)
	if err != nil {
		return Snapshot{}, fmt.Errorf("store snapshot: %w", err)
	}
	telemetry.Info("application.snapshot", map[string]any{"key": key, "rows": rows, "size_bytes": size})
	return Snapshot{Key: key, Rows: rows, SizeBytes: size, SHA256: sum, CreatedAt: createdAt}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
