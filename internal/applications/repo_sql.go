package applications

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"scholarship-intake/internal/scoring"
	"scholarship-intake/internal/shared/storage/db"
)

func init() {
	// sqlx does not know the modernc driver name.
	sqlx.BindDriver(db.DriverSQLite, sqlx.QUESTION)
}

// SQLRepo implements Repo on Postgres or SQLite. It only ever inserts.
type SQLRepo struct {
	DB *sqlx.DB
}

// NewSQLRepo wraps an open database for driverName (db.DriverPostgres or
// db.DriverSQLite).
func NewSQLRepo(database *sql.DB, driverName string) *SQLRepo {
	return &SQLRepo{DB: sqlx.NewDb(database, driverName)}
}

type recordRow struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	CGPA          float64   `db:"cgpa"`
	Income        int64     `db:"income"`
	Category      string    `db:"category"`
	Attendance    int       `db:"attendance"`
	Hosteller     bool      `db:"hosteller"`
	Scheme        string    `db:"scheme"`
	AcademicScore int       `db:"academic_score"`
	EssayScore    int       `db:"essay_score"`
	FinalScore    float64   `db:"final_score"`
	Status        string    `db:"status"`
	SubmittedAt   time.Time `db:"submitted_at"`
}

const insertRecord = `
INSERT INTO applications (
    id,
    name,
    email,
    cgpa,
    income,
    category,
    attendance,
    hosteller,
    scheme,
    academic_score,
    essay_score,
    final_score,
    status,
    submitted_at
) VALUES (:id, :name, :email, :cgpa, :income, :category, :attendance, :hosteller, :scheme, :academic_score, :essay_score, :final_score, :status, :submitted_at)`

const selectRecords = `
SELECT id, name, email, cgpa, income, category, attendance, hosteller, scheme, academic_score, essay_score, final_score, status, submitted_at
FROM applications
ORDER BY seq`

func (r *SQLRepo) Append(ctx context.Context, rec Record) error {
	row := recordRow{
		ID:            rec.ID,
		Name:          rec.Name,
		Email:         rec.Email,
		CGPA:          rec.CGPA,
		Income:        rec.Income,
		Category:      string(rec.Category),
		Attendance:    rec.Attendance,
		Hosteller:     rec.Hosteller,
		Scheme:        string(rec.Scheme),
		AcademicScore: rec.AcademicScore,
		EssayScore:    rec.EssayScore,
		FinalScore:    rec.FinalScore,
		Status:        string(rec.Status),
		SubmittedAt:   rec.SubmittedAt,
	}
	if _, err := r.DB.NamedExecContext(ctx, insertRecord, row); err != nil {
		return fmt.Errorf("insert application %s: %w", rec.ID, err)
	}
	return nil
}

// List returns all records in insertion order.
func (r *SQLRepo) List(ctx context.Context) ([]Record, error) {
	var rows []recordRow
	if err := r.DB.SelectContext(ctx, &rows, selectRecords); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, Record{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			CGPA:          row.CGPA,
			Income:        row.Income,
			Category:      scoring.Category(row.Category),
			Attendance:    row.Attendance,
			Hosteller:     row.Hosteller,
			Scheme:        scoring.Scheme(row.Scheme),
			AcademicScore: row.AcademicScore,
			EssayScore:    row.EssayScore,
			FinalScore:    row.FinalScore,
			Status:        scoring.Status(row.Status),
			SubmittedAt:   row.SubmittedAt,
		})
	}
	return out, nil
}

func (r *SQLRepo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
