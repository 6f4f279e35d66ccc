package applications

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"scholarship-intake/internal/scoring"
)

// TimeLayout is the local timestamp format of the Time column.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Header is the CSV column order.
var Header = []string{
	"Name", "Email", "CGPA", "Income", "Category", "Attendance", "Hosteller",
	"Scheme", "Academic Score", "Essay Score", "Final Score", "Status", "Time",
}

// WriteCSV writes the header and one row per record.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(encodeRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a store written by WriteCSV. An empty input is an empty
// store; anything else that does not match Header is an error.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	for i, col := range Header {
		if strings.TrimSpace(rows[0][i]) != col {
			return nil, fmt.Errorf("column %d is %q, want %q", i+1, rows[0][i], col)
		}
	}
	out := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func encodeRow(rec Record) []string {
	return []string{
		rec.Name,
		rec.Email,
		strconv.FormatFloat(rec.CGPA, 'f', -1, 64),
		strconv.FormatInt(rec.Income, 10),
		string(rec.Category),
		strconv.Itoa(rec.Attendance),
		yesNo(rec.Hosteller),
		rec.Scheme.Label(),
		strconv.Itoa(rec.AcademicScore),
		strconv.Itoa(rec.EssayScore),
		strconv.FormatFloat(rec.FinalScore, 'f', -1, 64),
		string(rec.Status),
		rec.SubmittedAt.Local().Format(TimeLayout),
	}
}

func decodeRow(row []string) (Record, error) {
	var (
		rec Record
		err error
	)
	rec.Name = row[0]
	rec.Email = row[1]
	if rec.CGPA, err = strconv.ParseFloat(row[2], 64); err != nil {
		return rec, fmt.Errorf("cgpa: %w", err)
	}
	if rec.Income, err = strconv.ParseInt(row[3], 10, 64); err != nil {
		return rec, fmt.Errorf("income: %w", err)
	}
	if rec.Category, err = scoring.ParseCategory(row[4]); err != nil {
		return rec, err
	}
	if rec.Attendance, err = strconv.Atoi(row[5]); err != nil {
		return rec, fmt.Errorf("attendance: %w", err)
	}
	switch row[6] {
	case "Yes":
		rec.Hosteller = true
	case "No":
	default:
		return rec, fmt.Errorf("hosteller: %q", row[6])
	}
	if rec.Scheme, err = scoring.ParseScheme(row[7]); err != nil {
		return rec, err
	}
	if rec.AcademicScore, err = strconv.Atoi(row[8]); err != nil {
		return rec, fmt.Errorf("academic score: %w", err)
	}
	if rec.EssayScore, err = strconv.Atoi(row[9]); err != nil {
		return rec, fmt.Errorf("essay score: %w", err)
	}
	if rec.FinalScore, err = strconv.ParseFloat(row[10], 64); err != nil {
		return rec, fmt.Errorf("final score: %w", err)
	}
	switch scoring.Status(row[11]) {
	case scoring.StatusApproved, scoring.StatusRejected:
		rec.Status = scoring.Status(row[11])
	default:
		return rec, fmt.Errorf("status: %q", row[11])
	}
	if rec.SubmittedAt, err = time.ParseInLocation(TimeLayout, row[12], time.Local); err != nil {
		return rec, fmt.Errorf("time: %w", err)
	}
	return rec, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
