package applications

import (
	"bytes"
	"strings"
	"testing"

	"scholarship-intake/internal/scoring"
)

func TestWriteCSVHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []Record{sampleRecord("Meera", scoring.StatusRejected)}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	wantHeader := "Name,Email,CGPA,Income,Category,Attendance,Hosteller,Scheme,Academic Score,Essay Score,Final Score,Status,Time"
	if lines[0] != wantHeader {
		t.Fatalf("unexpected header %q", lines[0])
	}
	wantRow := "Meera,meera@example.com,8.75,150000,SC,82,Yes,Merit + Means,75,52,63.5,Rejected,2026-06-01 09:30:15.123456"
	if lines[1] != wantRow {
		t.Fatalf("unexpected row\n got %q\nwant %q", lines[1], wantRow)
	}
}

func TestWriteCSVEmptyStoreIsHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestReadCSVRoundTripKeepsFullPrecision(t *testing.T) {
	rec := sampleRecord("Meera", scoring.StatusApproved)
	rec.FinalScore = 65.123456789
	rec.Name = `Meera "M", Jr.`

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []Record{rec}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one record, got %d", len(got))
	}
	if got[0].FinalScore != rec.FinalScore {
		t.Fatalf("final score lost precision: %v", got[0].FinalScore)
	}
	if got[0].Name != rec.Name || got[0].Scheme != scoring.SchemeMeritAndMeans || !got[0].Hosteller {
		t.Fatalf("unexpected record %+v", got[0])
	}
	if !got[0].SubmittedAt.Equal(rec.SubmittedAt) {
		t.Fatalf("time mismatch: %v vs %v", got[0].SubmittedAt, rec.SubmittedAt)
	}
}

func TestReadCSVRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"wrong header":     "A,B,C,D,E,F,G,H,I,J,K,L,M\n",
		"short row":        strings.Join(Header, ",") + "\nonly,two\n",
		"bad number":       strings.Join(Header, ",") + "\nA,,x,1,General,90,No,Need Based,1,1,1,Rejected,2026-06-01 09:30:15.000000\n",
		"bad status":       strings.Join(Header, ",") + "\nA,,9,1,General,90,No,Need Based,1,1,1,Pending,2026-06-01 09:30:15.000000\n",
		"unbalanced quote": "\"Name,Email\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}
