package applications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"scholarship-intake/internal/notify"
	"scholarship-intake/internal/scoring"
)

var fixedNow = time.Date(2026, time.June, 1, 9, 30, 15, 123456000, time.Local)

// readableEssay returns n easy words that contain "education" and "future".
func readableEssay(n int) string {
	words := strings.Fields("Education shapes my future.")
	filler := strings.Fields("I want to learn and grow each day.")
	for len(words) < n {
		words = append(words, filler[len(words)%len(filler)])
	}
	return strings.Join(words, " ")
}

func approvedApplication() Application {
	return Application{
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		CGPA:       9.2,
		Income:     120000,
		Category:   scoring.CategoryGeneral,
		Attendance: 90,
		Hosteller:  false,
		Scheme:     "Merit Based",
		Essay:      readableEssay(160),
	}
}

func rejectedApplication() Application {
	return Application{
		Name:       "Ravi Kumar",
		CGPA:       6.0,
		Income:     250000,
		Category:   scoring.CategoryGeneral,
		Attendance: 60,
		Scheme:     "Need Based",
		Essay:      strings.TrimSpace(strings.Repeat("considerable administrative responsibilities notwithstanding ", 10)) + ".",
	}
}

func sampleRecord(name string, status scoring.Status) Record {
	return Record{
		ID:            "id-" + name,
		Name:          name,
		Email:         strings.ToLower(name) + "@example.com",
		CGPA:          8.75,
		Income:        150000,
		Category:      scoring.CategorySC,
		Attendance:    82,
		Hosteller:     true,
		Scheme:        scoring.SchemeMeritAndMeans,
		AcademicScore: 75,
		EssayScore:    52,
		FinalScore:    63.5,
		Status:        status,
		SubmittedAt:   fixedNow,
	}
}

type failingRepo struct {
	err error
}

func (f failingRepo) Append(context.Context, Record) error   { return f.err }
func (f failingRepo) List(context.Context) ([]Record, error) { return nil, f.err }

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return f.err
}

type memoryObjects struct {
	mu   sync.Mutex
	objs map[string][]byte
	err  error
}

func (m *memoryObjects) Put(_ context.Context, key, _ string, r io.Reader) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objs == nil {
		m.objs = map[string][]byte{}
	}
	m.objs[key] = data
	return int64(len(data)), nil
}

func (m *memoryObjects) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objs[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func newTestService(repo Repo) *Service {
	n := 0
	return &Service{
		Repo: repo,
		Now:  func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("app-%d", n)
		},
	}
}

var errBoom = errors.New("disk full")
