package health

import (
	"context"
	"time"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const checkTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	checks map[string]Pinger
}

// NewService constructs a new health service. Nil checks are ignored.
func NewService(checks map[string]Pinger) *Service {
	s := &Service{checks: map[string]Pinger{}}
	for name, p := range checks {
		if p != nil {
			s.checks[name] = p
		}
	}
	return s
}

// Report is the health payload. Checks maps each dependency to "ok" or the
// error it returned.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Status runs every check with a short deadline.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true}
	if len(s.checks) == 0 {
		return report
	}
	report.Checks = make(map[string]string, len(s.checks))
	for name, p := range s.checks {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := p.Ping(cctx)
		cancel()
		if err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}
