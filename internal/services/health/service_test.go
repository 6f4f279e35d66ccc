package health

import (
	"context"
	"errors"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestStatusWithoutChecks(t *testing.T) {
	report := NewService(nil).Status(context.Background())
	if !report.OK || report.Checks != nil {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestStatusReportsFailingCheck(t *testing.T) {
	svc := NewService(map[string]Pinger{
		"store":  pingFunc(func(context.Context) error { return errors.New("permission denied") }),
		"mailer": pingFunc(func(context.Context) error { return nil }),
		"unused": nil,
	})
	report := svc.Status(context.Background())
	if report.OK {
		t.Fatalf("expected not ok")
	}
	if report.Checks["store"] != "permission denied" || report.Checks["mailer"] != "ok" {
		t.Fatalf("unexpected checks %v", report.Checks)
	}
	if _, ok := report.Checks["unused"]; ok {
		t.Fatalf("nil check should be dropped")
	}
}

func TestStatusAppliesDeadline(t *testing.T) {
	svc := NewService(map[string]Pinger{
		"store": pingFunc(func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				return errors.New("no deadline")
			}
			return nil
		}),
	})
	if report := svc.Status(context.Background()); !report.OK {
		t.Fatalf("unexpected report %+v", report)
	}
}
