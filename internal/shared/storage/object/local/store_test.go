package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "snapshots/2026/01/01/a.csv", "text/csv", strings.NewReader("Name\nAsha\n"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != 10 {
		t.Fatalf("expected 10 bytes, got %d", n)
	}

	rc, err := store.Open(ctx, "snapshots/2026/01/01/a.csv")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "Name\nAsha\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	for _, key := range []string{"../outside.csv", "/etc/passwd"} {
		if _, err := store.Put(ctx, key, "text/csv", strings.NewReader("x")); err == nil {
			t.Fatalf("expected Put(%q) to fail", key)
		}
		if _, err := store.Open(ctx, key); err == nil {
			t.Fatalf("expected Open(%q) to fail", key)
		}
	}
}

func TestPutHonoursCancelledContext(t *testing.T) {
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Put(ctx, "a.csv", "text/csv", strings.NewReader("x")); err == nil {
		t.Fatalf("expected context error")
	}
}
