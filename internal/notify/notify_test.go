package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testNotifier() (*Notifier, *bytes.Buffer, *time.Time) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	out := &bytes.Buffer{}
	n := NewNotifier(zap.NewNop())
	n.out = out
	n.now = func() time.Time { return now }
	return n, out, &now
}

func TestPostPrintsOnce(t *testing.T) {
	n, out, _ := testNotifier()

	n.Success("Logged in as alice")
	n.Error("Login failed")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 printed lines, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "ok") || !strings.Contains(lines[0], "Logged in as alice") {
		t.Errorf("success line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "!!") || !strings.Contains(lines[1], "Login failed") {
		t.Errorf("error line = %q", lines[1])
	}
}

func TestActiveAutoDismiss(t *testing.T) {
	n, _, now := testNotifier()

	n.Success("first")
	*now = now.Add(2 * time.Second)
	n.Success("second")

	active := n.Active()
	if len(active) != 2 {
		t.Fatalf("both inside the window, got %d", len(active))
	}
	if active[0].ID == active[1].ID {
		t.Error("notifications must carry distinct ids")
	}

	// 1.5s later "first" is past its 3s window, "second" is not.
	*now = now.Add(1500 * time.Millisecond)
	active = n.Active()
	if len(active) != 1 || active[0].Message != "second" {
		t.Fatalf("expected only 'second' active, got %+v", active)
	}

	*now = now.Add(DismissAfter)
	if active = n.Active(); active != nil {
		t.Errorf("everything should have dismissed, got %+v", active)
	}
}
