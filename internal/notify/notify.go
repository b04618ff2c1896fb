package notify

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DismissAfter is how long a notification stays active before it drops out
// of Active(). Matches the fixed toast timing of the web client.
const DismissAfter = 3 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID       string
	Kind     Kind
	Message  string
	PostedAt time.Time
}

// Notifier is the transient message surface: each notification is printed
// once when posted and stays queryable until its dismiss deadline passes.
type Notifier struct {
	out    io.Writer
	logger *zap.Logger
	now    func() time.Time
	posted []Notification
}

func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{
		out:    os.Stdout,
		logger: logger.Named("notify"),
		now:    time.Now,
	}
}

func (n *Notifier) Success(message string) {
	n.post(KindSuccess, message)
}

func (n *Notifier) Error(message string) {
	n.post(KindError, message)
}

// Active returns notifications still inside their dismiss window, oldest
// first. Expired ones are pruned as a side effect.
func (n *Notifier) Active() []Notification {
	cutoff := n.now().Add(-DismissAfter)
	kept := n.posted[:0]
	for _, note := range n.posted {
		if note.PostedAt.After(cutoff) {
			kept = append(kept, note)
		}
	}
	n.posted = kept
	if len(kept) == 0 {
		return nil
	}
	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

func (n *Notifier) post(kind Kind, message string) {
	note := Notification{
		ID:       uuid.NewString(),
		Kind:     kind,
		Message:  message,
		PostedAt: n.now(),
	}
	n.posted = append(n.posted, note)

	marker := "ok"
	if kind == KindError {
		marker = "!!"
	}
	fmt.Fprintf(n.out, "[%s] %s\n", marker, message)

	n.logger.Info("notification",
		zap.String("id", note.ID),
		zap.String("kind", string(kind)),
		zap.String("message", message),
	)
}
