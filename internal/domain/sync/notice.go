package sync

import (
	"context"
	"time"
)

// NoticeLevel classifies a notice for the admin surface
type NoticeLevel string

const (
	NoticeLevelInfo    NoticeLevel = "info"
	NoticeLevelSuccess NoticeLevel = "success"
	NoticeLevelWarning NoticeLevel = "warning"
	NoticeLevelError   NoticeLevel = "error"
)

// IsValid returns true if the level is known
func (l NoticeLevel) IsValid() bool {
	switch l {
	case NoticeLevelInfo, NoticeLevelSuccess, NoticeLevelWarning, NoticeLevelError:
		return true
	default:
		return false
	}
}

// Notice is a deferred message for the shop admin surface. Notices are
// held briefly in a store and drained by the next admin page load.
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewNotice creates a notice stamped with the current time
func NewNotice(level NoticeLevel, message string) Notice {
	return Notice{
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// NoticeStore is the port for the short-lived notice buffer. Adapters live
// in the infrastructure layer (in-memory for single instances, Redis for
// shared deployments).
type NoticeStore interface {
	// Push appends a notice to the buffer
	Push(ctx context.Context, notice Notice) error

	// Drain returns all pending notices and clears the buffer
	Drain(ctx context.Context) ([]Notice, error)
}
