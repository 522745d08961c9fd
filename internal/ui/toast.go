// Package ui holds the small presentation pieces shared by every view.
package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is one transient user-visible notification. Every degraded failure
// in the client ends up here; nothing is fatal to the session.
type Toast struct {
	ID      string
	Level   Level
	Message string
	Time    time.Time
}

// Toaster collects toasts and prints them to the writer as they arrive.
type Toaster struct {
	mu     sync.Mutex
	out    io.Writer
	toasts []Toast
}

// NewToaster creates a toaster writing to out.
func NewToaster(out io.Writer) *Toaster {
	return &Toaster{out: out}
}

// Push records a toast and writes it immediately.
func (t *Toaster) Push(level Level, message string) Toast {
	toast := Toast{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}

	t.mu.Lock()
	t.toasts = append(t.toasts, toast)
	out := t.out
	t.mu.Unlock()

	if out != nil {
		fmt.Fprintf(out, "[%s] %s\n", toast.Level, toast.Message)
	}
	return toast
}

// Info pushes an info toast.
func (t *Toaster) Info(message string) Toast { return t.Push(LevelInfo, message) }

// Success pushes a success toast.
func (t *Toaster) Success(message string) Toast { return t.Push(LevelSuccess, message) }

// Warning pushes a warning toast.
func (t *Toaster) Warning(message string) Toast { return t.Push(LevelWarning, message) }

// Error pushes an error toast.
func (t *Toaster) Error(message string) Toast { return t.Push(LevelError, message) }

// History returns all toasts pushed so far, oldest first.
func (t *Toaster) History() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}
