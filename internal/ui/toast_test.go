package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToasterPush(t *testing.T) {
	var buf strings.Builder
	toaster := NewToaster(&buf)

	toaster.Info("hello")
	toaster.Warning("careful")
	toaster.Error("boom")

	history := toaster.History()
	require.Len(t, history, 3)
	assert.Equal(t, LevelInfo, history[0].Level)
	assert.Equal(t, LevelWarning, history[1].Level)
	assert.Equal(t, LevelError, history[2].Level)

	// Each toast gets a distinct id.
	assert.NotEqual(t, history[0].ID, history[1].ID)

	out := buf.String()
	assert.Contains(t, out, "[warning] careful")
	assert.Contains(t, out, "[error] boom")
}

func TestToasterNilWriter(t *testing.T) {
	toaster := NewToaster(nil)
	toast := toaster.Success("stored anyway")
	assert.Equal(t, LevelSuccess, toast.Level)
	assert.Len(t, toaster.History(), 1)
}
