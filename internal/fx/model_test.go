package fx

import (
	"bytes"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
)

func TestFrameModel_Program(t *testing.T) {
	interrupted := &atomic.Bool{}
	tm := teatest.NewTestModel(t, frameModel{interrupted: interrupted}, teatest.WithInitialTermSize(80, 24))

	tm.Send(frameMsg("HAVE YOU HEARD OF Bofa?"))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("HAVE YOU HEARD OF Bofa?"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	assert.True(t, interrupted.Load())
}
