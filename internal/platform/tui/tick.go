// Package tui provides the Bubble Tea integration for the lane runner.
// It handles the terminal UI loop, input mapping, and run orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg drives one per-frame simulation step.
type FrameMsg struct {
	Gen uint64
	At  time.Time
}

// CoarseMsg drives one coarse tick (distance, spawns, escalation).
type CoarseMsg struct {
	Gen uint64
	At  time.Time
}

// noticeExpiredMsg clears the notification banner with the given sequence.
type noticeExpiredMsg struct {
	seq uint64
}

// frameCmd schedules the next frame of loop generation gen.
func frameCmd(gen uint64, fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, At: t}
	})
}

// coarseCmd schedules the next coarse tick of loop generation gen.
func coarseCmd(gen uint64, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return CoarseMsg{Gen: gen, At: t}
	})
}

func noticeCmd(seq uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
