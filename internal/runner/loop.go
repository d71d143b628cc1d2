package runner

import (
	"context"
	"time"

	"github.com/vovakirdan/lane-runner/internal/core"
)

// Controller decides actions from a snapshot. It is called once per frame.
type Controller interface {
	Decide(snap Snapshot) []core.Action
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(Snapshot) []core.Action

// Decide calls f(snap).
func (f ControllerFunc) Decide(snap Snapshot) []core.Action { return f(snap) }

// LoopOptions configures Loop and Replay.
type LoopOptions struct {
	FPS        int                 // Frame rate; 60 when zero
	Controller Controller          // Optional input source
	OnFrame    func(snap Snapshot) // Optional observer, called after each frame
}

func (o LoopOptions) frameStep() time.Duration {
	fps := o.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// Loop drives s in real time until the run ends or ctx is cancelled.
// The frame and coarse tick are independent tickers serviced by one
// goroutine, so the simulation never sees concurrent calls. The coarse tick
// only runs while Playing; frames keep running through the explosion.
func Loop(ctx context.Context, s *Sim, opts LoopOptions) error {
	frames := time.NewTicker(opts.frameStep())
	defer frames.Stop()
	coarse := time.NewTicker(s.cfg.Track.CoarseTick)
	defer coarse.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case now := <-coarse.C:
			s.Tick(now)

		case now := <-frames.C:
			step(s, now, opts)
			if st := s.State(); st.Ended() || st == StateSelect {
				return nil
			}
		}
	}
}

// Replay drives s on a virtual clock starting at start, as fast as the CPU
// allows, until the run ends or limit of simulated time has passed. It
// returns the final virtual time.
func Replay(s *Sim, start time.Time, limit time.Duration, opts LoopOptions) time.Time {
	frame := opts.frameStep()
	tick := s.cfg.Track.CoarseTick
	nextTick := start.Add(tick)
	now := start
	end := start.Add(limit)

	for now.Before(end) {
		now = now.Add(frame)
		for !nextTick.After(now) {
			s.Tick(nextTick)
			nextTick = nextTick.Add(tick)
		}
		step(s, now, opts)
		if st := s.State(); st.Ended() || st == StateSelect {
			break
		}
	}
	return now
}

func step(s *Sim, now time.Time, opts LoopOptions) {
	if opts.Controller != nil && s.State() == StatePlaying {
		for _, a := range opts.Controller.Decide(s.Snapshot()) {
			s.Apply(a, now)
		}
	}
	s.Frame(now)
	if opts.OnFrame != nil {
		opts.OnFrame(s.Snapshot())
	}
}
