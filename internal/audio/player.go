package audio

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/lane-runner/internal/runner"
)

// Output is where synthesized cues end up.
type Output interface {
	Play(s beep.Streamer)
}

// Options configure a Player.
type Options struct {
	Volume float64     // Master volume (0-1)
	Queue  int         // Pending cues kept before new ones are dropped
	Logger *log.Logger // Optional
}

// Player is a non-blocking runner.CueSink. Cues are queued and turned into
// sound on a background goroutine; a full queue drops the cue.
type Player struct {
	out    Output
	volume float64
	log    *log.Logger

	queue   chan runner.Cue
	done    chan struct{}
	wg      sync.WaitGroup
	closed  atomic.Bool
	dropped atomic.Int64
	played  atomic.Int64
}

// NewPlayer starts a player writing to out.
func NewPlayer(out Output, opts Options) *Player {
	if opts.Queue <= 0 {
		opts.Queue = 16
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	p := &Player{
		out:    out,
		volume: opts.Volume,
		log:    opts.Logger,
		queue:  make(chan runner.Cue, opts.Queue),
		done:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *Player) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case c := <-p.queue:
			s := Synthesize(c, SampleRate, p.volume)
			if s == nil {
				continue
			}
			p.out.Play(s)
			p.played.Add(1)
		}
	}
}

// Cue queues c without blocking.
func (p *Player) Cue(c runner.Cue) {
	if p.closed.Load() {
		return
	}
	select {
	case p.queue <- c:
	default:
		if n := p.dropped.Add(1); n == 1 || n%100 == 0 {
			p.log.Debug("audio queue full, cue dropped", "cue", c, "dropped", n)
		}
	}
}

// Dropped returns how many cues were discarded.
func (p *Player) Dropped() int64 {
	return p.dropped.Load()
}

// Played returns how many cues reached the output.
func (p *Player) Played() int64 {
	return p.played.Load()
}

// Close stops the background goroutine. Further cues are ignored.
func (p *Player) Close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// speakerOutput mixes cues into the system speaker.
type speakerOutput struct {
	mixer *beep.Mixer
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

func (o *speakerOutput) clear() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
}

// Speaker is a Player bound to the system audio device.
type Speaker struct {
	*Player
	out *speakerOutput
}

// OpenSpeaker initializes the audio device and starts a player on it.
// It fails on machines without a usable sound device.
func OpenSpeaker(opts Options) (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	out := &speakerOutput{mixer: &beep.Mixer{}}
	speaker.Play(out.mixer)
	return &Speaker{Player: NewPlayer(out, opts), out: out}, nil
}

// Close stops playback and silences anything still sounding.
func (s *Speaker) Close() {
	s.Player.Close()
	s.out.clear()
}

// Silent is a CueSink that discards every cue.
type Silent struct{}

// Cue does nothing.
func (Silent) Cue(runner.Cue) {}
