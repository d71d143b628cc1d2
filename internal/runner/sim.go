package runner

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// Option configures a Sim.
type Option func(*Sim)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Sim) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand sets the spawner's random source.
func WithRand(r Rand) Option {
	return func(s *Sim) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(s *Sim) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithCueSink sets the audio cue sink.
func WithCueSink(c CueSink) Option {
	return func(s *Sim) {
		if c != nil {
			s.cues = c
		}
	}
}

// WithNotificationSink sets the pickup notification sink.
func WithNotificationSink(n NotificationSink) Option {
	return func(s *Sim) {
		if n != nil {
			s.notes = n
		}
	}
}

// player holds the per-run player state.
type player struct {
	lane       int
	lives      int
	score      int
	ducking    bool
	damaged    bool
	invincible bool
}

// finishMarker is the end-of-run line placed once every category is held.
type finishMarker struct {
	active bool
	depth  float64
}

// Stats counts what happened during a run.
type Stats struct {
	Spawned  int
	Hits     int
	Avoided  int
	Ignored  int
	Jumps    int
	Ducks    int
	LaneMove int
}

// Sim is one lane runner session. It is not safe for concurrent use; the
// platform layer serializes input, ticks and frames onto one goroutine.
type Sim struct {
	cfg     config.RunnerConfig
	catalog config.Catalog

	log   *log.Logger
	rng   Rand
	cues  CueSink
	notes NotificationSink

	fsm   machine
	epoch uint64
	theme config.Theme
	ready bool // A character has been selected

	p         player
	lanes     LaneSmoother
	jump      Jumper
	diff      *Scheduler
	spawner   *Spawner
	items     *Registry
	timers    Timers
	resolver  Resolver
	collected *CollectedSet
	benefits  int
	finish    finishMarker
	stats     Stats

	startedAt time.Time
	endedAt   time.Time
	lastFrame time.Time
	lastSeen  time.Time
}

// New creates a simulation in the Select state. The catalog is copied.
func New(cfg config.RunnerConfig, catalog config.Catalog, opts ...Option) *Sim {
	s := &Sim{
		cfg:       cfg,
		catalog:   catalog.Clone(),
		log:       log.New(io.Discard),
		cues:      nopSink{},
		notes:     nopSink{},
		diff:      NewScheduler(cfg),
		items:     NewRegistry(),
		resolver:  NewResolver(cfg.Collision, cfg.Track),
		collected: NewCollectedSet(),
		lanes:     NewLaneSmoother(cfg.Lanes, cfg.Player.StartLane),
		jump:      NewJumper(cfg.Physics),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.p = player{lane: cfg.Player.StartLane, lives: cfg.Player.StartingLives}
	return s
}

// State returns the current run state.
func (s *Sim) State() RunState {
	return s.fsm.state
}

// Epoch returns the run generation. It changes on every reset.
func (s *Sim) Epoch() uint64 {
	return s.epoch
}

// Config returns the engine tuning in use.
func (s *Sim) Config() config.RunnerConfig {
	return s.cfg
}

// Catalog returns the content table in use.
func (s *Sim) Catalog() config.Catalog {
	return s.catalog
}

// Theme returns the selected theme, if any.
func (s *Sim) Theme() (config.Theme, bool) {
	return s.theme, s.ready
}

// Stats returns the counters of the current run.
func (s *Sim) Stats() Stats {
	return s.stats
}

// SelectCharacter chooses a theme and starts a run.
func (s *Sim) SelectCharacter(id string, now time.Time) error {
	theme, ok := s.catalog.Theme(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCharacter, id)
	}
	if s.fsm.state != StateSelect {
		return fmt.Errorf("%w: select character in %s", ErrInvalidTransition, s.fsm.state)
	}
	if len(theme.Obstacles) == 0 {
		s.log.Warn("theme has no obstacles", "theme", theme.ID)
	}
	s.theme = theme
	s.ready = true
	s.reset(now)
	if err := s.fsm.to(StatePlaying); err != nil {
		return err
	}
	s.log.Info("run started", "theme", theme.ID, "epoch", s.epoch)
	return nil
}

// Restart resets the run and plays again with the same character.
func (s *Sim) Restart(now time.Time) error {
	if !s.ready {
		return ErrNoCharacter
	}
	from := s.fsm.state
	if err := s.fsm.to(StatePlaying); err != nil {
		return err
	}
	s.reset(now)
	s.log.Info("run restarted", "from", from, "theme", s.theme.ID, "epoch", s.epoch)
	return nil
}

// ReturnToMenu resets the run and goes back to character selection.
func (s *Sim) ReturnToMenu(now time.Time) {
	if s.fsm.state != StateSelect {
		_ = s.fsm.to(StateSelect)
	}
	s.reset(now)
	s.theme = config.Theme{}
	s.ready = false
	s.log.Debug("returned to menu", "epoch", s.epoch)
}

// reset restores every per-run field and starts a new epoch.
func (s *Sim) reset(now time.Time) {
	s.epoch++
	s.timers.Clear()
	s.items.Clear()
	s.collected.Clear()
	s.benefits = 0
	s.finish = finishMarker{}
	s.stats = Stats{}

	s.p = player{lane: s.cfg.Player.StartLane, lives: s.cfg.Player.StartingLives}
	s.lanes.Reset(s.p.lane)
	s.jump.Reset()

	s.diff.Reset(now)
	s.spawner = NewSpawner(s.cfg.Spawn, s.catalog.Categories, s.theme.Obstacles, s.rng)
	s.spawner.Reset(now)

	s.startedAt = now
	s.endedAt = time.Time{}
	s.lastFrame = now
	s.lastSeen = now
}

// Apply feeds one discrete action. It reports whether the action changed
// anything; actions outside Playing are ignored.
func (s *Sim) Apply(a core.Action, now time.Time) bool {
	s.seen(now)
	if s.fsm.state != StatePlaying {
		return false
	}
	switch a {
	case core.ActionLeft:
		return s.changeLane(-1)
	case core.ActionRight:
		return s.changeLane(1)
	case core.ActionJump:
		if s.p.ducking || !s.jump.Request() {
			return false
		}
		s.stats.Jumps++
		s.emit(CueJump)
		return true
	case core.ActionDuck:
		if s.p.ducking || !s.jump.Grounded() || s.jump.Pending() {
			return false
		}
		s.p.ducking = true
		s.stats.Ducks++
		s.timers.Schedule(now.Add(s.cfg.Timing.DuckDuration), s.epoch, EventDuckEnd)
		return true
	}
	return false
}

func (s *Sim) changeLane(delta int) bool {
	next := core.Clamp(s.p.lane+delta, 0, config.LaneCount-1)
	if next == s.p.lane {
		return false
	}
	s.p.lane = next
	s.stats.LaneMove++
	s.emit(CueDash)
	return true
}

// Tick runs one coarse tick: distance, spawning, speed escalation and the
// finish marker.
func (s *Sim) Tick(now time.Time) {
	s.seen(now)
	if s.fsm.state != StatePlaying {
		return
	}

	step := s.diff.Advance()

	if s.spawner.Due(now, s.diff.SpawnInterval()) {
		s.spawn(now)
	}

	if s.diff.Escalate(now) {
		s.log.Debug("speed up", "speed", s.diff.Speed())
	}

	if s.finish.active {
		s.finish.depth += step
		if s.finish.depth >= 0 && s.collected.Complete(len(s.catalog.Categories)) {
			s.win(now)
		}
	}
}

func (s *Sim) spawn(now time.Time) {
	kind, items := s.spawner.Spawn(now, s.diff.Distance(), s.collected)
	switch kind {
	case SpawnFinish:
		s.finish = finishMarker{active: true, depth: s.cfg.Spawn.FinishDepth}
		s.log.Debug("finish placed", "depth", s.finish.depth)
	case SpawnPickup, SpawnObstacles:
		for _, it := range items {
			s.items.Add(it)
			s.stats.Spawned++
		}
	}
}

// Frame runs one per-frame step: deferred events, then (while Playing)
// lateral smoothing, the jump arc, item advance and collisions.
func (s *Sim) Frame(now time.Time) {
	s.seen(now)
	dt := now.Sub(s.lastFrame)
	if dt < 0 {
		dt = 0
	}
	dt = min(dt, s.cfg.Physics.MaxFrameStep)
	s.lastFrame = now

	for _, ev := range s.timers.Due(now) {
		s.fire(ev, now)
	}

	if s.fsm.state != StatePlaying {
		return
	}

	s.lanes.Step(s.p.lane)
	s.jump.Step(dt)
	s.advance(dt, now)
}

func (s *Sim) fire(ev Event, now time.Time) {
	if ev.Epoch != s.epoch {
		s.log.Debug("stale event dropped", "kind", ev.Kind, "epoch", ev.Epoch, "current", s.epoch)
		return
	}
	switch ev.Kind {
	case EventDuckEnd:
		s.p.ducking = false
	case EventDamageEnd:
		s.p.damaged = false
		s.p.invincible = false
	case EventExplosionEnd:
		if s.fsm.state != StateExploding {
			return
		}
		if err := s.fsm.to(StateGameOver); err != nil {
			s.log.Error("explosion end", "err", err)
			return
		}
		s.endedAt = now
		s.log.Info("run over", "score", s.p.score, "distance", s.diff.Distance())
	}
}

// advance moves every item and resolves contacts. Outcomes are computed
// against the player state captured before any of them apply.
func (s *Sim) advance(dt time.Duration, now time.Time) {
	step := s.diff.Speed() * s.cfg.Track.AdvanceFactor * dt.Seconds()
	contact := Contact{
		Lane:       s.p.lane,
		Height:     s.jump.Height,
		Ducking:    s.p.ducking,
		Invincible: s.p.invincible,
	}

	type verdict struct {
		item    *TrackItem
		outcome Outcome
	}
	var verdicts []verdict
	for _, it := range s.items.Items() {
		it.Depth += step
		if o := s.resolver.Resolve(it, contact); o != OutcomeNone {
			verdicts = append(verdicts, verdict{it, o})
		}
	}
	if len(verdicts) == 0 {
		return
	}

	var remove []ItemID
	damage := 0
	for _, v := range verdicts {
		it := v.item
		switch v.outcome {
		case OutcomePass:
			remove = append(remove, it.ID)
		case OutcomeCollect:
			if !it.latch() {
				continue
			}
			s.collect(it)
			remove = append(remove, it.ID)
		case OutcomeAvoid:
			if !it.latch() {
				continue
			}
			it.Avoided = true
			s.p.score += s.cfg.Collision.AvoidBonus
			s.stats.Avoided++
		case OutcomeIgnore:
			if it.latch() {
				s.stats.Ignored++
			}
		case OutcomeHit:
			if !it.latch() {
				continue
			}
			damage += it.Obstacle.Damage
			s.stats.Hits++
			remove = append(remove, it.ID)
		}
	}
	s.items.Remove(remove...)

	if damage > 0 {
		s.hurt(damage, now)
	}
}

func (s *Sim) collect(it *TrackItem) {
	cat := it.Category
	s.p.score += cat.Points
	s.benefits++
	if s.collected.Add(cat.ID) {
		s.log.Debug("category collected", "category", cat.ID, "distinct", s.collected.Len())
	}
	s.emit(CueCollect)
	s.notify(Notification{
		Category:    cat.ID,
		Points:      cat.Points,
		DisplayName: cat.Name,
		Icon:        cat.Icon,
		ShortDesc:   cat.ShortDesc,
		Color:       cat.Color,
	})
}

func (s *Sim) hurt(damage int, now time.Time) {
	s.p.lives = max(0, s.p.lives-damage)
	s.p.damaged = true
	s.p.invincible = true
	s.timers.Schedule(now.Add(s.cfg.Timing.InvincibilityWindow), s.epoch, EventDamageEnd)
	s.emit(CueHurt)
	s.log.Debug("hit", "damage", damage, "lives", s.p.lives)

	if s.p.lives > 0 {
		return
	}
	if err := s.fsm.to(StateExploding); err != nil {
		s.log.Error("explode", "err", err)
		return
	}
	s.timers.Schedule(now.Add(s.cfg.Timing.ExplosionDelay), s.epoch, EventExplosionEnd)
	s.emit(CueExplode)
}

func (s *Sim) win(now time.Time) {
	if err := s.fsm.to(StateWin); err != nil {
		s.log.Error("win", "err", err)
		return
	}
	s.endedAt = now
	s.emit(CueWin)
	s.log.Info("run won", "score", s.p.score, "distance", s.diff.Distance())
}

func (s *Sim) seen(now time.Time) {
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

// emit and notify shield the engine from misbehaving sinks.
func (s *Sim) emit(c Cue) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("cue sink panic", "cue", c, "panic", r)
		}
	}()
	s.cues.Cue(c)
}

func (s *Sim) notify(n Notification) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("notification sink panic", "category", n.Category, "panic", r)
		}
	}()
	s.notes.Notify(n)
}
