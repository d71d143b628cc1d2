package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// scriptRand replays fixed values; exhausted scripts fall back to zero.
type scriptRand struct {
	ints   []int
	floats []float64
	perms  [][]int
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptRand) Perm(n int) []int {
	if len(r.perms) == 0 {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	v := r.perms[0]
	r.perms = r.perms[1:]
	return v
}

type cueRecorder struct{ cues []Cue }

func (c *cueRecorder) Cue(cue Cue) { c.cues = append(c.cues, cue) }

func (c *cueRecorder) count(cue Cue) int {
	n := 0
	for _, x := range c.cues {
		if x == cue {
			n++
		}
	}
	return n
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

const frame = 16 * time.Millisecond

func testCatalog() config.Catalog {
	return config.Catalog{
		Categories: []config.Category{
			{ID: "legal", Name: "Legal aid", Points: 50, Color: "#3b82f6"},
			{ID: "strike", Name: "Strike fund", Points: 75},
		},
		Themes: []config.Theme{{
			ID:   "office",
			Name: "Office",
			Obstacles: []config.ObstacleArchetype{
				{ID: "desk", Damage: 1, Size: config.SizeMedium, Avoid: config.AvoidJump},
				{ID: "lamp", Damage: 1, Size: config.SizeWide, Avoid: config.AvoidDuck},
				{ID: "wall", Damage: 1, Size: config.SizeUnjumpable, Avoid: config.AvoidJump},
				{ID: "cabinet", Damage: 2, Size: config.SizeLarge, Avoid: config.AvoidAny},
			},
		}},
	}
}

func obstacle(t *testing.T, cat config.Catalog, id string) config.ObstacleArchetype {
	t.Helper()
	for _, o := range cat.Themes[0].Obstacles {
		if o.ID == id {
			return o
		}
	}
	t.Fatalf("no obstacle %q", id)
	return config.ObstacleArchetype{}
}

type testSim struct {
	*Sim
	cues  *cueRecorder
	notes []Notification
}

// newPlaying returns a sim that has just started a run at t0.
func newPlaying(t *testing.T, opts ...Option) *testSim {
	t.Helper()
	ts := &testSim{cues: &cueRecorder{}}
	opts = append([]Option{
		WithRand(&scriptRand{}),
		WithCueSink(ts.cues),
		WithNotificationSink(NotificationFunc(func(n Notification) { ts.notes = append(ts.notes, n) })),
	}, opts...)
	ts.Sim = New(config.DefaultRunnerConfig(), testCatalog(), opts...)
	require.NoError(t, ts.SelectCharacter("office", t0))
	return ts
}

// place puts an item straight onto the track.
func (ts *testSim) place(item *TrackItem) *TrackItem {
	ts.items.Add(item)
	return item
}

func (ts *testSim) obstacleAt(t *testing.T, id string, depth float64) *TrackItem {
	return ts.place(&TrackItem{
		Kind:     KindObstacle,
		Lane:     ts.p.lane,
		Depth:    depth,
		Obstacle: obstacle(t, ts.catalog, id),
	})
}

func (ts *testSim) pickupAt(id string, depth float64) *TrackItem {
	cat, _ := ts.catalog.Category(id)
	return ts.place(&TrackItem{
		Kind:     KindPickup,
		Lane:     ts.p.lane,
		Depth:    depth,
		Category: cat,
	})
}
