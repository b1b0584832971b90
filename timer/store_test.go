package timer

import (
	"fmt"
	"math"
	"testing"
	"time"

	"TickTack/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestStore() (*Store, *clock.Manual) {
	clk := clock.NewManual(epoch)
	n := 0
	s := NewStore(clk, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("c%d", n)
	}))
	return s, clk
}

func TestStoreStartsInCounterMode(t *testing.T) {
	s, _ := newTestStore()
	st := s.Snapshot()

	assert.Equal(t, ModeCounter, st.Mode)
	assert.Zero(t, st.Count)
	assert.False(t, st.IsRunning)
	assert.False(t, st.HasTarget())
	assert.Empty(t, st.Laps)
	assert.Empty(t, st.Counters)
}

func TestSetModeDifferentResets(t *testing.T) {
	for _, from := range Modes {
		for _, to := range Modes {
			if from == to {
				continue
			}
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				s, _ := newTestStore()
				s.SetMode(from)
				s.SetTargetTime(5)
				s.ToggleRunning()
				s.AddLap()
				s.AddCounter("Coffees", 2)

				s.SetMode(to)
				st := s.Snapshot()
				assert.Equal(t, to, st.Mode)
				assert.Zero(t, st.Count)
				assert.False(t, st.IsRunning)
				assert.Empty(t, st.Laps)
				assert.Zero(t, st.TargetTime)
				assert.Len(t, st.Counters, 1, "counters survive mode switches")
			})
		}
	}
}

func TestSetModeSameKeepsState(t *testing.T) {
	s, _ := newTestStore()
	s.SetMode(ModeChronometer)
	s.SetCount(1234)
	s.ToggleRunning()
	s.AddLap()
	before := s.Snapshot()

	s.SetMode(ModeChronometer)
	assert.Equal(t, before, s.Snapshot())
}

func TestIncrementAndSetCount(t *testing.T) {
	s, _ := newTestStore()
	s.Increment()
	s.Increment()
	s.Increment()
	assert.EqualValues(t, 3, s.Snapshot().Count)

	s.SetCount(42)
	assert.EqualValues(t, 42, s.Snapshot().Count)
}

func TestToggleRunningAndStop(t *testing.T) {
	s, _ := newTestStore()
	s.ToggleRunning()
	assert.True(t, s.Snapshot().IsRunning)

	assert.True(t, s.Stop())
	assert.False(t, s.Snapshot().IsRunning)
	assert.False(t, s.Stop())
}

func TestSetRunningCount(t *testing.T) {
	s, _ := newTestStore()
	s.SetMode(ModeChronometer)

	assert.False(t, s.SetRunningCount(ModeChronometer, 500), "idle store rejects frame writes")
	assert.Zero(t, s.Snapshot().Count)

	s.ToggleRunning()
	assert.False(t, s.SetRunningCount(ModeCountdown, 500), "wrong mode rejects frame writes")
	assert.True(t, s.SetRunningCount(ModeChronometer, 500))
	assert.EqualValues(t, 500, s.Snapshot().Count)
}

func TestResetClearsCountersAndKeepsTarget(t *testing.T) {
	s, _ := newTestStore()
	s.SetMode(ModeCountdown)
	s.SetTargetTime(10)
	s.ToggleRunning()
	s.AddCounter("Water", 1)

	s.Reset()
	st := s.Snapshot()
	assert.Zero(t, st.Count)
	assert.False(t, st.IsRunning)
	assert.Empty(t, st.Laps)
	assert.Empty(t, st.Counters)
	assert.EqualValues(t, 10000, st.TargetTime)
}

func TestLaps(t *testing.T) {
	s, clk := newTestStore()
	s.SetMode(ModeChronometer)
	s.ToggleRunning()

	s.SetCount(1500)
	s.AddLap()
	clk.Advance(2 * time.Second)
	s.SetCount(3500)
	s.AddLap()

	laps := s.Snapshot().Laps
	require.Len(t, laps, 2)
	assert.Equal(t, Lap{Number: 1, Time: 1500, Timestamp: epoch}, laps[0])
	assert.Equal(t, Lap{Number: 2, Time: 3500, Timestamp: epoch.Add(2 * time.Second)}, laps[1])

	s.ClearLaps()
	assert.Empty(t, s.Snapshot().Laps)

	s.AddLap()
	assert.Equal(t, 1, s.Snapshot().Laps[0].Number)
}

func TestCanAddLap(t *testing.T) {
	s, _ := newTestStore()
	s.SetMode(ModeChronometer)
	assert.False(t, s.Snapshot().CanAddLap(), "not running")

	s.ToggleRunning()
	s.SetCount(700)
	assert.True(t, s.Snapshot().CanAddLap())

	s.AddLap()
	assert.False(t, s.Snapshot().CanAddLap(), "duplicate lap time")

	s.SetCount(900)
	assert.True(t, s.Snapshot().CanAddLap())

	s.SetMode(ModeCountdown)
	s.ToggleRunning()
	assert.False(t, s.Snapshot().CanAddLap(), "countdown mode")
}

func TestSetTargetTime(t *testing.T) {
	s, _ := newTestStore()
	s.SetMode(ModeCountdown)
	s.ToggleRunning()

	s.SetTargetTime(5)
	st := s.Snapshot()
	assert.EqualValues(t, 5000, st.TargetTime)
	assert.EqualValues(t, 5000, st.Count)
	assert.False(t, st.IsRunning)

	s.SetTargetTime(0)
	assert.EqualValues(t, 1000, s.Snapshot().TargetTime)
}

func TestSetTargetTimeCapsLongDurations(t *testing.T) {
	s, _ := newTestStore()
	s.SetMode(ModeCountdown)

	for _, seconds := range []int{MaxTargetSeconds + 1, math.MaxInt64 / 100, math.MaxInt} {
		s.SetTargetTime(seconds)
		st := s.Snapshot()
		assert.EqualValues(t, MaxTargetSeconds*1000, st.TargetTime, "seconds %d", seconds)
		assert.Equal(t, st.TargetTime, st.Count)
		assert.True(t, st.HasTarget())
	}
}

func TestAddCounter(t *testing.T) {
	s, _ := newTestStore()

	id, ok := s.AddCounter("  Coffees  ", 2)
	require.True(t, ok)
	c, found := s.Snapshot().Counter(id)
	require.True(t, found)
	assert.Equal(t, Counter{ID: id, Name: "Coffees", Value: 0, Increment: 2}, c)

	_, ok = s.AddCounter("   ", 1)
	assert.False(t, ok)
	assert.Len(t, s.Snapshot().Counters, 1)

	id2, ok := s.AddCounter("Steps", 0)
	require.True(t, ok)
	c2, _ := s.Snapshot().Counter(id2)
	assert.Equal(t, 1, c2.Increment)
}

func TestCounterIDsNeverRepeat(t *testing.T) {
	ids := []string{"a", "a", "b", "a", "b", "c"}
	i := 0
	s := NewStore(clock.NewManual(epoch), WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))

	first, _ := s.AddCounter("one", 1)
	s.RemoveCounter(first)
	second, _ := s.AddCounter("two", 1)
	third, _ := s.AddCounter("three", 1)

	assert.Equal(t, "a", first)
	assert.Equal(t, "b", second)
	assert.Equal(t, "c", third)
}

func TestIncrementCounter(t *testing.T) {
	s, _ := newTestStore()
	coffee, _ := s.AddCounter("Coffees", 2)
	steps, _ := s.AddCounter("Steps", 10)

	s.IncrementCounter(coffee)
	s.IncrementCounter(coffee)
	s.IncrementCounter("missing")

	st := s.Snapshot()
	c, _ := st.Counter(coffee)
	other, _ := st.Counter(steps)
	assert.Equal(t, 4, c.Value)
	assert.Equal(t, 0, other.Value)

	s.ResetCountersValues()
	st = s.Snapshot()
	require.Len(t, st.Counters, 2)
	for _, c := range st.Counters {
		assert.Zero(t, c.Value)
	}
}

func TestRemoveCounterKeepsOrder(t *testing.T) {
	s, _ := newTestStore()
	a, _ := s.AddCounter("a", 1)
	b, _ := s.AddCounter("b", 1)
	c, _ := s.AddCounter("c", 1)

	s.RemoveCounter(b)
	s.RemoveCounter("missing")

	st := s.Snapshot()
	require.Len(t, st.Counters, 2)
	assert.Equal(t, a, st.Counters[0].ID)
	assert.Equal(t, c, st.Counters[1].ID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestStore()
	id, _ := s.AddCounter("a", 1)

	st := s.Snapshot()
	st.Counters[0].Value = 99

	c, _ := s.Snapshot().Counter(id)
	assert.Zero(t, c.Value)
}

func TestSubscribeReceivesLatestState(t *testing.T) {
	s, _ := newTestStore()
	ch := s.Subscribe(1)

	s.Increment()
	s.Increment()
	s.Increment()

	st := <-ch
	assert.EqualValues(t, 3, st.Count)

	s.RemoveCounter("missing")
	select {
	case st := <-ch:
		t.Fatalf("unexpected notification for ignored mutation: %+v", st)
	default:
	}

	s.Close()
	_, open := <-ch
	assert.False(t, open)

	closed := s.Subscribe(1)
	_, open = <-closed
	assert.False(t, open)
}

func TestCounterScenario(t *testing.T) {
	s, _ := newTestStore()
	s.Increment()
	s.Increment()
	s.Increment()
	assert.EqualValues(t, 3, s.Snapshot().Count)

	s.SetMode(ModeChronometer)
	st := s.Snapshot()
	assert.Zero(t, st.Count)
	assert.False(t, st.IsRunning)

	s.ToggleRunning()
	s.SetCount(800)
	s.AddLap()
	require.Len(t, s.Snapshot().Laps, 1)
	assert.Equal(t, 1, s.Snapshot().Laps[0].Number)

	s.ClearLaps()
	assert.Empty(t, s.Snapshot().Laps)
}
