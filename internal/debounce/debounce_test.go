package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	values []string
	ch     chan string
}

func newCollector() *collector {
	return &collector{ch: make(chan string, 16)}
}

func (c *collector) emit(v string) {
	c.mu.Lock()
	c.values = append(c.values, v)
	c.mu.Unlock()
	c.ch <- v
}

func (c *collector) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.values...)
}

func (c *collector) wait(t *testing.T) string {
	t.Helper()
	select {
	case v := <-c.ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		return ""
	}
}

func TestDebouncer_BurstEmitsLastValueOnce(t *testing.T) {
	c := newCollector()
	d := New(50*time.Millisecond, c.emit)
	defer d.Stop()

	for _, v := range []string{"g", "gr", "gro", "groc"} {
		d.Set(v)
	}

	assert.Equal(t, "groc", c.wait(t))

	// Let another window pass to catch a second emission.
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, []string{"groc"}, c.all())
	assert.Equal(t, "groc", d.Committed())
}

func TestDebouncer_SetRestartsWindow(t *testing.T) {
	c := newCollector()
	d := New(80*time.Millisecond, c.emit)
	defer d.Stop()

	start := time.Now()
	d.Set("a")
	time.Sleep(50 * time.Millisecond)
	d.Set("ab")

	assert.Equal(t, "ab", c.wait(t))
	assert.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond)
	assert.Len(t, c.all(), 1)
}

func TestDebouncer_SeparateWindowsEmitSeparately(t *testing.T) {
	c := newCollector()
	d := New(30*time.Millisecond, c.emit)
	defer d.Stop()

	d.Set("first")
	assert.Equal(t, "first", c.wait(t))
	d.Set("second")
	assert.Equal(t, "second", c.wait(t))

	assert.Equal(t, []string{"first", "second"}, c.all())
}

func TestDebouncer_SameValueStillEmits(t *testing.T) {
	c := newCollector()
	d := New(30*time.Millisecond, c.emit)
	defer d.Stop()

	d.Set("x")
	c.wait(t)
	d.Set("x")
	c.wait(t)

	assert.Equal(t, []string{"x", "x"}, c.all())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	c := newCollector()
	d := New(30*time.Millisecond, c.emit)

	d.Set("abandoned")
	d.Stop()
	d.Set("after stop")

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, c.all())
	assert.Equal(t, "", d.Committed())
}

func TestDebouncer_FlushCommitsImmediately(t *testing.T) {
	c := newCollector()
	d := New(time.Hour, c.emit)
	defer d.Stop()

	d.Set("now")
	d.Flush()

	require.Equal(t, []string{"now"}, c.all())
	assert.Equal(t, "now", d.Committed())

	// Nothing pending, nothing to flush.
	d.Flush()
	assert.Len(t, c.all(), 1)
}

func TestDebouncer_ZeroWindowUsesDefault(t *testing.T) {
	d := New(0, nil)
	assert.Equal(t, DefaultWindow, d.window)
}

func TestDebouncer_Pending(t *testing.T) {
	d := New(time.Hour, nil)
	defer d.Stop()

	d.Set("typed")
	assert.Equal(t, "typed", d.Pending())
	assert.Equal(t, "", d.Committed())
}
