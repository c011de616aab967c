package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/adapters/watcher"
)

type calls struct {
	mu    sync.Mutex
	count int
	last  []string
}

func (c *calls) record(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	c.last = paths
}

func (c *calls) get() (int, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, c.last
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := &calls{}
		d := watcher.NewDebouncer(100*time.Millisecond, c.record)

		d.Add("/src/util.js")
		d.Add("/src/main.js")
		d.Add("/src/util.js")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		count, paths := c.get()
		require.Equal(t, 1, count)
		assert.Equal(t, []string{"/src/main.js", "/src/util.js"}, paths)
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := &calls{}
		d := watcher.NewDebouncer(100*time.Millisecond, c.record)

		d.Add("/src/a.js")
		time.Sleep(60 * time.Millisecond)
		d.Add("/src/b.js")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		count, _ := c.get()
		assert.Equal(t, 0, count, "a change inside the window restarts it")

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		count, paths := c.get()
		require.Equal(t, 1, count)
		assert.Equal(t, []string{"/src/a.js", "/src/b.js"}, paths)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := &calls{}
		d := watcher.NewDebouncer(100*time.Millisecond, c.record)

		d.Flush()
		count, _ := c.get()
		assert.Equal(t, 0, count, "nothing pending")

		d.Add("/src/a.js")
		d.Flush()
		count, paths := c.get()
		require.Equal(t, 1, count)
		assert.Equal(t, []string{"/src/a.js"}, paths)

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		count, _ = c.get()
		assert.Equal(t, 1, count, "flushed paths are not delivered twice")
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := &calls{}
		d := watcher.NewDebouncer(100*time.Millisecond, c.record)

		d.Add("/src/a.js")
		d.Stop()
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		count, _ := c.get()
		assert.Equal(t, 0, count)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("/src/a.js")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
