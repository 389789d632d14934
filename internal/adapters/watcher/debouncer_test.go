package watcher_test

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryPath = "/data/elite_systems.json"

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls [][]string
		d := watcher.NewDebouncer(500*time.Millisecond, func(paths []string) {
			calls = append(calls, paths)
		})

		// An editor save: truncate, write, chmod.
		d.Add(registryPath)
		time.Sleep(100 * time.Millisecond)
		d.Add(registryPath)
		time.Sleep(100 * time.Millisecond)
		d.Add(registryPath)

		time.Sleep(499 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, calls, "window restarts on every event")

		time.Sleep(2 * time.Millisecond)
		synctest.Wait()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{registryPath}, calls[0])
	})
}

func TestDebouncer_SortsPaths(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var got []string
		d := watcher.NewDebouncer(50*time.Millisecond, func(paths []string) { got = paths })

		d.Add("/data/b.json")
		d.Add("/data/a.json")
		d.Add("/data/b.json")

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []string{"/data/a.json", "/data/b.json"}, got)
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		count := 0
		d := watcher.NewDebouncer(50*time.Millisecond, func([]string) { count++ })

		d.Add(registryPath)
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		d.Add(registryPath)
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, 2, count)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		count := 0
		d := watcher.NewDebouncer(time.Second, func([]string) { count++ })

		d.Flush()
		assert.Zero(t, count, "nothing pending")

		d.Add(registryPath)
		d.Flush()
		assert.Equal(t, 1, count)

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, 1, count, "flushed paths do not fire again")
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		count := 0
		d := watcher.NewDebouncer(50*time.Millisecond, func([]string) { count++ })

		d.Add(registryPath)
		d.Stop()
		d.Add(registryPath)

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Zero(t, count)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add(registryPath)
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
