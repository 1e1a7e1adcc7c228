package relink

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReconnectorSchedulesUpToMax(t *testing.T) {
	r := newReconnector(time.Millisecond, 2)
	var fired atomic.Int32

	n, ok := r.schedule(func() { fired.Add(1) })
	require.True(t, ok)
	require.Equal(t, 1, n)
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	n, ok = r.schedule(func() { fired.Add(1) })
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Eventually(t, func() bool { return fired.Load() == 2 }, time.Second, time.Millisecond)
	require.True(t, r.exhausted())

	n, ok = r.schedule(func() { fired.Add(1) })
	require.False(t, ok)
	require.Equal(t, 2, n)
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, int32(2), fired.Load())
}

func TestReconnectorSinglePendingTimer(t *testing.T) {
	r := newReconnector(20*time.Millisecond, 5)
	var fired atomic.Int32

	_, ok := r.schedule(func() { fired.Add(1) })
	require.True(t, ok)
	_, ok = r.schedule(func() { fired.Add(1) })
	require.False(t, ok)
	require.Equal(t, 1, r.count())

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}

func TestReconnectorCancelStopsPendingRetry(t *testing.T) {
	r := newReconnector(10*time.Millisecond, 5)
	var fired atomic.Int32

	_, ok := r.schedule(func() { fired.Add(1) })
	require.True(t, ok)
	r.cancel()

	time.Sleep(40 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())
	require.Equal(t, 1, r.count())
}

func TestReconnectorCancelWithoutTimerIsHarmless(t *testing.T) {
	r := newReconnector(time.Millisecond, 5)
	r.cancel()
	require.Zero(t, r.count())
}

func TestReconnectorReset(t *testing.T) {
	r := newReconnector(time.Millisecond, 1)
	_, ok := r.schedule(func() {})
	require.True(t, ok)
	require.True(t, r.exhausted())

	r.reset()
	require.Zero(t, r.count())
	require.False(t, r.exhausted())
}

func TestReconnectorZeroBudgetNeverSchedules(t *testing.T) {
	r := newReconnector(time.Millisecond, 0)
	n, ok := r.schedule(func() { t.Error("scheduled with zero budget") })
	require.False(t, ok)
	require.Zero(t, n)
	require.True(t, r.exhausted())
	time.Sleep(10 * time.Millisecond)
}
