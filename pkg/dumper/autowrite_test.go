package dumper

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/metricsdump/pkg/metrics"
)

func TestEnableAutoWrite_InvalidArguments(t *testing.T) {
	d, _ := newTestDumper(t)
	reg := metrics.NewRegistry()

	ok, err := d.EnableAutoWrite(reg, 0)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	ok, err = d.EnableAutoWrite(reg, -time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	ok, err = d.EnableAutoWrite(nil, time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNilRegistry)

	assert.False(t, d.AutoWriteEnabled())
}

func TestEnableAutoWrite_WritesImmediately(t *testing.T) {
	d, path := newTestDumper(t)
	reg := metrics.NewRegistry()
	reg.MustCounter("errors").Add(8)

	ok, err := d.EnableAutoWrite(reg, time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	require.Eventually(t, func() bool {
		return len(readLines(t, path)) == 1
	}, 2*time.Second, 5*time.Millisecond)

	d.DisableAutoWrite()
	assert.Equal(t, `2024-03-09 14:05:07.042 "errors" 8`, readLines(t, path)[0])
	assert.Equal(t, uint64(0), reg.MustCounter("errors").Value())
}

func TestEnableAutoWrite_SecondCallIsNoop(t *testing.T) {
	d, _ := newTestDumper(t)
	reg := metrics.NewRegistry()

	ok, err := d.EnableAutoWrite(reg, 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = d.EnableAutoWrite(reg, time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 10*time.Millisecond, d.AutoWriteInterval())

	d.DisableAutoWrite()
	assert.False(t, d.AutoWriteEnabled())
	assert.Zero(t, d.AutoWriteInterval())
}

func TestDisableAutoWrite_Joins(t *testing.T) {
	d, path := newTestDumper(t)
	reg := metrics.NewRegistry()

	_, err := d.EnableAutoWrite(reg, time.Millisecond)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	d.DisableAutoWrite()

	n := len(readLines(t, path))
	require.Positive(t, n)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, len(readLines(t, path)), "no writes after DisableAutoWrite returns")

	// restart after a stop
	ok, err := d.EnableAutoWrite(reg, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Eventually(t, func() bool {
		return len(readLines(t, path)) > n
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDisableAutoWrite_NotRunning(t *testing.T) {
	d, _ := newTestDumper(t)
	d.DisableAutoWrite()
	d.DisableAutoWrite()
	assert.False(t, d.AutoWriteEnabled())
}

func TestDisableAutoWrite_LongInterval(t *testing.T) {
	d, _ := newTestDumper(t)
	_, err := d.EnableAutoWrite(metrics.NewRegistry(), time.Hour)
	require.NoError(t, err)

	start := time.Now()
	d.DisableAutoWrite()
	assert.Less(t, time.Since(start), time.Second, "sleeping goroutine must wake on stop")
}

func TestClose_StopsAutoWrite(t *testing.T) {
	d, path := newTestDumper(t)
	_, err := d.EnableAutoWrite(metrics.NewRegistry(), time.Millisecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, d.Close())
	assert.False(t, d.AutoWriteEnabled())

	n := len(readLines(t, path))
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, len(readLines(t, path)))
}

func TestAutoWrite_ReportsErrors(t *testing.T) {
	s := &failingSink{}
	s.fail.Store(true)

	var calls atomic.Int32
	var last atomic.Value
	d := newFakeDumper(t, s, WithErrorHandler(func(err error) {
		calls.Add(1)
		last.Store(err)
	}))

	_, err := d.EnableAutoWrite(metrics.NewRegistry(), time.Millisecond)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, d.AutoWriteEnabled(), "write failures do not stop auto-write")

	d.DisableAutoWrite()
	err, _ = last.Load().(error)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrClosed))
}

func TestAutoWrite_ConcurrentUpdatesAreNotLost(t *testing.T) {
	d, path := newTestDumper(t)
	reg := metrics.NewRegistry()
	c := reg.MustCounter("events")

	_, err := d.EnableAutoWrite(reg, time.Millisecond)
	require.NoError(t, err)

	const total = 10000
	for range total {
		c.Inc()
	}
	time.Sleep(5 * time.Millisecond)
	d.DisableAutoWrite()
	require.NoError(t, d.Write(reg.Snapshot()))

	var sum uint64
	for _, line := range readLines(t, path) {
		var v uint64
		idx := len(`2024-03-09 14:05:07.042 "events" `)
		_, err := fmt.Sscan(line[idx:], &v)
		require.NoError(t, err)
		sum += v
	}
	assert.Equal(t, uint64(total), sum)
}
