package sched_test

import (
	"testing"
	"time"

	"github.com/named-data/ndnode/std/sched"
	tu "github.com/named-data/ndnode/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	tu.SetT(t)

	tm := sched.NewDummyTimer()
	require.Equal(t, tu.NoErr(time.Parse(time.RFC3339, "1970-01-01T00:00:00Z")), tm.Now())
	tm.MoveForward(10 * time.Second)
	require.Equal(t, tu.NoErr(time.Parse(time.RFC3339, "1970-01-01T00:00:10Z")), tm.Now())
	tm.MoveForward(50 * time.Second)
	require.Equal(t, tu.NoErr(time.Parse(time.RFC3339, "1970-01-01T00:01:00Z")), tm.Now())
}

func TestDummySchedule(t *testing.T) {
	tm := sched.NewDummyTimer()
	val := 0
	tm.Schedule(10*time.Second, func() {
		val = 1
	})
	tm.MoveForward(9 * time.Second)
	require.Equal(t, 0, val)
	tm.MoveForward(1 * time.Second)
	require.Equal(t, 1, val)

	order := []int{}
	tm.Schedule(20*time.Second, func() { order = append(order, 2) })
	tm.Schedule(10*time.Second, func() { order = append(order, 1) })
	tm.Schedule(15*time.Second, func() { order = append(order, 3) })
	tm.MoveForward(11 * time.Second)
	require.Equal(t, []int{1}, order)
	tm.MoveForward(10 * time.Second)
	require.Equal(t, []int{1, 3, 2}, order)
	require.Equal(t, 0, tm.Pending())
}

func TestDummyCancel(t *testing.T) {
	tm := sched.NewDummyTimer()
	val := 0
	cancel := tm.Schedule(10*time.Second, func() {
		val = 1
	})
	require.NoError(t, cancel())
	require.Error(t, cancel())
	tm.MoveForward(11 * time.Second)
	require.Equal(t, 0, val)

	// fired events cannot be canceled
	cancel = tm.Schedule(0, func() {
		val = 2
	})
	tm.MoveForward(0)
	require.Equal(t, 2, val)
	require.Error(t, cancel())
}
