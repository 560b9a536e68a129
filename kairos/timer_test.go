package kairos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerStopWithoutStartIsNoop(t *testing.T) {
	clock := &fakeClock{wall: time.Unix(1700000000, 0)}
	tm := timer{name: "x", parent: none}

	tm.stop(clock.cpuNow, clock.wallNow)

	assert.False(t, tm.running)
	assert.Equal(t, uint64(0), tm.ncalls)
	assert.Equal(t, 0.0, tm.cpuAccu)
}

func TestTimerStartResetsLastCall(t *testing.T) {
	clock := &fakeClock{wall: time.Unix(1700000000, 0)}
	tm := timer{name: "x", parent: none}

	tm.start(clock.cpuNow, clock.wallNow)
	clock.advance(0.5, time.Second)
	tm.stop(clock.cpuNow, clock.wallNow)
	assert.Equal(t, 0.5, tm.cpuLast)
	assert.Equal(t, 1.0, tm.wallLast)

	tm.start(clock.cpuNow, clock.wallNow)
	assert.Equal(t, 0.0, tm.cpuLast)
	assert.Equal(t, 0.0, tm.wallLast)
	assert.True(t, tm.running)
}

func TestTimerLabel(t *testing.T) {
	tm := timer{name: "region"}
	assert.Equal(t, "region", tm.label())

	tm.note = "a nicer label"
	assert.Equal(t, "a nicer label", tm.label())
}

func TestClampSeconds(t *testing.T) {
	assert.Equal(t, 0.0, clampSeconds(-0.5))
	assert.Equal(t, 0.0, clampSeconds(0))
	assert.Equal(t, 1.5, clampSeconds(1.5))
}
