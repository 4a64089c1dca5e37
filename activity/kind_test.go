package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCodes(t *testing.T) {
	tests := []struct {
		name     string
		sport    uint8
		subSport uint8
		want     Kind
		exact    bool
	}{
		{name: "exact trail run", sport: SportRunning, subSport: SubSportTrail, want: TrailRunning, exact: true},
		{name: "exact pool swim", sport: SportSwimming, subSport: SubSportLapSwimming, want: SwimmingPool, exact: true},
		{name: "unknown subsport falls back to generic", sport: SportCycling, subSport: 250, want: Cycling},
		{name: "sport without generic entry", sport: SportRacket, subSport: 3, want: Unknown},
		{name: "unknown sport", sport: 200, subSport: 0, want: Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exact := FromCodes(tt.sport, tt.subSport)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.exact, exact)
		})
	}
}

func TestCycleUnitAndPace(t *testing.T) {
	assert.Equal(t, CycleSteps, CycleUnitOf(Running))
	assert.Equal(t, CycleSteps, CycleUnitOf(Hiking))
	assert.Equal(t, CycleRevolutions, CycleUnitOf(IndoorCycling))
	assert.Equal(t, CycleStrokes, CycleUnitOf(SwimmingPool))
	assert.Equal(t, CycleJumps, CycleUnitOf(JumpRope))
	assert.Equal(t, CycleNone, CycleUnitOf(Unknown))

	assert.True(t, IsPace(TrailRunning))
	assert.True(t, IsPace(SwimmingOpenWater))
	assert.False(t, IsPace(Cycling))
	assert.False(t, IsPace(Unknown))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "treadmill_running", TreadmillRunning.String())
	assert.Equal(t, "kind(9999)", Kind(9999).String())
	assert.Equal(t, 16, Running.Code())
}
