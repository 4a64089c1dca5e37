package fitsummary

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasjlepore/fit-summary/activity"
	"github.com/lucasjlepore/fit-summary/decoder"
	"github.com/lucasjlepore/fit-summary/internal/fittest"
	"github.com/lucasjlepore/fit-summary/mesg"
	"github.com/lucasjlepore/fit-summary/summary"
	"github.com/lucasjlepore/fit-summary/workout"
)

func TestSummarizeBytes(t *testing.T) {
	r, err := SummarizeBytes(fittest.Activity(), Config{})
	require.NoError(t, err)

	assert.Equal(t, 9, r.RecordCount)
	assert.Equal(t, 2, r.Unhandled)
	assert.Empty(t, r.Warnings)
	require.NotNil(t, r.FileID)
	assert.Equal(t, uint32(3999000001), r.FileID.SerialNumber)
	require.NotNil(t, r.Decoded)

	a := r.Activity
	assert.Equal(t, "Trail Run", a.Name)
	assert.Equal(t, activity.TrailRunning, a.Kind)
	assert.Equal(t, fittest.Start, a.StartTime)
	require.NotNil(t, a.EndTime)
	assert.Equal(t, fittest.Start.Add(30*time.Minute), *a.EndTime)

	want := map[string]summary.Value{
		workout.KeyActiveSeconds:    summary.Number(1750),
		workout.KeyDistanceMeters:   summary.Number(5000),
		"steps":                     summary.Number(5200),
		workout.KeyCadenceAvg:       summary.Number(170),
		workout.KeyPaceAvgSecondsKm: summary.Number(360),
		workout.KeyRecoveryTime:     summary.Number(43200),
		workout.KeyInternalHasGPS:   summary.Bool(true),
	}
	for key, v := range want {
		e, ok := a.Summary.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, v, e.Value, key)
	}

	zone, ok := a.Summary.Get(workout.KeyHRZoneEasy)
	require.True(t, ok)
	assert.Equal(t, 66, zone.Value.(summary.Progress).Percentage)
}

func TestSummarizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.fit")
	require.NoError(t, os.WriteFile(path, fittest.Activity(), 0o644))

	r, err := SummarizeFile(path, Config{})
	require.NoError(t, err)
	assert.Equal(t, path, r.SourceFile)

	_, err = SummarizeFile(filepath.Join(t.TempDir(), "missing.fit"), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read fit file")
}

func TestSummarizeWithoutSession(t *testing.T) {
	var b fittest.Builder
	b.Define(0, mesg.NumSport, fittest.Field{Num: 0, Size: 1, Base: fittest.Enum})
	b.Data(0, fittest.U8(1))

	r, err := SummarizeBytes(b.Bytes(), Config{})
	require.ErrorIs(t, err, workout.ErrNoSession)
	assert.Nil(t, r)
}

func TestSummarizeMalformed(t *testing.T) {
	r, err := SummarizeBytes(fittest.Activity()[:10], Config{})
	require.ErrorIs(t, err, decoder.ErrTruncated)
	assert.Nil(t, r)
}

func TestBuildNotes(t *testing.T) {
	r, err := SummarizeBytes(fittest.Activity(), Config{})
	require.NoError(t, err)

	notes := BuildNotes(r)
	assert.Contains(t, notes, "Workout: Trail Run (trail_running)")
	assert.Contains(t, notes, "Start: 2026-02-26 23:00:00")
	assert.Contains(t, notes, "Elapsed: 30m00s")
	assert.Contains(t, notes, "- active_seconds: 29m10s")
	assert.Contains(t, notes, "- distance_meters: 5000 meters")
	assert.Contains(t, notes, "- pace_avg_seconds_km: 6m00s")
	assert.Contains(t, notes, "- hr_zone_warm_up: 100 (33%)")
	assert.NotContains(t, notes, workout.KeyInternalHasGPS)
	assert.NotContains(t, notes, "Warnings")

	assert.Empty(t, BuildNotes(nil))
}

func TestFormatDuration(t *testing.T) {
	tests := map[float64]string{
		-1:     "0s",
		0:      "0s",
		59.4:   "59s",
		360:    "6m00s",
		3725.2: "1h02m05s",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatDuration(in), "%v", in)
	}
}
