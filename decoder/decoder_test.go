package decoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"

	"github.com/lucasjlepore/fit-summary/internal/fittest"
	"github.com/lucasjlepore/fit-summary/mesg"
)

func TestDecodeActivity(t *testing.T) {
	res, err := Decode(fittest.Activity())
	require.NoError(t, err)

	assert.Equal(t, ".FIT", res.Header.DataType)
	assert.True(t, res.HeaderCRC.Valid)
	assert.True(t, res.FileCRC.Valid)
	assert.Equal(t, 8, res.DefinitionCount)
	assert.Equal(t, 9, res.DataCount)
	assert.Len(t, res.Messages, 17)
	assert.Empty(t, res.Warnings())

	require.NotNil(t, res.FileID)
	assert.Equal(t, uint32(3999000001), res.FileID.SerialNumber)

	var kinds []mesg.Kind
	for _, r := range res.Records {
		kinds = append(kinds, r.Kind())
	}
	assert.Equal(t, []mesg.Kind{
		mesg.KindUnrecognized,
		mesg.KindSport,
		mesg.KindUserProfile,
		mesg.KindTrackPoint,
		mesg.KindTrackPoint,
		mesg.KindSession,
		mesg.KindTimeInZone,
		mesg.KindPhysiologicalMetrics,
		mesg.KindUnrecognized,
	}, kinds)
}

func TestDecodeNamesMessagesAndFields(t *testing.T) {
	res, err := Decode(fittest.Activity())
	require.NoError(t, err)

	def, data := res.Messages[6], res.Messages[7]
	assert.True(t, def.Definition)
	assert.Equal(t, "record", def.Name)
	assert.Equal(t, "record", data.Name)

	var names []string
	for _, f := range data.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"timestamp", "position_lat", "position_long", "heart_rate"}, names)
	assert.Equal(t, "timestamp", def.Fields[0].Name)

	assert.Equal(t, "file_id", MessageName(0))
	assert.Equal(t, "event", MessageName(21))
	assert.Equal(t, "global_65000", MessageName(65000))
	assert.Equal(t, "", FieldName(mesg.NumSport, 200))
}

func TestDecodeMapsTypedFields(t *testing.T) {
	res, err := Decode(fittest.Activity())
	require.NoError(t, err)

	sport := res.Records[1].(*mesg.Sport)
	require.NotNil(t, sport.Name)
	assert.Equal(t, "Trail Run", *sport.Name)
	assert.Equal(t, uint8(3), *sport.SubSport)

	profile := res.Records[2].(*mesg.UserProfile)
	assert.InDelta(t, 72.5, *profile.Weight, 1e-9)
	assert.Equal(t, mesg.MeasureMetric, *profile.WeightSetting)

	withGPS := res.Records[3].(*mesg.TrackPoint)
	require.NotNil(t, withGPS.Position)
	assert.InDelta(t, 45.5, withGPS.Position.Lat, 1e-6)
	assert.InDelta(t, -73.6, withGPS.Position.Lon, 1e-6)
	require.NotNil(t, withGPS.Timestamp)
	assert.Equal(t, fittest.Start.Add(time.Second), *withGPS.Timestamp)

	noGPS := res.Records[4].(*mesg.TrackPoint)
	assert.Nil(t, noGPS.Position)
	assert.Equal(t, uint8(125), *noGPS.HeartRate)

	s := res.Records[5].(*mesg.Session)
	assert.Equal(t, fittest.Start, *s.StartTime)
	assert.Equal(t, uint32(1800000), *s.TotalElapsedTime)
	assert.Equal(t, uint32(1750000), *s.TotalTimerTime)
	assert.Equal(t, uint32(2600), *s.TotalCycles)
	assert.Equal(t, uint8(85), *s.AvgCadence)
	assert.InDelta(t, 2.778, *s.EnhancedAvgSpeed, 1e-9)
	assert.Nil(t, s.AvgPower)
	assert.Nil(t, s.AvgLeftPowerPhase)

	tiz := res.Records[6].(*mesg.TimeInZone)
	assert.Equal(t, uint16(18), *tiz.ReferenceMesg)
	require.Len(t, tiz.TimeInHRZone, 6)
	assert.InDelta(t, 200.0, *tiz.TimeInHRZone[2], 1e-9)

	pm := res.Records[7].(*mesg.PhysiologicalMetrics)
	assert.InDelta(t, 3.2, *pm.AerobicEffect, 1e-9)
	assert.InDelta(t, 1.1, *pm.AnaerobicEffect, 1e-9)
	assert.Equal(t, uint16(720), *pm.RecoveryTime)
	assert.Nil(t, pm.MetMax)

	assert.Equal(t, uint16(21), res.Records[8].(*mesg.Unrecognized).GlobalMessageNum)
}

func TestDecodeArraysKeepInvalidElements(t *testing.T) {
	var b fittest.Builder
	b.Define(0, mesg.NumSession,
		fittest.Field{Num: 116, Size: 4, Base: fittest.Uint8},
		fittest.Field{Num: 120, Size: 4, Base: fittest.Uint16},
		fittest.Field{Num: 114, Size: 1, Base: fittest.Sint8},
	)
	b.Data(0, []byte{100, 200, 0xFF, 7}, fittest.Concat(fittest.U16(210), fittest.U16(0xFFFF)), fittest.I8(-4))

	res, err := Decode(b.Bytes())
	require.NoError(t, err)
	s := res.Records[0].(*mesg.Session)

	require.Len(t, s.AvgLeftPowerPhase, 4)
	assert.Equal(t, uint8(100), *s.AvgLeftPowerPhase[0])
	assert.Nil(t, s.AvgLeftPowerPhase[2])
	require.Len(t, s.AvgPowerPosition, 2)
	assert.Equal(t, uint16(210), *s.AvgPowerPosition[0])
	assert.Nil(t, s.AvgPowerPosition[1])
	assert.Equal(t, int8(-4), *s.AvgLeftPco)
}

func TestDecodeCompressedTimestamps(t *testing.T) {
	ts := fittest.Start.Add(17 * time.Second)
	raw := binary.LittleEndian.Uint32(fittest.Time(ts))

	var b fittest.Builder
	b.Define(0, mesg.NumRecord,
		fittest.Field{Num: 253, Size: 4, Base: fittest.Uint32},
		fittest.Field{Num: 3, Size: 1, Base: fittest.Uint8},
	)
	b.Data(0, fittest.Time(ts), fittest.U8(100))
	b.Define(1, mesg.NumRecord, fittest.Field{Num: 3, Size: 1, Base: fittest.Uint8})
	b.Compressed(1, uint8(raw+3)&0x1F, fittest.U8(101))
	b.Compressed(1, uint8(raw+20)&0x1F, fittest.U8(102))

	res, err := Decode(b.Bytes())
	require.NoError(t, err)
	require.Len(t, res.Records, 3)

	second := res.Records[1].(*mesg.TrackPoint)
	require.NotNil(t, second.Timestamp)
	assert.Equal(t, ts.Add(3*time.Second), *second.Timestamp)

	third := res.Records[2].(*mesg.TrackPoint)
	require.NotNil(t, third.Timestamp)
	assert.Equal(t, ts.Add(20*time.Second), *third.Timestamp)
}

func TestDecodeReportsCRCMismatchWithoutFailing(t *testing.T) {
	data := fittest.Activity()
	data[len(data)-1] ^= 0xFF

	res, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, res.FileCRC.Valid)
	require.NotEmpty(t, res.Warnings())
	assert.Contains(t, res.Warnings()[0], "file crc mismatch")
	assert.Len(t, res.Records, 9)
}

func TestDecodeRejectsMalformedContainers(t *testing.T) {
	full := fittest.Activity()

	tests := []struct {
		name      string
		data      []byte
		truncated bool
	}{
		{name: "empty", data: nil, truncated: true},
		{name: "short", data: full[:10], truncated: true},
		{name: "cut mid data", data: full[:len(full)-20], truncated: true},
		{name: "bad header size", data: append([]byte{13}, full[1:]...)},
		{name: "bad data type", data: bytes.Replace(full, []byte(".FIT"), []byte(".TXT"), 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(tt.data)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.truncated, errors.Is(err, ErrTruncated))
		})
	}
}

func TestDecodeRejectsMissingDefinition(t *testing.T) {
	var b fittest.Builder
	b.Data(3, fittest.U8(1))

	_, err := Decode(b.Bytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no definition for local type 3")
}

func TestDecodeMessageCutInsideDeclaredData(t *testing.T) {
	var b fittest.Builder
	b.Define(0, mesg.NumRecord, fittest.Field{Num: 3, Size: 4, Base: fittest.Uint32})
	b.Raw([]byte{0x00, 0x01})

	_, err := Decode(b.Bytes())
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeTormoderEncodedActivity(t *testing.T) {
	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	require.NoError(t, err)
	activity, err := file.Activity()
	require.NoError(t, err)

	start := time.Date(2026, 2, 26, 23, 0, 0, 0, time.UTC)
	record := fit.NewRecordMsg()
	record.Timestamp = start.Add(30 * time.Second)
	record.HeartRate = 135
	record.Power = 245
	activity.Records = append(activity.Records, record)

	session := fit.NewSessionMsg()
	session.Timestamp = start.Add(10 * time.Minute)
	session.StartTime = start
	session.Sport = fit.SportCycling
	session.TotalTimerTime = 600000
	session.AvgPower = 230
	activity.Sessions = append(activity.Sessions, session)

	var buf bytes.Buffer
	require.NoError(t, fit.Encode(&buf, file, binary.LittleEndian))

	res, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, res.FileCRC.Valid)
	require.NotNil(t, res.FileID)

	var (
		sessions []*mesg.Session
		points   []*mesg.TrackPoint
	)
	for _, r := range res.Records {
		switch x := r.(type) {
		case *mesg.Session:
			sessions = append(sessions, x)
		case *mesg.TrackPoint:
			points = append(points, x)
		}
	}
	require.Len(t, sessions, 1)
	assert.Equal(t, uint8(2), *sessions[0].Sport)
	assert.Equal(t, uint32(600000), *sessions[0].TotalTimerTime)
	assert.Equal(t, uint16(230), *sessions[0].AvgPower)
	assert.Equal(t, start, *sessions[0].StartTime)

	require.Len(t, points, 1)
	assert.Equal(t, uint8(135), *points[0].HeartRate)
	assert.Equal(t, uint16(245), *points[0].Power)
}
