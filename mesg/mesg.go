// Package mesg holds the typed records produced by the FIT decoder.
//
// Every optional field is a pointer; a nil pointer means the device did not
// report the field (or reported the FIT invalid sentinel). Array fields keep
// their original length and use nil elements for invalid entries.
package mesg

import (
	"fmt"
	"time"
)

// Kind identifies a record variant.
type Kind uint8

const (
	KindUnrecognized Kind = iota
	KindSession
	KindSport
	KindUserProfile
	KindPhysiologicalMetrics
	KindTimeInZone
	KindSet
	KindLap
	KindTrackPoint
)

var kindNames = [...]string{
	KindUnrecognized:         "unrecognized",
	KindSession:              "session",
	KindSport:                "sport",
	KindUserProfile:          "user_profile",
	KindPhysiologicalMetrics: "physiological_metrics",
	KindTimeInZone:           "time_in_zone",
	KindSet:                  "set",
	KindLap:                  "lap",
	KindTrackPoint:           "track_point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Global FIT message numbers mapped to typed records.
const (
	NumUserProfile          uint16 = 3
	NumSport                uint16 = 12
	NumSession              uint16 = 18
	NumLap                  uint16 = 19
	NumRecord               uint16 = 20
	NumPhysiologicalMetrics uint16 = 140
	NumTimeInZone           uint16 = 216
	NumSet                  uint16 = 225
)

// Record is one decoded FIT data message. The set of implementations is
// closed: only types in this package satisfy it.
type Record interface {
	Kind() Kind
	record()
}

// Session summarizes a whole activity session (global message 18).
type Session struct {
	Sport     *uint8
	SubSport  *uint8
	StartTime *time.Time

	TotalElapsedTime *uint32 // ms
	TotalTimerTime   *uint32 // ms
	TotalDistance    *uint32 // cm
	TotalCycles      *uint32
	TotalCalories    *uint16
	EstSweatLoss     *uint16 // ml

	PoolLength     *float64 // m
	AvgSwolf       *uint16
	AvgSwimCadence *uint16
	AvgStepLength  *float64 // mm

	AvgHeartRate *uint8
	MaxHeartRate *uint8
	HrvSdrr      *uint8 // ms
	HrvRmssd     *uint8 // ms
	AvgSpo2      *uint8
	AvgStress    *float64

	EnhancedAvgRespirationRate *float64
	EnhancedMaxRespirationRate *float64
	EnhancedMinRespirationRate *float64

	AvgCadence   *uint8
	MaxCadence   *uint8
	TotalAscent  *uint16
	TotalDescent *uint16

	EnhancedAvgSpeed *float64 // m/s
	EnhancedMaxSpeed *float64 // m/s

	TrainingLoadPeak    *float64
	IntensityFactor     *float64
	TrainingStressScore *float64

	AvgPower        *uint16
	MaxPower        *uint16
	NormalizedPower *uint16

	TimeStanding *uint32 // ms
	StandCount   *uint16
	AvgLeftPco   *int8 // mm
	AvgRightPco  *int8 // mm

	AvgVerticalOscillation *float64 // mm
	AvgStanceTime          *float64 // ms
	AvgVerticalRatio       *float64 // percent
	AvgStanceTimeBalance   *float64 // percent

	// Power phase arrays are raw angle units; see the synthesizer for scaling.
	AvgLeftPowerPhase      []*uint8
	AvgLeftPowerPhasePeak  []*uint8
	AvgRightPowerPhase     []*uint8
	AvgRightPowerPhasePeak []*uint8

	AvgPowerPosition   []*uint16
	MaxPowerPosition   []*uint16
	AvgCadencePosition []*uint8
	MaxCadencePosition []*uint8

	FrontShifts *uint16
	RearShifts  *uint16

	LeftRightBalance *uint16 // packed: low 14 bits are percent*100

	AvgLeftPedalSmoothness      *float64
	AvgRightPedalSmoothness     *float64
	AvgLeftTorqueEffectiveness  *float64
	AvgRightTorqueEffectiveness *float64
}

// Sport carries the activity's sport profile (global message 12).
type Sport struct {
	Sport    *uint8
	SubSport *uint8
	Name     *string
}

// Display measure settings used by UserProfile.WeightSetting.
const (
	MeasureMetric  uint8 = 0
	MeasureStatute uint8 = 1
)

// UserProfile is the athlete profile stored on the device (global message 3).
type UserProfile struct {
	FriendlyName  *string
	Weight        *float64 // kg
	WeightSetting *uint8
}

// PhysiologicalMetrics is Garmin's proprietary post-activity assessment
// (global message 140).
type PhysiologicalMetrics struct {
	AerobicEffect             *float64
	AnaerobicEffect           *float64
	MetMax                    *float64
	RecoveryTime              *uint16 // minutes
	LactateThresholdHeartRate *uint8
}

// TimeInZone holds per-zone durations for the message named by
// ReferenceMesg (global message 216).
type TimeInZone struct {
	ReferenceMesg  *uint16
	ReferenceIndex *uint16
	TimeInHRZone   []*float64 // seconds
}

// Set types.
const (
	SetTypeRest   uint8 = 0
	SetTypeActive uint8 = 1
)

// Set is one strength-training set or rest interval (global message 225).
type Set struct {
	Duration    *float64 // seconds
	Repetitions *uint16
	Weight      *float64 // kg
	SetType     *uint8
	StartTime   *time.Time
}

// Lap is one lap summary (global message 19).
type Lap struct {
	StartTime        *time.Time
	TotalElapsedTime *uint32 // ms
	TotalTimerTime   *uint32 // ms
	TotalDistance    *uint32 // cm
	AvgSwolf         *uint16
}

// Position is a WGS84 coordinate in degrees.
type Position struct {
	Lat float64
	Lon float64
}

// TrackPoint is one sampled record (global message 20).
type TrackPoint struct {
	Timestamp *time.Time
	Position  *Position
	HeartRate *uint8
	Distance  *float64 // m
	Speed     *float64 // m/s
	Power     *uint16
}

// Unrecognized is a data message with no typed mapping.
type Unrecognized struct {
	GlobalMessageNum uint16
}

func (*Session) Kind() Kind { return KindSession }
func (*Sport) Kind() Kind { return KindSport }
func (*UserProfile) Kind() Kind { return KindUserProfile }
func (*PhysiologicalMetrics) Kind() Kind { return KindPhysiologicalMetrics }
func (*TimeInZone) Kind() Kind { return KindTimeInZone }
func (*Set) Kind() Kind { return KindSet }
func (*Lap) Kind() Kind { return KindLap }
func (*TrackPoint) Kind() Kind { return KindTrackPoint }
func (*Unrecognized) Kind() Kind { return KindUnrecognized }

func (*Session) record() {}
func (*Sport) record() {}
func (*UserProfile) record() {}
func (*PhysiologicalMetrics) record() {}
func (*TimeInZone) record() {}
func (*Set) record() {}
func (*Lap) record() {}
func (*TrackPoint) record() {}
func (*Unrecognized) record() {}

// Ptr returns a pointer to v. It keeps fixtures and decoders terse.
func Ptr[T any](v T) *T {
	return &v
}
