// Package activity classifies workouts from FIT sport/sub-sport codes.
package activity

import "fmt"

// Kind is a workout classification. Codes are stable and safe to persist.
type Kind int

const (
	Unknown Kind = 0

	Activity          Kind = 1
	Running           Kind = 16
	TreadmillRunning  Kind = 17
	TrailRunning      Kind = 18
	TrackRunning      Kind = 19
	IndoorRunning     Kind = 20
	Cycling           Kind = 32
	IndoorCycling     Kind = 33
	MountainBiking    Kind = 34
	GravelCycling     Kind = 35
	EBiking           Kind = 36
	HandCycling       Kind = 37
	VirtualCycling    Kind = 38
	Walking           Kind = 48
	IndoorWalking     Kind = 49
	Hiking            Kind = 50
	Mountaineering    Kind = 51
	SwimmingPool      Kind = 64
	SwimmingOpenWater Kind = 65
	Rowing            Kind = 80
	IndoorRowing      Kind = 81
	Paddling          Kind = 82
	Kayaking          Kind = 83
	StandUpPaddling   Kind = 84
	StrengthTraining  Kind = 96
	CardioTraining    Kind = 97
	Hiit              Kind = 98
	Yoga              Kind = 99
	Pilates           Kind = 100
	Elliptical        Kind = 101
	StairClimbing     Kind = 102
	JumpRope          Kind = 103
	CrossCountrySki   Kind = 112
	AlpineSkiing      Kind = 113
	Snowboarding      Kind = 114
	Snowshoeing       Kind = 115
	Climbing          Kind = 128
	IndoorClimbing    Kind = 129
	Bouldering        Kind = 130
	Soccer            Kind = 144
	Basketball        Kind = 145
	Tennis            Kind = 146
	Golf              Kind = 147
	Boxing            Kind = 148
	Pickleball        Kind = 149
	Multisport        Kind = 160
	Transition        Kind = 161
	InlineSkating     Kind = 162
	IceSkating        Kind = 163
	Surfing           Kind = 164
	Sailing           Kind = 165
	Diving            Kind = 166
	Breathwork        Kind = 167
)

var kindNames = map[Kind]string{
	Unknown:           "unknown",
	Activity:          "activity",
	Running:           "running",
	TreadmillRunning:  "treadmill_running",
	TrailRunning:      "trail_running",
	TrackRunning:      "track_running",
	IndoorRunning:     "indoor_running",
	Cycling:           "cycling",
	IndoorCycling:     "indoor_cycling",
	MountainBiking:    "mountain_biking",
	GravelCycling:     "gravel_cycling",
	EBiking:           "e_biking",
	HandCycling:       "hand_cycling",
	VirtualCycling:    "virtual_cycling",
	Walking:           "walking",
	IndoorWalking:     "indoor_walking",
	Hiking:            "hiking",
	Mountaineering:    "mountaineering",
	SwimmingPool:      "swimming_pool",
	SwimmingOpenWater: "swimming_open_water",
	Rowing:            "rowing",
	IndoorRowing:      "indoor_rowing",
	Paddling:          "paddling",
	Kayaking:          "kayaking",
	StandUpPaddling:   "stand_up_paddling",
	StrengthTraining:  "strength_training",
	CardioTraining:    "cardio_training",
	Hiit:              "hiit",
	Yoga:              "yoga",
	Pilates:           "pilates",
	Elliptical:        "elliptical",
	StairClimbing:     "stair_climbing",
	JumpRope:          "jump_rope",
	CrossCountrySki:   "cross_country_skiing",
	AlpineSkiing:      "alpine_skiing",
	Snowboarding:      "snowboarding",
	Snowshoeing:       "snowshoeing",
	Climbing:          "climbing",
	IndoorClimbing:    "indoor_climbing",
	Bouldering:        "bouldering",
	Soccer:            "soccer",
	Basketball:        "basketball",
	Tennis:            "tennis",
	Golf:              "golf",
	Boxing:            "boxing",
	Pickleball:        "pickleball",
	Multisport:        "multisport",
	Transition:        "transition",
	InlineSkating:     "inline_skating",
	IceSkating:        "ice_skating",
	Surfing:           "surfing",
	Sailing:           "sailing",
	Diving:            "diving",
	Breathwork:        "breathwork",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText renders the kind name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Code returns the persisted integer code.
func (k Kind) Code() int {
	return int(k)
}

// CycleUnit is the unit of repetitive motion counted by a workout.
type CycleUnit int

const (
	CycleNone CycleUnit = iota
	CycleSteps
	CycleStrokes
	CycleRevolutions
	CycleJumps
	CycleReps
	CycleGeneric
)

func (u CycleUnit) String() string {
	switch u {
	case CycleSteps:
		return "steps"
	case CycleStrokes:
		return "strokes"
	case CycleRevolutions:
		return "revolutions"
	case CycleJumps:
		return "jumps"
	case CycleReps:
		return "reps"
	case CycleGeneric:
		return "cycles"
	default:
		return "none"
	}
}

// CycleUnitOf returns the cycle unit for k. Devices record running and
// walking cadence as strides, so step-based kinds need doubling.
func CycleUnitOf(k Kind) CycleUnit {
	switch k {
	case Running, TreadmillRunning, TrailRunning, TrackRunning, IndoorRunning,
		Walking, IndoorWalking, Hiking, Mountaineering, Snowshoeing, StairClimbing:
		return CycleSteps
	case SwimmingPool, SwimmingOpenWater, Rowing, IndoorRowing, Paddling, Kayaking,
		StandUpPaddling, CrossCountrySki:
		return CycleStrokes
	case Cycling, IndoorCycling, MountainBiking, GravelCycling, EBiking, HandCycling,
		VirtualCycling:
		return CycleRevolutions
	case JumpRope:
		return CycleJumps
	case StrengthTraining:
		return CycleReps
	case Elliptical, CardioTraining, Activity:
		return CycleGeneric
	default:
		return CycleNone
	}
}

// IsPace reports whether speed for k is shown as pace (time per km).
func IsPace(k Kind) bool {
	switch k {
	case Running, TreadmillRunning, TrailRunning, TrackRunning, IndoorRunning,
		Walking, IndoorWalking, Hiking, Mountaineering, Snowshoeing,
		SwimmingPool, SwimmingOpenWater:
		return true
	default:
		return false
	}
}
