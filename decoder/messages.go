package decoder

import (
	"time"

	"github.com/lucasjlepore/fit-summary/mesg"
)

// semicircleDegrees converts FIT semicircles to degrees.
const semicircleDegrees = 180.0 / (1 << 31)

type fieldSet map[uint8]*Field

func indexFields(m *Message) fieldSet {
	fs := make(fieldSet, len(m.Fields))
	for i := range m.Fields {
		fs[m.Fields[i].Num] = &m.Fields[i]
	}
	return fs
}

func uintField[T ~uint8 | ~uint16 | ~uint32](fs fieldSet, num uint8) *T {
	f, ok := fs[num]
	if !ok {
		return nil
	}
	v, ok := f.asUint(0)
	if !ok {
		return nil
	}
	out := T(v)
	return &out
}

func intField[T ~int8 | ~int16 | ~int32](fs fieldSet, num uint8) *T {
	f, ok := fs[num]
	if !ok {
		return nil
	}
	v, ok := f.asInt(0)
	if !ok {
		return nil
	}
	out := T(v)
	return &out
}

func uintArray[T ~uint8 | ~uint16 | ~uint32](fs fieldSet, num uint8) []*T {
	f, ok := fs[num]
	if !ok || len(f.Values) == 0 {
		return nil
	}
	out := make([]*T, len(f.Values))
	for i := range f.Values {
		if v, ok := f.asUint(i); ok {
			x := T(v)
			out[i] = &x
		}
	}
	return out
}

func (fs fieldSet) scaled(num uint8, scale float64) *float64 {
	f, ok := fs[num]
	if !ok {
		return nil
	}
	v, ok := f.asFloat(0)
	if !ok {
		return nil
	}
	out := v / scale
	return &out
}

func (fs fieldSet) scaledArray(num uint8, scale float64) []*float64 {
	f, ok := fs[num]
	if !ok || len(f.Values) == 0 {
		return nil
	}
	out := make([]*float64, len(f.Values))
	for i := range f.Values {
		if v, ok := f.asFloat(i); ok {
			x := v / scale
			out[i] = &x
		}
	}
	return out
}

func (fs fieldSet) text(num uint8) *string {
	f, ok := fs[num]
	if !ok || f.Text == "" {
		return nil
	}
	s := f.Text
	return &s
}

func (fs fieldSet) time(num uint8) *time.Time {
	v := uintField[uint32](fs, num)
	if v == nil {
		return nil
	}
	t := toTime(*v)
	return &t
}

func (fs fieldSet) position(latNum, lonNum uint8) *mesg.Position {
	lat := intField[int32](fs, latNum)
	lon := intField[int32](fs, lonNum)
	if lat == nil || lon == nil {
		return nil
	}
	return &mesg.Position{
		Lat: float64(*lat) * semicircleDegrees,
		Lon: float64(*lon) * semicircleDegrees,
	}
}

// toRecord maps a data message onto its typed record. Messages without a
// mapping come back as *mesg.Unrecognized.
func toRecord(m *Message) mesg.Record {
	fs := indexFields(m)
	switch m.Global {
	case mesg.NumSession:
		return toSession(fs)
	case mesg.NumSport:
		return &mesg.Sport{
			Sport:    uintField[uint8](fs, 0),
			SubSport: uintField[uint8](fs, 1),
			Name:     fs.text(3),
		}
	case mesg.NumUserProfile:
		return &mesg.UserProfile{
			FriendlyName:  fs.text(0),
			Weight:        fs.scaled(4, 10),
			WeightSetting: uintField[uint8](fs, 7),
		}
	case mesg.NumPhysiologicalMetrics:
		return &mesg.PhysiologicalMetrics{
			AerobicEffect:             fs.scaled(4, 10),
			MetMax:                    fs.scaled(7, 65536),
			RecoveryTime:              uintField[uint16](fs, 9),
			LactateThresholdHeartRate: uintField[uint8](fs, 14),
			AnaerobicEffect:           fs.scaled(20, 10),
		}
	case mesg.NumTimeInZone:
		return &mesg.TimeInZone{
			ReferenceMesg:  uintField[uint16](fs, 0),
			ReferenceIndex: uintField[uint16](fs, 1),
			TimeInHRZone:   fs.scaledArray(2, 1000),
		}
	case mesg.NumSet:
		return &mesg.Set{
			Duration:    fs.scaled(0, 1000),
			Repetitions: uintField[uint16](fs, 3),
			Weight:      fs.scaled(4, 16),
			SetType:     uintField[uint8](fs, 5),
			StartTime:   fs.time(6),
		}
	case mesg.NumLap:
		return &mesg.Lap{
			StartTime:        fs.time(2),
			TotalElapsedTime: uintField[uint32](fs, 7),
			TotalTimerTime:   uintField[uint32](fs, 8),
			TotalDistance:    uintField[uint32](fs, 9),
			AvgSwolf:         uintField[uint16](fs, 73),
		}
	case mesg.NumRecord:
		tp := &mesg.TrackPoint{
			Timestamp: m.Timestamp,
			Position:  fs.position(0, 1),
			HeartRate: uintField[uint8](fs, 3),
			Distance:  fs.scaled(5, 100),
			Speed:     fs.scaled(6, 1000),
			Power:     uintField[uint16](fs, 7),
		}
		if v := fs.scaled(73, 1000); v != nil {
			tp.Speed = v
		}
		return tp
	}
	return &mesg.Unrecognized{GlobalMessageNum: m.Global}
}

func toSession(fs fieldSet) *mesg.Session {
	s := &mesg.Session{
		StartTime: fs.time(2),
		Sport:     uintField[uint8](fs, 5),
		SubSport:  uintField[uint8](fs, 6),

		TotalElapsedTime: uintField[uint32](fs, 7),
		TotalTimerTime:   uintField[uint32](fs, 8),
		TotalDistance:    uintField[uint32](fs, 9),
		TotalCycles:      uintField[uint32](fs, 10),
		TotalCalories:    uintField[uint16](fs, 11),
		EstSweatLoss:     uintField[uint16](fs, 178),

		PoolLength:     fs.scaled(44, 100),
		AvgSwimCadence: uintField[uint16](fs, 79),
		AvgSwolf:       uintField[uint16](fs, 80),
		AvgStepLength:  fs.scaled(134, 10),

		AvgHeartRate: uintField[uint8](fs, 16),
		MaxHeartRate: uintField[uint8](fs, 17),
		HrvSdrr:      uintField[uint8](fs, 197),
		HrvRmssd:     uintField[uint8](fs, 198),
		AvgSpo2:      uintField[uint8](fs, 194),
		AvgStress:    fs.scaled(195, 100),

		EnhancedAvgRespirationRate: fs.scaled(169, 100),
		EnhancedMaxRespirationRate: fs.scaled(170, 100),
		EnhancedMinRespirationRate: fs.scaled(180, 100),

		AvgCadence:   uintField[uint8](fs, 18),
		MaxCadence:   uintField[uint8](fs, 19),
		TotalAscent:  uintField[uint16](fs, 22),
		TotalDescent: uintField[uint16](fs, 23),

		EnhancedAvgSpeed: fs.scaled(124, 1000),
		EnhancedMaxSpeed: fs.scaled(125, 1000),

		TrainingLoadPeak:    fs.scaled(168, 65536),
		IntensityFactor:     fs.scaled(36, 1000),
		TrainingStressScore: fs.scaled(35, 10),

		AvgPower:        uintField[uint16](fs, 20),
		MaxPower:        uintField[uint16](fs, 21),
		NormalizedPower: uintField[uint16](fs, 34),

		TimeStanding: uintField[uint32](fs, 112),
		StandCount:   uintField[uint16](fs, 113),
		AvgLeftPco:   intField[int8](fs, 114),
		AvgRightPco:  intField[int8](fs, 115),

		AvgVerticalOscillation: fs.scaled(89, 10),
		AvgStanceTime:          fs.scaled(91, 10),
		AvgVerticalRatio:       fs.scaled(132, 100),
		AvgStanceTimeBalance:   fs.scaled(133, 100),

		AvgLeftPowerPhase:      uintArray[uint8](fs, 116),
		AvgLeftPowerPhasePeak:  uintArray[uint8](fs, 117),
		AvgRightPowerPhase:     uintArray[uint8](fs, 118),
		AvgRightPowerPhasePeak: uintArray[uint8](fs, 119),

		AvgPowerPosition:   uintArray[uint16](fs, 120),
		MaxPowerPosition:   uintArray[uint16](fs, 121),
		AvgCadencePosition: uintArray[uint8](fs, 122),
		MaxCadencePosition: uintArray[uint8](fs, 123),

		FrontShifts: uintField[uint16](fs, 151),
		RearShifts:  uintField[uint16](fs, 152),

		LeftRightBalance: uintField[uint16](fs, 37),

		AvgLeftTorqueEffectiveness:  fs.scaled(101, 2),
		AvgRightTorqueEffectiveness: fs.scaled(102, 2),
		AvgLeftPedalSmoothness:      fs.scaled(103, 2),
		AvgRightPedalSmoothness:     fs.scaled(104, 2),
	}
	// Older devices only write the 16-bit speed fields.
	if s.EnhancedAvgSpeed == nil {
		s.EnhancedAvgSpeed = fs.scaled(14, 1000)
	}
	if s.EnhancedMaxSpeed == nil {
		s.EnhancedMaxSpeed = fs.scaled(15, 1000)
	}
	return s
}
