package workout

import (
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lucasjlepore/fit-summary/activity"
	"github.com/lucasjlepore/fit-summary/mesg"
	"github.com/lucasjlepore/fit-summary/summary"
)

const (
	// powerPhaseScale converts raw power phase angle units to degrees
	// (256 units per 360°).
	powerPhaseScale = 0.7111111

	// balanceMask keeps the low 14 bits of left_right_balance, which hold
	// the percentage times 100. The top bit flags the right pedal.
	balanceMask = 0x3FFF

	// zoneReferenceMesg is the reference_mesg of a time_in_zone record that
	// describes the whole session.
	zoneReferenceMesg = mesg.NumSession

	// kmhPerMps converts metres per second to kilometres per hour.
	kmhPerMps = 3.6

	// vo2PerMet converts MET to ml/kg/min of oxygen.
	vo2PerMet = 3.5
)

// hrZones are emitted in this order. Zone 0 is time outside any zone and
// carries no color.
var hrZones = [...]struct {
	key   string
	color string
}{
	{KeyHRZoneNA, ""},
	{KeyHRZoneWarmUp, "hr_zone_warm_up"},
	{KeyHRZoneEasy, "hr_zone_easy"},
	{KeyHRZoneAerobic, "hr_zone_aerobic"},
	{KeyHRZoneThreshold, "hr_zone_threshold"},
	{KeyHRZoneMaximum, "hr_zone_maximum"},
}

type numeric interface {
	~uint8 | ~uint16 | ~uint32 | ~int8 | ~float64
}

func put[T numeric](out *summary.Summary, key string, v *T, unit string) {
	if v == nil {
		return
	}
	out.Add(key, summary.Number(float64(*v)), unit)
}

func putScaled[T numeric](out *summary.Summary, key string, v *T, div float64, unit string) {
	if v == nil {
		return
	}
	out.Add(key, summary.Number(float64(*v)/div), unit)
}

func putRounded(out *summary.Summary, key string, v *float64, unit string) {
	if v == nil {
		return
	}
	out.Add(key, summary.Number(round(*v)), unit)
}

// round rounds half up, so 2.5 becomes 3 and -2.5 becomes -2.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Synthesize derives act's kind, times and summary from st. It returns
// ErrNoSession, leaving act untouched, when st holds no session.
func (p *Parser) Synthesize(st *State, act *Activity) error {
	s := st.Session
	if s == nil {
		p.logger.Error("got workout, but no session")
		return ErrNoSession
	}

	out := summary.New()
	kind := p.classify(st)
	cycle := activity.CycleUnitOf(kind)
	weightUnit := weightUnitOf(st.UserProfile)

	putScaled(out, KeyActiveSeconds, s.TotalTimerTime, 1000, summary.UnitSeconds)
	putScaled(out, KeyDistanceMeters, s.TotalDistance, 100, summary.UnitMeters)
	put(out, KeyPoolLength, s.PoolLength, summary.UnitMeters)
	put(out, KeySwolfAvg, s.AvgSwolf, summary.UnitNone)

	totalKey, totalUnit, rateUnit := cycleUnits(cycle)
	mult := 1.0
	if cycle == activity.CycleSteps {
		// Devices count strides; a stride is two steps.
		mult = 2
	}
	if s.TotalCycles != nil {
		out.Add(totalKey, summary.Number(float64(*s.TotalCycles)*mult), totalUnit)
	}

	put(out, KeyStepLengthAvg, s.AvgStepLength, summary.UnitMillimeters)
	put(out, KeyCaloriesBurnt, s.TotalCalories, summary.UnitKcal)
	put(out, KeyEstimatedSweatLoss, s.EstSweatLoss, summary.UnitMilliliters)
	put(out, KeyHRAvg, s.AvgHeartRate, summary.UnitBPM)
	put(out, KeyHRMax, s.MaxHeartRate, summary.UnitBPM)
	put(out, KeyHRVSdrr, s.HrvSdrr, summary.UnitMilliseconds)
	put(out, KeyHRVRmssd, s.HrvRmssd, summary.UnitMilliseconds)
	put(out, KeySpo2Avg, s.AvgSpo2, summary.UnitPercentage)
	put(out, KeyRespirationAvg, s.EnhancedAvgRespirationRate, summary.UnitBreathsPerMinute)
	put(out, KeyRespirationMax, s.EnhancedMaxRespirationRate, summary.UnitBreathsPerMinute)
	put(out, KeyRespirationMin, s.EnhancedMinRespirationRate, summary.UnitBreathsPerMinute)
	put(out, KeyStressAvg, s.AvgStress, summary.UnitNone)

	if s.AvgCadence != nil {
		out.Add(KeyCadenceAvg, summary.Number(float64(*s.AvgCadence)*mult), rateUnit)
	}
	if s.MaxCadence != nil {
		out.Add(KeyCadenceMax, summary.Number(float64(*s.MaxCadence)*mult), rateUnit)
	}

	put(out, KeyAscentDistance, s.TotalAscent, summary.UnitMeters)
	put(out, KeyDescentDistance, s.TotalDescent, summary.UnitMeters)
	put(out, KeySwimAvgCadence, s.AvgSwimCadence, summary.UnitStrokesPerLength)

	pace := activity.IsPace(kind)
	p.putSpeed(out, s.EnhancedAvgSpeed, pace, KeyPaceAvgSecondsKm, KeySpeedAvg)
	p.putSpeed(out, s.EnhancedMaxSpeed, pace, KeyPaceMax, KeySpeedMax)

	putRounded(out, KeyTrainingLoad, s.TrainingLoadPeak, summary.UnitNone)
	put(out, KeyAvgPower, s.AvgPower, summary.UnitWatt)
	put(out, KeyMaxPower, s.MaxPower, summary.UnitWatt)
	put(out, KeyNormalizedPower, s.NormalizedPower, summary.UnitWatt)

	putScaled(out, KeyStandingTime, s.TimeStanding, 1000, summary.UnitSeconds)
	put(out, KeyStandingCount, s.StandCount, summary.UnitNone)
	put(out, KeyAvgLeftPco, s.AvgLeftPco, summary.UnitMillimeters)
	put(out, KeyAvgRightPco, s.AvgRightPco, summary.UnitMillimeters)

	put(out, KeyAvgVerticalOscillation, s.AvgVerticalOscillation, summary.UnitMillimeters)
	put(out, KeyAvgGroundContactTime, s.AvgStanceTime, summary.UnitMilliseconds)
	put(out, KeyAvgVerticalRatio, s.AvgVerticalRatio, summary.UnitPercentage)
	put(out, KeyAvgGroundContactTimeBalance, s.AvgStanceTimeBalance, summary.UnitPercentage)

	p.putPowerPhase(out, KeyAvgLeftPowerPhase, s.AvgLeftPowerPhase)
	p.putPowerPhase(out, KeyAvgRightPowerPhase, s.AvgRightPowerPhase)
	p.putPowerPhase(out, KeyAvgLeftPowerPhasePeak, s.AvgLeftPowerPhasePeak)
	p.putPowerPhase(out, KeyAvgRightPowerPhasePeak, s.AvgRightPowerPhasePeak)

	putPair(out, KeyAvgPowerSeating, KeyAvgPowerStanding, s.AvgPowerPosition, summary.UnitWatt)
	putPair(out, KeyMaxPowerSeating, KeyMaxPowerStanding, s.MaxPowerPosition, summary.UnitWatt)
	putPair(out, KeyAvgCadenceSeating, KeyAvgCadenceStanding, s.AvgCadencePosition, summary.UnitRPM)
	putPair(out, KeyMaxCadenceSeating, KeyMaxCadenceStanding, s.MaxCadencePosition, summary.UnitRPM)

	put(out, KeyFrontGearShifts, s.FrontShifts, summary.UnitNone)
	put(out, KeyRearGearShifts, s.RearShifts, summary.UnitNone)

	if s.LeftRightBalance != nil {
		out.Add(KeyLeftRightBalance, summary.Number(float64(*s.LeftRightBalance&balanceMask)/100), summary.UnitPercentage)
	}

	p.putLeftRight(out, KeyAvgPedalSmoothness, s.AvgLeftPedalSmoothness, s.AvgRightPedalSmoothness)
	p.putLeftRight(out, KeyAvgTorqueEffectiveness, s.AvgLeftTorqueEffectiveness, s.AvgRightTorqueEffectiveness)

	putZones(out, st.TimesInZone)

	if pm := st.PhysiologicalMetrics; pm != nil {
		if pm.AerobicEffect != nil {
			out.Put(summary.Entry{Key: KeyTrainingEffectAerobic, Value: summary.Number(*pm.AerobicEffect), HigherIsBetter: true})
		}
		if pm.AnaerobicEffect != nil {
			out.Put(summary.Entry{Key: KeyTrainingEffectAnaerobic, Value: summary.Number(*pm.AnaerobicEffect), HigherIsBetter: true})
		}
		if pm.MetMax != nil {
			out.Add(KeyMaximumOxygenUptake, summary.Number(*pm.MetMax*vo2PerMet), summary.UnitMlKgMin)
		}
		if pm.RecoveryTime != nil {
			out.Add(KeyRecoveryTime, summary.Number(float64(*pm.RecoveryTime)*60), summary.UnitSeconds)
		}
		put(out, KeyLactateThresholdHR, pm.LactateThresholdHeartRate, summary.UnitBPM)
	}

	// training_load is written a second time here; the summary keeps its
	// first position, so only the value is refreshed.
	putRounded(out, KeyTrainingLoad, s.TrainingLoadPeak, summary.UnitNone)
	put(out, KeyIntensityFactor, s.IntensityFactor, summary.UnitNone)
	put(out, KeyTrainingStressScore, s.TrainingStressScore, summary.UnitNone)

	p.putSets(out, st.Sets, weightUnit)

	// Laps are collected for future per-lap output; nothing is emitted yet.
	if len(st.Laps) > 0 {
		p.logger.Debug("laps accumulated",
			zap.Int("count", len(st.Laps)),
			zap.Bool("swolf", st.LapsHaveSwolf()))
	}

	out.Add(KeyInternalHasGPS, summary.Bool(st.HasGPS()), summary.UnitNone)

	if st.Sport != nil && st.Sport.Name != nil {
		act.Name = *st.Sport.Name
	}
	act.Kind = kind
	if act.StartTime.IsZero() && s.StartTime != nil {
		act.StartTime = *s.StartTime
	}
	if s.TotalElapsedTime != nil {
		end := act.StartTime.Add(time.Duration(*s.TotalElapsedTime) * time.Millisecond)
		act.EndTime = &end
	}
	act.Summary = out
	return nil
}

// classify resolves the activity kind from the Sport record when present,
// otherwise from the session.
func (p *Parser) classify(st *State) activity.Kind {
	sport, subSport := st.Session.Sport, st.Session.SubSport
	if st.Sport != nil {
		sport, subSport = st.Sport.Sport, st.Sport.SubSport
	}
	if sport == nil {
		return activity.Unknown
	}
	var sub uint8
	if subSport != nil {
		sub = *subSport
	}
	kind, exact := activity.FromCodes(*sport, sub)
	if !exact {
		p.logger.Debug("no exact activity kind",
			zap.Uint8("sport", *sport),
			zap.Uint8("sub_sport", sub),
			zap.Stringer("kind", kind))
	}
	return kind
}

func weightUnitOf(up *mesg.UserProfile) string {
	if up != nil && up.WeightSetting != nil && *up.WeightSetting == mesg.MeasureStatute {
		return summary.UnitLb
	}
	return summary.UnitKg
}

// cycleUnits returns the total key, total unit and rate unit for u.
func cycleUnits(u activity.CycleUnit) (string, string, string) {
	switch u {
	case activity.CycleSteps:
		return "steps", summary.UnitSteps, summary.UnitSPM
	case activity.CycleStrokes:
		return "strokes", summary.UnitStrokes, summary.UnitStrokesPerMinute
	case activity.CycleRevolutions:
		return "revolutions", summary.UnitRevolutions, summary.UnitRPM
	case activity.CycleJumps:
		return "jumps", summary.UnitJumps, summary.UnitJumpsPerMinute
	case activity.CycleReps:
		return "reps", summary.UnitReps, summary.UnitCyclesPerMinute
	default:
		return "cycles", summary.UnitCycles, summary.UnitCyclesPerMinute
	}
}

func (p *Parser) putSpeed(out *summary.Summary, mps *float64, pace bool, paceKey, speedKey string) {
	if mps == nil {
		return
	}
	if !pace {
		out.Add(speedKey, summary.Number(round(*mps*kmhPerMps*100)/100), summary.UnitKmh)
		return
	}
	if *mps <= 0 {
		p.logger.Debug("skipping pace for non-positive speed", zap.String("key", paceKey))
		return
	}
	out.Add(paceKey, summary.Number(round(60/(*mps*kmhPerMps)*60)), summary.UnitSeconds)
}

// putPowerPhase emits the start and end angles of a four-element power
// phase array. Other lengths, or a missing start or end, emit nothing.
func (p *Parser) putPowerPhase(out *summary.Summary, key string, raw []*uint8) {
	if len(raw) != 4 || raw[0] == nil || raw[1] == nil {
		return
	}
	start := int64(round(float64(*raw[0]) / powerPhaseScale))
	end := int64(round(float64(*raw[1]) / powerPhaseScale))
	out.Add(key, summary.Text(p.formatter.RangeDegrees(start, end)), summary.UnitNone)
}

// putPair splits a seated/standing pair into two entries.
func putPair[T ~uint8 | ~uint16](out *summary.Summary, seatedKey, standingKey string, pair []*T, unit string) {
	if len(pair) != 2 {
		return
	}
	put(out, seatedKey, pair[0], unit)
	put(out, standingKey, pair[1], unit)
}

// putLeftRight emits a joint left/right percentage only when both sides
// are present.
func (p *Parser) putLeftRight(out *summary.Summary, key string, left, right *float64) {
	if left == nil || right == nil {
		return
	}
	text := p.formatter.RangePercentage(int64(round(*left)), int64(round(*right)))
	out.Add(key, summary.Text(text), summary.UnitNone)
}

// putZones apportions the first usable session-level time_in_zone record
// across the fixed heart rate zones.
func putZones(out *summary.Summary, tizs []*mesg.TimeInZone) {
	for _, tiz := range tizs {
		if tiz.ReferenceMesg == nil || *tiz.ReferenceMesg != zoneReferenceMesg {
			continue
		}
		zones := tiz.TimeInHRZone
		if len(zones) == 0 {
			continue
		}
		var total float64
		for _, z := range zones {
			if z != nil {
				total += *z
			}
		}
		if total == 0 {
			continue
		}
		// A device that could not split the time reports it all in zone 0.
		if zones[0] != nil && *zones[0] == total {
			continue
		}
		for i, zone := range hrZones {
			var secs float64
			if i < len(zones) && zones[i] != nil {
				secs = math.RoundToEven(*zones[i])
			}
			out.Add(zone.key, summary.Progress{
				Value:      secs,
				Unit:       summary.UnitSeconds,
				Percentage: int(100 * secs / total),
				Color:      zone.color,
			}, summary.UnitNone)
		}
		return
	}
}

// putSets emits a header row and one row per active set with a duration.
// Row numbers count emitted rows only.
func (p *Parser) putSets(out *summary.Summary, sets []*mesg.Set, weightUnit string) {
	if len(sets) == 0 {
		return
	}

	header := p.formatter.SetHeader()
	cells := make([]summary.Cell, len(header))
	for i, h := range header {
		cells[i] = summary.Cell{Value: h}
	}
	out.Add(KeySetsHeader, summary.TableRow{Group: GroupSets, Cells: cells, Header: true, Visible: true}, summary.UnitNone)

	row := 1
	for _, set := range sets {
		if set.SetType == nil || set.Duration == nil || *set.SetType != mesg.SetTypeActive {
			continue
		}
		reps := summary.Cell{Value: p.formatter.Placeholder()}
		if set.Repetitions != nil {
			reps = summary.Cell{Value: strconv.Itoa(int(*set.Repetitions))}
		}
		weight := summary.Cell{Value: p.formatter.Placeholder()}
		if set.Weight != nil {
			weight = summary.Cell{Value: *set.Weight, Unit: weightUnit}
		}
		out.Add(KeySetPrefix+strconv.Itoa(row), summary.TableRow{
			Group: GroupSets,
			Cells: []summary.Cell{
				{Value: row},
				reps,
				weight,
				{Value: int64(*set.Duration), Unit: summary.UnitSeconds},
			},
			Visible: true,
		}, summary.UnitNone)
		row++
	}
}
