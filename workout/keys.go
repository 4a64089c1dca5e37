package workout

// Summary keys, listed in emission order.
const (
	KeyActiveSeconds  = "active_seconds"
	KeyDistanceMeters = "distance_meters"
	KeyPoolLength     = "pool_length"
	KeySwolfAvg       = "swolf_avg"

	KeyStepLengthAvg      = "step_length_avg"
	KeyCaloriesBurnt      = "calories_burnt"
	KeyEstimatedSweatLoss = "estimated_sweat_loss"
	KeyHRAvg              = "hr_avg"
	KeyHRMax              = "hr_max"
	KeyHRVSdrr            = "hrv_sdrr"
	KeyHRVRmssd           = "hrv_rmssd"
	KeySpo2Avg            = "spo2_avg"
	KeyRespirationAvg     = "respiration_avg"
	KeyRespirationMax     = "respiration_max"
	KeyRespirationMin     = "respiration_min"
	KeyStressAvg          = "stress_avg"

	KeyCadenceAvg = "cadence_avg"
	KeyCadenceMax = "cadence_max"

	KeyAscentDistance  = "ascent_distance"
	KeyDescentDistance = "descent_distance"
	KeySwimAvgCadence  = "swim_avg_cadence"

	KeyPaceAvgSecondsKm = "pace_avg_seconds_km"
	KeySpeedAvg         = "speed_avg"
	KeyPaceMax          = "pace_max"
	KeySpeedMax         = "speed_max"

	KeyTrainingLoad    = "training_load"
	KeyAvgPower        = "avg_power"
	KeyMaxPower        = "max_power"
	KeyNormalizedPower = "normalized_power"

	KeyStandingTime  = "standing_time"
	KeyStandingCount = "standing_count"
	KeyAvgLeftPco    = "avg_left_pco"
	KeyAvgRightPco   = "avg_right_pco"

	KeyAvgVerticalOscillation      = "avg_vertical_oscillation"
	KeyAvgGroundContactTime        = "avg_ground_contact_time"
	KeyAvgVerticalRatio            = "avg_vertical_ratio"
	KeyAvgGroundContactTimeBalance = "avg_ground_contact_time_balance"

	KeyAvgLeftPowerPhase      = "avg_left_power_phase"
	KeyAvgRightPowerPhase     = "avg_right_power_phase"
	KeyAvgLeftPowerPhasePeak  = "avg_left_power_phase_peak"
	KeyAvgRightPowerPhasePeak = "avg_right_power_phase_peak"

	KeyAvgPowerSeating    = "avg_power_seating"
	KeyAvgPowerStanding   = "avg_power_standing"
	KeyMaxPowerSeating    = "max_power_seating"
	KeyMaxPowerStanding   = "max_power_standing"
	KeyAvgCadenceSeating  = "avg_cadence_seating"
	KeyAvgCadenceStanding = "avg_cadence_standing"
	KeyMaxCadenceSeating  = "max_cadence_seating"
	KeyMaxCadenceStanding = "max_cadence_standing"

	KeyFrontGearShifts = "front_gear_shifts"
	KeyRearGearShifts  = "rear_gear_shifts"

	KeyLeftRightBalance       = "left_right_balance"
	KeyAvgPedalSmoothness     = "avg_pedal_smoothness"
	KeyAvgTorqueEffectiveness = "avg_torque_effectiveness"

	KeyHRZoneNA        = "hr_zone_na"
	KeyHRZoneWarmUp    = "hr_zone_warm_up"
	KeyHRZoneEasy      = "hr_zone_easy"
	KeyHRZoneAerobic   = "hr_zone_aerobic"
	KeyHRZoneThreshold = "hr_zone_threshold"
	KeyHRZoneMaximum   = "hr_zone_maximum"

	KeyTrainingEffectAerobic   = "training_effect_aerobic"
	KeyTrainingEffectAnaerobic = "training_effect_anaerobic"
	KeyMaximumOxygenUptake     = "maximum_oxygen_uptake"
	KeyRecoveryTime            = "recovery_time"
	KeyLactateThresholdHR      = "lactate_threshold_hr"

	KeyIntensityFactor     = "intensity_factor"
	KeyTrainingStressScore = "training_stress_score"

	KeySetsHeader = "sets_header"
	// KeySetPrefix is followed by the 1-based row index.
	KeySetPrefix = "set_"
	GroupSets    = "sets"

	KeyInternalHasGPS = "internal_has_gps"
)
