package decoder

import (
	"fmt"
	"strings"

	"github.com/tormoder/fit"

	"github.com/lucasjlepore/fit-summary/mesg"
)

const (
	numFileID uint16 = 0
	numEvent  uint16 = 21

	timestampFieldName = "timestamp"
)

var messageNames = map[uint16]string{
	numFileID:                    "file_id",
	mesg.NumUserProfile:          "user_profile",
	mesg.NumSport:                "sport",
	mesg.NumSession:              "session",
	mesg.NumLap:                  "lap",
	mesg.NumRecord:               "record",
	numEvent:                     "event",
	mesg.NumPhysiologicalMetrics: "physiological_metrics",
	mesg.NumTimeInZone:           "time_in_zone",
	mesg.NumSet:                  "set",
}

// fieldNames covers the fields the typed records read, plus a few file_id
// and event fields that show up in every activity.
var fieldNames = map[uint16]map[uint8]string{
	numFileID: {
		0: "type",
		1: "manufacturer",
		2: "product",
		3: "serial_number",
		4: "time_created",
		5: "number",
		8: "product_name",
	},
	mesg.NumUserProfile: {
		0: "friendly_name",
		4: "weight",
		7: "weight_setting",
	},
	mesg.NumSport: {
		0: "sport",
		1: "sub_sport",
		3: "name",
	},
	mesg.NumSession: {
		2:   "start_time",
		5:   "sport",
		6:   "sub_sport",
		7:   "total_elapsed_time",
		8:   "total_timer_time",
		9:   "total_distance",
		10:  "total_cycles",
		11:  "total_calories",
		14:  "avg_speed",
		15:  "max_speed",
		16:  "avg_heart_rate",
		17:  "max_heart_rate",
		18:  "avg_cadence",
		19:  "max_cadence",
		20:  "avg_power",
		21:  "max_power",
		22:  "total_ascent",
		23:  "total_descent",
		34:  "normalized_power",
		35:  "training_stress_score",
		36:  "intensity_factor",
		37:  "left_right_balance",
		44:  "pool_length",
		79:  "avg_swim_cadence",
		80:  "avg_swolf",
		89:  "avg_vertical_oscillation",
		91:  "avg_stance_time",
		101: "avg_left_torque_effectiveness",
		102: "avg_right_torque_effectiveness",
		103: "avg_left_pedal_smoothness",
		104: "avg_right_pedal_smoothness",
		112: "time_standing",
		113: "stand_count",
		114: "avg_left_pco",
		115: "avg_right_pco",
		116: "avg_left_power_phase",
		117: "avg_left_power_phase_peak",
		118: "avg_right_power_phase",
		119: "avg_right_power_phase_peak",
		120: "avg_power_position",
		121: "max_power_position",
		122: "avg_cadence_position",
		123: "max_cadence_position",
		124: "enhanced_avg_speed",
		125: "enhanced_max_speed",
		132: "avg_vertical_ratio",
		133: "avg_stance_time_balance",
		134: "avg_step_length",
		151: "front_shifts",
		152: "rear_shifts",
		168: "training_load_peak",
		169: "enhanced_avg_respiration_rate",
		170: "enhanced_max_respiration_rate",
		178: "est_sweat_loss",
		180: "enhanced_min_respiration_rate",
		194: "avg_spo2",
		195: "avg_stress",
		197: "hrv_sdrr",
		198: "hrv_rmssd",
	},
	mesg.NumLap: {
		2:  "start_time",
		7:  "total_elapsed_time",
		8:  "total_timer_time",
		9:  "total_distance",
		73: "avg_swolf",
	},
	mesg.NumRecord: {
		0:  "position_lat",
		1:  "position_long",
		2:  "altitude",
		3:  "heart_rate",
		4:  "cadence",
		5:  "distance",
		6:  "speed",
		7:  "power",
		73: "enhanced_speed",
	},
	numEvent: {
		0: "event",
		1: "event_type",
		2: "data16",
		3: "data",
		4: "event_group",
	},
	mesg.NumPhysiologicalMetrics: {
		4:  "total_aerobic_effect",
		7:  "met_max",
		9:  "recovery_time",
		14: "lactate_threshold_heart_rate",
		20: "total_anaerobic_effect",
	},
	mesg.NumTimeInZone: {
		0: "reference_mesg",
		1: "reference_index",
		2: "time_in_hr_zone",
	},
	mesg.NumSet: {
		0: "duration",
		3: "repetitions",
		4: "weight",
		5: "set_type",
		6: "start_time",
	},
}

// MessageName names a global message number. Numbers outside the profile
// come back as global_<n>.
func MessageName(global uint16) string {
	if name, ok := messageNames[global]; ok {
		return name
	}
	name := fmt.Sprint(fit.MesgNum(global))
	if strings.HasPrefix(name, "MesgNum(") {
		return fmt.Sprintf("global_%d", global)
	}
	return name
}

// FieldName names a field of a global message, or returns "" when the
// field is not one this package knows.
func FieldName(global uint16, num uint8) string {
	if num == timestampFieldNum {
		return timestampFieldName
	}
	return fieldNames[global][num]
}
