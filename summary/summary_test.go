package summary

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutKeepsFirstPosition(t *testing.T) {
	s := New()
	s.Add("training_load", Number(10), UnitNone)
	s.Add("avg_power", Number(200), UnitWatt)
	s.Add("training_load", Number(11), UnitNone)

	if diff := cmp.Diff([]string{"training_load", "avg_power"}, s.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	e, ok := s.Get("training_load")
	require.True(t, ok)
	assert.Equal(t, Number(11), e.Value)
	assert.Equal(t, 2, s.Len())
}

func TestZeroValueAndNil(t *testing.T) {
	var s Summary
	assert.False(t, s.Has("x"))
	s.Add("x", Bool(true), UnitNone)
	assert.True(t, s.Has("x"))

	var nilSummary *Summary
	assert.Equal(t, 0, nilSummary.Len())
	assert.Nil(t, nilSummary.Keys())
}

func TestMarshalJSONPreservesOrder(t *testing.T) {
	s := New()
	s.Add("zeta", Number(1.5), UnitMeters)
	s.Add("alpha", Text("141°–281°"), UnitNone)
	s.Put(Entry{Key: "hr_zone_easy", Value: Progress{Value: 100, Unit: UnitSeconds, Percentage: 33, Color: "hr_zone_easy"}})
	s.Put(Entry{Key: "training_effect_aerobic", Value: Number(3.2), HigherIsBetter: true})

	out, err := json.Marshal(s)
	require.NoError(t, err)

	want := `{"zeta":{"kind":"number","value":1.5,"unit":"meters"},` +
		`"alpha":{"kind":"text","value":"141°–281°"},` +
		`"hr_zone_easy":{"kind":"progress","value":{"value":100,"unit":"seconds","percentage":33,"color":"hr_zone_easy"}},` +
		`"training_effect_aerobic":{"kind":"number","value":3.2,"higher_is_better":true}}`
	assert.Equal(t, want, string(out))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "360", FormatValue(Number(360)))
	assert.Equal(t, "4.26", FormatValue(Number(4.26)))
	assert.Equal(t, "true", FormatValue(Bool(true)))
	assert.Equal(t, "200 (66%)", FormatValue(Progress{Value: 200, Percentage: 66}))
	row := TableRow{Group: "sets", Cells: []Cell{{Value: 1}, {Value: "10"}, {Value: 60.0, Unit: UnitKg}}}
	assert.Equal(t, "1 | 10 | 60 kg", FormatValue(row))
}
