package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khairallah17/anomaly-tracker/internal/model"
)

func sampleAnomalies() []model.Anomaly {
	return []model.Anomaly{
		{
			ID:                  1,
			Description:         "Pump vibration above threshold",
			Equipment:           "Feed pump P-101",
			EquipmentNumber:     "P-101",
			System:              "Cooling",
			Unit:                "U300",
			Service:             "Mechanical",
			Status:              model.StatusInProgress,
			SysShutdownRequired: true,
			DetectionDate:       time.Date(2025, 4, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:              2,
			Description:     "Corrosion on exchanger shell",
			Equipment:       "Heat exchanger E-220",
			EquipmentNumber: "E-220",
			System:          "Process",
			Unit:            "U100",
			Service:         "Inspection",
			Status:          model.StatusTreated,
			DetectionDate:   time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:              3,
			Description:     "Valve actuator slow response",
			Equipment:       "Control valve FV-310",
			EquipmentNumber: "FV-310",
			System:          "Cooling",
			Unit:            "U300",
			Service:         "Instrumentation",
			Status:          model.StatusInProgress,
			DetectionDate:   time.Date(2025, 4, 1, 23, 59, 0, 0, time.UTC),
		},
	}
}

func ids(anomalies []model.Anomaly) []int64 {
	out := make([]int64, len(anomalies))
	for i, a := range anomalies {
		out[i] = a.ID
	}
	return out
}

func TestFilterAnomalies_EmptyFilterReturnsAll(t *testing.T) {
	in := sampleAnomalies()
	out := FilterAnomalies(in, AnomalyFilter{})
	assert.Equal(t, ids(in), ids(out))
}

func TestFilterAnomalies_AllValueSkipsPredicate(t *testing.T) {
	in := sampleAnomalies()
	out := FilterAnomalies(in, AnomalyFilter{
		Status:           FilterAll,
		Service:          FilterAll,
		ShutdownRequired: FilterAll,
		Criticality:      FilterAll,
	})
	assert.Len(t, out, 3)
}

func TestFilterAnomalies_SearchMatchesDescriptionAndEquipment(t *testing.T) {
	in := sampleAnomalies()

	out := FilterAnomalies(in, AnomalyFilter{Search: "vibration"})
	assert.Equal(t, []int64{1}, ids(out))

	// Equipment number matches too, case-insensitive.
	out = FilterAnomalies(in, AnomalyFilter{Search: "e-220"})
	assert.Equal(t, []int64{2}, ids(out))
}

func TestFilterAnomalies_StatusPredicate(t *testing.T) {
	out := FilterAnomalies(sampleAnomalies(), AnomalyFilter{Status: model.StatusInProgress})
	assert.Equal(t, []int64{1, 3}, ids(out), "order preserved")
}

func TestFilterAnomalies_SystemUnitMatchesAnyOfThree(t *testing.T) {
	in := sampleAnomalies()

	out := FilterAnomalies(in, AnomalyFilter{SystemUnit: "cooling"})
	assert.Equal(t, []int64{1, 3}, ids(out))

	out = FilterAnomalies(in, AnomalyFilter{SystemUnit: "U100"})
	assert.Equal(t, []int64{2}, ids(out))
}

func TestFilterAnomalies_ShutdownRequired(t *testing.T) {
	in := sampleAnomalies()

	out := FilterAnomalies(in, AnomalyFilter{ShutdownRequired: "true"})
	assert.Equal(t, []int64{1}, ids(out))

	out = FilterAnomalies(in, AnomalyFilter{ShutdownRequired: "false"})
	assert.Equal(t, []int64{2, 3}, ids(out))
}

func TestFilterAnomalies_DetectionDateMatchesCalendarDay(t *testing.T) {
	in := sampleAnomalies()
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	// Both April 1 anomalies match regardless of time of day.
	out := FilterAnomalies(in, AnomalyFilter{DetectionDate: &day})
	assert.Equal(t, []int64{1, 3}, ids(out))
}

func TestFilterAnomalies_Conjunction(t *testing.T) {
	in := sampleAnomalies()
	out := FilterAnomalies(in, AnomalyFilter{
		Status:     model.StatusInProgress,
		SystemUnit: "U300",
		Service:    "Instrumentation",
	})
	assert.Equal(t, []int64{3}, ids(out))
}

func TestFilterAnomalies_CriticalityTier(t *testing.T) {
	in := sampleAnomalies()
	in[0].PredictedProcessSafety = f64(3)
	in[0].PredictedDisponibility = f64(3)
	in[0].PredictedIntegrity = f64(1)

	out := FilterAnomalies(in, AnomalyFilter{Criticality: string(LevelMedium)})
	assert.Equal(t, []int64{1}, ids(out))

	out = FilterAnomalies(in, AnomalyFilter{Criticality: string(LevelVeryLow)})
	assert.Equal(t, []int64{2, 3}, ids(out))
}

func TestFilterAnomalies_DoesNotMutateInput(t *testing.T) {
	in := sampleAnomalies()
	FilterAnomalies(in, AnomalyFilter{Status: model.StatusTreated})
	require.Len(t, in, 3)
	assert.Equal(t, []int64{1, 2, 3}, ids(in))
}
