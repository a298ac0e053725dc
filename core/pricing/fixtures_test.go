package pricing

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/features"
	"github.com/kilianp07/evprice/core/metrics"
	"github.com/kilianp07/evprice/core/model"
)

const (
	bev      = "Battery Electric Vehicle (BEV)"
	phev     = "Plug-in Hybrid Electric Vehicle (PHEV)"
	eligible = "Clean Alternative Fuel Vehicle Eligible"
	lowRange = "Not eligible due to low battery range"
)

func referenceDataset() *dataset.Dataset {
	return dataset.New([]dataset.Row{
		{Make: "TESLA", Model: "MODEL 3", ModelYear: 2022, EVType: bev, CAFVEligibility: eligible, ElectricRange: 300,
			County: "King", ElectricUtility: "SEATTLE CITY LIGHT", LegislativeDistrict: "43", City: "Seattle", ExpectedPrice: 45},
		{Make: "NISSAN", Model: "LEAF", ModelYear: 2018, EVType: bev, CAFVEligibility: eligible, ElectricRange: 151,
			County: "King", ElectricUtility: "SEATTLE CITY LIGHT", LegislativeDistrict: "43", City: "Seattle", ExpectedPrice: 18},
		{Make: "TOYOTA", Model: "PRIUS PLUG-IN", ModelYear: 2015, EVType: phev, CAFVEligibility: lowRange, ElectricRange: 6,
			County: "Snohomish", ElectricUtility: "SNOHOMISH COUNTY PUD", LegislativeDistrict: "38", City: "Everett", ExpectedPrice: 12},
		{Make: "CHEVROLET", Model: "VOLT", ModelYear: 2017, EVType: phev, CAFVEligibility: lowRange, ElectricRange: 53,
			County: "King", ElectricUtility: "PUGET SOUND ENERGY", LegislativeDistrict: "41", City: "Bellevue", ExpectedPrice: math.NaN()},
	})
}

func referenceStats(t *testing.T) *features.Statistics {
	t.Helper()
	stats, err := features.Build(referenceDataset())
	require.NoError(t, err)
	return stats
}

func teslaInput() model.VehicleInput {
	return model.Vehicle{
		Make: "TESLA", Model: "MODEL 3", ModelYear: 2022,
		EVType: bev, CAFVEligibility: eligible, ElectricRange: 300,
		County: "King", ElectricUtility: "SEATTLE CITY LIGHT", LegislativeDistrict: "43", City: "Seattle",
	}.Input()
}

func fixedClock() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

type recordingSink struct {
	mu         sync.Mutex
	estimates  []metrics.EstimateEvent
	unknown    []metrics.UnknownCategoryEvent
	degenerate []string
}

func (s *recordingSink) RecordEstimate(ev metrics.EstimateEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.estimates = append(s.estimates, ev)
	return nil
}

func (s *recordingSink) RecordUnknownCategory(ev metrics.UnknownCategoryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unknown = append(s.unknown, ev)
	return nil
}

func (s *recordingSink) RecordDegenerateScaling(cols []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.degenerate = append(s.degenerate, cols...)
	return nil
}

type recordingMonitor struct {
	mu   sync.Mutex
	errs []error
}

func (m *recordingMonitor) CaptureException(err error, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}
func (m *recordingMonitor) Recover()            {}
func (m *recordingMonitor) Flush(time.Duration) {}
