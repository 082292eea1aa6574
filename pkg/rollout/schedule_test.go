package rollout_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/rollout"
)

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		s, err := rollout.ParseSchedule([]byte(`{
			"id": "billing-v2-wave-1",
			"startDate": "2025-06-10T00:00:00Z",
			"endDate": "2025-06-20T00:00:00Z",
			"initialPercentage": 5,
			"finalPercentage": 80,
			"phases": 4,
			"businessHoursOnly": true,
			"regions": ["us-east-1"],
			"cohortFilters": [
				{"type": "plan", "operator": "equals", "value": "enterprise"}
			]
		}`))
		require.NoError(t, err)
		assert.Equal(t, "billing-v2-wave-1", s.ID)
		assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), s.StartDate)
		assert.Equal(t, 4, s.Phases)
		assert.True(t, s.BusinessHoursOnly)
		require.Len(t, s.CohortFilters, 1)
		assert.Equal(t, rollout.FilterPlan, s.CohortFilters[0].Type)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		t.Parallel()
		_, err := rollout.ParseSchedule([]byte(`{not json`))
		require.ErrorIs(t, err, rollout.ErrInvalidSchedule)
	})

	t.Run("ValidationFailures", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			name string
			body string
		}{
			{"MissingDates", `{"initialPercentage": 0, "finalPercentage": 100, "phases": 1}`},
			{"InvertedDates", `{"startDate": "2025-06-20T00:00:00Z", "endDate": "2025-06-10T00:00:00Z", "phases": 1}`},
			{"ZeroPhases", `{"startDate": "2025-06-10T00:00:00Z", "endDate": "2025-06-20T00:00:00Z", "phases": 0}`},
			{"PercentageOutOfRange", `{"startDate": "2025-06-10T00:00:00Z", "endDate": "2025-06-20T00:00:00Z", "phases": 1, "finalPercentage": 150}`},
			{"UnknownFilterType", `{"startDate": "2025-06-10T00:00:00Z", "endDate": "2025-06-20T00:00:00Z", "phases": 1, "cohortFilters": [{"type": "shoeSize", "operator": "equals", "value": "42"}]}`},
			{"UnknownOperator", `{"startDate": "2025-06-10T00:00:00Z", "endDate": "2025-06-20T00:00:00Z", "phases": 1, "cohortFilters": [{"type": "plan", "operator": "matches", "value": "pro"}]}`},
			{"CustomAttributeWithoutName", `{"startDate": "2025-06-10T00:00:00Z", "endDate": "2025-06-20T00:00:00Z", "phases": 1, "cohortFilters": [{"type": "customAttribute", "operator": "equals", "value": "x"}]}`},
		}
		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				_, err := rollout.ParseSchedule([]byte(tc.body))
				require.ErrorIs(t, err, rollout.ErrInvalidSchedule)
			})
		}
	})
}

func TestLoadScheduleFile(t *testing.T) {
	t.Parallel()

	t.Run("YAML", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "schedule.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
startDate: 2025-06-10T00:00:00Z
endDate: 2025-06-20T00:00:00Z
initialPercentage: 10
finalPercentage: 100
phases: 2
regions:
  - eu-west-1
`), 0o600))

		s, err := rollout.LoadScheduleFile(path)
		require.NoError(t, err)
		assert.Equal(t, 10.0, s.InitialPercentage)
		assert.Equal(t, []string{"eu-west-1"}, s.Regions)
	})

	t.Run("JSON", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "schedule.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"startDate": "2025-06-10T00:00:00Z",
			"endDate": "2025-06-20T00:00:00Z",
			"phases": 1,
			"finalPercentage": 100
		}`), 0o600))

		s, err := rollout.LoadScheduleFile(path)
		require.NoError(t, err)
		assert.Equal(t, 100.0, s.FinalPercentage)
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()
		_, err := rollout.LoadScheduleFile(filepath.Join(t.TempDir(), "absent.json"))
		require.ErrorIs(t, err, rollout.ErrInvalidSchedule)
	})
}
