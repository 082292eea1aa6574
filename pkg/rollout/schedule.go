package rollout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FilterType identifies which context attribute a cohort filter targets.
// The set is closed; this is deliberately not a general rule language.
type FilterType string

const (
	FilterPlan            FilterType = "plan"
	FilterSignupDate      FilterType = "signupDate"
	FilterRegion          FilterType = "region"
	FilterUserRole        FilterType = "userRole"
	FilterCustomAttribute FilterType = "customAttribute"
)

// Operator is the comparison applied by a cohort filter.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
	OpInRange     Operator = "inRange"
)

// CohortFilter restricts rollout eligibility to subjects whose attribute
// matches. A filter whose target attribute is absent from the subject never
// matches.
type CohortFilter struct {
	Type FilterType `json:"type" yaml:"type"`
	// Attribute names the metadata key for FilterCustomAttribute; ignored
	// for the other filter types.
	Attribute string   `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Operator  Operator `json:"operator" yaml:"operator"`
	Value     string   `json:"value,omitempty" yaml:"value,omitempty"`
	// Min and Max are the inclusive bounds for OpInRange.
	Min string `json:"min,omitempty" yaml:"min,omitempty"`
	Max string `json:"max,omitempty" yaml:"max,omitempty"`
}

// Schedule describes how a flag's enabled percentage grows from an initial
// to a final value over a time window, and which subjects are eligible at all.
type Schedule struct {
	// ID participates in the bucketing hash when set, so two schedules for
	// the same flag produce independent user distributions.
	ID                string         `json:"id,omitempty" yaml:"id,omitempty"`
	StartDate         time.Time      `json:"startDate" yaml:"startDate"`
	EndDate           time.Time      `json:"endDate" yaml:"endDate"`
	InitialPercentage float64        `json:"initialPercentage" yaml:"initialPercentage"`
	FinalPercentage   float64        `json:"finalPercentage" yaml:"finalPercentage"`
	Phases            int            `json:"phases" yaml:"phases"`
	BusinessHoursOnly bool           `json:"businessHoursOnly,omitempty" yaml:"businessHoursOnly,omitempty"`
	Regions           []string       `json:"regions,omitempty" yaml:"regions,omitempty"`
	CohortFilters     []CohortFilter `json:"cohortFilters,omitempty" yaml:"cohortFilters,omitempty"`
}

// Validate checks the schedule at the parsing boundary. The engine itself
// clamps malformed values instead of failing, so callers that construct
// schedules programmatically may skip validation; anything arriving over the
// wire should be validated here first.
func (s *Schedule) Validate() error {
	var errs []error

	if s.StartDate.IsZero() {
		errs = append(errs, errors.New("startDate is required"))
	}
	if s.EndDate.IsZero() {
		errs = append(errs, errors.New("endDate is required"))
	}
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && !s.EndDate.After(s.StartDate) {
		errs = append(errs, errors.New("endDate must be after startDate"))
	}
	if s.InitialPercentage < 0 || s.InitialPercentage > 100 {
		errs = append(errs, fmt.Errorf("initialPercentage %v out of [0,100]", s.InitialPercentage))
	}
	if s.FinalPercentage < 0 || s.FinalPercentage > 100 {
		errs = append(errs, fmt.Errorf("finalPercentage %v out of [0,100]", s.FinalPercentage))
	}
	if s.Phases < 1 {
		errs = append(errs, fmt.Errorf("phases must be >= 1, got %d", s.Phases))
	}

	for i, f := range s.CohortFilters {
		switch f.Type {
		case FilterPlan, FilterSignupDate, FilterRegion, FilterUserRole, FilterCustomAttribute:
		default:
			errs = append(errs, fmt.Errorf("cohortFilters[%d]: %w: %q", i, ErrUnknownFilterType, f.Type))
		}
		switch f.Operator {
		case OpEquals, OpContains, OpGreaterThan, OpLessThan, OpInRange:
		default:
			errs = append(errs, fmt.Errorf("cohortFilters[%d]: %w: %q", i, ErrUnknownOperator, f.Operator))
		}
		if f.Type == FilterCustomAttribute && f.Attribute == "" {
			errs = append(errs, fmt.Errorf("cohortFilters[%d]: customAttribute filter requires an attribute name", i))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidSchedule}, errs...)...)
	}
	return nil
}

// ParseSchedule decodes and validates a JSON schedule.
func ParseSchedule(data []byte) (*Schedule, error) {
	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScheduleFile reads a schedule from a YAML or JSON file, selecting the
// decoder by extension (.yaml/.yml vs anything else).
func LoadScheduleFile(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		var s Schedule
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, errors.Join(ErrInvalidSchedule, err)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return &s, nil
	default:
		return ParseSchedule(data)
	}
}
