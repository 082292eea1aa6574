package rollout

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/flagkit/pkg/bucket"
	"github.com/dmitrymomot/flagkit/pkg/clock"
)

// Subject carries the attributes a schedule can target. The evaluator maps
// its richer evaluation context down to this shape so the engine stays
// decoupled from the decision pipeline.
type Subject struct {
	TenantID string
	UserID   string
	FlagKey  string
	Plan     string
	UserRole string
	Region   string
	// Metadata holds free-form attributes (signup_date, cohort, custom keys).
	Metadata map[string]string
}

// MetadataSignupDate is the metadata key consulted by signupDate filters.
const MetadataSignupDate = "signup_date"

// Metrics reports the current progress of a schedule. Effectiveness is an
// informational composite and is never used for gating.
type Metrics struct {
	CurrentPercentage float64       `json:"currentPercentage"`
	CurrentPhase      int           `json:"currentPhase"`
	TimeToNextPhase   time.Duration `json:"timeToNextPhase"`
	Effectiveness     float64       `json:"effectiveness"`
}

// Engine computes rollout eligibility and progress. It is stateless apart
// from its configuration; all methods are safe for concurrent use.
type Engine struct {
	clock         clock.Clock
	businessHours BusinessHours
	defaultLoc    *time.Location

	locNewYork *time.Location
	locLondon  *time.Location
	locTokyo   *time.Location
}

// Option configures the engine.
type Option func(*Engine)

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithBusinessHours overrides the default 09:00-17:00 Mon-Fri window.
func WithBusinessHours(bh BusinessHours) Option {
	return func(e *Engine) {
		e.businessHours = bh
	}
}

// WithDefaultTimezone sets the timezone used for regions that match no
// prefix in the region table.
func WithDefaultTimezone(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.defaultLoc = loc
		}
	}
}

// New creates a rollout engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:         clock.System(),
		businessHours: DefaultBusinessHours(),
		defaultLoc:    time.UTC,
		locNewYork:    loadLocation("America/New_York"),
		locLondon:     loadLocation("Europe/London"),
		locTokyo:      loadLocation("Asia/Tokyo"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eligible decides whether the subject is in the rollout right now. Each
// gate is a hard veto, applied in order: time window, business hours, region
// allow-list, cohort filters, percentage bucketing. The decision is a pure
// function of (subject, schedule, wall-clock time); repeated and concurrent
// calls agree.
func (e *Engine) Eligible(subject Subject, s *Schedule) (bool, error) {
	if s == nil {
		return false, ErrNilSchedule
	}

	now := e.clock.Now()

	if now.Before(s.StartDate) || now.After(s.EndDate) {
		return false, nil
	}

	if s.BusinessHoursOnly {
		local := now.In(e.regionLocation(subject.Region))
		if !e.businessHours.contains(local) {
			return false, nil
		}
	}

	if len(s.Regions) > 0 && !slices.Contains(s.Regions, subject.Region) {
		return false, nil
	}

	for _, f := range s.CohortFilters {
		ok, err := matchFilter(f, subject)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	pct := e.currentPercentage(now, s)
	parts := []string{subject.TenantID, subject.UserID, subject.FlagKey}
	if s.ID != "" {
		parts = append(parts, s.ID)
	}
	return bucket.Score(parts...) < pct, nil
}

// Metrics reports the schedule's progress at the current time. All outputs
// are clamped into their documented domains even for malformed schedules;
// this method never fails.
func (e *Engine) Metrics(s *Schedule) Metrics {
	if s == nil {
		return Metrics{CurrentPhase: 1}
	}

	now := e.clock.Now()
	r := progressRatio(now, s)
	phases := s.Phases
	if phases < 1 {
		phases = 1
	}

	phase := int(math.Floor(r*float64(phases))) + 1
	if phase > phases {
		phase = phases
	}
	if phase < 1 {
		phase = 1
	}

	var toNext time.Duration
	if r < 1 {
		window := s.EndDate.Sub(s.StartDate)
		if window > 0 {
			boundary := s.StartDate.Add(time.Duration(float64(window) * float64(phase) / float64(phases)))
			if boundary.After(now) {
				toNext = boundary.Sub(now)
			}
		}
	}

	pct := e.currentPercentage(now, s)

	// Informational blend of how far along the rollout is: exposure (current
	// percentage), elapsed progress, and phase completion.
	eff := clamp01(0.4*pct/100 + 0.4*r + 0.2*float64(phase)/float64(phases))

	return Metrics{
		CurrentPercentage: pct,
		CurrentPhase:      phase,
		TimeToNextPhase:   toNext,
		Effectiveness:     eff,
	}
}

// currentPercentage interpolates between the initial and final percentages
// using a logistic warp, so the rollout starts slowly, accelerates through
// the middle, and tapers toward completion. Out-of-range percentages are
// clamped into [0,100].
func (e *Engine) currentPercentage(now time.Time, s *Schedule) float64 {
	initial := clampPct(s.InitialPercentage)
	final := clampPct(s.FinalPercentage)

	r := progressRatio(now, s)
	switch {
	case r <= 0:
		return initial
	case r >= 1:
		return final
	}

	sig := 1 / (1 + math.Exp(-6*(r-0.5)))
	return clampPct(initial + (final-initial)*sig)
}

// progressRatio returns the linear progress through the schedule window,
// clamped to [0,1]. Inverted or zero-length windows report 0 before the
// start and 1 from the start onward.
func progressRatio(now time.Time, s *Schedule) float64 {
	window := s.EndDate.Sub(s.StartDate)
	if window <= 0 {
		if now.Before(s.StartDate) {
			return 0
		}
		return 1
	}

	r := float64(now.Sub(s.StartDate)) / float64(window)
	return clamp01(r)
}

func matchFilter(f CohortFilter, subject Subject) (bool, error) {
	var field string
	switch f.Type {
	case FilterPlan:
		field = subject.Plan
	case FilterUserRole:
		field = subject.UserRole
	case FilterRegion:
		field = subject.Region
	case FilterSignupDate:
		field = subject.Metadata[MetadataSignupDate]
	case FilterCustomAttribute:
		field = subject.Metadata[f.Attribute]
	default:
		return false, ErrUnknownFilterType
	}

	// Absent attribute fails closed regardless of operator.
	if field == "" {
		return false, nil
	}

	switch f.Operator {
	case OpEquals:
		return field == f.Value, nil
	case OpContains:
		return strings.Contains(field, f.Value), nil
	case OpGreaterThan:
		return compareValues(field, f.Value) > 0, nil
	case OpLessThan:
		return compareValues(field, f.Value) < 0, nil
	case OpInRange:
		return compareValues(field, f.Min) >= 0 && compareValues(field, f.Max) <= 0, nil
	default:
		return false, ErrUnknownOperator
	}
}

// compareValues orders two attribute values, trying timestamps first, then
// numbers, then falling back to lexicographic comparison.
func compareValues(a, b string) int {
	if ta, err := parseTime(a); err == nil {
		if tb, err := parseTime(b); err == nil {
			return ta.Compare(tb)
		}
	}
	if fa, err := strconv.ParseFloat(a, 64); err == nil {
		if fb, err := strconv.ParseFloat(b, 64); err == nil {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(a, b)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func clampPct(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
