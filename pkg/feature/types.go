package feature

import (
	"time"

	"github.com/google/uuid"
)

// FlagDefinition is the durable configuration of a feature flag. Definitions
// are created and updated by the admin surface; the decision pipeline only
// reads them.
type FlagDefinition struct {
	ID             uuid.UUID `json:"id"`
	FlagKey        string    `json:"flag_key"`
	DefaultEnabled bool      `json:"default_enabled"`
	Owner          string    `json:"owner,omitempty"`
	Environment    string    `json:"environment,omitempty"`
	ExpiresAt      time.Time `json:"expires_at,omitzero"`
}

// TenantOverride pins a flag's value for exactly one tenant. A disabled
// override is authoritative: rollout evaluation can gate an enabled override
// but never resurrect a disabled one.
type TenantOverride struct {
	TenantID  string    `json:"tenant_id"`
	FlagKey   string    `json:"flag_key"`
	Enabled   bool      `json:"enabled"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// KillSwitch is an emergency override forcing a flag (or, with an empty
// FlagKey, every flag) off while enabled. It dominates every other signal.
type KillSwitch struct {
	ID          uuid.UUID `json:"id"`
	FlagKey     string    `json:"flag_key,omitempty"` // empty = global scope
	Enabled     bool      `json:"enabled"`
	Reason      string    `json:"reason,omitempty"`
	ActivatedBy string    `json:"activated_by,omitempty"`
	ActivatedAt time.Time `json:"activated_at,omitzero"`
}

// EvaluationContext identifies who is asking for a decision. TenantID and
// Environment are required; the remaining fields feed rollout targeting.
type EvaluationContext struct {
	TenantID    string            `json:"tenant_id"`
	Environment string            `json:"environment"`
	UserID      string            `json:"user_id,omitempty"`
	UserRole    string            `json:"user_role,omitempty"`
	Plan        string            `json:"plan,omitempty"`
	// Metadata carries free-form targeting attributes: region, cohort,
	// segments, signup date, custom keys.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// MetadataRegion is the metadata key holding the caller's region.
const MetadataRegion = "region"

// Region returns the context's region attribute, or "" when unset.
func (ec EvaluationContext) Region() string {
	return ec.Metadata[MetadataRegion]
}
