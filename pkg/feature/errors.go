package feature

import "errors"

var (
	// ErrNotFound indicates the requested record is absent from storage.
	// The evaluator treats absence as a normal, non-reportable condition.
	ErrNotFound = errors.New("feature record not found")

	// ErrEnvironmentMismatch indicates the evaluation context targets a
	// different environment than the evaluator was built for. This is a
	// caller bug and the one error Evaluate returns instead of recovering.
	ErrEnvironmentMismatch = errors.New("evaluation context environment mismatch")

	// ErrMissingTenantID indicates an evaluation context without a tenant.
	ErrMissingTenantID = errors.New("evaluation context requires a tenant ID")

	// ErrInvalidConfig indicates the evaluator configuration is unusable.
	ErrInvalidConfig = errors.New("invalid evaluator configuration")
)
