package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidVariant is returned when a build variant token does not encode
	// exactly one recognized architecture and one recognized build type.
	ErrInvalidVariant = zerr.New("unsupported build variant")

	// ErrNoBuildVariants is returned when variant discovery yields an empty list
	// for a trigger that requires per-variant tasks.
	ErrNoBuildVariants = zerr.New("no build variants discovered")

	// ErrMissingConfig is returned when a required configuration value is empty.
	ErrMissingConfig = zerr.New("missing required configuration")

	// ErrPerfVariantNotFound is returned when the branch-push policy cannot find
	// a debug assemble task for an architecture the performance harness needs.
	ErrPerfVariantNotFound = zerr.New("debug variant for performance testing not found")

	// ErrTaskSubmission is returned when the remote queue rejects a task.
	ErrTaskSubmission = zerr.New("task submission failed")

	// ErrVariantDiscovery is returned when the variant discovery tool fails or
	// produces unparseable output.
	ErrVariantDiscovery = zerr.New("build variant discovery failed")

	// ErrInvalidDate is returned when the nightly trigger receives a date that is
	// not ISO-8601.
	ErrInvalidDate = zerr.New("invalid ISO-8601 date")
)
