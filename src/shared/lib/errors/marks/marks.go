// Package marks holds the error marks shared across the separation
// pipeline, so gateways and handlers can classify failures without
// importing every domain package.
package marks

import "github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"

var (
	// InvalidParameter covers malformed or out of range caller input.
	InvalidParameter = mark.NewMark("InvalidParameter")

	// UnseparableInput covers audio that cannot be separated at all,
	// such as mono recordings with no spatial information.
	UnseparableInput = mark.NewMark("UnseparableInput")

	// ModelUnavailable covers a stem model that cannot serve requests.
	ModelUnavailable = mark.NewMark("ModelUnavailable")

	// StageFailure covers a failed best effort enhancement stage.
	StageFailure = mark.NewMark("StageFailure")

	// NotFound covers lookups for entities that do not exist.
	NotFound = mark.NewMark("NotFound")

	// DefaultError covers anything not otherwise classified.
	DefaultError = mark.NewMark("DefaultError")
)
