// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rgb carries the client-side-validated asset extension state of
// a wallet: an opaque stock blob and the index of witness transactions
// relevant to it, wrapped in a version-tagged container that persists
// forward-compatibly alongside the rest of the wallet state.
package rgb

import "fmt"

// ErrorCode identifies a kind of extension-state decoding error.
type ErrorCode int

const (
	// ErrUnsupportedVersion indicates a version tag this build does not
	// know how to decode. Unknown versions are rejected, never silently
	// skipped, since skipping would drop recorded state.
	ErrUnsupportedVersion ErrorCode = iota

	// ErrDataIntegrity indicates that the payload of a recognized
	// version failed to decode.
	ErrDataIntegrity
)

// Map of ErrorCode values back to their constant names for pretty
// printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnsupportedVersion: "ErrUnsupportedVersion",
	ErrDataIntegrity:      "ErrDataIntegrity",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// IntegrityError is returned when persisted extension state cannot be
// decoded.
type IntegrityError struct {
	// Code identifies the kind of failure.
	Code ErrorCode

	// Version is the offending version tag for ErrUnsupportedVersion.
	Version uint16

	// Err is the underlying decode error, when there is one.
	Err error
}

// Error satisfies the error interface.
func (e IntegrityError) Error() string {
	switch e.Code {
	case ErrUnsupportedVersion:
		return fmt.Sprintf("unsupported future version of wallet "+
			"file (v%d)", e.Version)
	default:
		return fmt.Sprintf("data integrity error in wallet "+
			"extension state: %v", e.Err)
	}
}

// Unwrap returns the underlying decode error.
func (e IntegrityError) Unwrap() error {
	return e.Err
}

// unsupportedVersionError flags an unknown version tag.
func unsupportedVersionError(version uint16) IntegrityError {
	return IntegrityError{Code: ErrUnsupportedVersion, Version: version}
}

// integrityError wraps an inner payload decode failure.
func integrityError(err error) IntegrityError {
	return IntegrityError{Code: ErrDataIntegrity, Err: err}
}
