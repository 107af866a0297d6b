// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"fmt"

	"github.com/pandora-prime/bpro/hdpath"
)

// ErrorCode identifies a kind of hardware enumeration error.
type ErrorCode int

const (
	// ErrNoDevices indicates that device discovery itself failed: no
	// devices are attached, or some of them are locked.
	ErrNoDevices ErrorCode = iota

	// ErrDerivationNotSupported indicates that a specific device
	// rejected the requested derivation scheme, typically because of
	// firmware limitations.
	ErrDerivationNotSupported
)

// Map of ErrorCode values back to their constant names for pretty
// printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrNoDevices:              "ErrNoDevices",
	ErrDerivationNotSupported: "ErrDerivationNotSupported",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// HardwareError describes a failure while enumerating signing devices.
// For ErrDerivationNotSupported the device identification and the
// requested derivation are filled in, so the caller can surface the
// failure per device.
type HardwareError struct {
	// Code identifies the kind of failure.
	Code ErrorCode

	// Fingerprint is the master fingerprint reported by the device.
	Fingerprint hdpath.Fingerprint

	// DeviceType and Model identify the failing device.
	DeviceType string
	Model      string

	// Scheme and Network are the derivation that was requested.
	Scheme  hdpath.Bip43
	Network hdpath.PublicNetwork

	// Err is the underlying transport or device error.
	Err error
}

// Error satisfies the error interface.
func (e HardwareError) Error() string {
	switch e.Code {
	case ErrDerivationNotSupported:
		return fmt.Sprintf("device %s (%s, master fingerprint %s) "+
			"does not support derivation scheme %s on %s: %v",
			e.Model, e.DeviceType, e.Fingerprint, e.Scheme,
			e.Network, e.Err)
	default:
		return fmt.Sprintf("no devices detected or some of devices "+
			"are locked: %v", e.Err)
	}
}

// Unwrap returns the underlying device error.
func (e HardwareError) Unwrap() error {
	return e.Err
}

// noDevicesError wraps a discovery failure.
func noDevicesError(err error) HardwareError {
	return HardwareError{Code: ErrNoDevices, Err: err}
}
