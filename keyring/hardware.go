// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/pandora-prime/bpro/hdpath"
)

// defaultAccount is the account index queried on each device during
// enumeration when the caller does not ask for another one.
const defaultAccount hdpath.HardenedIndex = 0

// Device is a connected signing device capable of deriving extended
// public keys.
type Device interface {
	// Fingerprint returns the fingerprint of the device's master key.
	Fingerprint() hdpath.Fingerprint

	// DeviceType names the device family, e.g. "ledger".
	DeviceType() string

	// Model names the concrete hardware model.
	Model() string

	// DerivePubKey derives the extended public key at the given path for
	// the given network.
	DerivePubKey(path hdpath.DerivationPath,
		network hdpath.PublicNetwork) (*hdkeychain.ExtendedKey, error)
}

// DeviceResult is one entry of a device scan: either a usable device or
// the error that kept it from being opened, e.g. a locked device.
type DeviceResult struct {
	Device Device
	Err    error
}

// DeviceSource discovers connected signing devices. Implementations wrap
// a transport such as HWI or a vendor bridge.
type DeviceSource interface {
	// Devices lists the devices currently reachable for the given
	// network, one result per detected device so a single unusable
	// device does not hide the rest. An error means discovery itself
	// failed, not that no devices were found.
	Devices(network hdpath.PublicNetwork) ([]DeviceResult, error)
}

// HardwareDevice is one successfully enumerated device together with the
// account-level key it exposes for the requested scheme.
type HardwareDevice struct {
	// Fingerprint is the device master key fingerprint.
	Fingerprint hdpath.Fingerprint

	// DeviceType names the device family.
	DeviceType string

	// Model names the hardware model.
	Model string

	// DefaultAccount is the account index the key was derived for.
	DefaultAccount hdpath.HardenedIndex

	// DefaultXpub is the account-level extended public key.
	DefaultXpub *hdkeychain.ExtendedKey
}

// HardwareList indexes enumerated devices by master fingerprint. When two
// devices report the same fingerprint the one enumerated last wins.
type HardwareList map[hdpath.Fingerprint]HardwareDevice

// Enumerate discovers connected devices through src and derives the
// account-level key for the given scheme on each of them.
//
// Enumeration is fail-soft: a device that cannot be opened or cannot
// derive the requested scheme is skipped and reported in the returned
// slice instead of aborting the whole scan. Only a failure of discovery
// itself is returned as an error.
func Enumerate(src DeviceSource, scheme hdpath.Bip43,
	network hdpath.PublicNetwork,
	account fn.Option[hdpath.HardenedIndex]) (HardwareList,
	[]HardwareError, error) {

	devices, err := src.Devices(network)
	if err != nil {
		return nil, nil, noDevicesError(err)
	}

	acct := account.UnwrapOr(defaultAccount)
	derivation := scheme.AccountDerivation(acct, network)

	list := make(HardwareList, len(devices))
	var failures []HardwareError

	for _, result := range devices {
		if result.Err != nil {
			hwErr := noDevicesError(result.Err)
			log.Warnf("Skipping unusable device: %v", hwErr)
			failures = append(failures, hwErr)
			continue
		}

		device := result.Device
		fingerprint := device.Fingerprint()

		xpub, err := device.DerivePubKey(derivation, network)
		if err != nil {
			hwErr := HardwareError{
				Code:        ErrDerivationNotSupported,
				Fingerprint: fingerprint,
				DeviceType:  device.DeviceType(),
				Model:       device.Model(),
				Scheme:      scheme,
				Network:     network,
				Err:         err,
			}
			log.Warnf("Skipping device %s: %v", fingerprint,
				hwErr)
			failures = append(failures, hwErr)
			continue
		}

		if prev, ok := list[fingerprint]; ok {
			log.Warnf("Duplicate master fingerprint %s: "+
				"replacing %s %s", fingerprint,
				prev.DeviceType, prev.Model)
		}
		list[fingerprint] = HardwareDevice{
			Fingerprint:    fingerprint,
			DeviceType:     device.DeviceType(),
			Model:          device.Model(),
			DefaultAccount: acct,
			DefaultXpub:    xpub,
		}
	}

	log.Debugf("Enumerated %d device(s), %d failure(s)", len(list),
		len(failures))

	return list, failures, nil
}
