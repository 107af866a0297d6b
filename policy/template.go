// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import (
	"fmt"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/pandora-prime/bpro/hdpath"
)

// Requirement is a three-state constraint on the presence of a signer
// capability within a wallet template.
type Requirement uint8

const (
	// Allow neither requires nor forbids the capability.
	Allow Requirement = iota

	// Require makes the capability mandatory for every signer.
	Require

	// Deny forbids the capability for every signer.
	Deny
)

// String returns the lowercase name of the requirement.
func (r Requirement) String() string {
	switch r {
	case Require:
		return "require"
	case Deny:
		return "deny"
	default:
		return "allow"
	}
}

// DescriptorClass is a script template family determining how a policy
// maps to an output script.
type DescriptorClass uint8

const (
	// PreSegwit produces pre-segwit P2PKH/P2SH outputs.
	PreSegwit DescriptorClass = iota

	// SegwitV0 produces native witness v0 outputs.
	SegwitV0

	// NestedV0 produces witness v0 outputs nested in P2SH.
	NestedV0

	// TaprootC0 produces taproot outputs with the BIP341 default key
	// spend path.
	TaprootC0
)

// Bip43 returns the derivation standard this descriptor class maps to for
// the given number of signers. The mapping is a fixed table; no other
// class-to-standard combination is permitted.
func (c DescriptorClass) Bip43(signerCount uint16) hdpath.Bip43 {
	if signerCount > 1 {
		switch c {
		case PreSegwit:
			return hdpath.MultisigOrderedSh()
		case SegwitV0:
			return hdpath.MultisigSegwit0()
		case NestedV0:
			return hdpath.MultisigNested0()
		default:
			return hdpath.MultisigDescriptor()
		}
	}
	switch c {
	case PreSegwit:
		return hdpath.SinglesigPKH()
	case SegwitV0:
		return hdpath.SinglesigSegwit0()
	case NestedV0:
		return hdpath.SinglesigNested0()
	default:
		return hdpath.SinglesigTaproot()
	}
}

// String returns the lowercase name of the descriptor class.
func (c DescriptorClass) String() string {
	switch c {
	case PreSegwit:
		return "pre-segwit"
	case SegwitV0:
		return "segwit-v0"
	case NestedV0:
		return "nested-v0"
	default:
		return "taproot-c0"
	}
}

// WalletTemplate is a constrained blueprint of a wallet descriptor: the
// derivation standard to use by default, the script class, signer count
// bounds and capability requirements, and an ordered fallback schedule of
// spending conditions. Unlike a full descriptor it carries no consistency
// requirements between the signers already collected and the condition
// parameters.
type WalletTemplate struct {
	DefaultDerivation hdpath.Bip43
	DescriptorClass   DescriptorClass
	MinSignerCount    uint16
	MaxSignerCount    fn.Option[uint16]
	HardwareReq       Requirement
	WatchOnlyReq      Requirement
	Conditions        ConditionSet
	Network           hdpath.PublicNetwork
	UseRgb            bool
}

// Bip43 returns the derivation standard the template defaults to.
func (t WalletTemplate) Bip43() hdpath.Bip43 {
	return t.DefaultDerivation
}

// hardwareReqs maps the single boolean hardware flag of single-signature
// wallets onto the mutually exclusive capability requirements.
func hardwareReqs(requireHardware bool) (Requirement, Requirement) {
	if requireHardware {
		return Require, Deny
	}
	return Deny, Require
}

// Singlesig builds a template with exactly one signer and a single
// unconditional spending branch. The hardware flag flips between a
// hardware-only and a watch-only wallet.
func Singlesig(class DescriptorClass, network hdpath.PublicNetwork,
	requireHardware, useRgb bool) WalletTemplate {

	hardwareReq, watchOnlyReq := hardwareReqs(requireHardware)
	return WalletTemplate{
		DefaultDerivation: class.Bip43(1),
		DescriptorClass:   class,
		MinSignerCount:    1,
		MaxSignerCount:    fn.Some[uint16](1),
		HardwareReq:       hardwareReq,
		WatchOnlyReq:      watchOnlyReq,
		Conditions: NewConditionSet(
			ConditionEntry{Priority: 0, Condition: ConditionDefault()},
		),
		Network: network,
		UseRgb:  useRgb,
	}
}

// TaprootSinglesigRgb builds a taproot single-signature template with the
// RGB extension enabled.
func TaprootSinglesigRgb(network hdpath.PublicNetwork,
	requireHardware bool) WalletTemplate {

	template := Singlesig(TaprootC0, network, requireHardware, true)
	template.DefaultDerivation = hdpath.SinglesigTaproot()
	return template
}

// Hodling builds a cold-storage template for three or more signers. Funds
// have no unconditional branch: they are spendable only with all
// signatures (priority 1), or by anybody five years after construction
// (priority 2).
//
// It panics when sigsRequired is below 3, which is a caller contract
// violation.
func Hodling(now time.Time, class DescriptorClass,
	network hdpath.PublicNetwork, sigsRequired uint16,
	hardwareReq, watchOnlyReq Requirement) WalletTemplate {

	if sigsRequired < 3 {
		panic(fmt.Sprintf("hodling template must require at least 3 "+
			"signers, got %d", sigsRequired))
	}

	conditions := NewConditionSet(
		ConditionEntry{Priority: 1, Condition: ConditionAll()},
		ConditionEntry{
			Priority:  2,
			Condition: ConditionAnybodyAfterDate(now.AddDate(5, 0, 0)),
		},
	)
	return WalletTemplate{
		DefaultDerivation: hdpath.MultisigDescriptor(),
		DescriptorClass:   class,
		MinSignerCount:    sigsRequired,
		MaxSignerCount:    fn.None[uint16](),
		HardwareReq:       hardwareReq,
		WatchOnlyReq:      watchOnlyReq,
		Conditions:        conditions,
		Network:           network,
		UseRgb:            false,
	}
}

// Multisig builds a general multi-signature template. Without a required
// signature count a single unconditional branch requiring the default
// threshold is used. With a count the thresholds loosen monotonically over
// time, bounding the cost of lost keys without weakening the immediate
// security model:
//
//   - 2 signers: all signatures now, anybody after five years;
//   - 3 signers: two signatures now, anybody after five years;
//   - n > 3 signers: n-1 signatures now, a majority after three years,
//     anybody after five years.
//
// It panics when sigsRequired is 0 or 1, which is a caller contract
// violation: a multisig wallet implies more than one signature.
func Multisig(now time.Time, class DescriptorClass,
	network hdpath.PublicNetwork, sigsRequired fn.Option[uint16],
	hardwareReq, watchOnlyReq Requirement) WalletTemplate {

	anybodyAfter5y := ConditionEntry{
		Priority:  2,
		Condition: ConditionAnybodyAfterDate(now.AddDate(5, 0, 0)),
	}

	conditions := NewConditionSet(
		ConditionEntry{Priority: 0, Condition: ConditionDefault()},
	)
	sigsRequired.WhenSome(func(count uint16) {
		switch {
		case count <= 1:
			panic(fmt.Sprintf("multisig template must expect more "+
				"than 1 signature, got %d", count))

		case count == 2:
			conditions = NewConditionSet(
				ConditionEntry{
					Priority:  1,
					Condition: ConditionAll(),
				},
				anybodyAfter5y,
			)

		case count == 3:
			conditions = NewConditionSet(
				ConditionEntry{
					Priority:  1,
					Condition: ConditionAtLeast(2),
				},
				anybodyAfter5y,
			)

		default:
			majority := count/2 + count%2
			conditions = NewConditionSet(
				ConditionEntry{
					Priority:  1,
					Condition: ConditionAtLeast(count - 1),
				},
				ConditionEntry{
					Priority: 2,
					Condition: ConditionAfterDate(
						ReqAtLeast(majority),
						now.AddDate(3, 0, 0),
					),
				},
				ConditionEntry{
					Priority: 3,
					Condition: ConditionAnybodyAfterDate(
						now.AddDate(5, 0, 0),
					),
				},
			)
		}
	})

	return WalletTemplate{
		DefaultDerivation: class.Bip43(sigsRequired.UnwrapOr(2)),
		DescriptorClass:   class,
		MinSignerCount:    sigsRequired.UnwrapOr(2),
		MaxSignerCount:    fn.None[uint16](),
		HardwareReq:       hardwareReq,
		WatchOnlyReq:      watchOnlyReq,
		Conditions:        conditions,
		Network:           network,
		UseRgb:            false,
	}
}
