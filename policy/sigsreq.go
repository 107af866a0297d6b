// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package policy models high-level wallet spending policies: signature
// count requirements, timelocks, and the template-driven construction of
// versionable fallback schedules from human intent.
package policy

import (
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/pandora-prime/bpro/hdpath"
)

// SigsReqKind enumerates the forms a signature count requirement can take.
type SigsReqKind uint8

const (
	// SigsAll requires a signature from every signer present in the
	// wallet.
	SigsAll SigsReqKind = iota

	// SigsAtLeast requires a minimum number of signatures from any of
	// the signers.
	SigsAtLeast

	// SigsSpecific requires a minimum number of signatures from a fixed
	// set of signers identified by their account xpub fingerprints.
	SigsSpecific

	// SigsAny requires a single signature from any signer.
	SigsAny

	// SigsAccountBased requires a minimum number of signatures from
	// signers using a specific account.
	SigsAccountBased
)

// SigsReq is a signature count requirement, one half of a spending
// condition. The zero value requires all signatures.
type SigsReq struct {
	// Kind discriminates which of the fields below are meaningful.
	Kind SigsReqKind

	// Count is the signature threshold for the at-least, specific and
	// account-based kinds.
	Count uint16

	// Fingerprints is the set of account xpub fingerprints for the
	// specific kind.
	Fingerprints []hdpath.Fingerprint

	// Account is the account index for the account-based kind.
	Account hdpath.HardenedIndex
}

// ReqAll requires every present signer to sign.
func ReqAll() SigsReq { return SigsReq{Kind: SigsAll} }

// ReqAny requires a single signature from any signer.
func ReqAny() SigsReq { return SigsReq{Kind: SigsAny} }

// ReqAtLeast requires at least count signatures.
func ReqAtLeast(count uint16) SigsReq {
	return SigsReq{Kind: SigsAtLeast, Count: count}
}

// ReqSpecific requires at least count signatures from the given signers.
func ReqSpecific(count uint16, fingerprints []hdpath.Fingerprint) SigsReq {
	return SigsReq{
		Kind:         SigsSpecific,
		Count:        count,
		Fingerprints: fingerprints,
	}
}

// ReqAccountBased requires at least count signatures from signers on the
// given account.
func ReqAccountBased(count uint16, account hdpath.HardenedIndex) SigsReq {
	return SigsReq{
		Kind:    SigsAccountBased,
		Count:   count,
		Account: account,
	}
}

// RequiredSigsCount returns the concrete signature threshold, or none for
// the all-signers requirement whose threshold depends on how many signers
// are present.
func (r SigsReq) RequiredSigsCount() fn.Option[uint16] {
	switch r.Kind {
	case SigsAll:
		return fn.None[uint16]()
	case SigsAny:
		return fn.Some[uint16](1)
	default:
		return fn.Some(r.Count)
	}
}

// String returns a short human-readable description of the requirement.
func (r SigsReq) String() string {
	switch r.Kind {
	case SigsAll:
		return "all signatures"
	case SigsAtLeast:
		return fmt.Sprintf("at least %d signatures", r.Count)
	case SigsSpecific:
		return "set of signatures"
	case SigsAny:
		return "any signature"
	case SigsAccountBased:
		return fmt.Sprintf("at least %d signatures from account %s",
			r.Count, r.Account)
	default:
		return "unknown requirement"
	}
}
