// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdpath

import (
	"github.com/lightningnetwork/lnd/fn/v2"
)

// OriginKind enumerates the classes a key origin may fall into.
type OriginKind uint8

const (
	// OriginMaster is the master key itself, with an empty origin path.
	OriginMaster OriginKind = iota

	// OriginSubMaster is a direct child of the master key.
	OriginSubMaster

	// OriginStandard is an origin matching one of the known BIP43
	// derivation standards.
	OriginStandard

	// OriginCustomAccount is a non-standard origin of depth two or more
	// ending in a hardened account-like step.
	OriginCustomAccount

	// OriginCustom is any other non-standard origin.
	OriginCustom
)

// OriginFormat is the classification of a raw key origin against the known
// derivation standards. Classification is total: every well-formed path and
// depth pair maps to exactly one format.
type OriginFormat struct {
	kind    OriginKind
	child   ChildNumber
	scheme  Bip43
	account fn.Option[HardenedIndex]
	network PublicNetwork
	path    DerivationPath
}

// ClassifyOrigin classifies a raw derivation path and key depth. The path
// is first matched against every known standard scheme; on a match the
// account index implied by the scheme is additionally recovered when the
// path is deep enough to carry one. Unmatched paths fall back to the
// master/sub-master/custom classes by depth.
//
// Well-formed inputs always classify; an empty path with a non-zero depth
// is a caller contract violation and panics.
func ClassifyOrigin(path DerivationPath, depth uint8,
	network PublicNetwork) OriginFormat {

	if scheme, ok := DeduceBip43(path); ok {
		return OriginFormat{
			kind:    OriginStandard,
			scheme:  scheme,
			account: scheme.ExtractAccountIndex(path),
			network: network,
		}
	}

	switch {
	case depth == 0:
		return OriginFormat{kind: OriginMaster}

	case depth == 1:
		return OriginFormat{kind: OriginSubMaster, child: path[0]}
	}

	last := path[len(path)-1]
	kind := OriginCustom
	if last.IsHardened() {
		kind = OriginCustomAccount
	}
	return OriginFormat{kind: kind, path: path.Extend()}
}

// Kind returns the origin class.
func (f OriginFormat) Kind() OriginKind {
	return f.kind
}

// Scheme returns the matched derivation standard for standard origins. The
// second return value is false for all other classes.
func (f OriginFormat) Scheme() (Bip43, bool) {
	return f.scheme, f.kind == OriginStandard
}

// Account returns the hardened account index recoverable from the origin.
// Master, custom and custom-account origins carry no recoverable account.
func (f OriginFormat) Account() fn.Option[HardenedIndex] {
	switch f.kind {
	case OriginSubMaster:
		if index, ok := HardenedIndexFromChild(f.child); ok {
			return fn.Some(index)
		}
	case OriginStandard:
		return f.account
	}
	return fn.None[HardenedIndex]()
}

// String renders the origin: "m/" for the master key, the single child for
// sub-masters, the scheme's origin prefix for standard origins and the full
// path otherwise.
func (f OriginFormat) String() string {
	switch f.kind {
	case OriginMaster:
		return "m/"
	case OriginSubMaster:
		return f.child.String()
	case OriginStandard:
		return f.scheme.OriginDerivation(f.network).String()
	default:
		return f.path.String()
	}
}
