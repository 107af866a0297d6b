// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hdpath provides the primitives for hierarchical-deterministic key
// derivation paths: child numbers, full derivation paths, the table of known
// BIP43-based derivation standards, and the total classification of an
// arbitrary key origin against that table.
package hdpath

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// ChildNumber is a single step of a BIP32 derivation path. Values at or
// above hdkeychain.HardenedKeyStart denote hardened derivation.
type ChildNumber uint32

// NewChildNumber constructs a child number from an index and a hardened
// flag. The index must be below hdkeychain.HardenedKeyStart.
func NewChildNumber(index uint32, hardened bool) ChildNumber {
	if hardened {
		return ChildNumber(index + hdkeychain.HardenedKeyStart)
	}
	return ChildNumber(index)
}

// Harden returns the hardened child number for the given index.
func Harden(index uint32) ChildNumber {
	return NewChildNumber(index, true)
}

// IsHardened returns whether the child number denotes hardened derivation.
func (c ChildNumber) IsHardened() bool {
	return uint32(c) >= hdkeychain.HardenedKeyStart
}

// Index returns the child index with the hardened bit stripped.
func (c ChildNumber) Index() uint32 {
	if c.IsHardened() {
		return uint32(c) - hdkeychain.HardenedKeyStart
	}
	return uint32(c)
}

// String renders the child number in the usual apostrophe notation, e.g.
// "44'" for hardened and "0" for unhardened steps.
func (c ChildNumber) String() string {
	if c.IsHardened() {
		return strconv.FormatUint(uint64(c.Index()), 10) + "'"
	}
	return strconv.FormatUint(uint64(c), 10)
}

// HardenedIndex is a child index which must be derived with hardening. The
// value is kept without the hardened bit set.
type HardenedIndex uint32

// HardenedIndexFromChild reports the hardened index encoded in the child
// number, or false when the child number is not hardened.
func HardenedIndexFromChild(c ChildNumber) (HardenedIndex, bool) {
	if !c.IsHardened() {
		return 0, false
	}
	return HardenedIndex(c.Index()), true
}

// ChildNumber returns the child number for this hardened index.
func (h HardenedIndex) ChildNumber() ChildNumber {
	return Harden(uint32(h))
}

// String renders the index in apostrophe notation.
func (h HardenedIndex) String() string {
	return h.ChildNumber().String()
}

// DerivationPath is a sequence of child numbers rooted at some extended key,
// conventionally the master key.
type DerivationPath []ChildNumber

// ParseDerivationPath parses a path in the canonical "m/44'/0'/0'" notation.
// Both the apostrophe and "h" suffixes are accepted for hardened steps, and
// the leading "m" element is optional. The empty path renders as "m/", so a
// single trailing separator is accepted as well; interior empty components
// are still rejected.
func ParseDerivationPath(path string) (DerivationPath, error) {
	components := strings.Split(strings.TrimSpace(path), "/")
	if len(components) > 0 && (components[0] == "m" || components[0] == "") {
		components = components[1:]
	}
	if len(components) > 0 && components[len(components)-1] == "" {
		components = components[:len(components)-1]
	}

	var result DerivationPath
	for _, component := range components {
		if component == "" {
			return nil, fmt.Errorf("empty derivation path "+
				"component in %q", path)
		}

		hardened := false
		switch component[len(component)-1] {
		case '\'', 'h', 'H':
			hardened = true
			component = component[:len(component)-1]
		}

		index, err := strconv.ParseUint(component, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid derivation path "+
				"component %q: %w", component, err)
		}
		if index >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("derivation index %d out of "+
				"range", index)
		}

		result = append(result, NewChildNumber(uint32(index), hardened))
	}

	return result, nil
}

// String renders the path in the canonical "m/44'/0'/0'" notation. An empty
// path renders as "m/".
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m/")
	for i, child := range p {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(child.String())
	}
	return b.String()
}

// Extend returns a new path with the given children appended.
func (p DerivationPath) Extend(children ...ChildNumber) DerivationPath {
	result := make(DerivationPath, 0, len(p)+len(children))
	result = append(result, p...)
	result = append(result, children...)
	return result
}

// Equal reports whether both paths consist of the same steps.
func (p DerivationPath) Equal(other DerivationPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Fingerprint is the first four bytes of the hash160 of a serialized BIP32
// public key, used to identify master and parent keys.
type Fingerprint [4]byte

// FingerprintFromUint32 converts the big-endian integer form used by
// hdkeychain into a Fingerprint.
func FingerprintFromUint32(fp uint32) Fingerprint {
	var f Fingerprint
	binary.BigEndian.PutUint32(f[:], fp)
	return f
}

// Uint32 returns the big-endian integer form of the fingerprint.
func (f Fingerprint) Uint32() uint32 {
	return binary.BigEndian.Uint32(f[:])
}

// IsZero reports whether the fingerprint is all zeroes, the conventional
// marker for an unknown master key.
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// String returns the fingerprint as lowercase hex.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}
