// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rgb

import "bytes"

// Stock is the serialized client-side-validated asset ledger. The wallet
// persists it verbatim; interpreting its contents is the job of the
// asset runtime, not of the wallet.
type Stock struct {
	data []byte
}

// NewStock wraps serialized asset-ledger state. The bytes are copied.
func NewStock(data []byte) Stock {
	return Stock{data: append([]byte(nil), data...)}
}

// Bytes returns a copy of the serialized state.
func (s Stock) Bytes() []byte {
	return append([]byte(nil), s.data...)
}

// Len returns the size of the serialized state.
func (s Stock) Len() int {
	return len(s.data)
}

// IsEmpty reports whether the stock holds no state at all.
func (s Stock) IsEmpty() bool {
	return len(s.data) == 0
}

// Equal reports bytewise equality.
func (s Stock) Equal(other Stock) bool {
	return bytes.Equal(s.data, other.data)
}

// Replace swaps the serialized state for a new snapshot. The bytes are
// copied.
func (s *Stock) Replace(data []byte) {
	s.data = append([]byte(nil), data...)
}
