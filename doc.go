// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bpro is the policy and reconciliation core of a
// hierarchical-deterministic Bitcoin wallet. It is split into focused
// subpackages:
//
//   - hdpath: BIP32 derivation paths, BIP43 purpose schemes and
//     derivation-origin classification;
//   - policy: spending conditions, timelocks and template-driven wallet
//     policy construction;
//   - keyring: signer identities, origin reconstruction from bare xpubs
//     and hardware device enumeration;
//   - onchain: reconciliation of externally observed chain data into
//     balances, history entries and per-address summaries;
//   - rgb: the version-tagged container for client-side-validated asset
//     extension state.
//
// The library performs no network or disk I/O of its own: chain data is
// fed in by the caller and state containers serialize to caller-managed
// storage.
package bpro
