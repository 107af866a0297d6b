// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestClassifyOrigin tests the total classification of key origins against
// the known derivation standards.
func TestClassifyOrigin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     string
		depth    uint8
		kind     OriginKind
		account  int64 // -1 = none
		rendered string
	}{{
		name:     "master",
		path:     "m/",
		depth:    0,
		kind:     OriginMaster,
		account:  -1,
		rendered: "m/",
	}, {
		name:     "sub-master hardened",
		path:     "m/3'",
		depth:    1,
		kind:     OriginSubMaster,
		account:  3,
		rendered: "3'",
	}, {
		name:     "sub-master unhardened",
		path:     "m/3",
		depth:    1,
		kind:     OriginSubMaster,
		account:  -1,
		rendered: "3",
	}, {
		name:     "bip84 standard",
		path:     "m/84'/0'/2'",
		depth:    3,
		kind:     OriginStandard,
		account:  2,
		rendered: "m/84'/0'",
	}, {
		name:     "bip48 native standard",
		path:     "m/48'/0'/1'/2'",
		depth:    4,
		kind:     OriginStandard,
		account:  1,
		rendered: "m/48'/0'",
	}, {
		name:     "standard but shallow",
		path:     "m/84'/0'",
		depth:    2,
		kind:     OriginStandard,
		account:  -1,
		rendered: "m/84'/0'",
	}, {
		name:     "custom account",
		path:     "m/1000'/5'",
		depth:    2,
		kind:     OriginCustomAccount,
		account:  -1,
		rendered: "m/1000'/5'",
	}, {
		name:     "fully custom",
		path:     "m/1000'/5",
		depth:    2,
		kind:     OriginCustom,
		account:  -1,
		rendered: "m/1000'/5",
	}}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path, err := ParseDerivationPath(tc.path)
			require.NoError(t, err)

			format := ClassifyOrigin(path, tc.depth, Mainnet)
			require.Equal(t, tc.kind, format.Kind())
			require.Equal(t, tc.rendered, format.String())

			account := format.Account()
			if tc.account < 0 {
				require.True(t, account.IsNone())
			} else {
				require.True(t, account.IsSome())
				require.Equal(
					t, HardenedIndex(tc.account),
					account.UnwrapOr(0),
				)
			}
		})
	}
}
