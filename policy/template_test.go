// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import (
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"

	"github.com/pandora-prime/bpro/hdpath"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// TestSinglesigTemplate tests the single-signature template construction.
func TestSinglesigTemplate(t *testing.T) {
	t.Parallel()

	template := Singlesig(SegwitV0, hdpath.Mainnet, true, false)
	require.Equal(t, hdpath.SinglesigSegwit0(), template.DefaultDerivation)
	require.Equal(t, template.DefaultDerivation, template.Bip43())
	require.Equal(t, uint16(1), template.MinSignerCount)
	require.Equal(t, uint16(1), template.MaxSignerCount.UnwrapOr(0))
	require.Equal(t, Require, template.HardwareReq)
	require.Equal(t, Deny, template.WatchOnlyReq)
	require.False(t, template.UseRgb)

	require.Len(t, template.Conditions, 1)
	cond, ok := template.Conditions.At(0)
	require.True(t, ok)
	require.Equal(t, ConditionDefault(), cond)

	// Without hardware the capability requirements flip.
	watchOnly := Singlesig(PreSegwit, hdpath.Testnet, false, false)
	require.Equal(t, hdpath.SinglesigPKH(), watchOnly.DefaultDerivation)
	require.Equal(t, Deny, watchOnly.HardwareReq)
	require.Equal(t, Require, watchOnly.WatchOnlyReq)

	rgb := TaprootSinglesigRgb(hdpath.Signet, true)
	require.Equal(t, hdpath.SinglesigTaproot(), rgb.DefaultDerivation)
	require.Equal(t, TaprootC0, rgb.DescriptorClass)
	require.True(t, rgb.UseRgb)
}

// TestHodlingTemplate tests the cold-storage fallback schedule: no
// unconditional branch, all signatures at priority 1 and anybody exactly
// five years after construction at priority 2.
func TestHodlingTemplate(t *testing.T) {
	t.Parallel()

	template := Hodling(
		testNow, TaprootC0, hdpath.Mainnet, 3, Require, Deny,
	)
	require.Equal(
		t, hdpath.MultisigDescriptor(), template.DefaultDerivation,
	)
	require.Equal(t, uint16(3), template.MinSignerCount)
	require.True(t, template.MaxSignerCount.IsNone())

	_, ok := template.Conditions.At(0)
	require.False(t, ok)

	all, ok := template.Conditions.At(1)
	require.True(t, ok)
	require.Equal(t, SigsAll, all.Sigs.Kind)
	require.Equal(t, LockAnytime, all.Timelock.Kind)

	anybody, ok := template.Conditions.At(2)
	require.True(t, ok)
	require.Equal(t, SigsAny, anybody.Sigs.Kind)
	require.Equal(t, LockAfterDate, anybody.Timelock.Kind)
	require.Equal(
		t, testNow.AddDate(5, 0, 0), anybody.Timelock.Date,
	)

	require.PanicsWithValue(
		t, "hodling template must require at least 3 signers, got 2",
		func() {
			Hodling(
				testNow, TaprootC0, hdpath.Mainnet, 2,
				Require, Deny,
			)
		},
	)
}

// TestMultisigTemplate tests the threshold schedules of the general
// multisig template for every signer count class.
func TestMultisigTemplate(t *testing.T) {
	t.Parallel()

	t.Run("default threshold", func(t *testing.T) {
		t.Parallel()

		template := Multisig(
			testNow, SegwitV0, hdpath.Mainnet,
			fn.None[uint16](), Allow, Allow,
		)
		require.Equal(
			t, hdpath.MultisigSegwit0(),
			template.DefaultDerivation,
		)
		require.Equal(t, uint16(2), template.MinSignerCount)
		require.Len(t, template.Conditions, 1)

		cond, ok := template.Conditions.At(0)
		require.True(t, ok)
		require.Equal(t, ConditionDefault(), cond)
	})

	t.Run("two signers", func(t *testing.T) {
		t.Parallel()

		template := Multisig(
			testNow, SegwitV0, hdpath.Mainnet,
			fn.Some[uint16](2), Allow, Allow,
		)
		require.Len(t, template.Conditions, 2)

		all, ok := template.Conditions.At(1)
		require.True(t, ok)
		require.Equal(t, SigsAll, all.Sigs.Kind)

		anybody, ok := template.Conditions.At(2)
		require.True(t, ok)
		require.Equal(t, SigsAny, anybody.Sigs.Kind)
		require.Equal(
			t, testNow.AddDate(5, 0, 0), anybody.Timelock.Date,
		)
	})

	t.Run("three signers", func(t *testing.T) {
		t.Parallel()

		template := Multisig(
			testNow, NestedV0, hdpath.Mainnet,
			fn.Some[uint16](3), Allow, Allow,
		)
		require.Equal(
			t, hdpath.MultisigNested0(),
			template.DefaultDerivation,
		)
		require.Len(t, template.Conditions, 2)

		first, ok := template.Conditions.At(1)
		require.True(t, ok)
		require.Equal(
			t, uint16(2),
			first.Sigs.RequiredSigsCount().UnwrapOr(0),
		)
		require.Equal(t, LockAnytime, first.Timelock.Kind)
	})

	t.Run("five signers", func(t *testing.T) {
		t.Parallel()

		template := Multisig(
			testNow, TaprootC0, hdpath.Mainnet,
			fn.Some[uint16](5), Allow, Allow,
		)
		require.Len(t, template.Conditions, 3)

		immediate, ok := template.Conditions.At(1)
		require.True(t, ok)
		require.Equal(
			t, uint16(4),
			immediate.Sigs.RequiredSigsCount().UnwrapOr(0),
		)
		require.Equal(t, LockAnytime, immediate.Timelock.Kind)

		majority, ok := template.Conditions.At(2)
		require.True(t, ok)
		require.Equal(
			t, uint16(3),
			majority.Sigs.RequiredSigsCount().UnwrapOr(0),
		)
		require.Equal(
			t, testNow.AddDate(3, 0, 0), majority.Timelock.Date,
		)

		anybody, ok := template.Conditions.At(3)
		require.True(t, ok)
		require.Equal(t, SigsAny, anybody.Sigs.Kind)
		require.Equal(
			t, testNow.AddDate(5, 0, 0), anybody.Timelock.Date,
		)
	})

	t.Run("invalid counts", func(t *testing.T) {
		t.Parallel()

		for _, count := range []uint16{0, 1} {
			require.Panics(t, func() {
				Multisig(
					testNow, SegwitV0, hdpath.Mainnet,
					fn.Some(count), Allow, Allow,
				)
			})
		}
	})
}

// TestConditionSetUniquePriorities tests that a condition set rejects
// duplicate priority tags.
func TestConditionSetUniquePriorities(t *testing.T) {
	t.Parallel()

	var set ConditionSet
	require.NoError(t, set.Insert(1, ConditionAll()))
	require.NoError(t, set.Insert(0, ConditionDefault()))
	require.Error(t, set.Insert(1, ConditionAtLeast(2)))

	// Insertion keeps the schedule ordered by ascending priority.
	require.Equal(t, uint8(0), set[0].Priority)
	require.Equal(t, uint8(1), set[1].Priority)
}
