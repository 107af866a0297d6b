// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rgb

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"

	"github.com/pandora-prime/bpro/onchain"
)

func TestIssueOperation(t *testing.T) {
	t.Parallel()

	issued := time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)
	op := IssueOperation(IssueEntry{
		Onchain: fn.Some(witnessAt(0x31, 700_000)),
		Date:    issued,
		Amount:  1_000_000,
		Fee:     fn.Some(btcutil.Amount(250)),
		Comment: "genesis allocation",
	})

	require.Equal(t, "application-certificate-symbolic", op.IconName())
	require.Equal(t, "issue", op.MiningInfo())
	require.Equal(t, issued, op.DateTimeEst())
	require.Equal(t, fn.Some(issued), op.DateTime())
	require.Zero(t, op.ValueCredited())
	require.Equal(t, uint64(1_000_000), op.ValueDebited())
	require.Equal(t, int64(1_000_000), op.Balance())
}

func TestTransferOperation(t *testing.T) {
	t.Parallel()

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxOut(wire.NewTxOut(800, make([]byte, 22)))

	entry := &onchain.HistoryEntry{
		Onchain: witnessAt(0x32, 700_100),
		Tx:      tx,
		Debit:   map[uint32]onchain.AddressSource{0: {}},
	}

	op := TransferOperation(entry)

	require.Equal(t, entry.IconName(), op.IconName())
	require.Equal(t, entry.MiningInfo(), op.MiningInfo())
	require.Zero(t, op.ValueCredited())
	require.Equal(t, uint64(800), op.ValueDebited())
	require.Equal(t, int64(800), op.Balance())
}

func TestIssueOrdering(t *testing.T) {
	t.Parallel()

	early := &IssueEntry{Date: time.Unix(1_600_000_000, 0)}
	late := &IssueEntry{Date: time.Unix(1_700_000_000, 0)}

	require.Negative(t, early.Compare(late))
	require.Positive(t, late.Compare(early))
	require.Zero(t, early.Compare(early))
}
