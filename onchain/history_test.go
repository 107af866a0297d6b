// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package onchain

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

func testAddrSrc(index uint32, change bool) AddressSource {
	chain := ExternalChain
	if change {
		chain = InternalChain
	}
	return AddressSource{
		Address: "addr" + string(rune('0'+index)),
		Change:  chain,
		Index:   index,
	}
}

// testEntry builds a history entry over a transaction with the given
// output values, marking the listed indices as wallet-owned debits and
// attaching the given credits.
func testEntry(outValues []int64, debits map[uint32]AddressSource,
	credits map[uint32]AddressValue) *HistoryEntry {

	tx := wire.NewMsgTx(wire.TxVersion)
	for _, value := range outValues {
		tx.AddTxOut(wire.NewTxOut(value, nil))
	}
	return &HistoryEntry{
		Onchain: OnchainTxid{Status: StatusFromU32(100)},
		Tx:      tx,
		Credit:  credits,
		Debit:   debits,
	}
}

// TestHistoryEntryBalance tests the signed balance arithmetic: debits
// summed from the referenced transaction outputs minus stored credits.
func TestHistoryEntryBalance(t *testing.T) {
	t.Parallel()

	entry := testEntry(
		[]int64{600, 400, 123},
		map[uint32]AddressSource{
			0: testAddrSrc(0, false),
			1: testAddrSrc(1, true),
		},
		map[uint32]AddressValue{
			2: {AddrSrc: testAddrSrc(2, false), Value: 300},
		},
	)

	require.Equal(t, btcutil.Amount(1000), entry.ValueDebited())
	require.Equal(t, btcutil.Amount(300), entry.ValueCredited())
	require.Equal(t, int64(700), entry.Balance())
	require.Equal(t, "media-playlist-consecutive-symbolic", entry.IconName())
}

// TestHistoryEntryDanglingDebit tests that a debit index pointing past the
// transaction outputs contributes nothing.
func TestHistoryEntryDanglingDebit(t *testing.T) {
	t.Parallel()

	entry := testEntry(
		[]int64{500},
		map[uint32]AddressSource{
			0: testAddrSrc(0, false),
			9: testAddrSrc(9, false),
		},
		nil,
	)
	require.Equal(t, btcutil.Amount(500), entry.ValueDebited())
}

// TestHistoryEntryZeroBalance tests that a self-transfer with equal credit
// and debit yields a defined zero balance and the refresh icon.
func TestHistoryEntryZeroBalance(t *testing.T) {
	t.Parallel()

	entry := testEntry(
		[]int64{250},
		map[uint32]AddressSource{0: testAddrSrc(0, true)},
		map[uint32]AddressValue{
			0: {AddrSrc: testAddrSrc(1, false), Value: 250},
		},
	)
	require.Equal(t, int64(0), entry.Balance())
	require.Equal(t, "view-refresh-symbolic", entry.IconName())
}

// TestHistoryEntryIdentity tests that identity tracks the transaction id
// alone, irrespective of confirmation status.
func TestHistoryEntryIdentity(t *testing.T) {
	t.Parallel()

	mempool := testEntry([]int64{100}, nil, nil)
	mempool.Onchain.Status = Mempool
	mined := testEntry([]int64{100}, nil, nil)
	mined.Onchain.Status = StatusFromU32(42)

	require.True(t, mempool.SameTx(mined))
	require.True(t, mempool.PartialCompare(mined).IsNone())

	other := testEntry([]int64{999}, nil, nil)
	require.False(t, mempool.SameTx(other))
}

// TestAddressSummaryMerge tests the merge invariant: balances and volumes
// accumulate while the transaction count increments by one per call.
func TestAddressSummaryMerge(t *testing.T) {
	t.Parallel()

	base := AddressSummary{
		AddrSrc: testAddrSrc(0, false),
		Balance: 10,
		Volume:  20,
		TxCount: 3,
	}

	merged := base
	var wantBalance, wantVolume btcutil.Amount = base.Balance, base.Volume
	n := 0
	for _, other := range []AddressSummary{
		{Balance: 5, Volume: 7, TxCount: 100},
		{Balance: 0, Volume: 0, TxCount: 50},
		{Balance: 100, Volume: 200, TxCount: 1},
	} {
		merged.Merge(other)
		wantBalance += other.Balance
		wantVolume += other.Volume
		n++
	}

	require.Equal(t, wantBalance, merged.Balance)
	require.Equal(t, wantVolume, merged.Volume)
	require.Equal(t, base.TxCount+uint32(n), merged.TxCount)
}

// TestAddressSummaries tests the per-address expansion of a history
// entry: credits carry no volume, debits carry the output value.
func TestAddressSummaries(t *testing.T) {
	t.Parallel()

	creditAddr := testAddrSrc(5, false)
	debitAddr := testAddrSrc(6, true)
	entry := testEntry(
		[]int64{800, 150},
		map[uint32]AddressSource{1: debitAddr},
		map[uint32]AddressValue{
			0: {AddrSrc: creditAddr, Value: 800},
		},
	)

	summaries := entry.AddressSummaries()
	require.Len(t, summaries, 2, spew.Sdump(summaries))

	byAddr := make(map[AddressSource]AddressSummary)
	for _, summary := range summaries {
		require.Equal(t, uint32(1), summary.TxCount)
		require.Equal(t, btcutil.Amount(0), summary.Balance)
		byAddr[summary.AddrSrc] = summary
	}

	require.Equal(t, btcutil.Amount(0), byAddr[creditAddr].Volume)
	require.Equal(t, btcutil.Amount(150), byAddr[debitAddr].Volume)
}

// TestNewAddressSource tests script resolution into an address source and
// the panic on scripts with no address form.
func TestNewAddressSource(t *testing.T) {
	t.Parallel()

	params := &chaincfg.MainNetParams
	pkh := make([]byte, 20)
	pkh[0] = 1
	addr, err := btcutil.NewAddressPubKeyHash(pkh, params)
	require.NoError(t, err)
	pkScript, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)

	src := NewAddressSource(pkScript, 7, true, params)
	require.Equal(t, addr.EncodeAddress(), src.Address)
	require.Equal(t, InternalChain, src.Change)
	require.Equal(t, uint32(7), src.Index)
	require.True(t, src.IsChange())
	require.Equal(t, "view-refresh-symbolic", src.IconName())
	require.Equal(t, "/1/7", src.TerminalString())

	decoded, err := src.DecodeAddress(params)
	require.NoError(t, err)
	require.Equal(t, addr.EncodeAddress(), decoded.EncodeAddress())

	// An OP_RETURN output has no address representation.
	require.Panics(t, func() {
		NewAddressSource(
			[]byte{txscript.OP_RETURN}, 0, false, params,
		)
	})
}

// TestUtxoPrevout tests the projection of a UTXO into a prevout and its
// terminal derivation.
func TestUtxoPrevout(t *testing.T) {
	t.Parallel()

	utxo := UtxoTxid{
		Onchain: OnchainTxid{
			Txid:   hashFromByte(9),
			Status: StatusFromU32(123),
		},
		Value:   5000,
		Vout:    2,
		AddrSrc: testAddrSrc(4, true),
	}

	outpoint := utxo.OutPoint()
	require.Equal(t, hashFromByte(9), outpoint.Hash)
	require.Equal(t, uint32(2), outpoint.Index)

	prevout := utxo.Prevout()
	require.Equal(t, outpoint, prevout.OutPoint)
	require.Equal(t, btcutil.Amount(5000), prevout.Amount)
	require.Equal(t, InternalChain, prevout.Change)
	require.Equal(t, uint32(4), prevout.Index)
	require.Equal(t, "m/1/4", prevout.Terminal().String())
}

// TestIngestionRecords tests the conversions from raw backend records.
func TestIngestionRecords(t *testing.T) {
	t.Parallel()

	history := HistoryRecord{
		TxHash: hashFromByte(3),
		Height: -1,
		Fee:    fn.Some(btcutil.Amount(210)),
	}
	meta := history.TxidMeta()
	require.Equal(t, Mempool, meta.Onchain.Status)
	require.Equal(t, hashFromByte(3), meta.Onchain.Txid)
	require.Equal(t, btcutil.Amount(210), meta.Fee.UnwrapOr(0))

	unspent := UnspentRecord{
		TxHash: hashFromByte(4),
		Height: 800000,
		TxPos:  1,
		Value:  1234,
	}
	utxo := unspent.Utxo(testAddrSrc(0, false))
	require.Equal(t, StatusFromU32(800000), utxo.Onchain.Status)
	require.Equal(t, uint32(1), utxo.Vout)
	require.Equal(t, btcutil.Amount(1234), utxo.Value)
}
