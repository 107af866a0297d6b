// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rgb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnd/tlv"

	"github.com/pandora-prime/bpro/onchain"
)

// Version tags of the serialized container. Tags are append-only: a tag
// is never reused for an incompatible layout.
const (
	// versionDisabled is the tag of a wallet without the extension.
	versionDisabled uint16 = 0x0000

	// versionV0_10 is the tag of the active schema: stock followed by
	// the witness index.
	versionV0_10 uint16 = 0x0001
)

const (
	typeProxyStock     tlv.Type = 1
	typeProxyWitnesses tlv.Type = 2
)

// ActiveState is the extension state of a wallet that has the extension
// enabled. Mutable access to the stock and the witness index exists only
// here, so a caller must have gone through Proxy.Active before writing.
type ActiveState struct {
	stock       Stock
	witnessTxes WitnessIndex
}

// Stock gives read-write access to the asset ledger snapshot.
func (a *ActiveState) Stock() *Stock {
	return &a.stock
}

// WitnessTxes gives read-write access to the witness index.
func (a *ActiveState) WitnessTxes() *WitnessIndex {
	return &a.witnessTxes
}

// Proxy is the version-tagged container for the extension state. The
// zero value is the disabled variant.
type Proxy struct {
	active *ActiveState
}

// None returns a container with the extension disabled.
func None() Proxy {
	return Proxy{}
}

// New returns a container with the extension enabled and empty state.
func New() Proxy {
	return Proxy{active: &ActiveState{}}
}

// With returns New or None depending on the flag.
func With(supportRgb bool) Proxy {
	if supportRgb {
		return New()
	}
	return None()
}

// IsRgb reports whether the extension is enabled.
func (p Proxy) IsRgb() bool {
	return p.active != nil
}

// Active returns the mutable extension state. The second return value is
// false when the extension is disabled; callers must check it before
// writing.
func (p Proxy) Active() (*ActiveState, bool) {
	if p.active == nil {
		return nil, false
	}
	return p.active, true
}

// Stock returns a read-only snapshot of the asset ledger state. A
// disabled container reports an empty stock.
func (p Proxy) Stock() Stock {
	if p.active == nil {
		return Stock{}
	}
	return p.active.stock
}

// WitnessTxes returns the indexed witness transactions in order. A
// disabled container reports none.
func (p Proxy) WitnessTxes() []onchain.OnchainTxid {
	if p.active == nil {
		return nil
	}
	return p.active.witnessTxes.Txids()
}

// Equal reports whether both containers are the same variant with the
// same state.
func (p Proxy) Equal(other Proxy) bool {
	if p.IsRgb() != other.IsRgb() {
		return false
	}
	if !p.IsRgb() {
		return true
	}
	return p.active.stock.Equal(other.active.stock) &&
		p.active.witnessTxes.Equal(&other.active.witnessTxes)
}

// Encode serializes the container: a little-endian version tag, followed
// by the TLV-framed payload of the active schema.
func (p Proxy) Encode(w io.Writer) error {
	var version [2]byte
	if p.active == nil {
		binary.LittleEndian.PutUint16(version[:], versionDisabled)
		_, err := w.Write(version[:])
		return err
	}

	binary.LittleEndian.PutUint16(version[:], versionV0_10)
	if _, err := w.Write(version[:]); err != nil {
		return err
	}

	stockBytes := p.active.stock.data
	witnesses := p.active.witnessTxes.txids
	tlvStream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeProxyStock, &stockBytes),
		tlv.MakeDynamicRecord(
			typeProxyWitnesses, &witnesses, func() uint64 {
				return witnessIndexSize(witnesses)
			}, witnessIndexEncoder, witnessIndexDecoder,
		),
	)
	if err != nil {
		return err
	}

	return tlvStream.Encode(w)
}

// Decode deserializes a container, replacing the receiver's state. An
// unknown version tag or a malformed payload yields an IntegrityError;
// partial state is never kept.
func (p *Proxy) Decode(r io.Reader) error {
	var version [2]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return integrityError(err)
	}

	switch tag := binary.LittleEndian.Uint16(version[:]); tag {
	case versionDisabled:
		p.active = nil
		return nil

	case versionV0_10:
		var (
			stockBytes []byte
			witnesses  []onchain.OnchainTxid
		)
		tlvStream, err := tlv.NewStream(
			tlv.MakePrimitiveRecord(typeProxyStock, &stockBytes),
			tlv.MakeDynamicRecord(
				typeProxyWitnesses, &witnesses, func() uint64 {
					return witnessIndexSize(witnesses)
				}, witnessIndexEncoder, witnessIndexDecoder,
			),
		)
		if err != nil {
			return err
		}

		if err := tlvStream.Decode(r); err != nil {
			return integrityError(err)
		}

		state := &ActiveState{stock: Stock{data: stockBytes}}
		for _, txid := range witnesses {
			state.witnessTxes.Add(txid)
		}
		p.active = state
		return nil

	default:
		return unsupportedVersionError(tag)
	}
}

// Bytes serializes the container into a fresh buffer.
func (p Proxy) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseProxy deserializes a container from a byte slice.
func ParseProxy(data []byte) (Proxy, error) {
	var p Proxy
	if err := p.Decode(bytes.NewReader(data)); err != nil {
		return Proxy{}, err
	}
	return p, nil
}

// Witness entries are fixed-size records: the txid, the mining status
// and an optional observed timestamp.
const (
	witnessEntryBaseSize = chainhash.HashSize + 4 + 1
	witnessEntryTimeSize = 8
)

func witnessIndexSize(txids []onchain.OnchainTxid) uint64 {
	size := uint64(0)
	for _, txid := range txids {
		size += witnessEntryBaseSize
		if txid.DateTime.IsSome() {
			size += witnessEntryTimeSize
		}
	}
	return size
}

// witnessIndexEncoder is a custom TLV encoder for the witness index.
func witnessIndexEncoder(w io.Writer, val interface{}, buf *[8]byte) error {
	v, ok := val.(*[]onchain.OnchainTxid)
	if !ok {
		return tlv.NewTypeForEncodingErr(val, "[]onchain.OnchainTxid")
	}

	for _, txid := range *v {
		if _, err := w.Write(txid.Txid[:]); err != nil {
			return err
		}

		binary.LittleEndian.PutUint32(buf[:4], txid.Status.IntoU32())
		if _, err := w.Write(buf[:4]); err != nil {
			return err
		}

		observed, hasTime := unixSeconds(txid.DateTime)
		if !hasTime {
			buf[0] = 0
			if _, err := w.Write(buf[:1]); err != nil {
				return err
			}
			continue
		}

		buf[0] = 1
		if _, err := w.Write(buf[:1]); err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(
			buf[:8], uint64(observed),
		)
		if _, err := w.Write(buf[:8]); err != nil {
			return err
		}
	}

	return nil
}

// witnessIndexDecoder is a custom TLV decoder for the witness index.
func witnessIndexDecoder(r io.Reader, val interface{}, buf *[8]byte,
	l uint64) error {

	v, ok := val.(*[]onchain.OnchainTxid)
	if !ok {
		return tlv.NewTypeForDecodingErr(
			val, "[]onchain.OnchainTxid", l, l,
		)
	}

	innerReader := &io.LimitedReader{R: r, N: int64(l)}

	var txids []onchain.OnchainTxid
	for innerReader.N > 0 {
		var txid onchain.OnchainTxid
		if _, err := io.ReadFull(innerReader, txid.Txid[:]); err != nil {
			return err
		}

		if _, err := io.ReadFull(innerReader, buf[:4]); err != nil {
			return err
		}
		txid.Status = onchain.StatusFromU32(
			binary.LittleEndian.Uint32(buf[:4]),
		)

		if _, err := io.ReadFull(innerReader, buf[:1]); err != nil {
			return err
		}
		switch buf[0] {
		case 0:
			txid.DateTime = fn.None[time.Time]()

		case 1:
			if _, err := io.ReadFull(innerReader, buf[:8]); err != nil {
				return err
			}
			observed := int64(binary.LittleEndian.Uint64(buf[:8]))
			txid.DateTime = fn.Some(time.Unix(observed, 0).UTC())

		default:
			return fmt.Errorf("invalid witness timestamp "+
				"marker %d", buf[0])
		}

		txids = append(txids, txid)
	}

	*v = txids
	return nil
}

// unixSeconds projects an optional timestamp to its unix representation.
func unixSeconds(t fn.Option[time.Time]) (int64, bool) {
	var (
		seconds int64
		ok      bool
	)
	t.WhenSome(func(ts time.Time) {
		seconds = ts.Unix()
		ok = true
	})
	return seconds, ok
}
