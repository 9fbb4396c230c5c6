package bip322

import (
	"bytes"

	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
)

func SerializeWitnessSignature(witness wire.TxWitness) ([]byte, error) {
	result := new(bytes.Buffer)
	buf := make([]byte, 8)

	if err := wire.WriteVarIntBuf(result, 0, uint64(len(witness)), buf); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, item := range witness {
		if err := wire.WriteVarBytesBuf(result, 0, item, buf); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return result.Bytes(), nil
}

// DeserializeWitnessSignature decodes a serialized witness stack. Trailing bytes are rejected
// so a signature has exactly one encoding.
func DeserializeWitnessSignature(serialized []byte) (wire.TxWitness, error) {
	if len(serialized) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "serialized witness is required")
	}
	witness := make(wire.TxWitness, 0)

	current := 0
	witnessLen := int(serialized[current])
	current++
	for i := 0; i < witnessLen; i++ {
		if current >= len(serialized) {
			return nil, errors.Wrap(errs.InvalidArgument, "invalid serialized witness data: not enough bytes")
		}
		itemLen := int(serialized[current])
		current++
		if current+itemLen > len(serialized) {
			return nil, errors.Wrap(errs.InvalidArgument, "invalid serialized witness data: not enough bytes")
		}
		witness = append(witness, serialized[current:current+itemLen])
		current += itemLen
	}
	if current != len(serialized) {
		return nil, errors.Wrap(errs.InvalidArgument, "invalid serialized witness data: trailing bytes")
	}
	return witness, nil
}
