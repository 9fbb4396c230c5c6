// Package bip322 verifies and produces BIP-322 "simple" message signatures for segwit addresses.
package bip322

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
)

var messageTag = []byte("BIP0322-signed-message")

// MessageHash returns the tagged hash a signature over message commits to.
func MessageHash(message string) *chainhash.Hash {
	return chainhash.TaggedHash(messageTag, []byte(message))
}

// prepareTx builds the virtual to_sign transaction spending the to_spend output locked by pkScript.
func prepareTx(pkScript []byte, message string) (*wire.MsgTx, error) {
	scriptSig, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(MessageHash(message)[:]).
		Script()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	toSpend := wire.NewMsgTx(0)
	spendIn := wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex), scriptSig, nil)
	spendIn.Sequence = 0
	toSpend.AddTxIn(spendIn)
	toSpend.AddTxOut(wire.NewTxOut(0, pkScript))

	opReturn, err := txscript.NewScriptBuilder().AddOp(txscript.OP_RETURN).Script()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	toSpendHash := toSpend.TxHash()
	toSign := wire.NewMsgTx(0)
	signIn := wire.NewTxIn(wire.NewOutPoint(&toSpendHash, 0), nil, nil)
	signIn.Sequence = 0
	toSign.AddTxIn(signIn)
	toSign.AddTxOut(wire.NewTxOut(0, opReturn))
	return toSign, nil
}

// VerifyMessage reports whether signature is a valid signature of message by address.
// signature is the serialized witness of the to_sign transaction.
func VerifyMessage(address btcutil.Address, signature []byte, message string) bool {
	if len(signature) == 0 {
		return false
	}
	witness, err := DeserializeWitnessSignature(signature)
	if err != nil {
		return false
	}
	pkScript, err := txscript.PayToAddrScript(address)
	if err != nil {
		return false
	}
	return verifySignatureWitness(witness, pkScript, message)
}

func verifySignatureWitness(witness wire.TxWitness, pkScript []byte, message string) bool {
	toSign, err := prepareTx(pkScript, message)
	if err != nil {
		return false
	}
	toSign.TxIn[0].Witness = witness

	prevFetcher := txscript.NewCannedPrevOutputFetcher(pkScript, 0)
	sigHashes := txscript.NewTxSigHashes(toSign, prevFetcher)
	vm, err := txscript.NewEngine(pkScript, toSign, 0, txscript.StandardVerifyFlags, nil, sigHashes, 0, prevFetcher)
	if err != nil {
		return false
	}
	return vm.Execute() == nil
}

// SignMessage signs message with privateKey for a P2WPKH or P2TR address derived from it.
func SignMessage(privateKey *btcec.PrivateKey, address btcutil.Address, message string) ([]byte, error) {
	pkScript, err := txscript.PayToAddrScript(address)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	toSign, err := prepareTx(pkScript, message)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	prevFetcher := txscript.NewCannedPrevOutputFetcher(pkScript, 0)
	sigHashes := txscript.NewTxSigHashes(toSign, prevFetcher)

	var witness wire.TxWitness
	switch address.(type) {
	case *btcutil.AddressTaproot:
		witness, err = txscript.TaprootWitnessSignature(toSign, sigHashes, 0, 0, pkScript, txscript.SigHashDefault, privateKey)
	case *btcutil.AddressWitnessPubKeyHash:
		witness, err = txscript.WitnessSignature(toSign, sigHashes, 0, 0, pkScript, txscript.SigHashAll, privateKey, true)
	default:
		return nil, errors.Wrapf(errs.Unsupported, "address type %T", address)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return SerializeWitnessSignature(witness)
}
