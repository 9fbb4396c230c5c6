package bip322

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyMessage(t *testing.T) {
	type testcase struct {
		Address   string
		Message   string
		Signature string // base64
		Expected  bool
	}
	testcases := []testcase{
		{
			Address:   "bc1q9vza2e8x573nczrlzms0wvx3gsqjx7vavgkx0l",
			Message:   "",
			Signature: "AkcwRAIgM2gBAQqvZX15ZiysmKmQpDrG83avLIT492QBzLnQIxYCIBaTpOaD20qRlEylyxFSeEA2ba9YOixpX8z46TSDtS40ASECx/EgAxlkQpQ9hYjgGu6EBCPMVPwVIVJqO4XCsMvViHI=",
			Expected:  true,
		},
		{
			Address:   "bc1q9vza2e8x573nczrlzms0wvx3gsqjx7vavgkx0l",
			Message:   "Hello World",
			Signature: "AkcwRAIgZRfIY3p7/DoVTty6YZbWS71bc5Vct9p9Fia83eRmw2QCICK/ENGfwLtptFluMGs2KsqoNSk89pO7F29zJLUx9a/sASECx/EgAxlkQpQ9hYjgGu6EBCPMVPwVIVJqO4XCsMvViHI=",
			Expected:  true,
		},
		{
			Address:   "bc1q9vza2e8x573nczrlzms0wvx3gsqjx7vavgkx0l",
			Message:   "Hello World!",
			Signature: "AkcwRAIgZRfIY3p7/DoVTty6YZbWS71bc5Vct9p9Fia83eRmw2QCICK/ENGfwLtptFluMGs2KsqoNSk89pO7F29zJLUx9a/sASECx/EgAxlkQpQ9hYjgGu6EBCPMVPwVIVJqO4XCsMvViHI=",
			Expected:  false,
		},
		{
			Address:   "bc1q9vza2e8x573nczrlzms0wvx3gsqjx7vavgkx0l",
			Message:   "",
			Signature: "AkgwRQIhAPkJ1Q4oYS0htvyuSFHLxRQpFAY56b70UvE7Dxazen0ZAiAtZfFz1S6T6I23MWI2lK/pcNTWncuyL8UL+oMdydVgzAEhAsfxIAMZZEKUPYWI4BruhAQjzFT8FSFSajuFwrDLXXXX",
			Expected:  false,
		},
		{
			Address:   "bc1ppv609nr0vr25u07u95waq5lucwfm6tde4nydujnu8npg4q75mr5sxq8lt3",
			Message:   "",
			Signature: "AUDVvVp7mCtPZtoORKYcMM+idx9yy5+z4TGeoI/PWEUscd5x0QYJ6IPQ/anBSMWPWSRPqHVrEjOIWhP9FsZSMFdG",
			Expected:  true,
		},
		{
			Address:   "bc1ppv609nr0vr25u07u95waq5lucwfm6tde4nydujnu8npg4q75mr5sxq8lt3",
			Message:   "Hello World",
			Signature: "AUCkOlzIYSN6T+QzENjlp61Pa2l4EyDDH8c4pFANOwoh3oGi/iZHscAExUSePhbS94KIMgcg+yNp+LsckO+AfLQQ",
			Expected:  true,
		},
		{
			// taproot signature checked against the p2wpkh address of the same key
			Address:   "bc1q9vza2e8x573nczrlzms0wvx3gsqjx7vavgkx0l",
			Message:   "Hello World",
			Signature: "AUCkOlzIYSN6T+QzENjlp61Pa2l4EyDDH8c4pFANOwoh3oGi/iZHscAExUSePhbS94KIMgcg+yNp+LsckO+AfLQQ",
			Expected:  false,
		},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%s_%s", tc.Address, tc.Message), func(t *testing.T) {
			address, err := btcutil.DecodeAddress(tc.Address, &chaincfg.MainNetParams)
			require.NoError(t, err)
			signature, err := base64.StdEncoding.DecodeString(tc.Signature)
			require.NoError(t, err)

			assert.Equal(t, tc.Expected, VerifyMessage(address, signature, tc.Message))
		})
	}
}

func TestVerifyMessageTrailingBytes(t *testing.T) {
	address, err := btcutil.DecodeAddress("bc1ppv609nr0vr25u07u95waq5lucwfm6tde4nydujnu8npg4q75mr5sxq8lt3", &chaincfg.MainNetParams)
	require.NoError(t, err)
	signature, err := base64.StdEncoding.DecodeString("AUCkOlzIYSN6T+QzENjlp61Pa2l4EyDDH8c4pFANOwoh3oGi/iZHscAExUSePhbS94KIMgcg+yNp+LsckO+AfLQQ")
	require.NoError(t, err)
	require.True(t, VerifyMessage(address, signature, "Hello World"))

	assert.False(t, VerifyMessage(address, append(signature, 0x00), "Hello World"))
}

func TestSignMessage(t *testing.T) {
	privateKey := lo.Must(btcutil.DecodeWIF("L3VFeEujGtevx9w18HD1fhRbCH67Az2dpCymeRE1SoPK6XQtaN2k")).PrivKey
	type testcase struct {
		PrivateKey *btcec.PrivateKey
		Address    string
		Message    string
	}
	testcases := []testcase{
		{PrivateKey: privateKey, Address: "bc1q9vza2e8x573nczrlzms0wvx3gsqjx7vavgkx0l", Message: ""},
		{PrivateKey: privateKey, Address: "bc1q9vza2e8x573nczrlzms0wvx3gsqjx7vavgkx0l", Message: "POST /v1/sale/buy"},
		{PrivateKey: privateKey, Address: "bc1ppv609nr0vr25u07u95waq5lucwfm6tde4nydujnu8npg4q75mr5sxq8lt3", Message: ""},
		{PrivateKey: privateKey, Address: "bc1ppv609nr0vr25u07u95waq5lucwfm6tde4nydujnu8npg4q75mr5sxq8lt3", Message: "POST /v1/sale/buy"},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%s_%s", tc.Address, tc.Message), func(t *testing.T) {
			address, err := btcutil.DecodeAddress(tc.Address, &chaincfg.MainNetParams)
			require.NoError(t, err)
			signature, err := SignMessage(tc.PrivateKey, address, tc.Message)
			require.NoError(t, err)

			assert.True(t, VerifyMessage(address, signature, tc.Message))
			assert.False(t, VerifyMessage(address, signature, tc.Message+"x"))
		})
	}
}

func TestSignMessageUnsupportedAddress(t *testing.T) {
	privateKey := lo.Must(btcutil.DecodeWIF("L3VFeEujGtevx9w18HD1fhRbCH67Az2dpCymeRE1SoPK6XQtaN2k")).PrivKey
	address, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(privateKey.PubKey().SerializeCompressed()), &chaincfg.MainNetParams)
	require.NoError(t, err)

	_, err = SignMessage(privateKey, address, "")
	assert.Error(t, err)
}
