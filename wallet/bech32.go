package wallet

import (
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// cardano addresses exceed the 90 characters limit of BIP-173 so the no limit variants are used

func EncodeBech32(hrp string, data []byte) (string, error) {
	converted, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}

	return bech32.Encode(hrp, converted)
}

func DecodeBech32(raw string) (string, []byte, error) {
	hrp, data, err := bech32.DecodeNoLimit(raw)
	if err != nil {
		return "", nil, err
	}

	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, err
	}

	return hrp, converted, nil
}
