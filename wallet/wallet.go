package wallet

import (
	"crypto/ed25519"
	"fmt"
)

const (
	signingKeyBech32Prefix      = "ed25519_sk"
	verificationKeyBech32Prefix = "ed25519_vk"
)

// Wallet is a single ed25519 key pair. It is used only to bootstrap test accounts
type Wallet struct {
	SigningKey      []byte `json:"skey"`
	VerificationKey []byte `json:"vkey"`
}

func NewWallet(signingKey []byte) *Wallet {
	return &Wallet{
		SigningKey:      signingKey,
		VerificationKey: GetVerificationKeyFromSigningKey(signingKey),
	}
}

func GenerateWallet() (*Wallet, error) {
	signingKey, verificationKey, err := GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	return &Wallet{
		SigningKey:      signingKey,
		VerificationKey: verificationKey,
	}, nil
}

// NewWalletFromBech32 loads wallet from ed25519_sk1... private key
func NewWalletFromBech32(privateKey string) (*Wallet, error) {
	hrp, data, err := DecodeBech32(privateKey)
	if err != nil {
		return nil, err
	}

	if hrp != signingKeyBech32Prefix || len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: expected %s key with %d bytes", ErrInvalidData, signingKeyBech32Prefix, ed25519.SeedSize)
	}

	return NewWallet(data), nil
}

func (w Wallet) GetSigningKey() []byte {
	return w.SigningKey
}

func (w Wallet) GetVerificationKey() []byte {
	return w.VerificationKey
}

func (w Wallet) GetKeyHash() (string, error) {
	return GetKeyHash(w.VerificationKey)
}

func (w Wallet) PrivateKeyBech32() (string, error) {
	return EncodeBech32(signingKeyBech32Prefix, w.SigningKey)
}

func (w Wallet) PublicKeyBech32() (string, error) {
	return EncodeBech32(verificationKeyBech32Prefix, w.VerificationKey)
}

// GetAddress returns enterprise address of the wallet
func (w Wallet) GetAddress(network CardanoNetworkType) (string, error) {
	addr, err := NewEnterpriseAddress(network, w.VerificationKey)
	if err != nil {
		return "", err
	}

	return addr.String(), nil
}

type AddressPrivateKey struct {
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
}

// GenerateAddressPrivateKey creates a new test account. The account must be funded before use
func GenerateAddressPrivateKey(network CardanoNetworkType) (*AddressPrivateKey, *Wallet, error) {
	wallet, err := GenerateWallet()
	if err != nil {
		return nil, nil, err
	}

	privateKey, err := wallet.PrivateKeyBech32()
	if err != nil {
		return nil, nil, err
	}

	address, err := wallet.GetAddress(network)
	if err != nil {
		return nil, nil, err
	}

	return &AddressPrivateKey{
		PrivateKey: privateKey,
		Address:    address,
	}, wallet, nil
}
