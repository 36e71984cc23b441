package wallet

import (
	"encoding/hex"
	"fmt"
)

// code mainly from https://github.com/fivebinaries/go-cardano-serialization/blob/master/address/address.go
type StakeCredentialType byte

const (
	KeyStakeCredentialType StakeCredentialType = iota
	ScriptStakeCredentialType
	EmptyStakeCredentialType
)

type CardanoAddress interface {
	GetPayment() StakeCredential
	GetStake() StakeCredential
	GetNetwork() CardanoNetworkType
	Bytes() []byte
	String() string
}

// StakeCredential is a payment or staking credential, the hash of a verification key or of a script
type StakeCredential struct {
	Kind    StakeCredentialType `cbor:"0,keyasint,omitempty"`
	Payload [KeyHashSize]byte   `cbor:"1,keyasint,omitempty"`
}

func (sc StakeCredential) String() string {
	return hex.EncodeToString(sc.Payload[:])
}

func (sc StakeCredential) IsScript() bool {
	return sc.Kind == ScriptStakeCredentialType
}

func NewStakeCredential(hash [KeyHashSize]byte, typ StakeCredentialType) StakeCredential {
	return StakeCredential{
		Kind:    typ,
		Payload: hash,
	}
}

// NewStakeCredentialFromData creates credential from a 28 bytes hash
func NewStakeCredentialFromData(data []byte, isScript bool) (StakeCredential, error) {
	if len(data) != KeyHashSize {
		return StakeCredential{}, fmt.Errorf("%w: credential hash must have %d bytes, got %d",
			ErrInvalidData, KeyHashSize, len(data))
	}

	var hashBytes [KeyHashSize]byte

	copy(hashBytes[:], data)

	if isScript {
		return NewStakeCredential(hashBytes, ScriptStakeCredentialType), nil
	}

	return NewStakeCredential(hashBytes, KeyStakeCredentialType), nil
}

// NewKeyHashCredential creates a verification key credential from a hex encoded key hash
func NewKeyHashCredential(keyHash string) (StakeCredential, error) {
	bytes, err := hex.DecodeString(keyHash)
	if err != nil {
		return StakeCredential{}, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return NewStakeCredentialFromData(bytes, false)
}

// BaseAddress contains information of the base address.
// A base address directly specifies the staking key that should control the stake for that address
// but can be used for transactions without registering the staking key in advance.
type BaseAddress struct {
	Network CardanoNetworkType
	Payment StakeCredential
	Stake   StakeCredential
}

func (a BaseAddress) GetPayment() StakeCredential {
	return a.Payment
}

func (a BaseAddress) GetStake() StakeCredential {
	return a.Stake
}

func (a BaseAddress) GetNetwork() CardanoNetworkType {
	return a.Network
}

func (a BaseAddress) Bytes() []byte {
	bytes := [KeyHashSize*2 + 1]byte{}
	bytes[0] = (byte(a.Payment.Kind) << 4) | (byte(a.Stake.Kind) << 5) | (byte(a.Network) & 0xf)

	copy(bytes[1:29], a.Payment.Payload[:])
	copy(bytes[29:], a.Stake.Payload[:])

	return bytes[:]
}

func (a BaseAddress) String() string {
	str, _ := EncodeBech32(a.Network.GetPrefix(), a.Bytes())

	return str
}

// EnterpriseAddress contains content for enterprise addresses.
// Enterprise addresses carry no stake rights, so using these addresses
// means that you are opting out of participation in the proof-of-stake protocol.
type EnterpriseAddress struct {
	Network CardanoNetworkType
	Payment StakeCredential
}

func (a EnterpriseAddress) GetPayment() StakeCredential {
	return a.Payment
}

func (a EnterpriseAddress) GetStake() StakeCredential {
	return StakeCredential{Kind: EmptyStakeCredentialType}
}

func (a EnterpriseAddress) GetNetwork() CardanoNetworkType {
	return a.Network
}

func (a EnterpriseAddress) Bytes() []byte {
	bytes := [KeyHashSize + 1]byte{}
	bytes[0] = 0b01100000 | (byte(a.Payment.Kind) << 4) | (byte(a.Network) & 0xf)

	copy(bytes[1:], a.Payment.Payload[:])

	return bytes[:]
}

func (a EnterpriseAddress) String() string {
	str, _ := EncodeBech32(a.Network.GetPrefix(), a.Bytes())

	return str
}

// RewardAddress contains content of the reward/staking address.
// Reward account addresses are used to distribute rewards for participating
// in the proof-of-stake protocol (either directly or via delegation).
type RewardAddress struct {
	Network CardanoNetworkType
	Stake   StakeCredential
}

func (a RewardAddress) GetPayment() StakeCredential {
	return StakeCredential{Kind: EmptyStakeCredentialType}
}

func (a RewardAddress) GetStake() StakeCredential {
	return a.Stake
}

func (a RewardAddress) GetNetwork() CardanoNetworkType {
	return a.Network
}

func (a RewardAddress) Bytes() []byte {
	data := [KeyHashSize + 1]byte{}
	data[0] = 0b1110_0000 | (byte(a.Stake.Kind) << 4) | (byte(a.Network) & 0xf)

	copy(data[1:], a.Stake.Payload[:])

	return data[:]
}

func (a RewardAddress) String() string {
	str, _ := EncodeBech32(a.Network.GetStakePrefix(), a.Bytes())

	return str
}
