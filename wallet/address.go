package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedAddress = errors.New("invalid/unsupported address type")
	ErrInvalidData        = errors.New("invalid data")
)

func NewCardanoAddressFromString(raw string) (CardanoAddress, error) {
	if !IsAddressWithValidPrefix(raw) {
		return nil, ErrUnsupportedAddress // byron not supported
	}

	_, data, err := DecodeBech32(raw)
	if err != nil {
		return nil, err
	}

	return NewCardanoAddress(data)
}

func NewCardanoAddress(data []byte) (CardanoAddress, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}

	header := data[0]
	netID := CardanoNetworkType(header & 0x0F)

	switch (header & 0xF0) >> 4 {
	// 0000: base address: keyhash28,keyhash28
	// 0001: base address: scripthash28,keyhash28
	// 0010: base address: keyhash28,scripthash28
	// 0011: base address: scripthash28,scripthash28
	case 0b0000, 0b0001, 0b0010, 0b0011:
		if len(data) != 1+KeyHashSize*2 {
			return nil, fmt.Errorf("%w: expect %d got %d", ErrInvalidData, 1+KeyHashSize*2, len(data))
		}

		payment, err := NewStakeCredentialFromData(data[1:1+KeyHashSize], header&(1<<4) > 0)
		if err != nil {
			return nil, err
		}

		stake, err := NewStakeCredentialFromData(data[1+KeyHashSize:], header&(1<<5) > 0)
		if err != nil {
			return nil, err
		}

		return &BaseAddress{
			Network: netID,
			Payment: payment,
			Stake:   stake,
		}, nil

	// 0110: enterprise address: keyhash28
	// 0111: enterprise address: scripthash28
	case 0b0110, 0b0111:
		if len(data) != KeyHashSize+1 {
			return nil, fmt.Errorf("%w: expect %d got %d", ErrInvalidData, 1+KeyHashSize, len(data))
		}

		payment, err := NewStakeCredentialFromData(data[1:], header&(1<<4) > 0)
		if err != nil {
			return nil, err
		}

		return &EnterpriseAddress{
			Network: netID,
			Payment: payment,
		}, nil

	// 1110: reward address: keyhash28
	// 1111: reward address: scripthash28
	case 0b1110, 0b1111:
		if len(data) != KeyHashSize+1 {
			return nil, fmt.Errorf("%w: expect %d got %d", ErrInvalidData, 1+KeyHashSize, len(data))
		}

		stake, err := NewStakeCredentialFromData(data[1:], header&(1<<4) > 0)
		if err != nil {
			return nil, err
		}

		return &RewardAddress{
			Network: netID,
			Stake:   stake,
		}, nil

	// pointer (0100, 0101) and byron (1000) addresses are not used by the bridge
	default:
		return nil, ErrUnsupportedAddress
	}
}

// NewBaseAddressFromCredentials combines payment and stake credentials into a base address
func NewBaseAddressFromCredentials(
	network CardanoNetworkType, payment, stake StakeCredential,
) *BaseAddress {
	return &BaseAddress{
		Network: network,
		Payment: payment,
		Stake:   stake,
	}
}

func NewBaseAddress(
	network CardanoNetworkType, paymentVerificationKey, stakeVerificationKey []byte,
) (*BaseAddress, error) {
	payment, err := newKeyCredential(paymentVerificationKey)
	if err != nil {
		return nil, err
	}

	stake, err := newKeyCredential(stakeVerificationKey)
	if err != nil {
		return nil, err
	}

	return NewBaseAddressFromCredentials(network, payment, stake), nil
}

func NewEnterpriseAddress(
	network CardanoNetworkType, verificationKey []byte,
) (*EnterpriseAddress, error) {
	payment, err := newKeyCredential(verificationKey)
	if err != nil {
		return nil, err
	}

	return &EnterpriseAddress{
		Network: network,
		Payment: payment,
	}, nil
}

// NewScriptEnterpriseAddress creates address of a script without staking part
func NewScriptEnterpriseAddress(
	network CardanoNetworkType, scriptHash []byte,
) (*EnterpriseAddress, error) {
	payment, err := NewStakeCredentialFromData(scriptHash, true)
	if err != nil {
		return nil, err
	}

	return &EnterpriseAddress{
		Network: network,
		Payment: payment,
	}, nil
}

func NewRewardAddress(
	network CardanoNetworkType, verificationKey []byte,
) (*RewardAddress, error) {
	stake, err := newKeyCredential(verificationKey)
	if err != nil {
		return nil, err
	}

	return &RewardAddress{
		Network: network,
		Stake:   stake,
	}, nil
}

func newKeyCredential(verificationKey []byte) (StakeCredential, error) {
	keyHash, err := GetKeyHashBytes(verificationKey)
	if err != nil {
		return StakeCredential{}, err
	}

	return NewStakeCredentialFromData(keyHash, false)
}
