package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPaymentKeyHash = "9493315cd92eb5d8c4304e67b7e16ae36d61d34502694657811a2c8e"
	testStakeKeyHash   = "337b62cfff6403a06a3acbc34f8c46003c69fe79a3628cefa9c47251"
	testScriptHash     = "c37b1b5dc0669f1d3c61a6fddb2e8fde96be87b881c60bce8e8d542f"
)

func TestNewAddress(t *testing.T) {
	t.Parallel()

	addresses := []string{
		"addr1qx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgse35a3x",
		"addr1z8phkx6acpnf78fuvxn0mkew3l0fd058hzquvz7w36x4gten0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgs9yc0hh",
		"addr1yx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzerkr0vd4msrxnuwnccdxlhdjar77j6lg0wypcc9uar5d2shs2z78ve",
		"addr1x8phkx6acpnf78fuvxn0mkew3l0fd058hzquvz7w36x4gt7r0vd4msrxnuwnccdxlhdjar77j6lg0wypcc9uar5d2shskhj42g",
		"addr1vx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzers66hrl8",
		"addr1w8phkx6acpnf78fuvxn0mkew3l0fd058hzquvz7w36x4gtcyjy7wx",
		"stake1uyehkck0lajq8gr28t9uxnuvgcqrc6070x3k9r8048z8y5gh6ffgw",
		"stake178phkx6acpnf78fuvxn0mkew3l0fd058hzquvz7w36x4gtcccycj5",
		"addr_test1qz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgs68faae",
		"addr_test1vz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzerspjrlsz",
		"addr_test1wrphkx6acpnf78fuvxn0mkew3l0fd058hzquvz7w36x4gtcl6szpr",
		"stake_test1uqehkck0lajq8gr28t9uxnuvgcqrc6070x3k9r8048z8y5gssrtvn",
	}

	for _, str := range addresses {
		addr, err := NewCardanoAddressFromString(str)
		require.NoError(t, err, str)

		assert.Equal(t, str, addr.String())
	}
}

func TestNewAddress_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewCardanoAddressFromString("DdzFFzCqrhsrcTVhLygT24QwTnNqQqQ8mZrq5jykUzMveU26sxaH529kMpo7VhPrt5pwW3")
	require.ErrorIs(t, err, ErrUnsupportedAddress)

	_, err = NewCardanoAddress(nil)
	require.ErrorIs(t, err, ErrInvalidData)

	// pointer address header
	_, err = NewCardanoAddress(append([]byte{0x41}, make([]byte, KeyHashSize+3)...))
	require.ErrorIs(t, err, ErrUnsupportedAddress)

	// base address header with enterprise length
	_, err = NewCardanoAddress(append([]byte{0x01}, make([]byte, KeyHashSize)...))
	require.ErrorIs(t, err, ErrInvalidData)

	_, err = NewCardanoAddressFromString("addr_test1vz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzerspjrlsy")
	require.Error(t, err)
}

func TestAddressFromKeyHashes(t *testing.T) {
	t.Parallel()

	payment, err := NewKeyHashCredential(testPaymentKeyHash)
	require.NoError(t, err)

	stake, err := NewKeyHashCredential(testStakeKeyHash)
	require.NoError(t, err)

	scriptHash, err := hex.DecodeString(testScriptHash)
	require.NoError(t, err)

	assert.Equal(t,
		"addr1qx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgse35a3x",
		NewBaseAddressFromCredentials(MainNetNetwork, payment, stake).String())
	assert.Equal(t,
		"addr_test1qz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgs68faae",
		NewBaseAddressFromCredentials(TestNetNetwork, payment, stake).String())
	assert.Equal(t,
		"addr1vx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzers66hrl8",
		EnterpriseAddress{Network: MainNetNetwork, Payment: payment}.String())
	assert.Equal(t,
		"stake_test1uqehkck0lajq8gr28t9uxnuvgcqrc6070x3k9r8048z8y5gssrtvn",
		RewardAddress{Network: TestNetNetwork, Stake: stake}.String())

	scriptAddr, err := NewScriptEnterpriseAddress(MainNetNetwork, scriptHash)
	require.NoError(t, err)
	assert.Equal(t, "addr1w8phkx6acpnf78fuvxn0mkew3l0fd058hzquvz7w36x4gtcyjy7wx", scriptAddr.String())
	assert.True(t, scriptAddr.GetPayment().IsScript())
	assert.Equal(t, EmptyStakeCredentialType, scriptAddr.GetStake().Kind)

	scriptAddr, err = NewScriptEnterpriseAddress(TestNetNetwork, scriptHash)
	require.NoError(t, err)
	assert.Equal(t, "addr_test1wrphkx6acpnf78fuvxn0mkew3l0fd058hzquvz7w36x4gtcl6szpr", scriptAddr.String())

	_, err = NewScriptEnterpriseAddress(TestNetNetwork, scriptHash[1:])
	require.ErrorIs(t, err, ErrInvalidData)

	_, err = NewKeyHashCredential("zz")
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestAddressParts(t *testing.T) {
	t.Parallel()

	wallet1, err := GenerateWallet()
	require.NoError(t, err)

	wallet2, err := GenerateWallet()
	require.NoError(t, err)

	wallet1KeyHash, err := GetKeyHash(wallet1.VerificationKey)
	require.NoError(t, err)

	wallet2KeyHash, err := GetKeyHash(wallet2.VerificationKey)
	require.NoError(t, err)

	baseAddr, err := NewBaseAddress(TestNetNetwork, wallet1.VerificationKey, wallet2.VerificationKey)
	require.NoError(t, err)

	cAddr, err := NewCardanoAddressFromString(baseAddr.String())
	require.NoError(t, err)

	assert.Equal(t, wallet1KeyHash, cAddr.GetPayment().String())
	assert.Equal(t, wallet2KeyHash, cAddr.GetStake().String())
	assert.False(t, cAddr.GetNetwork().IsMainNet())
	assert.False(t, cAddr.GetPayment().IsScript())
	assert.False(t, cAddr.GetStake().IsScript())

	rewardAddr, err := NewRewardAddress(MainNetNetwork, wallet2.VerificationKey)
	require.NoError(t, err)

	cAddr, err = NewCardanoAddressFromString(rewardAddr.String())
	require.NoError(t, err)

	assert.Equal(t, wallet2KeyHash, cAddr.GetStake().String())
	assert.True(t, cAddr.GetNetwork().IsMainNet())
	assert.Equal(t, EmptyStakeCredentialType, cAddr.GetPayment().Kind)
}

func TestNetworkFromName(t *testing.T) {
	t.Parallel()

	network, magic, ok := NetworkFromName(" Mainnet ")
	require.True(t, ok)
	assert.Equal(t, MainNetNetwork, network)
	assert.Equal(t, MainNetProtocolMagic, magic)

	network, magic, ok = NetworkFromName("preview")
	require.True(t, ok)
	assert.Equal(t, TestNetNetwork, network)
	assert.Equal(t, PreviewProtocolMagic, magic)

	_, _, ok = NetworkFromName("sanchonet")
	require.False(t, ok)

	assert.Equal(t, MainNetNetwork, NetworkFromProtocolMagic(MainNetProtocolMagic))
	assert.Equal(t, TestNetNetwork, NetworkFromProtocolMagic(PreProdProtocolMagic))
	assert.Equal(t, "testnet", TestNetNetwork.String())
}
