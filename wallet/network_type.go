package wallet

import "strings"

type CardanoNetworkType byte

const (
	MainNetProtocolMagic = uint32(764824073)
	PreProdProtocolMagic = uint32(1)
	PreviewProtocolMagic = uint32(2)

	MainNetNetwork CardanoNetworkType = 1
	TestNetNetwork CardanoNetworkType = 0

	KeyHashSize = 28
	KeySize     = 32
)

func (n CardanoNetworkType) GetPrefix() string {
	if n == MainNetNetwork {
		return "addr"
	}

	return "addr_test"
}

func (n CardanoNetworkType) GetStakePrefix() string {
	if n == MainNetNetwork {
		return "stake"
	}

	return "stake_test"
}

func (n CardanoNetworkType) IsMainNet() bool {
	return n == MainNetNetwork
}

func (n CardanoNetworkType) String() string {
	if n == MainNetNetwork {
		return "mainnet"
	}

	return "testnet"
}

// NetworkFromProtocolMagic returns the address network id of the protocol magic
func NetworkFromProtocolMagic(magic uint32) CardanoNetworkType {
	if magic == MainNetProtocolMagic {
		return MainNetNetwork
	}

	return TestNetNetwork
}

// NetworkFromName parses mainnet, preprod, preview and testnet
func NetworkFromName(name string) (CardanoNetworkType, uint32, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet":
		return MainNetNetwork, MainNetProtocolMagic, true
	case "preprod", "testnet":
		return TestNetNetwork, PreProdProtocolMagic, true
	case "preview":
		return TestNetNetwork, PreviewProtocolMagic, true
	default:
		return TestNetNetwork, 0, false
	}
}

func IsAddressWithValidPrefix(addr string) bool {
	return strings.HasPrefix(addr, "addr") || strings.HasPrefix(addr, "stake")
}
