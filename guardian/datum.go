package guardian

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/Ethernal-Tech/cardano-guardian/depositdb"
	"github.com/Ethernal-Tech/cardano-guardian/plutusdata"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	amountBinding      = "amount"
	btcAddressBinding  = "btcAddress"
	paymentHashBinding = "paymentHash"
	stakeHashBinding   = "stakeHash"
)

var ErrInvalidBtcAddress = errors.New("invalid btc address")

// depositSchema is the bridge deposit datum:
//
//	Constr [amount, btcAddress, Address]
//	Address = Constr [Credential [paymentHash], Just [StakingHash [Credential [stakeHash]]]]
//
// Constructor tags are not checked. Only addresses with a staking hash are accepted,
// Nothing and pointer staking references do not match.
var depositSchema = plutusdata.ConstrOf(plutusdata.AnyTag,
	plutusdata.IntegerAs(amountBinding),
	plutusdata.BytesAs(btcAddressBinding),
	plutusdata.ConstrOf(plutusdata.AnyTag,
		plutusdata.ConstrOf(plutusdata.AnyTag, plutusdata.BytesAs(paymentHashBinding)),
		plutusdata.ConstrOf(plutusdata.AnyTag,
			plutusdata.ConstrOf(plutusdata.AnyTag,
				plutusdata.ConstrOf(plutusdata.AnyTag, plutusdata.BytesAs(stakeHashBinding)),
			),
		),
	),
)

// ValidDatum is a bridge deposit request
type ValidDatum struct {
	BridgeAmount   *big.Int `json:"bridgeAmount"`
	BtcAddress     string   `json:"btcAddress"`
	CardanoAddress string   `json:"cardanoAddress"`
}

// ValidateBtcAddress checks that the destination is a valid address of the btc network
func (d ValidDatum) ValidateBtcAddress(params *chaincfg.Params) error {
	addr, err := btcutil.DecodeAddress(d.BtcAddress, params)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidBtcAddress, d.BtcAddress, err)
	}

	if !addr.IsForNet(params) {
		return fmt.Errorf("%w: %s is not a %s address", ErrInvalidBtcAddress, d.BtcAddress, params.Name)
	}

	return nil
}

// DatumUtxo is an utxo at the guardian address with its decoded datum.
// Datum is set only when the datum is a valid deposit
type DatumUtxo struct {
	IsValid bool
	Datum   *ValidDatum
	Raw     plutusdata.Data
	Utxo    wallet.Utxo
}

func (du DatumUtxo) MarshalJSON() ([]byte, error) {
	var raw string
	if du.Raw != nil {
		raw = du.Raw.String()
	}

	return json.Marshal(struct {
		IsValid bool        `json:"isValid"`
		Datum   *ValidDatum `json:"datum,omitempty"`
		Raw     string      `json:"raw"`
		Utxo    wallet.Utxo `json:"utxo"`
	}{
		IsValid: du.IsValid,
		Datum:   du.Datum,
		Raw:     raw,
		Utxo:    du.Utxo,
	})
}

type ValidDatumUtxo struct {
	Datum ValidDatum  `json:"datum"`
	Utxo  wallet.Utxo `json:"utxo"`
}

// ToDeposit converts the valid datum utxo to the stored deposit
func (vdu ValidDatumUtxo) ToDeposit() *depositdb.Deposit {
	return &depositdb.Deposit{
		Hash:           vdu.Utxo.Hash,
		Index:          vdu.Utxo.Index,
		Lovelace:       vdu.Utxo.Amount,
		BridgeAmount:   vdu.Datum.BridgeAmount.String(),
		BtcAddress:     vdu.Datum.BtcAddress,
		CardanoAddress: vdu.Datum.CardanoAddress,
	}
}

// ParseDatum extracts the deposit from a decoded datum. Any mismatch returns false, never an error
func ParseDatum(raw plutusdata.Data, network wallet.CardanoNetworkType) (*ValidDatum, bool) {
	bindings, ok := plutusdata.Match(raw, depositSchema)
	if !ok {
		return nil, false
	}

	amount := bindings.Integer(amountBinding)
	btcAddress := bindings.Bytes(btcAddressBinding)

	if amount.Sign() == 0 || len(btcAddress) == 0 || !utf8.Valid(btcAddress) {
		return nil, false
	}

	payment, err := wallet.NewStakeCredentialFromData(bindings.Bytes(paymentHashBinding), false)
	if err != nil {
		return nil, false
	}

	stake, err := wallet.NewStakeCredentialFromData(bindings.Bytes(stakeHashBinding), false)
	if err != nil {
		return nil, false
	}

	return &ValidDatum{
		BridgeAmount:   new(big.Int).Set(amount),
		BtcAddress:     string(btcAddress),
		CardanoAddress: wallet.NewBaseAddressFromCredentials(network, payment, stake).String(),
	}, true
}

// NewDepositDatum builds the datum a depositor attaches to the guardian output
func NewDepositDatum(bridgeAmount *big.Int, btcAddress string, paymentHash, stakeHash []byte) plutusdata.Data {
	return plutusdata.NewConstr(0,
		plutusdata.NewInteger(bridgeAmount),
		plutusdata.NewByteString([]byte(btcAddress)),
		plutusdata.NewConstr(0,
			plutusdata.NewConstr(0, plutusdata.NewByteString(paymentHash)),
			plutusdata.NewConstr(0,
				plutusdata.NewConstr(0,
					plutusdata.NewConstr(0, plutusdata.NewByteString(stakeHash)),
				),
			),
		),
	)
}
