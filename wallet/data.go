package wallet

import (
	"context"
	"fmt"
)

const (
	AdaTokenName = "lovelace"

	adaTokenPolicyID = "ada"
)

type TokenAmount struct {
	PolicyID string `json:"pid"`
	Name     string `json:"nam"`
	Amount   uint64 `json:"val"`
}

func NewTokenAmount(policyID string, name string, amount uint64) TokenAmount {
	return TokenAmount{
		PolicyID: policyID,
		Name:     name,
		Amount:   amount,
	}
}

func (tt TokenAmount) TokenName() string {
	return fmt.Sprintf("%s.%s", tt.PolicyID, tt.Name)
}

func (tt TokenAmount) String() string {
	return fmt.Sprintf("%d %s.%s", tt.Amount, tt.PolicyID, tt.Name)
}

type Utxo struct {
	Hash   string        `json:"hsh"`
	Index  uint32        `json:"ind"`
	Amount uint64        `json:"amount"`
	Tokens []TokenAmount `json:"tokens,omitempty"`
	// DatumHash is hex encoded hash of the attached datum
	DatumHash string `json:"dh,omitempty"`
	// InlineDatum is hex encoded cbor of the inline datum
	InlineDatum string `json:"datum,omitempty"`
}

// Ref returns txhash#index reference of the utxo
func (u Utxo) Ref() string {
	return fmt.Sprintf("%s#%d", u.Hash, u.Index)
}

type IUTxORetriever interface {
	GetUtxos(ctx context.Context, addr string) ([]Utxo, error)
}

type IUTxOProvider interface {
	IUTxORetriever
	Dispose()
}

// GetUtxosSum returns lovelace sum of the utxos
func GetUtxosSum(utxos []Utxo) (sum uint64) {
	for _, utxo := range utxos {
		sum += utxo.Amount
	}

	return sum
}
