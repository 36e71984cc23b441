package depositdb

import (
	"errors"
	"fmt"
)

var ErrDepositNotFound = errors.New("deposit not found")

// Deposit is a valid guardian datum seen at the guardian validator address
type Deposit struct {
	Hash           string `json:"hash"`
	Index          uint32 `json:"index"`
	Lovelace       uint64 `json:"lovelace"`
	BridgeAmount   string `json:"bridgeAmount"`
	BtcAddress     string `json:"btcAddress"`
	CardanoAddress string `json:"cardanoAddress"`
}

func (d Deposit) Ref() string {
	return fmt.Sprintf("%s#%d", d.Hash, d.Index)
}

func (d Deposit) Key() []byte {
	return []byte(d.Ref())
}

func (d Deposit) String() string {
	return fmt.Sprintf("%s: %s -> %s", d.Ref(), d.BridgeAmount, d.BtcAddress)
}

type Database interface {
	Init(filePath string) error
	Close() error

	// AddDeposits stores deposits not seen before and returns them
	AddDeposits(deposits []*Deposit) ([]*Deposit, error)
	GetUnprocessedDeposits(maxCnt int) ([]*Deposit, error)
	MarkDepositsProcessed(deposits []*Deposit) error
	// GetDeposit returns nil if the deposit does not exist
	GetDeposit(key string) (*Deposit, error)
}

// MarkProcessed marks deposits referenced as hash#index as processed.
// Every unprocessed deposit is marked when refs is empty.
func MarkProcessed(db Database, refs []string) ([]*Deposit, error) {
	if len(refs) == 0 {
		deposits, err := db.GetUnprocessedDeposits(0)
		if err != nil {
			return nil, err
		}

		if len(deposits) == 0 {
			return deposits, nil
		}

		return deposits, db.MarkDepositsProcessed(deposits)
	}

	deposits := make([]*Deposit, 0, len(refs))

	for _, ref := range refs {
		deposit, err := db.GetDeposit(ref)
		if err != nil {
			return nil, err
		}

		if deposit == nil {
			return nil, fmt.Errorf("%w: %s", ErrDepositNotFound, ref)
		}

		deposits = append(deposits, deposit)
	}

	return deposits, db.MarkDepositsProcessed(deposits)
}
