package depositbbolt

import (
	"encoding/json"
	"fmt"

	core "github.com/Ethernal-Tech/cardano-guardian/depositdb"
	"go.etcd.io/bbolt"
)

type BBoltDatabase struct {
	db *bbolt.DB
}

var (
	processedDepositsBucket   = []byte("ProcessedDeposits")
	unprocessedDepositsBucket = []byte("UnprocessedDeposits")
)

var _ core.Database = (*BBoltDatabase)(nil)

func (bd *BBoltDatabase) Init(filePath string) error {
	db, err := bbolt.Open(filePath, 0600, nil)
	if err != nil {
		return fmt.Errorf("could not open db: %w", err)
	}

	bd.db = db

	return db.Update(func(tx *bbolt.Tx) error {
		for _, bn := range [][]byte{processedDepositsBucket, unprocessedDepositsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bn); err != nil {
				return fmt.Errorf("could not create bucket: %s, err: %w", string(bn), err)
			}
		}

		return nil
	})
}

func (bd *BBoltDatabase) Close() error {
	return bd.db.Close()
}

func (bd *BBoltDatabase) AddDeposits(deposits []*core.Deposit) (added []*core.Deposit, err error) {
	err = bd.db.Update(func(tx *bbolt.Tx) error {
		processed := tx.Bucket(processedDepositsBucket)
		unprocessed := tx.Bucket(unprocessedDepositsBucket)

		for _, deposit := range deposits {
			key := deposit.Key()

			if processed.Get(key) != nil || unprocessed.Get(key) != nil {
				continue
			}

			bytes, err := json.Marshal(deposit)
			if err != nil {
				return fmt.Errorf("could not marshal deposit: %w", err)
			}

			if err := unprocessed.Put(key, bytes); err != nil {
				return fmt.Errorf("deposit write error: %w", err)
			}

			added = append(added, deposit)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

func (bd *BBoltDatabase) GetUnprocessedDeposits(maxCnt int) ([]*core.Deposit, error) {
	var result []*core.Deposit

	err := bd.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(unprocessedDepositsBucket).Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var deposit *core.Deposit

			if err := json.Unmarshal(v, &deposit); err != nil {
				return err
			}

			result = append(result, deposit)
			if maxCnt > 0 && len(result) == maxCnt {
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (bd *BBoltDatabase) MarkDepositsProcessed(deposits []*core.Deposit) error {
	return bd.db.Update(func(tx *bbolt.Tx) error {
		for _, deposit := range deposits {
			if err := tx.Bucket(unprocessedDepositsBucket).Delete(deposit.Key()); err != nil {
				return fmt.Errorf("could not remove from unprocessed deposits: %w", err)
			}

			bytes, err := json.Marshal(deposit)
			if err != nil {
				return fmt.Errorf("could not marshal deposit: %w", err)
			}

			if err := tx.Bucket(processedDepositsBucket).Put(deposit.Key(), bytes); err != nil {
				return fmt.Errorf("could not move to processed deposits: %w", err)
			}
		}

		return nil
	})
}

func (bd *BBoltDatabase) GetDeposit(key string) (result *core.Deposit, err error) {
	err = bd.db.View(func(tx *bbolt.Tx) error {
		for _, bn := range [][]byte{unprocessedDepositsBucket, processedDepositsBucket} {
			if data := tx.Bucket(bn).Get([]byte(key)); len(data) > 0 {
				return json.Unmarshal(data, &result)
			}
		}

		return nil
	})

	return result, err
}
