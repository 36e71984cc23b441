package depositleveldb

import (
	"encoding/json"
	"errors"
	"fmt"

	core "github.com/Ethernal-Tech/cardano-guardian/depositdb"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type LevelDBDatabase struct {
	db *leveldb.DB
}

var (
	processedDepositsBucket   = []byte("P1_")
	unprocessedDepositsBucket = []byte("P2_")
)

var _ core.Database = (*LevelDBDatabase)(nil)

func (lvldb *LevelDBDatabase) Init(filePath string) error {
	db, err := leveldb.OpenFile(filePath, nil)
	if err != nil {
		return fmt.Errorf("could not open db: %w", err)
	}

	lvldb.db = db

	return nil
}

func (lvldb *LevelDBDatabase) Close() error {
	return lvldb.db.Close()
}

func (lvldb *LevelDBDatabase) AddDeposits(deposits []*core.Deposit) ([]*core.Deposit, error) {
	var (
		added []*core.Deposit
		batch = new(leveldb.Batch)
		// deposits added by this batch are not visible to Has yet
		inBatch = map[string]bool{}
	)

	for _, deposit := range deposits {
		exists, err := lvldb.exists(deposit.Key())
		if err != nil {
			return nil, err
		}

		if exists || inBatch[deposit.Ref()] {
			continue
		}

		bytes, err := json.Marshal(deposit)
		if err != nil {
			return nil, fmt.Errorf("could not marshal deposit: %w", err)
		}

		batch.Put(bucketKey(unprocessedDepositsBucket, deposit.Key()), bytes)

		inBatch[deposit.Ref()] = true
		added = append(added, deposit)
	}

	if err := lvldb.write(batch); err != nil {
		return nil, err
	}

	return added, nil
}

func (lvldb *LevelDBDatabase) GetUnprocessedDeposits(maxCnt int) ([]*core.Deposit, error) {
	var result []*core.Deposit

	iter := lvldb.db.NewIterator(util.BytesPrefix(unprocessedDepositsBucket), nil)
	defer iter.Release()

	for iter.Next() {
		var deposit *core.Deposit

		if err := json.Unmarshal(iter.Value(), &deposit); err != nil {
			return nil, err
		}

		result = append(result, deposit)
		if maxCnt > 0 && len(result) == maxCnt {
			break
		}
	}

	return result, iter.Error()
}

func (lvldb *LevelDBDatabase) MarkDepositsProcessed(deposits []*core.Deposit) error {
	batch := new(leveldb.Batch)

	for _, deposit := range deposits {
		bytes, err := json.Marshal(deposit)
		if err != nil {
			return fmt.Errorf("could not marshal deposit: %w", err)
		}

		batch.Put(bucketKey(processedDepositsBucket, deposit.Key()), bytes)
		batch.Delete(bucketKey(unprocessedDepositsBucket, deposit.Key()))
	}

	return lvldb.write(batch)
}

func (lvldb *LevelDBDatabase) GetDeposit(key string) (*core.Deposit, error) {
	for _, bucket := range [][]byte{unprocessedDepositsBucket, processedDepositsBucket} {
		bytes, err := lvldb.db.Get(bucketKey(bucket, []byte(key)), nil)
		if err != nil {
			if err = processNotFoundErr(err); err != nil {
				return nil, err
			}

			continue
		}

		var result *core.Deposit

		if err := json.Unmarshal(bytes, &result); err != nil {
			return nil, err
		}

		return result, nil
	}

	return nil, nil
}

func (lvldb *LevelDBDatabase) exists(key []byte) (bool, error) {
	for _, bucket := range [][]byte{unprocessedDepositsBucket, processedDepositsBucket} {
		exists, err := lvldb.db.Has(bucketKey(bucket, key), nil)
		if err != nil || exists {
			return exists, err
		}
	}

	return false, nil
}

func (lvldb *LevelDBDatabase) write(batch *leveldb.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	return lvldb.db.Write(batch, &opt.WriteOptions{
		NoWriteMerge: false,
		Sync:         true,
	})
}

func bucketKey(bucket []byte, key []byte) []byte {
	const separator = "_#_"

	outputKey := make([]byte, len(bucket)+len(separator)+len(key))
	copy(outputKey, bucket)
	copy(outputKey[len(bucket):], []byte(separator))
	copy(outputKey[len(bucket)+len(separator):], key)

	return outputKey
}

func processNotFoundErr(err error) error {
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil
	}

	return err
}
