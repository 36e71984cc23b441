package db

import (
	"strings"

	"github.com/Ethernal-Tech/cardano-guardian/depositdb"
	depositbbolt "github.com/Ethernal-Tech/cardano-guardian/depositdb/bbolt"
	depositleveldb "github.com/Ethernal-Tech/cardano-guardian/depositdb/leveldb"
)

const (
	LevelDBName = "leveldb"
	BBoltName   = "bbolt"
)

// NewDatabaseInit opens leveldb when name is leveldb and bbolt otherwise
func NewDatabaseInit(name string, filePath string) (depositdb.Database, error) {
	var db depositdb.Database

	if strings.EqualFold(name, LevelDBName) {
		db = &depositleveldb.LevelDBDatabase{}
	} else {
		db = &depositbbolt.BBoltDatabase{}
	}

	if err := db.Init(filePath); err != nil {
		return nil, err
	}

	return db, nil
}
