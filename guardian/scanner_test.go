package guardian

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ethernal-Tech/cardano-guardian/depositdb"
	"github.com/Ethernal-Tech/cardano-guardian/depositdb/db"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	guardian := guardianScript(t)
	paymentHash := mustHex(t, testPaymentHash)
	stakeHash := mustHex(t, testStakeHash)

	utxos := []wallet.Utxo{
		{
			Hash: "aa", Index: 0, Amount: 2_000_000,
			InlineDatum: encodeDatum(t, NewDepositDatum(big.NewInt(100), testBtcAddress, paymentHash, stakeHash)),
		},
		{
			Hash: "bb", Index: 1, Amount: 3_000_000,
			InlineDatum: encodeDatum(t, NewDepositDatum(big.NewInt(0), testBtcAddress, paymentHash, stakeHash)),
		},
		{
			Hash: "cc", Index: 2, Amount: 4_000_000,
			InlineDatum: encodeDatum(t, NewDepositDatum(
				big.NewInt(200), "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx", paymentHash, stakeHash)),
		},
	}

	database, err := db.NewDatabaseInit(db.BBoltName, filepath.Join(t.TempDir(), "deposits.db"))
	require.NoError(t, err)

	defer database.Close()

	config := ScannerConfig{
		GuardianValidator: guardian,
		Network:           wallet.TestNetNetwork,
		PollInterval:      time.Millisecond,
	}

	scanner := NewScanner(config, newRetriever(t, guardian, utxos[:2]), database, hclog.NewNullLogger())

	added, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Equal(t, []*depositdb.Deposit{{
		Hash:           "aa",
		Index:          0,
		Lovelace:       2_000_000,
		BridgeAmount:   "100",
		BtcAddress:     testBtcAddress,
		CardanoAddress: testBaseAddress,
	}}, added)

	// already stored deposits are not reported again
	added, err = scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Empty(t, added)

	config.BtcParams = &chaincfg.MainNetParams
	scanner = NewScanner(config, newRetriever(t, guardian, utxos), database, hclog.NewNullLogger())

	added, err = scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Empty(t, added)

	stored, err := database.GetUnprocessedDeposits(10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "aa#0", stored[0].Ref())

	skipped, err := database.GetDeposit("cc#2")
	require.NoError(t, err)
	require.Nil(t, skipped)
}

func TestScanner_Errors(t *testing.T) {
	t.Parallel()

	guardian := guardianScript(t)

	database, err := db.NewDatabaseInit(db.LevelDBName, filepath.Join(t.TempDir(), "deposits"))
	require.NoError(t, err)

	defer database.Close()

	errRetriever := errors.New("forbidden")
	retriever := txRetrieverMock{
		getUtxosFn: func(_ context.Context, _ string) ([]wallet.Utxo, error) {
			return nil, errRetriever
		},
	}

	scanner := NewScanner(ScannerConfig{
		GuardianValidator: guardian,
		Network:           wallet.TestNetNetwork,
	}, retriever, database, hclog.NewNullLogger())

	_, err = scanner.Scan(context.Background())
	require.ErrorIs(t, err, errRetriever)

	scanner = NewScanner(ScannerConfig{
		GuardianValidator: guardian,
		Network:           wallet.TestNetNetwork,
	}, newRetriever(t, guardian, []wallet.Utxo{{Hash: "aa", InlineDatum: "00ff"}}), database, hclog.NewNullLogger())

	_, err = scanner.Scan(context.Background())
	require.ErrorIs(t, err, ErrDatumDecode)
}

func TestScanner_Start(t *testing.T) {
	t.Parallel()

	guardian := guardianScript(t)

	database, err := db.NewDatabaseInit(db.BBoltName, filepath.Join(t.TempDir(), "deposits.db"))
	require.NoError(t, err)

	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	datum := encodeDatum(t, NewDepositDatum(
		big.NewInt(1), testBtcAddress, mustHex(t, testPaymentHash), mustHex(t, testStakeHash)))

	retriever := txRetrieverMock{
		getUtxosFn: func(_ context.Context, _ string) ([]wallet.Utxo, error) {
			calls++
			if calls == 3 {
				cancel()
			}

			return []wallet.Utxo{{Hash: "aa", InlineDatum: datum}}, nil
		},
	}

	scanner := NewScanner(ScannerConfig{
		GuardianValidator: guardian,
		Network:           wallet.TestNetNetwork,
		PollInterval:      time.Millisecond,
	}, retriever, database, hclog.NewNullLogger())

	done := make(chan struct{})

	go func() {
		scanner.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scanner did not stop")
	}

	require.Equal(t, 3, calls)

	deposit, err := database.GetDeposit("aa#0")
	require.NoError(t, err)
	require.NotNil(t, deposit)
}
