package guardian

import (
	"context"
	"fmt"
	"time"

	"github.com/Ethernal-Tech/cardano-guardian/depositdb"
	"github.com/Ethernal-Tech/cardano-guardian/script"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hashicorp/go-hclog"
)

type ScannerConfig struct {
	GuardianValidator script.PlutusScript
	Network           wallet.CardanoNetworkType
	// BtcParams is optional. When set deposits to addresses of other btc networks are skipped
	BtcParams    *chaincfg.Params
	PollInterval time.Duration
}

// Scanner stores new bridge deposits found at the guardian address
type Scanner struct {
	config    ScannerConfig
	retriever wallet.IUTxORetriever
	db        depositdb.Database
	options   []DecoderOption
	logger    hclog.Logger
}

func NewScanner(
	config ScannerConfig, retriever wallet.IUTxORetriever, db depositdb.Database, logger hclog.Logger,
	options ...DecoderOption,
) *Scanner {
	return &Scanner{
		config:    config,
		retriever: retriever,
		db:        db,
		options:   append([]DecoderOption{WithLogger(logger)}, options...),
		logger:    logger,
	}
}

// Scan decodes current deposits and returns those not stored before
func (s *Scanner) Scan(ctx context.Context) ([]*depositdb.Deposit, error) {
	items, err := DecodeValidOnly(ctx, s.retriever, s.config.GuardianValidator, s.config.Network, s.options...)
	if err != nil {
		return nil, err
	}

	deposits := make([]*depositdb.Deposit, 0, len(items))

	for _, item := range items {
		if s.config.BtcParams != nil {
			if err := item.Datum.ValidateBtcAddress(s.config.BtcParams); err != nil {
				s.logger.Warn("deposit skipped", "utxo", item.Utxo.Ref(), "err", err)

				continue
			}
		}

		deposits = append(deposits, item.ToDeposit())
	}

	added, err := s.db.AddDeposits(deposits)
	if err != nil {
		return nil, fmt.Errorf("failed to store deposits: %w", err)
	}

	for _, deposit := range added {
		s.logger.Info("new deposit", "utxo", deposit.Ref(), "amount", deposit.BridgeAmount,
			"btc", deposit.BtcAddress, "cardano", deposit.CardanoAddress)
	}

	return added, nil
}

// Start scans periodically until the context is done
func (s *Scanner) Start(ctx context.Context) {
	s.logger.Debug("scanner started", "interval", s.config.PollInterval)

	for {
		if _, err := s.Scan(ctx); err != nil {
			s.logger.Error("scan failed", "err", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Debug("scanner stopped")

			return
		case <-time.After(s.config.PollInterval):
		}
	}
}
