package main

import (
	"errors"
	"fmt"

	"github.com/Ethernal-Tech/cardano-guardian/config"
	depositcore "github.com/Ethernal-Tech/cardano-guardian/depositdb"
	depositdb "github.com/Ethernal-Tech/cardano-guardian/depositdb/db"
	"github.com/Ethernal-Tech/cardano-guardian/guardian"
	"github.com/Ethernal-Tech/cardano-guardian/logger"
	"github.com/Ethernal-Tech/cardano-guardian/script"
	secretsHelper "github.com/Ethernal-Tech/cardano-guardian/secrets/helper"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
	"github.com/spf13/cobra"
)

func scanCommand() *cobra.Command {
	var (
		all    bool
		watch  bool
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Decode bridge deposits locked at the guardian validator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if dbPath != "" {
				cfg.Database.Path = dbPath
			}

			log, err := logger.NewLogger(cfg.LoggerConfig("scan"))
			if err != nil {
				return err
			}

			bundle, err := buildBundle(cfg)
			if err != nil {
				return err
			}

			provider, err := cfg.NewUTxOProvider(log)
			if err != nil {
				return err
			}

			defer provider.Dispose()

			network, _ := cfg.CardanoNetwork()
			ctx := cmd.Context()

			if all {
				items, err := guardian.DecodeAll(ctx, provider, bundle.GuardianValidator, network,
					guardian.WithLogger(log))
				if err != nil {
					return err
				}

				return printJSON(items)
			}

			btcParams, err := cfg.BtcParams()
			if err != nil {
				return err
			}

			db, err := depositdb.NewDatabaseInit(cfg.Database.Type, cfg.Database.Path)
			if err != nil {
				return err
			}

			defer db.Close()

			scanner := guardian.NewScanner(guardian.ScannerConfig{
				GuardianValidator: bundle.GuardianValidator,
				Network:           network,
				BtcParams:         btcParams,
				PollInterval:      cfg.PollInterval,
			}, provider, db, log)

			if watch {
				scanner.Start(ctx)

				return nil
			}

			added, err := scanner.Scan(ctx)
			if err != nil {
				return err
			}

			return printJSON(added)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "print every utxo at the guardian address including invalid datums")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep scanning every poll interval")
	cmd.Flags().StringVar(&dbPath, "db", "", "deposit database path, overrides the config")

	return cmd
}

func pendingCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List stored deposits that are not processed yet",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDepositDB(dbPath)
			if err != nil {
				return err
			}

			defer db.Close()

			deposits, err := db.GetUnprocessedDeposits(0)
			if err != nil {
				return err
			}

			return printJSON(deposits)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "deposit database path, overrides the config")

	return cmd
}

func markProcessedCommand() *cobra.Command {
	var (
		all    bool
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "mark-processed [hash#index...]",
		Short: "Move stored deposits to the processed set",
		RunE: func(_ *cobra.Command, refs []string) error {
			if all == (len(refs) > 0) {
				return errors.New("pass either deposit references or --all")
			}

			db, err := openDepositDB(dbPath)
			if err != nil {
				return err
			}

			defer db.Close()

			marked, err := depositcore.MarkProcessed(db, refs)
			if err != nil {
				return err
			}

			return printJSON(marked)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "mark every unprocessed deposit")
	cmd.Flags().StringVar(&dbPath, "db", "", "deposit database path, overrides the config")

	return cmd
}

// openDepositDB does not need provider settings so a missing config file falls back to defaults
func openDepositDB(dbPath string) (depositcore.Database, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := loadConfig()
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	return depositdb.NewDatabaseInit(cfg.Database.Type, cfg.Database.Path)
}

type scriptInfo struct {
	Version string `json:"version"`
	Hash    string `json:"hash"`
	Address string `json:"address"`
	CborHex string `json:"cborHex"`
}

func buildScriptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build-scripts",
		Short: "Parameterize the blueprint scripts of the configured deployment",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			bundle, err := buildBundle(cfg)
			if err != nil {
				return err
			}

			network, _ := cfg.CardanoNetwork()
			result := map[string]scriptInfo{}

			for name, s := range bundle.Scripts() {
				info, err := newScriptInfo(s, network)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}

				result[name] = info
			}

			return printJSON(result)
		},
	}
}

func keygenCommand() *cobra.Command {
	var (
		secretsDir string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate the guardian signing key and store it locally",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.DefaultConfig()

			if configFile != "" {
				loaded, err := loadConfig()
				if err != nil {
					return err
				}

				cfg = loaded
			}

			if secretsDir == "" {
				secretsDir = cfg.SecretsDir
			}

			secretsManager, err := secretsHelper.SetupLocalSecretsManager(secretsDir)
			if err != nil {
				return err
			}

			guardianWallet, err := secretsHelper.CreateGuardianWallet(secretsManager, force)
			if err != nil {
				return err
			}

			network, _ := cfg.CardanoNetwork()

			keyHash, err := guardianWallet.GetKeyHash()
			if err != nil {
				return err
			}

			address, err := guardianWallet.GetAddress(network)
			if err != nil {
				return err
			}

			publicKey, err := guardianWallet.PublicKeyBech32()
			if err != nil {
				return err
			}

			return printJSON(map[string]string{
				"pubKeyHash": keyHash,
				"publicKey":  publicKey,
				"address":    address,
			})
		},
	}

	cmd.Flags().StringVar(&secretsDir, "secrets-dir", "", "secrets directory, overrides the config")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing key")

	return cmd
}

func buildBundle(cfg *config.Config) (*script.ScriptBundle, error) {
	templates, err := script.LoadBlueprint(cfg.Blueprint.Path, cfg.Blueprint.Titles)
	if err != nil {
		return nil, err
	}

	args, err := cfg.BuildArgs()
	if err != nil {
		return nil, err
	}

	return script.BuildScripts(templates, args.PubKeyHash, args.TxHash, args.OutputIndex)
}

func newScriptInfo(s script.PlutusScript, network wallet.CardanoNetworkType) (scriptInfo, error) {
	hash, err := s.PolicyID()
	if err != nil {
		return scriptInfo{}, err
	}

	addr, err := s.Address(network)
	if err != nil {
		return scriptInfo{}, err
	}

	cborHex, err := s.CBORHex()
	if err != nil {
		return scriptInfo{}, err
	}

	return scriptInfo{
		Version: s.Version.String(),
		Hash:    hash,
		Address: addr.String(),
		CborHex: cborHex,
	}, nil
}
