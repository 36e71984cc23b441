package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ethernal-Tech/cardano-guardian/depositdb/db"
	"github.com/Ethernal-Tech/cardano-guardian/logger"
	"github.com/Ethernal-Tech/cardano-guardian/script"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hashicorp/go-hclog"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "GUARDIAN"

const (
	ProviderBlockfrost = "blockfrost"
	ProviderOgmios     = "ogmios"
	ProviderNode       = "node"
)

var ErrInvalidConfig = errors.New("invalid config")

type ProviderConfig struct {
	Type       string `yaml:"type" split_words:"true"`
	URL        string `yaml:"url" split_words:"true"`
	ProjectID  string `yaml:"projectId" split_words:"true"`
	SocketPath string `yaml:"socketPath" split_words:"true"`
	// KeepAlive and AcquireTimeout only apply to the node provider
	KeepAlive      bool          `yaml:"keepAlive" split_words:"true"`
	AcquireTimeout time.Duration `yaml:"acquireTimeout" split_words:"true"`
}

type BlueprintConfig struct {
	Path   string                 `yaml:"path" split_words:"true"`
	Titles script.BlueprintTitles `yaml:"titles" ignored:"true"`
}

// DeploymentConfig holds the script parameters of a bridge deployment
type DeploymentConfig struct {
	PubKeyHash  string `yaml:"pubKeyHash" split_words:"true"`
	TxHash      string `yaml:"txHash" split_words:"true"`
	OutputIndex uint64 `yaml:"outputIndex" split_words:"true"`
}

type DatabaseConfig struct {
	Type string `yaml:"type" split_words:"true"`
	Path string `yaml:"path" split_words:"true"`
}

type LoggingConfig struct {
	Level               string                      `yaml:"level" split_words:"true"`
	JSONFormat          bool                        `yaml:"jsonFormat" split_words:"true"`
	FilePath            string                      `yaml:"filePath" split_words:"true"`
	AppendFile          bool                        `yaml:"appendFile" split_words:"true"`
	RotatingLogsEnabled bool                        `yaml:"rotatingLogsEnabled" split_words:"true"`
	Rotating            logger.RotatingLoggerConfig `yaml:"rotating" ignored:"true"`
}

// Config is the cli configuration. Nested fields are read from GUARDIAN_<SECTION>_<FIELD>,
// for example GUARDIAN_PROVIDER_URL or GUARDIAN_DEPLOYMENT_TX_HASH
type Config struct {
	Network      string           `yaml:"network" split_words:"true"`
	BtcNetwork   string           `yaml:"btcNetwork" split_words:"true"`
	PollInterval time.Duration    `yaml:"pollInterval" split_words:"true"`
	SecretsDir   string           `yaml:"secretsDir" split_words:"true"`
	Provider     ProviderConfig   `yaml:"provider"`
	Blueprint    BlueprintConfig  `yaml:"blueprint"`
	Deployment   DeploymentConfig `yaml:"deployment"`
	Database     DatabaseConfig   `yaml:"database"`
	Logging      LoggingConfig    `yaml:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		Network:      "preprod",
		PollInterval: time.Minute,
		SecretsDir:   "secrets",
		Provider: ProviderConfig{
			Type:           ProviderBlockfrost,
			KeepAlive:      true,
			AcquireTimeout: 2 * time.Second,
		},
		Blueprint: BlueprintConfig{
			Path:   "plutus.json",
			Titles: script.DefaultBlueprintTitles(),
		},
		Database: DatabaseConfig{
			Type: db.BBoltName,
			Path: filepath.Join("data", "deposits.db"),
		},
		Logging: LoggingConfig{
			Level:      "info",
			AppendFile: true,
		},
	}
}

// LoadConfig reads the optional yaml file over the defaults and applies GUARDIAN_* environment variables
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, _, ok := wallet.NetworkFromName(c.Network); !ok {
		return fmt.Errorf("%w: unknown network %q", ErrInvalidConfig, c.Network)
	}

	if c.BtcNetwork != "" {
		if _, err := c.BtcParams(); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Provider.Type) {
	case ProviderBlockfrost, ProviderOgmios:
		if c.Provider.URL == "" {
			return fmt.Errorf("%w: provider url is required for %s", ErrInvalidConfig, c.Provider.Type)
		}
	case ProviderNode:
		if c.Provider.SocketPath == "" {
			return fmt.Errorf("%w: socket path is required for node provider", ErrInvalidConfig)
		}

		if c.Provider.AcquireTimeout < 0 {
			return fmt.Errorf("%w: acquire timeout can not be negative", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, c.Provider.Type)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidConfig)
	}

	return nil
}

// CardanoNetwork returns the address network and the protocol magic
func (c *Config) CardanoNetwork() (wallet.CardanoNetworkType, uint32) {
	network, magic, _ := wallet.NetworkFromName(c.Network)

	return network, magic
}

// BtcParams returns nil params when no btc network is configured
func (c *Config) BtcParams() (*chaincfg.Params, error) {
	switch strings.ToLower(c.BtcNetwork) {
	case "":
		return nil, nil
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("%w: unknown btc network %q", ErrInvalidConfig, c.BtcNetwork)
	}
}

// BuildArgs decodes the deployment parameters
func (c *Config) BuildArgs() (script.BuildArgs, error) {
	pubKeyHash, err := hex.DecodeString(c.Deployment.PubKeyHash)
	if err != nil || len(pubKeyHash) != wallet.KeyHashSize {
		return script.BuildArgs{}, fmt.Errorf("%w: pub key hash must be %d hex bytes", ErrInvalidConfig, wallet.KeyHashSize)
	}

	txHash, err := hex.DecodeString(c.Deployment.TxHash)
	if err != nil || len(txHash) != wallet.KeySize {
		return script.BuildArgs{}, fmt.Errorf("%w: tx hash must be %d hex bytes", ErrInvalidConfig, wallet.KeySize)
	}

	return script.BuildArgs{
		PubKeyHash:  pubKeyHash,
		TxHash:      txHash,
		OutputIndex: c.Deployment.OutputIndex,
	}, nil
}

func (c *Config) LoggerConfig(name string) logger.LoggerConfig {
	return logger.LoggerConfig{
		LogLevel:            hclog.LevelFromString(c.Logging.Level),
		JSONLogFormat:       c.Logging.JSONFormat,
		AppendFile:          c.Logging.AppendFile,
		LogFilePath:         c.Logging.FilePath,
		Name:                name,
		RotatingLogsEnabled: c.Logging.RotatingLogsEnabled,
		RotatingLogger:      c.Logging.Rotating,
	}
}

// NewUTxOProvider creates the configured utxo provider
func (c *Config) NewUTxOProvider(log hclog.Logger) (wallet.IUTxOProvider, error) {
	switch strings.ToLower(c.Provider.Type) {
	case ProviderBlockfrost:
		return wallet.NewTxProviderBlockFrost(c.Provider.URL, c.Provider.ProjectID), nil
	case ProviderOgmios:
		return wallet.NewTxProviderOgmios(c.Provider.URL), nil
	case ProviderNode:
		_, magic := c.CardanoNetwork()

		return wallet.NewTxProviderGoUroBoros(magic, c.Provider.SocketPath,
			wallet.WithTxProviderGoUroBorosKeepAlive(c.Provider.KeepAlive),
			wallet.WithTxProviderGoUroBorosAcquireTimeout(c.Provider.AcquireTimeout),
			wallet.WithTxProviderGoUroBorosLogger(log)), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, c.Provider.Type)
	}
}
