package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ethernal-Tech/cardano-guardian/script"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

const testConfig = `
network: mainnet
btcNetwork: mainnet
pollInterval: 30s
provider:
  type: ogmios
  url: http://localhost:1337
blueprint:
  path: contracts/plutus.json
  titles:
    multiSigValidator: multisig.spend
    multiSigMintingPolicy: multisig.mint
    guardianValidator: guardian.spend
    wrapMintingPolicy: wrap.mint
deployment:
  pubKeyHash: 9493315cd92eb5d8c4304e67b7e16ae36d61d34502694657811a2c8e
  txHash: 0000000000000000000000000000000000000000000000000000000000000001
  outputIndex: 2
database:
  type: leveldb
  path: /tmp/deposits
logging:
  level: debug
  rotatingLogsEnabled: true
  filePath: logs/guardian.log
  rotating:
    maxSizeInMB: 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	require.Equal(t, "mainnet", cfg.Network)
	require.Equal(t, 30*time.Second, cfg.PollInterval)
	require.Equal(t, ProviderOgmios, cfg.Provider.Type)
	require.Equal(t, "guardian.spend", cfg.Blueprint.Titles.GuardianValidator)
	require.Equal(t, "leveldb", cfg.Database.Type)
	require.Equal(t, "secrets", cfg.SecretsDir)

	network, magic := cfg.CardanoNetwork()
	require.Equal(t, wallet.MainNetNetwork, network)
	require.Equal(t, wallet.MainNetProtocolMagic, magic)

	params, err := cfg.BtcParams()
	require.NoError(t, err)
	require.Equal(t, &chaincfg.MainNetParams, params)

	args, err := cfg.BuildArgs()
	require.NoError(t, err)
	require.Len(t, args.PubKeyHash, wallet.KeyHashSize)
	require.Len(t, args.TxHash, 32)
	require.Equal(t, uint64(2), args.OutputIndex)

	loggerConfig := cfg.LoggerConfig("scanner")
	require.Equal(t, hclog.Debug, loggerConfig.LogLevel)
	require.True(t, loggerConfig.RotatingLogsEnabled)
	require.Equal(t, 10, loggerConfig.RotatingLogger.MaxSizeInMB)
	require.Equal(t, "scanner", loggerConfig.Name)

	provider, err := cfg.NewUTxOProvider(hclog.NewNullLogger())
	require.NoError(t, err)
	require.IsType(t, &wallet.TxProviderOgmios{}, provider)

	provider.Dispose()
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("GUARDIAN_NETWORK", "preview")
	t.Setenv("GUARDIAN_PROVIDER_TYPE", "blockfrost")
	t.Setenv("GUARDIAN_PROVIDER_URL", "https://cardano-preview.blockfrost.io/api/v0")
	t.Setenv("GUARDIAN_PROVIDER_PROJECT_ID", "preview123")
	t.Setenv("GUARDIAN_DEPLOYMENT_OUTPUT_INDEX", "7")
	t.Setenv("GUARDIAN_POLL_INTERVAL", "5s")
	t.Setenv("GUARDIAN_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	require.Equal(t, "preview", cfg.Network)
	require.Equal(t, ProviderBlockfrost, cfg.Provider.Type)
	require.Equal(t, "preview123", cfg.Provider.ProjectID)
	require.Equal(t, uint64(7), cfg.Deployment.OutputIndex)
	require.Equal(t, 5*time.Second, cfg.PollInterval)
	require.Equal(t, hclog.Warn, cfg.LoggerConfig("").LogLevel)

	_, magic := cfg.CardanoNetwork()
	require.Equal(t, wallet.PreviewProtocolMagic, magic)

	provider, err := cfg.NewUTxOProvider(hclog.NewNullLogger())
	require.NoError(t, err)
	require.IsType(t, &wallet.TxProviderBlockFrost{}, provider)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GUARDIAN_PROVIDER_URL", "http://localhost:3000")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Database, cfg.Database)
	require.Equal(t, script.DefaultBlueprintTitles(), cfg.Blueprint.Titles)

	params, err := cfg.BtcParams()
	require.NoError(t, err)
	require.Nil(t, params)

	_, err = cfg.BuildArgs()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_NodeProvider(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
provider:
  type: node
  socketPath: /tmp/node.socket
`))
	require.NoError(t, err)
	require.True(t, cfg.Provider.KeepAlive)
	require.Equal(t, 2*time.Second, cfg.Provider.AcquireTimeout)

	cfg, err = LoadConfig(writeConfig(t, `
provider:
  type: node
  socketPath: /tmp/node.socket
  keepAlive: false
  acquireTimeout: 10s
`))
	require.NoError(t, err)
	require.False(t, cfg.Provider.KeepAlive)
	require.Equal(t, 10*time.Second, cfg.Provider.AcquireTimeout)

	t.Setenv("GUARDIAN_PROVIDER_ACQUIRE_TIMEOUT", "0s")
	t.Setenv("GUARDIAN_PROVIDER_KEEP_ALIVE", "true")

	cfg, err = LoadConfig(writeConfig(t, "provider:\n  type: node\n  socketPath: /tmp/node.socket\n  keepAlive: false"))
	require.NoError(t, err)
	require.True(t, cfg.Provider.KeepAlive)
	require.Zero(t, cfg.Provider.AcquireTimeout)

	provider, err := cfg.NewUTxOProvider(hclog.NewNullLogger())
	require.NoError(t, err)
	require.IsType(t, &wallet.TxProviderGoUroBoros{}, provider)

	provider.Dispose()
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "network: [1"))
	require.Error(t, err)

	for _, content := range []string{
		"network: guardiannet\nprovider:\n  url: http://x",
		"btcNetwork: litecoin\nprovider:\n  url: http://x",
		"provider:\n  type: ogmios",
		"provider:\n  type: node",
		"provider:\n  type: cli\n  url: http://x",
		"pollInterval: 0s\nprovider:\n  url: http://x",
		"provider:\n  type: node\n  socketPath: /tmp/node.socket\n  acquireTimeout: -1s",
	} {
		_, err := LoadConfig(writeConfig(t, content))
		require.ErrorIs(t, err, ErrInvalidConfig, content)
	}
}

func TestBuildArgs_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Deployment = DeploymentConfig{
		PubKeyHash: "9493315cd92eb5d8c4304e67b7e16ae36d61d34502694657811a2c8e",
		TxHash:     "abcd",
	}

	_, err := cfg.BuildArgs()
	require.ErrorIs(t, err, ErrInvalidConfig)
}
