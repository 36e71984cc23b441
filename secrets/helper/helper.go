package helper

import (
	"fmt"
	"strings"

	"github.com/Ethernal-Tech/cardano-guardian/secrets"
	"github.com/Ethernal-Tech/cardano-guardian/secrets/local"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
)

// SetupLocalSecretsManager is a helper method for boilerplate local secrets manager setup
func SetupLocalSecretsManager(dataDir string) (secrets.SecretsManager, error) {
	return local.SecretsManagerFactory(&secrets.SecretsManagerConfig{
		Type: secrets.Local,
		Path: dataDir,
	})
}

// InitSecretsManager returns the secrets manager described by the config
func InitSecretsManager(config *secrets.SecretsManagerConfig) (secrets.SecretsManager, error) {
	switch config.Type {
	case secrets.Local, "":
		return local.SecretsManagerFactory(config)
	default:
		return nil, fmt.Errorf("%w: %s", secrets.ErrUnsupportedSecretsManager, config.Type)
	}
}

// CreateGuardianWallet generates the guardian key and stores it. With force an existing key is replaced
func CreateGuardianWallet(secretsManager secrets.SecretsManager, force bool) (*wallet.Wallet, error) {
	if secretsManager.HasSecret(secrets.GuardianSigningKey) {
		if !force {
			return nil, fmt.Errorf("%w: %s", secrets.ErrSecretExists, secrets.GuardianSigningKey)
		}

		if err := secretsManager.RemoveSecret(secrets.GuardianSigningKey); err != nil {
			return nil, err
		}
	}

	guardianWallet, err := wallet.GenerateWallet()
	if err != nil {
		return nil, err
	}

	privateKey, err := guardianWallet.PrivateKeyBech32()
	if err != nil {
		return nil, err
	}

	if err := secretsManager.SetSecret(secrets.GuardianSigningKey, []byte(privateKey)); err != nil {
		return nil, err
	}

	return guardianWallet, nil
}

// LoadGuardianWallet reads the stored guardian key
func LoadGuardianWallet(secretsManager secrets.SecretsManager) (*wallet.Wallet, error) {
	bytes, err := secretsManager.GetSecret(secrets.GuardianSigningKey)
	if err != nil {
		return nil, err
	}

	guardianWallet, err := wallet.NewWalletFromBech32(strings.TrimSpace(string(bytes)))
	if err != nil {
		return nil, fmt.Errorf("invalid guardian signing key: %w", err)
	}

	return guardianWallet, nil
}
