package helper

import (
	"path/filepath"
	"testing"

	"github.com/Ethernal-Tech/cardano-guardian/secrets"
	"github.com/stretchr/testify/require"
)

func TestGuardianWallet(t *testing.T) {
	t.Parallel()

	secretsManager, err := SetupLocalSecretsManager(t.TempDir())
	require.NoError(t, err)

	_, err = LoadGuardianWallet(secretsManager)
	require.ErrorIs(t, err, secrets.ErrSecretNotFound)

	created, err := CreateGuardianWallet(secretsManager, false)
	require.NoError(t, err)

	loaded, err := LoadGuardianWallet(secretsManager)
	require.NoError(t, err)
	require.Equal(t, created, loaded)

	_, err = CreateGuardianWallet(secretsManager, false)
	require.ErrorIs(t, err, secrets.ErrSecretExists)

	replaced, err := CreateGuardianWallet(secretsManager, true)
	require.NoError(t, err)
	require.NotEqual(t, created.SigningKey, replaced.SigningKey)

	loaded, err = LoadGuardianWallet(secretsManager)
	require.NoError(t, err)
	require.Equal(t, replaced, loaded)
}

func TestInitSecretsManager(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "secrets.json")

	config := &secrets.SecretsManagerConfig{
		Type: secrets.Local,
		Path: filepath.Join(dir, "secrets"),
		Name: "guardian",
	}
	require.NoError(t, config.WriteConfig(configPath))

	readConfig, err := secrets.ReadConfig(configPath)
	require.NoError(t, err)
	require.Equal(t, config, readConfig)

	secretsManager, err := InitSecretsManager(readConfig)
	require.NoError(t, err)
	require.NoError(t, secretsManager.SetSecret(secrets.GuardianSigningKey, []byte("invalid")))

	_, err = LoadGuardianWallet(secretsManager)
	require.Error(t, err)

	_, err = InitSecretsManager(&secrets.SecretsManagerConfig{Type: "vault", Path: dir})
	require.ErrorIs(t, err, secrets.ErrUnsupportedSecretsManager)
}
