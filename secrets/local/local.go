package local

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Ethernal-Tech/cardano-guardian/common"
	"github.com/Ethernal-Tech/cardano-guardian/secrets"
)

// LocalSecretsManager is a SecretsManager that stores secrets locally on disk
type LocalSecretsManager struct {
	path string

	// known secrets and their directories
	secretPathMap     map[string]string
	secretPathMapLock sync.RWMutex
}

var _ secrets.SecretsManager = (*LocalSecretsManager)(nil)

func SecretsManagerFactory(config *secrets.SecretsManagerConfig) (*LocalSecretsManager, error) {
	if config.Path == "" {
		return nil, secrets.ErrSecretsManagerPathNotFound
	}

	localManager := &LocalSecretsManager{
		secretPathMap: make(map[string]string),
		path:          config.Path,
	}

	if err := localManager.Setup(); err != nil {
		return nil, err
	}

	return localManager, nil
}

// Setup creates the secrets directories
func (l *LocalSecretsManager) Setup() error {
	l.secretPathMapLock.Lock()
	defer l.secretPathMapLock.Unlock()

	subDirectories := []string{secrets.GuardianFolderLocal, secrets.CardanoFolderLocal}

	if err := common.SetupDataDir(l.path, subDirectories, 0750); err != nil {
		return err
	}

	// baseDir/guardian/
	l.secretPathMap[secrets.GuardianSigningKey] = filepath.Join(l.path, secrets.GuardianFolderLocal)
	// baseDir/cardano/
	l.secretPathMap[secrets.CardanoKeyLocalPrefix] = filepath.Join(l.path, secrets.CardanoFolderLocal)

	return nil
}

func (l *LocalSecretsManager) GetSecret(name string) ([]byte, error) {
	secretPath, err := l.secretPath(name)
	if err != nil {
		return nil, err
	}

	secret, err := os.ReadFile(secretPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", secrets.ErrSecretNotFound, secretPath)
		}

		return nil, fmt.Errorf("unable to read secret from disk (%s): %w", secretPath, err)
	}

	return secret, nil
}

// SetSecret writes the secret once. Existing secrets are never overwritten
func (l *LocalSecretsManager) SetSecret(name string, value []byte) error {
	secretPath, err := l.secretPath(name)
	if err != nil {
		return err
	}

	if common.FileExists(secretPath) {
		return fmt.Errorf("%w: %s", secrets.ErrSecretExists, secretPath)
	}

	if err := common.SaveFileSafe(secretPath, value, 0440); err != nil {
		return fmt.Errorf("unable to write secret to disk (%s): %w", secretPath, err)
	}

	return nil
}

func (l *LocalSecretsManager) HasSecret(name string) bool {
	secretPath, err := l.secretPath(name)

	return err == nil && common.FileExists(secretPath)
}

func (l *LocalSecretsManager) RemoveSecret(name string) error {
	secretPath, err := l.secretPath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(secretPath); err != nil {
		return fmt.Errorf("unable to remove secret: %w", err)
	}

	return nil
}

func (l *LocalSecretsManager) secretPath(name string) (string, error) {
	key, fileName := name, secrets.GuardianSigningKeyLocal

	if rest, ok := strings.CutPrefix(name, secrets.CardanoKeyLocalPrefix); ok {
		key, fileName = secrets.CardanoKeyLocalPrefix, secrets.FileNameFor(rest)
		if fileName == "" {
			return "", fmt.Errorf("%w: %s", secrets.ErrSecretNotFound, name)
		}
	}

	l.secretPathMapLock.RLock()
	dir, ok := l.secretPathMap[key]
	l.secretPathMapLock.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", secrets.ErrSecretNotFound, name)
	}

	return filepath.Join(dir, fileName), nil
}
