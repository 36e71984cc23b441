package secrets

import (
	"errors"
	"strings"
)

// Secret names
const (
	// GuardianSigningKey is the ed25519 signing key whose hash parameterizes the multisig minting policy
	GuardianSigningKey = "guardian_signing_key"
	// CardanoKeyLocalPrefix prefixes any additional cardano key stored by name
	CardanoKeyLocalPrefix = "cardano_"
)

// Local folders and file names
const (
	GuardianFolderLocal      = "guardian"
	GuardianSigningKeyLocal  = "signing.key"
	CardanoFolderLocal       = "cardano"
	secretFileExtensionLocal = ".key"
)

type SecretsManagerType string

const (
	Local SecretsManagerType = "local"
)

var (
	ErrSecretNotFound             = errors.New("secret not found")
	ErrSecretExists               = errors.New("secret already exists")
	ErrUnsupportedSecretsManager  = errors.New("unsupported secrets manager")
	ErrSecretsManagerPathNotFound = errors.New("no path specified for local secrets manager")
)

// SecretsManager stores and retrieves secrets by name
type SecretsManager interface {
	GetSecret(name string) ([]byte, error)
	SetSecret(name string, value []byte) error
	HasSecret(name string) bool
	RemoveSecret(name string) error
}

// FileNameFor converts secret names like cardano_relay_key to relay.key
func FileNameFor(name string) string {
	if base, ok := strings.CutSuffix(name, "_key"); ok && base != "" {
		return base + secretFileExtensionLocal
	}

	return name
}
