package script

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Ethernal-Tech/cardano-guardian/plutusdata"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
	"github.com/blinklabs-io/plutigo/data"
	"github.com/fxamacker/cbor/v2"
)

// PlutusVersion is also the language tag prepended to the script bytes before hashing
type PlutusVersion byte

const (
	PlutusV1 PlutusVersion = 1
	PlutusV2 PlutusVersion = 2
	PlutusV3 PlutusVersion = 3

	// at most this many cbor byte string layers are removed from compiled code
	maxCborWrapping = 3
)

var ErrUnsupportedVersion = errors.New("unsupported plutus version")

func (v PlutusVersion) String() string {
	return fmt.Sprintf("PlutusV%d", byte(v))
}

// PlutusVersionFromString parses PlutusV2, v2, plutus_v2 and similar names
func PlutusVersionFromString(str string) (PlutusVersion, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(str))
	norm = strings.TrimPrefix(norm, "plutus")

	switch norm {
	case "v1":
		return PlutusV1, nil
	case "v2":
		return PlutusV2, nil
	case "v3":
		return PlutusV3, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedVersion, str)
	}
}

// PlutusScript is a flat encoded untyped plutus core program of some plutus version
type PlutusScript struct {
	Version PlutusVersion
	flat    []byte
}

func NewPlutusScript(version PlutusVersion, flat []byte) PlutusScript {
	return PlutusScript{
		Version: version,
		flat:    bytes.Clone(flat),
	}
}

// NewPlutusScriptFromHex accepts compiled code as raw flat bytes or wrapped in one or more cbor byte strings
func NewPlutusScriptFromHex(version PlutusVersion, compiledCode string) (PlutusScript, error) {
	if version < PlutusV1 || version > PlutusV3 {
		return PlutusScript{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	raw, err := hex.DecodeString(compiledCode)
	if err != nil {
		return PlutusScript{}, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}

	for i := 0; i < maxCborWrapping; i++ {
		var inner []byte
		if err := cbor.Unmarshal(raw, &inner); err != nil {
			break
		}

		raw = inner
	}

	if _, err := decodeProgram(raw); err != nil {
		return PlutusScript{}, err
	}

	return PlutusScript{
		Version: version,
		flat:    raw,
	}, nil
}

func (s PlutusScript) IsEmpty() bool {
	return len(s.flat) == 0
}

// Flat returns the flat encoded program
func (s PlutusScript) Flat() []byte {
	return bytes.Clone(s.flat)
}

// CBOR returns the program wrapped in a cbor byte string, the form that is hashed and put into transactions
func (s PlutusScript) CBOR() ([]byte, error) {
	return cbor.Marshal(s.flat)
}

// CBORHex returns double cbor wrapped hex, the form expected by cardano-cli text envelopes
func (s PlutusScript) CBORHex() (string, error) {
	single, err := s.CBOR()
	if err != nil {
		return "", err
	}

	double, err := cbor.Marshal(single)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(double), nil
}

// Hash returns blake2b-224 of language tag followed by the cbor wrapped program
func (s PlutusScript) Hash() ([]byte, error) {
	cborBytes, err := s.CBOR()
	if err != nil {
		return nil, err
	}

	return wallet.GetKeyHashBytes(append([]byte{byte(s.Version)}, cborBytes...))
}

// PolicyID is the hex encoded hash of a minting policy
func (s PlutusScript) PolicyID() (string, error) {
	hash, err := s.Hash()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(hash), nil
}

// Address returns enterprise address locked by this script
func (s PlutusScript) Address(network wallet.CardanoNetworkType) (*wallet.EnterpriseAddress, error) {
	hash, err := s.Hash()
	if err != nil {
		return nil, err
	}

	return wallet.NewScriptEnterpriseAddress(network, hash)
}

func (s PlutusScript) Equal(other PlutusScript) bool {
	return s.Version == other.Version && bytes.Equal(s.flat, other.flat)
}

// ApplyParams applies data parameters in order: the result is (...((program p1) p2)... pn)
func ApplyParams(script PlutusScript, params ...plutusdata.Data) (PlutusScript, error) {
	converted := make([]data.PlutusData, len(params))

	for i, param := range params {
		if param == nil {
			return PlutusScript{}, fmt.Errorf("parameter %d is nil", i)
		}

		pd, err := plutusdata.ToPlutigo(param)
		if err != nil {
			return PlutusScript{}, fmt.Errorf("failed to convert parameter %d: %w", i, err)
		}

		converted[i] = pd
	}

	flat, err := applyData(script.flat, converted)
	if err != nil {
		return PlutusScript{}, err
	}

	return PlutusScript{
		Version: script.Version,
		flat:    flat,
	}, nil
}
