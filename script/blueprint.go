package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrMissingTemplate = errors.New("missing script template")

// TemplateSet holds the unparameterized scripts of a deployment
type TemplateSet struct {
	MultiSigValidator     PlutusScript
	MultiSigMintingPolicy PlutusScript
	GuardianValidator     PlutusScript
	WrapMintingPolicy     PlutusScript
}

func (ts TemplateSet) get(name string) (PlutusScript, error) {
	var script PlutusScript

	switch name {
	case MultiSigValidatorName:
		script = ts.MultiSigValidator
	case MultiSigMintingPolicyName:
		script = ts.MultiSigMintingPolicy
	case GuardianValidatorName:
		script = ts.GuardianValidator
	case WrapMintingPolicyName:
		script = ts.WrapMintingPolicy
	}

	if script.IsEmpty() {
		return PlutusScript{}, fmt.Errorf("%w: %s", ErrMissingTemplate, name)
	}

	return script, nil
}

// BlueprintTitles maps the deployment scripts to validator titles inside of a blueprint
type BlueprintTitles struct {
	MultiSigValidator     string `json:"multiSigValidator" yaml:"multiSigValidator"`
	MultiSigMintingPolicy string `json:"multiSigMintingPolicy" yaml:"multiSigMintingPolicy"`
	GuardianValidator     string `json:"guardianValidator" yaml:"guardianValidator"`
	WrapMintingPolicy     string `json:"wrapMintingPolicy" yaml:"wrapMintingPolicy"`
}

func DefaultBlueprintTitles() BlueprintTitles {
	return BlueprintTitles{
		MultiSigValidator:     MultiSigValidatorName,
		MultiSigMintingPolicy: MultiSigMintingPolicyName,
		GuardianValidator:     GuardianValidatorName,
		WrapMintingPolicy:     WrapMintingPolicyName,
	}
}

type blueprintValidator struct {
	Title        string `json:"title"`
	CompiledCode string `json:"compiledCode"`
	Hash         string `json:"hash"`
}

type blueprint struct {
	Preamble struct {
		Title         string `json:"title"`
		PlutusVersion string `json:"plutusVersion"`
	} `json:"preamble"`
	Validators []blueprintValidator `json:"validators"`
}

// LoadBlueprint reads templates from a CIP-57 plutus.json file
func LoadBlueprint(path string, titles BlueprintTitles) (TemplateSet, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return TemplateSet{}, fmt.Errorf("failed to read blueprint: %w", err)
	}

	return ParseBlueprint(bytes, titles)
}

func ParseBlueprint(bytes []byte, titles BlueprintTitles) (TemplateSet, error) {
	var bp blueprint

	if err := json.Unmarshal(bytes, &bp); err != nil {
		return TemplateSet{}, fmt.Errorf("failed to parse blueprint: %w", err)
	}

	var (
		version = PlutusV2
		err     error
	)

	if bp.Preamble.PlutusVersion != "" {
		version, err = PlutusVersionFromString(bp.Preamble.PlutusVersion)
		if err != nil {
			return TemplateSet{}, err
		}
	}

	codes := make(map[string]string, len(bp.Validators))
	for _, v := range bp.Validators {
		codes[v.Title] = v.CompiledCode
	}

	get := func(title string) (PlutusScript, error) {
		code, exists := codes[title]
		if !exists || code == "" {
			return PlutusScript{}, fmt.Errorf("%w: validator %s not found in blueprint", ErrMissingTemplate, title)
		}

		script, err := NewPlutusScriptFromHex(version, code)
		if err != nil {
			return PlutusScript{}, fmt.Errorf("validator %s: %w", title, err)
		}

		return script, nil
	}

	var ts TemplateSet

	if ts.MultiSigValidator, err = get(titles.MultiSigValidator); err != nil {
		return TemplateSet{}, err
	}

	if ts.MultiSigMintingPolicy, err = get(titles.MultiSigMintingPolicy); err != nil {
		return TemplateSet{}, err
	}

	if ts.GuardianValidator, err = get(titles.GuardianValidator); err != nil {
		return TemplateSet{}, err
	}

	if ts.WrapMintingPolicy, err = get(titles.WrapMintingPolicy); err != nil {
		return TemplateSet{}, err
	}

	return ts, nil
}
