package script

import (
	"errors"
	"fmt"

	"github.com/Ethernal-Tech/cardano-guardian/plutusdata"
	"github.com/hashicorp/go-hclog"
)

const (
	MultiSigValidatorName     = "multiSigValidator"
	MultiSigMintingPolicyName = "multiSigMintingPolicy"
	GuardianValidatorName     = "guardianValidator"
	WrapMintingPolicyName     = "wrapMintingPolicy"
)

var ErrMissingStepInput = errors.New("missing build step input")

// BuildArgs are the deployment specific values the scripts are parameterized with
type BuildArgs struct {
	PubKeyHash  []byte
	TxHash      []byte
	OutputIndex uint64
}

// ParamSource produces one parameter of a build step from the arguments and scripts built so far
type ParamSource func(args BuildArgs, built map[string]PlutusScript) (plutusdata.Data, error)

// BuildStep parameterizes Template and stores the result under Name
type BuildStep struct {
	Name     string
	Template string
	Params   []ParamSource
}

// Applier applies parameters to a script. ApplyParams is the default
type Applier func(script PlutusScript, params ...plutusdata.Data) (PlutusScript, error)

// ScriptBundle holds all scripts of a deployment
type ScriptBundle struct {
	MultiSigValidator     PlutusScript
	MultiSigMintingPolicy PlutusScript
	GuardianValidator     PlutusScript
	WrapMintingPolicy     PlutusScript
}

func (sb ScriptBundle) Equal(other ScriptBundle) bool {
	return sb.MultiSigValidator.Equal(other.MultiSigValidator) &&
		sb.MultiSigMintingPolicy.Equal(other.MultiSigMintingPolicy) &&
		sb.GuardianValidator.Equal(other.GuardianValidator) &&
		sb.WrapMintingPolicy.Equal(other.WrapMintingPolicy)
}

// Scripts returns bundle scripts keyed by name
func (sb ScriptBundle) Scripts() map[string]PlutusScript {
	return map[string]PlutusScript{
		MultiSigValidatorName:     sb.MultiSigValidator,
		MultiSigMintingPolicyName: sb.MultiSigMintingPolicy,
		GuardianValidatorName:     sb.GuardianValidator,
		WrapMintingPolicyName:     sb.WrapMintingPolicy,
	}
}

// DefaultBuildPlan returns the ordered steps of a guardian deployment.
// The minting policy is bound to a single output reference so it can mint only once,
// the guardian validator to that policy and the wrap minting policy to the guardian validator.
func DefaultBuildPlan() []BuildStep {
	return []BuildStep{
		{
			Name:     MultiSigMintingPolicyName,
			Template: MultiSigMintingPolicyName,
			Params: []ParamSource{
				PubKeyHashParam(),
				ScriptHashParam(MultiSigValidatorName),
				OutputReferenceParam(),
			},
		},
		{
			Name:     GuardianValidatorName,
			Template: GuardianValidatorName,
			Params: []ParamSource{
				ScriptHashParam(MultiSigValidatorName),
				ScriptHashParam(MultiSigMintingPolicyName),
			},
		},
		{
			Name:     WrapMintingPolicyName,
			Template: WrapMintingPolicyName,
			Params: []ParamSource{
				ScriptHashParam(GuardianValidatorName),
			},
		},
	}
}

func PubKeyHashParam() ParamSource {
	return func(args BuildArgs, _ map[string]PlutusScript) (plutusdata.Data, error) {
		return plutusdata.NewByteString(args.PubKeyHash), nil
	}
}

// ScriptHashParam is the hash of an already built script. For minting policies this is the policy id
func ScriptHashParam(name string) ParamSource {
	return func(_ BuildArgs, built map[string]PlutusScript) (plutusdata.Data, error) {
		script, exists := built[name]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrMissingStepInput, name)
		}

		hash, err := script.Hash()
		if err != nil {
			return nil, err
		}

		return plutusdata.NewByteString(hash), nil
	}
}

// OutputReferenceParam encodes TxOutRef: Constr 0 [Constr 0 [txHash], outputIndex]
func OutputReferenceParam() ParamSource {
	return func(args BuildArgs, _ map[string]PlutusScript) (plutusdata.Data, error) {
		return plutusdata.NewConstr(0,
			plutusdata.NewConstr(0, plutusdata.NewByteString(args.TxHash)),
			plutusdata.NewUint64(args.OutputIndex),
		), nil
	}
}

type builderConfig struct {
	plan    []BuildStep
	applier Applier
	logger  hclog.Logger
}

type BuilderOption func(*builderConfig)

func WithBuildPlan(plan []BuildStep) BuilderOption {
	return func(c *builderConfig) {
		c.plan = plan
	}
}

func WithApplier(applier Applier) BuilderOption {
	return func(c *builderConfig) {
		c.applier = applier
	}
}

func WithBuilderLogger(logger hclog.Logger) BuilderOption {
	return func(c *builderConfig) {
		c.logger = logger
	}
}

type Builder struct {
	config builderConfig
}

func NewBuilder(options ...BuilderOption) *Builder {
	config := builderConfig{
		plan:    DefaultBuildPlan(),
		applier: ApplyParams,
		logger:  hclog.NewNullLogger(),
	}

	for _, opt := range options {
		opt(&config)
	}

	return &Builder{
		config: config,
	}
}

// Build executes the plan. The multisig validator template is used as is
func (b *Builder) Build(templates TemplateSet, args BuildArgs) (*ScriptBundle, error) {
	multiSigValidator, err := templates.get(MultiSigValidatorName)
	if err != nil {
		return nil, err
	}

	built := map[string]PlutusScript{
		MultiSigValidatorName: multiSigValidator,
	}

	for _, step := range b.config.plan {
		template, err := templates.get(step.Template)
		if err != nil {
			return nil, err
		}

		params := make([]plutusdata.Data, len(step.Params))

		for i, source := range step.Params {
			params[i], err = source(args, built)
			if err != nil {
				return nil, fmt.Errorf("step %s parameter %d: %w", step.Name, i, err)
			}
		}

		script, err := b.config.applier(template, params...)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step.Name, err)
		}

		built[step.Name] = script

		b.config.logger.Debug("script built", "name", step.Name, "params", len(params))
	}

	bundle := &ScriptBundle{}

	for name, dst := range map[string]*PlutusScript{
		MultiSigValidatorName:     &bundle.MultiSigValidator,
		MultiSigMintingPolicyName: &bundle.MultiSigMintingPolicy,
		GuardianValidatorName:     &bundle.GuardianValidator,
		WrapMintingPolicyName:     &bundle.WrapMintingPolicy,
	} {
		script, exists := built[name]
		if !exists {
			return nil, fmt.Errorf("%w: %s was not built", ErrMissingStepInput, name)
		}

		*dst = script
	}

	return bundle, nil
}

// BuildScripts parameterizes deployment templates with the default plan
func BuildScripts(templates TemplateSet, pubKeyHash []byte, txHash []byte, outputIndex uint64) (*ScriptBundle, error) {
	return NewBuilder().Build(templates, BuildArgs{
		PubKeyHash:  pubKeyHash,
		TxHash:      txHash,
		OutputIndex: outputIndex,
	})
}
