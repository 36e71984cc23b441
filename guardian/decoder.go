package guardian

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ethernal-Tech/cardano-guardian/common"
	"github.com/Ethernal-Tech/cardano-guardian/plutusdata"
	"github.com/Ethernal-Tech/cardano-guardian/script"
	"github.com/Ethernal-Tech/cardano-guardian/wallet"
	"github.com/hashicorp/go-hclog"
)

var ErrDatumDecode = errors.New("failed to decode datum")

type decoderConfig struct {
	logger       hclog.Logger
	retryOptions []common.RetryConfigOption
}

type DecoderOption func(*decoderConfig)

func WithLogger(logger hclog.Logger) DecoderOption {
	return func(c *decoderConfig) {
		c.logger = logger
	}
}

func WithRetryOptions(options ...common.RetryConfigOption) DecoderOption {
	return func(c *decoderConfig) {
		c.retryOptions = options
	}
}

// DecodeAll decodes datums of all utxos at the guardian validator address.
// Datums which are not bridge deposits are returned with IsValid false
func DecodeAll(
	ctx context.Context, retriever wallet.IUTxORetriever, guardianValidator script.PlutusScript,
	network wallet.CardanoNetworkType, options ...DecoderOption,
) ([]DatumUtxo, error) {
	config := newDecoderConfig(options)

	utxos, err := getGuardianUtxos(ctx, retriever, guardianValidator, network, config)
	if err != nil {
		return nil, err
	}

	result := make([]DatumUtxo, 0, len(utxos))

	for _, utxo := range utxos {
		item, err := decodeUtxo(utxo, network)
		if err != nil {
			return nil, err
		}

		if !item.IsValid {
			config.logger.Debug("datum is not a bridge deposit", "utxo", utxo.Ref(), "datum", item.Raw)
		}

		result = append(result, item)
	}

	return result, nil
}

// DecodeValidOnly returns only the utxos whose datums are bridge deposits
func DecodeValidOnly(
	ctx context.Context, retriever wallet.IUTxORetriever, guardianValidator script.PlutusScript,
	network wallet.CardanoNetworkType, options ...DecoderOption,
) ([]ValidDatumUtxo, error) {
	all, err := DecodeAll(ctx, retriever, guardianValidator, network, options...)
	if err != nil {
		return nil, err
	}

	result := make([]ValidDatumUtxo, 0, len(all))

	for _, item := range all {
		if item.IsValid {
			result = append(result, ValidDatumUtxo{
				Datum: *item.Datum,
				Utxo:  item.Utxo,
			})
		}
	}

	return result, nil
}

func newDecoderConfig(options []DecoderOption) decoderConfig {
	config := decoderConfig{
		logger: hclog.NewNullLogger(),
	}

	for _, opt := range options {
		opt(&config)
	}

	return config
}

func getGuardianUtxos(
	ctx context.Context, retriever wallet.IUTxORetriever, guardianValidator script.PlutusScript,
	network wallet.CardanoNetworkType, config decoderConfig,
) ([]wallet.Utxo, error) {
	addr, err := guardianValidator.Address(network)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve guardian address: %w", err)
	}

	address := addr.String()

	retryOptions := append([]common.RetryConfigOption{common.WithLogger(config.logger)}, config.retryOptions...)

	utxos, err := common.ExecuteWithRetry(ctx, func(ctx context.Context) ([]wallet.Utxo, error) {
		return retriever.GetUtxos(ctx, address)
	}, retryOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve utxos of %s: %w", address, err)
	}

	config.logger.Debug("guardian utxos retrieved", "address", address, "count", len(utxos))

	return utxos, nil
}

// decodeUtxo fails only when the datum is not well formed plutus data.
// A missing inline datum is decoded as empty input and therefore fails too
func decodeUtxo(utxo wallet.Utxo, network wallet.CardanoNetworkType) (DatumUtxo, error) {
	raw, err := plutusdata.DecodeHex(utxo.InlineDatum)
	if err != nil {
		return DatumUtxo{}, fmt.Errorf("%w: utxo %s: %w", ErrDatumDecode, utxo.Ref(), err)
	}

	datum, isValid := ParseDatum(raw, network)

	return DatumUtxo{
		IsValid: isValid,
		Datum:   datum,
		Raw:     raw,
		Utxo:    utxo,
	}, nil
}
