package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

const blockFrostPageSize = 100

type blockFrostQueryUtxoResponse struct {
	Address     string  `json:"address"`
	Hash        string  `json:"tx_hash"`
	OutputIndex uint32  `json:"output_index"`
	DataHash    *string `json:"data_hash"`
	InlineDatum *string `json:"inline_datum"`
	Amount      []struct {
		Unit     string `json:"unit"`
		Quantity string `json:"quantity"`
	} `json:"amount"`
}

type TxProviderBlockFrost struct {
	url       string
	projectID string
	client    *http.Client
}

var _ IUTxOProvider = (*TxProviderBlockFrost)(nil)

func NewTxProviderBlockFrost(url string, projectID string) *TxProviderBlockFrost {
	return &TxProviderBlockFrost{
		projectID: projectID,
		url:       url,
		client:    new(http.Client),
	}
}

func (b *TxProviderBlockFrost) Dispose() {
	b.client.CloseIdleConnections()
}

func (b *TxProviderBlockFrost) GetUtxos(ctx context.Context, addr string) ([]Utxo, error) {
	var response []Utxo

	for page := 1; ; page++ {
		bfResponse, err := b.getUtxosPage(ctx, addr, page)
		if err != nil {
			return nil, err
		}

		for _, bfUtxo := range bfResponse {
			utxo, err := convertBlockFrostUtxo(bfUtxo)
			if err != nil {
				return nil, err
			}

			response = append(response, utxo)
		}

		if len(bfResponse) < blockFrostPageSize {
			break
		}
	}

	if response == nil {
		response = []Utxo{}
	}

	return response, nil
}

func (b *TxProviderBlockFrost) getUtxosPage(
	ctx context.Context, addr string, page int,
) ([]blockFrostQueryUtxoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/addresses/%s/utxos?count=%d&page=%d", b.url, addr, blockFrostPageSize, page), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("project_id", b.projectID)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil // this address does not have any UTxOs
	} else if resp.StatusCode != http.StatusOK {
		return nil, getErrorFromResponse(resp)
	}

	var bfResponse []blockFrostQueryUtxoResponse
	if err = json.NewDecoder(resp.Body).Decode(&bfResponse); err != nil {
		return nil, err
	}

	return bfResponse, nil
}

func convertBlockFrostUtxo(bfUtxo blockFrostQueryUtxoResponse) (Utxo, error) {
	utxo := Utxo{
		Hash:  bfUtxo.Hash,
		Index: bfUtxo.OutputIndex,
	}

	if bfUtxo.DataHash != nil {
		utxo.DatumHash = *bfUtxo.DataHash
	}

	if bfUtxo.InlineDatum != nil {
		utxo.InlineDatum = *bfUtxo.InlineDatum
	}

	for _, x := range bfUtxo.Amount {
		amount, err := strconv.ParseUint(x.Quantity, 0, 64)
		if err != nil {
			return Utxo{}, err
		}

		if x.Unit == AdaTokenName {
			utxo.Amount = amount

			continue
		}

		if len(x.Unit) < KeyHashSize*2 {
			return Utxo{}, fmt.Errorf("%w: invalid unit %s", ErrInvalidData, x.Unit)
		}

		utxo.Tokens = append(utxo.Tokens, NewTokenAmount(x.Unit[:KeyHashSize*2], x.Unit[KeyHashSize*2:], amount))
	}

	return utxo, nil
}

func getErrorFromResponse(resp *http.Response) error {
	var bfResponse map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&bfResponse); err != nil {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}

	return fmt.Errorf("status code %d: %s", resp.StatusCode, bfResponse["message"])
}
