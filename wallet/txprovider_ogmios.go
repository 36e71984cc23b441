package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const ogmiosJSONRPCVersion = "2.0"

type TxProviderOgmios struct {
	url    string
	client *http.Client
}

var _ IUTxOProvider = (*TxProviderOgmios)(nil)

func NewTxProviderOgmios(url string) *TxProviderOgmios {
	return &TxProviderOgmios{
		url:    url,
		client: new(http.Client),
	}
}

func (o *TxProviderOgmios) Dispose() {
	o.client.CloseIdleConnections()
}

func (o *TxProviderOgmios) GetUtxos(ctx context.Context, addr string) ([]Utxo, error) {
	responseData, err := executeHTTPOgmios[ogmiosQueryUtxoResponse](
		ctx, o.client, o.url, ogmiosQueryUtxoRequest{
			Jsonrpc: ogmiosJSONRPCVersion,
			Method:  "queryLedgerState/utxo",
			Params: ogmiosQueryUtxoRequestParams{
				Addresses: []string{addr},
			},
		}, true,
	)
	if err != nil {
		return nil, err
	}

	if responseData.Error != nil {
		return nil, fmt.Errorf("ogmios error %d: %s", responseData.Error.Code, responseData.Error.Message)
	}

	var retVal = make([]Utxo, len(responseData.Result))

	for i, utxo := range responseData.Result {
		var (
			adaValue uint64
			tokens   []TokenAmount
		)

		for policyID, nameValueMap := range utxo.Value {
			if policyID == adaTokenPolicyID {
				adaValue = nameValueMap[AdaTokenName]

				continue
			}

			for name, value := range nameValueMap {
				tokens = append(tokens, NewTokenAmount(policyID, name, value))
			}
		}

		retVal[i] = Utxo{
			Hash:        utxo.Transaction.ID,
			Index:       utxo.Index,
			Amount:      adaValue,
			Tokens:      tokens,
			DatumHash:   utxo.DatumHash,
			InlineDatum: utxo.Datum,
		}
	}

	return retVal, nil
}

func executeHTTPOgmios[T any](
	ctx context.Context, client *http.Client, url string, request any, notFoundIsNotError bool,
) (T, error) {
	var result T // Zero value for type T

	queryBytes, err := json.Marshal(request)
	if err != nil {
		return result, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(queryBytes))
	if err != nil {
		return result, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if notFoundIsNotError && resp.StatusCode == http.StatusNotFound {
		return result, nil
	}

	if resp.StatusCode != http.StatusOK {
		return result, getErrorFromResponseOgmios(resp)
	}

	bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(bytes, &result); err != nil {
		return result, err
	}

	return result, nil
}

func getErrorFromResponseOgmios(resp *http.Response) error {
	var responseData struct {
		Error *ogmiosError `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&responseData); err != nil || responseData.Error == nil {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}

	return fmt.Errorf("status code %d: %s", resp.StatusCode, responseData.Error.Message)
}
