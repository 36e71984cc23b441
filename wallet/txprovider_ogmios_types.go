package wallet

type ogmiosQueryUtxoRequestParams struct {
	Addresses []string `json:"addresses"`
}

type ogmiosQueryUtxoRequest struct {
	Jsonrpc string                       `json:"jsonrpc"`
	Method  string                       `json:"method"`
	Params  ogmiosQueryUtxoRequestParams `json:"params"`
	ID      interface{}                  `json:"id"`
}

type ogmiosQueryUtxoResponse struct {
	Jsonrpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Result  []struct {
		Transaction struct {
			ID string `json:"id"`
		} `json:"transaction"`
		Index     uint32                       `json:"index"`
		Address   string                       `json:"address"`
		Value     map[string]map[string]uint64 `json:"value"`
		DatumHash string                       `json:"datumHash"`
		Datum     string                       `json:"datum"`
	} `json:"result"`
	Error *ogmiosError `json:"error"`
	ID    interface{}  `json:"id"`
}

type ogmiosError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
