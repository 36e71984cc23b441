package wallet

import (
	"cmp"
	"context"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	gouroboros "github.com/blinklabs-io/gouroboros"
	"github.com/blinklabs-io/gouroboros/ledger"
	"github.com/fxamacker/cbor/v2"
	"github.com/hashicorp/go-hclog"
)

type txProviderGoUroBorosConfig struct {
	networkMagic   uint32
	socketPath     string
	keepAlive      bool
	acquireTimeout time.Duration
	logger         hclog.Logger
}

type TxProviderGoUroBorosOption func(*txProviderGoUroBorosConfig)

func WithTxProviderGoUroBorosKeepAlive(keepAlive bool) TxProviderGoUroBorosOption {
	return func(c *txProviderGoUroBorosConfig) {
		c.keepAlive = keepAlive
	}
}

func WithTxProviderGoUroBorosAcquireTimeout(acquireTimeout time.Duration) TxProviderGoUroBorosOption {
	return func(c *txProviderGoUroBorosConfig) {
		c.acquireTimeout = acquireTimeout
	}
}

func WithTxProviderGoUroBorosLogger(logger hclog.Logger) TxProviderGoUroBorosOption {
	return func(c *txProviderGoUroBorosConfig) {
		c.logger = logger
	}
}

// TxProviderGoUroBoros queries utxos from a local cardano node over its unix socket
type TxProviderGoUroBoros struct {
	config txProviderGoUroBorosConfig

	connection *gouroboros.Connection
	closeCh    chan struct{}
	errChan    chan error
	lock       sync.Mutex

	lastAcquiredTime time.Time
}

var _ IUTxOProvider = (*TxProviderGoUroBoros)(nil)

func NewTxProviderGoUroBoros(
	networkMagic uint32, socketPath string, options ...TxProviderGoUroBorosOption,
) *TxProviderGoUroBoros {
	config := txProviderGoUroBorosConfig{
		networkMagic:   networkMagic,
		socketPath:     socketPath,
		keepAlive:      true,
		acquireTimeout: 2 * time.Second,
		logger:         hclog.NewNullLogger(),
	}

	for _, op := range options {
		op(&config)
	}

	txProvider := &TxProviderGoUroBoros{
		closeCh: make(chan struct{}),
		config:  config,
	}

	go txProvider.loop()

	return txProvider
}

func (b *TxProviderGoUroBoros) Dispose() {
	close(b.closeCh)

	b.lock.Lock()
	defer b.lock.Unlock()

	if b.connection != nil {
		b.connection.Close()
	}
}

func (b *TxProviderGoUroBoros) GetUtxos(ctx context.Context, addr string) ([]Utxo, error) {
	conn, err := b.getConnection()
	if err != nil {
		return nil, err
	}

	if err := b.acquire(conn); err != nil {
		return nil, err
	}

	address, err := getLedgerAddress(addr)
	if err != nil {
		return nil, err
	}

	result, err := conn.LocalStateQuery().Client.GetUTxOByAddress([]ledger.Address{address})
	if err != nil {
		return nil, err
	}

	res := make([]Utxo, 0, len(result.Results))

	for key, val := range result.Results {
		var tokens []TokenAmount

		if assets := val.Assets(); assets != nil {
			for _, policyIDRaw := range assets.Policies() {
				policyID := policyIDRaw.String()

				for _, asset := range assets.Assets(policyIDRaw) {
					tokens = append(tokens, NewTokenAmount(
						policyID, hex.EncodeToString(asset), assets.Asset(policyIDRaw, asset)))
				}
			}
		}

		utxo := Utxo{
			Hash:   key.Hash.String(),
			Index:  uint32(key.Idx), //nolint:gosec
			Amount: val.Amount(),
			Tokens: tokens,
		}

		if datum := val.Datum(); datum != nil {
			utxo.InlineDatum = hex.EncodeToString(datum.Cbor())
		}

		if datumHash := val.DatumHash(); datumHash != nil {
			utxo.DatumHash = datumHash.String()
		}

		res = append(res, utxo)
	}

	sortUtxos(res)

	return res, nil
}

// sortUtxos orders utxos by transaction hash and output index, node query results come from a map
func sortUtxos(utxos []Utxo) {
	slices.SortFunc(utxos, func(a, b Utxo) int {
		if c := strings.Compare(a.Hash, b.Hash); c != 0 {
			return c
		}

		return cmp.Compare(a.Index, b.Index)
	})
}

func (b *TxProviderGoUroBoros) getConnection() (*gouroboros.Connection, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.connection == nil {
		b.config.logger.Debug("new connection created")

		b.errChan = make(chan error) // create new channel because old one is closed

		conn, err := createGoUroBorosConnection(
			b.config.networkMagic, b.config.socketPath, b.config.keepAlive, b.errChan)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve connection: %w", err)
		}

		b.connection = conn
	}

	return b.connection, nil
}

func (b *TxProviderGoUroBoros) acquire(conn *gouroboros.Connection) error {
	b.lock.Lock()
	currentTime := time.Now().UTC()
	isTimeOut := b.config.acquireTimeout == 0 || currentTime.Sub(b.lastAcquiredTime) > b.config.acquireTimeout

	if isTimeOut {
		b.lastAcquiredTime = currentTime
	}

	b.lock.Unlock()

	if isTimeOut {
		b.config.logger.Debug("new point acquired")

		return conn.LocalStateQuery().Client.Acquire(nil)
	}

	return nil
}

func (b *TxProviderGoUroBoros) loop() {
	for {
		b.lock.Lock()
		errChan := b.errChan
		b.lock.Unlock()

		select {
		case <-b.closeCh:
			return // close routine
		case err := <-errChan:
			b.config.logger.Warn("connection closed", "err", err)

			b.lock.Lock()
			b.connection = nil
			b.lock.Unlock()
		case <-time.After(time.Second):
		}
	}
}

func createGoUroBorosConnection(
	networkMagic uint32, socketPath string, keepAlive bool, errChan chan error,
) (*gouroboros.Connection, error) {
	connection, err := gouroboros.NewConnection(
		gouroboros.WithNetworkMagic(networkMagic),
		gouroboros.WithNodeToNode(false),
		gouroboros.WithKeepAlive(keepAlive),
		gouroboros.WithErrorChan(errChan),
	)
	if err != nil {
		return nil, err
	}

	// dial node -> connect to node
	if err := connection.Dial("unix", socketPath); err != nil {
		return nil, err
	}

	return connection, nil
}

func getLedgerAddress(raw string) (addr ledger.Address, err error) {
	addrBase, err := NewCardanoAddressFromString(raw)
	if err != nil {
		return addr, err
	}

	cborBytes, err := cbor.Marshal(addrBase.Bytes())
	if err != nil {
		return addr, err
	}

	err = addr.UnmarshalCBOR(cborBytes)

	return addr, err
}
