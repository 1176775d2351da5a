// Package ethereum implements the domain Wallet port with a keyed EVM signer
// over a JSON-RPC endpoint.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/unikron/swapd/src/swap/domain"
)

const erc20ABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "approve",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint256"}],
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "from", "type": "address"},
			{"indexed": true, "name": "to", "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		],
		"name": "Transfer",
		"type": "event"
	}
]`

// Errors
var (
	ErrMissingEnvVars    = errors.New("missing required environment variables")
	ErrConnectNetwork    = errors.New("failed to connect to network")
	ErrInvalidPrivateKey = errors.New("failed to parse private key")
	ErrParseABI          = errors.New("failed to parse ABI")
	ErrCreateTransactor  = errors.New("failed to create transactor")
	ErrInvalidPayload    = errors.New("invalid transaction payload")
	ErrSendTransaction   = errors.New("failed to send transaction")
	ErrMineTransaction   = errors.New("failed to mine transaction")
)

// receiptPollInterval is how often WaitMined queries for a receipt.
const receiptPollInterval = time.Second

// Config holds EVM client config.
type Config struct {
	RPCURL     string
	PrivateKey string
	ChainID    *big.Int
}

// EthereumClient is a keyed signer bound to one account and one chain.
type EthereumClient struct {
	client      *ethclient.Client
	wallet      common.Address
	privateKey  *ecdsa.PrivateKey
	erc20       abi.ABI
	transferSig common.Hash
	config      Config
	stateCh     chan struct{}
}

var _ domain.Wallet = (*EthereumClient)(nil)

// NewEthereumClient dials the RPC endpoint and derives the signing account.
func NewEthereumClient(ctx context.Context, config Config) (*EthereumClient, error) {
	if config.RPCURL == "" || config.PrivateKey == "" {
		return nil, fmt.Errorf("%w: RPC_URL or PRIVATE_KEY", ErrMissingEnvVars)
	}
	client, err := ethclient.DialContext(ctx, config.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectNetwork, err)
	}
	key := strings.TrimPrefix(config.PrivateKey, "0x")

	privateKey, err := crypto.HexToECDSA(key)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	wallet := crypto.PubkeyToAddress(privateKey.PublicKey)

	erc20Parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ERC20 ABI: %v", ErrParseABI, err)
	}

	return &EthereumClient{
		client:      client,
		wallet:      wallet,
		privateKey:  privateKey,
		erc20:       erc20Parsed,
		transferSig: crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")),
		config:      config,
		stateCh:     make(chan struct{}),
	}, nil
}

func (ec *EthereumClient) Close() { ec.client.Close() }

func (ec *EthereumClient) Address() string { return ec.wallet.Hex() }

func (ec *EthereumClient) ChainID(ctx context.Context) (int64, error) {
	if ec.config.ChainID != nil {
		return ec.config.ChainID.Int64(), nil
	}
	id, err := ec.client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConnectNetwork, err)
	}
	return id.Int64(), nil
}

// Balance returns holdings in human units, scaled by the token's precision.
func (ec *EthereumClient) Balance(ctx context.Context, token domain.Token, address string) (decimal.Decimal, error) {
	owner := common.HexToAddress(address)

	var raw *big.Int
	if token.IsNative() {
		wei, err := ec.client.BalanceAt(ctx, owner, nil)
		if err != nil {
			return decimal.Zero, fmt.Errorf("balance of %s: %w", address, err)
		}
		raw = wei
	} else {
		contract := bind.NewBoundContract(common.HexToAddress(token.Address), ec.erc20, ec.client, ec.client, ec.client)
		var result []interface{}
		if err := contract.Call(&bind.CallOpts{Context: ctx}, &result, "balanceOf", owner); err != nil {
			return decimal.Zero, fmt.Errorf("balanceOf %s: %w", token.Symbol, err)
		}
		out, ok := result[0].(*big.Int)
		if !ok {
			return decimal.Zero, fmt.Errorf("balanceOf %s: unexpected result type", token.Symbol)
		}
		raw = out
	}

	return decimal.NewFromBigInt(raw, 0).Shift(-int32(token.Decimals)), nil
}

// Approve grants spender an allowance and waits for it to be mined.
func (ec *EthereumClient) Approve(ctx context.Context, token domain.Token, spender string, amount *big.Int) (string, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(ec.privateKey, ec.config.ChainID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateTransactor, err)
	}
	auth.Context = ctx

	contract := bind.NewBoundContract(common.HexToAddress(token.Address), ec.erc20, ec.client, ec.client, ec.client)
	tx, err := contract.Transact(auth, "approve", common.HexToAddress(spender), amount)
	if err != nil {
		return "", classifySendError(err)
	}

	receipt, err := bind.WaitMined(ctx, ec.client, tx)
	if err != nil {
		return tx.Hash().Hex(), fmt.Errorf("%w: %v", ErrMineTransaction, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return tx.Hash().Hex(), fmt.Errorf("%w: approve reverted", ErrMineTransaction)
	}
	return tx.Hash().Hex(), nil
}

// SendTransaction signs and broadcasts the payload as given. To, data, value
// and gas limit come straight from the payload; only nonce and gas price are
// filled in locally.
func (ec *EthereumClient) SendTransaction(ctx context.Context, payload domain.TxPayload) (string, error) {
	if payload.To == "" {
		return "", fmt.Errorf("%w: missing recipient", ErrInvalidPayload)
	}
	to := common.HexToAddress(payload.To)

	value, err := parseBig(payload.Value)
	if err != nil {
		return "", fmt.Errorf("%w: value %q", ErrInvalidPayload, payload.Value)
	}
	gasLimit, err := parseBig(payload.GasLimit)
	if err != nil {
		return "", fmt.Errorf("%w: gasLimit %q", ErrInvalidPayload, payload.GasLimit)
	}
	data := common.FromHex(payload.Data)

	nonce, err := ec.client.PendingNonceAt(ctx, ec.wallet)
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %v", ErrSendTransaction, err)
	}
	gasPrice, err := ec.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: gas price: %v", ErrSendTransaction, err)
	}

	gas := gasLimit.Uint64()
	if gas == 0 {
		return "", fmt.Errorf("%w: zero gas limit", ErrInvalidPayload)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(ec.config.ChainID), ec.privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: sign: %v", ErrSendTransaction, err)
	}
	if err := ec.client.SendTransaction(ctx, signedTx); err != nil {
		return "", classifySendError(err)
	}
	return signedTx.Hash().Hex(), nil
}

// WaitMined polls for the receipt until the context expires. When the
// transaction succeeded, the received amount is decoded from the output
// token's Transfer log to the signing account, when such a log exists.
func (ec *EthereumClient) WaitMined(ctx context.Context, txHash string, outputToken domain.Token) (*domain.Receipt, error) {
	hash := common.HexToHash(txHash)
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := ec.client.TransactionReceipt(ctx, hash)
		if err == nil {
			out := &domain.Receipt{
				TxHash:  txHash,
				Success: receipt.Status == types.ReceiptStatusSuccessful,
			}
			if out.Success {
				out.OutputAmount = ec.receivedAmount(receipt, outputToken)
			}
			return out, nil
		}
		if !errors.Is(err, goethereum.NotFound) && !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("%w: %v", ErrMineTransaction, err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrMineTransaction, ctx.Err())
		case <-ticker.C:
		}
	}
}

// StateChanges never fires for a keyed signer: the account and chain are
// fixed for the process lifetime.
func (ec *EthereumClient) StateChanges() <-chan struct{} { return ec.stateCh }

// receivedAmount scans the receipt for a Transfer of outputToken to the
// wallet. Nil when none is found, e.g. for native-asset outputs.
func (ec *EthereumClient) receivedAmount(receipt *types.Receipt, outputToken domain.Token) *decimal.Decimal {
	if outputToken.IsNative() || outputToken.Address == "" {
		return nil
	}
	tokenAddr := common.HexToAddress(outputToken.Address)
	walletTopic := common.BytesToHash(ec.wallet.Bytes())

	for _, lg := range receipt.Logs {
		if lg.Address != tokenAddr || len(lg.Topics) != 3 {
			continue
		}
		if lg.Topics[0] != ec.transferSig || lg.Topics[2] != walletTopic {
			continue
		}
		raw := new(big.Int).SetBytes(lg.Data)
		amount := decimal.NewFromBigInt(raw, 0).Shift(-int32(outputToken.Decimals))
		return &amount
	}
	return nil
}

// parseBig accepts decimal and 0x-hex integer strings; empty means zero.
func parseBig(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return v, nil
}

// classifySendError maps signer refusals onto the domain sentinel so the
// executor can distinguish "the signer said no" from transport failures.
func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "denied") || strings.Contains(msg, "rejected") {
		return fmt.Errorf("%w: %v", domain.ErrWalletRejected, err)
	}
	return fmt.Errorf("%w: %v", ErrSendTransaction, err)
}
