package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"swap_desk/internal/domain/entity"
	"swap_desk/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ERC20 ABI, minimal part needed for balance display.
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"payable":false,"stateMutability":"view","type":"function"},{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			// Broken constant, nothing to recover from.
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
	})
}

// rpcCaller is the slice of *rpc.Client the balance reads need. Kept as an
// interface so tests can substitute a counting fake.
type rpcCaller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// EVMClient implements port.BalanceProvider against an EVM JSON-RPC node.
type EVMClient struct {
	caller         rpcCaller
	nativeSymbol   string
	limiter        *rate.Limiter
	rpcCallTimeout time.Duration
}

// NewEVMClient dials the first reachable RPC endpoint, falling back down
// the list the way the node list in config is ordered.
func NewEVMClient(
	rpcURLs []string,
	nativeSymbol string,
	connectionTimeout time.Duration,
	rpcCallTimeout time.Duration,
	limit rate.Limit,
	burst int,
) (*EVMClient, error) {
	initParsedERC20ABI()
	if len(rpcURLs) == 0 {
		return nil, fmt.Errorf("no RPC endpoints configured")
	}

	var lastErr error
	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		rpcClient, err := rpc.DialContext(ctx, rpcURL)
		cancel()
		if err == nil {
			return newEVMClientWithCaller(rpcClient, nativeSymbol, rpcCallTimeout, limit, burst), nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	return nil, fmt.Errorf("all RPC connection attempts failed: %w", lastErr)
}

func newEVMClientWithCaller(caller rpcCaller, nativeSymbol string, rpcCallTimeout time.Duration, limit rate.Limit, burst int) *EVMClient {
	initParsedERC20ABI()
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &EVMClient{
		caller:         caller,
		nativeSymbol:   nativeSymbol,
		limiter:        rate.NewLimiter(limit, burst),
		rpcCallTimeout: rpcCallTimeout,
	}
}

// GetBalance reads and formats one token balance for a wallet. The native
// sentinel goes through eth_getBalance only; contract tokens issue exactly
// three concurrent reads: balanceOf, decimals and symbol.
func (c *EVMClient) GetBalance(ctx context.Context, tokenAddress, walletAddress string) (string, string, error) {
	if !common.IsHexAddress(walletAddress) {
		return "", "", fmt.Errorf("malformed wallet address %q", walletAddress)
	}

	ctx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if isNativeSentinel(tokenAddress) {
		return c.nativeBalance(ctx, walletAddress)
	}
	if !common.IsHexAddress(tokenAddress) {
		return "", "", fmt.Errorf("malformed token address %q", tokenAddress)
	}
	return c.tokenBalance(ctx, tokenAddress, walletAddress)
}

func (c *EVMClient) nativeBalance(ctx context.Context, walletAddress string) (string, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", "", err
	}
	var raw hexutil.Big
	if err := c.caller.CallContext(ctx, &raw, "eth_getBalance", common.HexToAddress(walletAddress), "latest"); err != nil {
		return "", "", fmt.Errorf("eth_getBalance failed for %s: %w", walletAddress, err)
	}
	formatted := utils.FormatBigInt((*big.Int)(&raw), entity.NativeDecimals)
	return formatted, c.nativeSymbol, nil
}

func (c *EVMClient) tokenBalance(ctx context.Context, tokenAddress, walletAddress string) (string, string, error) {
	var (
		balance  *big.Int
		decimals uint8
		symbol   string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := c.ethCall(gctx, tokenAddress, "balanceOf", common.HexToAddress(walletAddress))
		if err != nil {
			return err
		}
		var ok bool
		if balance, ok = out.(*big.Int); !ok {
			return fmt.Errorf("unexpected balanceOf result type %T for %s", out, tokenAddress)
		}
		return nil
	})
	g.Go(func() error {
		out, err := c.ethCall(gctx, tokenAddress, "decimals")
		if err != nil {
			return err
		}
		var ok bool
		if decimals, ok = out.(uint8); !ok {
			return fmt.Errorf("unexpected decimals result type %T for %s", out, tokenAddress)
		}
		return nil
	})
	g.Go(func() error {
		out, err := c.ethCall(gctx, tokenAddress, "symbol")
		if err != nil {
			return err
		}
		var ok bool
		if symbol, ok = out.(string); !ok {
			return fmt.Errorf("unexpected symbol result type %T for %s", out, tokenAddress)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}

	return utils.FormatBigInt(balance, decimals), symbol, nil
}

// ethCall packs a read-only method call, sends it and unpacks the single
// return value.
func (c *EVMClient) ethCall(ctx context.Context, tokenAddress, method string, args ...interface{}) (interface{}, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callData, err := parsedERC20ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	callArgs := map[string]interface{}{
		"to":   common.HexToAddress(tokenAddress),
		"data": hexutil.Bytes(callData),
	}

	var raw hexutil.Bytes
	if err := c.caller.CallContext(ctx, &raw, "eth_call", callArgs, "latest"); err != nil {
		return nil, fmt.Errorf("%s call failed for %s: %w", method, tokenAddress, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s call returned no data for %s (not a token contract?)", method, tokenAddress)
	}

	unpacked, err := parsedERC20ABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result for %s: %w. Raw: %s", method, tokenAddress, err, hexutil.Encode(raw))
	}
	if len(unpacked) == 0 {
		return nil, fmt.Errorf("%s unpack returned no data for %s", method, tokenAddress)
	}
	return unpacked[0], nil
}

func isNativeSentinel(address string) bool {
	return strings.EqualFold(address, entity.NativeTokenAddress)
}
