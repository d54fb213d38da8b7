package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"swap_desk/internal/app/port"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PairData contains the fields of a DEX Screener trading pair this service
// cares about.
type PairData struct {
	ChainID     string        `json:"chainId"`
	DexID       string        `json:"dexId"`
	PairAddress string        `json:"pairAddress"`
	BaseToken   PairToken     `json:"baseToken"`
	QuoteToken  PairToken     `json:"quoteToken"`
	PriceUsd    string        `json:"priceUsd"`
	Liquidity   *PairLiquidity `json:"liquidity"`
}

// PairToken represents a token in a trading pair.
type PairToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// PairLiquidity represents the liquidity information for a pair.
type PairLiquidity struct {
	Usd float64 `json:"usd"`
}

// DEXScreenerClient fetches trading pairs for a batch of token addresses.
type DEXScreenerClient interface {
	GetTokenPairsByAddresses(ctx context.Context, chainID string, tokenAddresses []string) ([]PairData, error)
}

type dexScreenerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  port.Logger
}

// NewDEXScreenerClient creates a new DEX Screener API client.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, logger port.Logger) DEXScreenerClient {
	return &dexScreenerClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger,
	}
}

// GetTokenPairsByAddresses implements the DEXScreenerClient interface.
func (c *dexScreenerClientImpl) GetTokenPairsByAddresses(ctx context.Context, chainID string, tokenAddresses []string) ([]PairData, error) {
	if len(tokenAddresses) == 0 {
		return nil, fmt.Errorf("tokenAddresses cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, chainID, strings.Join(tokenAddresses, ","))
	c.logger.Debug("requesting token pairs from DEX Screener", "url", requestURL)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentType("application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("DEX Screener request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(rawBody))
	}

	var pairs []PairData
	if err := json.Unmarshal(rawBody, &pairs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}
	if len(pairs) == 0 {
		c.logger.Warn("DEX Screener returned 200 OK with no pairs", "url", requestURL)
	}
	return pairs, nil
}
