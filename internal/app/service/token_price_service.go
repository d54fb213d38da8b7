package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"swap_desk/internal/app/port"
	"swap_desk/internal/infrastructure/httpclient"

	"github.com/patrickmn/go-cache"
)

// TokenPriceService resolves USD spot prices for the registry's contract
// tokens from DEX Screener and keeps them in a TTL cache. Prices are a
// display annotation only: a refresh failure never affects swap state.
type TokenPriceService struct {
	logger     port.Logger
	tokens     port.TokenProvider
	dexClient  httpclient.DEXScreenerClient
	chainID    string
	priceCache *cache.Cache
}

// NewTokenPriceService creates the service with the given cache TTL.
func NewTokenPriceService(
	logger port.Logger,
	tokens port.TokenProvider,
	dexClient httpclient.DEXScreenerClient,
	chainID string,
	cacheTTL time.Duration,
) *TokenPriceService {
	return &TokenPriceService{
		logger:     logger,
		tokens:     tokens,
		dexClient:  dexClient,
		chainID:    chainID,
		priceCache: cache.New(cacheTTL, 10*time.Minute),
	}
}

// RefreshPrices fetches pairs for all contract tokens in one batch and
// caches the best price per token.
func (s *TokenPriceService) RefreshPrices(ctx context.Context) error {
	addresses := make([]string, 0)
	for _, t := range s.tokens.Tokens() {
		if !t.IsNative() {
			addresses = append(addresses, t.Address)
		}
	}
	if len(addresses) == 0 {
		return nil
	}

	pairs, err := s.dexClient.GetTokenPairsByAddresses(ctx, s.chainID, addresses)
	if err != nil {
		s.logger.Error("failed to refresh token prices", "error", err)
		return err
	}

	pairsByBase := make(map[string][]httpclient.PairData)
	for _, p := range pairs {
		key := strings.ToLower(p.BaseToken.Address)
		pairsByBase[key] = append(pairsByBase[key], p)
	}

	cached := 0
	for _, addr := range addresses {
		related := pairsByBase[strings.ToLower(addr)]
		priceStr := selectBestPrice(related)
		if priceStr == "" {
			s.logger.Warn("no usable price for token", "address", addr)
			continue
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			s.logger.Warn("unparseable price from DEX Screener", "address", addr, "price", priceStr)
			continue
		}
		s.priceCache.Set(strings.ToLower(addr), price, cache.DefaultExpiration)
		cached++
	}

	s.logger.Info("token prices refreshed", "requested", len(addresses), "cached", cached)
	return nil
}

// PriceUSD returns a cached price if present and fresh.
func (s *TokenPriceService) PriceUSD(tokenAddress string) (float64, bool) {
	v, found := s.priceCache.Get(strings.ToLower(tokenAddress))
	if !found {
		return 0, false
	}
	price, ok := v.(float64)
	return price, ok
}

// selectBestPrice prefers the pair with the deepest USD liquidity, the
// same heuristic DEX Screener's own UI applies.
func selectBestPrice(pairs []httpclient.PairData) string {
	best := ""
	bestLiquidity := -1.0
	for _, p := range pairs {
		if p.PriceUsd == "" {
			continue
		}
		liquidity := 0.0
		if p.Liquidity != nil {
			liquidity = p.Liquidity.Usd
		}
		if liquidity > bestLiquidity {
			bestLiquidity = liquidity
			best = p.PriceUsd
		}
	}
	return best
}
