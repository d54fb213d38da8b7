package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"swap_desk/internal/app/port"
	"swap_desk/internal/domain/entity"
	"swap_desk/pkg/metrics"
)

var (
	// ErrSameToken rejects aggregation over identical source/destination.
	ErrSameToken = errors.New("source and destination token are identical")
	// ErrNoAmount means neither an explicit amount nor a preset-derivable
	// amount is available.
	ErrNoAmount = errors.New("no swap amount: provide an amount or select a preset after connecting a wallet")
	// ErrNotConnected means a preset-derived amount was requested before
	// any wallet session exists.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrUnknownToken means the requested token is not in the registry.
	ErrUnknownToken = errors.New("token not found in registry")
	// ErrInvalidRole means the role is neither source nor destination.
	ErrInvalidRole = errors.New("invalid token role")
	// ErrInvalidPreset means the preset is not one of the defined steps.
	ErrInvalidPreset = errors.New("invalid amount preset")
)

// SwapService is the single authority over the visible swap state and the
// sequencing of leaf calls. One instance serves one swap intent.
type SwapService struct {
	connector  port.WalletConnector
	aggregator port.AggregatorClient
	prices     port.PriceSource
	notifier   port.RouteNotifier
	logger     port.Logger

	mu      sync.Mutex
	tokens  []entity.Token
	srcIdx  int
	dstIdx  int
	preset  entity.AmountPreset
	route   entity.RouteResult
	session *port.WalletSession

	// issuedSeq tags aggregation requests; only the response carrying the
	// latest issued tag may update the stored route. resolvedSeq trails it
	// while a request is in flight.
	issuedSeq   uint64
	resolvedSeq uint64
}

// NewSwapService seeds the controller with the fixed token list. The first
// token becomes the source and the last one the destination, matching the
// default ETH -> USDT pairing of the form.
func NewSwapService(
	tp port.TokenProvider,
	connector port.WalletConnector,
	aggregator port.AggregatorClient,
	prices port.PriceSource,
	notifier port.RouteNotifier,
	logger port.Logger,
) (*SwapService, error) {
	tokens := tp.Tokens()
	if len(tokens) < 2 {
		return nil, fmt.Errorf("token registry must hold at least two tokens, got %d", len(tokens))
	}
	return &SwapService{
		connector:  connector,
		aggregator: aggregator,
		prices:     prices,
		notifier:   notifier,
		logger:     logger,
		tokens:     tokens,
		srcIdx:     0,
		dstIdx:     len(tokens) - 1,
		route:      entity.NoRoute(),
	}, nil
}

// Snapshot returns the current swap intent for the render layer.
func (s *SwapService) Snapshot() entity.SwapIntent {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent := entity.SwapIntent{
		Source:      s.annotated(s.tokens[s.srcIdx]),
		Destination: s.annotated(s.tokens[s.dstIdx]),
		Preset:      s.preset,
		Route:       s.route,
		InRoute:     s.issuedSeq > s.resolvedSeq,
	}
	if s.session != nil {
		intent.WalletAddress = s.session.Address
	}
	return intent
}

// annotated merges a cached USD price into a token copy. Missing prices
// leave the field zero.
func (s *SwapService) annotated(t entity.Token) entity.Token {
	if s.prices == nil || t.IsNative() {
		return t
	}
	if price, ok := s.prices.PriceUSD(t.Address); ok {
		t.PriceUSD = price
	}
	return t
}

// SelectToken replaces the token bound to the given role. Selecting the
// same token for both roles is permitted here; ExecuteAggregation rejects
// the combination instead.
func (s *SwapService) SelectToken(role entity.Role, name string) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.tokens {
		if strings.EqualFold(t.Name, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownToken, name)
	}

	if role == entity.RoleSource {
		s.srcIdx = idx
	} else {
		s.dstIdx = idx
	}
	s.logger.Debug("token selected", "role", string(role), "token", s.tokens[idx].Name)
	return nil
}

// InvertDirection atomically swaps the source and destination bindings.
// Balances travel with the tokens, not the roles.
func (s *SwapService) InvertDirection() {
	s.mu.Lock()
	s.srcIdx, s.dstIdx = s.dstIdx, s.srcIdx
	src, dst := s.tokens[s.srcIdx].Name, s.tokens[s.dstIdx].Name
	s.mu.Unlock()
	s.logger.Debug("swap direction inverted", "source", src, "destination", dst)
}

// SetAmountPreset records one of the fixed percentage presets. Selecting
// the active preset again is a no-op that still succeeds; selecting a new
// one implicitly deselects the previous.
func (s *SwapService) SetAmountPreset(preset entity.AmountPreset) error {
	if !preset.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPreset, preset)
	}
	s.mu.Lock()
	s.preset = preset
	s.mu.Unlock()
	return nil
}

// FilterTokens returns the tokens whose name contains the term as a
// case-insensitive substring, preserving registry order. An empty term
// yields the full list.
func (s *SwapService) FilterTokens(term string) []entity.Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(term)
	out := make([]entity.Token, 0, len(s.tokens))
	for _, t := range s.tokens {
		if needle == "" || strings.Contains(strings.ToLower(t.Name), needle) {
			out = append(out, s.annotated(t))
		}
	}
	return out
}

// ConnectWallet establishes the wallet session and triggers one balance
// fetch per role. The two fetches run concurrently and independently: a
// failure on one side never blocks or cancels the other.
func (s *SwapService) ConnectWallet(ctx context.Context) (string, error) {
	session, err := s.connector.Connect(ctx)
	if err != nil {
		metrics.WalletConnectsTotal.WithLabelValues("error").Inc()
		s.logger.Error("wallet connection failed", "error", err)
		return "", err
	}
	metrics.WalletConnectsTotal.WithLabelValues("ok").Inc()

	s.mu.Lock()
	s.session = session
	src, dst := s.srcIdx, s.dstIdx
	s.mu.Unlock()

	s.logger.Info("wallet connected", "address", session.Address)

	indices := []int{src}
	if dst != src {
		indices = append(indices, dst)
	}
	var wg sync.WaitGroup
	for _, idx := range indices {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.fetchBalance(ctx, session, i)
		}(idx)
	}
	wg.Wait()

	return session.Address, nil
}

// fetchBalance reads one token's balance and merges it into the registry
// copy. Errors are logged and leave the previous balance untouched.
func (s *SwapService) fetchBalance(ctx context.Context, session *port.WalletSession, idx int) {
	s.mu.Lock()
	token := s.tokens[idx]
	s.mu.Unlock()

	formatted, symbol, err := session.Provider.GetBalance(ctx, token.Address, session.Address)
	if err != nil {
		metrics.BalanceFetchesTotal.WithLabelValues("error").Inc()
		s.logger.Error("balance fetch failed", "token", token.Name, "error", err)
		return
	}
	metrics.BalanceFetchesTotal.WithLabelValues("ok").Inc()

	s.mu.Lock()
	s.tokens[idx].Balance = formatted
	s.mu.Unlock()
	s.logger.Debug("balance fetched", "token", token.Name, "symbol", symbol, "balance", formatted)
}

// ExecuteAggregation asks the backend for a route from the current source
// to the current destination. amount may be an explicit decimal string;
// when empty it is derived from the active preset and the fetched source
// balance. Responses superseded by a newer request are discarded and never
// reach the stored route.
func (s *SwapService) ExecuteAggregation(ctx context.Context, amount string) (entity.RouteResult, error) {
	s.mu.Lock()
	src := s.tokens[s.srcIdx]
	dst := s.tokens[s.dstIdx]
	if strings.EqualFold(src.Address, dst.Address) {
		s.mu.Unlock()
		return entity.NoRoute(), ErrSameToken
	}
	if amount == "" && s.session == nil {
		s.mu.Unlock()
		return entity.NoRoute(), ErrNotConnected
	}
	resolved, err := resolveAmount(amount, s.preset, src.Balance)
	if err != nil {
		s.mu.Unlock()
		return entity.NoRoute(), err
	}
	s.issuedSeq++
	seq := s.issuedSeq
	s.mu.Unlock()

	started := time.Now()
	route, err := s.aggregator.Aggregate(ctx, src.Address, resolved, dst.Address)
	metrics.AggregationDuration.Observe(time.Since(started).Seconds())

	s.mu.Lock()
	if seq != s.issuedSeq {
		s.mu.Unlock()
		metrics.AggregationRequestsTotal.WithLabelValues("stale_drop").Inc()
		s.logger.Debug("discarding superseded aggregation response", "seq", seq)
		return route, err
	}
	s.resolvedSeq = seq
	if err != nil {
		s.mu.Unlock()
		metrics.AggregationRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Error("aggregation failed, keeping previous route", "error", err)
		return entity.NoRoute(), err
	}
	s.route = route
	s.mu.Unlock()

	if route.Kind == entity.RouteEmpty {
		metrics.AggregationRequestsTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.AggregationRequestsTotal.WithLabelValues("ok").Inc()
	}

	if s.notifier != nil {
		// The cue is best effort; a panicking notifier must not fail the
		// aggregation that already succeeded.
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Warn("route notifier panicked", "panic", r)
				}
			}()
			s.notifier.RouteReady(route)
		}()
	}

	return route, nil
}

// resolveAmount picks the request amount: an explicit positive decimal
// wins; otherwise the preset percentage of the fetched source balance.
func resolveAmount(explicit string, preset entity.AmountPreset, balance string) (string, error) {
	if explicit != "" {
		v, ok := new(big.Float).SetString(explicit)
		if !ok || v.Sign() <= 0 {
			return "", fmt.Errorf("invalid swap amount %q", explicit)
		}
		return explicit, nil
	}
	if !preset.Valid() || balance == "" {
		return "", ErrNoAmount
	}
	bal, ok := new(big.Float).SetString(balance)
	if !ok {
		return "", fmt.Errorf("unparseable source balance %q", balance)
	}
	if bal.Sign() <= 0 {
		return "", ErrNoAmount
	}
	share := new(big.Float).Mul(bal, big.NewFloat(float64(preset)/100))
	out := strings.TrimRight(share.Text('f', 18), "0")
	out = strings.TrimRight(out, ".")
	return out, nil
}
