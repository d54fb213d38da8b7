package port

import (
	"context"

	"swap_desk/internal/domain/entity"
)

// TokenProvider supplies the fixed token list. Membership never changes
// after startup.
type TokenProvider interface {
	Tokens() []entity.Token
}

// PriceSource resolves cached USD spot prices for contract tokens.
type PriceSource interface {
	RefreshPrices(ctx context.Context) error
	PriceUSD(tokenAddress string) (float64, bool)
}
