package tokenregistry

import "swap_desk/internal/domain/entity"

// defaultTokens is the fixed four-entry list the swap form is seeded with:
// the native asset plus three ERC-20 tokens. Membership never changes at
// runtime.
var defaultTokens = []entity.Token{
	{
		Name:    "ETH",
		Address: entity.NativeTokenAddress,
		Img:     "https://cdn.moralis.io/eth/0x.png",
	},
	{
		Name:    "USDC",
		Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Img:     "https://cdn.moralis.io/eth/0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48.png",
	},
	{
		Name:    "USDT",
		Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		Img:     "https://cdn.moralis.io/eth/0xdac17f958d2ee523a2206206994597c13d831ec7.png",
	},
	{
		Name:    "LINK",
		Address: "0x514910771AF9Ca656af840dff83E8264EcF986CA",
		Img:     "https://cdn.moralis.io/eth/0x514910771af9ca656af840dff83e8264ecf986ca.png",
	},
}

// StaticRegistry implements port.TokenProvider over the fixed list.
type StaticRegistry struct {
	tokens []entity.Token
}

// NewStaticRegistry returns the registry seeded with the default list.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{tokens: defaultTokens}
}

// Tokens returns a copy of the list in registry order. Callers own the
// copy and may annotate it freely.
func (r *StaticRegistry) Tokens() []entity.Token {
	out := make([]entity.Token, len(r.tokens))
	copy(out, r.tokens)
	return out
}
