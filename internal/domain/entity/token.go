package entity

// NativeTokenAddress is the sentinel address that marks the chain's base
// currency in the token list. It never corresponds to a deployed contract.
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// NativeDecimals is the fixed decimal count of the base currency.
const NativeDecimals = 18

// Token represents a tradable asset from the fixed registry.
type Token struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Img     string `json:"img"`
	// Balance is the formatted human-readable balance. Empty until a
	// wallet connect triggers a fetch.
	Balance string `json:"balance,omitempty"`
	// PriceUSD is the last cached spot price, zero when unknown.
	PriceUSD float64 `json:"priceUSD,omitempty"`
}

// IsNative reports whether the token is the chain's base currency.
func (t Token) IsNative() bool {
	return t.Address == NativeTokenAddress
}
