package entity

// Role identifies which side of the swap a token is bound to.
type Role string

const (
	RoleSource      Role = "source"
	RoleDestination Role = "destination"
)

// Valid reports whether the role is one of the two defined bindings.
func (r Role) Valid() bool {
	return r == RoleSource || r == RoleDestination
}

// AmountPreset is one of the fixed percentage shortcuts for sizing a swap
// relative to the fetched balance. Zero means no preset is selected.
type AmountPreset int

const (
	PresetNone AmountPreset = 0
	Preset25   AmountPreset = 25
	Preset50   AmountPreset = 50
	Preset75   AmountPreset = 75
	Preset100  AmountPreset = 100
)

// Valid reports whether the preset is one of the defined percentages.
func (p AmountPreset) Valid() bool {
	switch p {
	case Preset25, Preset50, Preset75, Preset100:
		return true
	}
	return false
}

// SwapIntent is a read-only snapshot of the controller state handed to the
// render layer. It is discarded on process exit, never persisted.
type SwapIntent struct {
	Source        Token        `json:"source"`
	Destination   Token        `json:"destination"`
	Preset        AmountPreset `json:"preset"`
	Route         RouteResult  `json:"route"`
	InRoute       bool         `json:"inRoute"`
	WalletAddress string       `json:"walletAddress,omitempty"`
}
