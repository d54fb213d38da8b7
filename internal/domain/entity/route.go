package entity

// RouteKind tags the state of the last aggregation result so the render
// layer can tell "nothing fetched yet" from "backend found no route".
type RouteKind string

const (
	// RouteNone means no aggregation has been attempted yet.
	RouteNone RouteKind = "none"
	// RouteEmpty means the aggregator answered with an empty mapping.
	RouteEmpty RouteKind = "empty"
	// RouteLegs means the aggregator returned at least one route leg.
	RouteLegs RouteKind = "legs"
)

// RouteLeg is a single hop of the aggregator's route mapping: an
// address-like key paired with the amount forwarded through it.
type RouteLeg struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// RouteResult is the tagged variant stored by the swap controller.
type RouteResult struct {
	Kind RouteKind  `json:"kind"`
	Legs []RouteLeg `json:"legs,omitempty"`
}

// NoRoute returns the zero-attempt result.
func NoRoute() RouteResult {
	return RouteResult{Kind: RouteNone}
}

// EmptyRoute returns a valid "backend found no route" result.
func EmptyRoute() RouteResult {
	return RouteResult{Kind: RouteEmpty}
}

// LegsRoute wraps a non-empty set of legs.
func LegsRoute(legs []RouteLeg) RouteResult {
	return RouteResult{Kind: RouteLegs, Legs: legs}
}
