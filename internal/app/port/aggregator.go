package port

import (
	"context"

	"swap_desk/internal/domain/entity"
)

// AggregatorClient issues exactly one request to the aggregation backend
// per call. An empty mapping is a valid result, distinct from an error.
type AggregatorClient interface {
	Aggregate(ctx context.Context, sourceAddress, amount, destinationAddress string) (entity.RouteResult, error)
}

// RouteNotifier is the success-feedback cue fired after a route is stored.
// A notifier failure must never fail the aggregation itself.
type RouteNotifier interface {
	RouteReady(route entity.RouteResult)
}
