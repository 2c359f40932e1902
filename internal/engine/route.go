package engine

import (
	"context"
	"fmt"

	"eve-pricebot/internal/esi"
)

// RouteService measures gate distance between systems.
type RouteService struct {
	src RouteSource
}

// NewRouteService creates a RouteService backed by src.
func NewRouteService(src RouteSource) *RouteService {
	return &RouteService{src: src}
}

// Jumps returns the number of jumps from origin to destination, or nil when ESI
// has no charted route (wormhole space, disconnected regions). Same system is 0
// without a remote call.
func (r *RouteService) Jumps(ctx context.Context, origin, destination int32) (*int, error) {
	if origin == destination {
		return intPtr(0), nil
	}
	path, err := r.src.Route(ctx, origin, destination)
	if err != nil {
		if esi.IsNotFound(err) {
			return nil, nil
		}
		return nil, remoteErr(fmt.Sprintf("route %d->%d", origin, destination), err)
	}
	if len(path) == 0 {
		return nil, nil
	}
	return intPtr(len(path) - 1), nil
}

func intPtr(v int) *int { return &v }
