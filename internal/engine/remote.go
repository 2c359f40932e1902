package engine

import (
	"context"

	"eve-pricebot/internal/esi"
)

// UniverseSource resolves names and looks up location and type metadata.
type UniverseSource interface {
	ResolveIDs(ctx context.Context, names []string) (*esi.IDsResponse, error)
	System(ctx context.Context, systemID int32) (*esi.SystemInfo, error)
	Constellation(ctx context.Context, constellationID int32) (*esi.ConstellationInfo, error)
	Region(ctx context.Context, regionID int32) (*esi.RegionInfo, error)
	Type(ctx context.Context, typeID int32) (*esi.TypeInfo, error)
}

// OrderSource serves pages of a region's order book for one type.
type OrderSource interface {
	RegionOrdersPage(ctx context.Context, regionID, typeID int32, page int) (*esi.OrdersPage, error)
}

// RouteSource returns gate routes between systems.
type RouteSource interface {
	Route(ctx context.Context, origin, destination int32) ([]int32, error)
}

// Remote is everything the engine needs from ESI. *esi.Client implements it.
type Remote interface {
	UniverseSource
	OrderSource
	RouteSource
}

var _ Remote = (*esi.Client)(nil)
