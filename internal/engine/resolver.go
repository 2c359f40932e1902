package engine

import (
	"context"
	"fmt"
	"strings"

	"eve-pricebot/internal/esi"
)

// Resolver turns user-supplied names into ESI ids.
type Resolver struct {
	src UniverseSource
}

// NewResolver creates a Resolver backed by src.
func NewResolver(src UniverseSource) *Resolver {
	return &Resolver{src: src}
}

// ResolveSystem resolves a solar system name. The first match wins.
func (r *Resolver) ResolveSystem(ctx context.Context, name string) (Identifier, error) {
	return r.resolve(ctx, "System", name, func(res *esi.IDsResponse) []esi.NameMatch { return res.Systems })
}

// ResolveItem resolves an inventory type name. The first match wins.
func (r *Resolver) ResolveItem(ctx context.Context, name string) (Identifier, error) {
	return r.resolve(ctx, "Item", name, func(res *esi.IDsResponse) []esi.NameMatch { return res.InventoryTypes })
}

func (r *Resolver) resolve(ctx context.Context, kind, name string, pick func(*esi.IDsResponse) []esi.NameMatch) (Identifier, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Identifier{}, &NotFoundError{Kind: kind, Name: name}
	}
	res, err := r.src.ResolveIDs(ctx, []string{trimmed})
	if err != nil {
		if esi.IsNotFound(err) {
			return Identifier{}, &NotFoundError{Kind: kind, Name: name}
		}
		return Identifier{}, remoteErr("resolve "+strings.ToLower(kind), err)
	}
	matches := pick(res)
	if len(matches) == 0 {
		return Identifier{}, &NotFoundError{Kind: kind, Name: name}
	}
	return Identifier{ID: matches[0].ID, Name: matches[0].Name}, nil
}

// RegionForSystem walks system -> constellation -> region. Any failure, including
// a 404 on one of the hops, is a RemoteError.
func (r *Resolver) RegionForSystem(ctx context.Context, systemID int32) (Identifier, error) {
	sys, err := r.src.System(ctx, systemID)
	if err != nil {
		return Identifier{}, remoteErr("system lookup", err)
	}
	if sys.ConstellationID == 0 {
		return Identifier{}, remoteErr("system lookup", fmt.Errorf("system %d has no constellation", systemID))
	}
	con, err := r.src.Constellation(ctx, sys.ConstellationID)
	if err != nil {
		return Identifier{}, remoteErr("constellation lookup", err)
	}
	if con.RegionID == 0 {
		return Identifier{}, remoteErr("constellation lookup", fmt.Errorf("constellation %d has no region", sys.ConstellationID))
	}
	reg, err := r.src.Region(ctx, con.RegionID)
	if err != nil {
		return Identifier{}, remoteErr("region lookup", err)
	}
	return Identifier{ID: con.RegionID, Name: reg.Name}, nil
}

// SystemName returns the display name of a solar system.
func (r *Resolver) SystemName(ctx context.Context, systemID int32) (string, error) {
	sys, err := r.src.System(ctx, systemID)
	if err != nil {
		return "", remoteErr("system lookup", err)
	}
	return sys.Name, nil
}

// ItemVolume returns the type's volume in m3 as ESI reports it (assembled, not packaged).
func (r *Resolver) ItemVolume(ctx context.Context, typeID int32) (float64, error) {
	t, err := r.src.Type(ctx, typeID)
	if err != nil {
		return 0, remoteErr("type lookup", err)
	}
	if t.Volume < 0 {
		return 0, nil
	}
	return t.Volume, nil
}
