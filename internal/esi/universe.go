package esi

import (
	"context"
	"fmt"
)

// NameMatch is one id/name pair returned by /universe/ids/.
type NameMatch struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// IDsResponse is the categorised result of a bulk name lookup.
// Categories the lookup did not hit are omitted by ESI.
type IDsResponse struct {
	Systems        []NameMatch `json:"systems"`
	Constellations []NameMatch `json:"constellations"`
	Regions        []NameMatch `json:"regions"`
	InventoryTypes []NameMatch `json:"inventory_types"`
	Stations       []NameMatch `json:"stations"`
}

// SystemInfo is the subset of /universe/systems/{id}/ used here.
type SystemInfo struct {
	SystemID        int32   `json:"system_id"`
	Name            string  `json:"name"`
	ConstellationID int32   `json:"constellation_id"`
	SecurityStatus  float64 `json:"security_status"`
}

// ConstellationInfo is the subset of /universe/constellations/{id}/ used here.
type ConstellationInfo struct {
	ConstellationID int32  `json:"constellation_id"`
	Name            string `json:"name"`
	RegionID        int32  `json:"region_id"`
}

// RegionInfo is the subset of /universe/regions/{id}/ used here.
type RegionInfo struct {
	RegionID int32  `json:"region_id"`
	Name     string `json:"name"`
}

// TypeInfo is the subset of /universe/types/{id}/ used here.
type TypeInfo struct {
	TypeID int32   `json:"type_id"`
	Name   string  `json:"name"`
	Volume float64 `json:"volume"`
}

// ResolveIDs resolves exact names to ids in a single POST /universe/ids/ call.
func (c *Client) ResolveIDs(ctx context.Context, names []string) (*IDsResponse, error) {
	var out IDsResponse
	if err := c.PostJSON(ctx, "/universe/ids/", names, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// System fetches solar system metadata.
func (c *Client) System(ctx context.Context, systemID int32) (*SystemInfo, error) {
	var out SystemInfo
	if err := c.GetJSON(ctx, fmt.Sprintf("/universe/systems/%d/", systemID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Constellation fetches constellation metadata.
func (c *Client) Constellation(ctx context.Context, constellationID int32) (*ConstellationInfo, error) {
	var out ConstellationInfo
	if err := c.GetJSON(ctx, fmt.Sprintf("/universe/constellations/%d/", constellationID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Region fetches region metadata.
func (c *Client) Region(ctx context.Context, regionID int32) (*RegionInfo, error) {
	var out RegionInfo
	if err := c.GetJSON(ctx, fmt.Sprintf("/universe/regions/%d/", regionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Type fetches inventory type metadata.
func (c *Client) Type(ctx context.Context, typeID int32) (*TypeInfo, error) {
	var out TypeInfo
	if err := c.GetJSON(ctx, fmt.Sprintf("/universe/types/%d/", typeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
