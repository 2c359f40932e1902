package engine

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"eve-pricebot/internal/esi"
)

// fakeRemote is an in-memory Remote. Missing entries answer like ESI does: 404.
type fakeRemote struct {
	mu sync.Mutex

	names          map[string]*esi.IDsResponse
	systems        map[int32]esi.SystemInfo
	constellations map[int32]esi.ConstellationInfo
	regions        map[int32]esi.RegionInfo
	types          map[int32]esi.TypeInfo
	routes         map[[2]int32][]int32
	// pages[regionID] is the order book of the single type under test.
	pages map[int32][][]esi.MarketOrder
	// xPages reports X-Pages for a region when set.
	xPages map[int32]int

	// failures forces an error for a call key such as "route" or "orders:10000002".
	failures map[string]error

	calls map[string]int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		names:          map[string]*esi.IDsResponse{},
		systems:        map[int32]esi.SystemInfo{},
		constellations: map[int32]esi.ConstellationInfo{},
		regions:        map[int32]esi.RegionInfo{},
		types:          map[int32]esi.TypeInfo{},
		routes:         map[[2]int32][]int32{},
		pages:          map[int32][][]esi.MarketOrder{},
		xPages:         map[int32]int{},
		failures:       map[string]error{},
		calls:          map[string]int{},
	}
}

func notFound(path string) error {
	return &esi.StatusError{StatusCode: http.StatusNotFound, Method: "GET", Path: path}
}

func (f *fakeRemote) hit(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[key]++
	return f.failures[key]
}

func (f *fakeRemote) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeRemote) ResolveIDs(ctx context.Context, names []string) (*esi.IDsResponse, error) {
	if err := f.hit("ids"); err != nil {
		return nil, err
	}
	if res, ok := f.names[names[0]]; ok {
		return res, nil
	}
	return &esi.IDsResponse{}, nil
}

func (f *fakeRemote) System(ctx context.Context, id int32) (*esi.SystemInfo, error) {
	if err := f.hit("system"); err != nil {
		return nil, err
	}
	s, ok := f.systems[id]
	if !ok {
		return nil, notFound(fmt.Sprintf("/universe/systems/%d/", id))
	}
	return &s, nil
}

func (f *fakeRemote) Constellation(ctx context.Context, id int32) (*esi.ConstellationInfo, error) {
	if err := f.hit("constellation"); err != nil {
		return nil, err
	}
	c, ok := f.constellations[id]
	if !ok {
		return nil, notFound(fmt.Sprintf("/universe/constellations/%d/", id))
	}
	return &c, nil
}

func (f *fakeRemote) Region(ctx context.Context, id int32) (*esi.RegionInfo, error) {
	if err := f.hit("region"); err != nil {
		return nil, err
	}
	r, ok := f.regions[id]
	if !ok {
		return nil, notFound(fmt.Sprintf("/universe/regions/%d/", id))
	}
	return &r, nil
}

func (f *fakeRemote) Type(ctx context.Context, id int32) (*esi.TypeInfo, error) {
	if err := f.hit("type"); err != nil {
		return nil, err
	}
	t, ok := f.types[id]
	if !ok {
		return nil, notFound(fmt.Sprintf("/universe/types/%d/", id))
	}
	return &t, nil
}

func (f *fakeRemote) RegionOrdersPage(ctx context.Context, regionID, typeID int32, page int) (*esi.OrdersPage, error) {
	if err := f.hit(fmt.Sprintf("orders:%d", regionID)); err != nil {
		return nil, err
	}
	book := f.pages[regionID]
	if page < 1 || page > len(book) {
		return nil, notFound(fmt.Sprintf("/markets/%d/orders/", regionID))
	}
	return &esi.OrdersPage{Orders: book[page-1], Pages: f.xPages[regionID]}, nil
}

func (f *fakeRemote) Route(ctx context.Context, origin, destination int32) ([]int32, error) {
	if err := f.hit("route"); err != nil {
		return nil, err
	}
	path, ok := f.routes[[2]int32{origin, destination}]
	if !ok {
		return nil, notFound(fmt.Sprintf("/route/%d/%d/", origin, destination))
	}
	return path, nil
}

func sell(price float64, system int32, vol int32) esi.MarketOrder {
	return esi.MarketOrder{Price: decimal.NewFromFloat(price), SystemID: system, VolumeRemain: vol}
}

func buy(price float64, system int32, vol int32) esi.MarketOrder {
	o := sell(price, system, vol)
	o.IsBuyOrder = true
	return o
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
