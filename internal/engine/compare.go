package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eve-pricebot/internal/logger"
)

// Comparer builds a ComparisonReport for an item in a system against the hub.
type Comparer struct {
	Resolver   *Resolver
	Aggregator *Aggregator
	Routes     *RouteService
	// Workers bounds the parallel remote calls within a single comparison.
	Workers int
}

// NewComparer wires a Comparer on top of one remote client.
func NewComparer(remote Remote, workers, maxPages int) *Comparer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Comparer{
		Resolver:   NewResolver(remote),
		Aggregator: NewAggregator(remote, maxPages),
		Routes:     NewRouteService(remote),
		Workers:    workers,
	}
}

// Compare resolves systemName and itemName and compares the local market with the hub.
// It either returns a complete report or a NotFoundError/RemoteError. When several
// calls fail, the error of the earliest step is reported.
func (c *Comparer) Compare(ctx context.Context, systemName, itemName string) (*ComparisonReport, error) {
	reqID := uuid.NewString()[:8]
	start := time.Now()
	logger.Info("PRICE", fmt.Sprintf("[%s] compare system=%q item=%q", reqID, systemName, itemName))

	rep, err := c.compare(ctx, systemName, itemName)
	if err != nil {
		logger.Warn("PRICE", fmt.Sprintf("[%s] failed after %s: %v", reqID, time.Since(start).Round(time.Millisecond), err))
		return nil, err
	}
	logger.Success("PRICE", fmt.Sprintf("[%s] %s in %s done in %s", reqID, rep.Item.Name, rep.System.Name, time.Since(start).Round(time.Millisecond)))
	return rep, nil
}

func (c *Comparer) compare(ctx context.Context, systemName, itemName string) (*ComparisonReport, error) {
	rep := &ComparisonReport{Hub: Identifier{ID: HubSystemID, Name: HubName}}

	// 1. names; an unknown system is reported before an unknown item
	var sysErr, itemErr error
	st := newStage(ctx, c.Workers)
	st.Go(func(ctx context.Context) error {
		rep.System, sysErr = c.Resolver.ResolveSystem(ctx, systemName)
		return nil
	})
	st.Go(func(ctx context.Context) error {
		rep.Item, itemErr = c.Resolver.ResolveItem(ctx, itemName)
		return nil
	})
	st.Wait()
	if sysErr != nil {
		return nil, sysErr
	}
	if itemErr != nil {
		return nil, itemErr
	}

	// 2. region of the target system
	region, err := c.Resolver.RegionForSystem(ctx, rep.System.ID)
	if err != nil {
		return nil, err
	}
	rep.Region = region

	// 3. order books, volume and hub distance
	st = newStage(ctx, c.Workers)
	st.Go(func(ctx context.Context) error {
		s, err := c.Aggregator.BestPrices(ctx, rep.Region.ID, rep.Item.ID, rep.System.ID)
		rep.Local = s
		return err
	})
	st.Go(func(ctx context.Context) error {
		s, err := c.Aggregator.BestPrices(ctx, HubRegionID, rep.Item.ID, HubSystemID)
		rep.HubPrices = s
		return err
	})
	st.Go(func(ctx context.Context) error {
		v, err := c.Resolver.ItemVolume(ctx, rep.Item.ID)
		rep.ItemVolume = v
		return err
	})
	st.Go(func(ctx context.Context) error {
		j, err := c.Routes.Jumps(ctx, rep.System.ID, HubSystemID)
		rep.HubJumps = j
		return err
	})
	if err := st.Wait(); err != nil {
		return nil, err
	}

	// 4. where the region-best orders sit
	st = newStage(ctx, c.Workers)
	if q := rep.Local.RegionSell; q != nil {
		rep.SellLocation = &Location{System: Identifier{ID: q.SystemID}}
		c.locate(st, rep.System.ID, rep.SellLocation)
	}
	if q := rep.Local.RegionBuy; q != nil {
		rep.BuyLocation = &Location{System: Identifier{ID: q.SystemID}}
		c.locate(st, rep.System.ID, rep.BuyLocation)
	}
	if err := st.Wait(); err != nil {
		return nil, err
	}

	// 5. deltas against the hub's region-wide bests
	rep.SellDelta = NewDelta(rep.Local.RegionBestSell(), rep.HubPrices.RegionBestSell())
	rep.BuyDelta = NewDelta(rep.Local.RegionBestBuy(), rep.HubPrices.RegionBestBuy())
	return rep, nil
}

// locate fills loc's jump distance and system name on st.
func (c *Comparer) locate(st *stage, origin int32, loc *Location) {
	st.Go(func(ctx context.Context) error {
		j, err := c.Routes.Jumps(ctx, origin, loc.System.ID)
		loc.Jumps = j
		return err
	})
	st.Go(func(ctx context.Context) error {
		name, err := c.Resolver.SystemName(ctx, loc.System.ID)
		loc.System.Name = name
		return err
	})
}
