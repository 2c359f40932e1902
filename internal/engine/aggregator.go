package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"eve-pricebot/internal/esi"
	"eve-pricebot/internal/logger"
)

// DefaultMaxPages bounds a single order book scan when no cap is configured.
const DefaultMaxPages = 100

// Aggregator reduces a region's order book for one type into a PriceSummary.
type Aggregator struct {
	src      OrderSource
	maxPages int
}

// NewAggregator creates an Aggregator. maxPages <= 0 selects DefaultMaxPages.
func NewAggregator(src OrderSource, maxPages int) *Aggregator {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Aggregator{src: src, maxPages: maxPages}
}

// BestPrices pages through every order for typeID in regionID. System-scoped
// bests only consider orders located in systemID.
//
// The scan ends on a 404 (ESI's end-of-data signal), an empty page, or once the
// X-Pages count is reached. A book with more than maxPages pages, or one whose
// X-Pages exceeds it, fails with ErrTooManyPages. Anything else is a RemoteError.
func (a *Aggregator) BestPrices(ctx context.Context, regionID, typeID, systemID int32) (PriceSummary, error) {
	b := newSummaryBuilder(systemID)
	orders := 0
	// Without X-Pages, page maxPages+1 is fetched only to confirm the book ended.
	for page := 1; page <= a.maxPages+1; page++ {
		p, err := a.src.RegionOrdersPage(ctx, regionID, typeID, page)
		if err != nil {
			if esi.IsNotFound(err) {
				break
			}
			return PriceSummary{}, remoteErr(fmt.Sprintf("orders region=%d type=%d page=%d", regionID, typeID, page), err)
		}
		if len(p.Orders) == 0 {
			break
		}
		if page > a.maxPages || p.Pages > a.maxPages {
			return PriceSummary{}, remoteErr(fmt.Sprintf("orders region=%d type=%d", regionID, typeID),
				fmt.Errorf("%w (%d)", ErrTooManyPages, a.maxPages))
		}
		b.addAll(p.Orders)
		orders += len(p.Orders)
		if p.Pages > 0 && page >= p.Pages {
			break
		}
	}
	logger.Debug("PRICE", fmt.Sprintf("region=%d type=%d scanned %d orders", regionID, typeID, orders))
	return b.summary(), nil
}

// summaryBuilder keeps the four running extrema. It does not care how or in what
// order pages arrive, which keeps the reduction order-independent up to ties
// (ties keep the first order seen).
type summaryBuilder struct {
	systemID int32
	s        PriceSummary
}

func newSummaryBuilder(systemID int32) *summaryBuilder {
	return &summaryBuilder{systemID: systemID}
}

func (b *summaryBuilder) addAll(orders []esi.MarketOrder) {
	for i := range orders {
		b.add(orders[i])
	}
}

func (b *summaryBuilder) add(o esi.MarketOrder) {
	inSystem := o.SystemID == b.systemID
	if o.IsBuyOrder {
		if b.s.RegionBuy == nil || o.Price.GreaterThan(b.s.RegionBuy.Price) {
			b.s.RegionBuy = &Quote{Price: o.Price, SystemID: o.SystemID, VolumeRemain: o.VolumeRemain}
		}
		if inSystem && (!b.s.SystemBuy.Valid || o.Price.GreaterThan(b.s.SystemBuy.Decimal)) {
			b.s.SystemBuy = decimal.NewNullDecimal(o.Price)
		}
		return
	}
	if b.s.RegionSell == nil || o.Price.LessThan(b.s.RegionSell.Price) {
		b.s.RegionSell = &Quote{Price: o.Price, SystemID: o.SystemID, VolumeRemain: o.VolumeRemain}
	}
	if inSystem && (!b.s.SystemSell.Valid || o.Price.LessThan(b.s.SystemSell.Decimal)) {
		b.s.SystemSell = decimal.NewNullDecimal(o.Price)
	}
}

func (b *summaryBuilder) summary() PriceSummary {
	return b.s
}
