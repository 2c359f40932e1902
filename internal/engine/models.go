package engine

import "github.com/shopspring/decimal"

// Reference hub. Every comparison is benchmarked against Jita in The Forge.
const (
	HubSystemID int32 = 30000142
	HubRegionID int32 = 10000002
	HubName           = "Jita"
	HubRegion         = "The Forge"
)

// Identifier is a resolved ESI id with its display name. Only ID takes part in equality.
type Identifier struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// Quote is the order that set a region-wide best price.
type Quote struct {
	Price        decimal.Decimal `json:"price"`
	SystemID     int32           `json:"system_id"`
	VolumeRemain int32           `json:"volume_remain"`
}

// PriceSummary holds the best prices found in one scan of a region's order book.
// Best buy is the highest buy order, best sell the lowest sell order. Absent values
// mean no order of that side existed, which is distinct from a price of zero.
type PriceSummary struct {
	SystemBuy  decimal.NullDecimal `json:"system_buy"`
	SystemSell decimal.NullDecimal `json:"system_sell"`
	RegionBuy  *Quote              `json:"region_buy,omitempty"`
	RegionSell *Quote              `json:"region_sell,omitempty"`
}

// RegionBestBuy returns the region-wide best buy price, if any.
func (s PriceSummary) RegionBestBuy() decimal.NullDecimal { return quotePrice(s.RegionBuy) }

// RegionBestSell returns the region-wide best sell price, if any.
func (s PriceSummary) RegionBestSell() decimal.NullDecimal { return quotePrice(s.RegionSell) }

// RegionBestBuyVolume is the remaining volume of the best buy order, 0 if absent.
func (s PriceSummary) RegionBestBuyVolume() int32 { return quoteVolume(s.RegionBuy) }

// RegionBestSellVolume is the remaining volume of the best sell order, 0 if absent.
func (s PriceSummary) RegionBestSellVolume() int32 { return quoteVolume(s.RegionSell) }

func quotePrice(q *Quote) decimal.NullDecimal {
	if q == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(q.Price)
}

func quoteVolume(q *Quote) int32 {
	if q == nil {
		return 0
	}
	return q.VolumeRemain
}

// Delta compares a local price against the hub: Diff = local - hub, Percent = Diff / hub * 100.
type Delta struct {
	Diff    decimal.Decimal `json:"diff"`
	Percent decimal.Decimal `json:"percent"`
}

var hundred = decimal.NewFromInt(100)

// NewDelta returns nil unless both prices are present and the hub price is non-zero.
func NewDelta(local, hub decimal.NullDecimal) *Delta {
	if !local.Valid || !hub.Valid || hub.Decimal.IsZero() {
		return nil
	}
	diff := local.Decimal.Sub(hub.Decimal)
	return &Delta{
		Diff:    diff,
		Percent: diff.Div(hub.Decimal).Mul(hundred),
	}
}

// Location is where a region-best order sits, with the jump distance from the
// target system. Jumps is nil when no charted route exists.
type Location struct {
	System Identifier `json:"system"`
	Jumps  *int       `json:"jumps,omitempty"`
}

// ComparisonReport is the result of one price comparison.
type ComparisonReport struct {
	Item       Identifier `json:"item"`
	ItemVolume float64    `json:"item_volume"` // m3, 0 if unknown
	System     Identifier `json:"system"`
	Region     Identifier `json:"region"`
	Hub        Identifier `json:"hub"`

	Local     PriceSummary `json:"local"`
	HubPrices PriceSummary `json:"hub_prices"`

	// HubJumps is the distance from System to the hub, nil when unreachable.
	HubJumps *int `json:"hub_jumps,omitempty"`

	SellLocation *Location `json:"sell_location,omitempty"`
	BuyLocation  *Location `json:"buy_location,omitempty"`

	// Region best vs hub best. Present only when both sides have a price.
	SellDelta *Delta `json:"sell_delta,omitempty"`
	BuyDelta  *Delta `json:"buy_delta,omitempty"`
}
