package esi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// MarketOrder mirrors the ESI market order response.
type MarketOrder struct {
	OrderID      int64           `json:"order_id"`
	TypeID       int32           `json:"type_id"`
	LocationID   int64           `json:"location_id"`
	SystemID     int32           `json:"system_id"`
	Price        decimal.Decimal `json:"price"`
	VolumeRemain int32           `json:"volume_remain"`
	IsBuyOrder   bool            `json:"is_buy_order"`
}

// OrdersPage is one page of a region's order book.
type OrdersPage struct {
	Orders []MarketOrder
	// Pages is the total page count reported by ESI (X-Pages), 0 if not reported.
	Pages int
}

// RegionOrdersPage fetches a single page (1-based) of all buy and sell orders for
// typeID in regionID. ESI answers 404 once page runs past the last page.
func (c *Client) RegionOrdersPage(ctx context.Context, regionID, typeID int32, page int) (*OrdersPage, error) {
	q := url.Values{}
	q.Set("order_type", "all")
	q.Set("type_id", strconv.Itoa(int(typeID)))
	q.Set("page", strconv.Itoa(page))

	var orders []MarketOrder
	h, err := c.do(ctx, "GET", fmt.Sprintf("/markets/%d/orders/", regionID), q, nil, &orders)
	if err != nil {
		return nil, err
	}
	return &OrdersPage{Orders: orders, Pages: pagesHeader(h)}, nil
}
