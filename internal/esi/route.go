package esi

import (
	"context"
	"fmt"
)

// Route returns the systems on the shortest gate route from origin to destination,
// both ends included. ESI answers 404 when no charted route exists.
func (c *Client) Route(ctx context.Context, origin, destination int32) ([]int32, error) {
	var path []int32
	if err := c.GetJSON(ctx, fmt.Sprintf("/route/%d/%d/", origin, destination), nil, &path); err != nil {
		return nil, err
	}
	return path, nil
}
