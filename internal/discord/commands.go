package discord

import (
	"context"
	"fmt"
	"net/http"
)

// Application command and option types used by the bot.
const (
	CommandChatInput = 1
	OptionString     = 3
)

// PriceCommandName is the slash command that triggers a comparison.
const PriceCommandName = "price"

// Command is a global application command definition.
type Command struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        int             `json:"type"`
	Options     []CommandSchema `json:"options,omitempty"`
}

// CommandSchema declares one option of a Command.
type CommandSchema struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        int    `json:"type"`
	Required    bool   `json:"required"`
}

// Commands returns every command the bot serves.
func Commands() []Command {
	return []Command{{
		Name:        PriceCommandName,
		Description: "Show buy/sell prices for an item in a system vs Jita",
		Type:        CommandChatInput,
		Options: []CommandSchema{
			{Name: "system", Description: "K-space system name (e.g. Amarr, Dodixie, Hek)", Type: OptionString, Required: true},
			{Name: "item", Description: "Item name (e.g. Tritanium, Ishtar, Large Shield Extender II)", Type: OptionString, Required: true},
		},
	}}
}

// RegisterCommands overwrites the application's global commands with cmds and
// returns what Discord stored.
func (c *Client) RegisterCommands(ctx context.Context, cmds []Command) ([]Command, error) {
	var out []Command
	path := fmt.Sprintf("/applications/%s/commands", c.appID)
	if err := c.do(ctx, http.MethodPut, path, true, cmds, &out); err != nil {
		return nil, err
	}
	return out, nil
}
