package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"eve-pricebot/internal/engine"
)

// PriceColour is the side bar colour of every price embed.
const PriceColour = 0x00b0f4

const noOrders = "No orders"

// Embed is the subset of a Discord message embed the bot produces.
type Embed struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color"`
	Fields      []Field `json:"fields"`
	Footer      *Footer `json:"footer,omitempty"`
}

// Field is one embed field.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Footer is the embed footer.
type Footer struct {
	Text string `json:"text"`
}

// BuildPriceEmbed renders a comparison report as a Discord embed.
func BuildPriceEmbed(rep *engine.ComparisonReport) Embed {
	e := Embed{
		Title:       rep.Item.Name,
		Description: fmt.Sprintf("**Volume:** %s m³", humanize.FormatFloat("#,###.##", rep.ItemVolume)),
		Color:       PriceColour,
		Footer:      &Footer{Text: "Data from EVE ESI"},
	}

	e.Fields = append(e.Fields, Field{
		Name:   rep.System.Name + " (system)",
		Value:  priceLines(rep.Local.SystemSell, rep.Local.SystemBuy),
		Inline: true,
	})

	e.Fields = append(e.Fields, Field{
		Name: rep.Region.Name + " (region)",
		Value: strings.Join([]string{
			regionLine("Sell", rep.Local.RegionSell, rep.SellLocation),
			regionLine("Buy", rep.Local.RegionBuy, rep.BuyLocation),
		}, "\n"),
		Inline: true,
	})

	e.Fields = append(e.Fields, Field{
		Name:   rep.Hub.Name + jumpsSuffix(rep.HubJumps),
		Value:  priceLines(rep.HubPrices.RegionBestSell(), rep.HubPrices.RegionBestBuy()),
		Inline: true,
	})

	var cmp []string
	if rep.SellDelta != nil {
		cmp = append(cmp, deltaLine("Sell", rep.SellDelta))
	}
	if rep.BuyDelta != nil {
		cmp = append(cmp, deltaLine("Buy", rep.BuyDelta))
	}
	if len(cmp) > 0 {
		e.Fields = append(e.Fields, Field{
			Name:  fmt.Sprintf("%s vs %s", rep.Region.Name, rep.Hub.Name),
			Value: strings.Join(cmp, "\n"),
		})
	}
	return e
}

// ErrorContent renders a failed comparison as message content. The unresolved
// name is shown in bold; other failures use the generic user message.
func ErrorContent(err error) string {
	var nf *engine.NotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("%s not found: **%s**", nf.Kind, nf.Name)
	}
	return engine.UserMessage(err)
}

// FormatISK renders an amount as "1,234,567.89 ISK".
func FormatISK(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return humanize.FormatFloat("#,###.##", f) + " ISK"
}

func optionalISK(d decimal.NullDecimal) string {
	if !d.Valid {
		return noOrders
	}
	return FormatISK(d.Decimal)
}

func priceLines(sell, buy decimal.NullDecimal) string {
	return fmt.Sprintf("**Sell:** %s\n**Buy:** %s", optionalISK(sell), optionalISK(buy))
}

func regionLine(side string, q *engine.Quote, loc *engine.Location) string {
	if q == nil {
		return fmt.Sprintf("**%s:** %s", side, noOrders)
	}
	name := ""
	var jumps *int
	if loc != nil {
		name = loc.System.Name
		jumps = loc.Jumps
	}
	return fmt.Sprintf("**%s:** %s\n  %s%s • %s units",
		side, FormatISK(q.Price), name, jumpsSuffix(jumps), humanize.Comma(int64(q.VolumeRemain)))
}

func jumpsSuffix(j *int) string {
	if j == nil {
		return ""
	}
	return fmt.Sprintf(" (%dj)", *j)
}

func deltaLine(side string, d *engine.Delta) string {
	sign := ""
	if !d.Diff.IsNegative() {
		sign = "+"
	}
	return fmt.Sprintf("%s: %s%s (%s%s%%)", side, sign, FormatISK(d.Diff), sign, d.Percent.StringFixed(1))
}

// PlainText renders an embed for a terminal: markdown bold markers are dropped
// and fields are separated by blank lines.
func PlainText(e Embed) string {
	var b strings.Builder
	b.WriteString(e.Title)
	b.WriteString("\n")
	if e.Description != "" {
		b.WriteString(stripBold(e.Description))
		b.WriteString("\n")
	}
	for _, f := range e.Fields {
		b.WriteString("\n")
		b.WriteString(f.Name)
		b.WriteString("\n")
		for _, line := range strings.Split(stripBold(f.Value), "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if e.Footer != nil {
		b.WriteString("\n")
		b.WriteString(e.Footer.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
