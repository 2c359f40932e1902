package discord

// InteractionType is the "type" of an incoming interaction.
type InteractionType int

const (
	InteractionPing               InteractionType = 1
	InteractionApplicationCommand InteractionType = 2
)

// ResponseType is the "type" of an interaction response.
type ResponseType int

const (
	ResponsePong                   ResponseType = 1
	ResponseDeferredChannelMessage ResponseType = 5
)

// Interaction is an incoming interaction payload. Only the fields the bot reads
// are decoded.
type Interaction struct {
	Type          InteractionType `json:"type"`
	Token         string          `json:"token"`
	ApplicationID string          `json:"application_id"`
	Data          *CommandData    `json:"data,omitempty"`
}

// CommandData carries the invoked slash command and its options.
type CommandData struct {
	Name    string          `json:"name"`
	Options []CommandOption `json:"options,omitempty"`
}

// CommandOption is one supplied option value.
type CommandOption struct {
	Name  string      `json:"name"`
	Type  int         `json:"type"`
	Value interface{} `json:"value"`
}

// StringOption returns the named string option, or "" if it is missing or not a string.
func (d *CommandData) StringOption(name string) string {
	if d == nil {
		return ""
	}
	for _, o := range d.Options {
		if o.Name != name {
			continue
		}
		s, _ := o.Value.(string)
		return s
	}
	return ""
}

// InteractionResponse is the synchronous reply to an interaction.
type InteractionResponse struct {
	Type ResponseType `json:"type"`
}

// WebhookMessage is the body used to edit the deferred original response.
// Exactly one of Content or Embeds is set.
type WebhookMessage struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}
