package contract

import "strings"

// Action is a step the user can pick from the action menu.
type Action string

const (
	ActionView     Action = "view"
	ActionTrack    Action = "track"
	ActionCancel   Action = "cancel"
	ActionEscalate Action = "escalate"
	ActionShop     Action = "shop"
)

// Tuning shared by the lookup flow.
type LookupPolicy struct {
	StrikeLimit int
	EmailDomain string
}

const (
	DefaultStrikeLimit = 2
	DefaultEmailDomain = "@gmail.com"
)

func (p LookupPolicy) WithDefaults() LookupPolicy {
	if p.StrikeLimit <= 0 {
		p.StrikeLimit = DefaultStrikeLimit
	}
	domain := strings.ToLower(strings.TrimSpace(p.EmailDomain))
	switch {
	case domain == "":
		domain = DefaultEmailDomain
	case !strings.HasPrefix(domain, "@"):
		domain = "@" + domain
	}
	p.EmailDomain = domain
	return p
}
