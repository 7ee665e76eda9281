package menu

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
)

// Item is one numbered entry in the action menu.
type Item struct {
	Choice int
	Label  string
	Action contractx.Action
}

// Menu is the ordered set of actions offered for a given order context.
type Menu []Item

// ForContext returns the menu for a session with or without an order in focus.
func ForContext(hasOrder bool) Menu {
	if hasOrder {
		return Menu{
			{Choice: 1, Label: "View order", Action: contractx.ActionView},
			{Choice: 2, Label: "Track another package", Action: contractx.ActionTrack},
			{Choice: 3, Label: "Cancel your order", Action: contractx.ActionCancel},
			{Choice: 4, Label: "Speak with a live agent", Action: contractx.ActionEscalate},
		}
	}
	return Menu{
		{Choice: 1, Label: "Speak with a live agent", Action: contractx.ActionEscalate},
		{Choice: 2, Label: "Order something else", Action: contractx.ActionShop},
		{Choice: 3, Label: "Track another package", Action: contractx.ActionTrack},
	}
}

func (m Menu) Resolve(choice int) (contractx.Action, bool) {
	for _, item := range m {
		if item.Choice == choice {
			return item.Action, true
		}
	}
	return "", false
}

// Prompt renders the menu as the question shown to the user.
func (m Menu) Prompt() string {
	var b strings.Builder
	b.WriteString("What do you want to do next? \n\n")
	for _, item := range m {
		fmt.Fprintf(&b, "  <%d> %s\n", item.Choice, item.Label)
	}
	b.WriteString("\n(Enter a number):  ")
	return b.String()
}
