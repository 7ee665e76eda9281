package nodes

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	keywordx "github.com/tanpawarit/Chative-Order-Assistant/agent/keyword"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

// fakePrompter replays scripted answers; "help" and "quit" behave like the console.
type fakePrompter struct {
	answers []string
	prompts []string
	said    []string
	shown   [][]*statex.Order
}

func (f *fakePrompter) Read(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.answers) == 0 {
		return "", fmt.Errorf("%w: script exhausted", contractx.ErrExitRequested)
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	switch answer {
	case "help":
		return "", contractx.ErrHelpRequested
	case "quit":
		return "", contractx.ErrExitRequested
	}
	return answer, nil
}

func (f *fakePrompter) Say(format string, args ...any) {
	f.said = append(f.said, fmt.Sprintf(format, args...))
}

func (f *fakePrompter) ShowOrders(orders []*statex.Order) {
	f.shown = append(f.shown, orders)
}

func (f *fakePrompter) Farewell() {}

func newDeps(p contractx.Prompter, store contractx.OrderReader) Deps {
	return Deps{
		Prompter: p,
		Orders:   store,
		Keywords: keywordx.Default(),
		Policy:   contractx.LookupPolicy{}.WithDefaults(),
	}
}

var fixtureProducts = []string{
	"jeans", "hoodie", "jacket", "sneakers", "socks", "hat", "scarf", "gloves",
	"belt", "shorts", "t-shirt", "sweater", "boots", "sandals", "dress", "skirt",
	"blazer", "vest", "cardigan", "leggings", "pajamas", "backpack", "watch",
}

// fixtureStore holds:
//   - a@gmail.com with order 37 (nike, jeans)
//   - b@gmail.com with 23 nike orders, one per product, ids 100..122
//   - c@gmail.com with two adidas orders for the same product
//   - d@gmail.com known but without orders
func fixtureStore(t interface{ Fatalf(string, ...any) }) *statex.MemoryStore {
	s := statex.NewMemoryStore()
	add := func(o statex.Order) {
		if _, err := s.Add(o); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	add(statex.Order{ID: 37, UserEmail: "a@gmail.com", Seller: "nike", ProductName: "jeans", Status: "shipped"})
	for i, p := range fixtureProducts {
		add(statex.Order{ID: 100 + i, UserEmail: "b@gmail.com", Seller: "nike", ProductName: p, Status: "processing"})
	}
	add(statex.Order{ID: 200, UserEmail: "c@gmail.com", Seller: "adidas", ProductName: "socks", Status: "delivered"})
	add(statex.Order{ID: 201, UserEmail: "c@gmail.com", Seller: "adidas", ProductName: "socks", Status: "shipped"})
	if err := s.RegisterUser("d@gmail.com"); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	return s
}
