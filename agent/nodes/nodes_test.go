package nodes

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

func TestReadQueryRoutes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		answer string
		want   string
	}{
		{answer: "37", want: NodeLookupTracking},
		{answer: "abc", want: NodeLookupTracking},
		{answer: "no", want: NodeLookupEmail},
		{answer: "nope i forgot", want: NodeLookupEmail},
		{answer: "i don't know", want: NodeLookupEmail},
		{answer: "nothing", want: NodeLookupEmail},
		{answer: "dunno", want: NodeLookupEmail},
	}

	for _, tc := range cases {
		p := &fakePrompter{answers: []string{tc.answer}}
		out, err := ReadQuery(context.Background(), &GraphState{}, newDeps(p, fixtureStore(t)))
		if err != nil {
			t.Fatalf("ReadQuery(%q) error = %v", tc.answer, err)
		}
		if out.Route != tc.want {
			t.Fatalf("ReadQuery(%q) route = %q, want %q", tc.answer, out.Route, tc.want)
		}
	}
}

func TestReadQueryPropagatesControlKeywords(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{answers: []string{"help"}}
	_, err := ReadQuery(context.Background(), &GraphState{}, newDeps(p, fixtureStore(t)))
	if !errors.Is(err, contractx.ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested, got %v", err)
	}

	if _, err := ReadQuery(context.Background(), nil, newDeps(p, fixtureStore(t))); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for nil state, got %v", err)
	}
}

func TestLookupTrackingFound(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{}
	out, err := LookupTracking(context.Background(), &GraphState{Query: "37"}, newDeps(p, fixtureStore(t)))
	if err != nil {
		t.Fatalf("LookupTracking() error = %v", err)
	}
	o, ok := out.Orders.Single()
	if !ok || o.ID != 37 || o.Seller != "nike" || o.ProductName != "jeans" {
		t.Fatalf("unexpected context: %+v", out.Orders)
	}
	if out.Route != NodeFinalize {
		t.Fatalf("route = %q, want %q", out.Route, NodeFinalize)
	}
	if len(p.prompts) != 0 {
		t.Fatalf("expected no further prompts, got %v", p.prompts)
	}
	if len(p.shown) != 1 {
		t.Fatalf("expected order to be displayed once, got %d", len(p.shown))
	}
}

func TestLookupTrackingFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		query   string
		answer  string
		route   string
		wantErr error
	}{
		{name: "unknown id then yes", query: "99999", answer: "yes", route: NodeLookupEmail},
		{name: "not a number then yes", query: "abc", answer: "sure", route: NodeLookupEmail},
		{name: "unknown id then no", query: "99999", answer: "nah", route: NodeFinalize},
		{name: "yes wins over no", query: "1", answer: "yes no", route: NodeLookupEmail},
		{name: "contains yes", query: "1", answer: "yess", route: NodeLookupEmail},
		{name: "contains no", query: "1", answer: "not really", route: NodeFinalize},
		{name: "gibberish", query: "1", answer: "maybe", wantErr: contractx.ErrHelpRequested},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakePrompter{answers: []string{tc.answer}}
			out, err := LookupTracking(context.Background(), &GraphState{Query: tc.query}, newDeps(p, fixtureStore(t)))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupTracking() error = %v", err)
			}
			if out.Route != tc.route {
				t.Fatalf("route = %q, want %q", out.Route, tc.route)
			}
			if tc.route == NodeFinalize && !out.Orders.Empty() {
				t.Fatalf("expected empty context, got %+v", out.Orders)
			}
		})
	}
}

func TestLookupEmailSingleOrder(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{answers: []string{"a@gmail.com"}}
	out, err := LookupEmail(context.Background(), &GraphState{}, newDeps(p, fixtureStore(t)))
	if err != nil {
		t.Fatalf("LookupEmail() error = %v", err)
	}
	if o, ok := out.Orders.Single(); !ok || o.ID != 37 {
		t.Fatalf("unexpected context: %+v", out.Orders)
	}
}

func TestLookupEmailNarrowsByProduct(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{answers: []string{"b@gmail.com", "product name", "hoodie"}}
	out, err := LookupEmail(context.Background(), &GraphState{}, newDeps(p, fixtureStore(t)))
	if err != nil {
		t.Fatalf("LookupEmail() error = %v", err)
	}
	o, ok := out.Orders.Single()
	if !ok || o.ProductName != "hoodie" || o.UserEmail != "b@gmail.com" {
		t.Fatalf("unexpected context: %+v", out.Orders)
	}
	if !strings.Contains(p.prompts[1], "You have 23 orders") {
		t.Fatalf("unexpected attribute prompt %q", p.prompts[1])
	}
	if p.prompts[2] != "What's the product name? " {
		t.Fatalf("unexpected narrow prompt %q", p.prompts[2])
	}
}

func TestLookupEmailNarrowsBySellerThenProduct(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{answers: []string{"b@gmail.com", "seller", "nike", "socks"}}
	out, err := LookupEmail(context.Background(), &GraphState{}, newDeps(p, fixtureStore(t)))
	if err != nil {
		t.Fatalf("LookupEmail() error = %v", err)
	}
	if o, ok := out.Orders.Single(); !ok || o.ID != 104 {
		t.Fatalf("unexpected context: %+v", out.Orders)
	}
	if p.prompts[3] != "What's the product name? " {
		t.Fatalf("expected second round by product name, got %q", p.prompts[3])
	}
}

func TestLookupEmailMultipleMatchesAfterTwoRounds(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{answers: []string{"c@gmail.com", "seller", "adidas", "socks"}}
	out, err := LookupEmail(context.Background(), &GraphState{}, newDeps(p, fixtureStore(t)))
	if err != nil {
		t.Fatalf("LookupEmail() error = %v", err)
	}
	if len(out.Orders) != 2 {
		t.Fatalf("expected two orders, got %+v", out.Orders)
	}
	if len(p.prompts) != 4 {
		t.Fatalf("expected at most two narrowing rounds, got prompts %v", p.prompts)
	}
}

func TestLookupEmailFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		answers  []string
		notFound bool
	}{
		{name: "unknown email", answers: []string{"zz@gmail.com"}, notFound: true},
		{name: "email without orders", answers: []string{"d@gmail.com"}, notFound: true},
		{name: "unknown attribute", answers: []string{"b@gmail.com", "colour"}},
		{name: "no seller match", answers: []string{"b@gmail.com", "seller", "puma"}, notFound: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakePrompter{answers: tc.answers}
			_, err := LookupEmail(context.Background(), &GraphState{}, newDeps(p, fixtureStore(t)))
			if !errors.Is(err, contractx.ErrHelpRequested) {
				t.Fatalf("expected ErrHelpRequested, got %v", err)
			}
			if got := errors.Is(err, contractx.ErrNotFound); got != tc.notFound {
				t.Fatalf("errors.Is(err, ErrNotFound) = %v, want %v (%v)", got, tc.notFound, err)
			}
		})
	}
}

func TestReadEmailStrikeBoundary(t *testing.T) {
	t.Parallel()

	// initial attempt plus two retries is accepted
	p := &fakePrompter{answers: []string{"bad", "still bad", "a@gmail.com"}}
	email, err := readEmail(context.Background(), newDeps(p, fixtureStore(t)))
	if err != nil {
		t.Fatalf("readEmail() error = %v", err)
	}
	if email != "a@gmail.com" {
		t.Fatalf("email = %q", email)
	}

	// the third invalid attempt raises help
	p = &fakePrompter{answers: []string{"bad", "bad", "bad", "a@gmail.com"}}
	_, err = readEmail(context.Background(), newDeps(p, fixtureStore(t)))
	if !errors.Is(err, contractx.ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested, got %v", err)
	}
	if len(p.prompts) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(p.prompts))
	}
	if p.said[len(p.said)-1] != "Too many invalid attempts....\n" {
		t.Fatalf("unexpected message %q", p.said[len(p.said)-1])
	}
}

func TestNarrowSingleRoundWithoutSecondary(t *testing.T) {
	t.Parallel()

	store := fixtureStore(t)
	orders, _ := store.FindByEmail("c@gmail.com")
	p := &fakePrompter{answers: []string{"socks"}}

	got, err := Narrow(context.Background(), p, statex.AttrProductName, statex.AttrNone, orders, 0)
	if err != nil {
		t.Fatalf("Narrow() error = %v", err)
	}
	if len(got) != 2 || len(p.prompts) != 1 {
		t.Fatalf("expected two matches after one round, got %d matches %d prompts", len(got), len(p.prompts))
	}
}

func TestFinalize(t *testing.T) {
	t.Parallel()

	got, err := Finalize(&GraphState{Orders: statex.OrderContext{}})
	if err != nil || got != nil {
		t.Fatalf("Finalize(empty) = %v, %v", got, err)
	}

	o := &statex.Order{ID: 1}
	got, err = Finalize(&GraphState{Orders: statex.OrderContext{o}})
	if err != nil || len(got) != 1 || got[0] != o {
		t.Fatalf("Finalize() = %v, %v", got, err)
	}
}

func TestDepsValidate(t *testing.T) {
	t.Parallel()

	if err := (Deps{}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := newDeps(&fakePrompter{}, fixtureStore(t)).Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestReadEmailRequiresAtBeforeBareDomain(t *testing.T) {
	t.Parallel()

	d := newDeps(&fakePrompter{answers: []string{"xgmail.com", "ygmail.com", "zgmail.com"}}, fixtureStore(t))
	d.Policy = contractx.LookupPolicy{EmailDomain: "gmail.com"}.WithDefaults()

	if _, err := readEmail(context.Background(), d); !errors.Is(err, contractx.ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested for addresses without @, got %v", err)
	}
}
