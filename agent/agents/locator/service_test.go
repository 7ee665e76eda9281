package locator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	keywordx "github.com/tanpawarit/Chative-Order-Assistant/agent/keyword"
	nodex "github.com/tanpawarit/Chative-Order-Assistant/agent/nodes"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

type fakePrompter struct {
	answers []string
	prompts []string
}

func (f *fakePrompter) Read(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.answers) == 0 {
		return "", fmt.Errorf("%w: script exhausted", contractx.ErrExitRequested)
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	if answer == "help" {
		return "", contractx.ErrHelpRequested
	}
	return answer, nil
}

func (f *fakePrompter) Say(string, ...any)          {}
func (f *fakePrompter) ShowOrders([]*statex.Order) {}
func (f *fakePrompter) Farewell()                  {}

func newLocator(t *testing.T, answers ...string) (*Locator, *fakePrompter) {
	t.Helper()

	store := statex.NewMemoryStore()
	_, err := store.Add(statex.Order{ID: 37, UserEmail: "a@gmail.com", Seller: "nike", ProductName: "jeans", Status: "shipped"})
	require.NoError(t, err)
	for i, p := range []string{"jeans", "hoodie", "socks"} {
		_, err := store.Add(statex.Order{ID: 100 + i, UserEmail: "b@gmail.com", Seller: "nike", ProductName: p, Status: "processing"})
		require.NoError(t, err)
	}

	p := &fakePrompter{answers: answers}
	l, err := New(nodex.Deps{
		Prompter: p,
		Orders:   store,
		Keywords: keywordx.Default(),
		Policy:   contractx.LookupPolicy{EmailDomain: "@gmail.com"},
	})
	require.NoError(t, err)
	return l, p
}

func TestLocateByTrackingNumber(t *testing.T) {
	t.Parallel()

	l, p := newLocator(t, "37")
	got, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{37}, got.IDs())
	assert.Len(t, p.prompts, 1)
}

func TestLocateFallsBackToEmail(t *testing.T) {
	t.Parallel()

	l, _ := newLocator(t, "99999", "yes", "b@gmail.com", "product", "hoodie")
	got, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{101}, got.IDs())
}

func TestLocateSkipsTrackingOnNo(t *testing.T) {
	t.Parallel()

	l, p := newLocator(t, "no", "a@gmail.com")
	got, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{37}, got.IDs())
	assert.Equal(t, "What email address did you use to make this order? ", p.prompts[1])
}

func TestLocateDeclinedReturnsEmptyContext(t *testing.T) {
	t.Parallel()

	l, _ := newLocator(t, "42", "no")
	got, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestLocatePropagatesHelp(t *testing.T) {
	t.Parallel()

	cases := [][]string{
		{"help"},
		{"no", "zz@gmail.com"},
		{"no", "x", "y", "z"},
		{"no", "b@gmail.com", "colour"},
	}
	for _, answers := range cases {
		l, _ := newLocator(t, answers...)
		_, err := l.Locate(context.Background())
		assert.True(t, errors.Is(err, contractx.ErrHelpRequested), "answers %v: got %v", answers, err)
	}
}

func TestLocateIsRepeatable(t *testing.T) {
	t.Parallel()

	l, _ := newLocator(t, "37", "100")
	first, err := l.Locate(context.Background())
	require.NoError(t, err)
	second, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{37}, first.IDs())
	assert.Equal(t, []int{100}, second.IDs())
}

func TestNewRejectsMissingDeps(t *testing.T) {
	t.Parallel()

	_, err := New(nodex.Deps{Keywords: keywordx.Default()})
	assert.ErrorIs(t, err, contractx.ErrValidation)
}

func TestLocateTreatsNoFragmentAsForgotten(t *testing.T) {
	t.Parallel()

	for _, answer := range []string{"i don't know", "nothing", "dunno"} {
		l, p := newLocator(t, answer, "a@gmail.com")
		got, err := l.Locate(context.Background())
		require.NoError(t, err, answer)
		assert.Equal(t, []int{37}, got.IDs(), answer)
		assert.Equal(t, "What email address did you use to make this order? ", p.prompts[1], answer)
	}
}
