package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

var (
	//go:embed template/greeting.txt
	greetingRaw string

	//go:embed template/farewell.txt
	farewellRaw string

	//go:embed template/support_call.txt
	supportCallRaw string

	//go:embed template/cancel_receipt.txt
	cancelReceiptRaw string
)

// Support call segments, printed with a pause between each.
const (
	CallDial  = "dial"
	CallHold  = "hold"
	CallClose = "close"
)

// PromptSet holds the parsed console templates.
type PromptSet struct {
	greeting    *template.Template
	farewell    string
	supportCall *template.Template
	receipt     *template.Template
}

type GreetingData struct {
	Name string
	Help string
	Exit []string
}

type CallData struct {
	Ticket string
}

type ReceiptData struct {
	ID          int
	ProductName string
	Seller      string
	RefundDays  int
}

// LoadPromptSet parses the embedded templates. Parsing is done once at startup.
func LoadPromptSet() (PromptSet, error) {
	greeting, err := template.New("greeting").Parse(greetingRaw)
	if err != nil {
		return PromptSet{}, fmt.Errorf("parse greeting template: %w", err)
	}
	supportCall, err := template.New("support_call").Parse(supportCallRaw)
	if err != nil {
		return PromptSet{}, fmt.Errorf("parse support call template: %w", err)
	}
	receipt, err := template.New("cancel_receipt").Parse(cancelReceiptRaw)
	if err != nil {
		return PromptSet{}, fmt.Errorf("parse cancel receipt template: %w", err)
	}
	return PromptSet{
		greeting:    greeting,
		farewell:    strings.TrimSpace(farewellRaw),
		supportCall: supportCall,
		receipt:     receipt,
	}, nil
}

func MustLoadPromptSet() PromptSet {
	p, err := LoadPromptSet()
	if err != nil {
		panic(err)
	}
	return p
}

func (p PromptSet) Greeting(data GreetingData) (string, error) {
	quoted := make([]string, 0, len(data.Exit))
	for _, w := range data.Exit {
		quoted = append(quoted, "'"+w+"'")
	}
	var b strings.Builder
	err := p.greeting.Execute(&b, struct {
		Name string
		Help string
		Exit string
	}{
		Name: data.Name,
		Help: data.Help,
		Exit: strings.Join(quoted, " or "),
	})
	if err != nil {
		return "", fmt.Errorf("render greeting: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

func (p PromptSet) Farewell() string {
	return p.farewell
}

// SupportCall renders one segment of the support call transcript.
func (p PromptSet) SupportCall(segment string, data CallData) (string, error) {
	var b strings.Builder
	if err := p.supportCall.ExecuteTemplate(&b, segment, data); err != nil {
		return "", fmt.Errorf("render support call %s: %w", segment, err)
	}
	return strings.Trim(b.String(), "\n"), nil
}

// CancelReceipt renders the confirmation shown after an order is cancelled.
func (p PromptSet) CancelReceipt(data ReceiptData) (string, error) {
	var b strings.Builder
	if err := p.receipt.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render cancel receipt: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}
