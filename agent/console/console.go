package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	keywordx "github.com/tanpawarit/Chative-Order-Assistant/agent/keyword"
	promptx "github.com/tanpawarit/Chative-Order-Assistant/agent/prompt"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
)

var _ contractx.Console = (*Console)(nil)

const (
	DefaultAssistantName = "Juji"

	// MaxLineBytes bounds one reply; longer lines are discarded.
	MaxLineBytes = 64 * 1024
)

type Options struct {
	AssistantName string
}

type styles struct {
	banner  lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
}

// Console is the line-based terminal the user talks to. Every read goes through
// Read, which is where the help and exit keywords are intercepted.
type Console struct {
	reader   *bufio.Reader
	out      io.Writer
	keywords keywordx.Book
	prompts  promptx.PromptSet
	name     string
	styles   styles
}

func New(in io.Reader, out io.Writer, keywords keywordx.Book, prompts promptx.PromptSet, opts Options) *Console {
	name := strings.TrimSpace(opts.AssistantName)
	if name == "" {
		name = DefaultAssistantName
	}

	r := lipgloss.NewRenderer(out)
	return &Console{
		reader:   bufio.NewReader(in),
		out:      out,
		keywords: keywords,
		prompts:  prompts,
		name:     name,
		styles: styles{
			banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
			heading: r.NewStyle().Bold(true),
			label:   r.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		},
	}
}

// Read prints prompt and returns the reply lowercased and trimmed.
func (c *Console) Read(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(c.out, prompt)
	line, tooLong, err := c.readLine()
	if errors.Is(err, io.EOF) {
		log.Debug().Str("component", "console").Msg("input closed")
		fmt.Fprintln(c.out)
		c.Farewell()
		return "", fmt.Errorf("%w: end of input", contractx.ErrExitRequested)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(c.out)

	if tooLong {
		log.Debug().Str("component", "console").Msg("input line too long")
		c.Say("I'm sorry. That input is too long for me. \n")
		return "", fmt.Errorf("%w: input longer than %d bytes", contractx.ErrHelpRequested, MaxLineBytes)
	}

	text := normalize(line)
	switch {
	case c.keywords.IsHelp(text):
		log.Debug().Str("component", "console").Msg("help keyword")
		return "", contractx.ErrHelpRequested
	case c.keywords.IsExit(text):
		log.Debug().Str("component", "console").Str("keyword", text).Msg("exit keyword")
		c.Farewell()
		return "", contractx.ErrExitRequested
	}
	return text, nil
}

// readLine returns the next line without its terminator. A line over
// MaxLineBytes is consumed in full and reported with tooLong.
func (c *Console) readLine() (string, bool, error) {
	var buf []byte
	read, tooLong := false, false
	for {
		chunk, isPrefix, err := c.reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		read = true

		if !tooLong {
			if len(buf)+len(chunk) > MaxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(c.out)
	}
}

func (c *Console) ShowOrders(orders []*statex.Order) {
	if len(orders) == 0 {
		return
	}

	fmt.Fprintln(c.out, c.styles.heading.Render("======================== Here Are Your Orders =============================="))
	for i, o := range orders {
		if o == nil {
			continue
		}
		fmt.Fprintln(c.out)
		fmt.Fprintf(c.out, "%s\n\n", c.styles.heading.Render(fmt.Sprintf("Order %d:", i+1)))
		fmt.Fprintf(c.out, "  %s %d\n", c.styles.label.Render("Order ID:"), o.ID)
		fmt.Fprintf(c.out, "  %s %s\n", c.styles.label.Render("Name:    "), o.ProductName)
		fmt.Fprintf(c.out, "  %s %s\n", c.styles.label.Render("Seller:  "), o.Seller)
		fmt.Fprintf(c.out, "  %s %s\n", c.styles.label.Render("Status:  "), o.Status)
	}
	fmt.Fprintln(c.out)
}

func (c *Console) Greet() error {
	text, err := c.prompts.Greeting(promptx.GreetingData{
		Name: c.name,
		Help: c.keywords.Help,
		Exit: c.keywords.Exit,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out)
	c.printBlock(text)
	fmt.Fprintln(c.out)
	return nil
}

func (c *Console) Farewell() {
	fmt.Fprintln(c.out)
	c.printBlock(c.prompts.Farewell())
	fmt.Fprintln(c.out)
}

// printBlock styles line by line so lipgloss does not pad the block.
func (c *Console) printBlock(text string) {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "***") {
			fmt.Fprintln(c.out, c.styles.banner.Render(line))
			continue
		}
		fmt.Fprintln(c.out, line)
	}
}
