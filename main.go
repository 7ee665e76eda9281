package main

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/Chative-Order-Assistant/agent/agents/dispatcher"
	"github.com/tanpawarit/Chative-Order-Assistant/agent/agents/escalation"
	"github.com/tanpawarit/Chative-Order-Assistant/agent/agents/locator"
	"github.com/tanpawarit/Chative-Order-Assistant/agent/agents/orchestrator"
	consolex "github.com/tanpawarit/Chative-Order-Assistant/agent/console"
	contractx "github.com/tanpawarit/Chative-Order-Assistant/agent/contract"
	keywordx "github.com/tanpawarit/Chative-Order-Assistant/agent/keyword"
	nodex "github.com/tanpawarit/Chative-Order-Assistant/agent/nodes"
	promptx "github.com/tanpawarit/Chative-Order-Assistant/agent/prompt"
	statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"
	configx "github.com/tanpawarit/Chative-Order-Assistant/pkg/config"
	logx "github.com/tanpawarit/Chative-Order-Assistant/pkg/logger"
)

type AppConfig struct {
	AssistantName string        `envconfig:"ASSISTANT_NAME" default:"Juji"`
	ShoppingLink  string        `envconfig:"SHOPPING_LINK" default:"amazon.com"`
	StrikeLimit   int           `envconfig:"STRIKE_LIMIT" default:"2"`
	EmailDomain   string        `envconfig:"EMAIL_DOMAIN" default:"@gmail.com"`
	CallDelay     time.Duration `envconfig:"CALL_DELAY" default:"2s"`
	HangupDelay   time.Duration `envconfig:"HANGUP_DELAY" default:"1s"`
	Seed          uint64        `envconfig:"SEED" default:"0"`
	KeywordsFile  string        `envconfig:"KEYWORDS_FILE"`

	Log logx.Config `envconfig:"LOG"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("ORDERBOT")
	logx.Init(appCfg.Log)

	if err := run(context.Background(), *appCfg, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("order assistant stopped")
	}
}

func run(ctx context.Context, cfg AppConfig, in io.Reader, out io.Writer) error {
	book, err := keywordx.Load(cfg.KeywordsFile)
	if err != nil {
		return err
	}
	prompts, err := promptx.LoadPromptSet()
	if err != nil {
		return err
	}
	catalog, err := statex.LoadCatalog()
	if err != nil {
		return err
	}

	policy := contractx.LookupPolicy{
		StrikeLimit: cfg.StrikeLimit,
		EmailDomain: cfg.EmailDomain,
	}.WithDefaults()

	store, err := statex.Generate(catalog, policy.EmailDomain, newRand(cfg.Seed))
	if err != nil {
		return err
	}
	log.Debug().Int("orders", store.Len()).Int("users", store.Users()).Msg("order dataset generated")

	console := consolex.New(in, out, book, prompts, consolex.Options{AssistantName: cfg.AssistantName})

	loc, err := locator.New(nodex.Deps{
		Prompter: console,
		Orders:   store,
		Keywords: book,
		Policy:   policy,
	})
	if err != nil {
		return err
	}

	disp, err := dispatcher.New(console, loc, store, prompts, dispatcher.Config{ShoppingLink: cfg.ShoppingLink})
	if err != nil {
		return err
	}

	esc, err := escalation.New(console, book, prompts, escalation.Config{
		CallDelay:   cfg.CallDelay,
		HangupDelay: cfg.HangupDelay,
	})
	if err != nil {
		return err
	}

	o, err := orchestrator.New(console, loc, disp, esc)
	if err != nil {
		return err
	}
	return o.Run(ctx)
}

// newRand seeds the dataset generator; zero picks a time-based seed.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
}
