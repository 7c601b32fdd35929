package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/bountyholdem/internal/client"
	"github.com/lox/bountyholdem/internal/equity"
	"github.com/lox/bountyholdem/internal/randutil"
	"github.com/lox/bountyholdem/internal/session"
	"github.com/lox/bountyholdem/internal/strategy"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `help:"Show version"`

	Engine  string `short:"e" default:"tcp://localhost:9000" help:"Engine URL (tcp://, ws:// or wss://)"`
	Seed    *int64 `help:"Random seed for reproducible play"`
	Trials  int    `short:"t" default:"0" help:"Monte Carlo trials per estimate (0 uses the tuning default)"`
	Tuning  string `type:"path" help:"Path to an HCL tuning file"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bountybot"),
		kong.Description("Bounty hold'em bot for engine matches"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	kctx.FatalIfErrorf(run(cli))
}

func run(cli CLI) error {
	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	tuning, err := strategy.LoadTuning(cli.Tuning)
	if err != nil {
		return fmt.Errorf("loading tuning: %w", err)
	}
	if cli.Trials > 0 {
		tuning.Trials = cli.Trials
	}

	seed := time.Now().UnixNano()
	if cli.Seed != nil {
		seed = *cli.Seed
	}
	rng := randutil.New(seed)
	logger.Debug("rng initialised", "seed", seed, "trials", tuning.Trials)

	match := session.NewMatch(logger)
	estimator := equity.NewEstimator(rng, tuning.Trials)
	policy := strategy.NewPolicy(tuning, rng, logger, estimator, match)

	transport, err := client.Dial(cli.Engine, logger)
	if err != nil {
		return err
	}
	defer transport.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := client.NewRunner(transport, policy, match, logger, nil)
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println(match.Report())
	return nil
}
