package main

import (
	"context"
	"flag"
	"fmt"
	"hex/config"
	"hex/engine"
	"hex/experiments"
	"hex/experiments/metrics"
	"hex/gamemaster"
	"hex/searcher/agent"
	"hex/server"
	"hex/store"
	"hex/utils"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: hex <command> [flags]

commands:
  serve       run the HTTP and websocket server
  selfplay    play automated games locally and print them
  experiment  run a self-play experiment and write CSV results`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = serve(os.Args[2:])
	case "selfplay":
		err = selfplay(os.Args[2:])
	case "experiment":
		err = experiment(os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

// loadConfig parses args with fs, loads the config file named by -config and applies the
// flags the user set on top of it.
func loadConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	path := fs.String("config", "", "YAML config file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	goroutines := fs.Int("goroutines", 0, "goroutines evaluating cells in parallel")
	playouts := fs.Int("playouts", 0, "simulations per empty cell")
	width := fs.Int("width", 0, "board width")
	height := fs.Int("height", 0, "board height")
	seed := fs.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return config.Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = *logLevel
		case "goroutines":
			cfg.Goroutines = *goroutines
		case "playouts":
			cfg.Playouts = *playouts
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "seed":
			cfg.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	zerolog.SetGlobalLevel(cfg.Level())
	return cfg, nil
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "listen address")
	storeMode := fs.String("store", "", "game record store (memory, sqlite, postgres)")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *storeMode != "" {
		cfg.Store.Mode = *storeMode
	}

	st, mode, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()
	log.Info().Str("mode", mode).Msg("game record store ready")

	master := gamemaster.New(st,
		gamemaster.WithGoroutines(cfg.Goroutines),
		gamemaster.WithPlayouts(cfg.Playouts),
		gamemaster.WithSeed(cfg.Seed),
	)
	srv := server.New(master,
		server.WithGoroutines(cfg.Goroutines),
		server.WithPlayouts(cfg.Playouts),
		server.WithMaxPlayouts(cfg.MaxPlayouts),
		server.WithMaxSimulations(cfg.MaxSimulations),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, cfg.Addr)
}

func selfplay(args []string) error {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	games := fs.Int("games", 1, "number of games")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	random := utils.NewRandom(cfg.Seed)
	evaluator := metrics.AgentConfig{Kind: experiments.KindEvaluation, Goroutines: cfg.Goroutines, Playouts: cfg.Playouts}
	for i := 0; i < *games; i++ {
		e, err := engine.LocalEngine([]agent.Agent{
			experiments.CreateAgent(evaluator, utils.Fork(random)),
			experiments.CreateAgent(evaluator, utils.Fork(random)),
		}, cfg.Width, cfg.Height, engine.WithRandom(utils.Fork(random)))
		if err != nil {
			return err
		}
		winner, gameMetric, _, err := e.Run()
		if err != nil {
			return err
		}
		log.Info().Msgf("game %d of %d won by %s after %d moves in %s", i+1, *games, winner, gameMetric.TotalMoves, gameMetric.Duration)
		fmt.Printf("game %s\n%s", e.Game.ID(), e.Game)
	}
	return nil
}

func experiment(args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	name := fs.String("name", "playouts", "experiment to run (playouts, parallel)")
	games := fs.Int("games", 0, "games per match up")
	output := fs.String("output", "", "directory for CSV results")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *output != "" {
		cfg.OutputDir = *output
	}

	settings := experiments.Settings{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Games:     cfg.Games,
		OutputDir: cfg.OutputDir,
		Seed:      cfg.Seed,
	}
	var dir string
	switch *name {
	case "playouts":
		dir, err = experiments.RunPlayoutExperiment(settings)
	case "parallel":
		dir, err = experiments.RunParallelizationExperiment(settings)
	default:
		return fmt.Errorf("unknown experiment %q", *name)
	}
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("experiment results written")
	return nil
}
