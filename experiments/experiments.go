package experiments

import (
	"fmt"
	"hex/engine"
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"
	"hex/searcher/agent"
	"hex/utils"
	"math"

	"github.com/rs/zerolog/log"
)

const (
	KindEvaluation = "evaluation"
	KindTraining   = "training"
	KindRandom     = "random"
)

// Settings are shared by every game of an experiment.
type Settings struct {
	Width     int
	Height    int
	Games     int // Per match up
	OutputDir string
	Seed      uint64
}

var playoutConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindEvaluation, Goroutines: 4, Playouts: 10},
	{ID: 2, Kind: KindEvaluation, Goroutines: 4, Playouts: 50},
	{ID: 3, Kind: KindEvaluation, Goroutines: 4, Playouts: 100},
	{ID: 4, Kind: KindEvaluation, Goroutines: 4, Playouts: 200},
	{ID: 5, Kind: KindTraining, Goroutines: 4, Playouts: 100, Temperature: 0.5},
}

// RunPlayoutExperiment pairs agents of increasing playouts against a random baseline.
// It returns the directory the results were written to.
func RunPlayoutExperiment(settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindRandom}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range playoutConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment("playouts_to_strength", settings, append(playoutConfigs, baseline), matchUps)
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindEvaluation, Goroutines: 1, Playouts: 50},
	{ID: 2, Kind: KindEvaluation, Goroutines: 2, Playouts: 50},
	{ID: 3, Kind: KindEvaluation, Goroutines: 4, Playouts: 50},
	{ID: 4, Kind: KindEvaluation, Goroutines: 8, Playouts: 50},
	{ID: 5, Kind: KindEvaluation, Goroutines: 16, Playouts: 50},
}

// RunParallelizationExperiment plays each goroutine count against itself. Workers do not
// change the evaluation, so the games measure throughput at equal strength.
func RunParallelizationExperiment(settings Settings) (string, error) {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return runExperiment("parallelization_to_throughput", settings, parallelConfigs, matchUps)
}

func runExperiment(name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	if settings.Games <= 0 {
		return "", fmt.Errorf("games per match up must be positive, got %d", settings.Games)
	}

	// Run a number of games for each matchup
	count := 0
	seeds := utils.NewRandom(settings.Seed)
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < settings.Games; i++ {
			// Alternate which agent plays Red
			red, blue := matchup[0], matchup[1]
			if i%2 == 1 {
				red, blue = blue, red
			}

			seed := uint64(seeds.IntRange(0, math.MaxInt32))
			winner, gameMetric, moveMetrics, err := runGame(settings, red, blue, seed)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     red.ID,
				Agent2:     blue.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	return writeResults(settings.OutputDir, name, configs, gameRecords, moveRecords)
}

func writeResults(root, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays red against blue and returns the winner.
func runGame(settings Settings, red, blue metrics.AgentConfig, seed uint64) (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	random := utils.NewRandom(seed)
	agents := []agent.Agent{
		CreateAgent(red, utils.Fork(random)),
		CreateAgent(blue, utils.Fork(random)),
	}
	e, err := engine.LocalEngine(agents, settings.Width, settings.Height, engine.WithSeed(seed))
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	return e.Run()
}

// CreateAgent builds the agent described by config. Unknown kinds are evaluation agents.
func CreateAgent(config metrics.AgentConfig, random utils.Random) agent.Agent {
	if config.Kind == KindRandom {
		return agent.NewRandomAgent(random)
	}

	goroutines := config.Goroutines
	if goroutines <= 0 {
		goroutines = searcher.DefaultGoroutines
	}
	mc := searcher.NewMonteCarlo(goroutines,
		searcher.WithPlayouts(config.Playouts),
		searcher.WithRandom(utils.Fork(random)),
		searcher.WithMetrics(),
	)

	if config.Kind == KindTraining {
		return agent.NewTrainingAgent(mc, random, config.Temperature)
	}
	return agent.NewEvaluationAgent(mc)
}
