package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/beldmian/pokergto/cfr"
	"github.com/beldmian/pokergto/poker"
	"github.com/beldmian/pokergto/poker/eval"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Solve SolveCmd `cmd:"" help:"solve a single decision point and print the resulting strategy"`
}

// SolveCmd is the sole subcommand: it takes a decision point in plain
// text form and prints the GTO strategy for it.
type SolveCmd struct {
	HeroHand     string  `help:"hero hole cards, e.g. AsKh" required:""`
	Board        string  `help:"community cards, 0/3/4/5 cards, e.g. 2c5d9h"`
	Pot          float64 `help:"pot size in big blinds" required:""`
	Stack        float64 `help:"effective stack size in big blinds" required:""`
	ToCall       float64 `help:"amount hero must call, 0 if no bet is outstanding"`
	Position     string  `help:"hero position: IP or OOP" default:"IP"`
	VillainRange string  `help:"villain range notation, e.g. AA,KK,AKs" required:""`
	AllowAllIn   bool    `help:"expose an all-in action" default:"true"`

	Iterations uint32  `help:"maximum MCCFR iterations" default:"10000"`
	Samples    int     `help:"villain hands sampled per iteration" default:"100"`
	Threshold  float64 `help:"convergence threshold" default:"0.001"`
	Seed       uint64  `help:"RNG seed; 0 uses entropy" default:"0"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("pokergto"),
		kong.Description("GTO solver for a single no-limit hold'em decision point"),
		kong.UsageOnError(),
	)

	logger := log.New(os.Stderr)
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	switch ctx.Command() {
	case "solve":
		if err := cli.Solve.Run(context.Background(), logger); err != nil {
			logger.Fatal("solve failed", "err", err)
		}
	default:
		logger.Fatal("unknown command", "command", ctx.Command())
	}
}

func (cmd *SolveCmd) Run(ctx context.Context, logger *log.Logger) error {
	heroHand, err := poker.ParseHand(cmd.HeroHand)
	if err != nil {
		return fmt.Errorf("parsing hero hand: %w", err)
	}

	board, err := poker.ParseCards(cmd.Board)
	if err != nil {
		return fmt.Errorf("parsing board: %w", err)
	}

	villainRange, err := poker.ParseRange(cmd.VillainRange)
	if err != nil {
		return fmt.Errorf("parsing villain range: %w", err)
	}

	position, err := poker.ParsePosition(cmd.Position)
	if err != nil {
		return fmt.Errorf("parsing position: %w", err)
	}

	gameState, err := poker.NewGameState(heroHand, board, cmd.Pot, cmd.Stack, cmd.ToCall, position, villainRange)
	if err != nil {
		return fmt.Errorf("building game state: %w", err)
	}

	actions := poker.LegalActions(gameState.ToCall, gameState.EffectiveStack, nil, cmd.AllowAllIn)

	var seed *uint64
	if cmd.Seed != 0 {
		seed = &cmd.Seed
	}

	evaluator := eval.NewEvaluator(seed)
	blockers := poker.BlockerSet(append([]poker.Card{heroHand.Card1, heroHand.Card2}, board...)...)

	dp := cfr.DecisionPoint{
		HeroHandCanonical: heroHand.Canonical(),
		PotSize:           gameState.PotSize,
		EffectiveStack:    gameState.EffectiveStack,
		ToCall:            gameState.ToCall,
		Position:          gameState.Position.String(),
		VillainRange:      gameState.VillainRange.ToWeightedRange(),
		Blockers:          blockers,
		Actions:           actions,
		Evaluate:          evaluator.OracleFor(heroHand, board),
	}

	config := cfr.Config{
		Iterations:           cmd.Iterations,
		SamplesPerIteration:  cmd.Samples,
		ConvergenceThreshold: cmd.Threshold,
		Seed:                 seed,
	}

	logger.Info("solving decision point",
		"hero_hand", heroHand.Canonical(),
		"street", gameState.Street.String(),
		"position", gameState.Position.String(),
		"actions", len(actions),
	)

	start := time.Now()
	report, err := cfr.Solve(ctx, dp, config)
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	logger.Info("solved",
		"iterations", report.IterationsExecuted,
		"convergence", report.Convergence,
		"duration", time.Since(start),
	)

	for _, ar := range report.Actions {
		action := ar.Action.(poker.Action)
		fmt.Printf("%-18s frequency=%.4f  ev=%+.4f\n", action.String(), ar.Frequency, ar.EV)
	}

	return nil
}
