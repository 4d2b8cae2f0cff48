package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/aimlfun/1969lander/internal/console"
	"github.com/aimlfun/1969lander/internal/evo"
	"github.com/aimlfun/1969lander/internal/lander"
	"github.com/aimlfun/1969lander/internal/storage"
	landerapi "github.com/aimlfun/1969lander/pkg/lander"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "train":
		return runTrain(ctx, args[1:])
	case "fly":
		return runFly(ctx, args[1:])
	case "replay":
		return runReplay(ctx, args[1:])
	case "best":
		return runBest(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: landerctl <init|reset|train|fly|replay|best|history> [flags]", msg)
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lander.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := landerapi.New(ctx, landerapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lander.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := landerapi.New(ctx, landerapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Reset(ctx); err != nil {
		return err
	}
	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runTrain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	runID := fs.String("run-id", "", "explicit run id (optional)")
	population := fs.Int("pop", 100, "population size")
	generations := fs.Int("gens", 500, "generation count (0 runs until interrupted)")
	workers := fs.Int("workers", 4, "worker count")
	seed := fs.Int64("seed", 1, "rng seed")
	hiddenWidth := fs.Int("hidden", 0, "hidden layer width (0 for a single affine layer)")
	channels := fs.String("channels", "altitude,speed,fuel,elapsed", "comma-separated observation channels")
	mutationProb := fs.Float64("mutation-prob", 0.25, "per-weight mutation probability")
	mutationMag := fs.Float64("mutation-mag", 0.5, "mutation magnitude")
	injectFraction := fs.Float64("inject-fraction", 0.05, "fraction of the population re-seeded each generation")
	burnAltitude := fs.Float64("burn-altitude", 0, "altitude below which burning is permitted, in miles (0 uses the default)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lander.db", "sqlite database path")
	quiet := fs.Bool("quiet", false, "suppress per-improvement output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	selected, err := parseChannels(*channels)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := landerapi.New(ctx, landerapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	var reporter evo.Reporter
	if !*quiet {
		reporter = evo.ReporterFunc(func(s evo.GenerationSummary) {
			console.PrintImprovement(os.Stdout, s)
		})
	}

	summary, err := client.Train(ctx, landerapi.TrainRequest{
		RunID:                      *runID,
		Population:                 *population,
		Generations:                *generations,
		Workers:                    *workers,
		Seed:                       *seed,
		HiddenWidth:                *hiddenWidth,
		Channels:                   selected,
		MutationProbability:        *mutationProb,
		MutationMagnitude:          *mutationMag,
		InjectFraction:             *injectFraction,
		BurnPermittedAltitudeMiles: *burnAltitude,
		Reporter:                   reporter,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run completed run_id=%s pop=%d gens=%d seed=%d\n", summary.RunID, *population, summary.Generations, *seed)
	fmt.Printf("best_score=%s best_impact_mph=%.4f generation=%d\n",
		humanize.Commaf(summary.BestScore), summary.Best.BestImpactMPH, summary.Best.Generation)
	fmt.Printf("verdict: %s\n", lander.Classify(summary.Best.BestImpactMPH).Report())
	return nil
}

func runFly(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fly", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lander.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := landerapi.New(ctx, landerapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	_, err = client.Fly(os.Stdin, os.Stdout)
	return err
}

func runReplay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lander.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("replay requires --run-id")
	}

	client, err := landerapi.New(ctx, landerapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	outcome, record, err := client.Replay(ctx, *runID)
	if err != nil {
		return err
	}
	fmt.Printf("replay run_id=%s recorded_impact_mph=%.4f replayed_impact_mph=%.4f fuel_remaining_lbs=%s touchdown_secs=%.2f\n",
		record.RunID, record.ImpactMPH, outcome.ImpactMPH, humanize.Commaf(outcome.FuelRemainingLBs), outcome.ElapsedSeconds)
	fmt.Printf("verdict: %s\n", outcome.Rating.Report())
	return nil
}

func runBest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("best", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	jsonOut := fs.Bool("json", false, "emit flight record as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lander.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("best requires --run-id")
	}

	client, err := landerapi.New(ctx, landerapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, ok, err := client.BestFlight(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no flight record")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	console.PrintFlightRecord(os.Stdout, record)
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	limit := fs.Int("limit", 50, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit score history as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lander.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("history requires --run-id")
	}

	client, err := landerapi.New(ctx, landerapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, ok, err := client.ScoreHistory(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok || len(history) == 0 {
		fmt.Println("no score history")
		return nil
	}
	if *limit > 0 && len(history) > *limit {
		history = history[len(history)-*limit:]
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	for i, best := range history {
		fmt.Printf("generation=%d best_score=%.6f\n", i+1, best)
	}
	return nil
}

func parseChannels(list string) (lander.Channels, error) {
	var out lander.Channels
	for _, name := range strings.Split(list, ",") {
		switch strings.TrimSpace(name) {
		case lander.ChannelAltitude:
			out.Altitude = true
		case lander.ChannelSpeed:
			out.Speed = true
		case lander.ChannelFuel:
			out.Fuel = true
		case lander.ChannelElapsed:
			out.Elapsed = true
		case "":
		default:
			return out, fmt.Errorf("unknown observation channel: %s", name)
		}
	}
	if len(out.Names()) == 0 {
		return out, errors.New("at least one observation channel is required")
	}
	return out, nil
}
