// Command symnmf prints one stage of the symNMF pipeline for a point file.
//
//	symnmf [flags] <k> <goal> <file>
//	symnmf [flags] <goal> <file>
//
// goal is one of sym, ddg, norm or symnmf; symnmf needs k.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nozzle/symnmf"
	"github.com/nozzle/symnmf/internal/cliutil"
	"github.com/nozzle/symnmf/internal/dataio"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	seed := flag.Uint("seed", uint(symnmf.DefaultConfig().Seed), "Random seed for the initial factor")
	maxIter := flag.Int("max-iter", 0, "Iteration budget (0 = config value)")
	epsilon := flag.Float64("epsilon", 0, "Convergence threshold (0 = config value)")
	beta := flag.Float64("beta", 0, "Update damping in (0, 1] (0 = config value)")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = one per CPU)")
	verbose := flag.Bool("verbose", false, "Verbose output on stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [k] <sym|ddg|norm|symnmf> <file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := cliutil.Logger(*verbose)
	defer logger.Sync() //nolint:errcheck

	config, err := loadConfig(*configFile)
	if err != nil {
		fail(logger, err)
	}
	config.Logger = logger

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["seed"] {
		config.Seed = uint32(*seed)
	}
	if *maxIter > 0 {
		config.MaxIter = *maxIter
	}
	if *epsilon > 0 {
		config.Epsilon = *epsilon
	}
	if *beta > 0 {
		config.Beta = *beta
	}
	if set["workers"] {
		config.NumWorkers = *workers
	}

	goal, file, k, err := parseArgs(flag.Args())
	if err != nil {
		fail(logger, err)
	}
	if k > 0 {
		config.K = k
	}
	if err := config.Validate(); err != nil {
		fail(logger, err)
	}

	rows, err := dataio.LoadFile(file)
	if err != nil {
		fail(logger, err)
	}
	X, err := symnmf.NewPoints(rows)
	if err != nil {
		fail(logger, err)
	}
	n, d := X.Dims()
	logger.Debug("loaded points", zap.String("file", file), zap.Int("n", n), zap.Int("d", d))

	out, err := symnmf.Run(goal, X, config)
	if err != nil {
		fail(logger, err)
	}

	w := bufio.NewWriter(os.Stdout)
	if err := symnmf.WriteMatrix(w, out); err != nil {
		fail(logger, err)
	}
	if err := w.Flush(); err != nil {
		fail(logger, err)
	}
}

func loadConfig(path string) (symnmf.Config, error) {
	if path == "" {
		return symnmf.DefaultConfig(), nil
	}
	return symnmf.LoadConfig(path)
}

// parseArgs accepts "<k> <goal> <file>" or "<goal> <file>". k is 0 when absent.
func parseArgs(args []string) (symnmf.Goal, string, int, error) {
	var k int
	switch len(args) {
	case 2:
	case 3:
		var err error
		if k, err = cliutil.ParseRank(args[0]); err != nil {
			return "", "", 0, err
		}
		args = args[1:]
	default:
		return "", "", 0, fmt.Errorf("expected [k] <goal> <file>, got %d arguments", len(args))
	}

	goal, err := symnmf.ParseGoal(args[0])
	if err != nil {
		return "", "", 0, err
	}
	if goal == symnmf.GoalSymNMF && k == 0 {
		return "", "", 0, errors.New("goal symnmf needs k")
	}
	return goal, args[1], k, nil
}

func fail(logger *zap.Logger, err error) {
	logger.Error("symnmf failed", zap.Error(err))
	logger.Sync() //nolint:errcheck
	fmt.Println(cliutil.Failure)
	os.Exit(1)
}
