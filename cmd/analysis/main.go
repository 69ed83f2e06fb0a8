// Command analysis compares symNMF and k-means clusterings of a point file
// by silhouette score.
//
//	analysis [flags] <k> <file>
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/nozzle/symnmf"
	"github.com/nozzle/symnmf/analysis"
	"github.com/nozzle/symnmf/internal/cliutil"
	"github.com/nozzle/symnmf/internal/dataio"
	"github.com/nozzle/symnmf/internal/plotting"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	seed := flag.Uint("seed", uint(symnmf.DefaultConfig().Seed), "Random seed for the initial factor")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = one per CPU)")
	metric := flag.String("metric", "", "Silhouette distance metric (default from config: euclidean)")
	plotFile := flag.String("plot", "", "Write a scatter plot of the symNMF labels (.png, .svg, .pdf)")
	verbose := flag.Bool("verbose", false, "Verbose output on stderr")
	flag.Parse()

	logger := cliutil.Logger(*verbose)
	defer logger.Sync() //nolint:errcheck

	var seedOverride *uint32
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			v := uint32(*seed)
			seedOverride = &v
		}
	})

	if err := run(os.Stdout, logger, options{
		configFile: *configFile,
		seed:       seedOverride,
		workers:    *workers,
		metric:     *metric,
		plotFile:   *plotFile,
	}, flag.Args()); err != nil {
		logger.Error("analysis failed", zap.Error(err))
		logger.Sync() //nolint:errcheck
		fmt.Println(cliutil.Failure)
		os.Exit(1)
	}
}

// options are the flag values run needs. A nil seed keeps the configured one.
type options struct {
	configFile string
	seed       *uint32
	workers    int
	metric     string
	plotFile   string
}

func run(w io.Writer, logger *zap.Logger, opts options, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <k> <file>, got %d arguments", len(args))
	}
	k, err := cliutil.ParseRank(args[0])
	if err != nil {
		return err
	}

	config := symnmf.DefaultConfig()
	if opts.configFile != "" {
		if config, err = symnmf.LoadConfig(opts.configFile); err != nil {
			return err
		}
	}
	config.K = k
	if opts.seed != nil {
		config.Seed = *opts.seed
	}
	config.NumWorkers = opts.workers
	if opts.metric != "" {
		config.SilhouetteMetric = opts.metric
	}
	config.Logger = logger
	if err := config.Validate(); err != nil {
		return err
	}

	rows, err := dataio.LoadFile(args[1])
	if err != nil {
		return err
	}
	X, err := symnmf.NewPoints(rows)
	if err != nil {
		return err
	}

	report, err := analysis.Compare(X, config)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "nmf: %.4f\n", report.NMF)
	fmt.Fprintf(w, "kmeans: %.4f\n", report.KMeans)

	if opts.plotFile != "" {
		p, err := plotting.Scatter(X, report.NMFLabels, fmt.Sprintf("symNMF, k=%d", k))
		if err != nil {
			return err
		}
		if err := plotting.Save(p, opts.plotFile); err != nil {
			return err
		}
		logger.Debug("wrote plot", zap.String("file", opts.plotFile))
	}
	return nil
}
