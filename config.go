package symnmf

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/nozzle/symnmf/distance"
	"github.com/nozzle/symnmf/internal/rand"
	"github.com/nozzle/symnmf/internal/symerr"
	"github.com/nozzle/symnmf/kmeans"
	"github.com/nozzle/symnmf/optimize"
)

// Config configures the symNMF pipeline.
type Config struct {
	// K is the factorization rank, i.e. the number of clusters.
	// Required for Fit; must be in [1, n].
	K int `toml:"k"`

	// MaxIter is the iteration budget of the factorization.
	// Default: 300
	MaxIter int `toml:"max_iter"`

	// Epsilon is the convergence threshold on the squared Frobenius
	// distance between successive factor matrices.
	// Default: 1e-4
	Epsilon float64 `toml:"epsilon"`

	// Beta damps the multiplicative update, in (0, 1]. 1 is the undamped
	// ratio update.
	// Default: 0.5
	Beta float64 `toml:"beta"`

	// DenominatorGuard clamps update denominators from below; 0 disables it.
	// Default: 1e-6
	DenominatorGuard float64 `toml:"denominator_guard"`

	// Seed for the initial factor matrix. The generator is NumPy's
	// MT19937, so a seed reproduces numpy.random.seed(seed).
	// Default: 1234
	Seed uint32 `toml:"seed"`

	// NumWorkers for the row-parallel stages.
	// 0 = auto-detect based on CPU cores.
	// Default: 0
	NumWorkers int `toml:"num_workers"`

	// SilhouetteMetric names the distance the analysis scores clusterings
	// with. See distance.Names.
	// Default: "euclidean"
	SilhouetteMetric string `toml:"silhouette_metric"`

	// KMeans configures the baseline used by the analysis.
	KMeans kmeans.Config `toml:"kmeans"`

	// Logger receives structured progress output. Nil disables logging.
	Logger *zap.Logger `toml:"-"`

	// ProgressCallback is called after each factorization iteration with
	// (iteration, delta).
	// Default: nil
	ProgressCallback func(iter int, delta float64) `toml:"-"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	opt := optimize.DefaultConfig()
	return Config{
		MaxIter:          opt.MaxIter,
		Epsilon:          opt.Epsilon,
		Beta:             opt.Beta,
		DenominatorGuard: opt.DenominatorGuard,
		Seed:             rand.DefaultSeed,
		NumWorkers:       0,
		SilhouetteMetric: "euclidean",
		KMeans:           kmeans.DefaultConfig(),
	}
}

// LoadConfig reads a TOML file over the defaults and validates the result.
//
//	k = 3
//	max_iter = 500
//	beta = 0.5
//
//	[kmeans]
//	empty_cluster = "fail"
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return Config{}, fmt.Errorf("symnmf: load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("symnmf: load config %s: unknown keys %v", path, undecoded)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	const op = "config"
	switch {
	case c.K < 0:
		return symerr.Errorf(symerr.ErrShape, op, "k=%d", c.K)
	case c.MaxIter < 1:
		return symerr.Errorf(symerr.ErrPrecondition, op, "max_iter=%d", c.MaxIter)
	case !(c.Epsilon >= 0):
		return symerr.Errorf(symerr.ErrPrecondition, op, "epsilon=%g", c.Epsilon)
	case !(c.Beta > 0 && c.Beta <= 1):
		return symerr.Errorf(symerr.ErrPrecondition, op, "beta=%g outside (0, 1]", c.Beta)
	case !(c.DenominatorGuard >= 0):
		return symerr.Errorf(symerr.ErrPrecondition, op, "denominator_guard=%g", c.DenominatorGuard)
	case c.SilhouetteMetric != "" && !knownMetric(c.SilhouetteMetric):
		return symerr.Errorf(symerr.ErrPrecondition, op, "unknown silhouette_metric %q", c.SilhouetteMetric)
	case c.KMeans.MaxIter < 1:
		return symerr.Errorf(symerr.ErrPrecondition, op, "kmeans.max_iter=%d", c.KMeans.MaxIter)
	case !(c.KMeans.Epsilon >= 0):
		return symerr.Errorf(symerr.ErrPrecondition, op, "kmeans.epsilon=%g", c.KMeans.Epsilon)
	}
	return nil
}

func knownMetric(name string) bool {
	_, ok := distance.Get(name)
	return ok
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// OptimizeConfig maps the pipeline settings onto the solver.
func (c Config) OptimizeConfig() optimize.Config {
	return optimize.Config{
		K:                c.K,
		MaxIter:          c.MaxIter,
		Epsilon:          c.Epsilon,
		Beta:             c.Beta,
		DenominatorGuard: c.DenominatorGuard,
		NumWorkers:       c.NumWorkers,
		Logger:           c.Logger,
		ProgressCallback: c.ProgressCallback,
	}
}

// KMeansConfig returns the baseline settings with the pipeline logger.
func (c Config) KMeansConfig() kmeans.Config {
	km := c.KMeans
	if km.Logger == nil {
		km.Logger = c.Logger
	}
	return km
}
