// Package analysis compares a symNMF clustering with the k-means baseline on
// the same points.
package analysis

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf"
	"github.com/nozzle/symnmf/distance"
	"github.com/nozzle/symnmf/internal/symerr"
	"github.com/nozzle/symnmf/kmeans"
	"github.com/nozzle/symnmf/metrics"
)

// Report holds both labellings and their silhouette scores.
type Report struct {
	NMF    float64
	KMeans float64

	NMFLabels    []int
	KMeansLabels []int
}

// Compare clusters X into config.K groups with symNMF and with k-means and
// scores both labellings with the silhouette coefficient under
// config.SilhouetteMetric (Euclidean when empty).
func Compare(X mat.Matrix, config symnmf.Config) (Report, error) {
	var report Report
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metricName := config.SilhouetteMetric
	if metricName == "" {
		metricName = "euclidean"
	}
	dist, ok := distance.Get(metricName)
	if !ok {
		return report, symerr.Errorf(symerr.ErrPrecondition, "analysis", "unknown metric %q", metricName)
	}

	model := symnmf.New(config)
	if err := model.Fit(X); err != nil {
		return report, fmt.Errorf("analysis: symnmf: %w", err)
	}
	report.NMFLabels = model.Labels()

	km, err := kmeans.Cluster(X, config.K, config.KMeansConfig())
	if err != nil {
		return report, fmt.Errorf("analysis: kmeans: %w", err)
	}
	report.KMeansLabels = km.Labels

	report.NMF, err = metrics.SilhouetteMetric(X, report.NMFLabels, dist, config.NumWorkers)
	if err != nil {
		return report, fmt.Errorf("analysis: symnmf silhouette: %w", err)
	}
	report.KMeans, err = metrics.SilhouetteMetric(X, report.KMeansLabels, dist, config.NumWorkers)
	if err != nil {
		return report, fmt.Errorf("analysis: kmeans silhouette: %w", err)
	}

	logger.Debug("analysis done",
		zap.Float64("nmf", report.NMF),
		zap.Float64("kmeans", report.KMeans),
		zap.Int("nmf_iterations", model.Result().Iterations),
		zap.Int("kmeans_iterations", km.Iterations))
	return report, nil
}
