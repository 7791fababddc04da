// Command windycheck exercises the Windy point-forecast merge end to end
// without the service around it. It either fetches both model runs live
// (requires WINDY_API_KEY) or replays two captured response documents from
// disk, then prints the merged series and every warning the merge recorded.
//
// Usage:
//
//	go run ./cmd/windycheck -lat 21.6649 -lon -158.0539
//	go run ./cmd/windycheck -wave-file wave.json -wind-file wind.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/Samulko/SurfForcast/internal/adapter/windy"
	"github.com/Samulko/SurfForcast/internal/config"
	"github.com/Samulko/SurfForcast/internal/domain"
	"github.com/Samulko/SurfForcast/internal/forecast"
	"github.com/Samulko/SurfForcast/internal/observability"
)

func main() {
	lat := flag.Float64("lat", 21.6649, "latitude (default: Pipeline, Oahu)")
	lon := flag.Float64("lon", -158.0539, "longitude")
	waveFile := flag.String("wave-file", "", "replay a captured wave-model response instead of fetching")
	windFile := flag.String("wind-file", "", "replay a captured wind-model response instead of fetching")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	if code := run(*lat, *lon, *waveFile, *windFile, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(lat, lon float64, waveFile, windFile string, timeout time.Duration) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var fetcher forecast.Fetcher
	if waveFile != "" || windFile != "" {
		if waveFile == "" || windFile == "" {
			fmt.Fprintln(os.Stderr, "replay mode needs both -wave-file and -wind-file")
			return 2
		}
		fetcher = &fileFetcher{waveFile: waveFile, windFile: windFile}
	} else {
		_ = godotenv.Load()
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			return 2
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		metrics := observability.NewMetricsForTesting()
		client := windy.NewClient(cfg, metrics, logger)
		fetcher = windy.NewCachedFetcher(client, cfg.CacheSize, cfg.CacheTTL, clockwork.NewRealClock(), metrics)
	}

	svc := forecast.New(fetcher, nil, forecast.DefaultSources(),
		slog.New(slog.NewTextHandler(os.Stderr, nil)), observability.NewMetricsForTesting())

	series, err := svc.Forecast(ctx, lat, lon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge failed: %v\n", err)
		return 1
	}

	fmt.Printf("merged %d forecast points, %d units, %d warnings\n",
		len(series.Forecast), len(series.Units), len(series.Warnings))
	for _, w := range series.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}

	out, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

// fileFetcher replays captured Windy responses: the wave model from one file,
// everything else from the other.
type fileFetcher struct {
	waveFile string
	windFile string
}

func (f *fileFetcher) PointForecast(_ context.Context, req domain.PointRequest) (*domain.RawModelDocument, error) {
	path := f.windFile
	if req.Model == domain.DefaultWaveModel {
		path = f.waveFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc domain.RawModelDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &doc, nil
}
