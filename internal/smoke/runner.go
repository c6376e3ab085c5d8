package smoke

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/pkg/logger"
)

// Run executes the complete squad smoke test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting gaffer squad smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("sessions", config.NumSessions),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("reports", config.WithReports),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Check the formation catalog
	if err := checkFormations(ctx, config); err != nil {
		return fmt.Errorf("formation catalog check failed: %w", err)
	}

	// Step 3: Generate squad scenarios
	squads := generateSquads(ctx, config)

	// Step 4: Build squads concurrently
	if err := buildSquads(ctx, config, squads, stats); err != nil {
		return fmt.Errorf("squad building failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.LayoutsFailed > 0 || stats.SessionsCreated == 0 {
		return fmt.Errorf("smoke test found failures: %d layout failures, %d sessions created",
			stats.LayoutsFailed, stats.SessionsCreated)
	}

	logger.Get().Info(ctx, "smoke test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	drain(resp)

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// checkFormations verifies the catalog matches the supported formations.
func checkFormations(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/formations")
	if err != nil {
		return fmt.Errorf("failed to fetch formations: %w", err)
	}

	var body struct {
		Formations []string `json:"formations"`
	}
	if err := readJSON(resp, &body); err != nil {
		return err
	}
	if len(body.Formations) != len(formation.IDs()) {
		return fmt.Errorf("expected %d formations, got %d", len(formation.IDs()), len(body.Formations))
	}

	logger.Get().Info(ctx, "formation catalog verified", logger.Int("count", len(body.Formations)))
	return nil
}

// buildSquads runs the squad scenarios concurrently using a worker pool.
func buildSquads(ctx context.Context, config *Config, squads []Squad, stats *Stats) error {
	log.Printf("⚽ Building %d squads with %d workers...", len(squads), config.Workers)

	var (
		created     int64
		added       int64
		addFailed   int64
		layoutOK    int64
		layoutBad   int64
		reports     int64
		reportsSkip int64
	)

	type job struct {
		index int
		squad Squad
	}
	jobChan := make(chan job, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := newHTTPClient(config.Timeout)

			for j := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				err := runScenario(ctx, client, config, j.index, j.squad,
					&added, &addFailed, &layoutOK, &layoutBad, &reports, &reportsSkip)
				if err != nil {
					logger.Get().Warn(ctx, "scenario failed",
						logger.Int("scenario", j.index),
						logger.Error(err),
					)
					continue
				}
				atomic.AddInt64(&created, 1)
			}
		}()
	}

dispatch:
	for i, squad := range squads {
		select {
		case <-ctx.Done():
			break dispatch
		case jobChan <- job{index: i, squad: squad}:
		}
	}
	close(jobChan)
	wg.Wait()

	stats.SessionsCreated = int(atomic.LoadInt64(&created))
	stats.PlayersAdded = int(atomic.LoadInt64(&added))
	stats.PlayersFailed = int(atomic.LoadInt64(&addFailed))
	stats.LayoutsVerified = int(atomic.LoadInt64(&layoutOK))
	stats.LayoutsFailed = int(atomic.LoadInt64(&layoutBad))
	stats.ReportsGenerated = int(atomic.LoadInt64(&reports))
	stats.ReportsUnavailable = int(atomic.LoadInt64(&reportsSkip))
	return nil
}

// runScenario drives one squad through the API: create, fill, verify, report.
func runScenario(ctx context.Context, client *HTTPClient, config *Config, index int, squad Squad,
	added, addFailed, layoutOK, layoutBad, reports, reportsSkip *int64) error {

	// Create the session on the scenario's formation.
	resp, err := client.Post(ctx, config.BaseURL+"/sessions", map[string]string{"formation": squad.Formation})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	var session Session
	if derr := readJSON(resp, &session); derr != nil {
		return derr
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("create session: status %d", resp.StatusCode)
	}
	base := config.BaseURL + "/sessions/" + session.ID

	// Fill the roster with stock players, then synthetic customs.
	for _, name := range squad.Stock {
		body := map[string]interface{}{"source": "stock", "name": name}
		if aerr := addPlayer(ctx, client, base, body); aerr != nil {
			atomic.AddInt64(addFailed, 1)
			continue
		}
		atomic.AddInt64(added, 1)
	}
	for c := 0; c < squad.Customs; c++ {
		body := map[string]interface{}{
			"source":     "custom",
			"name":       customName(index, c),
			"attributes": customAttributes(),
		}
		if aerr := addPlayer(ctx, client, base, body); aerr != nil {
			atomic.AddInt64(addFailed, 1)
			continue
		}
		atomic.AddInt64(added, 1)
	}

	// Verify the layout covers every slot of the formation.
	resp, err = client.Get(ctx, base+"/layout")
	if err != nil {
		return fmt.Errorf("fetch layout: %w", err)
	}
	var markers []Marker
	if derr := readJSON(resp, &markers); derr != nil {
		return derr
	}
	if len(markers) == formation.SlotCount {
		atomic.AddInt64(layoutOK, 1)
	} else {
		atomic.AddInt64(layoutBad, 1)
		logger.Get().Warn(ctx, "unexpected marker count",
			logger.String("sessionID", session.ID),
			logger.Int("markers", len(markers)),
		)
	}

	// Optionally request a tactical report.
	if config.WithReports {
		resp, err = client.Post(ctx, base+"/report", nil)
		if err != nil {
			atomic.AddInt64(reportsSkip, 1)
			return nil
		}
		var report reportBody
		if derr := readJSON(resp, &report); derr != nil || resp.StatusCode != http.StatusOK {
			atomic.AddInt64(reportsSkip, 1)
			return nil
		}
		atomic.AddInt64(reports, 1)
		if config.Verbose {
			log.Printf("📋 Report for %s (%s): %.80s", session.ID, squad.Formation, report.Report)
		}
	}

	return nil
}

// addPlayer posts one roster addition and verifies the status code.
func addPlayer(ctx context.Context, client *HTTPClient, base string, body map[string]interface{}) error {
	resp, err := client.Post(ctx, base+"/players", body)
	if err != nil {
		return err
	}
	drain(resp)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("add player: status %d", resp.StatusCode)
	}
	return nil
}

// displayFinalStats prints the final smoke test statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("sessionsCreated", stats.SessionsCreated),
		logger.Int("playersAdded", stats.PlayersAdded),
		logger.Int("playersFailed", stats.PlayersFailed),
		logger.Int("layoutsVerified", stats.LayoutsVerified),
		logger.Int("layoutsFailed", stats.LayoutsFailed),
		logger.Int("reportsGenerated", stats.ReportsGenerated),
		logger.Int("reportsUnavailable", stats.ReportsUnavailable),
		logger.Duration("duration", stats.Duration))
}
