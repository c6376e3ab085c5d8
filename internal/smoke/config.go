package smoke

import (
	"time"

	"github.com/okian/gaffer/internal/domain/types"
)

// Config holds configuration for the squad smoke test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumSessions int           // Number of squad sessions to build
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for test output
	WithReports bool          // Also request a tactical report per session
	Verbose     bool          // Enable verbose logging
}

// Squad is one generated scenario: a formation and a roster to build.
type Squad struct {
	Formation string   `json:"formation"`
	Stock     []string `json:"stock"`   // stock names to add
	Customs   int      `json:"customs"` // number of synthetic custom players
}

// Read shapes mirrored from the API layer.
type (
	Session = types.SessionView
	Marker  = types.Marker
)

// errorBody mirrors the API error envelope.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// reportBody mirrors the API report envelope.
type reportBody struct {
	Report string `json:"report"`
}

// Stats holds smoke test statistics
type Stats struct {
	SessionsCreated    int
	PlayersAdded       int
	PlayersFailed      int
	LayoutsVerified    int
	LayoutsFailed      int
	ReportsGenerated   int
	ReportsUnavailable int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
