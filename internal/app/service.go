// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gaffer/internal/adapters/images"
	"github.com/okian/gaffer/internal/adapters/llm"
	resolvequeue "github.com/okian/gaffer/internal/adapters/mq/queue"
	workerpool "github.com/okian/gaffer/internal/adapters/mq/worker"
	repository "github.com/okian/gaffer/internal/adapters/repository"
	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/layout"
	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/internal/domain/player"
	"github.com/okian/gaffer/internal/domain/report"
	"github.com/okian/gaffer/internal/domain/types"
	"github.com/okian/gaffer/pkg/logger"
	"github.com/okian/gaffer/pkg/metrics"
)

// DefaultFormation is selected for sessions created without an explicit choice.
const DefaultFormation = "4-3-3"

// Service implements the API dependencies for the squad analysis system.
type Service struct {
	// Core components
	sessions     repository.Store
	resolver     images.Resolver
	reportClient llm.Client
	resolveQueue resolvequeue.Queue
	workerPool   *workerpool.Pool

	// Configuration
	maxSessions int
	workerCount int
	queueSize   int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMaxSessions caps the number of concurrently held sessions.
func WithMaxSessions(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxSessions = limit
		}
	}
}

// WithWorkerCount sets the number of image resolution workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the resolution queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithResolver sets the image resolver used by the workers.
func WithResolver(resolver images.Resolver) Option {
	return func(s *Service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

// WithReportClient sets the text-generation client for tactical reports.
func WithReportClient(client llm.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.reportClient = client
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxSessions: 1024,
		workerCount: runtime.NumCPU(),
		queueSize:   256,
		logger:      nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting squad service...")

	s.sessions = repository.NewMemStore(
		repository.WithMaxSessions(s.maxSessions),
	)
	if s.resolver == nil {
		s.resolver = images.NewWikipediaResolver()
	}
	if s.reportClient == nil {
		s.reportClient = llm.NewOpenRouterClient()
	}
	s.resolveQueue = resolvequeue.NewInMemoryQueue(
		resolvequeue.WithCapacity(s.queueSize),
		resolvequeue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.resolveQueue, s.resolver, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "squad service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("maxSessions", s.maxSessions),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping squad service...")

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	} else if q, ok := s.resolveQueue.(*resolvequeue.InMemoryQueue); ok {
		_ = q.Close()
	}

	s.started = false
	s.logger.Info(ctx, "squad service stopped")
}

// Formations returns the supported formation ids.
func (s *Service) Formations(ctx context.Context) []string {
	return formation.IDs()
}

// FormationSlots returns the slot list for a formation id.
func (s *Service) FormationSlots(ctx context.Context, id string) ([]formation.Slot, error) {
	return formation.SlotsFor(id)
}

// CreateSession registers a new squad session. An empty formation id selects
// the default formation.
func (s *Service) CreateSession(ctx context.Context, formationID string) (types.SessionView, error) {
	if formationID == "" {
		formationID = DefaultFormation
	}
	if !formation.Known(formationID) {
		return types.SessionView{}, fmt.Errorf("%w: %q", formation.ErrUnknownFormation, formationID)
	}

	now := time.Now().UTC()
	session := model.Session{
		ID:          uuid.NewString(),
		FormationID: formationID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return types.SessionView{}, err
	}

	metrics.RecordSessionCreated()
	s.logger.Debug(ctx, "session created",
		logger.String("sessionID", session.ID),
		logger.String("formation", formationID),
	)
	return sessionView(session), nil
}

// GetSession returns the current view of a session.
func (s *Service) GetSession(ctx context.Context, sessionID string) (types.SessionView, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return types.SessionView{}, err
	}
	return sessionView(session), nil
}

// SelectFormation switches a session to another formation. The roster is
// unchanged: players keep their order and flow into the new formation's slots.
func (s *Service) SelectFormation(ctx context.Context, sessionID, formationID string) (types.SessionView, error) {
	if !formation.Known(formationID) {
		return types.SessionView{}, fmt.Errorf("%w: %q", formation.ErrUnknownFormation, formationID)
	}

	var updated model.Session
	err := s.updateSession(ctx, sessionID, func(session *model.Session) error {
		session.FormationID = formationID
		updated = session.Clone()
		return nil
	})
	if err != nil {
		return types.SessionView{}, err
	}
	return sessionView(updated), nil
}

// AddStockPlayer appends a catalog player to the session roster and schedules
// an image lookup for it.
func (s *Service) AddStockPlayer(ctx context.Context, sessionID, name string) (types.PlayerView, error) {
	p, err := player.NewStock(name)
	if err != nil {
		return types.PlayerView{}, err
	}
	return s.addPlayer(ctx, sessionID, p)
}

// AddCustomPlayer appends a user-authored player to the session roster and
// schedules an image lookup for it.
func (s *Service) AddCustomPlayer(ctx context.Context, sessionID, name string, attrs player.Attributes) (types.PlayerView, error) {
	p, err := player.NewCustom(name, attrs)
	if err != nil {
		return types.PlayerView{}, err
	}
	return s.addPlayer(ctx, sessionID, p)
}

// addPlayer commits a constructed player into the roster.
func (s *Service) addPlayer(ctx context.Context, sessionID string, p player.Player) (types.PlayerView, error) {
	err := s.updateSession(ctx, sessionID, func(session *model.Session) error {
		slots, serr := formation.SlotsFor(session.FormationID)
		if serr != nil {
			return serr
		}
		if len(session.Roster) >= len(slots) {
			return ErrRosterFull
		}
		session.Roster = append(session.Roster, p)
		return nil
	})
	if err != nil {
		return types.PlayerView{}, err
	}

	s.enqueueResolve(ctx, sessionID, p)
	return layout.View(p), nil
}

// UpdatePlayer replaces the player at a roster index with a user-authored
// one. The slot position is kept; the previous player's pending image result
// is discarded on arrival.
func (s *Service) UpdatePlayer(ctx context.Context, sessionID string, index int, name string, attrs player.Attributes) (types.PlayerView, error) {
	p, err := player.NewCustom(name, attrs)
	if err != nil {
		return types.PlayerView{}, err
	}

	err = s.updateSession(ctx, sessionID, func(session *model.Session) error {
		if index < 0 || index >= len(session.Roster) {
			return fmt.Errorf("%w: index %d", ErrNoSuchPlayer, index)
		}
		session.Roster[index] = p
		return nil
	})
	if err != nil {
		return types.PlayerView{}, err
	}

	s.enqueueResolve(ctx, sessionID, p)
	return layout.View(p), nil
}

// RemovePlayer removes the player at a roster index. Players after it shift
// down one slot.
func (s *Service) RemovePlayer(ctx context.Context, sessionID string, index int) error {
	return s.updateSession(ctx, sessionID, func(session *model.Session) error {
		if index < 0 || index >= len(session.Roster) {
			return fmt.Errorf("%w: index %d", ErrNoSuchPlayer, index)
		}
		session.Roster = append(session.Roster[:index], session.Roster[index+1:]...)
		return nil
	})
}

// Layout renders the session's pitch markers, one per formation slot.
func (s *Service) Layout(ctx context.Context, sessionID string) ([]types.Marker, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return layout.Markers(session.Roster, session.FormationID)
}

// GenerateReport builds the tactical prompt for the session and asks the
// text-generation client for an analysis. A failed generation leaves the
// session untouched.
func (s *Service) GenerateReport(ctx context.Context, sessionID string) (string, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	placements, err := layout.Assign(session.Roster, session.FormationID)
	if err != nil {
		return "", err
	}

	metrics.RecordReportRequest()
	start := time.Now()
	text, err := s.reportClient.Complete(ctx, report.SystemPrompt(), report.BuildPrompt(session.FormationID, placements))
	metrics.RecordReportLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordReportFailure()
		metrics.RecordErrorByComponent("report", "completion_failed")
		s.logger.Warn(ctx, "report generation failed",
			logger.String("sessionID", sessionID),
			logger.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrReportUnavailable, err)
	}
	return text, nil
}

// AttachImage delivers a resolved image URL to a roster player. It reports
// false when the session or the player is gone and the result was discarded.
func (s *Service) AttachImage(ctx context.Context, sessionID, playerID, imageURL string) (bool, error) {
	attached := false
	err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		i := session.Roster.IndexOf(playerID)
		if i < 0 {
			return nil
		}
		session.Roster[i].AttachImage(imageURL)
		attached = true
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			// Session expired or was deleted while the lookup ran.
			return false, nil
		}
		return false, err
	}
	return attached, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"maxSessions": s.maxSessions,
		"formations":  formation.IDs(),
	}

	if s.started {
		queueLen := s.resolveQueue.Len(ctx)
		activeSessions := s.sessions.Count(ctx)

		stats["queueLength"] = queueLen
		stats["activeSessions"] = activeSessions

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateActiveSessions(activeSessions)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// enqueueResolve schedules a best-effort image lookup for a player.
func (s *Service) enqueueResolve(ctx context.Context, sessionID string, p player.Player) {
	job := model.ResolveJob{
		SessionID:  sessionID,
		PlayerID:   p.ID,
		Name:       p.Name,
		EnqueuedAt: time.Now().UTC(),
	}
	if !s.resolveQueue.Enqueue(ctx, job) {
		// The roster stays usable without an image; the view falls back
		// to the placeholder.
		s.logger.Warn(ctx, "resolution queue full, skipping image lookup",
			logger.String("sessionID", sessionID),
			logger.String("player", p.Name),
		)
	}
}

// getSession loads a session, translating store errors to service kinds.
func (s *Service) getSession(ctx context.Context, sessionID string) (model.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if isNotFound(err) {
			return model.Session{}, fmt.Errorf("%w: %q", ErrNoSuchSession, sessionID)
		}
		return model.Session{}, err
	}
	return session, nil
}

// updateSession mutates a session, translating store errors to service kinds.
func (s *Service) updateSession(ctx context.Context, sessionID string, fn func(*model.Session) error) error {
	err := s.sessions.Update(ctx, sessionID, fn)
	if err != nil && isNotFound(err) {
		return fmt.Errorf("%w: %q", ErrNoSuchSession, sessionID)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// sessionView converts a session to its read-only API shape.
func sessionView(session model.Session) types.SessionView {
	roster := make([]types.PlayerView, len(session.Roster))
	for i, p := range session.Roster {
		roster[i] = layout.View(p)
	}
	return types.SessionView{
		ID:        session.ID,
		Formation: session.FormationID,
		SlotCount: formation.SlotCount,
		Roster:    roster,
	}
}
