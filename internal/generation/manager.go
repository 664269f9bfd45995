package generation

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
	"storefront-edge/internal/metrics"
	"storefront-edge/internal/models"
)

// Phase tracks where the current generation is in its lifecycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseInstalling Phase = "installing"
	PhaseInstalled  Phase = "installed"
	PhaseActive     Phase = "active"
)

// Ensure Manager implements interfaces.GenerationProvider
var _ interfaces.GenerationProvider = (*Manager)(nil)

// Manager owns the versioned cache bucket lifecycle: install pre-populates
// the generation's bucket from the precache manifest, activate purges every
// superseded bucket and takes over interception. The generation name is
// injected configuration; bumping it is the sole cache-invalidation
// mechanism across deploys.
type Manager struct {
	generation string
	manifest   []string
	store      interfaces.BucketStore
	fetcher    interfaces.Fetcher
	keys       interfaces.KeyBuilder
	logger     *zap.Logger

	mu    sync.RWMutex
	phase Phase
}

// NewManager creates a lifecycle manager for the named generation.
func NewManager(generation string, manifest []string, store interfaces.BucketStore,
	fetcher interfaces.Fetcher, keys interfaces.KeyBuilder, logger *zap.Logger) *Manager {
	return &Manager{
		generation: generation,
		manifest:   manifest,
		store:      store,
		fetcher:    fetcher,
		keys:       keys,
		logger:     logger,
		phase:      PhaseIdle,
	}
}

// Current returns the generation name this manager owns.
func (m *Manager) Current() string {
	return m.generation
}

// Active reports whether this generation has taken over interception.
func (m *Manager) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase == PhaseActive
}

// Phase returns the current lifecycle phase.
func (m *Manager) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// Install pre-populates the generation's bucket with every manifest entry.
// A single failed entry fails the whole install: the generation must not
// activate on a partial app shell, the previous one stays in service.
func (m *Manager) Install(ctx context.Context) error {
	m.setPhase(PhaseInstalling)
	m.logger.Info("Installing cache generation",
		zap.String("generation", m.generation), zap.Int("manifest_entries", len(m.manifest)))

	for _, rawURL := range m.manifest {
		if err := m.precache(ctx, rawURL); err != nil {
			metrics.RecordPrecacheFailure()
			metrics.RecordInstall("failure")
			m.setPhase(PhaseIdle)
			return fmt.Errorf("install of generation %s failed: %w", m.generation, err)
		}
	}

	metrics.RecordInstall("success")
	m.setPhase(PhaseInstalled)
	m.logger.Info("Cache generation installed", zap.String("generation", m.generation))

	return nil
}

// Activate deletes every bucket not owned by this generation and takes over
// interception. Entries of the current generation are untouched.
func (m *Manager) Activate(ctx context.Context) error {
	names, err := m.store.Buckets()
	if err != nil {
		return fmt.Errorf("failed to enumerate cache buckets: %w", err)
	}

	purged := 0
	for _, name := range names {
		if name == m.generation {
			continue
		}

		if err := m.store.DeleteBucket(name); err != nil {
			return fmt.Errorf("failed to purge stale bucket %s: %w", name, err)
		}

		m.logger.Info("Purged stale cache bucket", zap.String("bucket", name))
		purged++
	}

	metrics.RecordActivation(purged)
	m.setPhase(PhaseActive)
	m.logger.Info("Cache generation active",
		zap.String("generation", m.generation), zap.Int("buckets_purged", purged))

	return nil
}

// SkipWaiting promotes an installed generation to active immediately,
// without waiting for existing clients. A no-op when already active; an
// error when install has not completed.
func (m *Manager) SkipWaiting(ctx context.Context) error {
	m.mu.RLock()
	phase := m.phase
	m.mu.RUnlock()

	switch phase {
	case PhaseActive:
		return nil
	case PhaseInstalled:
		m.logger.Info("Skip-waiting requested, activating now",
			zap.String("generation", m.generation))
		return m.Activate(ctx)
	default:
		return fmt.Errorf("cannot skip waiting from phase %s", phase)
	}
}

// precache fetches one manifest URL and stores it in the generation bucket.
func (m *Manager) precache(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("invalid manifest URL %q: %w", rawURL, err)
	}

	resp, err := m.fetcher.Fetch(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to fetch manifest entry %q: %w", rawURL, err)
	}

	entry, err := models.EntryFromResponse(req, resp)
	if err != nil {
		return fmt.Errorf("failed to read manifest entry %q: %w", rawURL, err)
	}

	if entry.Status != http.StatusOK {
		return fmt.Errorf("manifest entry %q returned status %d", rawURL, entry.Status)
	}

	key, err := m.keys.Build(req)
	if err != nil {
		return fmt.Errorf("failed to build key for manifest entry %q: %w", rawURL, err)
	}

	m.store.Set(m.generation, key, entry)
	m.logger.Debug("Precached manifest entry", zap.String("url", rawURL))

	return nil
}

func (m *Manager) setPhase(p Phase) {
	m.mu.Lock()
	m.phase = p
	m.mu.Unlock()
}
