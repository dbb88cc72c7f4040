package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/livejourney/api/internal/service"
)

// TitleSweeper purges expired daily-title awards on a schedule. Expired
// awards are already invisible to readers; the sweep only reclaims storage,
// so a missed run is harmless.
type TitleSweeper struct {
	titleService *service.TitleService
	interval     time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	running      bool
	mu           sync.Mutex
}

// NewTitleSweeper creates a new title sweeper job
func NewTitleSweeper(titleService *service.TitleService, interval time.Duration) *TitleSweeper {
	if interval == 0 {
		interval = 1 * time.Hour
	}
	return &TitleSweeper{
		titleService: titleService,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the title sweeper job
func (s *TitleSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("title sweeper started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the title sweeper job
func (s *TitleSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("title sweeper stopped")
}

// run is the main loop
func (s *TitleSweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *TitleSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.titleService.Sweep(ctx, time.Now())
	if err != nil {
		slog.Error("title sweep failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		slog.Info("title sweep", slog.Int("removed", removed))
	}
}

// RunOnce runs the sweep once (for testing or manual trigger)
func (s *TitleSweeper) RunOnce(ctx context.Context) (int, error) {
	return s.titleService.Sweep(ctx, time.Now())
}
