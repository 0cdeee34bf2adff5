package session

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"bgmix/internal/providers"
	"bgmix/internal/services"
	"bgmix/internal/session/interfaces"
	"bgmix/internal/structures"
)

// Scheduler runs the two periodic jobs of the session store: snapshot
// persistence and expired-session sweeping.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.SessionServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Session.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Session.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting sessions: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted sessions to file %s", s.config.Session.FilePath)
	})

	s.cron.AddFunc(gron.Every(s.config.Session.SweepInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if removed := s.service.Sweep(); removed > 0 {
			s.logger.Infof(providers.TypeApp, "Swept %d expired sessions", removed)
		}
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Session.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting sessions to file...")
	err := s.fileManager.SaveToFile(s.config.Session.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting sessions: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.SessionServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
