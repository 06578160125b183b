package office

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/office"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	officeCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geo_attendance_office_cache_hits_total",
		Help: "Office configuration reads served from the cache.",
	})
	officeCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geo_attendance_office_cache_misses_total",
		Help: "Office configuration reads that went to the database.",
	})
)

const officeCacheKey = "office"

type OfficeServiceImpl struct {
	office.OfficeRepository
	cache *expirable.LRU[string, office.Config]

	// mu and generation keep a slow read from caching a config older than a concurrent write.
	mu         sync.Mutex
	generation uint64
}

func NewOfficeService(officeRepository office.OfficeRepository, cacheTTL time.Duration) office.OfficeService {
	return &OfficeServiceImpl{
		OfficeRepository: officeRepository,
		cache:            expirable.NewLRU[string, office.Config](1, nil, cacheTTL),
	}
}

// GetOffice implements office.OfficeService.
func (s *OfficeServiceImpl) GetOffice(ctx context.Context) (office.Config, error) {
	if cfg, ok := s.cache.Get(officeCacheKey); ok {
		officeCacheHitsTotal.Inc()
		return cfg, nil
	}
	officeCacheMissesTotal.Inc()

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	cfg, err := s.OfficeRepository.Get(ctx)
	if err != nil {
		return office.Config{}, err
	}

	s.mu.Lock()
	if gen == s.generation {
		s.cache.Add(officeCacheKey, cfg)
	}
	s.mu.Unlock()

	return cfg, nil
}

// SetOffice implements office.OfficeService.
func (s *OfficeServiceImpl) SetOffice(ctx context.Context, req office.SetOfficeRequest) (office.Config, error) {
	if err := req.Validate(); err != nil {
		return office.Config{}, fmt.Errorf("%w: %w", office.ErrInvalidConfig, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.OfficeRepository.Upsert(ctx, req.ToConfig())
	if err != nil {
		return office.Config{}, fmt.Errorf("failed to save office config: %w", err)
	}

	s.generation++
	s.cache.Add(officeCacheKey, stored)

	slog.Info("office location updated",
		"latitude", stored.Latitude,
		"longitude", stored.Longitude,
		"radius_meters", stored.RadiusMeters,
		"work_start_time", stored.WorkStartTime,
	)
	return stored, nil
}
