package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"

	"toilet-finder/internal/types"
)

// Service resolves the local timezone of a map point
type Service interface {
	Location(point types.MapPoint) (*time.Location, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F

	mu        sync.RWMutex
	locations map[string]*time.Location
}

var (
	instance *service
	once     sync.Once
	initErr  error
)

// NewService creates or returns the singleton timezone service
// Uses singleton pattern because tzf.Finder loads timezone data into memory (~50MB)
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = newService(finder)
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

func newService(finder tzf.F) *service {
	return &service{
		finder:    finder,
		locations: make(map[string]*time.Location),
	}
}

// Location returns the IANA location for the given point, e.g. "Europe/London".
func (s *service) Location(point types.MapPoint) (*time.Location, error) {
	name := s.finder.GetTimezoneName(point.Longitude, point.Latitude)
	if name == "" {
		return nil, fmt.Errorf("could not determine timezone for coordinates %s", point)
	}

	s.mu.RLock()
	loc, ok := s.locations[name]
	s.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	s.mu.Lock()
	s.locations[name] = loc
	s.mu.Unlock()

	return loc, nil
}
