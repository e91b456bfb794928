package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/plebrun/ttroster/internal/storage/memory"
)

type FactorySuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) TestDefaultsToMemoryStorage() {
	app, err := New(Config{})
	s.Require().NoError(err)

	s.IsType(&memory.Storage{}, app.Storage)
	s.NotNil(app.Clock)
	s.NotNil(app.CalendarService)
	s.NotNil(app.LineupService)
	s.NotNil(app.DefaultsService)
	s.NotNil(app.Notifier)
	// No federation client configured
	s.Nil(app.SyncEngine)
}

func (s *FactorySuite) TestUnknownStorageType() {
	_, err := New(Config{StorageType: "cassandra"})
	s.Error(err)
	s.Contains(err.Error(), "unknown storage type")
}

func (s *FactorySuite) TestRedisRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *FactorySuite) TestNewTestAppWiresMocks() {
	now := time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)
	app, err := NewTestApp(now)
	s.Require().NoError(err)

	s.Equal(now, app.Clock.Now())
	s.NotNil(app.Federation)
	s.NotNil(app.Notifier)
	// A federation mock is wired, so the sync engine is too
	s.NotNil(app.SyncEngine)
	s.IsType(&memory.Storage{}, app.Storage)
}
