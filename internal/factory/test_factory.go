package factory

import (
	"time"

	"github.com/plebrun/ttroster/internal/dependencies/mocks"
	"github.com/plebrun/ttroster/internal/federation"
	syncservice "github.com/plebrun/ttroster/internal/services/sync"
	"github.com/plebrun/ttroster/internal/testutil"
)

// TestApp bundles an App with the mocks it was wired against
type TestApp struct {
	*App
	Clock      *mocks.MockClock
	Federation *mocks.MockFederation
	Notifier   *mocks.MockNotifier
}

// NewTestApp creates an app on memory storage with a fixed clock, a mock
// federation client and a recording notifier, for tests
func NewTestApp(now time.Time) (*TestApp, error) {
	clk := mocks.NewMockClock(now)
	fed := mocks.NewMockFederation()
	notifier := mocks.NewMockNotifier()

	app, err := New(Config{
		Logger:     testutil.NopLogger(),
		Clock:      clk,
		Federation: federation.Client(fed),
		SyncConfig: syncservice.DefaultConfig(),
		Notifier:   notifier,
	})
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:        app,
		Clock:      clk,
		Federation: fed,
		Notifier:   notifier,
	}, nil
}
