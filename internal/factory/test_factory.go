package factory

import (
	"time"

	"github.com/mcoot/snakescore/internal/dependencies/mocks"
	"github.com/mcoot/snakescore/internal/services/player"
	"github.com/mcoot/snakescore/internal/storage/memory"
	"github.com/mcoot/snakescore/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing: in-memory storage,
// a pinned clock, and the plain credential verifier
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, player.PlainVerifier{}, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
