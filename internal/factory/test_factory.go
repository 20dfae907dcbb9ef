package factory

import (
	"time"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/auth"
	"github.com/mcoot/battleship-go/internal/services/bot"
	"github.com/mcoot/battleship-go/internal/storage/memory"
	"github.com/mcoot/battleship-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Bots move without delay.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	botCfg := bot.Config{MaxActiveBots: 8}
	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), botCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// FleetLayout is a valid placement of the full fleet, one ship per row from
// the top-left corner
func FleetLayout() map[model.ShipKind]model.Position {
	layout := make(map[model.ShipKind]model.Position, model.FleetSize)
	for i, kind := range model.ShipKinds() {
		layout[kind] = model.Position{X: 0, Y: i}
	}
	return layout
}

// FleetCells returns every cell covered by FleetLayout
func FleetCells() []model.Position {
	var cells []model.Position
	for i, kind := range model.ShipKinds() {
		for x := 0; x < kind.Length(); x++ {
			cells = append(cells, model.Position{X: x, Y: i})
		}
	}
	return cells
}
