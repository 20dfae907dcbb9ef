package bot

import (
	"slices"

	"github.com/mcoot/battleship-go/internal/model"
)

// ShotLog is a bot's knowledge of the opponent's board
type ShotLog struct {
	cells [model.BoardSize][model.BoardSize]model.CellState
	open  []model.Position // Hits not yet attributed to a sunk ship
}

// NewShotLog creates an empty log
func NewShotLog() *ShotLog {
	return &ShotLog{}
}

// Record stores the outcome of one of the bot's own shots
func (l *ShotLog) Record(pos model.Position, outcome model.AttackOutcome) {
	if !pos.InBounds() {
		return
	}
	switch outcome {
	case model.OutcomeMiss:
		l.cells[pos.Y][pos.X] = model.CellMiss
	case model.OutcomeHit:
		l.cells[pos.Y][pos.X] = model.CellHit
		l.open = append(l.open, pos)
	case model.OutcomeSunk:
		l.resolveSunk(pos, 0)
	}
}

// RecordSunk stores a sinking shot on a ship of known kind. Only the open hits
// that belong to that ship are resolved; hits on other ships stay open.
func (l *ShotLog) RecordSunk(pos model.Position, kind model.ShipKind) {
	if !pos.InBounds() {
		return
	}
	l.resolveSunk(pos, kind.Length())
}

// resolveSunk closes the run of open hits through pos that made up the sunk
// ship. With an unknown length the longest adjacent run is taken. Runs longer
// than the ship resolve toward lower coordinates first.
func (l *ShotLog) resolveSunk(pos model.Position, length int) {
	l.cells[pos.Y][pos.X] = model.CellHit

	var sunk []model.Position
	for _, axis := range [][2]int{{1, 0}, {0, 1}} {
		run := append(l.openRun(pos, -axis[0], -axis[1]), l.openRun(pos, axis[0], axis[1])...)
		if length > 0 {
			if len(run) >= length-1 {
				sunk = run[:length-1]
				break
			}
			continue
		}
		if len(run) > len(sunk) {
			sunk = run
		}
	}
	l.close(sunk)
}

// openRun walks away from pos by (dx, dy) while cells are open hits, nearest first
func (l *ShotLog) openRun(pos model.Position, dx, dy int) []model.Position {
	var run []model.Position
	cur := model.Position{X: pos.X + dx, Y: pos.Y + dy}
	for cur.InBounds() && l.isOpen(cur) {
		run = append(run, cur)
		cur = model.Position{X: cur.X + dx, Y: cur.Y + dy}
	}
	return run
}

func (l *ShotLog) isOpen(pos model.Position) bool {
	for _, p := range l.open {
		if p == pos {
			return true
		}
	}
	return false
}

func (l *ShotLog) close(cells []model.Position) {
	remaining := l.open[:0]
	for _, p := range l.open {
		if !slices.Contains(cells, p) {
			remaining = append(remaining, p)
		}
	}
	l.open = remaining
}

// Tried returns true if the cell has already been fired at
func (l *ShotLog) Tried(pos model.Position) bool {
	return l.cells[pos.Y][pos.X] != model.CellEmpty
}

// Untried returns every cell not yet fired at, in row-major order
func (l *ShotLog) Untried() []model.Position {
	var cells []model.Position
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			if l.cells[y][x] == model.CellEmpty {
				cells = append(cells, model.Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// OpenHits returns hits that have not yet sunk a ship
func (l *ShotLog) OpenHits() []model.Position {
	return l.open
}
