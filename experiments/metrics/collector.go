package metrics

import (
	"hex/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines  int
	Playouts    int // Per evaluated cell
	Cells       int
	Simulations int
	Wins        int
	Duration    time.Duration
}

type MoveMetric struct {
	Step   int
	Player game.Color
	Move   game.Move
	Score  float64
	SearchMetric
}

type GameMetric struct {
	Width          int
	Height         int
	StartingPlayer game.Color
	Winner         game.Color
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// AgentConfig describes one side of a match up.
type AgentConfig struct {
	ID          int
	Kind        string // "evaluation", "training" or "random"
	Goroutines  int
	Playouts    int
	Temperature float64
}

type Collector interface {
	Start(goroutines, playouts, cells int)
	AddSimulation()
	AddWin()
	Complete() SearchMetric
}

type collector struct {
	goroutines  int
	playouts    int
	cells       int
	startTime   time.Time
	simulations atomic.Int64
	wins        atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, playouts, cells int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.playouts = playouts
	m.cells = cells
	m.simulations.Store(0)
	m.wins.Store(0)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) AddWin() {
	m.wins.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:  m.goroutines,
		Playouts:    m.playouts,
		Cells:       m.cells,
		Simulations: int(m.simulations.Load()),
		Wins:        int(m.wins.Load()),
		Duration:    time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, playouts, cells int) {}
func (m *dummyCollector) AddSimulation()                        {}
func (m *dummyCollector) AddWin()                               {}
func (m *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
