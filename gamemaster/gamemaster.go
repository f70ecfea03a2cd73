package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"hex/engine"
	"hex/game"
	"hex/searcher"
	"hex/store"
	"hex/utils"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrGameNotFound = errors.New("game not found")

const (
	updateBuffer = 16
	saveTimeout  = 5 * time.Second

	// DefaultRetention is how long a finished and stored game stays live for late readers.
	DefaultRetention = 10 * time.Minute
)

// Update is published to subscribers after every committed move.
type Update struct {
	Move game.Move
	View engine.View
}

type Option func(m *GameMaster)

// GameMaster owns the live games, fans out their updates and stores finished games.
type GameMaster struct {
	mu         sync.RWMutex
	games      map[string]*entry
	store      store.Store
	goroutines int
	playouts   int
	retention  time.Duration
	seeds      utils.Random // Guarded by mu
}

type entry struct {
	game        *engine.Game
	mu          sync.Mutex
	subscribers map[int]chan Update
	nextID      int
	saved       bool
	finishedAt  time.Time // Zero while in progress
}

func WithGoroutines(goroutines int) Option {
	return func(m *GameMaster) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithPlayouts sets the playouts used when an automated turn asks for none.
func WithPlayouts(playouts int) Option {
	return func(m *GameMaster) {
		if playouts > 0 {
			m.playouts = playouts
		}
	}
}

// WithSeed makes every created game's random source derive from seed.
func WithSeed(seed uint64) Option {
	return func(m *GameMaster) {
		m.seeds = utils.NewRandom(seed)
	}
}

// WithRetention sets how long finished games stay live after they are stored.
func WithRetention(retention time.Duration) Option {
	return func(m *GameMaster) {
		if retention > 0 {
			m.retention = retention
		}
	}
}

func New(st store.Store, options ...Option) *GameMaster {
	m := &GameMaster{ // Default values
		games:      make(map[string]*entry),
		store:      st,
		goroutines: searcher.DefaultGoroutines,
		playouts:   searcher.DefaultPlayouts,
		retention:  DefaultRetention,
	}
	for _, option := range options {
		option(m)
	}
	if m.seeds == nil {
		m.seeds = utils.NewRandom(uint64(time.Now().UnixNano()))
	}
	return m
}

func (m *GameMaster) Create(width, height int) (*engine.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()

	e := &entry{subscribers: make(map[int]chan Update)}
	seed := uint64(m.seeds.IntRange(0, math.MaxInt32))
	g, err := engine.NewGame(width, height,
		engine.WithGoroutines(m.goroutines),
		engine.WithSeed(seed),
		engine.WithObserver(e.publish),
	)
	if err != nil {
		return nil, err
	}
	e.game = g
	m.games[g.ID()] = e

	log.Info().Str("game", g.ID()).Int("width", width).Int("height", height).Msg("game created")
	return g, nil
}

// sweep drops stored games finished longer than the retention ago and retries storing
// finished games whose save failed. Callers hold m.mu.
func (m *GameMaster) sweep() {
	cutoff := time.Now().Add(-m.retention)
	for id, e := range m.games {
		e.mu.Lock()
		finished, saved, finishedAt := !e.finishedAt.IsZero(), e.saved, e.finishedAt
		e.mu.Unlock()

		switch {
		case saved && finishedAt.Before(cutoff):
			delete(m.games, id)
			log.Debug().Str("game", id).Msg("finished game evicted")
		case finished && !saved:
			go m.finish(context.Background(), e, e.game.View())
		}
	}
}

func (m *GameMaster) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return e, nil
}

func (m *GameMaster) Get(id string) (*engine.Game, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.game, nil
}

// Play applies a human move.
func (m *GameMaster) Play(ctx context.Context, id string, x, y int) (engine.View, error) {
	e, err := m.lookup(id)
	if err != nil {
		return engine.View{}, err
	}

	if _, err := e.game.ApplyMove(x, y); err != nil {
		return e.game.View(), err
	}
	view := e.game.View()
	m.finish(ctx, e, view)
	return view, nil
}

// Auto runs an automated turn. Non-positive playouts fall back to the configured default.
func (m *GameMaster) Auto(ctx context.Context, id string, playouts int) (game.Move, engine.View, error) {
	e, err := m.lookup(id)
	if err != nil {
		return game.Move{}, engine.View{}, err
	}
	if playouts <= 0 {
		playouts = m.playouts
	}

	move, _, err := e.game.StepAutomated(playouts)
	if err != nil {
		return game.Move{}, e.game.View(), err
	}
	view := e.game.View()
	m.finish(ctx, e, view)
	return move, view, nil
}

// publish runs under the game's lock, so subscribers see moves in turn order.
func (e *entry) publish(move game.Move, view engine.View) {
	e.mu.Lock()
	defer e.mu.Unlock()

	update := Update{Move: move, View: view}
	for _, ch := range e.subscribers {
		select {
		case ch <- update:
		default: // Slow subscriber, drop the update
		}
	}
}

// finish stores a terminal game once. The save outlives the caller's context so a
// disconnecting client cannot lose the record.
func (m *GameMaster) finish(ctx context.Context, e *entry, view engine.View) {
	if view.Status.State != engine.Terminal {
		return
	}
	startedAt := e.game.StartTime()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.saved {
		return
	}
	if e.finishedAt.IsZero() {
		e.finishedAt = time.Now()
	}
	record := store.Record{
		ID:        view.ID,
		Width:     view.Width,
		Height:    view.Height,
		Winner:    view.Status.Winner,
		Moves:     view.History,
		StartedAt: startedAt.UTC(),
		EndedAt:   e.finishedAt.UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	if err := m.store.SaveGame(ctx, record); err != nil {
		log.Error().Err(err).Str("game", view.ID).Msg("failed to store finished game")
		return
	}
	e.saved = true
}

// Subscribe returns a channel of updates for game id and a function that cancels the
// subscription and closes the channel.
func (m *GameMaster) Subscribe(id string) (<-chan Update, func(), error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	subID := e.nextID
	e.nextID++
	ch := make(chan Update, updateBuffer)
	e.subscribers[subID] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subscribers, subID)
			close(ch)
		})
	}
	return ch, cancel, nil
}

// Records lists stored finished games, most recent first.
func (m *GameMaster) Records(ctx context.Context, limit int) ([]store.Record, error) {
	return m.store.ListGames(ctx, limit)
}

func (m *GameMaster) Record(ctx context.Context, id string) (store.Record, error) {
	return m.store.GetGame(ctx, id)
}
