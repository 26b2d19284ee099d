// Package session drives a Frogger game at a fixed tick period.
// A Runner is the single owner of its game: ticks and input are applied on
// the Run goroutine only, and renderers receive immutable snapshots.
package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/frogger/internal/games/frogger"
)

const inputBuffer = 16

// ErrAlreadyStarted is returned when Run is called twice on one Runner.
var ErrAlreadyStarted = errors.New("session: runner already started")

// Observer receives a snapshot after every state change.
// It is called on the Run goroutine and must not block for long.
type Observer func(frogger.Snapshot)

// Config configures a Runner. Zero values select defaults.
type Config struct {
	ID         string        // Session ID, a random UUID if empty
	TickPeriod time.Duration // Defaults to the game's tick period
	Observer   Observer
	Logger     *log.Logger
}

// Result summarizes a finished run.
type Result struct {
	Score    int
	Ticks    int
	GameOver bool
}

// Runner owns one game session.
type Runner struct {
	id       string
	game     *frogger.Game
	period   time.Duration
	observer Observer
	logger   *log.Logger

	input   chan frogger.Direction
	done    chan struct{}
	started atomic.Bool
}

// New creates a Runner for g. The game must not be used elsewhere afterwards.
func New(g *frogger.Game, cfg Config) *Runner {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	period := cfg.TickPeriod
	if period <= 0 {
		period = g.TickPeriod()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		id:       id,
		game:     g,
		period:   period,
		observer: cfg.Observer,
		logger:   logger.With("session", id),
		input:    make(chan frogger.Direction, inputBuffer),
		done:     make(chan struct{}),
	}
}

// ID returns the session ID.
func (r *Runner) ID() string {
	return r.id
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Input queues a move for the next loop iteration without blocking.
// It returns false if the move was dropped: the buffer is full or the
// session has ended.
func (r *Runner) Input(d frogger.Direction) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.input <- d:
		return true
	default:
		r.logger.Debug("input dropped", "direction", d)
		return false
	}
}

// Run ticks the game until it is over or ctx is cancelled.
// It returns nil on game over and ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if !r.started.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyStarted
	}
	defer close(r.done)

	// A Ticker drops ticks when the loop falls behind instead of catching up.
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	r.logger.Info("session started", "game", r.game.ID(), "tick", r.period)
	r.publish()

	for {
		select {
		case <-ctx.Done():
			res := r.result()
			r.logger.Info("session cancelled", "score", res.Score, "ticks", res.Ticks)
			return res, ctx.Err()

		case d := <-r.input:
			if r.game.HandleInput(d) {
				r.publish()
			}

		case <-ticker.C:
			tr := r.game.AdvanceTick()
			if tr.LivesLost > 0 {
				r.logger.Debug("frog hit", "lives_lost", tr.LivesLost, "lives", r.game.State().Lives)
			}
			if tr.Scored {
				r.logger.Debug("crossing", "score", r.game.State().Score)
			}
			r.publish()

			if tr.GameOver {
				res := r.result()
				r.logger.Info("game over", "score", res.Score, "ticks", res.Ticks)
				return res, nil
			}
		}
	}
}

func (r *Runner) publish() {
	if r.observer != nil {
		r.observer(r.game.Snapshot())
	}
}

func (r *Runner) result() Result {
	st := r.game.State()
	return Result{
		Score:    st.Score,
		Ticks:    r.game.Ticks(),
		GameOver: st.GameOver,
	}
}
