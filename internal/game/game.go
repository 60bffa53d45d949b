// Package game runs a two-team hostage chess game on top of the engine:
// turn order, move dispatch, promotion, check flags and position history.
package game

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/engine"
	"github.com/lgbarn/hostage-chess/internal/hashing"
)

// Status is the state of a game.
type Status int

const (
	Playing Status = iota
	Checkmate
	NoMoves
	PlyLimit
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Checkmate:
		return "checkmate"
	case NoMoves:
		return "no moves"
	case PlyLimit:
		return "ply limit"
	}
	return "unknown"
}

// Record is one played move.
type Record struct {
	Ply      int
	Team     chess.TeamID
	Piece    string
	Kind     engine.TxKind
	From     chess.Coordinate
	To       chess.Coordinate
	Captured string
	Promoted bool
	Check    bool // The opposing king was left in check
	Hash     uint64
}

// Game owns one board and serialises every mutation of it.
type Game struct {
	ID string

	mu       sync.Mutex
	board    *chess.Board
	order    []*chess.Team
	turn     int
	maxPlies int
	status   Status
	winner   chess.TeamID
	moves    []Record
	history  []uint64
	rejected int
	rolled   int

	log       io.Writer
	verbosity int
	verify    bool
	hook      engine.StepHook
}

// Option configures a Game.
type Option func(*Game)

// WithLog traces transaction steps to w when verbosity is 2 or more.
func WithLog(w io.Writer, verbosity int) Option {
	return func(g *Game) {
		g.log = w
		g.verbosity = verbosity
	}
}

// WithMaxPlies ends the game after n half-moves. Zero means no limit.
func WithMaxPlies(n int) Option {
	return func(g *Game) {
		if n >= 0 {
			g.maxPlies = n
		}
	}
}

// WithRollbackVerification checks the board after every transaction: a
// rolled back move must leave an identical snapshot and a successful one
// must pass Board.Verify.
func WithRollbackVerification(enabled bool) Option {
	return func(g *Game) {
		g.verify = enabled
	}
}

// WithStepHook attaches h to every transaction the game runs.
func WithStepHook(h engine.StepHook) Option {
	return func(g *Game) {
		g.hook = h
	}
}

// WithGameID overrides the generated game id.
func WithGameID(id string) Option {
	return func(g *Game) {
		g.ID = id
	}
}

// New creates a game in the standard starting position. Ids come from ids,
// or a fresh sequence when ids is nil.
func New(ids chess.IDSource, opts ...Option) (*Game, error) {
	b, err := NewStandardBoard(ids)
	if err != nil {
		return nil, err
	}
	return NewFromBoard(b, opts...), nil
}

// NewFromBoard wraps an already populated board. The team with the lowest
// PlayOrder moves first.
func NewFromBoard(b *chess.Board, opts ...Option) *Game {
	g := &Game{
		ID:    uuid.NewString(),
		board: b,
		order: b.Teams(),
	}
	for _, opt := range opts {
		opt(g)
	}
	engine.UpdateCheckFlags(b)
	g.history = append(g.history, g.hash())
	return g
}

// Board returns the game board. Callers must not mutate it directly.
func (g *Game) Board() *chess.Board {
	return g.board
}

// Turn returns the team to move.
func (g *Game) Turn() *chess.Team {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current()
}

func (g *Game) current() *chess.Team {
	if len(g.order) == 0 {
		return nil
	}
	return g.order[g.turn%len(g.order)]
}

// Plies returns the number of half-moves played.
func (g *Game) Plies() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.moves)
}

// Status returns the game status.
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.Status() != Playing
}

// Winner returns the winning team, or NoTeam.
func (g *Game) Winner() chess.TeamID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

// Moves returns a copy of the played moves.
func (g *Game) Moves() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Record(nil), g.moves...)
}

// History returns the Zobrist hash of every position reached, starting with
// the initial one.
func (g *Game) History() []uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]uint64(nil), g.history...)
}

// Rejected returns how many attempted moves failed validation.
func (g *Game) Rejected() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rejected
}

// RolledBack returns how many attempted moves were rolled back.
func (g *Game) RolledBack() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rolled
}

// Signature returns the duplicate-detection signature of the current
// position.
func (g *Game) Signature() hashing.GameSignature {
	g.mu.Lock()
	defer g.mu.Unlock()
	return hashing.NewSignature(g.board, g.current().ID, len(g.moves))
}

func (g *Game) hash() uint64 {
	var toMove chess.TeamID
	if t := g.current(); t != nil {
		toMove = t.ID
	}
	return hashing.GenerateZobristHash(g.board, toMove)
}

// tracef writes a trace line when tracing is enabled.
func (g *Game) tracef(format string, args ...interface{}) {
	if g.log == nil || g.verbosity < 2 {
		return
	}
	fmt.Fprintf(g.log, "game %s: "+format+"\n", append([]interface{}{g.shortID()}, args...)...)
}

func (g *Game) shortID() string {
	if len(g.ID) > 8 {
		return g.ID[:8]
	}
	return g.ID
}

// stepHook combines tracing with any caller hook.
func (g *Game) stepHook() engine.StepHook {
	tracing := g.log != nil && g.verbosity >= 2
	if !tracing && g.hook == nil {
		return nil
	}
	return func(e engine.Event) error {
		if tracing {
			g.tracef("%s", e)
		}
		if g.hook != nil {
			return g.hook(e)
		}
		return nil
	}
}
