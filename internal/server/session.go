package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/errors"
	"github.com/lgbarn/jchess-go/internal/output"
	"github.com/lgbarn/jchess-go/internal/processing"
)

// Session is one game plus the WebSocket connections watching it.
// Every access to the game or the peer set holds mu. Network writes
// happen on each peer's own goroutine, never under mu.
type Session struct {
	ID      string
	Created time.Time

	mu    sync.Mutex
	game  *engine.Game
	peers map[*peer]struct{}
}

// MoveRequest is a move by notation or by squares.
type MoveRequest struct {
	Move      string `json:"move,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

// Board returns the current board as JSON.
func (s *Session) Board() *output.JSONBoard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return output.BoardToJSON(s.game.Board(), nil)
}

// Game returns the game and its history as JSON.
func (s *Session) Game() *output.JSONGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return output.GameToJSON(s.game)
}

// Destinations returns the destinations of the piece on square.
func (s *Session) Destinations(square string) ([]chess.Position, error) {
	pos, err := chess.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Destinations(pos)
}

// Marks returns the highlight for square, or nil when square is empty.
func (s *Session) Marks(square string) (*output.Marks, error) {
	if square == "" {
		return nil, nil
	}
	pos, err := chess.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return output.MarksFor(s.game.Board(), pos)
}

// WithBoard calls fn with the board while the session is locked.
func (s *Session) WithBoard(fn func(board *chess.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game.Board())
}

// MoveResult is the outcome of a move together with the state it left.
type MoveResult struct {
	engine.Outcome
	Ply   int               // Ply number of the applied move
	Board *output.JSONBoard // Board after the move (nil when rejected)
}

// Move resolves and applies req. When the move is applied every
// connection watching the session is sent the new state.
func (s *Session) Move(req MoveRequest, notation config.Notation) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	move, err := resolveRequest(s.game.Board(), req, notation)
	if err != nil {
		return MoveResult{}, err
	}
	outcome, err := s.game.ApplyMove(move)
	if err != nil || !outcome.Applied {
		return MoveResult{Outcome: outcome}, err
	}
	result := MoveResult{
		Outcome: outcome,
		Ply:     len(s.game.History()),
		Board:   output.BoardToJSON(s.game.Board(), nil),
	}
	msg, err := stateMessage(result.Board)
	if err != nil {
		log.Printf("broadcast error: %v", err)
		return result, nil
	}
	s.broadcastLocked(msg)
	return result, nil
}

func resolveRequest(board *chess.Board, req MoveRequest, notation config.Notation) (chess.Move, error) {
	if req.Move != "" {
		return processing.Resolve(board, req.Move, notation)
	}
	from, err := chess.ParsePosition(req.From)
	if err != nil {
		return chess.Move{}, err
	}
	to, err := chess.ParsePosition(req.To)
	if err != nil {
		return chess.Move{}, err
	}
	move := chess.NewMove(from, to)
	if req.Promotion != "" {
		if len(req.Promotion) != 1 {
			return chess.Move{}, &errors.NotationError{Err: errors.ErrUnresolvedNotation, Notation: req.Promotion}
		}
		kind, ok := chess.ParsePieceLetter(req.Promotion[0])
		if !ok || !kind.CanPromoteTo() {
			return chess.Move{}, &errors.NotationError{Err: errors.ErrUnresolvedNotation, Notation: req.Promotion}
		}
		move.Promotion = kind
	}
	return move, nil
}

// attach registers conn and queues the current state for it.
func (s *Session) attach(conn wsConn) (*peer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, err := stateMessage(output.BoardToJSON(s.game.Board(), nil))
	if err != nil {
		return nil, err
	}
	p := newPeer(conn)
	s.peers[p] = struct{}{}
	s.deliverLocked(p, msg)
	return p, nil
}

// detach unregisters p and waits for its writer to finish.
func (s *Session) detach(p *peer) {
	s.mu.Lock()
	s.dropLocked(p)
	s.mu.Unlock()
	<-p.done
}

// send queues one message for p alone.
func (s *Session) send(p *peer, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.peers[p]; !ok {
		return errPeerGone
	}
	if !s.deliverLocked(p, msg) {
		return errPeerGone
	}
	return nil
}

// broadcastLocked queues msg for every peer. It never blocks: a peer
// whose queue is full is dropped. s.mu must be held.
func (s *Session) broadcastLocked(msg Message) {
	for p := range s.peers {
		s.deliverLocked(p, msg)
	}
}

// deliverLocked queues msg for p, dropping p when its queue is full.
// s.mu must be held.
func (s *Session) deliverLocked(p *peer, msg Message) bool {
	select {
	case p.send <- msg:
		return true
	default:
		log.Printf("dropping slow websocket client")
		s.dropLocked(p)
		return false
	}
}

// dropLocked removes p and closes its queue. Its writer then closes the
// connection, which ends the reader. s.mu must be held.
func (s *Session) dropLocked(p *peer) {
	if _, ok := s.peers[p]; !ok {
		return
	}
	delete(s.peers, p)
	close(p.send)
}

// closeAll disconnects every connection watching the session.
func (s *Session) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.peers {
		s.dropLocked(p)
	}
}

// Watchers returns the number of attached connections.
func (s *Session) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// SessionStore holds the live sessions, keyed by UUID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	maxGames int
}

// NewSessionStore creates a store. maxGames of 0 means unlimited.
func NewSessionStore(maxGames int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		maxGames: maxGames,
	}
}

// Create starts a session from fen, or from the initial position when
// fen is empty.
func (st *SessionStore) Create(fen string) (*Session, error) {
	game := engine.NewGame()
	if fen != "" {
		var err error
		if game, err = engine.NewGameFromFEN(fen); err != nil {
			return nil, err
		}
	}

	s := &Session{
		ID:      uuid.New().String(),
		Created: time.Now(),
		game:    game,
		peers:   make(map[*peer]struct{}),
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.maxGames > 0 && len(st.sessions) >= st.maxGames {
		return nil, errors.Wrapf(errors.ErrSessionLimit, "%d games", st.maxGames)
	}
	st.sessions[s.ID] = s
	return s, nil
}

// Get returns the session with the given id.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "%q", id)
	}
	return s, nil
}

// Delete removes a session and closes its connections.
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "%q", id)
	}
	s.closeAll()
	return nil
}

// IDs returns the ids of all live sessions, sorted.
func (st *SessionStore) IDs() []string {
	st.mu.RLock()
	ids := maps.Keys(st.sessions)
	st.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
