package server

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/errors"
	"github.com/lgbarn/jchess-go/internal/output"
)

// Handler serves the REST and WebSocket routes.
type Handler struct {
	store *SessionStore
	cfg   *config.Config
}

// NewHandler creates a handler over store.
func NewHandler(store *SessionStore, cfg *config.Config) *Handler {
	return &Handler{store: store, cfg: cfg}
}

type createRequest struct {
	FEN string `json:"fen"`
}

type createResponse struct {
	ID    string            `json:"id"`
	Board *output.JSONBoard `json:"board"`
}

type gameResponse struct {
	ID string `json:"id"`
	*output.JSONGame
}

type moveResponse struct {
	Applied bool              `json:"applied"`
	Move    *output.JSONMove  `json:"move,omitempty"`
	Reason  string            `json:"reason,omitempty"`
	Board   *output.JSONBoard `json:"board,omitempty"`
}

type destinationsResponse struct {
	Square       string   `json:"square"`
	Destinations []string `json:"destinations"`
}

// errorStatus maps an error to the HTTP status reported for it.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrSessionLimit):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, errors.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.IsHard(err):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// ListGames handles GET /api/games.
func (h *Handler) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": h.store.IDs(),
	})
}

// CreateGame handles POST /api/games.
func (h *Handler) CreateGame(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
	}
	if req.FEN == "" {
		req.FEN = h.cfg.StartFEN
	}

	s, err := h.store.Create(req.FEN)
	if err != nil {
		return sendError(c, err)
	}
	h.cfg.Logf(1, "game %s created\n", s.ID)
	return c.Status(fiber.StatusCreated).JSON(createResponse{
		ID:    s.ID,
		Board: s.Board(),
	})
}

// GetGame handles GET /api/games/:id.
func (h *Handler) GetGame(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameResponse{ID: s.ID, JSONGame: s.Game()})
}

// MakeMove handles POST /api/games/:id/moves.
func (h *Handler) MakeMove(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if req.Move == "" && (req.From == "" || req.To == "") {
		return badRequest(c, errors.Wrap(errors.ErrUnresolvedNotation, "move or from and to required"))
	}

	result, err := s.Move(req, h.cfg.Notation)
	if err != nil {
		return sendError(c, err)
	}
	if !result.Applied {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(moveResponse{
			Applied: false,
			Reason:  result.Rejection.String(),
		})
	}

	move := output.MoveToJSON(result.Ply, result.Move)
	h.cfg.Logf(2, "game %s: %s\n", s.ID, move.Move)
	return c.JSON(moveResponse{
		Applied: true,
		Move:    &move,
		Board:   result.Board,
	})
}

// Destinations handles GET /api/games/:id/destinations/:square.
func (h *Handler) Destinations(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}
	square := c.Params("square")
	dests, err := s.Destinations(square)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(destinationsResponse{
		Square:       square,
		Destinations: output.SquareNames(dests),
	})
}

// BoardSVG handles GET /api/games/:id/board.svg.
func (h *Handler) BoardSVG(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}
	marks, err := s.Marks(c.Query("highlight"))
	if err != nil {
		return sendError(c, err)
	}

	var buf bytes.Buffer
	s.WithBoard(func(board *chess.Board) {
		output.RenderSVG(&buf, board, marks, h.cfg.Output.SquareSize)
	})
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

// DeleteGame handles DELETE /api/games/:id.
func (h *Handler) DeleteGame(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Params("id")); err != nil {
		return sendError(c, err)
	}
	h.cfg.Logf(1, "game %s deleted\n", c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
