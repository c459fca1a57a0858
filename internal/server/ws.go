package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/output"
)

// MessageType represents the kinds of WebSocket messages.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is a WebSocket message.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func stateMessage(state *output.JSONBoard) (Message, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return Message{}, fmt.Errorf("marshal game state: %w", err)
	}
	return Message{Type: MessageTypeGameState, Payload: payload}, nil
}

func errorMessage(text string) (Message, error) {
	payload, err := json.Marshal(text)
	if err != nil {
		return Message{}, fmt.Errorf("marshal error text: %w", err)
	}
	return Message{Type: MessageTypeError, Payload: payload}, nil
}

// handleMessage applies one client message to the session. A move that
// is applied reaches every watcher through Session.Move; any failure is
// returned for the sender alone.
func handleMessage(s *Session, raw []byte, notation config.Notation) error {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}

	switch msg.Type {
	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("malformed move: %w", err)
		}
		result, err := s.Move(req, notation)
		if err != nil {
			return err
		}
		return result.Err()
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// upgradeOnly rejects plain HTTP requests to WebSocket routes.
func upgradeOnly(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// handleConnection serves one WebSocket client of a game.
func (h *Handler) handleConnection(c *websocket.Conn) {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		if msg, err := errorMessage(err.Error()); err == nil {
			_ = c.WriteJSON(msg)
		}
		c.Close()
		return
	}
	p, err := s.attach(c)
	if err != nil {
		log.Printf("attach error: %v", err)
		return
	}
	defer s.detach(p)
	h.cfg.Logf(2, "websocket attached to game %s\n", s.ID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("read error: %v", err)
			}
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if err := handleMessage(s, message, h.cfg.Notation); err != nil {
			msg, merr := errorMessage(err.Error())
			if merr != nil {
				log.Printf("marshal error: %v", merr)
				continue
			}
			if err := s.send(p, msg); err != nil {
				log.Printf("write error: %v", err)
				break
			}
		}
	}
}
