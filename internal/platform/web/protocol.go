// Package web serves Frogger to browsers: an embedded canvas client, a small
// JSON API and a WebSocket per player carrying input and snapshots.
package web

import (
	"encoding/json"

	"github.com/vovakirdan/frogger/internal/games/frogger"
)

// Message is the envelope for every WebSocket frame.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client -> server
const (
	TypeMove    = "move"
	TypeRestart = "restart"
)

// Server -> client
const (
	TypeHello    = "hello"
	TypeState    = "state"
	TypeGameOver = "game_over"
	TypeError    = "error"
)

// MovePayload requests one tile of movement.
type MovePayload struct {
	Direction string `json:"direction"`
}

// HelloPayload is sent when a session starts.
type HelloPayload struct {
	SessionID string        `json:"session_id"`
	GameID    string        `json:"game_id"`
	Title     string        `json:"title"`
	Player    string        `json:"player"`
	Board     frogger.Board `json:"board"`
	TickMS    int           `json:"tick_ms"`
	HighScore int           `json:"high_score"`
}

// GameOverPayload reports the final result of a session.
type GameOverPayload struct {
	Score     int `json:"score"`
	HighScore int `json:"high_score"`
	Ticks     int `json:"ticks"`
}

// ErrorMessage is sent when a request cannot be handled.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}
