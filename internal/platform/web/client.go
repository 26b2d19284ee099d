package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/frogger/internal/games/frogger"
	"github.com/vovakirdan/frogger/internal/session"
	"github.com/vovakirdan/frogger/internal/storage"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is one browser connection. It owns at most one running session at
// a time; a restart replaces the finished session with a fresh one.
type Client struct {
	ID     string
	GameID string
	Player string

	conn   *websocket.Conn
	send   chan []byte
	store  storage.ScoreStore
	logger *log.Logger

	runner   *session.Runner // Only touched by ReadPump
	finished chan struct{}   // Closed once the session's game_over is queued
	wg       sync.WaitGroup  // Running sessions
}

// ReadPump reads client messages until the connection closes, then stops
// the session and the write pump.
func (c *Client) ReadPump(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		c.wg.Wait()
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	c.startSession(ctx)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "client", c.ID, "error", err)
			}
			return
		}
		c.handleMessage(ctx, data)
	}
}

// WritePump sends queued frames and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues a message without blocking. Snapshots are dropped
// when the browser falls behind; the next one supersedes them anyway.
func (c *Client) SendMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to marshal message", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Debug("client send buffer full, dropping message", "client", c.ID, "type", msg.Type)
	}
}

// sendReliable queues a message the browser must not miss (game_over,
// error), waiting up to writeWait for room in the buffer.
func (c *Client) sendReliable(msg Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to marshal message", "error", err)
		return false
	}
	timer := time.NewTimer(writeWait)
	defer timer.Stop()
	select {
	case c.send <- data:
		return true
	case <-timer.C:
		c.logger.Warn("client not reading, dropping message", "client", c.ID, "type", msg.Type)
		return false
	}
}

func (c *Client) sendPayload(msgType string, payload any) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		c.logger.Error("failed to build message", "type", msgType, "error", err)
		return
	}
	if msgType == TypeGameOver {
		c.sendReliable(msg)
		return
	}
	c.SendMessage(msg)
}

func (c *Client) handleMessage(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendReliable(NewErrorMessage("invalid message format"))
		return
	}

	if c.runner == nil {
		c.sendReliable(NewErrorMessage("no active game"))
		return
	}

	switch msg.Type {
	case TypeMove:
		var p MovePayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			c.sendReliable(NewErrorMessage("invalid move payload"))
			return
		}
		d, err := frogger.ParseDirection(p.Direction)
		if err != nil {
			c.sendReliable(NewErrorMessage(err.Error()))
			return
		}
		// Moves after game over are ignored, like the game itself does.
		c.runner.Input(d)

	case TypeRestart:
		select {
		case <-c.finished:
			c.startSession(ctx)
		default:
			c.sendReliable(NewErrorMessage("game still running"))
		}

	default:
		c.sendReliable(NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// startSession creates a fresh game and runs it until game over or ctx ends.
func (c *Client) startSession(ctx context.Context) {
	g, err := frogger.Create(c.GameID)
	if err != nil {
		c.sendReliable(NewErrorMessage(err.Error()))
		return
	}

	high := c.highScore(ctx)
	r := session.New(g, session.Config{
		ID:     c.ID,
		Logger: c.logger,
		Observer: func(s frogger.Snapshot) {
			c.sendPayload(TypeState, s)
		},
	})
	c.runner = r
	finished := make(chan struct{})
	c.finished = finished

	snap := g.Snapshot()
	c.sendPayload(TypeHello, HelloPayload{
		SessionID: c.ID,
		GameID:    g.ID(),
		Title:     g.Title(),
		Player:    c.Player,
		Board:     snap.Board,
		TickMS:    int(g.TickPeriod() / time.Millisecond),
		HighScore: high,
	})

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(finished)

		res, err := r.Run(ctx)
		if err != nil {
			return // Disconnected
		}

		if res.Score > 0 && c.store != nil {
			saveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if _, err := c.store.SaveScore(saveCtx, c.GameID, c.Player, res.Score); err != nil {
				c.logger.Warn("could not save score", "client", c.ID, "error", err)
			}
			cancel()
		}
		if res.Score > high {
			high = res.Score
		}

		c.sendPayload(TypeGameOver, GameOverPayload{
			Score:     res.Score,
			HighScore: high,
			Ticks:     res.Ticks,
		})
	}()
}

func (c *Client) highScore(ctx context.Context) int {
	if c.store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	high, err := c.store.HighScore(ctx, c.GameID)
	if err != nil {
		c.logger.Warn("could not load high score", "error", err)
		return 0
	}
	return high
}
