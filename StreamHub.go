package main

import (
	"fmt"
	json "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"gridCalc/contracts"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512

	streamBacklogSize = 256
)

var newline = []byte{'\n'}

type watchersQuery struct {
	sheetId string
	reply   chan int
}

type streamMessage struct {
	sheetId string
	payload []byte
}

// StreamHub fans render events out to the websocket clients watching a sheet
type StreamHub struct {
	clients map[*StreamClient]bool

	broadcast chan streamMessage

	register chan *StreamClient

	unregister chan *StreamClient

	watchers chan watchersQuery

	done      chan struct{}
	closeOnce sync.Once

	upgrader  websocket.Upgrader
	errStream io.Writer
}

// StreamClient is a middleman between the websocket connection and the hub
type StreamClient struct {
	hub     *StreamHub
	sheetId string

	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte
}

func NewStreamHub(errStream io.Writer) *StreamHub {
	return &StreamHub{
		clients:    make(map[*StreamClient]bool),
		broadcast:  make(chan streamMessage, streamBacklogSize),
		register:   make(chan *StreamClient),
		unregister: make(chan *StreamClient),
		watchers:   make(chan watchersQuery),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		errStream: errStream,
	}
}

func (h *StreamHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				if client.sheetId != message.sheetId {
					continue
				}

				select {
				case client.send <- message.payload:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		case query := <-h.watchers:
			count := 0
			for client := range h.clients {
				if client.sheetId == query.sheetId {
					count++
				}
			}
			query.reply <- count
		case <-h.done:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// Watchers returns how many connections currently stream sheetId
func (h *StreamHub) Watchers(sheetId string) int {
	reply := make(chan int, 1)
	select {
	case h.watchers <- watchersQuery{sheetId: strings.ToLower(sheetId), reply: reply}:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *StreamHub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// Notify queues the event for the watchers of its sheet. Events are dropped when the backlog is full.
func (h *StreamHub) Notify(event contracts.RenderEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		_, _ = fmt.Fprintf(h.errStream, "Stream payload error: %s\n", err)
		return
	}

	select {
	case h.broadcast <- streamMessage{sheetId: event.SheetId, payload: payload}:
	default:
		_, _ = fmt.Fprintf(h.errStream, "Stream backlog is full, event for %s!%s dropped\n", event.SheetId, event.CellId)
	}
}

// ServeWs upgrades the request and streams every render event of sheetId to the connection
func (h *StreamHub) ServeWs(w http.ResponseWriter, r *http.Request, sheetId string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		_, _ = fmt.Fprintf(h.errStream, "Stream upgrade error: %s\n", err)
		return
	}

	client := &StreamClient{
		hub:     h,
		sheetId: strings.ToLower(sheetId),
		conn:    conn,
		send:    make(chan []byte, streamBacklogSize),
	}

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only watches the connection for close and pong frames
func (c *StreamClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				_, _ = fmt.Fprintf(c.hub.errStream, "Stream read error: %s\n", err)
			}
			return
		}
	}
}

func (c *StreamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)

			// add queued events to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				_, _ = w.Write(newline)
				_, _ = w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
