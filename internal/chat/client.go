package chat

import (
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message
	user string
}

// Serve attaches a websocket connection to the hub and pumps it until the
// peer goes away. The username comes from the connection, never from message
// payloads, so a client cannot impersonate another sender.
func (h *Hub) Serve(conn *websocket.Conn, user string) {
	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan Message, 64),
		user: user,
	}
	h.register <- c

	go c.writePump()
	c.readPump() // blocks for the lifetime of the connection
}

func (c *Client) readPump() {
	defer func() {
		c.conn.Close()
		select {
		case c.hub.unregister <- c:
		default:
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[chat] read error from %s: %v", c.user, err)
			}
			return
		}
		msg.User = c.user
		select {
		case c.hub.inbound <- msg:
		default:
			log.Printf("[chat] inbound queue full, dropping message from %s", c.user)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
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
