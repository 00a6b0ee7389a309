// Package chat runs the user↔support messaging channel: one websocket
// connection per username, direct delivery to a single recipient, every
// message persisted before delivery is attempted.
package chat

import (
	"log"

	"cellardoor/internal/domain"
)

// Message is the wire shape exchanged over the websocket.
type Message struct {
	User       string `json:"user"`
	TargetUser string `json:"targetUser"`
	Body       string `json:"message"`
}

// MessageStore persists chat messages; satisfied by repos.MessageRepo.
type MessageStore interface {
	Save(m domain.Message) error
}

type Hub struct {
	// Registered clients by username. A second connection for the same
	// username replaces the first.
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	inbound    chan Message

	store MessageStore

	// Quit stops the run loop and closes every connection.
	Quit chan struct{}
}

func NewHub(store MessageStore) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client, 64),
		inbound:    make(chan Message, 256),
		store:      store,
		Quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if old, ok := h.clients[c.user]; ok && old != c {
				close(old.send)
			}
			h.clients[c.user] = c

		case c := <-h.unregister:
			if cur, ok := h.clients[c.user]; ok && cur == c {
				delete(h.clients, c.user)
				close(c.send)
			}

		case msg := <-h.inbound:
			h.dispatch(msg)

		case <-h.Quit:
			for user, c := range h.clients {
				delete(h.clients, user)
				close(c.send)
			}
			return
		}
	}
}

// dispatch persists the message, then delivers it to the target's connection
// if one is registered. Delivery is best effort and reaches at most one
// recipient; a missing or slow target only loses the live push, never the
// stored message.
func (h *Hub) dispatch(msg Message) {
	if msg.TargetUser == "" {
		log.Printf("[chat] dropping message from %s: no target user", msg.User)
		return
	}

	if err := h.store.Save(domain.Message{
		User:       msg.User,
		TargetUser: msg.TargetUser,
		Body:       msg.Body,
	}); err != nil {
		log.Printf("[chat] persist failed from=%s to=%s: %v", msg.User, msg.TargetUser, err)
	}

	target, ok := h.clients[msg.TargetUser]
	if !ok {
		log.Printf("[chat] no connection registered for %s", msg.TargetUser)
		return
	}
	select {
	case target.send <- msg:
	default:
		log.Printf("[chat] send buffer full for %s, dropping live push", msg.TargetUser)
	}
}
