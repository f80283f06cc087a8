package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Hub управляет всеми WebSocket клиентами и рассылает им события маркетплейса.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	ctx        context.Context
}

type message struct {
	accountID uuid.UUID
	payload   []byte
}

// NewHub создаёт новый хаб.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
		ctx:        ctx,
	}
}

// Run запускает главный цикл хаба. Завершается при отмене контекста,
// переданного в NewHub.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.accountID, msg.payload)
		case <-h.ctx.Done():
			return
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Notify отправляет типизированное событие всем соединениям участника.
// Формат сообщения: "type" — вид события, "data" — полезная нагрузка.
func (h *Hub) Notify(accountID uuid.UUID, kind string, payload any) error {
	raw, err := json.Marshal(map[string]any{
		"type": kind,
		"data": payload,
	})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	h.broadcast <- message{accountID: accountID, payload: raw}
	return nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.accountID]; !ok {
		h.clients[client.accountID] = make(map[*Client]struct{})
	}
	h.clients[client.accountID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.accountID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)
			if len(conns) == 0 {
				delete(h.clients, client.accountID)
			}
		}
	}
}

func (h *Hub) send(accountID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[accountID] {
		select {
		case client.send <- payload:
		default:
			// Клиент не успевает читать — пропускаем, соединение закроет ping/pong.
		}
	}
}
