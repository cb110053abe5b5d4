package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"uptask-api/pkg/logger"
)

// sendBuffer จำนวน message ที่รอเขียนได้ต่อ client ถ้าเต็ม message ใหม่ถูกทิ้ง
const sendBuffer = 32

// Conn ส่วนของ *websocket.Conn ที่ manager ใช้
// การเขียนทั้งหมดผ่าน writePump ของ client นั้นเท่านั้น (connection รับ writer ได้ทีละตัว)
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type WebSocketManager struct {
	clients    map[Conn]*Client
	rooms      map[string]map[Conn]*Client
	register   chan *Client
	unregister chan Conn
	broadcast  chan BroadcastMessage
	done       chan struct{}
	mutex      sync.RWMutex
}

type Client struct {
	Conn   Conn
	UserID uuid.UUID
	RoomID string

	send chan Message
}

type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	RoomID    string      `json:"roomId,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

type BroadcastMessage struct {
	Message Message
	RoomID  string
}

// ProjectRoom ชื่อ room ของ project board
func ProjectRoom(projectID uuid.UUID) string {
	return "project:" + projectID.String()
}

// NewWebSocketManager สร้าง manager และเริ่ม loop ทันที
func NewWebSocketManager() *WebSocketManager {
	m := &WebSocketManager{
		clients:    make(map[Conn]*Client),
		rooms:      make(map[string]map[Conn]*Client),
		register:   make(chan *Client),
		unregister: make(chan Conn),
		broadcast:  make(chan BroadcastMessage, 64),
		done:       make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *WebSocketManager) run() {
	for {
		select {
		case <-m.done:
			m.closeAll()
			return

		case client := <-m.register:
			m.mutex.Lock()
			m.clients[client.Conn] = client
			if client.RoomID != "" {
				if m.rooms[client.RoomID] == nil {
					m.rooms[client.RoomID] = make(map[Conn]*Client)
				}
				m.rooms[client.RoomID][client.Conn] = client
			}
			m.mutex.Unlock()

			logger.Debug("WebSocket client connected", "user_id", client.UserID, "room", client.RoomID)

		case conn := <-m.unregister:
			m.removeClient(conn)

		case message := <-m.broadcast:
			// ไม่รอ client ที่ช้า: ถ้า queue เต็มก็ทิ้ง message นั้น
			m.mutex.RLock()
			for _, client := range m.rooms[message.RoomID] {
				if !client.enqueue(message.Message) {
					logger.Warn("WebSocket client queue full, message dropped",
						"room", message.RoomID, "type", message.Message.Type)
				}
			}
			m.mutex.RUnlock()
		}
	}
}

// enqueue ต้องถูกเรียกขณะถือ mutex ของ manager (กันไม่ให้ send ถูกปิดระหว่างส่ง)
func (c *Client) enqueue(msg Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// writePump writer ตัวเดียวของ connection ปิด conn เมื่อ send ถูกปิดหรือเขียนไม่สำเร็จ
func (m *WebSocketManager) writePump(client *Client) {
	defer func() { _ = client.Conn.Close() }()

	for msg := range client.send {
		if err := client.Conn.WriteJSON(msg); err != nil {
			logger.Warn("WebSocket send failed", "room", client.RoomID, "error", err)
			m.removeClient(client.Conn)
			return
		}
	}
}

func (m *WebSocketManager) removeClient(conn Conn) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[conn]
	if !ok {
		return
	}
	delete(m.clients, conn)

	if client.RoomID != "" && m.rooms[client.RoomID] != nil {
		delete(m.rooms[client.RoomID], conn)
		if len(m.rooms[client.RoomID]) == 0 {
			delete(m.rooms, client.RoomID)
		}
	}

	close(client.send)
	logger.Debug("WebSocket client disconnected", "user_id", client.UserID, "room", client.RoomID)
}

func (m *WebSocketManager) closeAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for conn, client := range m.clients {
		close(client.send)
		delete(m.clients, conn)
	}
	m.rooms = make(map[string]map[Conn]*Client)
}

func (m *WebSocketManager) RegisterClient(conn Conn, userID uuid.UUID, roomID string) {
	client := &Client{
		Conn:   conn,
		UserID: userID,
		RoomID: roomID,
		send:   make(chan Message, sendBuffer),
	}
	go m.writePump(client)

	select {
	case m.register <- client:
	case <-m.done:
		close(client.send)
	}
}

func (m *WebSocketManager) UnregisterClient(conn Conn) {
	select {
	case m.unregister <- conn:
	case <-m.done:
	}
}

func (m *WebSocketManager) BroadcastToRoom(roomID string, messageType string, data interface{}) {
	msg := BroadcastMessage{
		Message: Message{
			Type:      messageType,
			Data:      data,
			RoomID:    roomID,
			Timestamp: time.Now().Unix(),
		},
		RoomID: roomID,
	}

	select {
	case m.broadcast <- msg:
	case <-m.done:
	}
}

// Reply ส่ง message ถึง client ตัวเดียวผ่าน queue ของมัน (false ถ้าไม่ได้ลงทะเบียนหรือ queue เต็ม)
func (m *WebSocketManager) Reply(conn Conn, msg Message) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[conn]
	if !ok {
		return false
	}
	return client.enqueue(msg)
}

func (m *WebSocketManager) GetRoomClients(roomID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.rooms[roomID])
}

func (m *WebSocketManager) GetTotalClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.clients)
}

// Stop หยุด loop และปิด client ทั้งหมด (ใช้ตอน shutdown และใน test)
func (m *WebSocketManager) Stop() {
	close(m.done)
}

// HandleClientMessage client ส่งได้แค่ ping (room ถูกกำหนดตอน connect)
// pong ถูกส่งผ่าน queue เดียวกับ broadcast
func (m *WebSocketManager) HandleClientMessage(conn Conn, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		logger.Debug("WebSocket invalid message", "error", err)
		return
	}

	switch message.Type {
	case "ping":
		m.Reply(conn, Message{
			Type:      "pong",
			Timestamp: time.Now().Unix(),
		})
	default:
		logger.Debug("WebSocket unknown message type", "type", message.Type)
	}
}
