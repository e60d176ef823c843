package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/chat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 8192
	sendTimeout    = 10 * time.Second
)

// Event is the wire envelope in both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client-to-server events.
const (
	evJoinRoom    = "join_room"
	evLeaveRoom   = "leave_room"
	evSendMessage = "send_message"
	evTyping      = "typing"
)

// Server-to-client events.
const (
	evReceiveMessage = "receive_message"
	evUserTyping     = "user_typing"
	evError          = "error"
)

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	partyID string
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			c.sendError("malformed event")
			continue
		}

		switch ev.Event {
		case evJoinRoom:
			c.hub.Join(c, roomID(ev.Data))
		case evLeaveRoom:
			c.hub.Leave(c, roomID(ev.Data))
		case evSendMessage:
			c.handleSendMessage(ev.Data)
		case evTyping:
			c.handleTyping(ev.Data)
		default:
			c.sendError("unknown event: " + ev.Event)
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
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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

// handleSendMessage runs the same append-then-update sequence as the
// HTTP send endpoint, then broadcasts the persisted record to every
// subscriber of the room, the sender's other tabs included. Failures go
// back to the originating connection only.
func (c *Client) handleSendMessage(data json.RawMessage) {
	var in chat.SendInput
	if err := json.Unmarshal(data, &in); err != nil {
		c.sendError("malformed send_message payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	msg, _, err := c.hub.service.Send(ctx, in)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	out, err := marshalEvent(evReceiveMessage, msg)
	if err != nil {
		c.hub.logger.Error("marshal receive_message failed", zap.Error(err))
		return
	}
	c.hub.broadcast(in.ConversationID, out, nil)
}

// handleTyping relays the transient payload to the other subscribers of
// the room. Nothing is persisted and delivery is not guaranteed.
func (c *Client) handleTyping(data json.RawMessage) {
	var payload struct {
		ConversationID string `json:"conversationId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		return
	}

	out, err := marshalEvent(evUserTyping, data)
	if err != nil {
		return
	}
	c.hub.broadcast(payload.ConversationID, out, c)
}

func (c *Client) sendError(message string) {
	out, err := marshalEvent(evError, map[string]string{"message": message})
	if err != nil {
		return
	}
	select {
	case c.send <- out:
	default:
	}
}

func marshalEvent(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Data: raw})
}

// roomID accepts both a bare string id and an object form, since both
// appear in the wild from older clients.
func roomID(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var obj struct {
		ConversationID string `json:"conversationId"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return obj.ConversationID
	}
	return ""
}
