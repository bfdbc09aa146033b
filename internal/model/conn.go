package model

import "sync"

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncConn allows one writer at a time on the wrapped connection. It also
// remembers the sequence number of the last game state it sent and drops
// states older than that, so a slow broadcast cannot overwrite a newer one.
type SyncConn struct {
	Conn
	mu   sync.Mutex
	sent uint64
}

// NewSyncConn wraps conn. Wrapping a *SyncConn returns it unchanged.
func NewSyncConn(conn Conn) *SyncConn {
	if sc, ok := conn.(*SyncConn); ok {
		return sc
	}
	return &SyncConn{Conn: conn}
}

func (c *SyncConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

func (c *SyncConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// writeState sends v unless a state with a higher or equal seq already went
// out. It reports whether v was written.
func (c *SyncConn) writeState(seq uint64, v interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.sent {
		return false, nil
	}
	c.sent = seq
	return true, c.Conn.WriteJSON(v)
}

// is reports whether c is conn or wraps it.
func (c *SyncConn) is(conn Conn) bool {
	if sc, ok := conn.(*SyncConn); ok {
		return sc == c
	}
	return c.Conn == conn
}
