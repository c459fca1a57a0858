package server

import (
	"errors"
	"log"
)

// peerQueue is how many messages may wait for a slow client before it
// is dropped.
const peerQueue = 16

var errPeerGone = errors.New("websocket client disconnected")

// wsConn is the part of a WebSocket connection a peer writes through.
type wsConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// peer is one attached connection. Its writer goroutine is the only
// writer on conn.
type peer struct {
	conn wsConn
	send chan Message
	done chan struct{}
}

func newPeer(conn wsConn) *peer {
	p := &peer{
		conn: conn,
		send: make(chan Message, peerQueue),
		done: make(chan struct{}),
	}
	go p.writeLoop()
	return p
}

// writeLoop writes queued messages in order until the queue is closed
// or a write fails. Closing the connection ends the reader, whose
// detach then closes the queue.
func (p *peer) writeLoop() {
	defer close(p.done)
	for msg := range p.send {
		if err := p.conn.WriteJSON(msg); err != nil {
			log.Printf("write error: %v", err)
			break
		}
	}
	p.conn.Close()
	for range p.send {
	}
}
