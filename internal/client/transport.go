// Package client connects the betting policy to a match engine and runs
// the message loop for a full match.
package client

import (
	"bufio"
	"fmt"
	"net"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Transport is a framed message connection to the engine. Messages are
// whole JSON documents.
type Transport interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// Dial connects to the engine URL. ws://, wss://, http:// and https://
// select the WebSocket transport; tcp:// selects newline-delimited JSON
// over a raw socket.
func Dial(rawURL string, logger *log.Logger) (Transport, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid engine URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	switch u.Scheme {
	case "ws", "wss":
		logger.Info("connecting", "url", u.String())
		conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to connect: %w", err)
		}
		return &wsTransport{conn: conn}, nil
	case "tcp":
		logger.Info("connecting", "addr", u.Host)
		conn, err := net.Dial("tcp", u.Host)
		if err != nil {
			return nil, fmt.Errorf("failed to connect: %w", err)
		}
		return &tcpTransport{conn: conn, reader: bufio.NewReader(conn)}, nil
	default:
		return nil, fmt.Errorf("unsupported engine URL scheme %q", u.Scheme)
	}
}

type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) ReadMessage() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) WriteMessage(data []byte) error {
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

func (t *wsTransport) Close() error {
	_ = t.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return t.conn.Close()
}

type tcpTransport struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (t *tcpTransport) ReadMessage() ([]byte, error) {
	line, err := t.reader.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (t *tcpTransport) WriteMessage(data []byte) error {
	_, err := t.conn.Write(append(data, '\n'))
	return err
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}
