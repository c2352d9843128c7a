// Package push delivers server-initiated HTML fragments to one attached
// browser view over a websocket. htmx's ws extension swaps each fragment into
// the page by element id, and sends form values back from `ws-send`
// elements; the session keeps the latest value of each field.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/beveragebuddy/internal/platform/timeouts"
	"golang.org/x/net/websocket"
)

// ErrClosed is returned by Access after the view detached.
var ErrClosed = errors.New("push session is closed")

// Session serializes updates to one websocket connection.
type Session struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	writeTimeout time.Duration
	closed       bool
	done         chan struct{}

	valuesMu sync.RWMutex
	values   map[string]string
}

// NewSession wraps conn. A non-positive writeTimeout uses timeouts.PushWrite.
func NewSession(conn *websocket.Conn, writeTimeout time.Duration) *Session {
	if writeTimeout <= 0 {
		writeTimeout = timeouts.PushWrite
	}
	return &Session{conn: conn, writeTimeout: writeTimeout, done: make(chan struct{})}
}

// Access renders fn while holding the session lock and sends the output as
// one text message. Concurrent callers are applied one at a time.
func (s *Session) Access(ctx context.Context, fn func(ctx context.Context, w io.Writer) error) error {
	if s == nil || fn == nil {
		return errors.New("push session is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.conn == nil {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := fn(ctx, &buf); err != nil {
		return err
	}
	if buf.Len() == 0 {
		return nil
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	if err := websocket.Message.Send(s.conn, buf.String()); err != nil {
		return err
	}
	return nil
}

// Value returns the latest value the browser sent for field.
func (s *Session) Value(field string) (string, bool) {
	s.valuesMu.RLock()
	defer s.valuesMu.RUnlock()
	value, ok := s.values[field]
	return value, ok
}

func (s *Session) setValues(values map[string]string) {
	if len(values) == 0 {
		return
	}
	s.valuesMu.Lock()
	defer s.valuesMu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string, len(values))
	}
	for field, value := range values {
		s.values[field] = value
	}
}

// Send renders components in order as one update.
func (s *Session) Send(ctx context.Context, components ...templ.Component) error {
	return s.Access(ctx, func(ctx context.Context, w io.Writer) error {
		for _, component := range components {
			if component == nil {
				continue
			}
			if err := component.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close marks the session closed. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}

// Done is closed once the session is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// AttachFunc runs for the lifetime of one attachment. ctx is cancelled when
// the browser disconnects or the request context ends.
type AttachFunc func(ctx context.Context, session *Session)

// Handler upgrades requests to websockets and runs attach once per
// connection. Messages from the browser update the session values. When
// tracker is not nil, attachments are refused once it stops.
func Handler(writeTimeout time.Duration, tracker *Tracker, attach AttachFunc) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		defer func() {
			_ = conn.Close()
		}()
		if !tracker.acquire() {
			return
		}
		defer tracker.release()

		parent := context.Background()
		if request := conn.Request(); request != nil {
			parent = request.Context()
		}
		ctx, cancel := context.WithCancel(parent)
		defer cancel()
		// Unblocks the receive loop when the server stops.
		go func() {
			<-ctx.Done()
			_ = conn.Close()
		}()

		session := NewSession(conn, writeTimeout)
		var wg sync.WaitGroup
		if attach != nil {
			wg.Add(1)
			go func() {
				defer wg.Done()
				attach(ctx, session)
			}()
		}

		readValues(ctx, conn, session)
		cancel()
		session.Close()
		wg.Wait()
	})
}

func readValues(ctx context.Context, conn *websocket.Conn, session *Session) {
	for {
		var message string
		if err := websocket.Message.Receive(conn, &message); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				log.Printf("push: connection closed: %v", err)
			}
			return
		}
		values, err := decodeValues(message)
		if err != nil {
			log.Printf("push: ignore message: %v", err)
			continue
		}
		session.setValues(values)
	}
}

// decodeValues reads the JSON object htmx's ws extension sends: form fields
// plus a HEADERS object, which is dropped. A multi-valued field keeps its
// last value.
func decodeValues(message string) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(message), &raw); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	values := make(map[string]string, len(raw))
	for field, data := range raw {
		if field == "HEADERS" {
			continue
		}
		var single string
		if err := json.Unmarshal(data, &single); err == nil {
			values[field] = single
			continue
		}
		var many []string
		if err := json.Unmarshal(data, &many); err == nil && len(many) > 0 {
			values[field] = many[len(many)-1]
		}
	}
	return values, nil
}

// Tracker counts live attachments so a server can wait for them on shutdown.
type Tracker struct {
	mu       sync.Mutex
	stopping bool
	active   sync.WaitGroup
}

func (t *Tracker) acquire() bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopping {
		return false
	}
	t.active.Add(1)
	return true
}

func (t *Tracker) release() {
	if t == nil {
		return
	}
	t.active.Done()
}

// Wait refuses new attachments and blocks until the live ones return or ctx
// ends.
func (t *Tracker) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	t.stopping = true
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.active.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
