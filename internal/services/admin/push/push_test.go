package push

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/net/websocket"
)

func text(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func dialPush(t *testing.T, handler http.Handler) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/push"
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func receive(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))
	var message string
	if err := websocket.Message.Receive(conn, &message); err != nil {
		t.Fatalf("receive: %v", err)
	}
	return message
}

func TestHandlerDeliversFragmentsInOrder(t *testing.T) {
	handler := Handler(time.Second, nil, func(ctx context.Context, session *Session) {
		_ = session.Send(ctx, text(`<div id="a">one</div>`))
		_ = session.Send(ctx, text(`<div id="b">`), text(`two</div>`))
	})
	conn := dialPush(t, handler)

	if got := receive(t, conn); got != `<div id="a">one</div>` {
		t.Fatalf("first message = %q", got)
	}
	if got := receive(t, conn); got != `<div id="b">two</div>` {
		t.Fatalf("second message = %q", got)
	}
}

func TestHandlerCancelsAttachOnDisconnect(t *testing.T) {
	stopped := make(chan error, 1)
	handler := Handler(time.Second, nil, func(ctx context.Context, session *Session) {
		_ = session.Send(ctx, text("ready"))
		<-ctx.Done()
		<-session.Done()
		stopped <- session.Send(context.Background(), text("late"))
	})
	conn := dialPush(t, handler)

	if got := receive(t, conn); got != "ready" {
		t.Fatalf("message = %q", got)
	}
	_ = conn.Close()

	select {
	case err := <-stopped:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("err = %v, want %v", err, ErrClosed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("attach was not cancelled after disconnect")
	}
}

func TestAccessSkipsEmptyOutputAndPropagatesErrors(t *testing.T) {
	session := NewSession(nil, 0)
	if err := session.Access(context.Background(), func(context.Context, io.Writer) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want %v", err, ErrClosed)
	}

	boom := errors.New("boom")
	handler := Handler(time.Second, nil, func(ctx context.Context, session *Session) {
		if err := session.Access(ctx, func(context.Context, io.Writer) error { return boom }); !errors.Is(err, boom) {
			_ = session.Send(ctx, text("unexpected error"))
			return
		}
		if err := session.Access(ctx, func(context.Context, io.Writer) error { return nil }); err != nil {
			_ = session.Send(ctx, text("unexpected empty error"))
			return
		}
		_ = session.Send(ctx, text("ok"))
	})
	conn := dialPush(t, handler)

	if got := receive(t, conn); got != "ok" {
		t.Fatalf("message = %q", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	session := NewSession(nil, time.Second)
	session.Close()
	session.Close()
	select {
	case <-session.Done():
	default:
		t.Fatal("expected done to be closed")
	}
}

func TestHandlerKeepsLatestSentValues(t *testing.T) {
	handler := Handler(time.Second, nil, func(ctx context.Context, session *Session) {
		deadline := time.After(2 * time.Second)
		for {
			if value, ok := session.Value("q"); ok && value == "be" {
				_ = session.Send(ctx, text("q="+value))
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-deadline:
				_ = session.Send(ctx, text("timed out"))
				return
			case <-time.After(5 * time.Millisecond):
			}
		}
	})
	conn := dialPush(t, handler)

	for _, message := range []string{
		`not json`,
		`{"q":"b","HEADERS":{"HX-Request":"true"}}`,
		`{"q":["x","be"],"HEADERS":{"HX-Request":"true"}}`,
	} {
		if err := websocket.Message.Send(conn, message); err != nil {
			t.Fatalf("send %q: %v", message, err)
		}
	}

	if got := receive(t, conn); got != "q=be" {
		t.Fatalf("message = %q", got)
	}
}

func TestDecodeValues(t *testing.T) {
	values, err := decodeValues(`{"q":"tea","tags":["a","b"],"n":3,"HEADERS":{"HX-Trigger":"categories-search"}}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values["q"] != "tea" || values["tags"] != "b" {
		t.Fatalf("values = %v", values)
	}
	if _, ok := values["HEADERS"]; ok {
		t.Fatalf("headers should be dropped: %v", values)
	}
	if _, ok := values["n"]; ok {
		t.Fatalf("non-string field should be dropped: %v", values)
	}
	if _, err := decodeValues("[]"); err == nil {
		t.Fatal("expected error for non-object message")
	}
}

func TestTrackerStopsAttachmentsOnBaseCancel(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker := &Tracker{}
	started := make(chan struct{})
	handler := Handler(time.Second, tracker, func(ctx context.Context, session *Session) {
		close(started)
		<-ctx.Done()
	})

	srv := httptest.NewUnstartedServer(handler)
	srv.Config.BaseContext = func(net.Listener) context.Context { return base }
	srv.Start()
	t.Cleanup(srv.Close)

	conn, err := websocket.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/push", "", srv.URL)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	<-started

	cancel()
	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	if err := tracker.Wait(waitCtx); err != nil {
		t.Fatalf("wait: %v", err)
	}

	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))
	var message string
	if err := websocket.Message.Receive(conn, &message); err == nil {
		t.Fatalf("expected closed connection, got %q", message)
	}
}

func TestTrackerRefusesAfterWait(t *testing.T) {
	tracker := &Tracker{}
	if err := tracker.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if tracker.acquire() {
		t.Fatal("expected stopped tracker to refuse attachments")
	}
	var none *Tracker
	if !none.acquire() {
		t.Fatal("nil tracker should admit attachments")
	}
	none.release()
}
