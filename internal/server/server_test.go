package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soar/padoverlay/internal/display"
	"github.com/soar/padoverlay/internal/hub"
)

const indexHTML = `<!DOCTYPE html>
<html>
  <head>
    <title>PadOverlay</title>
  </head>
  <body>
    <div id="overlay"></div>
  </body>
</html>
`

var testFrontend = fstest.MapFS{
	"index.html":  {Data: []byte(indexHTML)},
	"overlay.css": {Data: []byte("body {\n  margin: 0px;\n  background: transparent;\n}\n")},
	"overlay.js":  {Data: []byte("// connect\nconst answer = 40 + 2;\nconsole.log(answer);\n")},
}

func startServer(t *testing.T) (*hub.Hub, *httptest.Server) {
	t.Helper()
	h := hub.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)

	s, err := New(h, testFrontend, ":0")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return h, ts
}

func waitClients(t *testing.T, h *hub.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", h.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) hub.WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg hub.WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	return msg
}

func TestNewRequiresIndex(t *testing.T) {
	_, err := New(hub.NewHub(), fstest.MapFS{"a.css": {Data: []byte("a{}")}}, ":0")
	if err == nil {
		t.Error("New without index.html should fail")
	}
}

func TestStaticAssets(t *testing.T) {
	_, ts := startServer(t)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
		excludes    string
	}{
		{"/", http.StatusOK, "text/html", "PadOverlay", "\n  "},
		{"/overlay.css", http.StatusOK, "text/css", "margin:0", "\n"},
		{"/overlay.js", http.StatusOK, "javascript", "console.log", "// connect"},
		{"/missing.png", http.StatusNotFound, "", "", ""},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.status)
			continue
		}
		if tt.status != http.StatusOK {
			continue
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, tt.contentType) {
			t.Errorf("GET %s Content-Type = %q, want %q", tt.path, ct, tt.contentType)
		}
		if !strings.Contains(string(body), tt.contains) {
			t.Errorf("GET %s body %q missing %q", tt.path, body, tt.contains)
		}
		if strings.Contains(string(body), tt.excludes) {
			t.Errorf("GET %s body %q not minified", tt.path, body)
		}
	}
}

func TestWebSocketUnknownCorner(t *testing.T) {
	_, ts := startServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?corner=center"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial with unknown corner should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("response = %v, want 400", resp)
	}
}

func TestWebSocketOverlay(t *testing.T) {
	h, ts := startServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?corner=top_left"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial error: %v", err)
	}
	defer conn.Close()
	waitClients(t, h, 1)

	s := hub.NewOverlay(h).Assign(3, display.TopLeft)
	if msg := readMessage(t, conn); msg.Type != hub.TypeAssign || msg.DeviceID != 3 {
		t.Errorf("first message = %+v, want assign for device 3", msg)
	}
	s.Update(display.Button("#0000FF", "Shoot"))
	if msg := readMessage(t, conn); msg.Record == nil || msg.Record.Label != "Shoot" || msg.TextColor != "white" {
		t.Errorf("record message = %+v", msg)
	}

	other := hub.NewOverlay(h).Assign(4, display.BottomRight)
	req, _ := json.Marshal(hub.ClientMessage{Type: "select_corner", Corner: "bottom_right"})
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		t.Fatalf("WriteMessage error: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != hub.TypeCornerSelected || msg.Corner != "bottom_right" {
		t.Errorf("selection = %+v", msg)
	}
	if msg := readMessage(t, conn); msg.Type != hub.TypeAssign || msg.DeviceID != 4 {
		t.Errorf("latest after selection = %+v", msg)
	}

	other.Release()
	if msg := readMessage(t, conn); msg.Type != hub.TypeRelease {
		t.Errorf("release = %+v", msg)
	}

	conn.Close()
	waitClients(t, h, 0)
}
