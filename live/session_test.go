package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/protein-finder/models"
	"github.com/yeremiapane/protein-finder/services"
)

func directory() []models.Restaurant {
	return []models.Restaurant{
		{ID: "chickfila", Name: "Chick-fil-A"},
		{ID: "chipotle", Name: "Chipotle"},
		{ID: "panera", Name: "Panera"},
		{ID: "mcdonalds", Name: "McDonald's"},
	}
}

func state(t *testing.T, msg Message) SuggestionState {
	t.Helper()
	require.Equal(t, EventSuggestions, msg.Event)
	s, ok := msg.Data.(SuggestionState)
	require.True(t, ok)
	return s
}

func TestApply(t *testing.T) {
	ac := services.NewAutocomplete(directory())

	out, err := Apply(ac, Input{Type: "input", Query: "ch"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	s := state(t, out[0])
	assert.Len(t, s.Suggestions, 2)
	assert.Equal(t, 0, s.HighlightedIndex)

	out, err = Apply(ac, Input{Type: "key", Key: "ArrowDown"})
	require.NoError(t, err)
	assert.Equal(t, 1, state(t, out[0]).HighlightedIndex)

	out, err = Apply(ac, Input{Type: "key", Key: "down"})
	require.NoError(t, err)
	assert.Equal(t, 1, state(t, out[0]).HighlightedIndex)

	out, err = Apply(ac, Input{Type: "key", Key: "up"})
	require.NoError(t, err)
	assert.Equal(t, 0, state(t, out[0]).HighlightedIndex)

	out, err = Apply(ac, Input{Type: "key", Key: "Enter"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, EventSelected, out[0].Event)
	sel := out[0].Data.(Selection)
	assert.Equal(t, "chickfila", sel.Restaurant.ID)
	assert.Equal(t, "Chick-fil-A", sel.Query)
	assert.Equal(t, services.NoHighlight, state(t, out[1]).HighlightedIndex)

	out, err = Apply(ac, Input{Type: "key", Key: "enter"})
	require.NoError(t, err)
	require.Len(t, out, 1, "enter without highlight only echoes the state")

	out, err = Apply(ac, Input{Type: "key", Key: "Escape"})
	require.NoError(t, err)
	s = state(t, out[0])
	assert.Empty(t, s.Query)
	assert.Empty(t, s.Suggestions)
}

func TestApply_UnknownInput(t *testing.T) {
	ac := services.NewAutocomplete(directory())

	_, err := Apply(ac, Input{Type: "paste"})
	assert.ErrorIs(t, err, ErrUnknownInput)

	_, err = Apply(ac, Input{Type: "key", Key: "Tab"})
	assert.ErrorIs(t, err, ErrUnknownInput)
}

func newTestServer(t *testing.T, hub *Hub, configure ...func(*Session)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s := NewSession(ws, directory())
		for _, fn := range configure {
			fn(s)
		}
		hub.Register(s)
		defer hub.Unregister(s)
		s.Serve()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

type wireMessage struct {
	Event string `json:"event"`
	Data  struct {
		Query            string              `json:"query"`
		Suggestions      []models.Restaurant `json:"suggestions"`
		HighlightedIndex int                 `json:"highlighted_index"`
		Restaurant       models.Restaurant   `json:"restaurant"`
	} `json:"data"`
}

func TestSession_Serve(t *testing.T) {
	hub := NewHub()
	conn := dial(t, newTestServer(t, hub))

	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventSuggestions, msg.Event)
	assert.Equal(t, services.NoHighlight, msg.Data.HighlightedIndex)

	require.NoError(t, conn.WriteJSON(Input{Type: "input", Query: "pan"}))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Len(t, msg.Data.Suggestions, 1)
	assert.Equal(t, "panera", msg.Data.Suggestions[0].ID)

	require.NoError(t, conn.WriteJSON(Input{Type: "key", Key: "enter"}))
	msg = wireMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventSelected, msg.Event)
	assert.Equal(t, "panera", msg.Data.Restaurant.ID)
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventSuggestions, msg.Event)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var errMsg struct {
		Event string `json:"event"`
		Data  string `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, EventError, errMsg.Event)
	assert.Equal(t, "malformed message", errMsg.Data)
}

func TestHub_CloseAll(t *testing.T) {
	hub := NewHub()
	conn := dial(t, newTestServer(t, hub))

	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	hub.CloseAll()
	assert.Equal(t, 0, hub.Count())

	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}

func TestSession_RejectsOversizedMessage(t *testing.T) {
	conn := dial(t, newTestServer(t, NewHub()))

	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))

	big := `{"type":"input","query":"` + strings.Repeat("a", maxMessageSize) + `"}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))

	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), err.Error())
}

func TestSession_ClosesSilentClient(t *testing.T) {
	hub := NewHub()
	conn := dial(t, newTestServer(t, hub, func(s *Session) {
		s.pongWait = 100 * time.Millisecond
		s.pingPeriod = time.Hour
	}))

	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))

	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestSession_PongKeepsClientAlive(t *testing.T) {
	hub := NewHub()
	conn := dial(t, newTestServer(t, hub, func(s *Session) {
		s.pongWait = 300 * time.Millisecond
		s.pingPeriod = 50 * time.Millisecond
	}))

	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))

	// Reading lets the default ping handler answer with pongs.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	time.Sleep(time.Second)
	assert.Equal(t, 1, hub.Count())
}
