package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/protein-finder/models"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

const (
	writeWait = 5 * time.Second

	maxMessageSize = 4 << 10

	// A client that sends nothing, not even a pong, for pongWait is dropped.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Input is a message sent by the search box.
//
//	{"type":"input","query":"ch"}
//	{"type":"key","key":"down"}
//	{"type":"clear"}
type Input struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
	Key   string `json:"key,omitempty"`
}

type SuggestionState struct {
	Query            string              `json:"query"`
	Suggestions      []models.Restaurant `json:"suggestions"`
	HighlightedIndex int                 `json:"highlighted_index"`
}

type Selection struct {
	Restaurant models.Restaurant `json:"restaurant"`
	Query      string            `json:"query"`
}

var ErrUnknownInput = errors.New("unknown input")

// Session is one connected search box.
type Session struct {
	conn *websocket.Conn
	ac   *services.Autocomplete

	pongWait   time.Duration
	pingPeriod time.Duration

	writeMu sync.Mutex
	closed  bool
}

func NewSession(conn *websocket.Conn, restaurants []models.Restaurant) *Session {
	return &Session{
		conn:       conn,
		ac:         services.NewAutocomplete(restaurants),
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
}

// Apply updates the autocomplete state with one input and returns the
// messages to send back.
func Apply(ac *services.Autocomplete, in Input) ([]Message, error) {
	switch in.Type {
	case "input":
		ac.SetQuery(in.Query)
	case "clear":
		ac.Clear()
	case "key":
		switch in.Key {
		case "down", "ArrowDown":
			ac.MoveDown()
		case "up", "ArrowUp":
			ac.MoveUp()
		case "escape", "Escape":
			ac.Clear()
		case "enter", "Enter":
			if chosen, ok := ac.Confirm(); ok {
				return []Message{
					{Event: EventSelected, Data: Selection{Restaurant: chosen, Query: ac.Query()}},
					stateMessage(ac),
				}, nil
			}
		default:
			return nil, fmt.Errorf("%w: key %q", ErrUnknownInput, in.Key)
		}
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnknownInput, in.Type)
	}
	return []Message{stateMessage(ac)}, nil
}

func stateMessage(ac *services.Autocomplete) Message {
	return Message{
		Event: EventSuggestions,
		Data: SuggestionState{
			Query:            ac.Query(),
			Suggestions:      ac.Suggestions(),
			HighlightedIndex: ac.Highlighted(),
		},
	}
}

// Serve reads inputs until the client goes away. It sends the empty state
// first so the client can render immediately.
func (s *Session) Serve() {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(done)

	if err := s.send(stateMessage(s.ac)); err != nil {
		return
	}

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.ErrorLogger.Printf("Live session read error: %v", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.pongWait))

		var in Input
		var out []Message
		if err := json.Unmarshal(raw, &in); err != nil {
			out = []Message{{Event: EventError, Data: "malformed message"}}
		} else if out, err = Apply(s.ac, in); err != nil {
			out = []Message{{Event: EventError, Data: err.Error()}}
		}

		utils.InfoLogger.WithFields(logrus.Fields{
			"type":        in.Type,
			"query":       s.ac.Query(),
			"highlighted": s.ac.Highlighted(),
		}).Debug("live autocomplete input")

		for _, msg := range out {
			if err := s.send(msg); err != nil {
				return
			}
		}
	}
}

func (s *Session) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(s.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.ping(); err != nil {
				return
			}
		}
	}
}

func (s *Session) ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return websocket.ErrCloseSent
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s *Session) send(msg Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return websocket.ErrCloseSent
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		utils.ErrorLogger.Printf("Error sending live message: %v", err)
		return err
	}
	return nil
}

func (s *Session) goAway() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	s.closed = true
	s.conn.Close()
}

func (s *Session) close() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.conn.Close()
}
