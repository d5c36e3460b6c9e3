// Package mcp exposes the cipher machines as Model Context Protocol tools so
// an agent can list models, key messages and keep sessions open.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"enigma/internal/catalog"
	"enigma/internal/keysheet"
	"enigma/internal/logging"
	"enigma/internal/message"
	"enigma/internal/session"
	"enigma/internal/settings"
	"enigma/pkg/enigma"
)

// DefaultSessionTTL is how long an idle session is kept.
var DefaultSessionTTL = 30 * time.Minute

// Server wraps the MCP SDK server and the open machine sessions.
type Server struct {
	MCPServer *sdkmcp.Server

	catalog *catalog.Catalog
	sheets  keysheet.Store // nil when no key-sheet database is configured
	log     *slog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	sess     *session.Session
	lastUsed time.Time
}

// NewServer registers the tools over cat. sheets may be nil, in which case
// get_sheet is not offered and jobs cannot name a sheet.
func NewServer(cat *catalog.Catalog, sheets keysheet.Store, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{
		catalog:  cat,
		sheets:   sheets,
		log:      logging.New("mcp"),
		sessions: make(map[string]*entry),
		ttl:      DefaultSessionTTL,
		now:      time.Now,
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "enigma", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_models",
		Description: "List the machine models, or the wheels and reflectors one model accepts.",
	}, s.handleListModels)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "encipher",
		Description: "Key a message on a fresh machine. Enciphering and deciphering are the same operation.",
	}, s.handleEncipher)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "open_session",
		Description: "Set up a machine that keeps its rotor positions between type_text calls. Returns a session ID.",
	}, s.handleOpenSession)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "type_text",
		Description: "Type text on an open session's keyboard and return the lamps that lit.",
	}, s.handleTypeText)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "reset_session",
		Description: "Turn an open session's rotors back to their starting positions.",
	}, s.handleResetSession)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "close_session",
		Description: "Discard an open session.",
	}, s.handleCloseSession)

	if s.sheets != nil {
		sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
			Name:        "get_sheet",
			Description: "Read a stored key sheet by name.",
		}, s.handleGetSheet)
	}
}

// --- Tool input/output types ---

type listModelsInput struct {
	Model string `json:"model,omitempty" jsonschema:"model name; empty lists every model"`
}

type modelInfo struct {
	Name       string   `json:"name"`
	LongName   string   `json:"long_name"`
	Rotors     int      `json:"rotors"`
	Plugboard  bool     `json:"plugboard"`
	Wheels     []string `json:"wheels"`
	Reflectors []string `json:"reflectors"`
}

type listModelsOutput struct {
	Models []modelInfo `json:"models"`
}

type encipherInput struct {
	Settings *settings.Settings `json:"settings,omitempty" jsonschema:"machine key; required unless sheet is given"`
	Sheet    string             `json:"sheet,omitempty" jsonschema:"name of a stored key sheet to use instead of settings"`
	Text     string             `json:"text" jsonschema:"message text; letters are extracted unless raw is set"`
	Raw      bool               `json:"raw,omitempty" jsonschema:"key text as-is; it must then contain letters only"`
	Group    int                `json:"group,omitempty" jsonschema:"split the output into groups of this many letters"`
}

type encipherOutput struct {
	Output    string `json:"output"`
	Positions string `json:"positions"`
}

type openSessionInput struct {
	Settings *settings.Settings `json:"settings,omitempty" jsonschema:"machine key; required unless sheet is given"`
	Sheet    string             `json:"sheet,omitempty" jsonschema:"name of a stored key sheet to use instead of settings"`
}

type openSessionOutput struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
	Positions string `json:"positions"`
}

type typeTextInput struct {
	SessionID string `json:"session_id" jsonschema:"session ID from open_session"`
	Text      string `json:"text" jsonschema:"text to type"`
	Raw       bool   `json:"raw,omitempty" jsonschema:"key text as-is; it must then contain letters only"`
}

type typeTextOutput struct {
	Output    string `json:"output"`
	Positions string `json:"positions"`
	Typed     int    `json:"typed"`
}

type sessionInput struct {
	SessionID string `json:"session_id" jsonschema:"session ID from open_session"`
}

type resetSessionOutput struct {
	Positions string `json:"positions"`
}

type closeSessionOutput struct {
	OK string `json:"ok"`
}

type getSheetInput struct {
	Name string `json:"name" jsonschema:"key sheet name"`
}

type getSheetOutput struct {
	Name     string            `json:"name"`
	Ref      string            `json:"ref"`
	Note     string            `json:"note,omitempty"`
	Settings settings.Settings `json:"settings"`
}

// --- Tool handlers ---

func (s *Server) handleListModels(_ context.Context, _ *sdkmcp.CallToolRequest, input listModelsInput) (*sdkmcp.CallToolResult, listModelsOutput, error) {
	var specs []enigma.ModelSpec
	if input.Model != "" {
		spec, ok := s.catalog.Model(input.Model)
		if !ok {
			return nil, listModelsOutput{}, fmt.Errorf("%w: %q", enigma.ErrUnknownModel, input.Model)
		}
		specs = []enigma.ModelSpec{spec}
	} else {
		specs = s.catalog.Models()
	}

	out := listModelsOutput{Models: make([]modelInfo, 0, len(specs))}
	for _, m := range specs {
		info := modelInfo{
			Name:       m.Name,
			LongName:   m.LongName,
			Rotors:     m.Rotors,
			Plugboard:  m.Plugboard,
			Wheels:     []string{},
			Reflectors: []string{},
		}
		for _, w := range s.catalog.Wheels(m.Name) {
			info.Wheels = append(info.Wheels, w.Name)
		}
		for _, r := range s.catalog.Reflectors(m.Name) {
			info.Reflectors = append(info.Reflectors, r.Name)
		}
		out.Models = append(out.Models, info)
	}
	return nil, out, nil
}

// resolveKey picks the inline key or loads the named sheet.
func (s *Server) resolveKey(key *settings.Settings, sheet string) (settings.Settings, error) {
	switch {
	case key != nil && sheet != "":
		return settings.Settings{}, fmt.Errorf("give either settings or sheet, not both")
	case key != nil:
		return *key, nil
	case sheet == "":
		return settings.Settings{}, fmt.Errorf("settings or sheet is required")
	case s.sheets == nil:
		return settings.Settings{}, fmt.Errorf("no key-sheet store is configured")
	}
	sh, err := s.sheets.Get(sheet)
	if err != nil {
		return settings.Settings{}, err
	}
	if sh == nil {
		return settings.Settings{}, fmt.Errorf("%w: %q", keysheet.ErrNotFound, sheet)
	}
	return sh.Key, nil
}

func prepare(text string, raw bool) string {
	if raw {
		return text
	}
	return message.Prepare(text)
}

func (s *Server) handleEncipher(_ context.Context, _ *sdkmcp.CallToolRequest, input encipherInput) (*sdkmcp.CallToolResult, encipherOutput, error) {
	key, err := s.resolveKey(input.Settings, input.Sheet)
	if err != nil {
		return nil, encipherOutput{}, err
	}
	m, err := key.Build(s.catalog)
	if err != nil {
		return nil, encipherOutput{}, fmt.Errorf("encipher: %w", err)
	}
	out, err := m.Encipher(prepare(input.Text, input.Raw))
	if err != nil {
		return nil, encipherOutput{}, fmt.Errorf("encipher: %w", err)
	}
	return nil, encipherOutput{
		Output:    message.Group(out, input.Group),
		Positions: enigma.FormatContacts(m.Positions()),
	}, nil
}

func (s *Server) handleOpenSession(_ context.Context, _ *sdkmcp.CallToolRequest, input openSessionInput) (*sdkmcp.CallToolResult, openSessionOutput, error) {
	key, err := s.resolveKey(input.Settings, input.Sheet)
	if err != nil {
		return nil, openSessionOutput{}, err
	}
	sess, err := session.New(s.catalog, key)
	if err != nil {
		return nil, openSessionOutput{}, fmt.Errorf("open session: %w", err)
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.reapLocked()
	s.sessions[id] = &entry{sess: sess, lastUsed: s.now()}
	n := len(s.sessions)
	s.mu.Unlock()

	s.log.Info("session opened", "session_id", id, "key", key.String(), "open", n)
	return nil, openSessionOutput{SessionID: id, Key: key.String(), Positions: sess.Positions()}, nil
}

func (s *Server) handleTypeText(_ context.Context, _ *sdkmcp.CallToolRequest, input typeTextInput) (*sdkmcp.CallToolResult, typeTextOutput, error) {
	sess, err := s.getSession(input.SessionID)
	if err != nil {
		return nil, typeTextOutput{}, err
	}
	out, err := sess.Type(prepare(input.Text, input.Raw))
	if err != nil {
		return nil, typeTextOutput{}, fmt.Errorf("type_text: %w", err)
	}
	return nil, typeTextOutput{Output: out, Positions: sess.Positions(), Typed: sess.Typed()}, nil
}

func (s *Server) handleResetSession(_ context.Context, _ *sdkmcp.CallToolRequest, input sessionInput) (*sdkmcp.CallToolResult, resetSessionOutput, error) {
	sess, err := s.getSession(input.SessionID)
	if err != nil {
		return nil, resetSessionOutput{}, err
	}
	if err := sess.Reset(); err != nil {
		return nil, resetSessionOutput{}, err
	}
	return nil, resetSessionOutput{Positions: sess.Positions()}, nil
}

func (s *Server) handleCloseSession(_ context.Context, _ *sdkmcp.CallToolRequest, input sessionInput) (*sdkmcp.CallToolResult, closeSessionOutput, error) {
	s.mu.Lock()
	_, ok := s.sessions[input.SessionID]
	delete(s.sessions, input.SessionID)
	s.mu.Unlock()
	if !ok {
		return nil, closeSessionOutput{}, fmt.Errorf("unknown session %q", input.SessionID)
	}
	s.log.Info("session closed", "session_id", input.SessionID)
	return nil, closeSessionOutput{OK: "session closed"}, nil
}

func (s *Server) handleGetSheet(_ context.Context, _ *sdkmcp.CallToolRequest, input getSheetInput) (*sdkmcp.CallToolResult, getSheetOutput, error) {
	sh, err := s.sheets.Get(input.Name)
	if err != nil {
		return nil, getSheetOutput{}, fmt.Errorf("get_sheet: %w", err)
	}
	if sh == nil {
		return nil, getSheetOutput{}, fmt.Errorf("%w: %q", keysheet.ErrNotFound, input.Name)
	}
	return nil, getSheetOutput{Name: sh.Name, Ref: sh.Ref, Note: sh.Note, Settings: sh.Key}, nil
}

// SetSessionTTL changes how long idle sessions are kept. Mostly for tests.
func (s *Server) SetSessionTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

// SessionCount reports the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Shutdown drops every open session.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.sessions)
}

func (s *Server) getSession(id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reapLocked()
	e, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %q (call open_session first)", id)
	}
	e.lastUsed = s.now()
	return e.sess, nil
}

// reapLocked drops sessions idle longer than the TTL. s.mu must be held.
func (s *Server) reapLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			s.log.Info("session expired", "session_id", id)
		}
	}
}
