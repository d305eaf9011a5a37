package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ironsheep/line-trace-mcp/internal/config"
	"github.com/ironsheep/line-trace-mcp/internal/imaging"
	"github.com/ironsheep/line-trace-mcp/internal/session"
)

// Server handles MCP protocol communication
type Server struct {
	cfg     config.Config
	version string
	logger  *zap.SugaredLogger
	cache   *imaging.ImageCache

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes used by the server.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// New creates a new MCP server instance. cfg supplies the defaults for
// optional tool arguments and should already be validated.
func New(cfg config.Config, logger *zap.SugaredLogger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		cfg:      cfg,
		version:  version,
		logger:   logger,
		cache:    imaging.NewImageCache(),
		sessions: make(map[string]*session.Session),
	}
}

// Run serves MCP requests from stdin to stdout until stdin is closed.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from in and writes one response
// per line to out. Notifications produce no output.
func (s *Server) Serve(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warnw("failed to parse request", "error", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Errorw("failed to encode response", "method", req.Method, "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scanner error")
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    codeMethodNotFound,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	s.logger.Infow("client initialized", "version", s.version)
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "line-trace-mcp",
				"version": s.version,
			},
		},
	}
}

// newSession creates and registers an empty session.
func (s *Server) newSession() *session.Session {
	sess := session.New()

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.logger.Infow("session created", "session_id", sess.ID, "sessions", n)
	return sess
}

// lookupSession looks up a registered session.
func (s *Server) lookupSession(id string) (*session.Session, error) {
	if id == "" {
		return nil, invalidParams(errors.New("session_id is required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.Errorf("unknown session %q", id)
	}
	return sess, nil
}

// closeSession removes a session from the registry.
func (s *Server) closeSession(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return errors.Errorf("unknown session %q", id)
	}
	s.logger.Infow("session closed", "session_id", id, "sessions", n)
	return nil
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close drops every session and empties the image cache.
func (s *Server) Close() {
	s.mu.Lock()
	n := len(s.sessions)
	s.sessions = make(map[string]*session.Session)
	s.mu.Unlock()

	s.cache.Clear()
	s.logger.Infow("server closed", "sessions", n)
}
