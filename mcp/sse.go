package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/foomo/notion-mcp/service"
	"github.com/foomo/notion-mcp/service/vo"
	"go.uber.org/zap"
)

// SSEEvent represents an SSE event structure
type SSEEvent struct {
	ID        string      `json:"id"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID       string
	Writer   http.ResponseWriter
	Flusher  http.Flusher
	Done     chan struct{}
	LastSeen time.Time
}

// MCPSSEServer streams page reads and book ingestions as SSE
type MCPSSEServer struct {
	logger       *zap.Logger
	service      service.Service
	config       *SSEServerConfig
	clients      map[string]*SSEClient
	clientsMutex sync.RWMutex
	broadcast    chan SSEEvent
	nextClientID int
}

// SSEServerConfig holds configuration for the SSE server
type SSEServerConfig struct {
	KeepaliveInterval time.Duration
	BufferSize        int
	ClientTimeout     time.Duration
}

// DefaultSSEServerConfig returns the default configuration for SSE server
func DefaultSSEServerConfig() *SSEServerConfig {
	return &SSEServerConfig{
		KeepaliveInterval: 30 * time.Second,
		BufferSize:        100,
		ClientTimeout:     60 * time.Second,
	}
}

// NewMCPSSEServer creates a new SSE server on top of the service
func NewMCPSSEServer(logger *zap.Logger, serviceInstance service.Service, config *SSEServerConfig) *MCPSSEServer {
	if config == nil {
		config = DefaultSSEServerConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sseServer := &MCPSSEServer{
		logger:    logger,
		service:   serviceInstance,
		config:    config,
		clients:   make(map[string]*SSEClient),
		broadcast: make(chan SSEEvent, config.BufferSize),
	}

	// Start the broadcast loop
	go sseServer.broadcastLoop()

	return sseServer
}

// broadcastLoop handles broadcasting events to all connected clients
func (s *MCPSSEServer) broadcastLoop() {
	for event := range s.broadcast {
		s.clientsMutex.RLock()
		for clientID, client := range s.clients {
			select {
			case <-client.Done:
				// Client disconnected, remove it
				s.clientsMutex.RUnlock()
				s.removeClient(clientID)
				s.clientsMutex.RLock()
				continue
			default:
				if err := s.sendEventToClient(client, event); err != nil {
					s.logger.Error("failed to send event to client", zap.String("clientID", clientID), zap.Error(err))
					s.clientsMutex.RUnlock()
					s.removeClient(clientID)
					s.clientsMutex.RLock()
				}
			}
		}
		s.clientsMutex.RUnlock()
	}
}

// sendEventToClient sends an SSE event to a specific client
func (s *MCPSSEServer) sendEventToClient(client *SSEClient, event SSEEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	fmt.Fprintf(client.Writer, "id: %s\n", event.ID)
	fmt.Fprintf(client.Writer, "event: %s\n", event.Event)
	fmt.Fprintf(client.Writer, "data: %s\n\n", string(eventJSON))

	client.Flusher.Flush()
	client.LastSeen = time.Now()

	return nil
}

// addClient adds a new SSE client
func (s *MCPSSEServer) addClient(w http.ResponseWriter, r *http.Request) *SSEClient {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return nil
	}

	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	s.nextClientID++
	clientID := fmt.Sprintf("client_%d_%d", time.Now().Unix(), s.nextClientID)

	client := &SSEClient{
		ID:       clientID,
		Writer:   w,
		Flusher:  flusher,
		Done:     make(chan struct{}),
		LastSeen: time.Now(),
	}

	s.clients[clientID] = client

	// Send connection confirmation
	connectEvent := newSSEEvent("connected", map[string]string{
		"clientID": clientID,
		"message":  "Connected to notion-mcp SSE server",
	})
	if err := s.sendEventToClient(client, connectEvent); err != nil {
		s.logger.Error("failed to send connection event", zap.String("clientID", clientID), zap.Error(err))
		delete(s.clients, clientID)
		return nil
	}

	s.logger.Info("SSE client connected", zap.String("clientID", clientID))
	return client
}

// removeClient removes a client from the server
func (s *MCPSSEServer) removeClient(clientID string) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	if client, exists := s.clients[clientID]; exists {
		close(client.Done)
		delete(s.clients, clientID)
		s.logger.Info("SSE client disconnected", zap.String("clientID", clientID))
	}
}

// broadcastEvent sends an event to all connected clients
func (s *MCPSSEServer) broadcastEvent(event SSEEvent) {
	select {
	case s.broadcast <- event:
	default:
		s.logger.Warn("broadcast channel full, dropping event", zap.String("eventID", event.ID))
	}
}

// HandleSSE handles SSE client connections
func (s *MCPSSEServer) HandleSSE(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)

	client := s.addClient(w, r)
	if client == nil {
		return
	}

	// Keep connection alive and handle client disconnect
	ctx := r.Context()
	go func() {
		ticker := time.NewTicker(s.config.KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.removeClient(client.ID)
				return
			case <-client.Done:
				return
			case <-ticker.C:
				keepaliveEvent := newSSEEvent("keepalive", map[string]interface{}{"timestamp": time.Now()})
				if err := s.sendEventToClient(client, keepaliveEvent); err != nil {
					s.removeClient(client.ID)
					return
				}
			}
		}
	}()

	// Wait for client to disconnect
	<-client.Done
}

// HandleReadPageSSE reads a page and streams the result as SSE
func (s *MCPSSEServer) HandleReadPageSSE(w http.ResponseWriter, r *http.Request) {
	var request struct {
		PageURL string `json:"page_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if request.PageURL == "" {
		http.Error(w, "page_url is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	setSSEHeaders(w)
	writeEvent(w, flusher, newSSEEvent("read_page_start", map[string]string{"page_url": request.PageURL}))

	page, err := s.service.ReadPage(r.Context(), request.PageURL)
	if err != nil {
		writeEvent(w, flusher, newSSEEvent("read_page_error", map[string]string{"error": err.Error()}))
		return
	}

	writeEvent(w, flusher, newSSEEvent("read_page_result", map[string]interface{}{"page": page}))
	writeEvent(w, flusher, newSSEEvent("read_page_complete", map[string]string{"status": "completed"}))
}

// HandleIngestBookSSE ingests a book and streams progress events while
// chapters are parsed. Progress is also broadcast to clients connected
// through HandleSSE.
func (s *MCPSSEServer) HandleIngestBookSSE(w http.ResponseWriter, r *http.Request) {
	var request struct {
		PageURL string `json:"page_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if request.PageURL == "" {
		http.Error(w, "page_url is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	setSSEHeaders(w)
	writeEvent(w, flusher, newSSEEvent("ingest_book_start", map[string]string{"page_url": request.PageURL}))

	ingestion, err := s.service.IngestBook(r.Context(), request.PageURL, func(progress vo.IngestProgress) {
		event := newSSEEvent("ingest_book_progress", progress)
		writeEvent(w, flusher, event)
		s.broadcastEvent(event)
	})
	if err != nil {
		writeEvent(w, flusher, newSSEEvent("ingest_book_error", map[string]string{"error": err.Error()}))
		return
	}

	writeEvent(w, flusher, newSSEEvent("ingest_book_result", map[string]interface{}{"ingestion": ingestion}))
	writeEvent(w, flusher, newSSEEvent("ingest_book_complete", map[string]string{"status": "completed"}))
}

// GetConnectedClients returns information about connected clients
func (s *MCPSSEServer) GetConnectedClients() []map[string]interface{} {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	clients := make([]map[string]interface{}, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, map[string]interface{}{
			"id":        client.ID,
			"lastSeen":  client.LastSeen,
			"connected": time.Since(client.LastSeen) < s.config.ClientTimeout,
		})
	}
	return clients
}

// GetStats returns server statistics
func (s *MCPSSEServer) GetStats() map[string]interface{} {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	return map[string]interface{}{
		"connectedClients": len(s.clients),
		"bufferSize":       len(s.broadcast),
		"serverVersion":    Version,
	}
}

func newSSEEvent(name string, data interface{}) SSEEvent {
	return SSEEvent{
		ID:        fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		Event:     name,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Cache-Control")
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event SSEEvent) {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Event, string(eventJSON))
	flusher.Flush()
}
