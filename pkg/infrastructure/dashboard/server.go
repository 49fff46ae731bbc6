// Package dashboard provides a web view of the current forecast.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/felixgeelhaar/storycast/pkg/domain/analytics"
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
)

//go:embed templates/*
var templatesFS embed.FS

// DataProvider provides data for the dashboard.
type DataProvider interface {
	Forecast(now time.Time) (*analytics.ForecastResult, error)
	Backlog() ([]backlog.Story, error)
}

// Server is the dashboard HTTP server. Besides the HTML and JSON views it
// keeps a set of websocket subscribers that receive fresh forecasts when
// the workspace changes.
type Server struct {
	addr     string
	provider DataProvider
	server   *http.Server
	tmpl     *template.Template
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewServer creates a new dashboard server.
func NewServer(addr string, provider DataProvider) (*Server, error) {
	funcMap := template.FuncMap{
		"formatTime": formatTime,
		"statusName": statusName,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{
		addr:     addr,
		provider: provider,
		tmpl:     tmpl,
		clients:  make(map[*websocket.Conn]struct{}),
	}, nil
}

// Start starts the dashboard server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/forecast", s.handleAPIForecast)
	mux.HandleFunc("GET /api/backlog", s.handleAPIBacklog)
	mux.HandleFunc("GET /ws", s.handleWS)

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Dashboard server starting on %s", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its subscribers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Broadcast pushes a forecast to every websocket subscriber. Dead
// connections are dropped.
func (s *Server) Broadcast(forecast *analytics.ForecastResult) {
	payload, err := json.Marshal(forecast)
	if err != nil {
		log.Printf("Broadcast marshal error: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// SubscriberCount returns the number of connected websocket clients.
func (s *Server) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// PageData holds data for template rendering.
type PageData struct {
	Title    string
	Forecast *analytics.ForecastResult
	Stories  []backlog.Story
	Error    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "Forecast"}

	forecast, err := s.provider.Forecast(time.Now())
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Forecast = forecast
	}

	stories, _ := s.provider.Backlog()
	data.Stories = stories

	s.render(w, "index.html", data)
}

func (s *Server) handleAPIForecast(w http.ResponseWriter, r *http.Request) {
	forecast, err := s.provider.Forecast(time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if forecast == nil {
		// No forecastable work is a valid state, not an error
		w.Write([]byte("null"))
		return
	}
	json.NewEncoder(w).Encode(forecast)
}

func (s *Server) handleAPIBacklog(w http.ResponseWriter, r *http.Request) {
	stories, err := s.provider.Backlog()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stories)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade error: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Reader loop detects disconnects; subscribers never send data.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Template helper functions
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func statusName(status backlog.DevStatus) string {
	return status.DisplayName()
}
