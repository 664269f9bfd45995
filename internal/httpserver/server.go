package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront-edge/internal/delivery"
	"storefront-edge/internal/events"
	"storefront-edge/internal/intercept"
	"storefront-edge/internal/models"
)

// Server fronts the storefront: every request not matching an edge route is
// intercepted and resolved through the caching policy.
type Server struct {
	interceptor *intercept.Interceptor
	dispatcher  *events.Dispatcher
	widget      *delivery.Widget
	logger      *zap.Logger
	server      *http.Server
}

// NewServer creates the edge HTTP server.
func NewServer(interceptor *intercept.Interceptor, dispatcher *events.Dispatcher,
	widget *delivery.Widget, logger *zap.Logger) *Server {
	return &Server{
		interceptor: interceptor,
		dispatcher:  dispatcher,
		widget:      widget,
		logger:      logger,
	}
}

// Start begins serving on the given TCP address. Blocks until the listener
// closes.
func (s *Server) Start(addr string) error {
	router := s.createRouter()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      requestLogger(s.logger)(router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting edge HTTP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping edge HTTP server")
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	// Edge-owned endpoints
	router.HandleFunc("/widget/delivery-quote", s.handleDeliveryQuote).Methods("POST")
	router.HandleFunc("/widget/delivery-zones", s.handleDeliveryZones).Methods("GET")
	router.HandleFunc("/internal/events", s.handleEvent).Methods("POST")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Everything else flows through the interceptor.
	router.PathPrefix("/").HandlerFunc(s.handleIntercept)

	return router
}

// handleIntercept resolves one storefront request through the caching
// policy and replays the resulting entry.
func (s *Server) handleIntercept(w http.ResponseWriter, r *http.Request) {
	entry, err := s.interceptor.Serve(r.Context(), r)
	if err != nil {
		s.logger.Warn("Interception failed",
			zap.String("path", r.URL.Path), zap.Error(err))
		s.writeErrorResponse(w, "upstream unavailable", http.StatusBadGateway)
		return
	}

	if err := entry.WriteTo(w); err != nil {
		s.logger.Error("Failed to replay cache entry", zap.Error(err))
	}
}

// handleEvent accepts one lifecycle event and dispatches it synchronously.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := s.parseRequest(r, &event); err != nil {
		s.writeErrorResponse(w, "invalid event: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.dispatcher.Dispatch(r.Context(), event); err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.writeResponse(w, map[string]interface{}{
		"status": "handled",
		"kind":   event.Kind,
	})
}

// handleDeliveryQuote resolves an address to a renderable quote view.
func (s *Server) handleDeliveryQuote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	view := s.widget.CalculateDelivery(r.Context(), req.Address)
	s.writeResponse(w, view)
}

// handleDeliveryZones returns the zone list loaded at startup.
func (s *Server) handleDeliveryZones(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, models.DeliveryZoneList{DeliveryZones: s.widget.Zones()})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
