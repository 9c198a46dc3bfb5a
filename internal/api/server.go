package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/Wixxxxxx/mini-etf/internal/app/engine"
	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
	"github.com/Wixxxxxx/mini-etf/internal/app/feed"
	"github.com/Wixxxxxx/mini-etf/pkg/logger"
)

// Server is the HTTP gateway over the engine: JSON order entry and book
// queries plus a websocket trade feed.
type Server struct {
	engine   *engine.Engine
	tradeHub *feed.Hub[orderbookv1.Trade]
	router   *mux.Router
	logger   logger.Interface
	upgrader websocket.Upgrader
}

// NewServer creates the gateway and registers its routes. tradeHub may be nil
// when no live feed is served.
func NewServer(eng *engine.Engine, tradeHub *feed.Hub[orderbookv1.Trade], log logger.Interface) *Server {
	s := &Server{
		engine:   eng,
		tradeHub: tradeHub,
		router:   mux.NewRouter(),
		logger:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/markets", s.handleCreateMarket).Methods(http.MethodPost)
	api.HandleFunc("/orders", s.handlePlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/markets/{market_id}/{instrument}/orders/{order_id}", s.handleCancelOrder).Methods(http.MethodDelete)
	api.HandleFunc("/markets/{market_id}/{instrument}/top", s.handleTopOfBook).Methods(http.MethodGet)
	api.HandleFunc("/markets/{market_id}/{instrument}/depth", s.handleDepth).Methods(http.MethodGet)

	s.router.HandleFunc("/ws/trades", s.handleTradeFeed).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
}

// Router exposes the handler for an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}
