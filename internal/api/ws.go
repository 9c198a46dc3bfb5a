package api

import (
	"net/http"

	tradefeedv1 "github.com/Wixxxxxx/mini-etf/internal/domain/tradefeed/v1"
	apperrors "github.com/Wixxxxxx/mini-etf/pkg/errors"
	"github.com/Wixxxxxx/mini-etf/pkg/logger"
)

const tradeFeedBuffer = 64

// handleTradeFeed upgrades the connection and streams every executed trade
// as a JSON event until the client goes away. A client that cannot keep up
// misses trades rather than stalling the engine.
func (s *Server) handleTradeFeed(w http.ResponseWriter, r *http.Request) {
	if s.tradeHub == nil {
		respondError(w, http.StatusNotFound,
			apperrors.NewErrorDetails("trade feed not enabled", apperrors.GeneralNotFoundError, ""))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err, logger.Field{Key: "action", Value: "upgrade_trade_feed"})
		return
	}

	sub := s.tradeHub.Subscribe(tradeFeedBuffer)
	defer s.tradeHub.Unsubscribe(sub)
	defer conn.Close()

	// Drain reads so close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for trade := range sub.C() {
		if err := conn.WriteJSON(tradefeedv1.FromTrade(trade)); err != nil {
			return
		}
	}
}
