package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
	apperrors "github.com/Wixxxxxx/mini-etf/pkg/errors"
	"github.com/Wixxxxxx/mini-etf/pkg/logger"
)

// CreateMarketRequest is the JSON body of POST /api/v1/markets.
type CreateMarketRequest struct {
	MarketID string `json:"market_id"`
}

func (s *Server) handleCreateMarket(w http.ResponseWriter, r *http.Request) {
	var req CreateMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.NewErrorDetails("invalid JSON: "+err.Error(), apperrors.GeneralBadRequestError, ""))
		return
	}
	if req.MarketID == "" {
		respondError(w, http.StatusBadRequest,
			apperrors.NewErrorDetails("market_id is required", apperrors.GeneralBadRequestError, "market_id"))
		return
	}

	if err := s.engine.CreateMarket(req.MarketID); err != nil {
		s.logger.Error(err, logger.Field{Key: "marketID", Value: req.MarketID})
		respondError(w, http.StatusInternalServerError,
			apperrors.NewErrorDetails(err.Error(), apperrors.GeneralInternalServerError, ""))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"market_id": req.MarketID,
		"status":    "created",
	})
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orderbookv1.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.NewErrorDetails("invalid JSON: "+err.Error(), apperrors.GeneralBadRequestError, ""))
		return
	}

	result, err := s.engine.Submit(r.Context(), req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	status := http.StatusCreated
	if len(result.Trades) > 0 {
		status = http.StatusOK
	}
	respondJSON(w, status, result)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instrument, err := orderbookv1.ParseInstrument(vars["instrument"])
	if err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.NewErrorDetails(err.Error(), apperrors.InstrumentUnknown, "instrument"))
		return
	}
	orderID, err := strconv.ParseUint(vars["order_id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.NewErrorDetails("order_id must be an unsigned integer", apperrors.GeneralBadRequestError, "order_id"))
		return
	}

	if err := s.engine.Cancel(vars["market_id"], instrument, orderID); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"order_id": orderID,
		"status":   "cancelled",
	})
}

func (s *Server) handleTopOfBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instrument, err := orderbookv1.ParseInstrument(vars["instrument"])
	if err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.NewErrorDetails(err.Error(), apperrors.InstrumentUnknown, "instrument"))
		return
	}

	top, err := s.engine.TopOfBook(vars["market_id"], instrument)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, top)
}

func (s *Server) handleDepth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instrument, err := orderbookv1.ParseInstrument(vars["instrument"])
	if err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.NewErrorDetails(err.Error(), apperrors.InstrumentUnknown, "instrument"))
		return
	}

	maxLevels := 0
	if raw := r.URL.Query().Get("levels"); raw != "" {
		maxLevels, err = strconv.Atoi(raw)
		if err != nil || maxLevels < 0 {
			respondError(w, http.StatusBadRequest,
				apperrors.NewErrorDetails("levels must be a non-negative integer", apperrors.GeneralBadRequestError, "levels"))
			return
		}
	}

	depth, err := s.engine.Depth(vars["market_id"], instrument, maxLevels)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, depth)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondEngineError maps engine errors onto HTTP statuses and error codes:
// unknown markets and orders are 404, duplicate resting ids are 409, malformed
// input is 400 and anything else, including invariant violations, is 500.
func respondEngineError(w http.ResponseWriter, err error) {
	status, code := classifyEngineError(err)
	respondError(w, status, apperrors.NewErrorDetails(err.Error(), code, ""))
}

func classifyEngineError(err error) (int, apperrors.ErrorCode) {
	switch {
	case errors.Is(err, orderbookv1.ErrMarketNotFound):
		return http.StatusNotFound, apperrors.MarketNotFound
	case errors.Is(err, orderbookv1.ErrOrderNotFound):
		return http.StatusNotFound, apperrors.OrderNotFound
	case errors.Is(err, orderbookv1.ErrDuplicateOrder):
		return http.StatusConflict, apperrors.OrderDuplicateID
	case errors.Is(err, orderbookv1.ErrInvalidPrice):
		return http.StatusBadRequest, apperrors.OrderInvalidPrice
	case errors.Is(err, orderbookv1.ErrInvalidQuantity):
		return http.StatusBadRequest, apperrors.OrderInvalidQuantity
	case errors.Is(err, orderbookv1.ErrUnknownSide):
		return http.StatusBadRequest, apperrors.OrderUnknownSide
	case errors.Is(err, orderbookv1.ErrUnknownInstrument):
		return http.StatusBadRequest, apperrors.InstrumentUnknown
	case errors.Is(err, orderbookv1.ErrNilOrder):
		return http.StatusBadRequest, apperrors.GeneralBadRequestError
	case errors.Is(err, orderbookv1.ErrBookCrossed):
		return http.StatusInternalServerError, apperrors.BookCrossed
	default:
		return http.StatusInternalServerError, apperrors.GeneralInternalServerError
	}
}
