package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/fraud"
	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// FraudEventsResponse wraps a page of fraud events
type FraudEventsResponse struct {
	Events []domain.FraudEvent `json:"events"`
	Count  int                 `json:"count"`
}

// HandleListFraudEvents serves the fraud log to operators. Filters:
// user_id, type, since and until (RFC 3339), limit.
// @Summary List fraud events
// @Description Newest first. Mounted only when the server has an API key.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param user_id query string false "Player uid"
// @Param type query string false "Event type" Enums(spin_anomaly, purchase_anomaly)
// @Param since query string false "RFC 3339 lower bound"
// @Param until query string false "RFC 3339 upper bound"
// @Param limit query int false "Page size, at most 1000"
// @Success 200 {object} FraudEventsResponse
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 401 {string} string "Missing or wrong API key"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/admin/fraud-events [get]
func HandleListFraudEvents(svc fraud.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := parseFraudFilter(w, r)
		if !ok {
			return
		}

		events, err := svc.List(r.Context(), filter)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgListFraudFailed, LogFieldError, err)
			respondError(w, http.StatusInternalServerError, domain.KindInternal, ErrMsgListFraudFailed)
			return
		}
		if events == nil {
			events = []domain.FraudEvent{}
		}
		respondJSON(w, http.StatusOK, FraudEventsResponse{Events: events, Count: len(events)})
	}
}

func parseFraudFilter(w http.ResponseWriter, r *http.Request) (fraud.Filter, bool) {
	q := r.URL.Query()
	filter := fraud.Filter{Limit: DefaultFraudLimit}

	if v := q.Get(QueryParamUserID); v != "" {
		filter.UserID = &v
	}
	if v := q.Get(QueryParamType); v != "" {
		t := domain.FraudEventType(v)
		if t != domain.FraudSpinAnomaly && t != domain.FraudPurchaseAnomaly {
			respondError(w, http.StatusBadRequest, domain.KindInvalidArgument, ErrMsgInvalidQuery)
			return filter, false
		}
		filter.Type = &t
	}
	for param, dst := range map[string]**time.Time{
		QueryParamSince: &filter.Since,
		QueryParamUntil: &filter.Until,
	} {
		v := q.Get(param)
		if v == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.KindInvalidArgument, ErrMsgInvalidQuery)
			return filter, false
		}
		*dst = &ts
	}
	if v := q.Get(QueryParamLimit); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 || limit > MaxFraudLimit {
			respondError(w, http.StatusBadRequest, domain.KindInvalidArgument, ErrMsgInvalidQuery)
			return filter, false
		}
		filter.Limit = limit
	}
	return filter, true
}
