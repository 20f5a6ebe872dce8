package handlers

import (
	"errors"
	"net/http"

	"nearbuy/middleware"
	"nearbuy/models"
	"nearbuy/services/discovery"
	"nearbuy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionIDHeader carries the feed session id on every session-scoped call.
const SessionIDHeader = "X-Session-ID"

// FeedHandler exposes the discovery feed engine over HTTP. Each client
// screen opens one session and drives it through these endpoints.
type FeedHandler struct {
	Store *discovery.SessionStore
}

func NewFeedHandler(store *discovery.SessionStore) *FeedHandler {
	return &FeedHandler{Store: store}
}

type createSessionRequest struct {
	Kind        models.ListingKind  `json:"kind"`
	CategoryID  string              `json:"categoryId"`
	RadiusMiles *float64            `json:"radiusMiles"`
	Location    *models.Coordinates `json:"location"`
}

// CreateSessionHandler opens a feed session. The initial listing-kind scope
// is preserved across filter resets. An explicit location in the body wins;
// otherwise the IP-resolved location, if any, is used.
func (h *FeedHandler) CreateSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	location := req.Location
	if location == nil {
		location = middleware.CoordinatesFromContext(c)
	}

	userID, role := middleware.ViewerFromContext(c)
	initial := models.FilterCriteria{
		Kind:        req.Kind,
		CategoryID:  req.CategoryID,
		RadiusMiles: req.RadiusMiles,
	}

	session := h.Store.Create(initial, location, discovery.Viewer{UserID: userID, Role: role})
	logger.Debug("feed session opened", zap.String("session", session.ID))

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": session.ID,
		"view":      session.Snapshot(),
	})
}

// GetViewHandler returns the current presentation-ready snapshot.
func (h *FeedHandler) GetViewHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// SetFilterHandler merges a partial filter update into the session.
func (h *FeedHandler) SetFilterHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var patch models.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filter patch", err.Error())
		return
	}
	session.SetFilter(patch)
	c.JSON(http.StatusOK, session.Snapshot())
}

// ResetFiltersHandler restores the session's initial filter scope.
func (h *FeedHandler) ResetFiltersHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.ResetFilters()
	c.JSON(http.StatusOK, session.Snapshot())
}

// SetQueryHandler updates the search text.
func (h *FeedHandler) SetQueryHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	session.SetQuery(req.Text)
	c.JSON(http.StatusOK, session.Snapshot())
}

// ClearQueryHandler empties the search text and suggestions.
func (h *FeedHandler) ClearQueryHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.ClearQuery()
	c.JSON(http.StatusOK, session.Snapshot())
}

// SelectSuggestionHandler adopts a suggestion as the query text.
func (h *FeedHandler) SelectSuggestionHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var item models.Suggestion
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid suggestion", err.Error())
		return
	}
	session.SelectSuggestion(item)
	c.JSON(http.StatusOK, session.Snapshot())
}

// LoadMoreHandler requests the next feed page.
func (h *FeedHandler) LoadMoreHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.LoadMore()
	c.JSON(http.StatusOK, session.Snapshot())
}

// RetryHandler re-issues a failed fetch.
func (h *FeedHandler) RetryHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Retry()
	c.JSON(http.StatusOK, session.Snapshot())
}

// UpdateLocationHandler replaces the searcher's coordinates. A null body
// location clears it.
func (h *FeedHandler) UpdateLocationHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Location *models.Coordinates `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	session.UpdateLocation(req.Location)
	c.JSON(http.StatusOK, session.Snapshot())
}

// CloseSessionHandler tears the session down.
func (h *FeedHandler) CloseSessionHandler(c *gin.Context) {
	id := c.GetHeader(SessionIDHeader)
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing session id", "set the "+SessionIDHeader+" header")
		return
	}
	h.Store.Remove(id)
	c.Status(http.StatusNoContent)
}

// HealthHandler reports backing-store health.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}

func (h *FeedHandler) session(c *gin.Context) (*discovery.Session, bool) {
	id := c.GetHeader(SessionIDHeader)
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing session id", "set the "+SessionIDHeader+" header")
		return nil, false
	}
	session, err := h.Store.Get(id)
	if err != nil {
		if errors.Is(err, discovery.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Session not found", id)
			return nil, false
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load session", err.Error())
		return nil, false
	}
	return session, true
}
