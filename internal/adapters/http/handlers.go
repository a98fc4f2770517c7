package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/infrastructure/logger"
	"github.com/watchdeck/core/internal/ports"
)

// WatchlistHandler handles watchlist-related requests
type WatchlistHandler struct {
	watchlistService ports.WatchlistService
	tabService       ports.TabService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistService ports.WatchlistService, tabService ports.TabService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
		tabService:       tabService,
		logger:           logger,
	}
}

// ListWatchlists godoc
// @Summary List watchlists
// @Description Get every watchlist together with the tab state
// @Tags watchlists
// @Produce json
// @Success 200 {object} ports.WatchlistsResponse
// @Router /watchlists [get]
func (h *WatchlistHandler) ListWatchlists(c echo.Context) error {
	ctx := c.Request().Context()

	watchlists, err := h.watchlistService.ListWatchlists(ctx)
	if err != nil {
		h.logger.Errorw("List watchlists failed", "error", err)
		return toHTTPError(err)
	}

	tabs, err := h.tabService.GetTabs(ctx)
	if err != nil {
		h.logger.Errorw("Get tabs failed", "error", err)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, ports.WatchlistsResponse{
		Watchlists: watchlists,
		Tabs:       *tabs,
	})
}

// GetWatchlist godoc
// @Summary Get watchlist by ID
// @Tags watchlists
// @Produce json
// @Param id path string true "Watchlist ID"
// @Success 200 {object} entities.Watchlist
// @Failure 404 {object} ErrorResponse
// @Router /watchlists/{id} [get]
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	id := c.Param("id")

	watchlist, err := h.watchlistService.GetWatchlist(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, watchlist)
}

// CreateWatchlist godoc
// @Summary Create a watchlist
// @Tags watchlists
// @Accept json
// @Produce json
// @Param request body ports.CreateWatchlistRequest true "Watchlist data"
// @Success 201 {object} entities.Watchlist
// @Failure 400 {object} ErrorResponse
// @Router /watchlists [post]
func (h *WatchlistHandler) CreateWatchlist(c echo.Context) error {
	var req ports.CreateWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	watchlist, err := h.watchlistService.CreateWatchlist(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("Create watchlist failed", "error", err)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, watchlist)
}

// UpdateWatchlist godoc
// @Summary Update or create a watchlist
// @Description Replace the instrument list (and optionally the name). Unknown IDs are created.
// @Tags watchlists
// @Accept json
// @Produce json
// @Param id path string true "Watchlist ID"
// @Param request body ports.UpdateWatchlistRequest true "Watchlist data"
// @Success 200 {object} entities.Watchlist
// @Success 201 {object} entities.Watchlist
// @Failure 400 {object} ErrorResponse
// @Router /watchlists/{id} [put]
func (h *WatchlistHandler) UpdateWatchlist(c echo.Context) error {
	id := c.Param("id")

	var req ports.UpdateWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	watchlist, created, err := h.watchlistService.UpdateWatchlist(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Warnw("Update watchlist failed", "error", err, "watchlist_id", id)
		return toHTTPError(err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, watchlist)
}

// RenameWatchlist godoc
// @Summary Rename a watchlist
// @Tags watchlists
// @Accept json
// @Produce json
// @Param id path string true "Watchlist ID"
// @Param request body ports.RenameWatchlistRequest true "New name"
// @Success 200 {object} entities.Watchlist
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watchlists/{id}/name [patch]
func (h *WatchlistHandler) RenameWatchlist(c echo.Context) error {
	id := c.Param("id")

	var req ports.RenameWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	watchlist, err := h.watchlistService.RenameWatchlist(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Warnw("Rename watchlist failed", "error", err, "watchlist_id", id)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, watchlist)
}

// DeleteWatchlist godoc
// @Summary Delete a watchlist
// @Tags watchlists
// @Param id path string true "Watchlist ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /watchlists/{id} [delete]
func (h *WatchlistHandler) DeleteWatchlist(c echo.Context) error {
	id := c.Param("id")

	if err := h.watchlistService.DeleteWatchlist(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// TabHandler handles tab state requests
type TabHandler struct {
	tabService ports.TabService
	logger     *logger.Logger
}

// NewTabHandler creates a new tab handler
func NewTabHandler(tabService ports.TabService, logger *logger.Logger) *TabHandler {
	return &TabHandler{
		tabService: tabService,
		logger:     logger,
	}
}

func (h *TabHandler) GetTabs(c echo.Context) error {
	tabs, err := h.tabService.GetTabs(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Get tabs failed", "error", err)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, tabs)
}

func (h *TabHandler) UpdateTabs(c echo.Context) error {
	var req ports.UpdateTabsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tabs, err := h.tabService.UpdateTabs(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("Update tabs failed", "error", err)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, tabs)
}

// InstrumentHandler serves the instruments catalog
type InstrumentHandler struct {
	instrumentService ports.InstrumentService
}

// NewInstrumentHandler creates a new instrument handler
func NewInstrumentHandler(instrumentService ports.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{instrumentService: instrumentService}
}

// ListInstruments godoc
// @Summary List instruments
// @Description Search the static catalog by symbol or name, optionally by type
// @Tags instruments
// @Produce json
// @Param q query string false "Search text"
// @Param type query string false "Instrument type"
// @Success 200 {array} entities.Instrument
// @Router /instruments [get]
func (h *InstrumentHandler) ListInstruments(c echo.Context) error {
	filter := ports.InstrumentFilter{Query: c.QueryParam("q")}

	if typ := c.QueryParam("type"); typ != "" {
		filter.Type = entities.InstrumentType(typ)
		if !filter.Type.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid instrument type")
		}
	}

	instruments, err := h.instrumentService.ListInstruments(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, instruments)
}

func (h *InstrumentHandler) GetInstrument(c echo.Context) error {
	instrument, err := h.instrumentService.GetInstrument(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, instrument)
}

// toHTTPError maps domain errors to HTTP errors. Anything unrecognised is a
// storage failure and becomes a 500 carrying the cause as internal error.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, entities.ErrWatchlistNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Watchlist not found")
	case errors.Is(err, entities.ErrInstrumentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Instrument not found")
	case errors.Is(err, entities.ErrInvalidName),
		errors.Is(err, entities.ErrUnknownInstrument),
		errors.Is(err, entities.ErrInvalidActiveTab),
		errors.Is(err, entities.ErrInstrumentsRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrWatchlistExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Message string `json:"message"`
}
