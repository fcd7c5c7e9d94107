package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/levelup/levelup-backend/internal/core/ports"
)

// StatsHandler handles player stats retrieval.
type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

type statsResponse struct {
	RUN          string    `json:"run"`
	ReferralCode string    `json:"codigoReferido"`
	Points       int64     `json:"puntos"`
	Level        int       `json:"nivel"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Me handles GET /api/stats/me — the authenticated user's stats. Stats are
// created lazily on first read for accounts that predate the feature.
//
// @Summary      Get the current user's player stats
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/stats/me [get]
func (h *StatsHandler) Me(c echo.Context) error {
	run, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	stats, err := h.statsService.EnsureStats(c.Request().Context(), run)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{
		RUN:          stats.RUN,
		ReferralCode: stats.ReferralCode,
		Points:       stats.Points,
		Level:        stats.Level,
		UpdatedAt:    stats.UpdatedAt,
	})
}
