package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"rewards_wheel/internal/domain"
	"rewards_wheel/internal/feedback"
	"rewards_wheel/internal/logger"
	"rewards_wheel/internal/service"
	"rewards_wheel/internal/wheel"

	"github.com/gin-gonic/gin"
)

// WheelSummary is one entry of the wheel list
type WheelSummary struct {
	ID       string       `json:"id"`
	Brand    domain.Brand `json:"brand"`
	Name     string       `json:"name"`
	Segments int          `json:"segments"`
}

// SegmentInfo describes one slice as the client should draw it
type SegmentInfo struct {
	Index       int     `json:"index"`
	Label       string  `json:"label"`
	Color       string  `json:"color,omitempty"`
	Weight      float64 `json:"weight"`
	Probability float64 `json:"probability"`
	StartDeg    float64 `json:"start_deg"`
	EndDeg      float64 `json:"end_deg"`
	SpanDeg     float64 `json:"span_deg"`
}

// WheelInfoResponse is everything a client needs to render and animate a wheel
type WheelInfoResponse struct {
	ID              string            `json:"id"`
	Brand           domain.Brand      `json:"brand"`
	Name            string            `json:"name"`
	Segments        []SegmentInfo     `json:"segments"`
	TotalWeight     float64           `json:"total_weight"`
	Easing          wheel.CubicBezier `json:"easing"`
	DurationMs      int64             `json:"duration_ms"`
	ExtraTurns      int               `json:"extra_turns"`
	TickIntervalDeg float64           `json:"tick_interval_deg"`
}

// SpinRequest - all fields optional. Seeds make the draw reproducible.
type SpinRequest struct {
	PreviousAngle float64 `json:"previous_angle"`
	ServerSeed    string  `json:"server_seed"`
	ClientSeed    string  `json:"client_seed"`
	Nonce         uint64  `json:"nonce"`
}

// SpinResponse is a resolved spin
type SpinResponse struct {
	WheelID string         `json:"wheel_id"`
	Plan    wheel.SpinPlan `json:"plan"`
	Prize   domain.Prize   `json:"prize"`
	Ticks   int            `json:"ticks"`
}

// ListWheels returns the available wheels
func (h *Handler) ListWheels(c *gin.Context) {
	catalogs, err := h.Wheels.Catalogs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]WheelSummary, 0, len(catalogs))
	for _, cat := range catalogs {
		out = append(out, WheelSummary{
			ID:       cat.ID,
			Brand:    cat.Brand,
			Name:     cat.Name,
			Segments: len(cat.Prizes),
		})
	}

	c.JSON(http.StatusOK, gin.H{"wheels": out})
}

// WheelInfo returns the segment layout and animation settings of a wheel
func (h *Handler) WheelInfo(c *gin.Context) {
	cat, err := h.Wheels.Catalog(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	table, err := cat.Table()
	if err != nil {
		writeError(c, err)
		return
	}

	segments := make([]SegmentInfo, table.Len())
	for i := range segments {
		seg, _ := table.Segment(i)
		start, end, _ := table.RangeOf(i)
		prize, _ := cat.Prize(i)
		segments[i] = SegmentInfo{
			Index:       i,
			Label:       seg.Label,
			Color:       prize.Color,
			Weight:      seg.Weight,
			Probability: table.Probability(i),
			StartDeg:    start,
			EndDeg:      end,
			SpanDeg:     table.Span(i),
		}
	}

	settings := h.Wheels.Settings()
	c.JSON(http.StatusOK, WheelInfoResponse{
		ID:              cat.ID,
		Brand:           cat.Brand,
		Name:            cat.Name,
		Segments:        segments,
		TotalWeight:     table.TotalWeight(),
		Easing:          wheel.SpinEasing,
		DurationMs:      settings.SpinDuration.Milliseconds(),
		ExtraTurns:      settings.ExtraTurns,
		TickIntervalDeg: settings.TickIntervalDeg,
	})
}

// Spin resolves one spin of a wheel
func (h *Handler) Spin(c *gin.Context) {
	var req SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	opts := service.SpinOptions{PreviousAngleDeg: req.PreviousAngle}
	if req.ServerSeed != "" || req.ClientSeed != "" {
		opts.Seed = &service.Seed{
			ServerSeed: req.ServerSeed,
			ClientSeed: req.ClientSeed,
			Nonce:      req.Nonce,
		}
	}

	ctx := c.Request.Context()
	start := time.Now()
	res, err := h.Wheels.Spin(ctx, c.Param("id"), opts)
	if err != nil {
		writeError(c, err)
		return
	}

	logger.WithContext(ctx).Info("spin resolved",
		"wheel", res.WheelID,
		"index", res.Plan.SelectedIndex,
		"seeded", opts.Seed != nil,
		"took", time.Since(start),
	)

	c.JSON(http.StatusOK, SpinResponse{
		WheelID: res.WheelID,
		Plan:    res.Plan,
		Prize:   res.Prize,
		Ticks:   res.Ticks,
	})
}

// Cues returns the sound cue descriptors
func (h *Handler) Cues(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cues": feedback.Cues()})
}

// Sessions reports open live sessions per wheel
func (h *Handler) Sessions(c *gin.Context) {
	counts := map[string]int{}
	if h.Hub != nil {
		counts = h.Hub.Count()
	}
	c.JSON(http.StatusOK, gin.H{"sessions": counts})
}
