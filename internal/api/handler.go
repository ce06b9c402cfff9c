package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bhavpulse/internal/analysis"
	"github.com/guttosm/bhavpulse/internal/domain/dto"
	"github.com/guttosm/bhavpulse/internal/domain/models"
	"github.com/guttosm/bhavpulse/internal/exporter"
	"github.com/guttosm/bhavpulse/internal/middleware"
	"github.com/guttosm/bhavpulse/internal/service"
	"github.com/guttosm/bhavpulse/internal/storage"
)

const candleDateLayout = "2006-01-02"

// Handler provides the HTTP handlers for analysis and merge endpoints.
//
// Responsibilities:
//   - Bind and validate query parameters into service.Criteria
//   - Call the analyzer or merger with the request context
//   - Translate results into response DTOs and errors into status codes
type Handler struct {
	analyzer service.AnalyzerService
	merger   service.MergeService
}

// NewHandler constructs a Handler with both services injected.
func NewHandler(analyzer service.AnalyzerService, merger service.MergeService) *Handler {
	return &Handler{analyzer: analyzer, merger: merger}
}

// analysisQuery mirrors the selection controls. Absent fields take the
// control defaults; min_close is read separately because its default is a
// non-empty string that an explicit empty value disables.
type analysisQuery struct {
	Security      string  `form:"security"`
	SecurityType  string  `form:"security_type"`
	Days          int     `form:"days,default=1" binding:"min=1,max=30"`
	GainThreshold float64 `form:"gain_threshold,default=1" binding:"gte=0,lte=100"`
	Symbol        string  `form:"symbol"`
	ReferenceOnly bool    `form:"reference_only"`
}

// criteria binds the request; on failure it has already written a 400.
func (h *Handler) criteria(c *gin.Context) (service.Criteria, bool) {
	var q analysisQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return service.Criteria{}, false
	}
	typ, err := analysis.ParseSecurityType(q.SecurityType)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid security_type", err)
		return service.Criteria{}, false
	}

	cr := service.DefaultCriteria()
	if s := strings.TrimSpace(q.Security); s != "" {
		cr.Security = s
	}
	cr.SecurityType = typ
	cr.Days = q.Days
	cr.GainThreshold = q.GainThreshold
	cr.Symbol = strings.TrimSpace(q.Symbol)
	cr.ReferenceOnly = q.ReferenceOnly
	if v, ok := c.GetQuery("min_close"); ok {
		cr.MinClose = v
	}
	return cr, true
}

// fail maps service errors to responses.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrTableNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "Merged CSV not found. Please run the merge first.", err)
	case errors.Is(err, service.ErrSecurityRequired):
		middleware.AbortWithError(c, http.StatusBadRequest, service.WarnSelectSecurity, err)
	case errors.Is(err, analysis.ErrInvalidWindow):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid day range", err)
	case errors.Is(err, context.DeadlineExceeded):
		middleware.AbortWithError(c, http.StatusGatewayTimeout, "request timed out", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to analyze data", err)
	}
}

func toGainRows(rows []models.GainSummary) []dto.GainRow {
	out := make([]dto.GainRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.GainRow{
			Security:    r.Security,
			Symbol:      r.Symbol,
			LowPrice:    r.LowPrice,
			ClosePrice:  r.ClosePrice,
			GainPercent: r.GainPercent,
		})
	}
	return out
}

// GetGains godoc
// @Summary      Trailing-window gains
// @Description  Gain % per security between the LOW N sessions back and the latest CLOSE, after filters and threshold
// @Tags         analysis
// @Produce      json
// @Param        security        query     string   false  "Exact security name, All for every security"  default(All)
// @Param        security_type   query     string   false  "Nifty, 2.5%, Others or NONE"                   default(NONE)
// @Param        days            query     int      false  "Trailing window N (1..30)"                     default(1)
// @Param        min_close       query     string   false  "Close price lower bound; empty disables"       default(90)
// @Param        gain_threshold  query     number   false  "Minimum gain % (0..100)"                       default(1)
// @Param        symbol          query     string   false  "Exact ticker"
// @Param        reference_only  query     bool     false  "Only tickers listed in the symbol reference file"
// @Success      200  {object}  dto.GainsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse  "Combined table not merged yet"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/gains [get]
func (h *Handler) GetGains(c *gin.Context) {
	cr, ok := h.criteria(c)
	if !ok {
		return
	}
	rep, err := h.analyzer.Gains(c.Request.Context(), cr)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GainsResponse{
		Days:     rep.Days,
		Title:    rep.Title,
		Count:    len(rep.Rows),
		Rows:     toGainRows(rep.Rows),
		Warnings: rep.Warnings,
	})
}

// ExportGains godoc
// @Summary      Export gains
// @Description  Same filters as /api/v1/gains, returned as a CSV or XLSX attachment
// @Tags         analysis
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "csv or xlsx"  default(csv)
// @Param        days    query  int     false  "Trailing window N (1..30)"  default(1)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/gains/export [get]
func (h *Handler) ExportGains(c *gin.Context) {
	format, err := exporter.ParseFormat(strings.ToLower(c.Query("format")))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid format", err)
		return
	}
	cr, ok := h.criteria(c)
	if !ok {
		return
	}
	rep, err := h.analyzer.Gains(c.Request.Context(), cr)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := exporter.Write(&buf, format, rep.Rows); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="gains_%dd.%s"`, rep.Days, format))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// GetBarChart godoc
// @Summary      Gain bar chart
// @Description  Bar series (x security, y gain %) with low/close hover values
// @Tags         charts
// @Produce      json
// @Param        days  query  int  false  "Trailing window N (1..30)"  default(1)
// @Success      200  {object}  dto.BarChartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/charts/bar [get]
func (h *Handler) GetBarChart(c *gin.Context) {
	cr, ok := h.criteria(c)
	if !ok {
		return
	}
	rep, err := h.analyzer.Gains(c.Request.Context(), cr)
	if err != nil {
		h.fail(c, err)
		return
	}
	points := make([]dto.BarPoint, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		points = append(points, dto.BarPoint{Security: r.Security, GainPercent: r.GainPercent, LowPrice: r.LowPrice, ClosePrice: r.ClosePrice})
	}
	c.JSON(http.StatusOK, dto.BarChartResponse{
		Title:    rep.Title,
		XField:   storage.ColSecurity,
		YField:   "GAIN_PERCENT",
		Hover:    []string{storage.ColLow, storage.ColClose},
		Points:   points,
		Warnings: rep.Warnings,
	})
}

// GetCandlestick godoc
// @Summary      Candlestick series
// @Description  OHLC series of one security after the pre-aggregation filters
// @Tags         charts
// @Produce      json
// @Param        security  query  string  true  "Exact security name"
// @Success      200  {object}  dto.CandlestickResponse
// @Failure      400  {object}  dto.ErrorResponse  "No single security selected"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/charts/candlestick [get]
func (h *Handler) GetCandlestick(c *gin.Context) {
	cr, ok := h.criteria(c)
	if !ok {
		return
	}
	series, err := h.analyzer.Candles(c.Request.Context(), cr)
	if err != nil {
		h.fail(c, err)
		return
	}
	candles := make([]dto.CandlePoint, 0, len(series.Candles))
	for _, k := range series.Candles {
		candles = append(candles, dto.CandlePoint{
			Date:  k.Date.Format(candleDateLayout),
			Open:  k.Open,
			High:  k.High,
			Low:   k.Low,
			Close: k.Close,
		})
	}
	c.JSON(http.StatusOK, dto.CandlestickResponse{Security: series.Security, Candles: candles, Warnings: series.Warnings})
}

// GetOptions godoc
// @Summary      Selection control values
// @Description  Securities (All first), symbols, security types and day ranges
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  dto.OptionsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/options [get]
func (h *Handler) GetOptions(c *gin.Context) {
	ch, err := h.analyzer.Options(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OptionsResponse{
		Securities:    ch.Securities,
		Symbols:       ch.Symbols,
		SecurityTypes: ch.SecurityTypes,
		DayRanges:     ch.DayRanges,
		MaxCustomDays: ch.MaxCustomDays,
		Warnings:      ch.Warnings,
	})
}
