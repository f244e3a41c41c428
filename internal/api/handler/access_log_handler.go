package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartdoor/biometric-api/internal/core/ports"
)

// AccessLogHandler exposes the audit trail to operators.
type AccessLogHandler struct {
	service ports.AccessLogService
}

func NewAccessLogHandler(service ports.AccessLogService) *AccessLogHandler {
	return &AccessLogHandler{service: service}
}

// List handles GET /api/access-logs.
//
// @Summary      List access attempts
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        outcome     query  string  false  "Filter by outcome (granted/denied)"
// @Param        device_ref  query  string  false  "Filter by originating device"
// @Param        page        query  int     false  "Page (1-based)"
// @Param        limit       query  int     false  "Rows per page (max 100)"
// @Success      200  {object}  listAttemptsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/access-logs [get]
func (h *AccessLogHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListAttempts(c.Request().Context(), ports.ListAttemptsInput{
		Outcome:   c.QueryParam("outcome"),
		DeviceRef: c.QueryParam("device_ref"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	items := make([]accessAttemptResponse, 0, len(result.Items))
	for _, a := range result.Items {
		items = append(items, accessAttemptResponse{
			SubjectRef: a.SubjectRef,
			Outcome:    string(a.Outcome),
			Reason:     string(a.Reason),
			Confidence: a.Confidence,
			DeviceRef:  a.DeviceRef,
			CreatedAt:  a.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, listAttemptsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
