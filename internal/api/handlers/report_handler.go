package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/models"
)

type ReportHandler struct {
	stores *finance.Manager
}

func NewReportHandler(stores *finance.Manager) *ReportHandler {
	return &ReportHandler{stores: stores}
}

// Report serves ?type=expense|income|budget|expense-allocation over
// ?from=YYYY-MM-DD&to=YYYY-MM-DD, defaulting to the current month.
func (h *ReportHandler) Report(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, errors.New("invalid from date"))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, errors.New("invalid to date"))
			return
		}
		to = parsed
	}

	reportType := models.ReportType(c.DefaultQuery("type", string(models.ReportExpense)))
	data, err := store.Report(reportType, from, to)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "", data)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	store, proceed := storeFor(c, h.stores)
	if !proceed {
		return
	}
	ok(c, http.StatusOK, "", store.Dashboard(time.Now()))
}
