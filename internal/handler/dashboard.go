package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Franklivania/go-to-market/internal/dashboard"
	"github.com/Franklivania/go-to-market/internal/liststore"
	"github.com/Franklivania/go-to-market/internal/store"
)

type DashboardHandler struct {
	listStore    *liststore.Store
	paymentStore *store.PaymentStore
	logger       *slog.Logger
}

func NewDashboardHandler(ls *liststore.Store, ps *store.PaymentStore, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{listStore: ls, paymentStore: ps, logger: logger}
}

// Home returns the greeting, date line and a tip matched to how far the
// visitor has gotten.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	hasOrder, err := h.paymentStore.HasSucceeded()
	if err != nil {
		h.logger.Error("check order history", "error", err)
	}

	view := dashboard.Build(time.Now(), dashboard.State{
		HasLists:       len(h.listStore.Lists()) > 0,
		HasPlacedOrder: hasOrder,
	})
	writeJSON(w, http.StatusOK, view)
}
