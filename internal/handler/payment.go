package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"

	"github.com/Franklivania/go-to-market/internal/liststore"
	"github.com/Franklivania/go-to-market/internal/model"
	"github.com/Franklivania/go-to-market/internal/money"
	"github.com/Franklivania/go-to-market/internal/payment"
	"github.com/Franklivania/go-to-market/internal/push"
	"github.com/Franklivania/go-to-market/internal/receipt"
	"github.com/Franklivania/go-to-market/internal/store"
	"github.com/Franklivania/go-to-market/internal/websocket"
)

type PaymentHandler struct {
	listStore         *liststore.Store
	paymentStore      *store.PaymentStore
	notificationStore *store.NotificationStore
	pushStore         *store.PushStore
	pushService       *push.Service
	client            *payment.Client
	hub               *websocket.Hub
	logger            *slog.Logger
}

func NewPaymentHandler(
	ls *liststore.Store,
	ps *store.PaymentStore,
	ns *store.NotificationStore,
	pss *store.PushStore,
	svc *push.Service,
	client *payment.Client,
	hub *websocket.Hub,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		listStore:         ls,
		paymentStore:      ps,
		notificationStore: ns,
		pushStore:         pss,
		pushService:       svc,
		client:            client,
		hub:               hub,
		logger:            logger,
	}
}

// Checkout places an order for the current list: it records a pending
// payment and opens a hosted payment session. The caller is redirected
// to the returned payment URL; the list itself stays a draft until the
// provider confirms payment, so an expired session can simply be
// checked out again.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if !h.client.Configured() {
		writeError(w, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	cur := h.listStore.CurrentList()
	if cur == nil {
		writeError(w, http.StatusConflict, "no current list")
		return
	}
	if !cur.IsDraft {
		writeError(w, http.StatusConflict, "list already checked out")
		return
	}
	if len(cur.Items) == 0 {
		writeError(w, http.StatusBadRequest, "list is empty")
		return
	}

	total := cur.TotalPrice()
	if total <= 0 {
		writeError(w, http.StatusBadRequest, "list has no priced items")
		return
	}

	suffix := strings.Split(uuid.NewString(), "-")[0]
	reference := "GTM-" + suffix
	receiptNumber := receipt.Number(time.Now().UTC(), suffix)

	p, err := h.paymentStore.Create(reference, []string{cur.ID}, total, "NGN", receiptNumber)
	if err != nil {
		h.logger.Error("create payment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create payment")
		return
	}

	url, err := h.client.CreateCheckoutSession(reference, []payment.CheckoutLine{
		{Name: cur.Title, Amount: money.ToKobo(total)},
	})
	if err != nil {
		h.logger.Error("create checkout session", "reference", reference, "error", err)
		h.paymentStore.UpdateStatus(reference, model.PaymentStatusFailed)
		writeError(w, http.StatusBadGateway, "payment provider unavailable")
		return
	}

	h.hub.Broadcast(websocket.NewMessage("order", "placed", cur.ID, map[string]any{"reference": reference}))

	if _, err := h.notificationStore.Create(
		"Order placed",
		"Your order "+reference+" for "+money.FormatNaira(total)+" is awaiting payment.",
	); err != nil {
		h.logger.Error("create notification", "error", err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"reference":  reference,
		"receipt":    p.ReceiptNumber,
		"amount":     total,
		"paymentUrl": url,
	})
}

// Orders lists all payments, newest first.
func (h *PaymentHandler) Orders(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentStore.List()
	if err != nil {
		h.logger.Error("list payments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

// Order returns one payment by reference.
func (h *PaymentHandler) Order(w http.ResponseWriter, r *http.Request) {
	p, err := h.paymentStore.GetByReference(r.PathValue("reference"))
	if err != nil {
		h.logger.Error("get payment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Receipt renders the HTML receipt for an order.
func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	p, err := h.paymentStore.GetByReference(r.PathValue("reference"))
	if err != nil {
		h.logger.Error("get payment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	lists := make(map[string]model.MarketList, len(p.ListIDs))
	for _, id := range p.ListIDs {
		if l, ok := h.listStore.List(id); ok {
			lists[id] = l
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := receipt.Render(w, receipt.Build(p, lists)); err != nil {
		h.logger.Error("render receipt", "reference", p.Reference, "error", err)
	}
}

// Webhook processes payment provider events and moves payments through
// their lifecycle.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 65536))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}

	event, err := h.client.ConstructWebhookEvent(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		h.handleSessionEvent(event, model.PaymentStatusSucceeded)
	case "checkout.session.expired":
		h.handleSessionEvent(event, model.PaymentStatusCancelled)
	case "checkout.session.async_payment_failed":
		h.handleSessionEvent(event, model.PaymentStatusFailed)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *PaymentHandler) handleSessionEvent(event stripe.Event, status string) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		h.logger.Error("unmarshal checkout session", "error", err)
		return
	}

	reference := sess.ClientReferenceID
	if reference == "" {
		h.logger.Warn("checkout session missing reference", "event", event.Type)
		return
	}

	p, err := h.paymentStore.GetByReference(reference)
	if err != nil || p == nil {
		h.logger.Warn("webhook for unknown payment", "reference", reference, "error", err)
		return
	}

	if err := h.paymentStore.UpdateStatus(reference, status); err != nil {
		h.logger.Error("update payment status", "reference", reference, "error", err)
		return
	}

	// Confirmed payment is what turns the draft into order history. If
	// the session expired or failed, the list stays a draft and can be
	// checked out again.
	if status == model.PaymentStatusSucceeded {
		if cur := h.listStore.CurrentList(); cur != nil && slices.Contains(p.ListIDs, cur.ID) {
			h.listStore.Checkout()
		}
	}

	h.hub.Broadcast(websocket.NewMessage("order", status, reference, nil))
	h.notifyStatus(p, status)
}

func (h *PaymentHandler) notifyStatus(p *model.Payment, status string) {
	var title, body string
	switch status {
	case model.PaymentStatusSucceeded:
		title = "Payment received"
		body = "Your order " + p.Reference + " for " + money.FormatNaira(p.Amount) + " is confirmed."
	case model.PaymentStatusCancelled:
		title = "Order cancelled"
		body = "The payment session for order " + p.Reference + " expired."
	case model.PaymentStatusFailed:
		title = "Payment failed"
		body = "Payment for order " + p.Reference + " did not go through."
	default:
		return
	}

	if _, err := h.notificationStore.Create(title, body); err != nil {
		h.logger.Error("create notification", "error", err)
	}

	if !h.pushService.Configured() {
		return
	}
	subs, err := h.pushStore.List()
	if err != nil {
		h.logger.Error("list push subscriptions", "error", err)
		return
	}
	expired := h.pushService.Broadcast(subs, push.Payload{
		Title: title,
		Body:  body,
		URL:   "/orders/" + p.Reference,
		Tag:   "order-" + p.Reference,
	})
	for _, endpoint := range expired {
		if err := h.pushStore.DeleteByEndpoint(endpoint); err != nil {
			h.logger.Error("prune expired subscription", "error", err)
		}
	}
}
