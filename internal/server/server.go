package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Franklivania/go-to-market/internal/backup"
	"github.com/Franklivania/go-to-market/internal/country"
	"github.com/Franklivania/go-to-market/internal/handler"
	"github.com/Franklivania/go-to-market/internal/liststore"
	"github.com/Franklivania/go-to-market/internal/middleware"
	"github.com/Franklivania/go-to-market/internal/payment"
	"github.com/Franklivania/go-to-market/internal/push"
	"github.com/Franklivania/go-to-market/internal/store"
	ws "github.com/Franklivania/go-to-market/internal/websocket"
)

// Config carries everything the server needs beyond the database.
type Config struct {
	Stripe payment.Config
	Backup backup.Config
	Push   PushConfig
}

// PushConfig holds the VAPID key pair.
type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
}

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	listH         *handler.ListHandler
	countryH      *handler.CountryHandler
	paymentH      *handler.PaymentHandler
	notificationH *handler.NotificationHandler
	pushH         *handler.PushHandler
	dashboardH    *handler.DashboardHandler
	backupH       *handler.BackupHandler
	backupManager *backup.Manager
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger.With("component", "websocket"))

	documentStore := store.NewDocumentStore(db)
	paymentStore := store.NewPaymentStore(db)
	notificationStore := store.NewNotificationStore(db)
	pushStore := store.NewPushStore(db)

	listStore, err := liststore.New(documentStore, logger.With("component", "liststore"))
	if err != nil {
		return nil, fmt.Errorf("init list store: %w", err)
	}

	countrySvc := country.NewService(logger.With("component", "country"))
	stripeClient := payment.NewClient(cfg.Stripe)
	pushSvc := push.NewService(cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, logger.With("component", "push"))
	backupMgr := backup.NewManager(cfg.Backup, db, logger.With("component", "backup"))

	return &Server{
		db:    db,
		hub:   hub,
		listH: handler.NewListHandler(listStore, hub),
		countryH: handler.NewCountryHandler(countrySvc),
		paymentH: handler.NewPaymentHandler(
			listStore, paymentStore, notificationStore, pushStore,
			pushSvc, stripeClient, hub, logger.With("component", "payment"),
		),
		notificationH: handler.NewNotificationHandler(notificationStore, logger.With("component", "notification")),
		pushH:         handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push_handler")),
		dashboardH:    handler.NewDashboardHandler(listStore, paymentStore, logger.With("component", "dashboard")),
		backupH:       handler.NewBackupHandler(backupMgr, logger.With("component", "backup_handler")),
		backupManager: backupMgr,
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}, nil
}

// BackupManager returns the backup manager for lifecycle control.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Market lists
	mux.HandleFunc("GET /api/lists", s.listH.Lists)
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("GET /api/lists/current", s.listH.Current)
	mux.HandleFunc("PUT /api/lists/current", s.listH.SetCurrent)
	mux.HandleFunc("PUT /api/lists/current/title", s.listH.SetTitle)
	mux.HandleFunc("GET /api/lists/total", s.listH.Total)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.Get)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)

	// Items on the current list
	mux.HandleFunc("POST /api/items", s.listH.AddItem)
	mux.HandleFunc("PATCH /api/items/{id}", s.listH.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.listH.RemoveItem)
	mux.HandleFunc("POST /api/items/clear", s.listH.ClearItems)

	// UI state
	mux.HandleFunc("PUT /api/ui/bottom-sheet", s.listH.BottomSheet)
	mux.HandleFunc("POST /api/reset", s.listH.Reset)

	// Country catalogue
	mux.HandleFunc("GET /api/countries", s.countryH.Countries)
	mux.HandleFunc("GET /api/countries/popular", s.countryH.Popular)
	mux.HandleFunc("GET /api/countries/{code}/states", s.countryH.States)

	// Checkout and orders
	mux.HandleFunc("POST /api/checkout", s.rateLimitedHandler(s.paymentH.Checkout))
	mux.HandleFunc("GET /api/orders", s.paymentH.Orders)
	mux.HandleFunc("GET /api/orders/{reference}", s.paymentH.Order)
	mux.HandleFunc("GET /api/orders/{reference}/receipt", s.paymentH.Receipt)
	mux.HandleFunc("POST /api/webhooks/stripe", s.paymentH.Webhook)

	// Notifications
	mux.HandleFunc("GET /api/notifications", s.notificationH.List)
	mux.HandleFunc("POST /api/notifications/{id}/toggle-read", s.notificationH.ToggleRead)

	// Push subscriptions
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
	mux.HandleFunc("POST /api/push/subscribe", s.rateLimitedHandler(s.pushH.Subscribe))
	mux.HandleFunc("POST /api/push/unsubscribe", s.pushH.Unsubscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.Subscriptions)
	mux.HandleFunc("POST /api/push/subscriptions/{id}/test", s.pushH.Test)

	// Home dashboard
	mux.HandleFunc("GET /api/dashboard", s.dashboardH.Home)

	// Backups
	mux.HandleFunc("GET /api/backup/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backup/run", s.backupH.Run)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(h).ServeHTTP(w, r)
	}
}
