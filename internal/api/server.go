// Package api exposes the companion's functionality over HTTP and
// WebSocket.
package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gmsas95/healthmate/internal/appointments"
	"github.com/gmsas95/healthmate/internal/auth"
	"github.com/gmsas95/healthmate/internal/config"
	apperrors "github.com/gmsas95/healthmate/internal/errors"
	"github.com/gmsas95/healthmate/internal/facilities"
	"github.com/gmsas95/healthmate/internal/meds"
	"github.com/gmsas95/healthmate/internal/metrics"
	"github.com/gmsas95/healthmate/internal/profile"
	"github.com/gmsas95/healthmate/internal/schedule"
	"github.com/gmsas95/healthmate/internal/store"
)

// Server handles HTTP API and WebSocket
type Server struct {
	app     *fiber.App
	config  *config.Config
	store   *store.Store
	logger  *zap.Logger
	metrics *metrics.Metrics
	hub     *Hub

	authSvc    *auth.Service
	tracker    *meds.Tracker
	booker     *appointments.Service
	profileSvc *profile.Service
	builder    *schedule.Builder
	clock      schedule.Clock

	limiterMu     sync.Mutex
	loginLimiters map[string]*rate.Limiter
}

// New creates a new API server and wires up the domain services.
func New(cfg *config.Config, st *store.Store, clock schedule.Clock, logger *zap.Logger) (*Server, error) {
	if clock == nil {
		clock = schedule.SystemClock()
	}

	authStore, err := auth.NewStore(st.DB())
	if err != nil {
		return nil, fmt.Errorf("failed to init auth store: %w", err)
	}
	authSvc := auth.NewService(authStore, cfg.Security.JWTSecret,
		time.Duration(cfg.Security.TokenTTLHours)*time.Hour, clock, logger)

	medsStore, err := meds.NewStore(st.DB())
	if err != nil {
		return nil, fmt.Errorf("failed to init medication store: %w", err)
	}
	tracker := meds.NewTracker(medsStore, st, clock, logger)

	apptStore, err := appointments.NewStore(st.DB())
	if err != nil {
		return nil, fmt.Errorf("failed to init appointment store: %w", err)
	}
	booker := appointments.NewService(apptStore, clock, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	s := &Server{
		app:           app,
		config:        cfg,
		store:         st,
		logger:        logger,
		metrics:       metrics.Default(),
		hub:           NewHub(logger),
		authSvc:       authSvc,
		tracker:       tracker,
		booker:        booker,
		profileSvc:    profile.NewService(st, logger),
		builder:       schedule.NewBuilder(cfg.Schedule.WindowLength, cfg.Schedule.TodayIndex, clock),
		clock:         clock,
		loginLimiters: make(map[string]*rate.Limiter),
	}

	s.setupRoutes()
	return s, nil
}

// Tracker exposes the dose tracker for the reminder runner and CLI.
func (s *Server) Tracker() *meds.Tracker {
	return s.tracker
}

// Auth exposes the auth service for the CLI subcommands.
func (s *Server) Auth() *auth.Service {
	return s.authSvc
}

func (s *Server) setupRoutes() {
	// Middleware
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(s.config.Security.AllowOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	s.app.Use(s.requestMetrics())

	// Health check and metrics
	s.app.Get("/api/health", s.handleHealth)
	s.app.Get("/api/metrics", s.handleMetricsSnapshot)
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group("/api")

	// Public routes
	api.Post("/auth/register", s.loginRateLimit(), s.handleRegister)
	api.Post("/auth/login", s.loginRateLimit(), s.handleLogin)

	// Protected routes
	protected := api.Use(s.authMiddleware())

	protected.Post("/auth/logout", s.handleLogout)

	// Day window
	protected.Get("/window", s.handleGetWindow)
	protected.Post("/window/select", s.handleSelectDay)

	// Medication doses
	protected.Get("/doses", s.handleListDoses)
	protected.Post("/doses", s.handleAddDose)
	protected.Delete("/doses/:id", s.handleDeleteDose)
	protected.Post("/doses/:id/toggle", s.handleToggleDose)
	protected.Post("/doses/statuses", s.handleCommitStatuses)
	protected.Get("/doses/options", s.handleDoseOptions)

	// Appointments
	protected.Get("/appointments", s.handleListAppointments)
	protected.Post("/appointments", s.handleBookAppointment)
	protected.Delete("/appointments/:id", s.handleCancelAppointment)
	protected.Get("/appointments/slots", s.handleListSlots)

	// Facility directory
	protected.Get("/facilities", s.handleListFacilities)
	protected.Get("/facilities/nearest", s.handleNearestFacilities)
	protected.Get("/facilities/services", s.handleListServices)

	// Profile
	protected.Get("/profile", s.handleGetProfile)
	protected.Put("/profile", s.handleSaveProfile)

	// WebSocket
	s.app.Get("/ws", websocket.New(s.handleWebSocket))
}

// Start starts the server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Address, s.config.Server.Port)
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}

// errorJSON maps domain error codes onto HTTP statuses.
func errorJSON(c *fiber.Ctx, err error) error {
	code := apperrors.GetCode(err)
	status := 500
	switch {
	case strings.HasPrefix(code, "VALID_"), strings.HasPrefix(code, "SELECT_"), code == "GEN_002":
		status = 400
	case code == "AUTH_001":
		status = 409
	case code == "AUTH_002", code == "GEN_001":
		status = 404
	case code == "AUTH_003", code == "AUTH_004":
		status = 401
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "code": code})
}

// ==================== Handlers ====================

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"version":   "0.1.0",
		"timestamp": s.clock.Now().Unix(),
	})
}

func (s *Server) handleMetricsSnapshot(c *fiber.Ctx) error {
	return c.JSON(s.metrics.Snapshot())
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req auth.Credentials
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	user, err := s.authSvc.Register(req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"id": user.ID, "username": user.Username})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req auth.Credentials
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	token, err := s.authSvc.Login(req)
	if err != nil {
		s.metrics.RecordLogin(false)
		return errorJSON(c, err)
	}

	// Record the session so tokens can be revoked before they expire.
	ttl := token.ExpiresAt.Sub(s.clock.Now())
	if err := s.store.SetSession(token.Value, []byte(req.Username), ttl); err != nil {
		s.logger.Error("Failed to record session", zap.Error(err))
		return errorJSON(c, err)
	}

	s.metrics.RecordLogin(true)
	return c.JSON(token)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if err := s.store.DeleteSession(token); err != nil {
		s.logger.Error("Failed to delete session", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.SendStatus(204)
}

func (s *Server) handleGetWindow(c *fiber.Ctx) error {
	w := s.builder.Current()
	days := make([]fiber.Map, len(w.Days))
	for i, d := range w.Days {
		days[i] = fiber.Map{"index": i, "day": d.String(), "short": d.Short()}
	}
	return c.JSON(fiber.Map{"days": days, "today_index": w.TodayIndex})
}

func (s *Server) handleSelectDay(c *fiber.Ctx) error {
	var req struct {
		Index int `json:"index"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	selected, err := s.builder.Select(s.builder.Current(), req.Index)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"index": selected.Index,
		"day":   selected.Day.String(),
		"date":  selected.Date.Format("2006-01-02"),
	})
}

func (s *Server) handleListDoses(c *fiber.Ctx) error {
	index := c.QueryInt("index", s.config.Schedule.TodayIndex)

	selected, err := s.builder.Select(s.builder.Current(), index)
	if err != nil {
		return errorJSON(c, err)
	}

	doses, err := s.tracker.LoadDoses(selected.Day)
	if err != nil {
		s.logger.Error("Failed to load doses", zap.Error(err))
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"day":    selected.Day.String(),
		"date":   selected.Date.Format("2006-01-02"),
		"groups": meds.GroupByTime(doses),
	})
}

func (s *Server) handleAddDose(c *fiber.Ctx) error {
	var req struct {
		meds.DoseInput
		Index int `json:"index"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	selected, err := s.builder.Select(s.builder.Current(), req.Index)
	if err != nil {
		return errorJSON(c, err)
	}

	dose, err := s.tracker.AddDose(req.DoseInput, selected, s.config.Schedule.TodayIndex)
	if err != nil {
		return errorJSON(c, err)
	}

	s.metrics.RecordDoseAdded()
	s.hub.Broadcast(Event{Type: "dose_added", Payload: dose})
	return c.Status(201).JSON(dose)
}

func (s *Server) handleDeleteDose(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid dose id"})
	}

	if err := s.tracker.DeleteDose(int64(id)); err != nil {
		return errorJSON(c, err)
	}

	s.metrics.RecordDoseDeleted()
	s.hub.Broadcast(Event{Type: "dose_deleted", Payload: fiber.Map{"id": id}})
	return c.SendStatus(204)
}

func (s *Server) handleToggleDose(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid dose id"})
	}

	status := s.tracker.Toggle(int64(id))
	return c.JSON(fiber.Map{"id": id, "status": status})
}

func (s *Server) handleCommitStatuses(c *fiber.Ctx) error {
	var req struct {
		Statuses map[int64]string `json:"statuses"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	for id, status := range req.Statuses {
		if err := s.tracker.SetStaged(id, meds.Status(status)); err != nil {
			return errorJSON(c, err)
		}
	}

	if err := s.tracker.CommitStatuses(); err != nil {
		s.metrics.RecordStatusCommit(len(req.Statuses), false)
		s.logger.Error("Status commit failed", zap.Error(err))
		return errorJSON(c, err)
	}

	s.metrics.RecordStatusCommit(len(req.Statuses), true)
	s.hub.Broadcast(Event{Type: "statuses_committed", Payload: req.Statuses})
	return c.SendStatus(204)
}

func (s *Server) handleDoseOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"units": meds.Units(),
		"forms": meds.Forms(),
	})
}

func (s *Server) handleListAppointments(c *fiber.Ctx) error {
	var (
		appts []appointments.Appointment
		err   error
	)
	if c.QueryBool("upcoming", false) {
		appts, err = s.booker.Upcoming()
	} else {
		appts, err = s.booker.List()
	}
	if err != nil {
		s.logger.Error("Failed to list appointments", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(appts)
}

func (s *Server) handleBookAppointment(c *fiber.Ctx) error {
	var req appointments.BookingInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	appt, err := s.booker.Book(req)
	if err != nil {
		return errorJSON(c, err)
	}

	s.metrics.RecordAppointmentBooked()
	s.hub.Broadcast(Event{Type: "appointment_booked", Payload: appt})
	return c.Status(201).JSON(appt)
}

func (s *Server) handleCancelAppointment(c *fiber.Ctx) error {
	if err := s.booker.Cancel(c.Params("id")); err != nil {
		return errorJSON(c, err)
	}

	s.metrics.RecordAppointmentCancelled()
	s.hub.Broadcast(Event{Type: "appointment_cancelled", Payload: fiber.Map{"id": c.Params("id")}})
	return c.SendStatus(204)
}

func (s *Server) handleListSlots(c *fiber.Ctx) error {
	return c.JSON(appointments.Slots())
}

func (s *Server) handleListFacilities(c *fiber.Ctx) error {
	if kind := c.Query("kind"); kind != "" {
		results := facilities.ByKind(facilities.Kind(kind))
		if results == nil {
			return c.Status(400).JSON(fiber.Map{"error": "unknown facility kind"})
		}
		return c.JSON(results)
	}
	return c.JSON(facilities.Search(c.Query("q")))
}

func (s *Server) handleNearestFacilities(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat")
	lon := c.QueryFloat("lon")
	if lat == 0 && lon == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "lat and lon are required"})
	}
	limit := c.QueryInt("limit", 5)
	return c.JSON(facilities.Nearest(lat, lon, limit))
}

func (s *Server) handleListServices(c *fiber.Ctx) error {
	return c.JSON(facilities.Services())
}

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	p, err := s.profileSvc.Get()
	if err != nil {
		s.logger.Error("Failed to load profile", zap.Error(err))
		return errorJSON(c, err)
	}
	if p == nil {
		return c.Status(404).JSON(fiber.Map{"error": "no profile saved"})
	}
	return c.JSON(p)
}

func (s *Server) handleSaveProfile(c *fiber.Ctx) error {
	var req profile.Profile
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := s.profileSvc.Save(req); err != nil {
		return errorJSON(c, err)
	}

	s.hub.Broadcast(Event{Type: "profile_updated"})
	return c.SendStatus(204)
}

func (s *Server) handleWebSocket(c *websocket.Conn) {
	s.hub.Register(c)
	defer func() {
		s.hub.Unregister(c)
		c.Close()
	}()

	// Clients only listen; drain reads until the peer goes away.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// ==================== Middleware ====================

// requestMetrics records request counts and latency per method/status.
func (s *Server) requestMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}
		s.metrics.RecordHTTPRequest(utils.CopyString(c.Method()), strconv.Itoa(status), time.Since(start))
		return err
	}
}

func (s *Server) authMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(401).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		username, err := s.authSvc.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "invalid token"})
		}

		// A valid signature is not enough: logged-out tokens are gone
		// from the session store.
		if _, err := s.store.GetSession(tokenString); err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "session expired"})
		}

		c.Locals("username", username)
		return c.Next()
	}
}

// loginRateLimit throttles credential endpoints per client IP.
func (s *Server) loginRateLimit() fiber.Handler {
	rps := s.config.Security.LoginRPS
	if rps <= 0 {
		rps = 1
	}
	burst := s.config.Security.LoginBurst
	if burst <= 0 {
		burst = 5
	}

	return func(c *fiber.Ctx) error {
		s.limiterMu.Lock()
		limiter, ok := s.loginLimiters[c.IP()]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			s.loginLimiters[c.IP()] = limiter
		}
		s.limiterMu.Unlock()

		if !limiter.Allow() {
			return c.Status(429).JSON(fiber.Map{"error": "too many attempts, slow down"})
		}
		return c.Next()
	}
}
