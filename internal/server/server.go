package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/chat"
	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/config"
	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/models"
	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/persona"
)

const (
	maxBodyBytes        = 1 << 20 // 1 MiB
	shutdownGracePeriod = 10 * time.Second
	readTimeout         = 30 * time.Second
	writeTimeout        = 90 * time.Second
	idleTimeout         = 120 * time.Second
)

// ChatService processes a chat request for a persona variant.
type ChatService interface {
	Respond(ctx context.Context, variant persona.Variant, messages []models.Message) (models.ChatResponse, error)
}

type Server struct {
	cfg     config.Config
	chat    ChatService
	app     *echo.Echo
	address string
}

// New constructs an HTTP server wired with routing and middleware.
func New(cfg config.Config, svc ChatService) (*Server, error) {
	if svc == nil {
		return nil, errors.New("chat service must not be nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency: true,
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"error", v.Error,
			)
			return nil
		},
	}))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'; form-action 'none'",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Server.AllowedOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	srv := &Server{
		cfg:     cfg,
		chat:    svc,
		app:     e,
		address: fmt.Sprintf(":%d", cfg.Server.Port),
	}

	srv.registerRoutes()

	return srv, nil
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server", "addr", s.address, "allowed_origin", s.cfg.Server.AllowedOrigin)

	httpServer := &http.Server{
		Addr:         s.address,
		Handler:      s.app,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.app.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := s.app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		slog.Info("server shutdown complete")
		return nil
	case err := <-errCh:
		return err
	}
}

// Handler exposes the underlying handler for httptest-based tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

func (s *Server) registerRoutes() {
	s.app.GET("/", s.handleHome)
	s.app.GET("/v1/health", s.handleHealth)
	s.app.POST("/v1/chat", s.handleChat(persona.Public))
	s.app.POST("/v1/employee-chat", s.handleChat(persona.Personnel))
}

func (s *Server) handleHome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to the NDRF Aapda Sahayta Bot!",
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Aapda Sahayta Bot, COPY!",
	})
}

func (s *Server) handleChat(variant persona.Variant) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ChatRequest
		if err := decodeRequestBody(c, &req); err != nil {
			return err
		}

		resp, err := s.chat.Respond(c.Request().Context(), variant, req.Messages)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, resp)
	}
}

func decodeRequestBody(c echo.Context, target *models.ChatRequest) error {
	req := c.Request()
	defer req.Body.Close()

	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBodyBytes)

	decoder := json.NewDecoder(req.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return processingError{Message: "request body is required"}
		}
		return processingError{Message: fmt.Sprintf("invalid JSON payload: %v", err)}
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return processingError{Message: "request body must contain a single JSON object"}
	}
	return nil
}

// processingError is any request failure surfaced on the wire. Per the API
// contract every processing failure maps to a 500 with an error description.
type processingError struct {
	Message string
}

func (e processingError) Error() string {
	return e.Message
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, errorBody{Error: message})
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var procErr processingError
	if errors.As(err, &procErr) {
		_ = writeError(c, http.StatusInternalServerError, procErr.Message)
		return
	}

	var chatErr *chat.Error
	if errors.As(err, &chatErr) {
		slog.Error("chat request failed", "kind", chatErr.Kind, "error", chatErr.Err)
		_ = writeError(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred: %v", chatErr.Err))
		return
	}

	// Routing-level errors (404, 405) keep their status.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = writeError(c, httpErr.Code, fmt.Sprintf("%v", httpErr.Message))
		return
	}

	slog.Error("unhandled request error", "error", err)
	_ = writeError(c, http.StatusInternalServerError, "internal server error")
}
