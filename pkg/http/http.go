package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: http.go
 * @description: fiber app and http server lifecycle
 */

type Http struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	AccessLog       bool   `mapstructure:"accessLog"`
	PProf           bool   `mapstructure:"pprof"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	IdleTimeout     int    `mapstructure:"idleTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
	BodyLimit       int    `mapstructure:"bodyLimit"`
}

// SetDefaults 设置默认值
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.ReadTimeout == 0 {
		h.ReadTimeout = 60
	}
	if h.WriteTimeout == 0 {
		h.WriteTimeout = 60
	}
	if h.IdleTimeout == 0 {
		h.IdleTimeout = 120
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = 10
	}
	if h.BodyLimit == 0 {
		h.BodyLimit = 8 * 1024 * 1024
	}
}

func (h *Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// NewFiberApp builds a fiber app with sonic as JSON codec and the unified error envelope.
// Params and decoded bodies are copied out of fasthttp's buffers, handlers
// hand them to long-lived snapshots.
func NewFiberApp(cfg *Http) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "menuroute",
		DisableStartupMessage: true,
		Immutable:             true,
		ReadTimeout:           time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(cfg.IdleTimeout) * time.Second,
		BodyLimit:             cfg.BodyLimit,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.ConfigStd.Unmarshal,
		ErrorHandler:          errorHandler,
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := InternalError.Code
		switch fe.Code {
		case fiber.StatusNotFound:
			code = NotFound.Code
		case fiber.StatusBadRequest:
			code = BadRequest.Code
		}
		return WithRepErrStatus(c, fe.Code, code, fe.Message, c.Path())
	}
	log.Errorw("unhandled request error", "path", c.Path(), "error", err)
	return WithRepErrStatus(c, fiber.StatusInternalServerError, InternalError.Code, InternalError.Msg, c.Path())
}

// Server owns the listening fiber app.
type Server struct {
	cfg *Http
	app *fiber.App
}

func NewServer(cfg *Http, app *fiber.App) *Server {
	return &Server{cfg: cfg, app: app}
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens in the background; listen errors other than a closed server are logged.
func (s *Server) Start() {
	addr := s.cfg.Addr()
	go func() {
		log.Infow("http server started", "addr", addr)
		if err := s.app.Listen(addr); err != nil {
			log.Errorw("http server stopped with error", "addr", addr, "error", err)
		}
	}()
}

// Shutdown drains in-flight requests within ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := time.Duration(s.cfg.ShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Info("http server shutting down...")
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	log.Info("http server shut down gracefully")
	return nil
}
