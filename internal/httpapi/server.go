// Package httpapi serves the admin back-office JSON API.
package httpapi

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jamaah/internal/core"
	"jamaah/internal/officehour"
	"jamaah/pkg/domain"
)

// Logger is the structured logger used for unexpected failures.
type Logger = core.Logger

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Options configure the app. The zero value serves the API without
// /metrics and without access logs.
type Options struct {
	Logger Logger
	// AccessLog receives one line per request; nil disables it.
	AccessLog io.Writer
	// Gatherer backs GET /metrics when set.
	Gatherer    prometheus.Gatherer
	OfficeHours *officehour.Window
	Clock       domain.Clock
}

// New builds the fiber app around svc.
func New(svc *core.Service, opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.Clock == nil {
		opts.Clock = domain.SystemClock
	}
	window := officehour.Default
	if opts.OfficeHours != nil {
		window = *opts.OfficeHours
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(opts.Logger),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Output:     opts.AccessLog,
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "Asia/Jakarta",
			Format:     "[${time}] ${locals:requestid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		}))
	}

	h := &handlers{svc: svc}

	app.Get("/health", func(c *fiber.Ctx) error {
		return Success(c, "ok", fiber.Map{"driver": svc.Store().Driver()})
	})
	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/api/office-hours", func(c *fiber.Ctx) error {
		now := opts.Clock.Now()
		data := fiber.Map{"open": window.IsOpen(now)}
		if next := window.Next(now); !next.IsZero() {
			data["next_opening"] = next
		}
		return Success(c, "Jam kerja", data)
	})

	admin := app.Group("/api/admin")
	admin.Get("/dashboard", h.dashboard)
	h.mountMembers(admin.Group("/members"))
	h.mountContents(admin.Group("/contents"))
	h.mountMasjidPosts(admin.Group("/masjid-posts"))
	h.mountSchedules(admin.Group("/schedules"))
	h.mountArticles(admin.Group("/articles"))
	h.mountDonations(admin.Group("/donations"))

	return app
}
