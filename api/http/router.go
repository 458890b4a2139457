package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberSwagger "github.com/gofiber/swagger"

	"github.com/artem13815/recruitflow/api/http/handlers"
)

// Handlers — все HTTP-хендлеры приложения.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Candidates *handlers.CandidatesHandler
	Resumes    *handlers.ResumesHandler
	Messaging  *handlers.MessagingHandler
	Jobs       *handlers.JobsHandler
	Export     *handlers.ExportHandler
	Settings   *handlers.SettingsHandler
	Dashboard  *handlers.DashboardHandler
}

// Register навешивает middleware и маршруты на Fiber-приложение.
// authMW защищает всё, кроме /auth (register/login/refresh/logout),
// health-проб и swagger.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	// Подбор пароля тормозится на уровне роутера.
	a := v1.Group("/auth", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}))
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Post("/refresh", h.Auth.Refresh)
	a.Post("/logout", h.Auth.Logout)
	a.Get("/me", authMW, h.Auth.Me)

	cand := v1.Group("/candidates", authMW)
	cand.Get("/", h.Candidates.List)
	cand.Get("/:id", h.Candidates.Get)
	cand.Put("/:id", h.Candidates.Update)
	cand.Delete("/:id", h.Candidates.Delete)

	res := v1.Group("/resumes", authMW)
	res.Post("/", h.Resumes.Upload)
	res.Get("/:id", h.Resumes.Get)
	res.Post("/:id/reprocess", h.Resumes.Reprocess)

	msg := v1.Group("/messages", authMW)
	msg.Get("/conversation/:candidateId", h.Messaging.Conversation)
	msg.Post("/generate-preview", h.Messaging.GeneratePreview)
	msg.Post("/send", h.Messaging.Send)
	msg.Post("/receive-reply", h.Messaging.ReceiveReply)
	msg.Get("/pending-review", h.Messaging.PendingReview)
	msg.Post("/:id/approve", h.Messaging.Approve)

	jobs := v1.Group("/jobs", authMW)
	jobs.Get("/candidate/:candidateId", h.Jobs.ListByCandidate)
	jobs.Get("/:id", h.Jobs.Get)

	exp := v1.Group("/export", authMW)
	exp.Get("/excel", h.Export.Excel)
	exp.Get("/csv", h.Export.CSV)
	exp.Post("/sheets", h.Export.Sheets)

	st := v1.Group("/settings", authMW)
	st.Get("/", h.Settings.Get)
	st.Put("/", h.Settings.Put)

	dash := v1.Group("/dashboard", authMW)
	dash.Get("/stats", h.Dashboard.Stats)
	dash.Get("/activity", h.Dashboard.Activity)
}
