// Package server is the HTTP layer: server-rendered pages over echo,
// form posts validated with go-playground/validator.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/eugendimant/vivalingo/internal/database"
	"github.com/eugendimant/vivalingo/internal/excel"
	"github.com/eugendimant/vivalingo/internal/missions"
	"github.com/eugendimant/vivalingo/internal/progress"
	"github.com/eugendimant/vivalingo/internal/review"
	"github.com/eugendimant/vivalingo/internal/roleplay"
	"github.com/eugendimant/vivalingo/internal/writing"
	"github.com/eugendimant/vivalingo/pkg/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Deps bundles everything the handlers touch
type Deps struct {
	Profiles      *database.ProfileRepository
	Vocab         *database.VocabRepository
	Grammar       *database.GrammarRepository
	Mistakes      *database.MistakeRepository
	Conversations *database.ConversationRepository
	Metrics       *database.ProgressRepository

	Reviews  *review.Runner
	Writing  *writing.Analyzer
	Roleplay *roleplay.Engine
	Missions *missions.Service
	Progress *progress.Service
	Importer *excel.Importer

	DataDir string
	Logger  *zap.Logger
}

// Server wires the echo instance to the application services
type Server struct {
	echo *echo.Echo
	deps Deps
	log  *zap.Logger
}

// TemplateRenderer adapts html/template to echo's Renderer interface
type TemplateRenderer struct {
	templates *template.Template
}

// Render executes a named template
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// CustomValidator adapts go-playground/validator to echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate checks a bound request struct
func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// New builds the server and registers all routes
func New(deps Deps) (*Server, error) {
	funcs := template.FuncMap{
		// pct renders a 0..1 ratio (plain or pointer) as a whole percent
		"pct": func(v interface{}) string {
			switch x := v.(type) {
			case float64:
				return fmt.Sprintf("%.0f%%", x*100)
			case *float64:
				if x == nil {
					return ""
				}
				return fmt.Sprintf("%.0f%%", *x*100)
			default:
				return ""
			}
		},
	}
	tpl, err := template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = &TemplateRenderer{templates: tpl}
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Recover())

	s := &Server{echo: e, deps: deps, log: deps.Logger}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/", s.handleHome)

	e.GET("/review", s.handleReviewForm)
	e.POST("/review/start", s.handleReviewStart)
	e.GET("/review/session/:id", s.handleReviewCard)
	e.POST("/review/session/:id/answer", s.handleReviewAnswer)
	e.POST("/review/session/:id/rate", s.handleReviewRate)

	e.GET("/vocab", s.handleVocabList)
	e.POST("/vocab", s.handleVocabAdd)
	e.POST("/vocab/import", s.handleVocabImport)
	e.GET("/vocab/export", s.handleVocabExport)

	e.GET("/mistakes", s.handleMistakeList)
	e.POST("/mistakes/check", s.handleMistakeCheck)

	e.GET("/writing", s.handleWritingForm)
	e.POST("/writing", s.handleWritingAnalyze)

	e.GET("/conversation", s.handleConversationList)
	e.POST("/conversation/start", s.handleConversationStart)
	e.GET("/conversation/:id", s.handleConversationView)
	e.POST("/conversation/:id/message", s.handleConversationMessage)
	e.POST("/conversation/:id/finish", s.handleConversationFinish)

	e.GET("/missions", s.handleMissionToday)
	e.POST("/missions/respond", s.handleMissionRespond)

	e.GET("/progress", s.handleProgress)

	e.GET("/settings", s.handleSettings)
	e.POST("/settings", s.handleSettingsSave)
	e.POST("/profiles", s.handleProfileCreate)
	e.POST("/profiles/:id/activate", s.handleProfileActivate)
}

// Start blocks serving HTTP until Shutdown
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// activeProfile resolves the current profile, bootstrapping a default one
// on the very first launch.
func (s *Server) activeProfile(c echo.Context) (*models.Profile, error) {
	ctx := c.Request().Context()
	profile, err := s.deps.Profiles.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	id, err := s.deps.Profiles.Create(ctx, &models.Profile{
		Name:              "Principal",
		Level:             "C1",
		WeeklyGoal:        6,
		FocusAreas:        "[]",
		DialectPreference: "Spain",
		GradingMode:       "balanced",
		AccentTolerance:   true,
		IsActive:          true,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("bootstrapped default profile", zap.Int64("profile_id", id))
	return s.deps.Profiles.GetByID(ctx, id)
}

// fail logs a handler error and renders a 500
func (s *Server) fail(c echo.Context, err error) error {
	s.log.Error("handler failed",
		zap.String("path", c.Request().URL.Path),
		zap.Error(err),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
