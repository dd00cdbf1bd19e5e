package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eugendimant/vivalingo/internal/database"
	"github.com/eugendimant/vivalingo/internal/mistakes"
	"github.com/eugendimant/vivalingo/pkg/models"
)

type checkTextRequest struct {
	Text string `form:"text" validate:"required"`
}

type writingRequest struct {
	Text     string `form:"text" validate:"required"`
	Register string `form:"register" validate:"omitempty,oneof=formal informal academic"`
}

func (s *Server) handleMistakeList(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}
	ctx := c.Request().Context()

	logged, err := s.deps.Mistakes.List(ctx, profile.ID, c.QueryParam("type"), 50)
	if err != nil {
		return s.fail(c, err)
	}
	stats, err := s.deps.Mistakes.StatsByType(ctx, profile.ID)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "mistakes", map[string]interface{}{
		"Profile":  profile,
		"Mistakes": logged,
		"Stats":    stats,
	})
}

func (s *Server) handleMistakeCheck(c echo.Context) error {
	var req checkTextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}

	findings := s.deps.Writing.Detector().Check(req.Text)
	corrected := mistakes.ApplyCorrections(req.Text, findings)
	s.logFindings(c, profile.ID, "self_check", findings)

	return c.Render(http.StatusOK, "mistakes_result", map[string]interface{}{
		"Text":      req.Text,
		"Findings":  findings,
		"Corrected": corrected,
	})
}

func (s *Server) handleWritingForm(c echo.Context) error {
	return c.Render(http.StatusOK, "writing", nil)
}

func (s *Server) handleWritingAnalyze(c echo.Context) error {
	var req writingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}
	ctx := c.Request().Context()

	feedback := s.deps.Writing.Analyze(req.Text, req.Register)
	s.logFindings(c, profile.ID, "writing", feedback.Findings)

	if err := s.deps.Metrics.AddToday(ctx, profile.ID, database.MetricWritingWords, float64(feedback.WordCount)); err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "writing_result", map[string]interface{}{
		"Text":     req.Text,
		"Feedback": feedback,
	})
}

// logFindings feeds detector hits into the error bank so they come back
// as review cards. Logging failures don't block the page.
func (s *Server) logFindings(c echo.Context, profileID int64, source string, findings []mistakes.Finding) {
	ctx := c.Request().Context()
	for _, f := range findings {
		examples, _ := json.Marshal(f.Examples)
		if _, err := s.deps.Mistakes.Log(ctx, &models.Mistake{
			ProfileID:     profileID,
			UserText:      f.Original,
			CorrectedText: f.Correction,
			ErrorType:     source,
			ErrorTag:      f.Tag,
			Pattern:       strings.ToLower(f.Original),
			Explanation:   f.Explanation,
			Examples:      string(examples),
			Confidence:    0.8,
		}); err != nil {
			s.log.Warn("failed to log mistake", zap.Error(err))
		}
	}
}
