package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eugendimant/vivalingo/internal/grading"
	"github.com/eugendimant/vivalingo/internal/review"
)

type startReviewRequest struct {
	Mode   string `form:"mode" validate:"required,oneof=vocab grammar verbs mistakes mixed"`
	Length int    `form:"length" validate:"required,min=5,max=30"`
}

type answerRequest struct {
	Answer string `form:"answer" validate:"required"`
}

type rateRequest struct {
	Quality int `form:"quality" validate:"min=0,max=5"`
}

func (s *Server) handleHome(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}
	ctx := c.Request().Context()

	due, err := s.deps.Progress.CountDue(ctx, profile.ID)
	if err != nil {
		return s.fail(c, err)
	}
	streak, err := s.deps.Metrics.Streak(ctx, profile.ID)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "home", map[string]interface{}{
		"Profile": profile,
		"Due":     due,
		"Streak":  streak,
	})
}

func (s *Server) handleReviewForm(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}
	due, err := s.deps.Progress.CountDue(c.Request().Context(), profile.ID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Render(http.StatusOK, "review_form", map[string]interface{}{
		"Profile": profile,
		"Due":     due,
	})
}

func (s *Server) handleReviewStart(c echo.Context) error {
	var req startReviewRequest
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

	session, err := s.deps.Reviews.Start(
		c.Request().Context(),
		profile.ID,
		req.Mode,
		req.Length,
		grading.Mode(profile.GradingMode),
	)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/review/session/%s", session.ID))
}

func (s *Server) handleReviewCard(c echo.Context) error {
	session, err := s.deps.Reviews.Get(c.Param("id"))
	if errors.Is(err, review.ErrSessionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	if err != nil {
		return s.fail(c, err)
	}

	card := session.Current()
	if card == nil {
		return c.Render(http.StatusOK, "review_empty", map[string]interface{}{
			"Mode": session.Mode,
		})
	}

	return c.Render(http.StatusOK, "review_card", map[string]interface{}{
		"Session":  session,
		"Card":     card,
		"Position": session.Index + 1,
		"Total":    len(session.Cards),
		// mistake cards are show-then-rate, the rest take typed answers
		"Rated": card.Kind == review.KindMistake,
	})
}

func (s *Server) handleReviewAnswer(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.deps.Reviews.SubmitAnswer(c.Request().Context(), c.Param("id"), req.Answer)
	if errors.Is(err, review.ErrSessionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	if err != nil {
		return s.fail(c, err)
	}
	return s.renderAnswerResult(c, result)
}

func (s *Server) handleReviewRate(c echo.Context) error {
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.deps.Reviews.SubmitRating(c.Request().Context(), c.Param("id"), req.Quality)
	if errors.Is(err, review.ErrSessionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	if err != nil {
		return s.fail(c, err)
	}
	return s.renderAnswerResult(c, result)
}

func (s *Server) renderAnswerResult(c echo.Context, result *review.AnswerResult) error {
	return c.Render(http.StatusOK, "review_result", map[string]interface{}{
		"SessionID": c.Param("id"),
		"Result":    result,
	})
}
