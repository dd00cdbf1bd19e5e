package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type missionResponseRequest struct {
	Response string `form:"response" validate:"required"`
}

func (s *Server) handleMissionToday(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}
	ctx := c.Request().Context()

	mission, err := s.deps.Missions.Today(ctx, profile.ID)
	if err != nil {
		return s.fail(c, err)
	}
	history, err := s.deps.Missions.History(ctx, profile.ID, 7)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "missions", map[string]interface{}{
		"Profile":     profile,
		"Mission":     mission,
		"Constraints": mission.ConstraintList(),
		"History":     history,
	})
}

func (s *Server) handleMissionRespond(c echo.Context) error {
	var req missionResponseRequest
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

	outcome, err := s.deps.Missions.Respond(c.Request().Context(), profile.ID, req.Response)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.Render(http.StatusOK, "mission_result", map[string]interface{}{
		"Outcome": outcome,
	})
}

func (s *Server) handleProgress(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}

	dash, err := s.deps.Progress.Dashboard(c.Request().Context(), profile.ID, profile.WeeklyGoal)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "progress", map[string]interface{}{
		"Profile":   profile,
		"Dashboard": dash,
	})
}
