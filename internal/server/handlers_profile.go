package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eugendimant/vivalingo/pkg/models"
)

type settingsRequest struct {
	Name              string `form:"name" validate:"required"`
	Level             string `form:"level" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	WeeklyGoal        int    `form:"weekly_goal" validate:"required,min=1,max=7"`
	FocusAreas        string `form:"focus_areas"` // comma-separated
	DialectPreference string `form:"dialect_preference" validate:"omitempty,oneof=Spain LatinAmerica Rioplatense"`
	GradingMode       string `form:"grading_mode" validate:"required,oneof=strict balanced lenient"`
	AccentTolerance   bool   `form:"accent_tolerance"`
}

type createProfileRequest struct {
	Name  string `form:"name" validate:"required"`
	Level string `form:"level" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
}

func (s *Server) handleSettings(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}
	all, err := s.deps.Profiles.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "settings", map[string]interface{}{
		"Profile":    profile,
		"Profiles":   all,
		"FocusAreas": strings.Join(profile.FocusAreaList(), ", "),
	})
}

func (s *Server) handleSettingsSave(c echo.Context) error {
	var req settingsRequest
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

	profile.Name = req.Name
	profile.Level = req.Level
	profile.WeeklyGoal = req.WeeklyGoal
	profile.FocusAreas = encodeFocusAreas(req.FocusAreas)
	if req.DialectPreference != "" {
		profile.DialectPreference = req.DialectPreference
	}
	profile.GradingMode = req.GradingMode
	profile.AccentTolerance = req.AccentTolerance

	if err := s.deps.Profiles.UpdateSettings(c.Request().Context(), profile); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/settings")
}

func (s *Server) handleProfileCreate(c echo.Context) error {
	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := s.deps.Profiles.Create(c.Request().Context(), &models.Profile{
		Name:              req.Name,
		Level:             req.Level,
		WeeklyGoal:        6,
		FocusAreas:        "[]",
		DialectPreference: "Spain",
		GradingMode:       "balanced",
		AccentTolerance:   true,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/settings")
}

func (s *Server) handleProfileActivate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad profile id")
	}
	if err := s.deps.Profiles.SetActive(c.Request().Context(), id); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/settings")
}

func encodeFocusAreas(raw string) string {
	var areas []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			areas = append(areas, a)
		}
	}
	if len(areas) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(areas)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
