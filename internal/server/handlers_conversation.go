package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type startConversationRequest struct {
	Scenario int `form:"scenario" validate:"min=0"`
}

type conversationMessageRequest struct {
	Message string `form:"message" validate:"required"`
}

func (s *Server) handleConversationList(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}

	recent, err := s.deps.Conversations.List(c.Request().Context(), profile.ID, 10)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "conversation_list", map[string]interface{}{
		"Profile":   profile,
		"Scenarios": s.deps.Roleplay.Scenarios(),
		"Recent":    recent,
	})
}

func (s *Server) handleConversationStart(c echo.Context) error {
	var req startConversationRequest
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

	conv, err := s.deps.Roleplay.Start(c.Request().Context(), profile.ID, req.Scenario)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/conversation/%d", conv.ID))
}

func (s *Server) handleConversationView(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad conversation id")
	}

	conv, err := s.deps.Conversations.GetByID(c.Request().Context(), profile.ID, id)
	if err != nil {
		return s.fail(c, err)
	}
	if conv == nil {
		return echo.NewHTTPError(http.StatusNotFound, "conversation not found")
	}

	return c.Render(http.StatusOK, "conversation", map[string]interface{}{
		"Conversation": conv,
		"Messages":     conv.MessageList(),
		"Targets":      conv.HiddenTargetList(),
		"Achieved":     conv.AchievedTargetList(),
	})
}

func (s *Server) handleConversationMessage(c echo.Context) error {
	var req conversationMessageRequest
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

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad conversation id")
	}

	if _, err := s.deps.Roleplay.Respond(c.Request().Context(), profile.ID, id, req.Message); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/conversation/%d", id))
}

func (s *Server) handleConversationFinish(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad conversation id")
	}

	report, err := s.deps.Roleplay.Finish(c.Request().Context(), profile.ID, id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "conversation_report", map[string]interface{}{
		"Report": report,
	})
}
