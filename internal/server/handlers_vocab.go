package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eugendimant/vivalingo/internal/content"
	"github.com/eugendimant/vivalingo/internal/excel"
	"github.com/eugendimant/vivalingo/pkg/models"
)

type addVocabRequest struct {
	Term         string `form:"term" validate:"required"`
	Meaning      string `form:"meaning" validate:"required"`
	Example      string `form:"example"`
	Domain       string `form:"domain"`
	Register     string `form:"register" validate:"omitempty,oneof=formal neutral informal"`
	PartOfSpeech string `form:"part_of_speech"`
	Collocations string `form:"collocations"` // semicolon-separated
}

func (s *Server) handleVocabList(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}

	domain := c.QueryParam("domain")
	status := c.QueryParam("status")
	items, err := s.deps.Vocab.List(c.Request().Context(), profile.ID, domain, status)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "vocab", map[string]interface{}{
		"Profile": profile,
		"Items":   items,
		"Domains": content.Domains,
		"Domain":  domain,
		"Status":  status,
	})
}

func (s *Server) handleVocabAdd(c echo.Context) error {
	var req addVocabRequest
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

	item := &models.VocabItem{
		ProfileID:    profile.ID,
		Term:         strings.TrimSpace(req.Term),
		Meaning:      strings.TrimSpace(req.Meaning),
		Example:      strings.TrimSpace(req.Example),
		Domain:       req.Domain,
		Register:     req.Register,
		PartOfSpeech: req.PartOfSpeech,
		Collocations: encodeCollocations(req.Collocations),
	}
	if err := s.deps.Vocab.Upsert(c.Request().Context(), item); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/vocab")
}

func (s *Server) handleVocabImport(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}

	upload, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	src, err := upload.Open()
	if err != nil {
		return s.fail(c, err)
	}
	defer src.Close()

	// keep the original extension so the importer picks the right format
	tmpPath := filepath.Join(s.deps.DataDir, "import_upload"+filepath.Ext(upload.Filename))
	dst, err := os.Create(tmpPath)
	if err != nil {
		return s.fail(c, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return s.fail(c, err)
	}
	dst.Close()
	defer os.Remove(tmpPath)

	result, err := s.deps.Importer.Import(c.Request().Context(), profile.ID, excel.DefaultImportConfig(tmpPath))
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "vocab_import", map[string]interface{}{
		"Result":   result,
		"Filename": upload.Filename,
	})
}

func (s *Server) handleVocabExport(c echo.Context) error {
	profile, err := s.activeProfile(c)
	if err != nil {
		return s.fail(c, err)
	}

	path := filepath.Join(s.deps.DataDir, "vocab_export.xlsx")
	if err := s.deps.Importer.Export(c.Request().Context(), profile.ID, path); err != nil {
		return s.fail(c, err)
	}
	return c.Attachment(path, "vocabulario.xlsx")
}

func encodeCollocations(raw string) string {
	var parts []string
	for _, p := range strings.Split(raw, ";") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(parts)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
