package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

type TranslationHandler struct {
	service ports.TranslationService
}

func NewTranslationHandler(service ports.TranslationService) *TranslationHandler {
	return &TranslationHandler{service: service}
}

type translateRequest struct {
	ReportID   string `json:"reportId" validate:"required"`
	TargetLang string `json:"targetLang"`
}

// Export handles POST /reports/translate: translates a report and renders a
// bilingual PDF, returning a retrieval URL for it.
//
// @Summary      Translate a report and export it as PDF
// @Tags         translation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      translateRequest  true  "Report id and target language"
// @Success      200   {object}  ports.TranslationExport
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /reports/translate [post]
func (h *TranslationHandler) Export(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	export, err := h.service.ExportPDF(c.Request().Context(), actor, req.ReportID, req.TargetLang)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, export)
}

// Translate handles GET /reports/translate/:reportId: on-demand translation
// without a PDF. The target language comes from the query, falling back to
// the client's preferred language.
//
// @Summary      Translate a report on demand
// @Tags         translation
// @Produce      json
// @Security     BearerAuth
// @Param        reportId    path      string  true   "Report id"
// @Param        targetLang  query     string  false  "Target language code"
// @Success      200         {object}  ports.TranslationResult
// @Failure      400         {object}  map[string]string
// @Failure      422         {object}  map[string]string
// @Router       /reports/translate/{reportId} [get]
func (h *TranslationHandler) Translate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.Translate(c.Request().Context(), actor, c.Param("reportId"), c.QueryParam("targetLang"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
