package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jugendhilfe/casework-system/internal/core/ports"
	"github.com/jugendhilfe/casework-system/internal/infrastructure/storage"
)

type ReportHandler struct {
	service ports.ReportService
	spool   *storage.Spool
}

func NewReportHandler(service ports.ReportService, spool *storage.Spool) *ReportHandler {
	return &ReportHandler{service: service, spool: spool}
}

type createReportRequest struct {
	ClientID   string `json:"clientId" validate:"required"`
	ReportText string `json:"reportText" validate:"required"`
}

type updateReportRequest struct {
	ReportText string `json:"reportText" validate:"required"`
}

// Create handles POST /reports (Fachkraft).
//
// @Summary      Create a text report for a client
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Report text"
// @Success      201   {object}  ports.ReportView
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.CreateTextReport(c.Request().Context(), ports.CreateTextReportInput{
		Actor:      actor,
		ClientID:   req.ClientID,
		ReportText: req.ReportText,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// Upload handles POST /reports/document (Fachkraft): multipart upload of a
// scanned document, optionally OCR'd.
//
// @Summary      Upload a document for a client
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        document    formData  file    true   "Document file"
// @Param        clientId    formData  string  true   "Client id"
// @Param        content     formData  string  false  "Description"
// @Param        isDocument  formData  bool    false  "Run text extraction"
// @Success      201  {object}  ports.ReportView
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /reports/document [post]
func (h *ReportHandler) Upload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file attached")
	}
	clientID := c.FormValue("clientId")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clientId is required")
	}

	isDocument := true
	if raw := c.FormValue("isDocument"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid isDocument value")
		}
		isDocument = parsed
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	tempPath, err := h.spool.Save(src, fileHeader.Filename)
	if err != nil {
		return err
	}

	view, err := h.service.UploadDocument(c.Request().Context(), ports.UploadDocumentInput{
		Actor:      actor,
		ClientID:   clientID,
		Content:    c.FormValue("content"),
		IsDocument: isDocument,
		File: ports.FileUpload{
			TempPath:     tempPath,
			OriginalName: fileHeader.Filename,
			ContentType:  fileHeader.Header.Get("Content-Type"),
			Size:         fileHeader.Size,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// List handles GET /reports/:clientId: all reports for a client, newest
// first.
func (h *ReportHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListClientReports(c.Request().Context(), actor, c.Param("clientId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Update handles PUT /reports/:reportId.
//
// @Summary      Update a report's text
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reportId  path      string               true  "Report id"
// @Param        body      body      updateReportRequest  true  "New text"
// @Success      200       {object}  ports.ReportView
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /reports/{reportId} [put]
func (h *ReportHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.UpdateReport(c.Request().Context(), actor, c.Param("reportId"), req.ReportText)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /reports/:reportId.
func (h *ReportHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteReport(c.Request().Context(), actor, c.Param("reportId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Download handles GET /reports/download/:reportId: a short-lived retrieval
// URL for the stored document.
func (h *ReportHandler) Download(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	link, err := h.service.DownloadReference(c.Request().Context(), actor, c.Param("reportId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, link)
}
