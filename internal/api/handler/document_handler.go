package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/beaconhr/onboarding-system/internal/api/metrics"
	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// DocumentHandler serves document upload, review download and preview.
type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// ListMine returns the caller's documents, newest first.
//
// @Summary      List my documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   docDetail
// @Failure      401  {object}  errorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocDetails(docs))
}

// Upload stores a new document for the caller.
//
// @Summary      Upload a document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        type  formData  string  true  "Document type"
// @Param        file  formData  file    true  "The file"
// @Success      201   {object}  docDetail
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	docType := domain.DocumentType(c.FormValue("type"))
	upload, closeFn, err := formFileUpload(c)
	if err != nil {
		return err
	}
	defer closeFn()

	doc, err := h.service.Upload(c.Request().Context(), userID, docType, upload)
	if err != nil {
		return err
	}

	metrics.DocumentsUploadedTotal.WithLabelValues(string(doc.Type)).Inc()
	return c.JSON(http.StatusCreated, toDocDetail(doc))
}

// Reupload replaces the file on the caller's rejected document.
//
// @Summary      Re-upload a rejected document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Document id"
// @Param        file  formData  file    true  "The replacement file"
// @Success      200   {object}  docDetail
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/documents/{id} [put]
func (h *DocumentHandler) Reupload(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	upload, closeFn, err := formFileUpload(c)
	if err != nil {
		return err
	}
	defer closeFn()

	doc, err := h.service.Reupload(c.Request().Context(), userID, c.Param("id"), upload)
	if err != nil {
		return err
	}

	metrics.DocumentsUploadedTotal.WithLabelValues(string(doc.Type)).Inc()
	return c.JSON(http.StatusOK, toDocDetail(doc))
}

// Download streams a document as an attachment. Owner or HR only.
//
// @Summary      Download a document
// @Tags         documents
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Document id"
// @Success      200
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/documents/download/{id} [get]
func (h *DocumentHandler) Download(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	doc, path, err := h.service.Fetch(c.Request().Context(), userID, role, c.Param("id"))
	if err != nil {
		return err
	}
	return c.Attachment(path, doc.FileName)
}

// Preview streams a document inline for in-browser viewing. Owner or HR only.
//
// @Summary      Preview a document inline
// @Tags         documents
// @Security     BearerAuth
// @Param        id  path  string  true  "Document id"
// @Success      200
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/documents/preview/{id} [get]
func (h *DocumentHandler) Preview(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	doc, path, err := h.service.Fetch(c.Request().Context(), userID, role, c.Param("id"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, contentTypeFor(doc.FileName))
	c.Response().Header().Set(echo.HeaderContentDisposition, "inline")
	return c.File(path)
}

// ListByEmployee returns a given employee's documents for the HR detail view.
//
// @Summary      List an employee's documents
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  path  string  true  "Employee id"
// @Success      200  {array}   docDetail
// @Failure      404  {object}  errorResponse
// @Router       /api/documents/employee/{employeeId} [get]
func (h *DocumentHandler) ListByEmployee(c echo.Context) error {
	docs, err := h.service.ListByEmployee(c.Request().Context(), c.Param("employeeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocDetails(docs))
}

// formFileUpload pulls the multipart "file" part into a ports.FileUpload.
// The returned close function must be deferred by the caller.
func formFileUpload(c echo.Context) (ports.FileUpload, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return ports.FileUpload{}, nil, domain.ErrFileRequired
	}
	src, err := fh.Open()
	if err != nil {
		return ports.FileUpload{}, nil, err
	}
	return ports.FileUpload{
		Name:    fh.Filename,
		Size:    fh.Size,
		Content: src,
	}, func() { _ = src.Close() }, nil
}

// contentTypeFor maps a file extension to the preview content type. Anything
// outside the known set falls back to octet-stream.
func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return echo.MIMEOctetStream
	}
}
