package files

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"filevault/core/logger"
	"filevault/core/response"
	"filevault/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for files.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the files routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/files")
	group.Get("/", h.HandleList)
	group.Put("/", h.HandleUpload)
	group.Delete("/", h.HandleDelete)
	group.Get("/download", h.HandleDownload)
	group.Get("/metadata", h.HandleMetadata)
	group.Get("/exists", h.HandleExists)
	group.Post("/batch-delete", h.HandleBatchDelete)
	group.Post("/sign", h.HandleSign)
}

// HandleUpload stores the request body.
// @Summary Upload File
// @Description Stores the raw request body under the given key in a single request.
// @Tags files
// @Accept octet-stream
// @Produce json
// @Param key query string true "Object key"
// @Param X-Storage-Class header string false "Storage class"
// @Param X-Encryption header string false "AES256 or none"
// @Success 201 {object} response.Envelope{data=storage.UploadResult}
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /files [put]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	key := c.Query("key")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("key", key))

	result, err := h.service.Upload(c.Context(), key, c.Body(), uploadOptions(c))
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("File uploaded", zap.Int64("size", result.Size))
	return response.Created(c, result)
}

// HandleDownload streams an object.
// @Summary Download File
// @Description Returns the object body. Supports a single Range and the If-Match, If-None-Match, If-Modified-Since and If-Unmodified-Since headers.
// @Tags files
// @Produce octet-stream
// @Param key query string true "Object key"
// @Param Range header string false "bytes=start-end"
// @Success 200 {file} binary
// @Success 206 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /files/download [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	key := c.Query("key")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("key", key))

	opts, err := downloadOptions(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	result, err := h.service.Download(c.Context(), key, opts)
	if err != nil {
		return h.fail(c, l, err)
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	if result.ETag != "" {
		c.Set(fiber.HeaderETag, `"`+result.ETag+`"`)
	}
	if !result.LastModified.IsZero() {
		c.Set(fiber.HeaderLastModified, result.LastModified.UTC().Format(http.TimeFormat))
	}
	for k, v := range result.Metadata {
		c.Set("X-Meta-"+k, v)
	}
	c.Set("X-Download-Time", strconv.FormatInt(result.Elapsed.Milliseconds(), 10)+"ms")

	c.Set(fiber.HeaderAcceptRanges, "bytes")

	status := fiber.StatusOK
	if result.ContentRange != "" {
		c.Set(fiber.HeaderContentRange, result.ContentRange)
		status = fiber.StatusPartialContent
	}
	return c.Status(status).Send(result.Body)
}

// HandleDelete removes an object.
// @Summary Delete File
// @Tags files
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} response.Envelope{data=storage.DeleteResult}
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /files [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	key := c.Query("key")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("key", key))

	result, err := h.service.Delete(c.Context(), key)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("File deleted")
	return response.Message(c, "File deleted", result)
}

// HandleBatchDelete removes many objects.
// @Summary Batch Delete Files
// @Description Deletes up to any number of keys in chunks of 1000. Per-object failures are reported in the result.
// @Tags files
// @Accept json
// @Produce json
// @Param request body BatchDeleteRequest true "Keys to delete"
// @Success 200 {object} response.Envelope{data=storage.BatchDeleteResult}
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /files/batch-delete [post]
func (h *Handler) HandleBatchDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req BatchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := h.service.BatchDelete(c.Context(), req.Keys)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Batch delete finished",
		zap.Int("deleted", result.DeletedCount),
		zap.Int("failed", len(result.Errors)))
	return response.OK(c, result)
}

// HandleList lists one page of objects.
// @Summary List Files
// @Tags files
// @Produce json
// @Param prefix query string false "Key prefix"
// @Param delimiter query string false "Grouping delimiter"
// @Param start_after query string false "Start listing after this key"
// @Param continuation_token query string false "Token from a previous page"
// @Param max_keys query int false "Page size, at most 1000"
// @Param fetch_owner query boolean false "Include object owners"
// @Success 200 {object} response.Envelope{data=storage.ListResult}
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /files [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts, err := listOptions(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	result, err := h.service.List(c.Context(), opts)
	if err != nil {
		return h.fail(c, l, err)
	}
	return response.OK(c, result)
}

// HandleMetadata returns object metadata.
// @Summary Get File Metadata
// @Description Returns metadata; exists is false when the object is absent.
// @Tags files
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} response.Envelope{data=storage.ObjectMetadata}
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /files/metadata [get]
func (h *Handler) HandleMetadata(c *fiber.Ctx) error {
	key := c.Query("key")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("key", key))

	result, err := h.service.Metadata(c.Context(), key)
	if err != nil {
		return h.fail(c, l, err)
	}
	return response.OK(c, result)
}

// HandleExists reports presence and size.
// @Summary Check File Exists
// @Tags files
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} response.Envelope{data=Presence}
// @Failure 400 {object} response.Envelope
// @Router /files/exists [get]
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return response.BadRequest(c, "key is required")
	}
	return response.OK(c, h.service.Presence(c.Context(), key))
}

// HandleSign creates a signed URL.
// @Summary Sign URL
// @Description Creates a time-limited URL for reading or writing one object. expires_in is in seconds and defaults to 3600.
// @Tags files
// @Accept json
// @Produce json
// @Param request body SignRequest true "Sign request"
// @Success 200 {object} response.Envelope{data=storage.SignedURL}
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /files/sign [post]
func (h *Handler) HandleSign(c *fiber.Ctx) error {
	var req SignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	l := logger.WithRayID(h.service.logger, c).With(zap.String("key", req.Key))

	maxSeconds := int64(storage.MaxSignedURLExpiry / time.Second)
	if req.ExpiresIn < 0 || req.ExpiresIn > maxSeconds {
		return h.fail(c, l, &storage.ValidationError{
			Op:     storage.OpSign,
			Field:  "expires_in",
			Reason: fmt.Sprintf("must be between 0 and %d seconds", maxSeconds),
		})
	}
	expiry := time.Duration(req.ExpiresIn) * time.Second
	result, err := h.service.Sign(c.Context(), req.Key, storage.SignOperation(req.Operation), expiry)
	if err != nil {
		return h.fail(c, l, err)
	}
	return response.OK(c, result)
}

// fail maps a facade error onto a status code.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case storage.IsValidation(err):
		return response.BadRequest(c, err.Error())
	case storage.IsNotFound(err):
		return response.NotFound(c, err.Error())
	case storage.IsAccessDenied(err):
		return response.Forbidden(c, err.Error())
	}

	var upstream minio.ErrorResponse
	if errors.As(err, &upstream) {
		switch upstream.StatusCode {
		case fiber.StatusNotModified:
			return c.SendStatus(fiber.StatusNotModified)
		case fiber.StatusPreconditionFailed, fiber.StatusRequestedRangeNotSatisfiable:
			return response.Error(c, upstream.StatusCode, err.Error())
		}
	}

	l.Error("Storage request failed", zap.String("op", string(storage.OpOf(err))), zap.Error(err))
	return response.BadGateway(c, err.Error())
}
