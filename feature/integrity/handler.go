package integrity

import (
	"errors"

	"auction-aggregator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleGetIntegrity)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleGetIntegrity lists the available checks.
// @Summary List integrity checks
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Available checks"
// @Router /integrity [get]
func (h *Handler) HandleGetIntegrity(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "available",
		"checks": []string{"schema", "storage"},
	})
}

// HandleSchemaCheck verifies the pipeline tables.
// @Summary Check database schema
// @Description Verifies that the reference, media cache and aggregated tables exist with every column.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleStorageCheck verifies the snapshot bucket, creating it when fix=true.
// @Summary Check snapshot storage
// @Description Reports whether the snapshot bucket and object exist. With fix=true a missing bucket is created.
// @Tags integrity
// @Produce json
// @Param fix query bool false "Create the bucket when missing"
// @Success 200 {object} checks.StorageReport "Storage report"
// @Failure 503 {object} map[string]string "Storage disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.Context()

	if c.QueryBool("fix") {
		if err := h.service.FixStorage(ctx); err != nil {
			return h.storageError(c, l, err)
		}
		l.Info("Snapshot bucket ensured", zap.String("bucket", h.service.target.Bucket))
	}

	report, err := h.service.CheckStorage(ctx)
	if err != nil {
		return h.storageError(c, l, err)
	}
	return c.JSON(report)
}

func (h *Handler) storageError(c *fiber.Ctx, l *zap.Logger, err error) error {
	if errors.Is(err, ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	l.Error("Storage check failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

