package auctions

import (
	"errors"

	"auction-aggregator/core/logger"
	"auction-aggregator/feature/auctions/export"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for auction listings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the auction routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/auctions")
	group.Get("/", h.HandleListings)
	group.Get("/snapshot", h.HandleSnapshot)
}

// HandleListings returns the latest aggregated listings.
// @Summary List auction listings
// @Description Latest aggregated listings with a non-zero quantity, sorted by flipping score.
// @Tags auctions
// @Produce json
// @Param region query string false "Region prefix (e.g. 'eu')"
// @Param gameVersion query string false "Game version (e.g. 'Classic')"
// @Param realmId query int false "Realm id"
// @Param itemId query int false "Item id"
// @Param minScore query int false "Minimum flipping score (0-999)"
// @Param limit query int false "Maximum number of listings"
// @Success 200 {array} Listing "Listings"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /auctions [get]
func (h *Handler) HandleListings(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var q Query
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid query parameters: " + err.Error(),
		})
	}
	if q.Limit < 0 || q.MinScore < 0 || q.RealmID < 0 || q.ItemID < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameters must not be negative",
		})
	}

	listings, err := h.service.Listings(c.Context(), q)
	if err != nil {
		l.Error("Listing query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(listings)
}

// HandleSnapshot returns the latest exported snapshot.
// @Summary Get latest snapshot
// @Description The aggregated dataset as exported by the last successful run.
// @Tags auctions
// @Produce json
// @Success 200 {object} export.Snapshot "Snapshot"
// @Failure 404 {object} map[string]string "No snapshot"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /auctions/snapshot [get]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.Snapshot(c.Context())
	if err != nil {
		if errors.Is(err, export.ErrNoSnapshot) || errors.Is(err, ErrSnapshotsDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Snapshot read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(snap)
}
