package history

import (
	"errors"

	"auto-reference/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
}

// HandleList lists recorded sync runs.
// @Summary List Sync Runs
// @Description Lists recorded sync batches, newest first, without their diagnostics.
// @Tags history
// @Produce json
// @Param kind query string false "Only runs of this kind" Enums(open, persisted, build, scene)
// @Param limit query int false "Maximum runs returned (default 20, max 200)"
// @Param offset query int false "Runs skipped"
// @Success 200 {array} SyncRun
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	f := Filter{
		Kind:   c.Query("kind"),
		Limit:  c.QueryInt("limit", defaultLimit),
		Offset: c.QueryInt("offset", 0),
	}

	runs, err := h.service.List(c.UserContext(), f)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list sync runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if runs == nil {
		runs = []SyncRun{}
	}
	return c.JSON(runs)
}

// HandleGet returns one sync run with its diagnostics.
// @Summary Get Sync Run
// @Description Returns a recorded sync batch and every diagnostic it produced.
// @Tags history
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} SyncRun
// @Failure 404 {object} map[string]string "Run not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	run, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to get sync run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(run)
}
