package project

import (
	"errors"
	"net/url"

	"auto-reference/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for scenes and sync batches.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the project routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	scenes := app.Group("/scenes")
	scenes.Get("/", h.HandleListScenes)
	scenes.Post("/:name/open", h.HandleOpenScene)
	scenes.Post("/:name/close", h.HandleCloseScene)

	sync := app.Group("/sync")
	sync.Get("/cache", h.HandleGetCache)
	sync.Delete("/cache", h.HandleClearCache)
	sync.Get("/types", h.HandleTypes)
	sync.Post("/scene/:name", h.HandleSyncScene)
	sync.Post("/:kind", h.HandleSync)
}

// sceneParam returns the unescaped :name parameter so nested names can be sent as a%2Fb.
func sceneParam(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("name"))
}

func options(c *fiber.Ctx) Options {
	return Options{DryRun: c.QueryBool("dry_run", false)}
}

// HandleListScenes lists persisted and open scenes.
// @Summary List Scenes
// @Description Lists every persisted scene and every scene open in the workspace, flagging build scenes.
// @Tags scenes
// @Produce json
// @Success 200 {array} SceneInfo
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scenes [get]
func (h *Handler) HandleListScenes(c *fiber.Ctx) error {
	infos, err := h.service.Scenes(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list scenes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if infos == nil {
		infos = []SceneInfo{}
	}
	return c.JSON(infos)
}

// HandleOpenScene opens a persisted scene in the workspace.
// @Summary Open Scene
// @Description Loads a persisted scene into the workspace so it takes part in open-scene syncs.
// @Tags scenes
// @Produce json
// @Param name path string true "Scene name (URL encoded)"
// @Success 200 {object} SceneInfo
// @Failure 404 {object} map[string]string "Scene not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scenes/{name}/open [post]
func (h *Handler) HandleOpenScene(c *fiber.Ctx) error {
	name, err := sceneParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scene name"})
	}

	sc, err := h.service.Open(c.UserContext(), name)
	if err != nil {
		if IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to open scene", zap.String("scene", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(SceneInfo{
		Name:      sc.Name,
		Persisted: true,
		Open:      true,
		Build:     h.service.manifest.IsBuildScene(sc.Name),
	})
}

// HandleCloseScene closes an open scene.
// @Summary Close Scene
// @Description Removes a scene from the workspace. Unsaved changes are discarded.
// @Tags scenes
// @Produce json
// @Param name path string true "Scene name (URL encoded)"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Scene not open"
// @Router /scenes/{name}/close [post]
func (h *Handler) HandleCloseScene(c *fiber.Ctx) error {
	name, err := sceneParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scene name"})
	}
	if err := h.service.Close(name); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "closed", "scene": sceneName(name)})
}

// HandleSync runs a batch over a graph kind.
// @Summary Sync Scenes
// @Description Runs auto-reference over the open, persisted or build scenes. Persisted and build batches save modified scenes unless dry_run is set.
// @Tags sync
// @Produce json
// @Param kind path string true "Graph kind" Enums(open, persisted, build)
// @Param dry_run query bool false "Do not save modified scenes"
// @Success 200 {object} BatchResult
// @Failure 400 {object} map[string]string "Unknown kind"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/{kind} [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	kind, err := ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering sync", zap.String("kind", string(kind)))

	res, err := h.service.Sync(c.UserContext(), kind, options(c))
	if err != nil {
		l.Error("Sync failed", zap.String("kind", string(kind)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

// HandleSyncScene runs a batch over one scene.
// @Summary Sync Scene
// @Description Runs auto-reference over a single scene, preferring its open copy.
// @Tags sync
// @Produce json
// @Param name path string true "Scene name (URL encoded)"
// @Param dry_run query bool false "Do not save the scene"
// @Success 200 {object} BatchResult
// @Failure 404 {object} map[string]string "Scene not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/scene/{name} [post]
func (h *Handler) HandleSyncScene(c *fiber.Ctx) error {
	name, err := sceneParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scene name"})
	}

	res, err := h.service.SyncScene(c.UserContext(), name, options(c))
	if err != nil {
		if errors.Is(err, ErrSceneNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Sync failed", zap.String("scene", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

// HandleGetCache reports the metadata cache state.
// @Summary Metadata Cache
// @Description Returns whether type metadata caching is enabled and how many types are cached.
// @Tags sync
// @Produce json
// @Success 200 {object} CacheInfo
// @Router /sync/cache [get]
func (h *Handler) HandleGetCache(c *fiber.Ctx) error {
	return c.JSON(h.service.Cache())
}

// HandleClearCache clears the metadata cache.
// @Summary Clear Metadata Cache
// @Description Drops every cached type description so the next sync rebuilds it.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]int
// @Router /sync/cache [delete]
func (h *Handler) HandleClearCache(c *fiber.Ctx) error {
	cleared := h.service.ClearCache()
	logger.WithRayID(h.service.logger, c).Info("Metadata cache cleared", zap.Int("types", cleared))
	return c.JSON(fiber.Map{"cleared": cleared})
}

// HandleTypes reports the sync metadata of every registered component type.
// @Summary Component Types
// @Description Lists annotated fields, callbacks and build diagnostics of every registered component type.
// @Tags sync
// @Produce json
// @Success 200 {array} autoref.TypeSummary
// @Router /sync/types [get]
func (h *Handler) HandleTypes(c *fiber.Ctx) error {
	return c.JSON(h.service.Types())
}
