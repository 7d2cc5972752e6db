package inventory

import (
	"errors"

	"brandstock/core/logger"
	"brandstock/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the cached inventory view and the mutation surface.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleAddItem)
	group.Patch("/:id", h.HandleUpdateItem)
	group.Post("/:id/toggle", h.HandleToggle)
	group.Delete("/:id", h.HandleRemoveItem)
	group.Get("/:id/sizes", h.HandleListSizes)
	group.Post("/:id/sizes", h.HandleAddSize)
	group.Patch("/:id/sizes/:sizeId", h.HandleUpdateSize)
	group.Delete("/:id/sizes/:sizeId", h.HandleRemoveSize)
	group.Post("/:id/share", h.HandleShare)
	group.Delete("/:id/share", h.HandleUnshare)
}

// HandleList returns the sorted cache view.
// @Summary List inventory
// @Description Returns the cached item set, active items first, then alphabetical.
// @Tags inventory
// @Produce json
// @Success 200 {array} models.Item "Sorted items"
// @Router /inventory [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	view := h.service.Cache().SortedView()
	resp := fiber.Map{"items": view}
	if err := h.service.LoadError(); err != nil {
		// Stale view: the last reload failed and this is whatever survived.
		resp["stale"] = true
	}
	return c.JSON(resp)
}

// HandleAddItem creates a new item for the current brand.
// @Summary Add item
// @Tags inventory
// @Accept json
// @Produce json
// @Success 201 {object} models.Item "Created item"
// @Failure 400 {object} map[string]string "Missing acting user or bad body"
// @Router /inventory [post]
func (h *Handler) HandleAddItem(c *fiber.Ctx) error {
	var in NewItem
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	item, err := h.service.AddItem(c.Context(), in)
	if err != nil {
		return h.fail(c, "Item creation failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem patches an item's editable details.
// @Summary Update item details
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.Item "Canonical item"
// @Router /inventory/{id} [patch]
func (h *Handler) HandleUpdateItem(c *fiber.Ctx) error {
	var patch models.ItemPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	item, err := h.service.UpdateItemDetails(c.Context(), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, "Item update failed", err)
	}
	return c.JSON(item)
}

// HandleToggle flips the item's active flag. Fire-and-forget: a remote
// failure has already been reverted and notified by the time this returns.
// @Summary Toggle item status
// @Tags inventory
// @Param id path string true "Item ID"
// @Success 202 "Accepted"
// @Router /inventory/{id}/toggle [post]
func (h *Handler) HandleToggle(c *fiber.Ctx) error {
	if err := h.service.ToggleActive(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "Status toggle failed", err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// HandleRemoveItem deletes an item and its image.
// @Summary Remove item
// @Tags inventory
// @Param id path string true "Item ID"
// @Success 202 "Accepted"
// @Router /inventory/{id} [delete]
func (h *Handler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "Item removal failed", err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// HandleListSizes returns the remote size rows for an item.
// @Summary List item sizes
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {array} models.Size "Sizes"
// @Router /inventory/{id}/sizes [get]
func (h *Handler) HandleListSizes(c *fiber.Ctx) error {
	sizes, err := h.service.FetchSizes(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Size fetch failed", err)
	}
	return c.JSON(sizes)
}

// HandleAddSize appends a size record to an item.
// @Summary Add size
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Success 201 {object} models.Size "Created size"
// @Router /inventory/{id}/sizes [post]
func (h *Handler) HandleAddSize(c *fiber.Ctx) error {
	var in NewSize
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	size, err := h.service.AddSize(c.Context(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, "Size creation failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(size)
}

// HandleUpdateSize replaces a size record's fields.
// @Summary Update size
// @Tags inventory
// @Accept json
// @Param id path string true "Item ID"
// @Param sizeId path string true "Size ID"
// @Success 204 "Updated"
// @Router /inventory/{id}/sizes/{sizeId} [patch]
func (h *Handler) HandleUpdateSize(c *fiber.Ctx) error {
	var in NewSize
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	size := models.Size{
		ID:                c.Params("sizeId"),
		ItemID:            c.Params("id"),
		Label:             in.Label,
		OriginalQuantity:  in.OriginalQuantity,
		AvailableQuantity: in.AvailableQuantity,
		InCirculation:     in.InCirculation,
	}
	if err := h.service.UpdateSize(c.Context(), size); err != nil {
		return h.fail(c, "Size update failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRemoveSize deletes a size record.
// @Summary Remove size
// @Tags inventory
// @Param id path string true "Item ID"
// @Param sizeId path string true "Size ID"
// @Success 202 "Accepted"
// @Router /inventory/{id}/sizes/{sizeId} [delete]
func (h *Handler) HandleRemoveSize(c *fiber.Ctx) error {
	if err := h.service.RemoveSize(c.Context(), c.Params("id"), c.Params("sizeId")); err != nil {
		return h.fail(c, "Size removal failed", err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// HandleShare links an item into the current brand's view.
// @Summary Share item
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.Item "Shared item"
// @Router /inventory/{id}/share [post]
func (h *Handler) HandleShare(c *fiber.Ctx) error {
	// The item being shared usually belongs to another brand, so it is
	// resolved remotely rather than from the cache.
	existing, err := h.service.remote.FetchItem(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Share failed", err)
	}

	item, err := h.service.AddSharedItem(c.Context(), existing)
	if err != nil {
		return h.fail(c, "Share failed", err)
	}
	return c.JSON(item)
}

// HandleUnshare removes the current brand's link to an item.
// @Summary Stop sharing item
// @Tags inventory
// @Param id path string true "Item ID"
// @Success 202 "Accepted"
// @Router /inventory/{id}/share [delete]
func (h *Handler) HandleUnshare(c *fiber.Ctx) error {
	if err := h.service.StopSharing(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "Unshare failed", err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.logger, c)
	l.Error(msg, zap.Error(err))

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrPrecondition):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
