package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"krishifarm/internal/domain"
	"krishifarm/internal/log"
	"krishifarm/internal/services"
	"krishifarm/internal/validate"
)

// CropHandler serves the read-only catalog surface.
type CropHandler struct {
	Catalog *services.CatalogService
}

func (h *CropHandler) Browse(c *fiber.Ctx) error {
	f := domain.CropFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Type:     strings.TrimSpace(c.Query("type")),
		Location: strings.TrimSpace(c.Query("location")),
	}

	min, ok := validate.Price(c.Query("minPrice"))
	if !ok {
		log.Security(c, "validation.fail", "field", "minPrice")
		return fail(c, fiber.StatusBadRequest, "minPrice must be a non-negative number")
	}
	max, ok := validate.Price(c.Query("maxPrice"))
	if !ok {
		log.Security(c, "validation.fail", "field", "maxPrice")
		return fail(c, fiber.StatusBadRequest, "maxPrice must be a non-negative number")
	}
	f.MinPrice, f.MaxPrice = min, max

	// Unrecognized sort values mean natural order, not an error.
	if s, ok := validate.Sort(c.Query("sort")); ok {
		f.Sort = s
	}

	page := validate.Page(c.Query("page"))
	limit := validate.Limit(c.Query("limit"))

	result, err := h.Catalog.Browse(f, page, limit)
	if err != nil {
		return failFromErr(c, "crops.browse", err)
	}
	return c.JSON(result)
}

func (h *CropHandler) Latest(c *fiber.Ctx) error {
	crops, err := h.Catalog.Latest()
	if err != nil {
		return failFromErr(c, "crops.latest", err)
	}
	return c.JSON(crops)
}

func (h *CropHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", "field", "crop")
		return fail(c, fiber.StatusBadRequest, "invalid crop id")
	}
	crop, err := h.Catalog.Get(id)
	if err != nil {
		return failFromErr(c, "crops.detail", err)
	}
	return c.JSON(crop)
}

func (h *CropHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories()
	if err != nil {
		return failFromErr(c, "crops.categories", err)
	}
	if cats == nil {
		cats = []string{}
	}
	return c.JSON(cats)
}
