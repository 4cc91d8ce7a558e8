package handlers

import (
	"github.com/gofiber/fiber/v2"

	"krishifarm/internal/log"
	"krishifarm/internal/services"
	"krishifarm/internal/validate"
)

// ListingHandler serves the owner-facing listing CRUD.
type ListingHandler struct {
	Listings *services.ListingService
}

type listingBody struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Unit         string  `json:"unit"`
	Quantity     int     `json:"quantity"`
	Description  string  `json:"description"`
	Location     string  `json:"location"`
	Image        string  `json:"image"`
	Owner        struct {
		OwnerName  string `json:"ownerName"`
		OwnerEmail string `json:"ownerEmail"`
	} `json:"owner"`
}

// fieldError names the listing field that failed validation.
type fieldError struct {
	field string
	msg   string
}

// toInput validates the mutable listing fields shared by create and update.
func (b listingBody) toInput() (services.ListingInput, *fieldError) {
	var in services.ListingInput
	name, ok := validate.Name(b.Name)
	if !ok {
		return in, &fieldError{"name", "name is required"}
	}
	typ, ok := validate.Name(b.Type)
	if !ok {
		return in, &fieldError{"type", "type is required"}
	}
	unit, ok := validate.Name(b.Unit)
	if !ok {
		return in, &fieldError{"unit", "unit is required"}
	}
	loc, ok := validate.Name(b.Location)
	if !ok {
		return in, &fieldError{"location", "location is required"}
	}
	if b.PricePerUnit < 0 {
		return in, &fieldError{"pricePerUnit", "pricePerUnit must be non-negative"}
	}
	if b.Quantity < 0 {
		return in, &fieldError{"quantity", "quantity must be non-negative"}
	}
	in = services.ListingInput{
		Name:         name,
		Type:         typ,
		PricePerUnit: b.PricePerUnit,
		Unit:         unit,
		Quantity:     b.Quantity,
		Description:  b.Description,
		Location:     loc,
		Image:        b.Image,
	}
	return in, nil
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var body listingBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	in, verr := body.toInput()
	if verr != nil {
		log.Security(c, "validation.fail", "field", verr.field)
		return fail(c, fiber.StatusBadRequest, verr.msg)
	}
	ownerName, ok := validate.Name(body.Owner.OwnerName)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "owner name is required")
	}
	ownerEmail, ok := validate.Email(body.Owner.OwnerEmail)
	if !ok {
		log.Security(c, "validation.fail", "field", "ownerEmail")
		return fail(c, fiber.StatusBadRequest, "enter a valid owner email")
	}
	in.OwnerName, in.OwnerEmail = ownerName, ownerEmail

	id, err := h.Listings.Create(in)
	if err != nil {
		return failFromErr(c, "crops.create", err)
	}
	log.Audit(c, "crops.create", "crop", id, "owner", ownerEmail)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"acknowledged": true, "insertedId": id})
}

func (h *ListingHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", "field", "crop")
		return fail(c, fiber.StatusBadRequest, "invalid crop id")
	}
	var body listingBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	in, verr := body.toInput()
	if verr != nil {
		log.Security(c, "validation.fail", "field", verr.field)
		return fail(c, fiber.StatusBadRequest, verr.msg)
	}
	if err := h.Listings.Update(id, in); err != nil {
		return failFromErr(c, "crops.update", err)
	}
	log.Audit(c, "crops.update", "crop", id)
	return c.JSON(fiber.Map{"success": true, "message": "Crop updated successfully"})
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", "field", "crop")
		return fail(c, fiber.StatusBadRequest, "invalid crop id")
	}
	n, err := h.Listings.Delete(id)
	if err != nil {
		return failFromErr(c, "crops.delete", err)
	}
	log.Audit(c, "crops.delete", "crop", id)
	return c.JSON(fiber.Map{"acknowledged": true, "deletedCount": n})
}

func (h *ListingHandler) Mine(c *fiber.Ctx) error {
	email, ok := validate.Email(c.Query("email"))
	if !ok {
		log.Security(c, "validation.fail", "field", "email")
		return fail(c, fiber.StatusBadRequest, "enter a valid email")
	}
	crops, err := h.Listings.ByOwner(email)
	if err != nil {
		return failFromErr(c, "crops.mine", err)
	}
	return c.JSON(crops)
}
