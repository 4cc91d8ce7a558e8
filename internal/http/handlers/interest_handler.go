package handlers

import (
	"github.com/gofiber/fiber/v2"

	"krishifarm/internal/log"
	"krishifarm/internal/services"
	"krishifarm/internal/validate"
)

// InterestHandler serves the buyer/owner interest workflow.
type InterestHandler struct {
	Interests *services.InterestService
}

type interestBody struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Quantity  int    `json:"quantity"`
	Message   string `json:"message"`
}

func (h *InterestHandler) Submit(c *fiber.Ctx) error {
	cropID, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", "field", "crop")
		return fail(c, fiber.StatusBadRequest, "invalid crop id")
	}
	var body interestBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	email, ok := validate.Email(body.UserEmail)
	if !ok {
		log.Security(c, "validation.fail", "field", "userEmail")
		return fail(c, fiber.StatusBadRequest, "enter a valid email")
	}
	name, ok := validate.Name(body.UserName)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "userName is required")
	}
	if !validate.Quantity(body.Quantity) {
		return fail(c, fiber.StatusBadRequest, "quantity must be at least 1")
	}

	interest, err := h.Interests.Submit(cropID, services.InterestInput{
		UserEmail: email,
		UserName:  name,
		Quantity:  body.Quantity,
		Message:   body.Message,
	})
	if err != nil {
		return failFromErr(c, "interest.submit", err)
	}
	log.Audit(c, "interest.submit", "crop", cropID, "interest", interest.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Interest submitted successfully!",
		"interest": interest,
	})
}

type decisionBody struct {
	CropsID  string `json:"cropsId"`
	Status   string `json:"status"`
	Quantity int    `json:"quantity"` // accepted for compatibility; the stored amount is used
}

func (h *InterestHandler) Decide(c *fiber.Ctx) error {
	interestID, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", "field", "interest")
		return fail(c, fiber.StatusBadRequest, "invalid interest id")
	}
	var body decisionBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	cropID, ok := validate.ID(body.CropsID)
	if !ok {
		log.Security(c, "validation.fail", "field", "cropsId")
		return fail(c, fiber.StatusBadRequest, "invalid crop id")
	}
	status, ok := validate.Status(body.Status)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid status")
	}

	if err := h.Interests.Decide(cropID, interestID, status); err != nil {
		return failFromErr(c, "interest.decide", err)
	}
	log.Audit(c, "interest.decide", "crop", cropID, "interest", interestID, "status", status)
	return c.JSON(fiber.Map{"success": true, "message": "Interest " + status + " successfully"})
}

func (h *InterestHandler) Mine(c *fiber.Ctx) error {
	email, ok := validate.Email(c.Query("email"))
	if !ok {
		log.Security(c, "validation.fail", "field", "email")
		return fail(c, fiber.StatusBadRequest, "enter a valid email")
	}
	views, err := h.Interests.MyInterests(email)
	if err != nil {
		return failFromErr(c, "interest.mine", err)
	}
	return c.JSON(views)
}
