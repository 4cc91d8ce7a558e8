package handlers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"krishifarm/internal/domain"
	"krishifarm/internal/log"
	"krishifarm/internal/repos"
	"krishifarm/internal/validate"
)

// UserHandler upserts user profiles by email on login.
type UserHandler struct {
	Users *repos.UserRepo
}

type userBody struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (h *UserHandler) Upsert(c *fiber.Ctx) error {
	var body userBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		log.Security(c, "validation.fail", "field", "email")
		return fail(c, fiber.StatusBadRequest, "enter a valid email")
	}
	name, ok := validate.Name(body.Name)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "name is required")
	}

	if _, err := h.Users.ByEmail(email); err == nil {
		return c.JSON(fiber.Map{"message": "user already exists. do not need to insert again"})
	} else if err != sql.ErrNoRows {
		return failFromErr(c, "users.upsert", err)
	}

	u := domain.User{ID: uuid.NewString(), Email: email, Name: name, Image: body.Image}
	if err := h.Users.Insert(u); err != nil {
		return failFromErr(c, "users.upsert", err)
	}
	log.Audit(c, "users.create", "user", u.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"acknowledged": true, "insertedId": u.ID})
}
