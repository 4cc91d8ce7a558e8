package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"krishifarm/internal/domain"
	applog "krishifarm/internal/log"
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}

// failFromErr maps workflow sentinels to HTTP statuses. Anything unmapped is
// a store failure: logged with detail, reported generically.
func failFromErr(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrCropNotFound),
		errors.Is(err, domain.ErrInterestNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSelfInterest),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInsufficientQuantity):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateInterest),
		errors.Is(err, domain.ErrAlreadyDecided):
		return fail(c, fiber.StatusConflict, err.Error())
	}
	applog.Error(c, action, err)
	return fail(c, fiber.StatusInternalServerError, "Server error")
}
