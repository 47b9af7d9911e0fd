package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain"
)

// respondMessage envía el envoltorio estándar de éxito {message, data}.
func respondMessage(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.MessageResponse{Message: message, Data: data})
}

// respondError mapea un error de aplicación al status HTTP y cuerpo
// {message, errors?}. Centraliza la traducción para que todos los handlers
// respondan igual.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.AsValidation(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Message: "los datos enviados no son válidos",
			Errors:  ve.Fields,
		})
	}

	switch {
	case errors.Is(err, domain.ErrImageMalformed),
		errors.Is(err, domain.ErrImageType),
		errors.Is(err, domain.ErrImageDecode):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Message: "recurso no encontrado",
		})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Message: "no autorizado",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Message: "acceso denegado",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Message: err.Error(),
	})
}

// respondBadBody respuesta uniforme para cuerpos JSON que no parsean.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "cuerpo inválido"})
}
