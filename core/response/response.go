// Package response provides the shared JSON envelope for fiber handlers.
package response

import "github.com/gofiber/fiber/v2"

// Envelope is the standard API response envelope.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes payload with the given status code.
func JSON(c *fiber.Ctx, status int, payload Envelope) error {
	return c.Status(status).JSON(payload)
}

// OK writes a 200 response with data.
func OK(c *fiber.Ctx, data any) error {
	return JSON(c, fiber.StatusOK, Envelope{Success: true, Data: data})
}

// Message writes a 200 response with data and a human readable message.
func Message(c *fiber.Ctx, message string, data any) error {
	return JSON(c, fiber.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 response with data.
func Created(c *fiber.Ctx, data any) error {
	return JSON(c, fiber.StatusCreated, Envelope{Success: true, Data: data})
}

// Error writes an error response with the given status and message.
func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, Envelope{Success: false, Error: message})
}

// BadRequest writes a 400 response.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound writes a 404 response.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// BadGateway writes a 502 response, used when the upstream store fails.
func BadGateway(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadGateway, message)
}

// ServiceUnavailable writes a 503 response with data.
func ServiceUnavailable(c *fiber.Ctx, data any) error {
	return JSON(c, fiber.StatusServiceUnavailable, Envelope{Success: false, Error: "service unavailable", Data: data})
}
