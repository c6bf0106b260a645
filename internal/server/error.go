package server

import "github.com/gofiber/fiber/v2"

// errorPayload is the standardized error response body. Message is the
// friendly suggestion shown to the user; Detail carries the technical cause.
type errorPayload struct {
	Error errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func writeError(c *fiber.Ctx, status int, code, message, detail string) error {
	return c.Status(status).JSON(errorPayload{
		Error: errorEnvelope{Code: code, Message: message, Detail: detail},
	})
}

// errorHandler standardizes errors that escape the handlers.
func (s *Server) errorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		s.logger.Error("server.unhandled_error", "status", status, "error", err)
		switch status {
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "recurso não encontrado", "")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "O arquivo excede o tamanho máximo aceito. Divida o documento em menos páginas.", "")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "erro interno", err.Error())
		}
	}
}
