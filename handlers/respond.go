package handlers

import (
	"github.com/pocketbase/pocketbase/core"
)

// apiError writes a JSON error envelope with the given status code.
// Handlers use it for every failure path so clients always get the
// same {"error": "..."} shape.
func apiError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]string{"error": message})
}
