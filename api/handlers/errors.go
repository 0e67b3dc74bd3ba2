// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"github.com/danielgtaylor/huma/v2"

	"navassist-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsSecurityBreach(err) {
		return huma.Error403Forbidden("security_breach", err)
	}

	if errors.IsFetch(err) {
		return huma.Error502BadGateway("Target site could not be fetched", err)
	}

	if errors.IsExtraction(err) {
		return huma.Error422UnprocessableEntity("Page could not be parsed", err)
	}

	if errors.IsEngineUnavailable(err) {
		return huma.Error503ServiceUnavailable("Relevance engine unavailable", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
