package http

import (
	"net/http"
	"time"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, The remote service did not accept the request"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Sorry, The service is busy. Please try again"}}
	// RequestTimeout response
	RequestTimeout = Status{Code: http.StatusRequestTimeout, Message: []string{"Sorry, The request was cancelled"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// SuggestionResponse struct - getSuggestions resolve payload
	SuggestionResponse struct {
		Suggestions []string `json:"suggestions"`
		Available   bool     `json:"available"`
		Error       string   `json:"error,omitempty"`
	}

	// AvailabilityResponse struct - checkAvailability resolve payload
	AvailabilityResponse struct {
		Available bool `json:"available"`
	}

	// TokenResponse struct - token binding payload
	TokenResponse struct {
		UserID    string     `json:"user_id"`
		Token     string     `json:"token"`
		UpdatedAt *time.Time `json:"updated_at,omitempty"`
	}

	// HealthResponse struct - health payload
	HealthResponse struct {
		SpellChecker bool   `json:"spellchecker"`
		TokenStore   string `json:"token_store"`
	}
)
