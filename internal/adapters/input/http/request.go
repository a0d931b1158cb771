package http

type (
	// SuggestionRequest struct - getSuggestions bridge call parameters
	SuggestionRequest struct {
		Text       string `json:"text" validate:"required" form:"text"`
		MaxResults int    `json:"maxResults" validate:"omitempty,gte=1,lte=50" form:"maxResults"`
	}

	// RegisterTokenRequest struct - register bridge call parameters
	RegisterTokenRequest struct {
		UserID string `json:"user_id" validate:"required,max=64"`
		Token  string `json:"token" validate:"required"`
	}

	// TokenRefreshRequest struct - token refresh callback parameters
	TokenRefreshRequest struct {
		Token string `json:"token" validate:"required"`
	}

	// CurrentUserRequest struct - binds or clears the authenticated user
	CurrentUserRequest struct {
		UserID string `json:"user_id" validate:"omitempty,max=64"`
	}
)
