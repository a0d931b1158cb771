package http

import (
	"context"
	"errors"

	"nativebridge/internal/domain"
	"nativebridge/internal/ports/input"
	"nativebridge/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Pinger is implemented by token stores that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPHandler struct - Primary/Driving adapter: the bridge call gateway.
// Every call gets exactly one answer: a resolved payload or a rejection.
type HTTPHandler struct {
	suggestions input.SuggestionService
	push        input.PushTokenService
	store       Pinger
	validator   validator.Validator
}

// New func - Creates new HTTP handler. push and store may be nil when token
// sync is disabled.
func New(suggestions input.SuggestionService, push input.PushTokenService, store Pinger) *HTTPHandler {
	return &HTTPHandler{
		suggestions: suggestions,
		push:        push,
		store:       store,
		validator:   validator.New(),
	}
}

// HealthCheck godoc
// @Summary Spell checker and token store status
// @Tags Health
// @Produce json
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	health := HealthResponse{
		SpellChecker: hdl.suggestions.CheckAvailability().Available,
		TokenStore:   "disabled",
	}
	if hdl.store != nil {
		health.TokenStore = "ok"
		if err := hdl.store.Ping(c.UserContext()); err != nil {
			logrus.Errorln(err)
			health.TokenStore = "unreachable"
		}
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: health})
}

// GetSuggestions godoc
// @Summary Spell-check suggestions
// @Description Resolves with suggestions, with available=false when no spell checker exists, or rejects on empty text
// @Tags SpellChecker
// @Accept application/json
// @Produce json
// @param GetSuggestions body SuggestionRequest true "GetSuggestions"
// @Router /bridge/SpellChecker/getSuggestions [post]
func (hdl *HTTPHandler) GetSuggestions(c *fiber.Ctx) error {
	var request SuggestionRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return reject(c, BadRequest)
	}
	if request.Text == "" {
		return reject(c, withMessage(BadRequest, "Text is required"))
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return reject(c, withMessage(BadRequest, err.Error()))
	}

	result, err := hdl.suggestions.GetSuggestions(c.UserContext(), domain.SuggestionRequest{
		Text:       request.Text,
		MaxResults: request.MaxResults,
	})
	if err != nil {
		return rejectError(c, err)
	}

	suggestions := result.Suggestions
	if suggestions == nil {
		suggestions = make([]string, 0)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SuggestionResponse{
		Suggestions: suggestions,
		Available:   result.Available,
		Error:       result.Error,
	}})
}

// CheckAvailability godoc
// @Summary Spell checker availability
// @Tags SpellChecker
// @Produce json
// @Router /bridge/SpellChecker/checkAvailability [post]
// @Router /bridge/SpellChecker/checkAvailability [get]
func (hdl *HTTPHandler) CheckAvailability(c *fiber.Ctx) error {
	availability := hdl.suggestions.CheckAvailability()
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: AvailabilityResponse{
		Available: availability.Available,
	}})
}

// RegisterToken godoc
// @Summary Register a messaging token for a user
// @Tags PushNotifications
// @Accept application/json
// @Produce json
// @param RegisterToken body RegisterTokenRequest true "RegisterToken"
// @Router /bridge/PushNotifications/register [post]
func (hdl *HTTPHandler) RegisterToken(c *fiber.Ctx) error {
	if hdl.push == nil {
		return reject(c, withMessage(ServiceUnavailable, "Push notifications are disabled"))
	}

	var request RegisterTokenRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return reject(c, BadRequest)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return reject(c, withMessage(BadRequest, err.Error()))
	}

	if err := hdl.push.RegisterToken(c.UserContext(), request.UserID, request.Token); err != nil {
		return rejectError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: TokenResponse{
		UserID: request.UserID,
		Token:  request.Token,
	}})
}

// TokenRefresh godoc
// @Summary Messaging token refresh callback
// @Tags PushNotifications
// @Accept application/json
// @Produce json
// @param TokenRefresh body TokenRefreshRequest true "TokenRefresh"
// @Router /bridge/PushNotifications/tokenRefresh [post]
func (hdl *HTTPHandler) TokenRefresh(c *fiber.Ctx) error {
	if hdl.push == nil {
		return reject(c, withMessage(ServiceUnavailable, "Push notifications are disabled"))
	}

	var request TokenRefreshRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return reject(c, BadRequest)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return reject(c, withMessage(BadRequest, "Token is required"))
	}

	if err := hdl.push.OnNewToken(c.UserContext(), request.Token); err != nil {
		return rejectError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: fiber.Map{"accepted": true}})
}

// SetCurrentUser godoc
// @Summary Bind or clear the authenticated user
// @Tags PushNotifications
// @Accept application/json
// @Produce json
// @param SetCurrentUser body CurrentUserRequest true "SetCurrentUser"
// @Router /bridge/PushNotifications/user [post]
func (hdl *HTTPHandler) SetCurrentUser(c *fiber.Ctx) error {
	if hdl.push == nil {
		return reject(c, withMessage(ServiceUnavailable, "Push notifications are disabled"))
	}

	var request CurrentUserRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return reject(c, BadRequest)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return reject(c, withMessage(BadRequest, err.Error()))
	}

	hdl.push.SetCurrentUser(request.UserID)
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: fiber.Map{"user_id": request.UserID}})
}

// SyncToken godoc
// @Summary Upload the current messaging token now
// @Tags PushNotifications
// @Produce json
// @Router /bridge/PushNotifications/sync [post]
func (hdl *HTTPHandler) SyncToken(c *fiber.Ctx) error {
	if hdl.push == nil {
		return reject(c, withMessage(ServiceUnavailable, "Push notifications are disabled"))
	}

	synced, err := hdl.push.SyncToken(c.UserContext())
	if err != nil {
		return rejectError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: fiber.Map{"synced": synced}})
}

// ListTokens godoc
// @Summary Tokens registered for a user
// @Tags PushNotifications
// @Produce json
// @param user_id path string true "user id"
// @Router /bridge/PushNotifications/tokens/{user_id} [get]
func (hdl *HTTPHandler) ListTokens(c *fiber.Ctx) error {
	if hdl.push == nil {
		return reject(c, withMessage(ServiceUnavailable, "Push notifications are disabled"))
	}

	tokens, err := hdl.push.ListTokens(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return rejectError(c, err)
	}

	data := make([]TokenResponse, 0, len(tokens))
	for _, token := range tokens {
		data = append(data, TokenResponse{
			UserID:    token.UserID,
			Token:     token.FCMToken,
			UpdatedAt: token.UpdatedAt,
		})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: data})
}

// rejectError maps domain errors onto a rejection status
func rejectError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return reject(c, withMessage(BadRequest, err.Error()))
	case errors.Is(err, domain.ErrQueueFull), errors.Is(err, domain.ErrSessionClosed), errors.Is(err, domain.ErrPushClosed):
		return reject(c, withMessage(ServiceUnavailable, err.Error()))
	case errors.Is(err, domain.ErrTokenStore), errors.Is(err, domain.ErrTokenUnavailable):
		logrus.Errorln(err)
		return reject(c, withMessage(BadGateway, err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return reject(c, RequestTimeout)
	default:
		logrus.Errorln(err)
		return reject(c, withMessage(InternalServerError, err.Error()))
	}
}

func reject(c *fiber.Ctx, status Status) error {
	return c.Status(status.Code).JSON(ResponseBody{Status: status})
}

func withMessage(status Status, message string) Status {
	status.Message = []string{message}
	return status
}
