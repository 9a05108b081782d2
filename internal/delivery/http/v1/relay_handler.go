package v1

import (
	"contact-form-relay/config"
	"contact-form-relay/internal/delivery/http/response"
	"contact-form-relay/internal/domain"
	"contact-form-relay/pkg/email"
	"errors"

	"github.com/gin-gonic/gin"
)

// Shown when the provider could not be reached at all. Provider rejections
// surface the API's own message instead.
const genericSendFailure = "could not reach the email service"

type RelayHandler struct {
	relayUC     domain.RelayUsecase
	redirectURL string
}

// NewRelayHandler registers the form submission route (public, no auth required)
func NewRelayHandler(public *gin.RouterGroup, relayUC domain.RelayUsecase, cfg *config.Config) {
	handler := &RelayHandler{
		relayUC:     relayUC,
		redirectURL: cfg.RedirectURL,
	}

	public.POST("/", handler.Submit)
}

// Submit accepts one urlencoded form post and answers with a redirect in
// every case, success or not, so the visitor always lands back on the site.
func (h *RelayHandler) Submit(c *gin.Context) {
	var sub domain.Submission
	if err := c.ShouldBind(&sub); err != nil {
		response.RedirectError(c, h.redirectURL, "invalid form submission")
		return
	}

	if err := h.relayUC.Relay(c.Request.Context(), &sub); err != nil {
		response.RedirectError(c, h.redirectURL, visitorMessage(err))
		return
	}

	response.RedirectOK(c, h.redirectURL)
}

// visitorMessage picks what the visitor is told about a failure. Internal
// detail beyond the provider's own rejection text never leaks into the URL.
func visitorMessage(err error) string {
	var missing *domain.MissingFieldError
	if errors.As(err, &missing) {
		return missing.Error()
	}

	var apiErr *email.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return genericSendFailure
}
