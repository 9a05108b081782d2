package v1_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"contact-form-relay/config"
	v1 "contact-form-relay/internal/delivery/http/v1"
	"contact-form-relay/internal/domain"
	"contact-form-relay/pkg/email"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const redirectBase = "https://example.org/thanks"

type MockRelayUsecase struct {
	mock.Mock
}

func (m *MockRelayUsecase) Relay(ctx context.Context, sub *domain.Submission) error {
	return m.Called(ctx, sub).Error(0)
}

func newTestRouter(uc domain.RelayUsecase, origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return v1.NewRouter(v1.RouterDeps{
		RelayUC: uc,
		Config: &config.Config{
			RedirectURL:        redirectBase,
			CORSAllowedOrigins: origins,
		},
	})
}

func submitForm(router *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func formValues() url.Values {
	return url.Values{
		"from_name":  {"Jane"},
		"from_email": {"jane@example.com"},
		"title":      {"Hello"},
		"body":       {"Test message"},
	}
}

func TestSubmit(t *testing.T) {
	t.Run("Should redirect with status ok after a successful relay", func(t *testing.T) {
		mockUC := new(MockRelayUsecase)
		mockUC.On("Relay", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil).Run(func(args mock.Arguments) {
			sub := args.Get(1).(*domain.Submission)
			assert.Equal(t, "Jane", sub.FromName)
			assert.Equal(t, "jane@example.com", sub.FromEmail)
			assert.Equal(t, "Hello", sub.Title)
			assert.Equal(t, "Test message", sub.Body)
		})

		w := submitForm(newTestRouter(mockUC), formValues())

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, redirectBase+"?status=ok", w.Header().Get("Location"))
		mockUC.AssertExpectations(t)
	})

	t.Run("Should redirect with the missing field message", func(t *testing.T) {
		mockUC := new(MockRelayUsecase)
		mockUC.On("Relay", mock.Anything, mock.Anything).Return(&domain.MissingFieldError{Field: "title"})

		values := formValues()
		values.Del("title")
		w := submitForm(newTestRouter(mockUC), values)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, redirectBase+"?status=error&message=title%20is%20required", w.Header().Get("Location"))
	})

	t.Run("Should surface the provider's rejection message", func(t *testing.T) {
		mockUC := new(MockRelayUsecase)
		mockUC.On("Relay", mock.Anything, mock.Anything).Return(&email.APIError{
			StatusCode: http.StatusBadRequest,
			Message:    "'to' parameter is not a valid address",
		})

		w := submitForm(newTestRouter(mockUC), formValues())

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "error", loc.Query().Get("status"))
		assert.Equal(t, "'to' parameter is not a valid address", loc.Query().Get("message"))
	})

	t.Run("Should report transport failures generically without leaking detail", func(t *testing.T) {
		mockUC := new(MockRelayUsecase)
		mockUC.On("Relay", mock.Anything, mock.Anything).Return(errors.New("dial tcp 10.0.0.1:443: connection refused"))

		w := submitForm(newTestRouter(mockUC), formValues())

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "error", loc.Query().Get("status"))
		assert.Equal(t, "could not reach the email service", loc.Query().Get("message"))
		assert.NotContains(t, w.Header().Get("Location"), "dial")
	})

	t.Run("Should redirect on a body that cannot be parsed as a form", func(t *testing.T) {
		mockUC := new(MockRelayUsecase)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("%zz=broken"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		newTestRouter(mockUC).ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "error", loc.Query().Get("status"))
		assert.Equal(t, "invalid form submission", loc.Query().Get("message"))
		mockUC.AssertNotCalled(t, "Relay")
	})

	t.Run("Should keep concurrent submissions isolated", func(t *testing.T) {
		mockUC := new(MockRelayUsecase)
		mockUC.On("Relay", mock.Anything, mock.MatchedBy(func(s *domain.Submission) bool {
			return s.FromEmail == "ok@example.com"
		})).Return(nil)
		mockUC.On("Relay", mock.Anything, mock.MatchedBy(func(s *domain.Submission) bool {
			return s.FromEmail == "fail@example.com"
		})).Return(errors.New("connection reset"))

		router := newTestRouter(mockUC)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				values := formValues()
				want := redirectBase + "?status=ok"
				if i%2 == 1 {
					values.Set("from_email", "fail@example.com")
					want = redirectBase + "?status=error&message=could%20not%20reach%20the%20email%20service"
				} else {
					values.Set("from_email", "ok@example.com")
				}

				w := submitForm(router, values)
				assert.Equal(t, http.StatusSeeOther, w.Code)
				assert.Equal(t, want, w.Header().Get("Location"))
			}(i)
		}
		wg.Wait()
	})
}

func TestRouter(t *testing.T) {
	t.Run("Should report health as a JSON envelope", func(t *testing.T) {
		router := newTestRouter(new(MockRelayUsecase))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "System operational")
	})

	t.Run("Should answer unknown routes with a JSON 404", func(t *testing.T) {
		router := newTestRouter(new(MockRelayUsecase))

		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("Should tag responses with a request id", func(t *testing.T) {
		mockUC := new(MockRelayUsecase)
		mockUC.On("Relay", mock.Anything, mock.Anything).Return(nil)

		w := submitForm(newTestRouter(mockUC), formValues())
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Should set security headers on every response", func(t *testing.T) {
		router := newTestRouter(new(MockRelayUsecase))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("Should answer preflight for an allowed origin", func(t *testing.T) {
		router := newTestRouter(new(MockRelayUsecase), "https://site.example.com")

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://site.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://site.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should refuse preflight from an unknown origin", func(t *testing.T) {
		router := newTestRouter(new(MockRelayUsecase), "https://site.example.com")

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
