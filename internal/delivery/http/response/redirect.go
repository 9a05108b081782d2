package response

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// RedirectOK sends the browser back to the site with status=ok. 303 forces
// the follow-up request to be a GET even though the form arrived as a POST.
func RedirectOK(c *gin.Context, base string) {
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("%s?status=ok", base))
}

// RedirectError sends the browser back with status=error and a message the
// site can show to the visitor.
func RedirectError(c *gin.Context, base, message string) {
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("%s?status=error&message=%s", base, escapeQuery(message)))
}

// escapeQuery percent-encodes a query value, using %20 rather than + for
// spaces so the message reads the same under every query parser.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
