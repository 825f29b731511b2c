// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Template names registered by this feature.
const (
	PageLogin     = "admin_login"
	PageDashboard = "admin_dashboard"
)

const (
	msgLoginFailed  = "Invalid username or password."
	msgLoginLimited = "Too many login attempts. Please wait a few minutes and try again."
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type loginData struct {
	viewdata.BaseVM
	Error string
}

type dashboardData struct {
	viewdata.BaseVM
}

// PageFor returns the template GET /admin renders for r.
func PageFor(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok && u.IsAdmin() {
		return PageDashboard
	}
	return PageLogin
}

// LoginError maps the ?error flag set by a failed sign-in to its message.
func LoginError(flag string) string {
	switch flag {
	case "":
		return ""
	case "limited":
		return msgLoginLimited
	default:
		return msgLoginFailed
	}
}

// ServeAdmin handles GET /admin: the dashboard for admins, the login form
// for everyone else.
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	if PageFor(r) == PageDashboard {
		templates.Render(w, r, PageDashboard, dashboardData{
			BaseVM: viewdata.NewBaseVM(r, "Dashboard"),
		})
		return
	}
	templates.Render(w, r, PageLogin, loginData{
		BaseVM: viewdata.NewBaseVM(r, "Admin Login"),
		Error:  LoginError(r.URL.Query().Get("error")),
	})
}
