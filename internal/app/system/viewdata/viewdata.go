// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync/atomic"

	"github.com/dalemusser/auxilium/internal/app/system/auth"
)

// DefaultSiteName is shown until Init sets the configured name.
const DefaultSiteName = "Auxilium School"

var siteName atomic.Value

// Init sets the site name rendered in page titles and headers.
func Init(name string) {
	if name == "" {
		name = DefaultSiteName
	}
	siteName.Store(name)
}

// SiteName returns the configured site name.
func SiteName() string {
	if s, ok := siteName.Load().(string); ok {
		return s
	}
	return DefaultSiteName
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	data := struct {
//	    viewdata.BaseVM
//	    Error string
//	}{
//	    BaseVM: viewdata.NewBaseVM(r, "Admin Login"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn   bool
	IsSuperAdmin bool
	Role         string
	UserName     string

	// Page context
	Title       string
	CurrentPath string
}

// NewBaseVM fills the common fields from the request.
func NewBaseVM(r *http.Request, title string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName(),
		Title:       title,
		CurrentPath: r.URL.Path,
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.IsSuperAdmin = u.IsSuperAdmin()
		vm.Role = u.Role
		vm.UserName = u.Username
	}
	return vm
}
