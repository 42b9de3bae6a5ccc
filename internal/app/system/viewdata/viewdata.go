// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	// User context (from auth middleware)
	IsLoggedIn bool
	Email      string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
}

// NewBaseVM creates a populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}
	if m, ok := auth.CurrentMember(r); ok {
		vm.IsLoggedIn = true
		vm.Email = m.Email
	}
	return vm
}
