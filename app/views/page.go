package views

import "github.com/farmxchain/farmx/app/models"

// Page is what every portal template receives.
type Page struct {
	Title   string
	User    *models.User
	Nav     []NavLink
	Error   string
	Success string
	// Errors holds per-field form validation messages.
	Errors map[string]string
	// Old echoes submitted form values back into the form.
	Old  map[string]string
	Data any
}

// NewPage builds a page for user, who may be nil on guest pages.
func NewPage(title string, user *models.User) *Page {
	p := &Page{Title: title, User: user}
	if user != nil {
		p.Nav = NavLinks(user.Role)
	}
	return p
}

// Fail records err as the page's error banner.
func (p *Page) Fail(err error, fallback string) *Page {
	p.Error = ErrorMessage(err, fallback)
	return p
}

// Invalid records form validation errors and a summary banner.
func (p *Page) Invalid(errs map[string]string, old map[string]string) *Page {
	p.Errors = errs
	p.Old = old
	if len(errs) > 0 {
		p.Error = "Please correct the highlighted fields."
	}
	return p
}
