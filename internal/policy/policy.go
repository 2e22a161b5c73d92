// Package policy is the single place that decides who may see or change a
// job listing. Every job-reading and job-mutating operation goes through
// these functions; handlers and services never re-derive the rules.
package policy

import (
	"fmt"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/models"
)

// CanView decides whether the caller may read the listing.
//
// Approved listings are public. Anything else is only readable by the admin
// or by the company that owns it; ownership is per record, so one company
// never sees another company's unapproved listing. callerCompanyID is the
// caller's own company id, zero when the caller has none.
func CanView(job *models.Job, caller auth.Caller, callerCompanyID uint) error {
	if job.Status == models.StatusApproved {
		return nil
	}
	if caller.IsAnonymous() {
		return fmt.Errorf("%w: listing is not public", apperr.ErrUnauthenticated)
	}
	if caller.IsAdmin() {
		return nil
	}
	if caller.IsCompany() && callerCompanyID != 0 && job.OwnedByCompany(callerCompanyID) {
		return nil
	}
	return fmt.Errorf("%w: access denied", apperr.ErrForbidden)
}

// CanMutate decides whether the caller may edit or delete the listing:
// the admin, or the company that posted it.
func CanMutate(job *models.Job, caller auth.Caller, callerCompanyID uint) error {
	if caller.IsAnonymous() {
		return fmt.Errorf("%w: login required", apperr.ErrUnauthenticated)
	}
	if caller.IsAdmin() {
		return nil
	}
	if !caller.IsCompany() {
		return fmt.Errorf("%w: only the posting company or an admin may modify a job", apperr.ErrForbidden)
	}
	if callerCompanyID == 0 || !job.OwnedByCompany(callerCompanyID) {
		return fmt.Errorf("%w: you can only modify your own jobs", apperr.ErrForbidden)
	}
	return nil
}

// ListScope is the status window a caller is allowed to browse.
type ListScope struct {
	// AllStatuses: no status filter at all (admin).
	AllStatuses bool
	// OwnerCompanyID: approved listings plus this company's own (company).
	// Zero with AllStatuses false means approved only.
	OwnerCompanyID uint
}

// ScopeFor computes the listing window for a caller. It mirrors CanView in
// bulk: the result never exposes a listing CanView would deny.
func ScopeFor(caller auth.Caller, callerCompanyID uint) ListScope {
	switch {
	case caller.IsAdmin():
		return ListScope{AllStatuses: true}
	case caller.IsCompany() && callerCompanyID != 0:
		return ListScope{OwnerCompanyID: callerCompanyID}
	default:
		return ListScope{}
	}
}

// unknownContact is shown when a listing's poster cannot be resolved; a
// dangling reference must not break the public view.
const unknownContact = "unknown"

// Contact is the resolved "who to reach about this listing" projection
// attached to approved jobs.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResolveContact builds the contact projection from whichever poster record
// resolved. Exactly one of user/company is expected; both nil yields the
// placeholder.
func ResolveContact(user *models.User, company *models.Company) Contact {
	switch {
	case company != nil:
		return Contact{Name: company.CompanyName, Email: company.Email}
	case user != nil:
		name := user.Name
		if name == "" {
			name = unknownContact
		}
		return Contact{Name: name, Email: user.Email}
	default:
		return Contact{Name: unknownContact, Email: unknownContact}
	}
}
