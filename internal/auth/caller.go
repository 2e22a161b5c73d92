package auth

import "github.com/vacansy/vacansy-api/internal/models"

// Caller is the identity attached to a request after credential
// verification. The zero value is the anonymous caller.
type Caller struct {
	ID   uint
	Role models.Role
}

// Anonymous is the caller context of an unauthenticated request.
var Anonymous = Caller{}

func (c Caller) IsAnonymous() bool { return c.ID == 0 }

func (c Caller) IsAdmin() bool   { return c.Role == models.RoleAdmin }
func (c Caller) IsCompany() bool { return c.Role == models.RoleCompany }
func (c Caller) IsSeeker() bool  { return c.Role == models.RoleSeeker }
