package identity

import (
	"github.com/darasa/console/core"
)

// Role is the closed set of principal categories recognised by the platform.
// Authorization decisions only ever match these values exactly; anything else
// is treated as unauthenticated.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RolePrincipal  Role = "PRINCIPAL"
	RoleTeacher    Role = "TEACHER"
	RoleStudent    Role = "STUDENT"
	RoleParent     Role = "PARENT"
)

// Roles lists every known role, in priority order (platform level first).
var Roles = []Role{RoleSuperAdmin, RolePrincipal, RoleTeacher, RoleStudent, RoleParent}

// Known reports whether r is a member of the closed role set.
func (r Role) Known() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// Identity represents the authenticated principal.
// The JSON shape doubles as the persisted session record.
type Identity struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      Role    `json:"role"`
	SchoolID  *string `json:"school_id"` // nil for platform-level roles
	IsActive  bool    `json:"is_active"`
}

func (id Identity) DisplayName() string {
	if id.FirstName == "" && id.LastName == "" {
		return id.Username
	}
	if id.LastName == "" {
		return id.FirstName
	}
	return id.FirstName + " " + id.LastName
}

func (id Identity) IsSuperAdmin() bool { return id.Role == RoleSuperAdmin }
func (id Identity) IsPrincipal() bool  { return id.Role == RolePrincipal }
func (id Identity) IsTeacher() bool    { return id.Role == RoleTeacher }
func (id Identity) IsStudent() bool    { return id.Role == RoleStudent }
func (id Identity) IsParent() bool     { return id.Role == RoleParent }

// Credentials is the username/password pair exchanged for a session.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Username = core.CleanString(c.Username, true /* lower */)
	return core.Validate.Struct(c)
}

// Registration contains the information needed to create a new account.
// A successful registration does not authenticate; the user logs in afterwards.
type Registration struct {
	Username        string `json:"username" validate:"required,min=6,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            Role   `json:"role" validate:"required,role"`
	SchoolID        string `json:"school_id" validate:"required_unless=Role SUPER_ADMIN"`
}

func (r *Registration) Validate() error {
	r.Username = core.CleanString(r.Username, true /* lower */)
	r.Email = core.CleanString(r.Email, true /* lower */)
	r.FirstName = core.CleanString(r.FirstName)
	r.LastName = core.CleanString(r.LastName)
	r.SchoolID = core.CleanString(r.SchoolID)
	return core.Validate.Struct(r)
}

// Patch defines what profile information may be merged into the current
// Identity after an edit. Nil fields are left untouched.
type Patch struct {
	Username  *string `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	SchoolID  *string `json:"school_id"`
}

func (p *Patch) Validate() error {
	if p.Username != nil {
		uname := core.CleanString(*p.Username, true /* lower */)
		p.Username = &uname
	}
	if p.Email != nil {
		email := core.CleanString(*p.Email, true /* lower */)
		p.Email = &email
	}
	return core.Validate.Struct(p)
}

// Apply merges the patch into a copy of id.
func (p Patch) Apply(id Identity) Identity {
	if p.Username != nil {
		id.Username = *p.Username
	}
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.FirstName != nil {
		id.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		id.LastName = *p.LastName
	}
	if p.SchoolID != nil {
		id.SchoolID = p.SchoolID
	}
	return id
}

func (p Patch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.FirstName == nil && p.LastName == nil && p.SchoolID == nil
}
