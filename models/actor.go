package models

// Role identifies what an authenticated caller is allowed to do.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleClient   Role = "USER"
)

// Actor is the already-validated identity the core receives from the auth
// layer. Handlers build it from signed JWT claims; the core never sees a
// raw token.
type Actor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	CompanyID string `json:"company_id"`
}

// IsGlobal reports whether the actor holds platform-level scope.
func (a Actor) IsGlobal() bool {
	return a.CompanyID == GlobalScope
}

// SameOrGlobalScope is the tenant-directory predicate: a global actor may
// touch any tenant, everyone else only their own.
func (a Actor) SameOrGlobalScope(targetCompanyID string) bool {
	return a.IsGlobal() || a.CompanyID == targetCompanyID
}
