package user

type Role string

const (
	RoleClient        Role = "client"
	RoleAdministrator Role = "administrator"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleAdministrator:
		return true
	default:
		return false
	}
}

func (r Role) IsAdministrator() bool {
	return r == RoleAdministrator
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
