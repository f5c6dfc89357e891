package model

// Roles carried in the access token. Identity issuance lives outside this
// service; we only validate tokens and gate endpoints.
const (
	RoleAdmin      = "ADMIN"
	RoleAdvisor    = "ADVISOR"
	RoleWarehouse  = "WAREHOUSE"
	RoleTechnician = "TECHNICIAN"
)

type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool      { return p.Role == RoleAdmin }
func (p Principal) IsAdvisor() bool    { return p.Role == RoleAdvisor }
func (p Principal) IsWarehouse() bool  { return p.Role == RoleWarehouse }
func (p Principal) IsTechnician() bool { return p.Role == RoleTechnician }
