package topology

// Role of an Aurora instance inside its cluster.
type Role string

const (
	RoleWrite  Role = "write"
	RoleRead   Role = "read"
	RoleGlobal Role = "global"
)

// Endpoint is the normalized view of one cluster member. Built fresh on every
// classification pass and never mutated afterwards.
type Endpoint struct {
	ID            string `json:"id" csv:"id"`
	Endpoint      string `json:"endpoint" csv:"endpoint"`
	Port          int32  `json:"port" csv:"port"`
	InstanceClass string `json:"instanceClass" csv:"instance_class"`
	Region        string `json:"region" csv:"region"`
	Role          Role   `json:"role" csv:"role"`
}

func (e Endpoint) IsWriter() bool {
	return e.Role == RoleWrite
}
