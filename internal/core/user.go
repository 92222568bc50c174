package core

// Role distinguishes the two participant kinds the relay knows about.
type Role string

const (
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
)

// User is a chat participant identity. It is created by the client before
// joining and is immutable for the lifetime of a connection; the relay
// stores whatever it is given and does not validate the role.
type User struct {
	ID     string
	Name   string
	Role   Role
	Avatar string
}
