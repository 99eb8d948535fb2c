package domain

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleSales  Role = "Sales"
	RoleDriver Role = "Driver"
)

type User struct {
	ID    string
	Name  string
	Role  Role
	Email string
}

// Actor identifies who performed an operation (e.g. placed an order).
type Actor struct {
	ID   string
	Name string
	Role string
}
