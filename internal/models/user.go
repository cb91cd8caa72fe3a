package models

// Role es el rol del actor que invoca una operación. Llega como dato
// opaco desde el host (la autenticación no es asunto de este núcleo).
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

// User referencia al actor; solo se usa en el borde para decidir permisos.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
