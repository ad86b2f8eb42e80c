package models

type Role string

const (
	RoleTraveler Role = "user"
	RoleAdmin    Role = "admin"
)

// Account is a registered user. Password is kept as entered.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
	Password string `json:"password"`
}

// Session is the public identity of the signed-in account.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

func (a *Account) Session() *Session {
	return &Session{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Phone: a.Phone,
		Role:  a.Role,
	}
}
