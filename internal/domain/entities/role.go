package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// DefaultRole é o papel atribuído a novos usuários no registro.
// Nunca confiar em role vindo do cliente.
const DefaultRole = RoleViewer

// IsValid verifica se o role é um dos valores conhecidos
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanAuthor verifica se o role pode criar conteúdo
func (r Role) CanAuthor() bool {
	return r == RoleAdmin || r == RoleEditor
}

// ParseRole converte uma string em Role
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}
