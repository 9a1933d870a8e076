package dto

// UpdateUserRequest representa a requisição admin para atualizar um usuário
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN EDITOR VIEWER"`
	IsActive *bool   `json:"isActive"`
}

// CategoryRequest representa a requisição para criar/atualizar uma categoria
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Slug        string `json:"slug" binding:"required,min=1,max=255"`
	Description string `json:"description"`
}
