package entities

// Category representa uma categoria de conteúdo (dados de referência)
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
}
