package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string `gorm:"type:varchar(500);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(50);not null;index"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    int64  `gorm:"autoCreateTime;index"`
	UpdatedAt    int64  `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// RefreshTokenModel é o model GORM para refresh tokens persistidos
type RefreshTokenModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	Token     string `gorm:"type:text;uniqueIndex;not null"`
	UserID    string `gorm:"type:uuid;not null;index"`
	ExpiresAt int64  `gorm:"not null;index"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ContentModel é o model GORM para conteúdo editorial
type ContentModel struct {
	ID          string  `gorm:"type:uuid;primary_key"`
	Title       string  `gorm:"type:varchar(500);not null"`
	Slug        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Body        string  `gorm:"type:text;not null"`
	Excerpt     string  `gorm:"type:text"`
	Status      string  `gorm:"type:varchar(50);not null;index"`
	AuthorID    string  `gorm:"type:uuid;not null;index"`
	CategoryID  *string `gorm:"type:uuid;index"`
	PublishedAt *int64
	CreatedAt   int64 `gorm:"autoCreateTime;index"`
	UpdatedAt   int64 `gorm:"autoUpdateTime"`

	Author   UserModel      `gorm:"foreignKey:AuthorID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
}

func (ContentModel) TableName() string {
	return "contents"
}

// CategoryModel é o model GORM para categorias
type CategoryModel struct {
	ID          string `gorm:"type:uuid;primary_key"`
	Name        string `gorm:"type:varchar(255);not null"`
	Slug        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
