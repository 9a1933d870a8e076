package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
)

// RefreshTokenRepository implementa repositories.RefreshTokenRepository
type RefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository cria um novo RefreshTokenRepository
func NewRefreshTokenRepository(db *gorm.DB) repositories.RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *entities.RefreshToken) error {
	model := &RefreshTokenModel{
		ID:        token.ID,
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt.Unix(),
	}
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	token.ID = model.ID
	token.CreatedAt = time.Unix(model.CreatedAt, 0)
	return nil
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*entities.RefreshToken, error) {
	var model RefreshTokenModel

	db := getDB(ctx, r.db)
	if err := db.Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entities.RefreshToken{
		ID:        model.ID,
		Token:     model.Token,
		UserID:    model.UserID,
		ExpiresAt: time.Unix(model.ExpiresAt, 0),
		CreatedAt: time.Unix(model.CreatedAt, 0),
	}, nil
}

func (r *RefreshTokenRepository) DeleteByID(ctx context.Context, id string) error {
	db := getDB(ctx, r.db)
	return db.Where("id = ?", id).Delete(&RefreshTokenModel{}).Error
}

func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	db := getDB(ctx, r.db)
	// Ausência não é erro: revogação é idempotente
	return db.Where("token = ?", token).Delete(&RefreshTokenModel{}).Error
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	db := getDB(ctx, r.db)
	result := db.Where("expires_at < ?", now.Unix()).Delete(&RefreshTokenModel{})
	return result.RowsAffected, result.Error
}
