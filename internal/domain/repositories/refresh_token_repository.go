package repositories

import (
	"context"
	"time"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
)

// RefreshTokenRepository define a interface para persistência de refresh tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entities.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*entities.RefreshToken, error)
	// DeleteByID remove o registro pelo id (usado na rotação de uso único)
	DeleteByID(ctx context.Context, id string) error
	// DeleteByToken remove todos os registros com o valor dado; idempotente
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired remove registros já vencidos (manutenção)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
