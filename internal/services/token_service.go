package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/contenthub-backend/internal/domain/errors"
	"github.com/rafabene/contenthub-backend/internal/domain/ports"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
)

// TokenClaims é o claim set assinado nos dois tokens: {sub, email, role}
type TokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair agrupa um access token e um refresh token recém-emitidos
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService emite, verifica, rotaciona e revoga pares de tokens.
//
// Access e refresh usam segredos de assinatura separados; o vazamento do
// segredo de access não permite forjar refresh tokens, e vice-versa.
// Refresh tokens são adicionalmente persistidos: a linha no banco é a
// autoridade para revogação (logout invalida na hora, algo que um JWT
// puramente stateless não permite antes do vencimento natural).
type TokenService struct {
	userRepo      repositories.UserRepository
	tokenRepo     repositories.RefreshTokenRepository
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	logger        ports.Logger

	// now permite fixar o tempo nos testes
	now func() time.Time
}

// NewTokenService cria um novo TokenService
func NewTokenService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
	accessSecret, refreshSecret string,
	accessTTL, refreshTTL time.Duration,
	logger ports.Logger,
) *TokenService {
	return &TokenService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		logger:        logger,
		now:           time.Now,
	}
}

// Issue emite um novo par de tokens para o usuário e persiste o refresh
// token com ExpiresAt próprio, calculado na emissão. O exp interno do JWT
// e o ExpiresAt persistido são verificados de forma independente.
func (s *TokenService) Issue(ctx context.Context, user *entities.User) (TokenPair, error) {
	now := s.now()

	accessToken, err := s.sign(user, now, s.accessTTL, s.accessSecret)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := s.sign(user, now, s.refreshTTL, s.refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}

	record := &entities.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccess valida assinatura e expiração de um access token.
// Totalmente stateless: nenhuma consulta ao banco.
func (s *TokenService) VerifyAccess(token string) (*TokenClaims, error) {
	return s.parse(token, s.accessSecret)
}

// Rotate valida o refresh token apresentado, consome a linha persistida e
// emite um par novo. Uso único: a segunda apresentação do mesmo token
// falha, porque a linha já foi removida na primeira.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (TokenPair, error) {
	if _, err := s.parse(refreshToken, s.refreshSecret); err != nil {
		return TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	stored, err := s.tokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	// Ausente ou vencido no registro persistido: inválido, mesmo que a
	// assinatura ainda seja criptograficamente válida.
	if stored == nil || stored.IsExpired(s.now()) {
		return TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return TokenPair{}, err
	}
	if user == nil || !user.IsActive {
		return TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	if err := s.tokenRepo.DeleteByID(ctx, stored.ID); err != nil {
		return TokenPair{}, err
	}

	return s.Issue(ctx, user)
}

// Revoke remove todas as linhas persistidas com o valor dado.
// Ausência não é erro.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.DeleteByToken(ctx, refreshToken)
}

func (s *TokenService) sign(user *entities.User, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := TokenClaims{
		Email: user.Email.String(),
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// jti garante que dois tokens emitidos no mesmo segundo para o
			// mesmo usuário nunca sejam idênticos
			ID: uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) parse(tokenStr string, secret []byte) (*TokenClaims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, apperrors.ErrUnauthorized
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))

	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if claims, ok := t.Claims.(*TokenClaims); ok && t.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrUnauthorized
}
