package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/contenthub-backend/internal/domain/errors"
	"github.com/rafabene/contenthub-backend/internal/domain/ports"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
	"github.com/rafabene/contenthub-backend/internal/domain/valueobjects"
)

// bcryptCost é o fator de custo do hash de senha
const bcryptCost = 10

// AuthService orquestra registro, login, refresh e logout
type AuthService struct {
	userRepo     repositories.UserRepository
	tokenService *TokenService
	uow          ports.UnitOfWork
	logger       ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenService *TokenService,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
		uow:          uow,
		logger:       logger,
	}
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register cria um novo usuário e emite o primeiro par de tokens.
// O papel é sempre o default (VIEWER), independente do que o caller envie.
// A senha em texto claro nunca é persistida nem logada.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, TokenPair, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, TokenPair{}, err
	}
	if existing != nil {
		return nil, TokenPair{}, apperrors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, TokenPair{}, err
	}

	user := &entities.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         entities.DefaultRole,
		IsActive:     true,
	}
	if err := user.Validate(); err != nil {
		return nil, TokenPair{}, err
	}

	var pair TokenPair
	// Usuário e refresh token entram na mesma transação
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		pair, err = s.tokenService.Issue(txCtx, user)
		return err
	})
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email.String())
	return user, pair, nil
}

// Login autentica por email e senha.
// Usuário ausente, conta inativa e senha incorreta retornam exatamente o
// mesmo erro genérico, para não permitir enumeração de contas.
func (s *AuthService) Login(ctx context.Context, emailStr, password string) (*entities.User, TokenPair, error) {
	email, err := valueobjects.NewEmail(emailStr)
	if err != nil {
		return nil, TokenPair{}, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, TokenPair{}, err
	}
	if user == nil {
		return nil, TokenPair{}, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, TokenPair{}, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.tokenService.Issue(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Refresh rotaciona o refresh token apresentado.
// Qualquer falha (assinatura, expiração, desconhecido, já usado) colapsa
// no mesmo erro genérico.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	pair, err := s.tokenService.Rotate(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, apperrors.ErrInvalidRefreshToken
	}
	return pair, nil
}

// Logout revoga o refresh token. Sempre bem-sucedido do ponto de vista do
// caller; falhas de storage são apenas logadas.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if err := s.tokenService.Revoke(ctx, refreshToken); err != nil {
		s.logger.Error("failed to revoke refresh token", "error", err)
	}
}

// Me retorna o perfil do próprio usuário autenticado
func (s *AuthService) Me(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
