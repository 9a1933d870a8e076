package services

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/contenthub-backend/internal/domain/errors"
	"github.com/rafabene/contenthub-backend/internal/domain/ports"
	"github.com/rafabene/contenthub-backend/internal/domain/valueobjects"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/persistence/memory"
)

func TestServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Services Suite")
}

// nopLogger descarta tudo; os testes não verificam logs
type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) With(args ...any) ports.Logger { return nopLogger{} }

func mustEmail(raw string) valueobjects.Email {
	email, err := valueobjects.NewEmail(raw)
	Expect(err).NotTo(HaveOccurred())
	return email
}

var _ = Describe("TokenService", func() {
	var (
		ctx      context.Context
		store    *memory.Store
		tokenSvc *TokenService
		user     *entities.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.NewStore()
		tokenSvc = NewTokenService(
			store.Users, store.RefreshTokens,
			"access-secret", "refresh-secret",
			15*time.Minute, 720*time.Hour,
			nopLogger{},
		)

		user = &entities.User{
			Email:        mustEmail("editor@example.com"),
			Name:         "Editor",
			PasswordHash: "irrelevant",
			Role:         entities.RoleEditor,
			IsActive:     true,
		}
		Expect(store.Users.Create(ctx, user)).To(Succeed())
	})

	Describe("Issue", func() {
		It("emite um par cujo access token carrega sub, email e role", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())
			Expect(pair.AccessToken).NotTo(BeEmpty())
			Expect(pair.RefreshToken).NotTo(BeEmpty())

			claims, err := tokenSvc.VerifyAccess(pair.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Subject).To(Equal(user.ID))
			Expect(claims.Email).To(Equal("editor@example.com"))
			Expect(claims.Role).To(Equal(string(entities.RoleEditor)))
		})

		It("persiste o refresh token emitido", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			stored, err := store.RefreshTokens.FindByToken(ctx, pair.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).NotTo(BeNil())
			Expect(stored.UserID).To(Equal(user.ID))
		})
	})

	Describe("VerifyAccess", func() {
		It("rejeita um refresh token apresentado como access token", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			// assinado com outro segredo
			_, err = tokenSvc.VerifyAccess(pair.RefreshToken)
			Expect(err).To(MatchError(apperrors.ErrUnauthorized))
		})

		It("rejeita um access token expirado", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			tokenSvc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

			_, err = tokenSvc.VerifyAccess(pair.AccessToken)
			Expect(err).To(MatchError(apperrors.ErrUnauthorized))
		})

		It("rejeita lixo", func() {
			_, err := tokenSvc.VerifyAccess("not-a-jwt")
			Expect(err).To(MatchError(apperrors.ErrUnauthorized))
		})
	})

	Describe("Rotate", func() {
		It("emite um par novo e consome o token apresentado", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			rotated, err := tokenSvc.Rotate(ctx, pair.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(rotated.RefreshToken).NotTo(Equal(pair.RefreshToken))

			stored, err := store.RefreshTokens.FindByToken(ctx, pair.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
		})

		It("rejeita a segunda apresentação do mesmo token", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenSvc.Rotate(ctx, pair.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenSvc.Rotate(ctx, pair.RefreshToken)
			Expect(err).To(MatchError(apperrors.ErrInvalidRefreshToken))
		})

		It("rejeita um token com registro persistido vencido", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			tokenSvc.now = func() time.Time { return time.Now().Add(721 * time.Hour) }

			_, err = tokenSvc.Rotate(ctx, pair.RefreshToken)
			Expect(err).To(MatchError(apperrors.ErrInvalidRefreshToken))
		})

		It("rejeita rotação para conta desativada", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			user.IsActive = false
			Expect(store.Users.Update(ctx, user)).To(Succeed())

			_, err = tokenSvc.Rotate(ctx, pair.RefreshToken)
			Expect(err).To(MatchError(apperrors.ErrInvalidRefreshToken))
		})

		It("rejeita um token revogado por logout", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			Expect(tokenSvc.Revoke(ctx, pair.RefreshToken)).To(Succeed())

			_, err = tokenSvc.Rotate(ctx, pair.RefreshToken)
			Expect(err).To(MatchError(apperrors.ErrInvalidRefreshToken))
		})
	})

	Describe("Revoke", func() {
		It("é idempotente", func() {
			pair, err := tokenSvc.Issue(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			Expect(tokenSvc.Revoke(ctx, pair.RefreshToken)).To(Succeed())
			Expect(tokenSvc.Revoke(ctx, pair.RefreshToken)).To(Succeed())
		})
	})
})

var _ = Describe("AuthService", func() {
	var (
		ctx     context.Context
		store   *memory.Store
		authSvc *AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.NewStore()
		tokenSvc := NewTokenService(
			store.Users, store.RefreshTokens,
			"access-secret", "refresh-secret",
			168*time.Hour, 720*time.Hour,
			nopLogger{},
		)
		authSvc = NewAuthService(store.Users, tokenSvc, memory.NewUnitOfWork(), nopLogger{})
	})

	registerInput := RegisterInput{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "New User",
	}

	Describe("Register", func() {
		It("cria o usuário com o papel default e já emite tokens", func() {
			user, pair, err := authSvc.Register(ctx, registerInput)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.DefaultRole))
			Expect(user.IsActive).To(BeTrue())
			Expect(pair.AccessToken).NotTo(BeEmpty())
			Expect(pair.RefreshToken).NotTo(BeEmpty())
		})

		It("armazena a senha como hash bcrypt", func() {
			user, _, err := authSvc.Register(ctx, registerInput)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.PasswordHash).NotTo(ContainSubstring("secret123"))
			Expect(bcrypt.CompareHashAndPassword(
				[]byte(user.PasswordHash), []byte("secret123"),
			)).To(Succeed())
		})

		It("normaliza o email para minúsculas", func() {
			input := registerInput
			input.Email = "  New@Example.COM "
			user, _, err := authSvc.Register(ctx, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email.String()).To(Equal("new@example.com"))
		})

		It("rejeita email já registrado", func() {
			_, _, err := authSvc.Register(ctx, registerInput)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = authSvc.Register(ctx, registerInput)
			Expect(err).To(MatchError(apperrors.ErrEmailAlreadyExists))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			_, _, err := authSvc.Register(ctx, registerInput)
			Expect(err).NotTo(HaveOccurred())
		})

		It("autentica com credenciais corretas", func() {
			user, pair, err := authSvc.Login(ctx, "new@example.com", "secret123")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email.String()).To(Equal("new@example.com"))
			Expect(pair.AccessToken).NotTo(BeEmpty())
		})

		It("retorna o mesmo erro para email desconhecido, senha errada e conta inativa", func() {
			_, _, unknownErr := authSvc.Login(ctx, "nobody@example.com", "secret123")
			Expect(unknownErr).To(MatchError(apperrors.ErrInvalidCredentials))

			_, _, wrongPassErr := authSvc.Login(ctx, "new@example.com", "wrong")
			Expect(wrongPassErr).To(MatchError(apperrors.ErrInvalidCredentials))

			stored, err := store.Users.FindByEmail(ctx, "new@example.com")
			Expect(err).NotTo(HaveOccurred())
			stored.IsActive = false
			Expect(store.Users.Update(ctx, stored)).To(Succeed())

			_, _, inactiveErr := authSvc.Login(ctx, "new@example.com", "secret123")
			Expect(inactiveErr).To(MatchError(apperrors.ErrInvalidCredentials))
		})
	})

	Describe("Refresh", func() {
		It("rotaciona um token válido", func() {
			_, pair, err := authSvc.Register(ctx, registerInput)
			Expect(err).NotTo(HaveOccurred())

			rotated, err := authSvc.Refresh(ctx, pair.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(rotated.RefreshToken).NotTo(Equal(pair.RefreshToken))
		})

		It("colapsa qualquer falha no mesmo erro genérico", func() {
			_, err := authSvc.Refresh(ctx, "garbage")
			Expect(err).To(MatchError(apperrors.ErrInvalidRefreshToken))
		})
	})

	Describe("Logout", func() {
		It("invalida o refresh token para rotações futuras", func() {
			_, pair, err := authSvc.Register(ctx, registerInput)
			Expect(err).NotTo(HaveOccurred())

			authSvc.Logout(ctx, pair.RefreshToken)

			_, err = authSvc.Refresh(ctx, pair.RefreshToken)
			Expect(err).To(MatchError(apperrors.ErrInvalidRefreshToken))
		})
	})

	Describe("Me", func() {
		It("retorna o perfil do usuário", func() {
			user, _, err := authSvc.Register(ctx, registerInput)
			Expect(err).NotTo(HaveOccurred())

			me, err := authSvc.Me(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(me.Email.String()).To(Equal("new@example.com"))
		})

		It("retorna erro para id desconhecido", func() {
			_, err := authSvc.Me(ctx, "missing")
			Expect(err).To(MatchError(apperrors.ErrUserNotFound))
		})
	})
})
