package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "segredo-de-teste"

func newTestService(t *testing.T) (*mocks.MockUserRepository, Authenticator) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	return repo, NewService(repo, &config.Config{SecretKey: testSecret})
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func assertAuthCode(t *testing.T, err error, base error, code string) {
	t.Helper()
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr), "esperado AuthError, obtido %v", err)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, code, authErr.Code)
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"curta", "Ab1", false},
		{"sem maiúscula", "abcdefg1", false},
		{"sem minúscula", "ABCDEFG1", false},
		{"sem número", "Abcdefgh", false},
		{"válida", "Academia2025", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrWeakPassword)
		})
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cria professor com modalidades normalizadas", func(t *testing.T) {
		repo, service := newTestService(t)

		repo.EXPECT().GetUserByEmail(ctx, "prof@academia.com").Return(nil, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
			assert.NotEqual(t, "Academia2025", u.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Academia2025")))
			assert.Equal(t, domain.RoleInstructor, u.RoleID)
			assert.True(t, u.Active)
			assert.Equal(t, []domain.Modality{domain.ModalityKravmaga, domain.ModalityPilates}, u.LinkedModalities)
			u.ID = 7
			return u, nil
		})

		created, err := service.CreateUser(ctx, &domain.User{
			Name:             "Ana",
			Email:            " Prof@Academia.com ",
			PasswordHash:     "Academia2025",
			LinkedModalities: []domain.Modality{"krav", "PILATES", "kravmaga"},
		})

		require.NoError(t, err)
		assert.Equal(t, 7, created.ID)
		assert.Empty(t, created.PasswordHash)
	})

	t.Run("email já cadastrado", func(t *testing.T) {
		repo, service := newTestService(t)

		repo.EXPECT().GetUserByEmail(ctx, "ana@academia.com").Return(&domain.User{ID: 1}, nil)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Ana", Email: "ana@academia.com", PasswordHash: "Academia2025"})
		assertAuthCode(t, err, ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists)
	})

	t.Run("modalidade desconhecida", func(t *testing.T) {
		_, service := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{
			Name:             "Ana",
			Email:            "ana@academia.com",
			PasswordHash:     "Academia2025",
			LinkedModalities: []domain.Modality{"natação"},
		})
		assertAuthCode(t, err, ErrInvalidModality, apiErrors.ErrInvalidFormat)
	})

	t.Run("perfil inválido", func(t *testing.T) {
		_, service := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Ana", Email: "ana@academia.com", PasswordHash: "Academia2025", RoleID: 9})
		assertAuthCode(t, err, ErrInvalidRole, apiErrors.ErrInvalidFormat)
	})

	t.Run("dados ausentes", func(t *testing.T) {
		_, service := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{Email: "ana@academia.com"})
		assertAuthCode(t, err, ErrMissingRequiredData, apiErrors.ErrMissingRequiredData)
	})
}

func TestLoginUserAndValidateToken(t *testing.T) {
	ctx := context.Background()
	repo, service := newTestService(t)

	user := &domain.User{
		ID:               3,
		Name:             "Bruno",
		Email:            "bruno@academia.com",
		PasswordHash:     hashed(t, "Academia2025"),
		Active:           true,
		RoleID:           domain.RoleInstructor,
		LinkedModalities: []domain.Modality{domain.ModalityMuay},
	}
	repo.EXPECT().GetUserByEmail(ctx, "bruno@academia.com").Return(user, nil)

	token, err := service.LoginUser(ctx, "BRUNO@academia.com", "Academia2025")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	repo.EXPECT().GetUserByID(ctx, 3).Return(user, nil)

	claims, err := service.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, domain.RoleInstructor, claims.UserRoleID)
	assert.True(t, claims.CanAccessModality(domain.ModalityMuay))
	assert.False(t, claims.CanAccessModality(domain.ModalityJudo))
}

func TestLoginUser_Falhas(t *testing.T) {
	ctx := context.Background()

	t.Run("usuário inexistente", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "x@academia.com").Return(nil, nil)

		_, err := service.LoginUser(ctx, "x@academia.com", "Academia2025")
		assertAuthCode(t, err, ErrUserNotFound, apiErrors.ErrUserNotFound)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("usuário desativado", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "x@academia.com").Return(&domain.User{ID: 2, Active: false}, nil)

		_, err := service.LoginUser(ctx, "x@academia.com", "Academia2025")
		assertAuthCode(t, err, ErrUserDisabled, apiErrors.ErrUserDisabled)
	})

	t.Run("senha incorreta", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "x@academia.com").Return(&domain.User{ID: 2, Active: true, PasswordHash: hashed(t, "Academia2025")}, nil)

		_, err := service.LoginUser(ctx, "x@academia.com", "Errada2025")
		assertAuthCode(t, err, ErrInvalidCredentials, apiErrors.ErrInvalidCredentials)
	})

	t.Run("erro no banco", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "x@academia.com").Return(nil, errors.New("conexão perdida"))

		_, err := service.LoginUser(ctx, "x@academia.com", "Academia2025")
		assertAuthCode(t, err, ErrDatabaseOperation, apiErrors.ErrDatabaseOperation)
	})
}

func TestValidateToken_Invalido(t *testing.T) {
	_, service := newTestService(t)

	_, err := service.ValidateToken(context.Background(), "nao-e-um-jwt")
	assertAuthCode(t, err, ErrInvalidToken, apiErrors.ErrInvalidToken)

	expired, err := generateJWT(&domain.User{ID: 1}, testSecret, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	_, err = service.ValidateToken(context.Background(), expired)
	assertAuthCode(t, err, ErrInvalidToken, apiErrors.ErrInvalidToken)

	otherKey, err := generateJWT(&domain.User{ID: 1}, "outra-chave", time.Now())
	require.NoError(t, err)
	_, err = service.ValidateToken(context.Background(), otherKey)
	assertAuthCode(t, err, ErrInvalidToken, apiErrors.ErrInvalidToken)
}

func TestValidateToken_RecarregaAcesso(t *testing.T) {
	ctx := context.Background()

	issued := &domain.User{
		ID:               4,
		Email:            "carla@academia.com",
		Active:           true,
		RoleID:           domain.RoleInstructor,
		LinkedModalities: []domain.Modality{domain.ModalityPilates},
	}
	token, err := generateJWT(issued, testSecret, time.Now())
	require.NoError(t, err)

	t.Run("modalidades alteradas valem sem novo login", func(t *testing.T) {
		repo, service := newTestService(t)
		current := *issued
		current.LinkedModalities = []domain.Modality{domain.ModalityMuay}
		repo.EXPECT().GetUserByID(ctx, 4).Return(&current, nil)

		claims, err := service.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.False(t, claims.CanAccessModality(domain.ModalityPilates))
		assert.True(t, claims.CanAccessModality(domain.ModalityMuay))
	})

	t.Run("perfil promovido", func(t *testing.T) {
		repo, service := newTestService(t)
		current := *issued
		current.RoleID = domain.RoleManager
		repo.EXPECT().GetUserByID(ctx, 4).Return(&current, nil)

		claims, err := service.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleManager, claims.UserRoleID)
		assert.True(t, claims.CanAccessModality(domain.ModalityJudo))
	})

	t.Run("usuário removido", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByID(ctx, 4).Return(nil, nil)

		_, err := service.ValidateToken(ctx, token)
		assertAuthCode(t, err, ErrUserNotFound, apiErrors.ErrInvalidToken)
	})

	t.Run("usuário desativado", func(t *testing.T) {
		repo, service := newTestService(t)
		current := *issued
		current.Active = false
		repo.EXPECT().GetUserByID(ctx, 4).Return(&current, nil)

		_, err := service.ValidateToken(ctx, token)
		assertAuthCode(t, err, ErrUserDisabled, apiErrors.ErrUserDisabled)
	})

	t.Run("erro no banco", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByID(ctx, 4).Return(nil, errors.New("conexão perdida"))

		_, err := service.ValidateToken(ctx, token)
		assertAuthCode(t, err, ErrDatabaseOperation, apiErrors.ErrDatabaseOperation)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	repo, service := newTestService(t)

	name := "Carla"
	deleted := true
	repo.EXPECT().GetUserByID(ctx, 5).Return(&domain.User{ID: 5, Name: "Ana", PasswordHash: "hash", Active: true}, nil)
	repo.EXPECT().UpdateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
		assert.Equal(t, "Carla", u.Name)
		assert.Empty(t, u.PasswordHash)
		assert.True(t, u.Deleted)
		assert.NotNil(t, u.DeletedAt)
		return nil
	})

	require.NoError(t, service.UpdateUser(ctx, &domain.UpdateUserRequest{ID: 5, Name: &name, Deleted: &deleted}))
}

func TestUpdateUser_NaoEncontrado(t *testing.T) {
	ctx := context.Background()
	repo, service := newTestService(t)
	repo.EXPECT().GetUserByID(ctx, 5).Return(nil, nil)

	err := service.UpdateUser(ctx, &domain.UpdateUserRequest{ID: 5})
	assertAuthCode(t, err, ErrUserNotFound, apiErrors.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("troca com sucesso", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByID(ctx, 4).Return(&domain.User{ID: 4, PasswordHash: hashed(t, "Academia2025")}, nil)
		repo.EXPECT().UpdateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("NovaSenha2026")))
			return nil
		})

		require.NoError(t, service.ChangePassword(ctx, 4, "Academia2025", "NovaSenha2026"))
	})

	t.Run("senha atual incorreta", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByID(ctx, 4).Return(&domain.User{ID: 4, PasswordHash: hashed(t, "Academia2025")}, nil)

		err := service.ChangePassword(ctx, 4, "Errada2025", "NovaSenha2026")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("nova senha igual", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByID(ctx, 4).Return(&domain.User{ID: 4, PasswordHash: hashed(t, "Academia2025")}, nil)

		err := service.ChangePassword(ctx, 4, "Academia2025", "Academia2025")
		assert.ErrorIs(t, err, ErrSamePassword)
	})
}

func TestSetUserModalities(t *testing.T) {
	ctx := context.Background()

	t.Run("substitui vínculos", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByID(ctx, 8).Return(&domain.User{ID: 8}, nil)
		repo.EXPECT().ReplaceUserModalities(ctx, 8, []domain.Modality{domain.ModalityJudo, domain.ModalityKravmaga}).Return(nil)

		modalities, err := service.SetUserModalities(ctx, 8, []string{"judo", "krav"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Modality{domain.ModalityJudo, domain.ModalityKravmaga}, modalities)
	})

	t.Run("modalidade inválida não consulta o banco", func(t *testing.T) {
		_, service := newTestService(t)

		_, err := service.SetUserModalities(ctx, 8, []string{"natação"})
		assert.ErrorIs(t, err, ErrInvalidModality)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		repo, service := newTestService(t)
		repo.EXPECT().GetUserByID(ctx, 8).Return(nil, nil)

		_, err := service.SetUserModalities(ctx, 8, []string{"judo"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
