package authenticating

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/academy-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/academy-dashboard-api/internal/config"
	"github.com/vfg2006/academy-dashboard-api/internal/domain"
	"github.com/vfg2006/academy-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/academy-dashboard-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type Authenticator interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, req *domain.UpdateUserRequest) error
	ListUser(ctx context.Context) ([]*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	SetUserModalities(ctx context.Context, userID int, modalities []string) ([]domain.Modality, error)
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" || user.Name == "" || user.PasswordHash == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email, nome e senha são obrigatórios")
	}

	if user.RoleID == 0 {
		user.RoleID = domain.RoleInstructor
	}
	if !validRole(user.RoleID) {
		return nil, NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidFormat, fmt.Sprintf("perfil %d", user.RoleID))
	}

	if err := ValidatePasswordStrength(user.PasswordHash); err != nil {
		return nil, err
	}

	modalities, err := parseModalities(user.LinkedModalities)
	if err != nil {
		return nil, err
	}
	user.LinkedModalities = modalities

	user.Email = handleEmail(user.Email)

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	user.PasswordHash = string(hashedPassword)
	user.Active = true

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("authenticating: erro ao criar usuário")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	created.PasswordHash = ""
	return created, nil
}

func (s *Service) UpdateUser(ctx context.Context, req *domain.UpdateUserRequest) error {
	if req.ID == 0 {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID é obrigatório")
	}

	user, err := s.userRepo.GetUserByID(ctx, req.ID)
	if err != nil {
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, req.ID, "Erro ao consultar usuário")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, req.ID, "Usuário não encontrado")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Email != nil {
		user.Email = handleEmail(*req.Email)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.RoleID != nil {
		if !validRole(*req.RoleID) {
			return NewUserAuthError(ErrInvalidRole, apiErrors.ErrInvalidFormat, req.ID, fmt.Sprintf("perfil %d", *req.RoleID))
		}
		user.RoleID = *req.RoleID
	}
	if req.Deleted != nil && *req.Deleted {
		now := time.Now()
		user.Deleted = true
		user.DeletedAt = &now
	}

	// A senha só é regravada pelo fluxo de troca de senha
	user.PasswordHash = ""

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, req.ID, "Erro ao atualizar usuário")
	}

	return nil
}

func (s *Service) ListUser(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.ListUser(ctx)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar usuários")
	}

	return users, nil
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, handleEmail(email))
	if err != nil {
		return "", NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := generateJWT(user, s.cfg.SecretKey, time.Now())
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

func generateJWT(user *domain.User, secretKey string, now time.Time) (string, error) {
	claims := domain.Claims{
		UserID:         user.ID,
		UserName:       user.Name,
		UserLastname:   user.Lastname,
		UserEmail:      user.Email,
		UserActive:     user.Active,
		UserRoleID:     user.RoleID,
		UserModalities: user.LinkedModalities,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ValidateToken confere a assinatura do token.
// Perfil, status e modalidades vêm sempre do cadastro atual, não do token.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("authenticating: erro ao recarregar usuário do token")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, claims.UserID, "Erro ao consultar usuário")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrInvalidToken, claims.UserID, "")
	}
	if !user.Active {
		return nil, NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, claims.UserID, "")
	}

	claims.UserActive = user.Active
	claims.UserRoleID = user.RoleID
	claims.UserModalities = user.LinkedModalities

	return claims, nil
}

// ValidatePasswordStrength verifica se a senha atende aos requisitos de segurança.
// A senha deve conter pelo menos 8 caracteres, incluindo maiúsculas, minúsculas e números.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, "a senha deve conter pelo menos 8 caracteres")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasNumber = true
		}
	}

	if !hasUpper {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, "a senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, "a senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, "a senha deve conter pelo menos um número")
	}

	return nil
}

// ChangePassword permite que um usuário altere sua própria senha
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrWrongPassword, apiErrors.ErrInvalidCredentials, userID, "")
	}

	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrInvalidFormat, userID, "")
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewUserAuthError(err, apiErrors.ErrInternalServer, userID, "Erro ao gerar hash da senha")
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao atualizar senha")
	}

	return nil
}

// SetUserModalities substitui as modalidades que o usuário pode consultar
func (s *Service) SetUserModalities(ctx context.Context, userID int, codes []string) ([]domain.Modality, error) {
	raw := make([]domain.Modality, 0, len(codes))
	for _, code := range codes {
		raw = append(raw, domain.Modality(code))
	}

	modalities, err := parseModalities(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	if err := s.userRepo.ReplaceUserModalities(ctx, userID, modalities); err != nil {
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao vincular modalidades")
	}

	return modalities, nil
}

func parseModalities(values []domain.Modality) ([]domain.Modality, error) {
	seen := make(map[domain.Modality]bool, len(values))
	modalities := make([]domain.Modality, 0, len(values))

	for _, value := range values {
		modality, ok := domain.ParseModality(string(value))
		if !ok {
			return nil, NewAuthError(ErrInvalidModality, apiErrors.ErrInvalidFormat, string(value))
		}
		if seen[modality] {
			continue
		}
		seen[modality] = true
		modalities = append(modalities, modality)
	}

	return modalities, nil
}

func validRole(roleID int) bool {
	return roleID == domain.RoleAdmin || roleID == domain.RoleManager || roleID == domain.RoleInstructor
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}
