package usecase

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/jwt"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// AuthUseCase valida las credenciales del operador y emite tokens JWT.
// El operador es único y viene de la configuración (hash bcrypt).
type AuthUseCase struct {
	cfg *config.Config
	log *logger.Logger
}

func NewAuthUseCase(cfg *config.Config, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{cfg: cfg, log: log.Component("auth")}
}

// Login compara las credenciales contra la configuración y devuelve un token
// firmado. Cualquier discrepancia responde ErrUnauthorized sin distinguir
// usuario de contraseña.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Username != uc.cfg.Auth.AdminUser {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.Auth.AdminPasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("username", in.Username).Msg("intento de login fallido")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.JWT.Secret, in.Username, "admin", uc.cfg.JWT.Issuer, uc.cfg.JWT.Expiration)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", in.Username).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.cfg.JWT.Expiration * 60}, nil
}
