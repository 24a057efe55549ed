package service

import (
	"errors"

	"akademisi_backend/internal/config"
	"akademisi_backend/internal/model"
	"akademisi_backend/internal/repository"
	"akademisi_backend/internal/util"
	"akademisi_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	LogRepo  *repository.RegistrationLogRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, logRepo *repository.RegistrationLogRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		LogRepo:  logRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	// 注册留痕，写入失败不阻断注册
	if err := s.LogRepo.Create(&model.RawRegistrationLog{
		Name:  user.Name,
		Email: user.Email,
		Kelas: user.Kelas,
		Role:  user.Role,
	}); err != nil {
		logger.Log.Warn("failed to record registration log", zap.Error(err))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if user.Disabled {
		return "", nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("userID", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWTSecret(), s.Cfg.JWTExpire())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
