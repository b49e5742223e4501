package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"yatube/db"
	"yatube/logger"
	"yatube/models"

	"golang.org/x/crypto/argon2"
	"gorm.io/gorm"
)

// RegisterInput - данные для регистрации
type RegisterInput struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UserService struct {
	orm *gorm.DB
}

func NewUserService(orm *gorm.DB) *UserService {
	return &UserService{orm: orm}
}

// hashPassword - argon2id, формат "соль$хеш" в hex
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func checkPassword(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, want) == 1
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var exists int64
	err := db.ReadOnly(ctx, s.orm).Model(&models.User{}).Where("username = ?", in.Username).Count(&exists).Error
	if err != nil {
		return nil, fmt.Errorf("error checking user: %w", err)
	}
	if exists > 0 {
		return nil, ErrUserExists
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
	}
	if err := db.Write(ctx, s.orm).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Ctx(ctx).Info().Int64(logger.FieldUserID, user.ID).Msg("user registered")
	return user, nil
}

// Login проверяет пароль и выдает новый токен, старые токены пользователя удаляются
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	var user models.User
	err := db.ReadOnly(ctx, s.orm).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !checkPassword(user.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", nil, err
	}
	token := hex.EncodeToString(tokenBytes)

	err = db.Write(ctx, s.orm).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserTokens{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserTokens{UserID: user.ID, Token: token}).Error
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, &user, nil
}

func (s *UserService) Logout(ctx context.Context, userID int64) error {
	return db.Write(ctx, s.orm).Where("user_id = ?", userID).Delete(&models.UserTokens{}).Error
}

// UserByToken возвращает владельца токена или ErrInvalidToken
func (s *UserService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var user models.User
	err := db.ReadOnly(ctx, s.orm).
		Joins("JOIN user_tokens t ON t.user_id = users.id").
		Where("t.token = ?", token).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := db.ReadOnly(ctx, s.orm).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetStaff выдает или снимает права администратора
func (s *UserService) SetStaff(ctx context.Context, userID int64, staff bool) error {
	res := db.Write(ctx, s.orm).Model(&models.User{}).Where("id = ?", userID).Update("is_staff", staff)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
