package services

import (
	"context"
	"errors"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/models"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, apperrors.Internal("Failed to list users", err)
	}
	return users, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundWithID("User", id)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load user", err)
	}
	return &user, nil
}
