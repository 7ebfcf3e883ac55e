package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/database"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := database.Conn(ctx, r.db).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail matches case-insensitively.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := database.Conn(ctx, r.db).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) ListAreas(ctx context.Context, userID uint) ([]string, error) {
	var areas []string
	err := database.Conn(ctx, r.db).
		Model(&model.UserBusinessArea{}).
		Where("user_id = ?", userID).
		Order("business_area").
		Pluck("business_area", &areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

type businessAreaRepository struct {
	db *gorm.DB
}

func NewBusinessAreaRepository(db *gorm.DB) repository.BusinessAreaRepository {
	return &businessAreaRepository{db: db}
}

func (r *businessAreaRepository) List(ctx context.Context) ([]model.BusinessArea, error) {
	var areas []model.BusinessArea
	if err := database.Conn(ctx, r.db).Order("name").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *businessAreaRepository) ListByNames(ctx context.Context, names []string) ([]model.BusinessArea, error) {
	if len(names) == 0 {
		return []model.BusinessArea{}, nil
	}
	var areas []model.BusinessArea
	err := database.Conn(ctx, r.db).Where("name IN ?", names).Order("name").Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}
