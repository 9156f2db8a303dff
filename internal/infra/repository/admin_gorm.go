package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-bot/internal/models"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminGormRepository struct {
	db *gorm.DB
}

func NewAdminGormRepository(db *gorm.DB) *AdminGormRepository {
	return &AdminGormRepository{db: db}
}

func (r *AdminGormRepository) FindAdminByUsername(
	ctx context.Context,
	username string,
) (*models.AdminUser, error) {

	var admin models.AdminUser
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// UpsertAdmin creates the account or replaces its password hash.
func (r *AdminGormRepository) UpsertAdmin(
	ctx context.Context,
	username string,
	passwordHash string,
) (*models.AdminUser, error) {

	admin := models.AdminUser{Username: username, PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
		}).
		Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
