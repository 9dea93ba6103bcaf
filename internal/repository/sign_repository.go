package repository

import (
	"roadcode_backend/internal/model"

	"gorm.io/gorm"
)

type SignRepository struct {
	DB *gorm.DB
}

func NewSignRepository(db *gorm.DB) *SignRepository {
	return &SignRepository{DB: db}
}

func (r *SignRepository) Create(sign *model.TrafficSign) error {
	return r.DB.Create(sign).Error
}

func (r *SignRepository) FindByID(id string) (*model.TrafficSign, error) {
	var sign model.TrafficSign
	err := r.DB.First(&sign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sign, nil
}

func (r *SignRepository) List(category string) ([]model.TrafficSign, error) {
	var signs []model.TrafficSign
	query := r.DB.Model(&model.TrafficSign{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("name asc").Find(&signs).Error
	return signs, err
}
