package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"roadcode_backend/internal/model"
	"roadcode_backend/internal/repository"
	"roadcode_backend/internal/util"

	"gorm.io/gorm"
)

type SignService struct {
	Repo    *repository.SignRepository
	Storage *StorageService
}

func NewSignService(repo *repository.SignRepository, storage *StorageService) *SignService {
	return &SignService{Repo: repo, Storage: storage}
}

func (s *SignService) List(category string) ([]model.TrafficSign, error) {
	return s.Repo.List(category)
}

func (s *SignService) Get(id string) (*model.TrafficSign, error) {
	sign, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSignNotFound
		}
		return nil, err
	}
	return sign, nil
}

func (s *SignService) Create(sign *model.TrafficSign) error {
	return s.Repo.Create(sign)
}

// UploadImage stores a sign image through the configured storage provider
// and returns its public URL.
func (s *SignService) UploadImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	name := fmt.Sprintf("signs/%s%s", model.GenerateUUID(), filepath.Ext(filename))
	return s.Storage.Upload(ctx, name, reader, size, contentType)
}
