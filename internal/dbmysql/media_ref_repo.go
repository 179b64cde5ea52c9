package dbmysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parentforum/internal/common"
)

type MediaRefRepository struct {
	db *gorm.DB
}

func NewMediaRefRepository(db *gorm.DB) *MediaRefRepository {
	return &MediaRefRepository{db: db}
}

func (r *MediaRefRepository) Create(ctx context.Context, ref *MediaRef) error {
	if err := r.db.WithContext(ctx).Create(ref).Error; err != nil {
		return fmt.Errorf("failed to create media ref: %w", err)
	}
	return nil
}

func (r *MediaRefRepository) ByFileID(ctx context.Context, fileID string) (*MediaRef, error) {
	var ref MediaRef
	err := r.db.WithContext(ctx).Where("file_id = ?", fileID).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media ref: %w", err)
	}
	return &ref, nil
}
