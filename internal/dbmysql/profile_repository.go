package dbmysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) ByIDs(ctx context.Context, ids []string) ([]Profile, error) {
	var profiles []Profile
	if len(ids) == 0 {
		return profiles, nil
	}

	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *Profile) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "current_city", "updated_at"}),
		}).
		Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// SyncProfile mirrors the account's display identity into the profile table.
func (r *ProfileRepository) SyncProfile(ctx context.Context, forumUID, username, city string) error {
	return r.Upsert(ctx, &Profile{ID: forumUID, Username: username, CurrentCity: city})
}
