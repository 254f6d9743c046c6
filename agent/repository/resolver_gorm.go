package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/socialcraft/content-agent/agent/domain"
)

// --- Persistence Models ---

type brandKitModel struct {
	ID              string         `gorm:"primaryKey;column:id"`
	Name            string         `gorm:"column:name;not null"`
	SocialProfileID sql.NullString `gorm:"column:social_profile_id;index"`
	PromoText       sql.NullString `gorm:"column:promo_text"`
	CreatedAt       time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;not null"`
}

func (brandKitModel) TableName() string { return "brand_kits" }

type socialProfileModel struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (socialProfileModel) TableName() string { return "social_profiles" }

type socialAccountModel struct {
	ID                string    `gorm:"primaryKey;column:id"`
	SocialProfileID   string    `gorm:"column:social_profile_id;not null;index"`
	Platform          string    `gorm:"column:platform;not null"`
	ExternalAccountID string    `gorm:"column:external_account_id;not null"`
	Username          string    `gorm:"column:username"`
	Connected         bool      `gorm:"column:connected;default:true"`
	CreatedAt         time.Time `gorm:"column:created_at;not null"`
}

func (socialAccountModel) TableName() string { return "social_accounts" }

// --- Repository Implementation ---

// ResolverGormRepository reads the brand kit / social profile / account
// tables maintained by the upstream application. The agent never writes to
// them.
type ResolverGormRepository struct {
	db *gorm.DB
}

func NewResolverGormRepository(db *gorm.DB) *ResolverGormRepository {
	return &ResolverGormRepository{db: db}
}

func (r *ResolverGormRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&brandKitModel{},
		&socialProfileModel{},
		&socialAccountModel{},
	)
}

func (r *ResolverGormRepository) GetBrandKit(ctx context.Context, id string) (domain.BrandKit, error) {
	var m brandKitModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BrandKit{}, domain.ErrBrandKitNotFound
		}
		return domain.BrandKit{}, err
	}
	return domain.BrandKit{
		ID:              m.ID,
		Name:            m.Name,
		SocialProfileID: m.SocialProfileID.String,
		PromoText:       m.PromoText.String,
	}, nil
}

func (r *ResolverGormRepository) GetSocialProfile(ctx context.Context, id string) (domain.SocialProfile, error) {
	var m socialProfileModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SocialProfile{}, domain.ErrProfileNotFound
		}
		return domain.SocialProfile{}, err
	}
	return domain.SocialProfile{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}

func (r *ResolverGormRepository) ListAccounts(ctx context.Context, profileID string) ([]domain.SocialAccount, error) {
	var models []socialAccountModel
	if err := r.db.WithContext(ctx).
		Where("social_profile_id = ?", profileID).
		Find(&models).Error; err != nil {
		return nil, err
	}

	accounts := make([]domain.SocialAccount, len(models))
	for i, m := range models {
		accounts[i] = domain.SocialAccount{
			ID:                m.ID,
			SocialProfileID:   m.SocialProfileID,
			Platform:          m.Platform,
			ExternalAccountID: m.ExternalAccountID,
			Username:          m.Username,
			Connected:         m.Connected,
			CreatedAt:         m.CreatedAt,
		}
	}
	return accounts, nil
}
