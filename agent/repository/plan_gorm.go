package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/socialcraft/content-agent/agent/domain"
)

// --- Persistence Models ---

// Posts persist as a JSON column: they are embedded in the plan, ordered,
// and identified by index, so rows of their own would only add joins.
type contentPlanModel struct {
	ID                string         `gorm:"primaryKey;column:id"`
	BrandKitID        string         `gorm:"column:brand_kit_id;not null;index"`
	Scope             string         `gorm:"column:scope;not null"`
	StartDate         string         `gorm:"column:start_date"`
	EndDate           string         `gorm:"column:end_date"`
	Status            string         `gorm:"column:status;not null;default:'draft';index"`
	Posts             sql.NullString `gorm:"column:posts;type:text"` // JSON
	ProgressTotal     int            `gorm:"column:progress_total;default:0"`
	ProgressScheduled int            `gorm:"column:progress_scheduled;default:0"`
	ProgressPosted    int            `gorm:"column:progress_posted;default:0"`
	ProgressFailed    int            `gorm:"column:progress_failed;default:0"`
	ProgressUpdatedAt *time.Time     `gorm:"column:progress_updated_at"`
	CreatedAt         time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;not null"`
}

func (contentPlanModel) TableName() string { return "content_plans" }

// --- Repository Implementation ---

type PlanGormRepository struct {
	db *gorm.DB
}

func NewPlanGormRepository(db *gorm.DB) *PlanGormRepository {
	return &PlanGormRepository{db: db}
}

func (r *PlanGormRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&contentPlanModel{})
}

func (r *PlanGormRepository) Create(ctx context.Context, plan domain.ContentPlan) error {
	model, err := toPlanModel(plan)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *PlanGormRepository) GetByID(ctx context.Context, id string) (domain.ContentPlan, error) {
	var m contentPlanModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ContentPlan{}, domain.ErrPlanNotFound
		}
		return domain.ContentPlan{}, err
	}
	return fromPlanModel(m)
}

func (r *PlanGormRepository) FindByStatus(ctx context.Context, statuses ...domain.PlanStatus) ([]domain.ContentPlan, error) {
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}

	var models []contentPlanModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", raw).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	plans := make([]domain.ContentPlan, 0, len(models))
	for _, m := range models {
		plan, err := fromPlanModel(m)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Update persists the whole plan row, last-write-wins.
func (r *PlanGormRepository) Update(ctx context.Context, plan domain.ContentPlan) error {
	model, err := toPlanModel(plan)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *PlanGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&contentPlanModel{}, "id = ?", id).Error
}

// --- Converters ---

func toPlanModel(plan domain.ContentPlan) (contentPlanModel, error) {
	model := contentPlanModel{
		ID:                plan.ID,
		BrandKitID:        plan.BrandKitID,
		Scope:             plan.Scope,
		StartDate:         plan.StartDate,
		EndDate:           plan.EndDate,
		Status:            string(plan.Status),
		ProgressTotal:     plan.Progress.Total,
		ProgressScheduled: plan.Progress.Scheduled,
		ProgressPosted:    plan.Progress.Posted,
		ProgressFailed:    plan.Progress.Failed,
		ProgressUpdatedAt: plan.Progress.LastUpdated,
		CreatedAt:         plan.CreatedAt,
		UpdatedAt:         plan.UpdatedAt,
	}

	if len(plan.Posts) > 0 {
		data, err := json.Marshal(plan.Posts)
		if err != nil {
			return contentPlanModel{}, err
		}
		model.Posts = sql.NullString{String: string(data), Valid: true}
	}
	return model, nil
}

func fromPlanModel(m contentPlanModel) (domain.ContentPlan, error) {
	plan := domain.ContentPlan{
		ID:         m.ID,
		BrandKitID: m.BrandKitID,
		Scope:      m.Scope,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Status:     domain.PlanStatus(m.Status),
		Progress: domain.ExecutionProgress{
			Total:       m.ProgressTotal,
			Scheduled:   m.ProgressScheduled,
			Posted:      m.ProgressPosted,
			Failed:      m.ProgressFailed,
			LastUpdated: m.ProgressUpdatedAt,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.Posts.Valid && m.Posts.String != "" {
		if err := json.Unmarshal([]byte(m.Posts.String), &plan.Posts); err != nil {
			return domain.ContentPlan{}, err
		}
	}
	return plan, nil
}
