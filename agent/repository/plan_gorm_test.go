package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/socialcraft/content-agent/agent/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormLogger.Default.LogMode(gormLogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func newTestPlanRepo(t *testing.T) *PlanGormRepository {
	t.Helper()
	repo := NewPlanGormRepository(openTestDB(t))
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func samplePlan(id string, status domain.PlanStatus) domain.ContentPlan {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return domain.ContentPlan{
		ID:         id,
		BrandKitID: "kit-1",
		Scope:      "week",
		StartDate:  "2024-03-04",
		EndDate:    "2024-03-10",
		Status:     status,
		Posts: []domain.Post{
			{
				Date:      "2024-03-04",
				Time:      "09:00",
				Platforms: []domain.Platform{domain.PlatformInstagram},
				Caption:   "Monday kickoff",
				Hashtags:  []string{"monday"},
				Status:    domain.PostStatusApproved,
			},
			{
				Date:      "2024-03-05",
				Time:      "18:30",
				Platforms: []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram},
				Caption:   "Tuesday teaser",
				Status:    domain.PostStatusPending,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPlanGormRoundTrip(t *testing.T) {
	repo := newTestPlanRepo(t)
	ctx := context.Background()

	want := samplePlan("plan-1", domain.PlanStatusApproved)
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != want.ID || got.BrandKitID != want.BrandKitID || got.Status != want.Status {
		t.Errorf("plan fields lost in round trip: %+v", got)
	}
	if len(got.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(got.Posts))
	}
	if got.Posts[0].Caption != "Monday kickoff" || got.Posts[0].Time != "09:00" {
		t.Errorf("post fields lost in round trip: %+v", got.Posts[0])
	}
	if len(got.Posts[1].Platforms) != 2 {
		t.Errorf("platforms lost in round trip: %+v", got.Posts[1])
	}
}

func TestPlanGormGetMissing(t *testing.T) {
	repo := newTestPlanRepo(t)

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestPlanGormFindByStatus(t *testing.T) {
	repo := newTestPlanRepo(t)
	ctx := context.Background()

	for _, plan := range []domain.ContentPlan{
		samplePlan("plan-draft", domain.PlanStatusDraft),
		samplePlan("plan-approved", domain.PlanStatusApproved),
		samplePlan("plan-executing", domain.PlanStatusExecuting),
		samplePlan("plan-done", domain.PlanStatusCompleted),
	} {
		if err := repo.Create(ctx, plan); err != nil {
			t.Fatal(err)
		}
	}

	plans, err := repo.FindByStatus(ctx, domain.PlanStatusApproved, domain.PlanStatusExecuting)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	for _, plan := range plans {
		if plan.Status != domain.PlanStatusApproved && plan.Status != domain.PlanStatusExecuting {
			t.Errorf("unexpected status %s", plan.Status)
		}
	}
}

func TestPlanGormUpdate(t *testing.T) {
	repo := newTestPlanRepo(t)
	ctx := context.Background()

	plan := samplePlan("plan-1", domain.PlanStatusApproved)
	if err := repo.Create(ctx, plan); err != nil {
		t.Fatal(err)
	}

	postedAt := time.Date(2024, 3, 4, 9, 1, 0, 0, time.UTC)
	plan.Posts[0].Status = domain.PostStatusPosted
	plan.Posts[0].PostedAt = &postedAt
	plan.Posts[0].ExternalPostID = "ext-1"
	plan.Status = domain.PlanStatusExecuting
	plan.Progress = domain.ComputeProgress(plan.Posts, postedAt)

	if err := repo.Update(ctx, plan); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, "plan-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.PlanStatusExecuting {
		t.Errorf("status = %s, want executing", got.Status)
	}
	if got.Posts[0].Status != domain.PostStatusPosted || got.Posts[0].ExternalPostID != "ext-1" {
		t.Errorf("post update lost: %+v", got.Posts[0])
	}
	if got.Progress.Posted != 1 || got.Progress.Total != 2 {
		t.Errorf("progress update lost: %+v", got.Progress)
	}
}

func TestPlanGormDelete(t *testing.T) {
	repo := newTestPlanRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, samplePlan("plan-1", domain.PlanStatusDraft)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, "plan-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetByID(ctx, "plan-1"); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound after delete, got %v", err)
	}
}

func TestResolverGorm(t *testing.T) {
	repo := NewResolverGormRepository(openTestDB(t))
	ctx := context.Background()
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db := repo.db
	if err := db.Create(&brandKitModel{
		ID:              "kit-1",
		Name:            "Acme",
		SocialProfileID: nullString("prof-1"),
		PromoText:       nullString("Visit acme.example"),
	}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&socialProfileModel{ID: "prof-1", Name: "Acme Social"}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&socialAccountModel{
		ID:                "acc-1",
		SocialProfileID:   "prof-1",
		Platform:          "instagram",
		ExternalAccountID: "ig-1",
		Connected:         true,
	}).Error; err != nil {
		t.Fatal(err)
	}

	kit, err := repo.GetBrandKit(ctx, "kit-1")
	if err != nil {
		t.Fatal(err)
	}
	if kit.SocialProfileID != "prof-1" || kit.PromoText != "Visit acme.example" {
		t.Errorf("unexpected brand kit: %+v", kit)
	}

	if _, err := repo.GetBrandKit(ctx, "nope"); !errors.Is(err, domain.ErrBrandKitNotFound) {
		t.Errorf("expected ErrBrandKitNotFound, got %v", err)
	}

	profile, err := repo.GetSocialProfile(ctx, "prof-1")
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name != "Acme Social" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	if _, err := repo.GetSocialProfile(ctx, "nope"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}

	accounts, err := repo.ListAccounts(ctx, "prof-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 || accounts[0].ExternalAccountID != "ig-1" {
		t.Errorf("unexpected accounts: %+v", accounts)
	}
}
