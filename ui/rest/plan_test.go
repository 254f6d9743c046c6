package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/socialcraft/content-agent/agent/application"
	"github.com/socialcraft/content-agent/agent/domain"
	"github.com/socialcraft/content-agent/agent/repository"
	"github.com/socialcraft/content-agent/ui/rest/middleware"
	"github.com/socialcraft/content-agent/usecase"
)

type testEnv struct {
	app       *fiber.App
	plans     *repository.MemoryPlanRepository
	scheduler *application.Scheduler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	plans := repository.NewMemoryPlanRepository()
	resolver := repository.NewMemoryResolver()
	resolver.PutBrandKit(domain.BrandKit{ID: "kit-1", Name: "Acme", SocialProfileID: "prof-1"})
	resolver.PutSocialProfile(domain.SocialProfile{ID: "prof-1", Name: "Acme Social"})
	resolver.PutAccount(domain.SocialAccount{
		ID:                "acc-1",
		SocialProfileID:   "prof-1",
		Platform:          "instagram",
		ExternalAccountID: "ig-1",
		Connected:         true,
	})

	publisher := application.NewPublisher(successGateway{}, nil, application.PublisherConfig{
		MaxRetries: 0,
		BaseDelay:  time.Millisecond,
	})
	reporter := application.NewStatusReporter(10)
	processor := application.NewPlanProcessor(plans, resolver, publisher, reporter, application.ProcessorConfig{
		FailureCap: 3,
		Location:   time.UTC,
	})
	scheduler := application.NewScheduler(processor, reporter, application.SchedulerConfig{
		Interval:     time.Hour,
		InitialDelay: time.Hour,
	})
	t.Cleanup(scheduler.Stop)

	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestPlan(app, usecase.NewPlanUsecase(plans))
	InitRestAgent(app, scheduler)

	return &testEnv{app: app, plans: plans, scheduler: scheduler}
}

type successGateway struct{}

func (successGateway) CreatePost(ctx context.Context, req domain.CreatePostRequest) (string, error) {
	return "ext-1", nil
}

type envelope struct {
	Status  int             `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Results json.RawMessage `json:"results"`
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	var out envelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

func seedRestPlan(t *testing.T, plans *repository.MemoryPlanRepository, id string, status domain.PlanStatus, postStatuses ...domain.PostStatus) {
	t.Helper()

	posts := make([]domain.Post, len(postStatuses))
	for i, s := range postStatuses {
		posts[i] = domain.Post{
			Date:      "2024-03-04",
			Time:      "09:00",
			Platforms: []domain.Platform{domain.PlatformInstagram},
			Caption:   "caption",
			Status:    s,
		}
	}

	err := plans.Create(context.Background(), domain.ContentPlan{
		ID:         id,
		BrandKitID: "kit-1",
		Status:     status,
		Posts:      posts,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestListPlans(t *testing.T) {
	env := newTestEnv(t)
	seedRestPlan(t, env.plans, "plan-1", domain.PlanStatusDraft, domain.PostStatusPending)
	seedRestPlan(t, env.plans, "plan-2", domain.PlanStatusApproved, domain.PostStatusApproved)

	code, out := doRequest(t, env.app, http.MethodGet, "/api/plans", "")
	if code != http.StatusOK || out.Code != "SUCCESS" {
		t.Fatalf("unexpected response: %d %+v", code, out)
	}
	var plans []domain.ContentPlan
	if err := json.Unmarshal(out.Results, &plans); err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 {
		t.Errorf("expected 2 plans, got %d", len(plans))
	}

	code, out = doRequest(t, env.app, http.MethodGet, "/api/plans?status=approved", "")
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if err := json.Unmarshal(out.Results, &plans); err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 || plans[0].ID != "plan-2" {
		t.Errorf("unexpected filtered plans: %+v", plans)
	}
}

func TestListPlansUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	code, out := doRequest(t, env.app, http.MethodGet, "/api/plans?status=bogus", "")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if out.Code != "VALIDATION_ERROR" {
		t.Errorf("unexpected error code %q", out.Code)
	}
}

func TestGetPlan(t *testing.T) {
	env := newTestEnv(t)
	seedRestPlan(t, env.plans, "plan-1", domain.PlanStatusDraft, domain.PostStatusPending)

	code, out := doRequest(t, env.app, http.MethodGet, "/api/plans/plan-1", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var plan domain.ContentPlan
	if err := json.Unmarshal(out.Results, &plan); err != nil {
		t.Fatal(err)
	}
	if plan.ID != "plan-1" {
		t.Errorf("unexpected plan: %+v", plan)
	}
}

func TestGetPlanNotFound(t *testing.T) {
	env := newTestEnv(t)

	code, out := doRequest(t, env.app, http.MethodGet, "/api/plans/nope", "")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if out.Code != "NOT_FOUND_ERROR" {
		t.Errorf("unexpected error code %q", out.Code)
	}
}

func TestApprovePlanAllPending(t *testing.T) {
	env := newTestEnv(t)
	seedRestPlan(t, env.plans, "plan-1", domain.PlanStatusDraft,
		domain.PostStatusPending, domain.PostStatusPending, domain.PostStatusPosted)

	code, out := doRequest(t, env.app, http.MethodPost, "/api/plans/plan-1/approve", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", code, out)
	}

	plan, err := env.plans.GetByID(context.Background(), "plan-1")
	if err != nil {
		t.Fatal(err)
	}
	if plan.Status != domain.PlanStatusApproved {
		t.Errorf("plan status = %s, want approved", plan.Status)
	}
	if plan.Posts[0].Status != domain.PostStatusApproved || plan.Posts[1].Status != domain.PostStatusApproved {
		t.Errorf("pending posts must be approved: %+v", plan.Posts)
	}
	if plan.Posts[2].Status != domain.PostStatusPosted {
		t.Errorf("terminal post must not change: %s", plan.Posts[2].Status)
	}
}

func TestApprovePlanSelectedIndexes(t *testing.T) {
	env := newTestEnv(t)
	seedRestPlan(t, env.plans, "plan-1", domain.PlanStatusDraft,
		domain.PostStatusPending, domain.PostStatusPending)

	code, _ := doRequest(t, env.app, http.MethodPost, "/api/plans/plan-1/approve", `{"post_indexes":[1]}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	plan, _ := env.plans.GetByID(context.Background(), "plan-1")
	if plan.Posts[0].Status != domain.PostStatusPending {
		t.Errorf("unselected post must stay pending, got %s", plan.Posts[0].Status)
	}
	if plan.Posts[1].Status != domain.PostStatusApproved {
		t.Errorf("selected post must be approved, got %s", plan.Posts[1].Status)
	}
}

func TestApprovePlanInvalidBody(t *testing.T) {
	env := newTestEnv(t)
	seedRestPlan(t, env.plans, "plan-1", domain.PlanStatusDraft, domain.PostStatusPending)

	code, out := doRequest(t, env.app, http.MethodPost, "/api/plans/plan-1/approve", `{"post_indexes":[-1]}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if out.Code != "VALIDATION_ERROR" {
		t.Errorf("unexpected error code %q", out.Code)
	}

	code, _ = doRequest(t, env.app, http.MethodPost, "/api/plans/plan-1/approve", `{not json`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", code)
	}
}
