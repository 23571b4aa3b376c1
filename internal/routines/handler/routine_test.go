package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "smartgym/pkg/errors"
	"smartgym/pkg/logger"
	"smartgym/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockRoutineService struct {
	assignFunc      func(ctx context.Context, dni string) (*model.Routine, error)
	historyFunc     func(ctx context.Context, dni string) ([]*model.Routine, error)
	activeBlockFunc func(ctx context.Context, dni, day string) (*model.RoutineBlock, error)
}

func (m *mockRoutineService) Assign(ctx context.Context, dni string) (*model.Routine, error) {
	return m.assignFunc(ctx, dni)
}

func (m *mockRoutineService) History(ctx context.Context, dni string) ([]*model.Routine, error) {
	return m.historyFunc(ctx, dni)
}

func (m *mockRoutineService) ActiveBlock(ctx context.Context, dni, day string) (*model.RoutineBlock, error) {
	return m.activeBlockFunc(ctx, dni, day)
}

func serve(svc *mockRoutineService, method, path, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewRoutineHandler(svc, logger.Discard()).RegisterRoutes(router)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAssign(t *testing.T) {
	svc := &mockRoutineService{
		assignFunc: func(_ context.Context, dni string) (*model.Routine, error) {
			if dni != "12345678" {
				return nil, apperrors.DNINotLinked(dni)
			}
			return &model.Routine{ID: "r1", CustomerID: "alice@gym.io", Plan: map[string]string{"monday": "Legs"}}, nil
		},
	}

	rec := serve(svc, http.MethodPost, "/api/v1/routines/assign", `{"dni":"12345678"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data model.Routine `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Plan["monday"] != "Legs" {
		t.Errorf("unexpected plan %v", resp.Data.Plan)
	}

	if rec := serve(svc, http.MethodPost, "/api/v1/routines/assign", `{"dni":"99999999"}`); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unlinked dni, got %d", rec.Code)
	}
	if rec := serve(svc, http.MethodPost, "/api/v1/routines/assign", `{"id":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestActiveBlock_PassesDayQuery(t *testing.T) {
	var gotDNI, gotDay string
	svc := &mockRoutineService{
		activeBlockFunc: func(_ context.Context, dni, day string) (*model.RoutineBlock, error) {
			gotDNI, gotDay = dni, day
			if day == "sunday" {
				return nil, apperrors.InvalidInput("Day must be one of monday..saturday")
			}
			return &model.RoutineBlock{Day: day, Block: "Chest"}, nil
		},
	}

	rec := serve(svc, http.MethodGet, "/api/v1/routines/active/12345678?day=tuesday", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotDNI != "12345678" || gotDay != "tuesday" {
		t.Errorf("expected 12345678/tuesday, got %s/%s", gotDNI, gotDay)
	}

	if rec := serve(svc, http.MethodGet, "/api/v1/routines/active/12345678?day=sunday", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for sunday, got %d", rec.Code)
	}
}

func TestHistory(t *testing.T) {
	svc := &mockRoutineService{
		historyFunc: func(context.Context, string) ([]*model.Routine, error) {
			return []*model.Routine{{ID: "r1"}, {ID: "r2"}}, nil
		},
	}

	rec := serve(svc, http.MethodGet, "/api/v1/routines/history/12345678", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Data []model.Routine `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[1].ID != "r2" {
		t.Errorf("unexpected history %+v", resp.Data)
	}
}
