package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openmrkt/nftpulse/internal/domain/dto"
	"github.com/openmrkt/nftpulse/internal/domain/models"
	"github.com/openmrkt/nftpulse/internal/service"
	"github.com/openmrkt/nftpulse/internal/storage"
)

type mockStatService struct {
	stats []models.Stat
	one   *models.Stat
	err   error

	topPeriod  *models.Period
	statID     string
	statPeriod *models.Period
	listQuery  storage.ListStatsQuery
}

func (m *mockStatService) GetTopCollections(_ context.Context, period *models.Period) ([]models.Stat, error) {
	m.topPeriod = period
	return m.stats, m.err
}
func (m *mockStatService) GetNotableCollections(_ context.Context) ([]models.Stat, error) {
	return m.stats, m.err
}
func (m *mockStatService) GetFeaturedProjects(_ context.Context) ([]models.Stat, error) {
	return m.stats, m.err
}
func (m *mockStatService) GetStatByCollectionID(_ context.Context, collectionID string, period *models.Period) (*models.Stat, error) {
	m.statID = collectionID
	m.statPeriod = period
	return m.one, m.err
}
func (m *mockStatService) GetCollections(_ context.Context, q storage.ListStatsQuery) ([]models.Stat, error) {
	m.listQuery = q
	return m.stats, m.err
}

var _ service.StatService = (*mockStatService)(nil)

func setupRouterWithMock(s service.StatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	v1 := r.Group("/api/v1")
	stat := v1.Group("/stat")
	stat.POST("/top", h.GetTopCollections)
	stat.GET("/notable", h.GetNotableCollections)
	stat.GET("/feature", h.GetFeaturedProjects)
	stat.GET("/:collectionId", h.GetStatByCollectionID)
	stat.GET("", h.GetCollections)
	return r
}

func sampleStat() models.Stat {
	return models.Stat{
		ID:           "stat-1",
		CollectionID: "col-1",
		Period:       models.PeriodDay,
		Owners:       2,
		ListedItems:  1,
		SalesItems:   2,
		FloorPrice:   models.NewBigInt(50),
		Volume:       models.NewBigInt(400),
		Increased:    125,
		UpdatedAt:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Collection:   &models.Collection{ID: "col-1", Name: "Cool Cats", Supply: 10000, Feature: true},
	}
}

func TestGetTopCollections_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockStatService
		body   string
		status int
		assert func(t *testing.T, svc *mockStatService, body []byte)
	}{
		{
			name:   "empty body defaults to no filter",
			svc:    &mockStatService{stats: []models.Stat{sampleStat()}},
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockStatService, body []byte) {
				if svc.topPeriod != nil {
					t.Fatalf("expected nil period, got %v", *svc.topPeriod)
				}
				var out []dto.StatResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out) != 1 || out[0].Volume != "400" || out[0].Collection == nil {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "period filter forwarded, case-insensitive",
			svc:    &mockStatService{stats: []models.Stat{}},
			body:   `{"period":"day"}`,
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockStatService, _ []byte) {
				if svc.topPeriod == nil || *svc.topPeriod != models.PeriodDay {
					t.Fatalf("period not forwarded: %v", svc.topPeriod)
				}
			},
		},
		{
			name:   "invalid period",
			svc:    &mockStatService{},
			body:   `{"period":"YEAR"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed body",
			svc:    &mockStatService{},
			body:   `{"period":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "service error",
			svc:    &mockStatService{err: errors.New("db down")},
			status: http.StatusInternalServerError,
		},
		{
			name:   "empty result serializes as array",
			svc:    &mockStatService{stats: []models.Stat{}},
			status: http.StatusOK,
			assert: func(t *testing.T, _ *mockStatService, body []byte) {
				if strings.TrimSpace(string(body)) != "[]" {
					t.Fatalf("want [], got %s", body)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			var reader *strings.Reader
			if tc.body != "" {
				reader = strings.NewReader(tc.body)
			} else {
				reader = strings.NewReader("")
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/stat/top", reader)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (body=%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetNotableAndFeatured(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		svc    *mockStatService
		status int
	}{
		{name: "notable ok", path: "/api/v1/stat/notable", svc: &mockStatService{stats: []models.Stat{sampleStat()}}, status: http.StatusOK},
		{name: "notable error", path: "/api/v1/stat/notable", svc: &mockStatService{err: errors.New("db down")}, status: http.StatusInternalServerError},
		{name: "feature ok", path: "/api/v1/stat/feature", svc: &mockStatService{stats: []models.Stat{sampleStat()}}, status: http.StatusOK},
		{name: "feature error", path: "/api/v1/stat/feature", svc: &mockStatService{err: errors.New("db down")}, status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestGetStatByCollectionID_TableDriven(t *testing.T) {
	one := sampleStat()

	cases := []struct {
		name   string
		svc    *mockStatService
		query  string
		status int
		assert func(t *testing.T, svc *mockStatService, body []byte)
	}{
		{
			name:   "found",
			svc:    &mockStatService{one: &one},
			query:  "/api/v1/stat/col-1",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockStatService, body []byte) {
				if svc.statID != "col-1" || svc.statPeriod != nil {
					t.Fatalf("arguments not forwarded: id=%q period=%v", svc.statID, svc.statPeriod)
				}
				var out dto.StatResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.ID != "stat-1" || out.FloorPrice != "50" || out.Increased != 125 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "period filter",
			svc:    &mockStatService{one: &one},
			query:  "/api/v1/stat/col-1?period=WEEK",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockStatService, _ []byte) {
				if svc.statPeriod == nil || *svc.statPeriod != models.PeriodWeek {
					t.Fatalf("period not forwarded: %v", svc.statPeriod)
				}
			},
		},
		{
			name:   "invalid period",
			svc:    &mockStatService{},
			query:  "/api/v1/stat/col-1?period=FORTNIGHT",
			status: http.StatusBadRequest,
		},
		{
			name:   "not found",
			svc:    &mockStatService{one: nil},
			query:  "/api/v1/stat/ghost",
			status: http.StatusNotFound,
		},
		{
			name:   "service error",
			svc:    &mockStatService{err: errors.New("db down")},
			query:  "/api/v1/stat/col-1",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (body=%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetCollections_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockStatService
		query  string
		status int
		assert func(t *testing.T, svc *mockStatService)
	}{
		{
			name:   "defaults",
			svc:    &mockStatService{stats: []models.Stat{}},
			query:  "/api/v1/stat",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockStatService) {
				q := svc.listQuery
				if q.Limit != 20 || q.Offset != 1 || q.StartID != 0 {
					t.Fatalf("defaults not applied: %+v", q)
				}
				if q.Ascending {
					t.Fatalf("default order must be descending")
				}
			},
		},
		{
			name:   "full filter set",
			svc:    &mockStatService{stats: []models.Stat{}},
			query:  "/api/v1/stat?sortBy=floor&sortAscending=asc&contains=cats&period=DAY&limit=5&offset=2&startId=3",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockStatService) {
				q := svc.listQuery
				if q.SortBy != storage.SortByFloor || !q.Ascending || q.Contains != "cats" {
					t.Fatalf("filters not forwarded: %+v", q)
				}
				if q.Period == nil || *q.Period != models.PeriodDay {
					t.Fatalf("period not forwarded: %v", q.Period)
				}
				if q.Limit != 5 || q.Offset != 2 || q.StartID != 3 {
					t.Fatalf("pagination not forwarded: %+v", q)
				}
			},
		},
		{
			name:   "invalid period",
			svc:    &mockStatService{},
			query:  "/api/v1/stat?period=CENTURY",
			status: http.StatusBadRequest,
		},
		{
			name:   "negative limit",
			svc:    &mockStatService{},
			query:  "/api/v1/stat?limit=-1",
			status: http.StatusBadRequest,
		},
		{
			name:   "non-numeric offset",
			svc:    &mockStatService{},
			query:  "/api/v1/stat?offset=abc",
			status: http.StatusBadRequest,
		},
		{
			name:   "service error",
			svc:    &mockStatService{err: errors.New("db down")},
			query:  "/api/v1/stat",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (body=%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc)
			}
		})
	}
}
