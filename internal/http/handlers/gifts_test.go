package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giftlinkhq/giftlink/internal/cache"
	"github.com/giftlinkhq/giftlink/internal/domain/gift"
	"github.com/giftlinkhq/giftlink/internal/http/handlers"
	"github.com/giftlinkhq/giftlink/internal/repo/mongodb"
)

type fakeGiftsRepo struct {
	listCalls int
	listFn    func(ctx context.Context) ([]gift.Gift, error)
	getFn     func(ctx context.Context, id string) (gift.Gift, error)
	searchFn  func(ctx context.Context, filter gift.SearchFilter) ([]gift.Gift, error)
}

func (f *fakeGiftsRepo) List(ctx context.Context) ([]gift.Gift, error) {
	f.listCalls++
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []gift.Gift{}, nil
}

func (f *fakeGiftsRepo) GetByID(ctx context.Context, id string) (gift.Gift, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return gift.Gift{}, mongodb.ErrGiftNotFound
}

func (f *fakeGiftsRepo) Search(ctx context.Context, filter gift.SearchFilter) ([]gift.Gift, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, filter)
	}
	return []gift.Gift{}, nil
}

func TestListGifts(t *testing.T) {
	repo := &fakeGiftsRepo{
		listFn: func(_ context.Context) ([]gift.Gift, error) {
			return []gift.Gift{
				{ID: "g1", Name: "Bookshelf", Category: "Furniture"},
				{ID: "g2", Name: "Lamp", Category: "Home"},
			}, nil
		},
	}

	h := handlers.NewGiftsHandler(repo, nil, nil, discardLogger())
	r := setupRouter(http.MethodGet, "/api/gifts", h.ListGifts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gifts", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)

	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}
}

func TestListGiftsServesFromCache(t *testing.T) {
	repo := &fakeGiftsRepo{
		listFn: func(_ context.Context) ([]gift.Gift, error) {
			return []gift.Gift{{ID: "g1", Name: "Bookshelf"}}, nil
		},
	}

	h := handlers.NewGiftsHandler(repo, cache.NewMemory(time.Minute), nil, discardLogger())
	r := setupRouter(http.MethodGet, "/api/gifts", h.ListGifts)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gifts", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}

		if !strings.Contains(w.Body.String(), "Bookshelf") {
			t.Fatalf("request %d body missing item: %s", i, w.Body.String())
		}
	}

	if repo.listCalls != 1 {
		t.Errorf("repo hit %d times, want 1 (cache-aside)", repo.listCalls)
	}
}

func TestListGiftsStoreFailure(t *testing.T) {
	repo := &fakeGiftsRepo{
		listFn: func(_ context.Context) ([]gift.Gift, error) {
			return nil, errors.New("connection reset")
		},
	}

	h := handlers.NewGiftsHandler(repo, nil, nil, discardLogger())
	r := setupRouter(http.MethodGet, "/api/gifts", h.ListGifts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gifts", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestGetGiftByID(t *testing.T) {
	repo := &fakeGiftsRepo{
		getFn: func(_ context.Context, id string) (gift.Gift, error) {
			if id != "g1" {
				return gift.Gift{}, mongodb.ErrGiftNotFound
			}
			return gift.Gift{ID: "g1", Name: "Bookshelf"}, nil
		},
	}

	h := handlers.NewGiftsHandler(repo, nil, nil, discardLogger())
	r := setupRouter(http.MethodGet, "/api/gifts/:id", h.GetGiftByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gifts/g1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if got := decodeBody(t, w)["name"]; got != "Bookshelf" {
		t.Errorf("name = %v", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gifts/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("missing gift status = %d, want 404", w.Code)
	}
}
