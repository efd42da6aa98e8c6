package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	"github.com/saschaorth/item-catalog/pkg/config"
	"github.com/saschaorth/item-catalog/pkg/logger"
	"github.com/saschaorth/item-catalog/pkg/render"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

type fakeCategoryRepo struct {
	categories map[int64]*models.Category
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, catalogdomain.ErrCategoryNotFound
	}
	return c, nil
}

type fakeItemRepo struct {
	nextID int64
	items  map[int64]*models.Item
}

func (f *fakeItemRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error) {
	var out []*models.Item
	for _, item := range f.items {
		if item.CategoryID == categoryID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeItemRepo) Latest(ctx context.Context, limit int) ([]*models.Item, error) {
	out := make([]*models.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, catalogdomain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemRepo) GetByIDAndCategory(ctx context.Context, id, categoryID int64) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok || item.CategoryID != categoryID {
		return nil, catalogdomain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemRepo) Create(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	f.nextID++
	item := &models.Item{
		ID:          f.nextID,
		Name:        fields.Name,
		Description: fields.Description,
		CategoryID:  fields.CategoryID,
		UserID:      fields.UserID,
		CreatedAt:   time.Now(),
	}
	f.items[item.ID] = item
	cp := *item
	return &cp, nil
}

func (f *fakeItemRepo) Update(ctx context.Context, id int64, fields models.ItemFields) error {
	item, ok := f.items[id]
	if !ok {
		return catalogdomain.ErrItemNotFound
	}
	item.Name = fields.Name
	item.Description = fields.Description
	item.CategoryID = fields.CategoryID
	return nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return catalogdomain.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

// testEnv is a full catalog HTTP surface over in-memory repositories, with a
// cookie-backed session store standing in for Redis.
type testEnv struct {
	router     *chi.Mux
	store      sessions.Store
	categories *fakeCategoryRepo
	items      *fakeItemRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	renderer, err := render.NewHTML()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	store := sessions.NewCookieStore([]byte("test-secret"))
	a := &app.Application{
		Logger:       logger.New(&config.Config{LogLevel: "error"}),
		SessionStore: store,
		Renderer:     renderer,
	}

	categories := &fakeCategoryRepo{categories: map[int64]*models.Category{
		1: {ID: 1, Name: "berlin"},
		2: {ID: 2, Name: "khruangbin"},
	}}
	items := &fakeItemRepo{items: make(map[int64]*models.Item)}
	svcs := &appsvcs.Services{
		Catalog: appsvcs.NewCatalogService(categories, items, nil),
	}

	guard := auth.RequireLogin(store, a.Logger)

	home := NewGetCategoriesHandler(a, svcs)
	categoryItems := NewGetCategoryItemsHandler(a, svcs)
	itemDetail := NewGetItemHandler(a, svcs)
	newItemForm := NewGetNewItemHandler(a, svcs)
	createItem := NewPostNewItemHandler(a, svcs)
	editItemForm := NewGetEditItemHandler(a, svcs)
	updateItem := NewPostEditItemHandler(a, svcs)
	deleteItemForm := NewGetDeleteItemHandler(a, svcs)
	deleteItem := NewPostDeleteItemHandler(a, svcs)
	categoriesJSON := NewGetCategoriesJSONHandler(a, svcs)
	categoryItemsJSON := NewGetCategoryItemsJSONHandler(a, svcs)
	itemJSON := NewGetItemJSONHandler(a, svcs)

	r := chi.NewRouter()
	r.Get("/", home.Execute)
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", home.Execute)
		r.Get("/json", categoriesJSON.Execute)
		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Get("/item/new", newItemForm.Execute)
			r.Post("/item/new", createItem.Execute)
		})
		r.Route("/{categoryID}", func(r chi.Router) {
			r.Get("/", categoryItems.Execute)
			r.Get("/json", categoryItemsJSON.Execute)
			r.Get("/item/{itemID}", itemDetail.Execute)
			r.Get("/item/{itemID}/json", itemJSON.Execute)
			r.Group(func(r chi.Router) {
				r.Use(guard)
				r.Get("/item/{itemID}/edit", editItemForm.Execute)
				r.Post("/item/{itemID}/edit", updateItem.Execute)
				r.Get("/item/{itemID}/delete", deleteItemForm.Execute)
				r.Post("/item/{itemID}/delete", deleteItem.Execute)
			})
		})
	})

	return &testEnv{router: r, store: store, categories: categories, items: items}
}

func (e *testEnv) seedItem(t *testing.T, name, description string, categoryID, userID int64) *models.Item {
	t.Helper()
	item, err := e.items.Create(context.Background(), models.ItemFields{
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		UserID:      userID,
	})
	if err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return item
}

// loginCookies builds session cookies for an authenticated user.
func (e *testEnv) loginCookies(t *testing.T, userID int64) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	session, err := e.store.Get(req, auth.SessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	auth.Identity{
		Username: "test@web.de",
		Email:    "test@web.de",
		UserID:   userID,
		Provider: auth.ProviderGoogle,
	}.Store(session)
	if err := session.Save(req, rec); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return rec.Result().Cookies()
}

func (e *testEnv) get(t *testing.T, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
