package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

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

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*models.Item)}
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

func newTestService() (*CatalogService, *fakeCategoryRepo, *fakeItemRepo) {
	categories := &fakeCategoryRepo{categories: map[int64]*models.Category{
		1: {ID: 1, Name: "berlin"},
		2: {ID: 2, Name: "khruangbin"},
	}}
	items := newFakeItemRepo()
	return NewCatalogService(categories, items, nil), categories, items
}

func seedItem(t *testing.T, svc *CatalogService, name, description string, categoryID, userID int64) *models.Item {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), models.ItemFields{
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

func TestLatestItemsNewestFirstAcrossCategories(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	names := []string{"kreuzberg", "neukoelln", "friedrichshain", "mark", "laura", "donald"}
	for i, name := range names {
		categoryID := int64(1)
		if i >= 3 {
			categoryID = 2
		}
		seedItem(t, svc, name, "seed", categoryID, 1)
	}

	latest, err := svc.LatestItems(ctx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(latest) != 4 {
		t.Fatalf("expected 4 items, got %d", len(latest))
	}
	for i := 1; i < len(latest); i++ {
		if latest[i-1].ID <= latest[i].ID {
			t.Errorf("items not in descending id order: %d before %d", latest[i-1].ID, latest[i].ID)
		}
	}
	// Newest four span both categories.
	wantNames := map[string]bool{"donald": true, "laura": true, "mark": true, "friedrichshain": true}
	for _, item := range latest {
		if !wantNames[item.Name] {
			t.Errorf("unexpected item %q in latest four", item.Name)
		}
	}
}

func TestCreateThenGetReturnsSameFields(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created := seedItem(t, svc, "kreuzberg", "a neighbourhood in berlin", 1, 42)

	got, err := svc.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "kreuzberg" || got.Description != "a neighbourhood in berlin" ||
		got.CategoryID != 1 || got.UserID != 42 {
		t.Errorf("stored item does not match inputs: %+v", got)
	}
}

func TestCreateItemRejectsEmptyFields(t *testing.T) {
	svc, _, items := newTestService()
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, models.ItemFields{Name: "", Description: "desc", CategoryID: 1, UserID: 1})
	if !errors.Is(err, catalogdomain.ErrInvalidItemFields) {
		t.Fatalf("expected ErrInvalidItemFields, got %v", err)
	}
	if len(items.items) != 0 {
		t.Errorf("rejected create must not persist anything, found %d items", len(items.items))
	}
}

func TestCreateItemUnknownCategory(t *testing.T) {
	svc, _, items := newTestService()

	_, err := svc.CreateItem(context.Background(), models.ItemFields{
		Name: "x", Description: "y", CategoryID: 99, UserID: 1,
	})
	if !errors.Is(err, catalogdomain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if len(items.items) != 0 {
		t.Errorf("rejected create must not persist anything")
	}
}

func TestUpdateItemNonOwnerLeavesRecordUnchanged(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created := seedItem(t, svc, "kreuzberg", "original", 1, 1)

	err := svc.UpdateItem(ctx, 2, created.ID, models.ItemFields{
		Name: "hijacked", Description: "changed", CategoryID: 2,
	})
	if !errors.Is(err, catalogdomain.ErrNotItemOwner) {
		t.Fatalf("expected ErrNotItemOwner, got %v", err)
	}

	got, err := svc.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "kreuzberg" || got.Description != "original" || got.CategoryID != 1 {
		t.Errorf("non-owner edit mutated the record: %+v", got)
	}
}

func TestUpdateItemRejectsBlankingBeforeWrite(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created := seedItem(t, svc, "kreuzberg", "original", 1, 1)

	err := svc.UpdateItem(ctx, 1, created.ID, models.ItemFields{
		Name: "", Description: "changed", CategoryID: 1,
	})
	if !errors.Is(err, catalogdomain.ErrInvalidItemFields) {
		t.Fatalf("expected ErrInvalidItemFields, got %v", err)
	}

	got, _ := svc.GetItem(ctx, created.ID)
	if got.Name != "kreuzberg" || got.Description != "original" {
		t.Errorf("rejected update mutated the record: %+v", got)
	}
}

func TestUpdateItemOwnerSucceeds(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created := seedItem(t, svc, "kreuzberg", "original", 1, 1)

	err := svc.UpdateItem(ctx, 1, created.ID, models.ItemFields{
		Name: "kreuzberg 36", Description: "updated", CategoryID: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.GetItem(ctx, created.ID)
	if got.Name != "kreuzberg 36" || got.Description != "updated" || got.CategoryID != 2 {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestDeleteItemThenGetNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created := seedItem(t, svc, "kreuzberg", "original", 1, 1)

	if err := svc.DeleteItem(ctx, 1, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetItem(ctx, created.ID); !errors.Is(err, catalogdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound after delete, got %v", err)
	}
}

func TestDeleteItemNonOwner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created := seedItem(t, svc, "kreuzberg", "original", 1, 1)

	if err := svc.DeleteItem(ctx, 2, created.ID); !errors.Is(err, catalogdomain.ErrNotItemOwner) {
		t.Fatalf("expected ErrNotItemOwner, got %v", err)
	}
	if _, err := svc.GetItem(ctx, created.ID); err != nil {
		t.Errorf("item should survive a non-owner delete: %v", err)
	}
}

func TestGetItemInCategoryMismatch(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created := seedItem(t, svc, "kreuzberg", "original", 1, 1)

	if _, err := svc.GetItemInCategory(ctx, created.ID, 2); !errors.Is(err, catalogdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound for category mismatch, got %v", err)
	}
	if _, err := svc.GetItemInCategory(ctx, created.ID, 1); err != nil {
		t.Errorf("unexpected error for matching category: %v", err)
	}
}
