package services

import (
	"context"
	"errors"
	"testing"
	"time"

	accountdomain "github.com/saschaorth/item-catalog/services/account/domain"
	"github.com/saschaorth/item-catalog/services/account/domain/models"
)

type fakeUserRepo struct {
	nextID  int64
	byEmail map[string]*models.User
	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, accountdomain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, accountdomain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, name, email string) (*models.User, error) {
	f.creates++
	f.nextID++
	u := &models.User{ID: f.nextID, Name: name, Email: email, CreatedAt: time.Now()}
	f.byEmail[email] = u
	return u, nil
}

func TestResolveUserCreatesOnFirstLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAccountService(repo)

	user, err := svc.ResolveUser(context.Background(), "test@web.de", "test@web.de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected a store-assigned id")
	}
	if user.Email != "test@web.de" || user.Name != "test@web.de" {
		t.Errorf("unexpected user: %+v", user)
	}
	if repo.creates != 1 {
		t.Errorf("expected 1 create, got %d", repo.creates)
	}
}

func TestResolveUserReusesExistingRecord(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAccountService(repo)

	first, err := svc.ResolveUser(context.Background(), "test@web.de", "test@web.de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ResolveUser(context.Background(), "test@web.de", "test@web.de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same user on repeat login, got %d and %d", first.ID, second.ID)
	}
	if repo.creates != 1 {
		t.Errorf("expected exactly 1 create, got %d", repo.creates)
	}
}

func TestGetUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAccountService(repo)

	created, err := svc.ResolveUser(context.Background(), "test@web.de", "test@web.de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != created.Email {
		t.Errorf("unexpected user: %+v", got)
	}

	if _, err := svc.GetUser(context.Background(), 999); !errors.Is(err, accountdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
