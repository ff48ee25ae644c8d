package directory

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/sparksupport/helpdesk/internal/domain"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Role = role
	return nil
}

func newTestDirectory() (*Directory, *memUserRepo) {
	users := &memUserRepo{users: make(map[string]*domain.User)}
	return New(users, nil, nil), users
}

func TestChangeRolePromotesCustomerToStaff(t *testing.T) {
	dir, users := newTestDirectory()
	users.users["u1"] = &domain.User{ID: "u1", Email: "u1@example.com", Role: domain.RoleCustomer}

	updated, err := dir.ChangeRole(context.Background(), "u1", domain.RoleStaff)
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	if updated.Role != domain.RoleStaff {
		t.Errorf("role = %s, want STAFF", updated.Role)
	}
	// Identity is untouched; only the role column changes.
	if updated.ID != "u1" || updated.Email != "u1@example.com" {
		t.Error("identity fields must not change")
	}
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	dir, users := newTestDirectory()
	users.users["u1"] = &domain.User{ID: "u1", Role: domain.RoleCustomer}

	_, err := dir.ChangeRole(context.Background(), "u1", domain.Role("SUPERUSER"))
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apperrors.ToDomainError(err).Code; code != "ROLE_MISMATCH" {
		t.Errorf("code = %s, want ROLE_MISMATCH", code)
	}
}

func TestChangeRoleUnknownUser(t *testing.T) {
	dir, _ := newTestDirectory()

	_, err := dir.ChangeRole(context.Background(), "missing", domain.RoleStaff)
	if !apperrors.IsNotFound(err) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestFindUserMapsNoRowsToNotFound(t *testing.T) {
	dir, _ := newTestDirectory()

	_, err := dir.FindUser(context.Background(), "missing")
	if !apperrors.IsNotFound(err) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
