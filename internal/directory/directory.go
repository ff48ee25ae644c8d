// Package directory resolves user, category and priority identifiers into
// typed records before any policy or state-machine logic runs.
package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sparksupport/helpdesk/internal/domain"
	"github.com/sparksupport/helpdesk/internal/repository"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

// Directory is the read-side lookup service plus the single write operation
// the role model allows: an explicit role change.
type Directory struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	priorities repository.PriorityRepository
}

// New constructs a Directory over the given repositories.
func New(users repository.UserRepository, categories repository.CategoryRepository, priorities repository.PriorityRepository) *Directory {
	return &Directory{users: users, categories: categories, priorities: priorities}
}

// FindUser resolves a user by id.
func (d *Directory) FindUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "user", id)
	}
	return user, nil
}

// FindUserByEmail resolves a user by unique email.
func (d *Directory) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := d.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapLookupErr(err, "user", email)
	}
	return user, nil
}

// FindCategory resolves a category by id.
func (d *Directory) FindCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := d.categories.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "category", id)
	}
	return category, nil
}

// FindPriority resolves a priority by id.
func (d *Directory) FindPriority(ctx context.Context, id string) (*domain.Priority, error) {
	priority, err := d.priorities.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "priority", id)
	}
	return priority, nil
}

// ChangeRole promotes or demotes a user. Role is data, not type identity:
// the update touches only the role column.
func (d *Directory) ChangeRole(ctx context.Context, userID string, newRole domain.Role) (*domain.User, error) {
	if !domain.ValidRole(newRole) {
		return nil, apperrors.NewRoleMismatch("unknown role", map[string]any{"role": newRole})
	}
	if _, err := d.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := d.users.UpdateRole(ctx, userID, newRole); err != nil {
		return nil, mapLookupErr(err, "user", userID)
	}
	return d.FindUser(ctx, userID)
}

func mapLookupErr(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}
