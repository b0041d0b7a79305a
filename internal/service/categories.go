package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/store"
)

const duplicateCategoryMessage = "Category name already exists"

var errCategoryNotOwned = apperror.NewNotFoundOrUnauthorized("Category not found or unauthorized")

type CategoryChanges struct {
	Name  *string
	Color *string
}

type CategoryService struct {
	store store.Store
	log   *zap.SugaredLogger
}

func NewCategoryService(s store.Store, log *zap.SugaredLogger) *CategoryService {
	return &CategoryService{store: s, log: log}
}

func (s *CategoryService) Create(ctx context.Context, ownerID primitive.ObjectID, name, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if name == "" {
		return nil, apperror.NewValidation("name is required")
	}
	if color == "" {
		return nil, apperror.NewValidation("color is required")
	}

	_, err := s.store.Categories().FindByOwnerAndName(ctx, ownerID, name)
	switch {
	case err == nil:
		return nil, apperror.NewDuplicateName(duplicateCategoryMessage, nil)
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperror.NewUpstream("failed to create category", err)
	}

	category := &models.Category{Name: name, Color: color, OwnerID: ownerID}
	if err := s.store.Categories().Insert(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.NewDuplicateName(duplicateCategoryMessage, err)
		}
		return nil, apperror.NewUpstream("failed to create category", err)
	}

	s.log.Infow("category created", "categoryId", category.ID.Hex(), "ownerId", ownerID.Hex())
	return category, nil
}

// List returns every category, or only those of rawOwnerID when it is set.
func (s *CategoryService) List(ctx context.Context, rawOwnerID string) ([]models.Category, error) {
	var ownerID *primitive.ObjectID
	if strings.TrimSpace(rawOwnerID) != "" {
		id, err := ParseID("user", rawOwnerID)
		if err != nil {
			return nil, err
		}
		ownerID = &id
	}

	categories, err := s.store.Categories().List(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewUpstream("failed to list categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, rawID string) (*models.Category, error) {
	categoryID, err := ParseID("category", rawID)
	if err != nil {
		return nil, err
	}
	category, err := s.store.Categories().FindByID(ctx, categoryID)
	if err != nil {
		return nil, notFoundAs(err, apperror.NewNotFound("Category not found"), "failed to load category")
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, rawID string, ownerID primitive.ObjectID, changes CategoryChanges) (*models.Category, error) {
	categoryID, err := ParseID("category", rawID)
	if err != nil {
		return nil, err
	}
	patch := store.CategoryPatch{Name: trimmedPtr(changes.Name), Color: trimmedPtr(changes.Color)}
	if patch.Name != nil && *patch.Name == "" {
		return nil, apperror.NewValidation("name must not be empty")
	}
	if patch.Color != nil && *patch.Color == "" {
		return nil, apperror.NewValidation("color must not be empty")
	}

	var category *models.Category
	err = s.store.WithinUnit(ctx, func(ctx context.Context) error {
		updated, err := s.store.Categories().UpdateOwned(ctx, categoryID, ownerID, patch)
		if err != nil {
			return err
		}
		category = updated
		if patch.Name == nil {
			return nil
		}
		_, err = s.store.Products().SyncCategory(ctx, categoryID, updated.Name, false)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.NewDuplicateName(duplicateCategoryMessage, err)
		}
		return nil, notFoundAs(err, errCategoryNotOwned, "failed to update category")
	}

	s.log.Infow("category updated", "categoryId", categoryID.Hex(), "ownerId", ownerID.Hex())
	return category, nil
}

// Delete removes the category. Linked products are unlinked and keep its
// final name.
func (s *CategoryService) Delete(ctx context.Context, rawID string, ownerID primitive.ObjectID) error {
	categoryID, err := ParseID("category", rawID)
	if err != nil {
		return err
	}
	var unlinked int64
	err = s.store.WithinUnit(ctx, func(ctx context.Context) error {
		deleted, err := s.store.Categories().DeleteOwned(ctx, categoryID, ownerID)
		if err != nil {
			return err
		}
		unlinked, err = s.store.Products().SyncCategory(ctx, categoryID, deleted.Name, true)
		return err
	})
	if err != nil {
		return notFoundAs(err, errCategoryNotOwned, "failed to delete category")
	}
	s.log.Infow("category deleted", "categoryId", categoryID.Hex(), "ownerId", ownerID.Hex(), "unlinkedProducts", unlinked)
	return nil
}
