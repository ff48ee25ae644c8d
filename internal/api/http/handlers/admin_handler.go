package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sparksupport/helpdesk/internal/api/dto"
	"github.com/sparksupport/helpdesk/internal/auth"
	"github.com/sparksupport/helpdesk/internal/directory"
	"github.com/sparksupport/helpdesk/internal/domain"
	"github.com/sparksupport/helpdesk/internal/repository"
	"github.com/sparksupport/helpdesk/internal/service"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

// AdminHandler covers the administrative surface: role changes, category and
// priority management and FAQ authoring.
type AdminHandler struct {
	directory  *directory.Directory
	categories repository.CategoryRepository
	priorities repository.PriorityRepository
	faqs       *service.FAQService
}

func NewAdminHandler(dir *directory.Directory, categories repository.CategoryRepository, priorities repository.PriorityRepository, faqs *service.FAQService) *AdminHandler {
	return &AdminHandler{directory: dir, categories: categories, priorities: priorities, faqs: faqs}
}

// ChangeRole PUT /api/admin/users/:id/role.
func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.directory.ChangeRole(c.Context(), c.Params("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// CreateCategory POST /api/admin/categories.
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.NewValidationError("category name is required", nil)
	}
	category := &domain.Category{Name: name}
	if err := h.categories.Create(c.Context(), category); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CategoryResponse{ID: category.ID, Name: category.Name}})
}

// ListCategories GET /api/admin/categories.
func (h *AdminHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		items = append(items, dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreatePriority POST /api/admin/priorities.
func (h *AdminHandler) CreatePriority(c *fiber.Ctx) error {
	var req dto.CreatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.NewValidationError("priority name is required", nil)
	}
	if req.Level < domain.PriorityLevelMin || req.Level > domain.PriorityLevelMax {
		return apperrors.NewValidationError("priority level out of range", map[string]any{
			"min": domain.PriorityLevelMin,
			"max": domain.PriorityLevelMax,
		})
	}
	priority := &domain.Priority{Name: name, Level: req.Level}
	if err := h.priorities.Create(c.Context(), priority); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.PriorityResponse{ID: priority.ID, Name: priority.Name, Level: priority.Level}})
}

// ListPriorities GET /api/admin/priorities.
func (h *AdminHandler) ListPriorities(c *fiber.Ctx) error {
	priorities, err := h.priorities.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.PriorityResponse, 0, len(priorities))
	for _, p := range priorities {
		items = append(items, dto.PriorityResponse{ID: p.ID, Name: p.Name, Level: p.Level})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateFAQ POST /api/admin/faqs.
func (h *AdminHandler) CreateFAQ(c *fiber.Ctx) error {
	var req dto.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	var createdBy *string
	if subject, ok := auth.SubjectFromContext(c); ok {
		createdBy = &subject.ID
	}
	faq, err := h.faqs.CreateFAQ(c.Context(), req.Question, req.Answer, createdBy)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFAQResponse(faq)})
}

// UpdateFAQ PUT /api/admin/faqs/:id.
func (h *AdminHandler) UpdateFAQ(c *fiber.Ctx) error {
	var req dto.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	faq, err := h.faqs.UpdateFAQ(c.Context(), c.Params("id"), req.Question, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFAQResponse(faq)})
}

// ToggleFAQ PUT /api/admin/faqs/:id/toggle.
func (h *AdminHandler) ToggleFAQ(c *fiber.Ctx) error {
	faq, err := h.faqs.ToggleFAQ(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFAQResponse(faq)})
}

// DeleteFAQ DELETE /api/admin/faqs/:id.
func (h *AdminHandler) DeleteFAQ(c *fiber.Ctx) error {
	if err := h.faqs.DeleteFAQ(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListFAQs GET /api/admin/faqs. Includes inactive entries.
func (h *AdminHandler) ListFAQs(c *fiber.Ctx) error {
	faqs, err := h.faqs.ListAllFAQs(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.FAQResponse, 0, len(faqs))
	for i := range faqs {
		items = append(items, dto.NewFAQResponse(&faqs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
