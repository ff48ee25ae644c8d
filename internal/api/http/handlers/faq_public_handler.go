package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sparksupport/helpdesk/internal/api/dto"
	"github.com/sparksupport/helpdesk/internal/service"
)

// FAQPublicHandler serves the unauthenticated FAQ listing.
type FAQPublicHandler struct {
	faqs *service.FAQService
}

func NewFAQPublicHandler(faqs *service.FAQService) *FAQPublicHandler {
	return &FAQPublicHandler{faqs: faqs}
}

// ListActive GET /faqs.
func (h *FAQPublicHandler) ListActive(c *fiber.Ctx) error {
	faqs, err := h.faqs.ListActiveFAQs(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.FAQResponse, 0, len(faqs))
	for i := range faqs {
		items = append(items, dto.NewFAQResponse(&faqs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
