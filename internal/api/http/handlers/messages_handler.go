package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sparksupport/helpdesk/internal/api/dto"
	"github.com/sparksupport/helpdesk/internal/attachments"
	"github.com/sparksupport/helpdesk/internal/auth"
	"github.com/sparksupport/helpdesk/internal/policy"
	"github.com/sparksupport/helpdesk/internal/service"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

// MessagesHandler serves conversation threads and replies for a ticket.
type MessagesHandler struct {
	tickets *service.TicketService
	files   *attachments.Store
}

func NewMessagesHandler(tickets *service.TicketService, files *attachments.Store) *MessagesHandler {
	return &MessagesHandler{tickets: tickets, files: files}
}

// GetThread GET /api/tickets/:id/messages.
func (h *MessagesHandler) GetThread(c *fiber.Ctx) error {
	subject, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if !policy.CanView(subject, ticket) {
		return apperrors.NewForbidden("you are not allowed to view this ticket")
	}
	messages, err := h.tickets.GetThread(c.Context(), ticket.ID)
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewMessageResponse(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Reply POST /api/tickets/:id/messages. Accepts JSON or multipart with an
// optional attachment part named "attachment".
func (h *MessagesHandler) Reply(c *fiber.Ctx) error {
	subject, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var content string
	var attachmentURL *string

	if file, err := c.FormFile("attachment"); err == nil && file != nil {
		if file.Size > h.files.MaxBytes() {
			return apperrors.NewValidationError("attachment exceeds the maximum allowed size", map[string]any{
				"max_bytes": h.files.MaxBytes(),
			})
		}
		src, err := file.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable attachment", nil)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return apperrors.NewValidationError("unreadable attachment", nil)
		}
		locator, err := h.files.Save(file.Filename, data)
		if err != nil {
			return err
		}
		attachmentURL = &locator
		content = c.FormValue("content")
	} else {
		var req dto.ReplyRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		content = req.Content
	}

	message, err := h.tickets.Reply(c.Context(), c.Params("id"), subject.ID, content, attachmentURL)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(message)})
}
