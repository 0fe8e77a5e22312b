package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/appctx"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository/relational"
)

// TicketsHandler handles ticket endpoints
type TicketsHandler struct {
	tickets *relational.TicketRepository
	logger  *zap.Logger
}

// NewTicketsHandler creates a new tickets handler
func NewTicketsHandler(app *appctx.Context) *TicketsHandler {
	return &TicketsHandler{
		tickets: app.Tickets(),
		logger:  app.Logger().Named("tickets"),
	}
}

// ListTickets handles GET /api/tickets
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	p := ParsePagination(c, 100)
	filter := &domain.TicketFilter{
		AssigneeID: parseQueryUUID(c, "assigneeId"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}

	if s := c.Query("status"); s != "" {
		status := domain.TicketStatus(s)
		if !status.IsValid() {
			return errorResponse(c, apperrors.Validation("Invalid status filter"))
		}
		filter.Status = &status
	}

	tickets, err := h.tickets.List(c.Context(), filter)
	if err != nil {
		return handleError(c, h.logger, err, "list tickets")
	}

	return c.JSON(fiber.Map{
		"data":   tickets,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetTicket handles GET /api/tickets/:id
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id", "ticket")
	if err != nil {
		return handleError(c, h.logger, err, "get ticket")
	}

	ticket, err := h.tickets.Get(c.Context(), id)
	if err != nil {
		return handleError(c, h.logger, err, "get ticket")
	}

	return c.JSON(ticket)
}

// CreateTicket handles POST /api/tickets
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var input domain.TicketInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, h.logger, err, "create ticket")
	}

	ticket, err := h.tickets.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, h.logger, err, "create ticket")
	}

	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// UpdateTicketStatus handles PATCH /api/tickets/:id/status
func (h *TicketsHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id", "ticket")
	if err != nil {
		return handleError(c, h.logger, err, "update ticket status")
	}

	var input domain.TicketStatusInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, h.logger, err, "update ticket status")
	}

	ticket, err := h.tickets.UpdateStatus(c.Context(), id, input.Status)
	if err != nil {
		return handleError(c, h.logger, err, "update ticket status")
	}

	return c.JSON(ticket)
}

// RegisterRoutes registers ticket routes under router
func (h *TicketsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/tickets", h.ListTickets)
	router.Post("/tickets", h.CreateTicket)
	router.Get("/tickets/:id", h.GetTicket)
	router.Patch("/tickets/:id/status", h.UpdateTicketStatus)
}
