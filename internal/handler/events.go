package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/appctx"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository/relational"
)

// EventsHandler handles the event log of a ticket
type EventsHandler struct {
	events  *relational.EventRepository
	tickets *relational.TicketRepository
	logger  *zap.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(app *appctx.Context) *EventsHandler {
	return &EventsHandler{
		events:  app.Events(),
		tickets: app.Tickets(),
		logger:  app.Logger().Named("events"),
	}
}

// ListEvents handles GET /api/tickets/:id/events
func (h *EventsHandler) ListEvents(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id", "ticket")
	if err != nil {
		return handleError(c, h.logger, err, "list events")
	}

	if _, err := h.tickets.Get(c.Context(), ticketID); err != nil {
		return handleError(c, h.logger, err, "list events")
	}

	p := ParsePagination(c, 500)
	events, err := h.events.ListByTicket(c.Context(), ticketID, p.Limit, p.Offset)
	if err != nil {
		return handleError(c, h.logger, err, "list events")
	}

	return c.JSON(fiber.Map{
		"data":   events,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// AppendEvent handles POST /api/tickets/:id/events.
// A read-only events repository answers 403.
func (h *EventsHandler) AppendEvent(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id", "ticket")
	if err != nil {
		return handleError(c, h.logger, err, "append event")
	}

	var input domain.EventInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, h.logger, err, "append event")
	}

	if _, err := h.tickets.Get(c.Context(), ticketID); err != nil {
		return handleError(c, h.logger, err, "append event")
	}

	event, err := h.events.Append(c.Context(), ticketID, &input)
	if err != nil {
		return handleError(c, h.logger, err, "append event")
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// RegisterRoutes registers event routes under router
func (h *EventsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/tickets/:id/events", h.ListEvents)
	router.Post("/tickets/:id/events", h.AppendEvent)
}
