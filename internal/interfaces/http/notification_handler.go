package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/application/notification"
	"github.com/andilac/lacteos-api/internal/application/validation"
)

// NotificationHandler maneja alertas y recordatorios.
type NotificationHandler struct {
	uc *notification.UseCase
	v  *validation.Validator
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase, v *validation.Validator) *NotificationHandler {
	return &NotificationHandler{uc: uc, v: v}
}

// ListAlerts godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *NotificationHandler) ListAlerts(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListAlerts(c.Query("status"), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// AcknowledgeAlert godoc
// @Summary      Marcar alerta como atendida
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/acknowledge [post]
func (h *NotificationHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.AcknowledgeAlert(id, GetEmployeeID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// ResolveAlert godoc
// @Summary      Resolver alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [post]
func (h *NotificationHandler) ResolveAlert(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.ResolveAlert(id, GetEmployeeID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// CreateReminder godoc
// @Summary      Crear recordatorio
// @Tags         reminders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReminderRequest  true  "Datos del recordatorio"
// @Success      201   {object}  dto.ReminderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reminders [post]
func (h *NotificationHandler) CreateReminder(c *fiber.Ctx) error {
	var in dto.CreateReminderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.v.Struct(in); err != nil {
		return errorJSON(c, err)
	}
	out, err := h.uc.CreateReminder(GetEmployeeID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReminders godoc
// @Summary      Listar recordatorios
// @Tags         reminders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.ReminderResponse
// @Router       /api/reminders [get]
func (h *NotificationHandler) ListReminders(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListReminders(c.Query("status"), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// CompleteReminder godoc
// @Summary      Completar recordatorio
// @Tags         reminders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recordatorio"
// @Success      200  {object}  dto.ReminderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reminders/{id}/complete [post]
func (h *NotificationHandler) CompleteReminder(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.CompleteReminder(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// CancelReminder godoc
// @Summary      Cancelar recordatorio
// @Tags         reminders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recordatorio"
// @Success      200  {object}  dto.ReminderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reminders/{id}/cancel [post]
func (h *NotificationHandler) CancelReminder(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.CancelReminder(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
