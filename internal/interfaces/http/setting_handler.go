package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/application/usecase"
)

// SettingHandler maneja las peticiones HTTP para Setting (configuración
// global; las escrituras exigen rol de plataforma).
type SettingHandler struct {
	uc *usecase.SettingUseCase
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *usecase.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear setting
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSettingRequest  true  "Clave y valor"
// @Success      201   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/settings [post]
func (h *SettingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "setting creado", out)
}

// List godoc
// @Summary      Listar settings
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por clave"
// @Success      200  {object}  dto.PagedResponse
// @Router       /api/settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	var page dto.PageQuery
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.Defaults()

	items, total, err := h.uc.List(page.Search, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPagedResponse(items, "/api/settings", page.Page, page.PerPage, total))
}

// Map godoc
// @Summary      Mapa plano clave→valor de todos los settings
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsMap
// @Router       /api/settings/map [get]
func (h *SettingHandler) Map(c *fiber.Ctx) error {
	out, err := h.uc.Map()
	if err != nil {
		return respondError(c, err)
	}
	// El mapa se devuelve plano, sin el sobre {message, data}: el cliente lo
	// consume directamente como {clave: valor}.
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener setting por ID
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del setting"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{id} [get]
func (h *SettingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "setting encontrado", out)
}

// Update godoc
// @Summary      Actualizar setting
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del setting"
// @Param        body  body  dto.UpdateSettingRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/settings/{id} [put]
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "setting actualizado", out)
}

// Delete godoc
// @Summary      Eliminar setting
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del setting"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{id} [delete]
func (h *SettingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "setting eliminado", nil)
}
