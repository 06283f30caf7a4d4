package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"imagique/internal/i18n"
	"imagique/internal/services"
	"imagique/models"
)

var moderationMessages = map[string]string{
	"approve": i18n.MsgOrganizerApproved,
	"reject":  i18n.MsgOrganizerRejected,
	"block":   i18n.MsgOrganizerBlocked,
}

type AdminHandler struct {
	responder
	admin *services.AdminService
}

func NewAdminHandler(tr *i18n.Translator, admin *services.AdminService) *AdminHandler {
	return &AdminHandler{responder: responder{tr: tr}, admin: admin}
}

// GetOrganizers - Organizer list, filtered by ?filter=All|Requested|Approved|Rejected
func (h *AdminHandler) GetOrganizers(c echo.Context) error {
	filter, ok := services.ParseOrganizerFilter(c.QueryParam("filter"))
	if !ok {
		return badRequest(c, "Invalid filter")
	}
	organizers, err := h.admin.Organizers(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, organizers)
}

// ModerateOrganizer - approve, reject or block
func (h *AdminHandler) ModerateOrganizer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid organizer id")
	}
	action := c.PathParam("action")
	if err := h.admin.Moderate(c.Request().Context(), id, action); err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, moderationMessages[action], map[string]any{"userDetailsId": id})
}

func (h *AdminHandler) GetCategories(c echo.Context) error {
	categories, err := h.admin.Categories(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	return h.saveCategory(c, 0, http.StatusCreated)
}

func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c, "categoryId")
	if err != nil {
		return badRequest(c, "Invalid category id")
	}
	return h.saveCategory(c, id, http.StatusOK)
}

// saveCategory reads the multipart form: categoryName and an optional image.
func (h *AdminHandler) saveCategory(c echo.Context, id int64, code int) error {
	draft := models.CategoryDraft{
		CategoryID:   id,
		CategoryName: c.FormValue("categoryName"),
	}
	if _, err := c.FormFile("image"); err == nil {
		img, err := readImage(c)
		if err != nil {
			return badRequest(c, err.Error())
		}
		draft.Image = img
	}

	category, err := h.admin.SaveCategory(c.Request().Context(), draft)
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(code, category)
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c, "categoryId")
	if err != nil {
		return badRequest(c, "Invalid category id")
	}
	if err := h.admin.DeleteCategory(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "")
	}
	return c.NoContent(http.StatusNoContent)
}
