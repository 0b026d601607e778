package handler

import (
	"github.com/canteen/client/internal/application/home"
	menuapp "github.com/canteen/client/internal/application/menu"
	"github.com/canteen/client/internal/domain/menu"
	"github.com/gin-gonic/gin"
)

// MenuHandler serves the catalog and the landing screen
type MenuHandler struct {
	BaseHandler
	menuService *menuapp.Service
	homeService *home.Service
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(menuService *menuapp.Service, homeService *home.Service) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		homeService: homeService,
	}
}

// List godoc
// @Summary      Browse the menu
// @Tags         menu
// @Produce      json
// @Param        category query string false "Category, All for every category"
// @Param        q query string false "Name or category search"
// @Success      200 {object} dto.Response{data=MenuResponse}
// @Router       /menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	catalog, err := h.menuService.Catalog(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	category := c.DefaultQuery("category", menu.CategoryAll)
	h.Success(c, MenuResponse{
		Origin:     string(h.menuService.Origin()),
		Categories: catalog.Categories(),
		Items:      toFoodResponses(catalog.Filter(category, c.Query("q"))),
	})
}

// Refresh reloads the catalog, bypassing the held copy
func (h *MenuHandler) Refresh(c *gin.Context) {
	catalog, origin, err := h.menuService.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MenuResponse{
		Origin:     string(origin),
		Categories: catalog.Categories(),
		Items:      toFoodResponses(catalog.Items()),
	})
}

// Special returns today's special dish
func (h *MenuHandler) Special(c *gin.Context) {
	f, ok, err := h.menuService.Special(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !ok {
		h.NotFound(c, "No special today")
		return
	}
	h.Success(c, toFoodResponse(f))
}

// HomeResponse is the landing screen
type HomeResponse struct {
	Origin     string               `json:"origin"`
	Categories []string             `json:"categories"`
	Special    *FoodResponse        `json:"special,omitempty"`
	Popular    []SuggestionResponse `json:"popular"`
	PopularErr string               `json:"popularError,omitempty"`
}

// Home loads the landing screen
func (h *MenuHandler) Home(c *gin.Context) {
	screen, err := h.homeService.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := HomeResponse{
		Origin:     string(screen.Origin),
		Categories: screen.Categories,
		Popular:    toSuggestionResponses(screen.Popular),
	}
	if screen.Special != nil {
		f := toFoodResponse(*screen.Special)
		resp.Special = &f
	}
	if screen.PopularErr != nil {
		resp.PopularErr = screen.PopularErr.Error()
	}
	h.Success(c, resp)
}
