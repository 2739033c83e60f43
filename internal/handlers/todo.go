package handlers

import (
	"net/http"
	"strconv"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"
	"github.com/mauriciosoaresd/todo-study-spring/internal/dto"
	"github.com/mauriciosoaresd/todo-study-spring/internal/service"
	"github.com/mauriciosoaresd/todo-study-spring/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 0
	defaultLimit = service.MaxPageSize
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// List godoc
// @Summary      List todos, paged and sorted
// @Tags         todo
// @Produce      json
// @Param        page       query     int     false  "Zero-based page"            default(0)
// @Param        limit      query     int     false  "Page size, 1 to 20"         default(20)
// @Param        sortfield  query     string  false  "Sort field"  Enums(id, title, description, targetDate, priority)  default(id)
// @Param        sortorder  query     string  false  "Sort order"  Enums(asc, desc)  default(desc)
// @Success      200  {object}  dto.PageResponse
// @Failure      400  {object}  dto.ErrorDetails
// @Router       /todo [get]
func (h *TodoHandler) List(c *gin.Context) {
	req, err := parsePageRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageToResponse(page))
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todo
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  dto.ErrorDetails
// @Failure      404  {object}  dto.ErrorDetails
// @Router       /todo/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoResponse(t))
}

// Create godoc
// @Summary      Create a todo
// @Tags         todo
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TodoRequest  true  "Todo body"
// @Success      201   {object}  dto.TodoResponse
// @Header       201   {string}  Location  "/todo/{id}"
// @Failure      400   {object}  dto.ErrorDetails
// @Router       /todo [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &BodyError{Err: err})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req.Todo())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+strconv.FormatInt(t.ID, 10))
	c.JSON(http.StatusCreated, dto.NewTodoResponse(t))
}

// Replace godoc
// @Summary      Replace every field of a todo
// @Tags         todo
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Todo ID"
// @Param        body  body      dto.TodoRequest  true  "Todo body"
// @Success      202   {object}  dto.TodoResponse
// @Failure      400   {object}  dto.ErrorDetails
// @Failure      404   {object}  dto.ErrorDetails
// @Router       /todo/{id} [put]
func (h *TodoHandler) Replace(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &BodyError{Err: err})
		return
	}
	t, err := h.svc.Replace(c.Request.Context(), id, req.Todo())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.NewTodoResponse(t))
}

// Patch godoc
// @Summary      Update some fields of a todo
// @Description  Keys are applied in order; the first invalid one rejects the whole update.
// @Tags         todo
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Todo ID"
// @Param        body  body      map[string]string  true  "Fields to change: title, description, targetDate, priority"
// @Success      202   {object}  dto.TodoResponse
// @Failure      400   {object}  dto.ErrorDetails
// @Failure      404   {object}  dto.ErrorDetails
// @Router       /todo/{id} [patch]
func (h *TodoHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req validation.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &BodyError{Err: err})
		return
	}
	t, err := h.svc.Patch(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.NewTodoResponse(t))
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todo
// @Param        id   path  int  true  "Todo ID"
// @Success      202
// @Failure      400  {object}  dto.ErrorDetails
// @Failure      404  {object}  dto.ErrorDetails
// @Router       /todo/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(c, &ParamError{Name: name, Value: raw, Type: "int"})
		return 0, false
	}
	return id, true
}

func parsePageRequest(c *gin.Context) (service.PageRequest, error) {
	req := service.PageRequest{
		Page: defaultPage,
		Size: defaultLimit,
		Sort: dom.Sort{Field: dom.FieldID, Direction: dom.Desc},
	}
	if raw, ok := c.GetQuery("page"); ok {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return req, &ParamError{Name: "page", Value: raw, Type: "Integer"}
		}
		req.Page = int(n)
	}
	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return req, &ParamError{Name: "limit", Value: raw, Type: "Integer"}
		}
		req.Size = int(n)
	}
	if raw, ok := c.GetQuery("sortfield"); ok {
		f, ok := dom.ParseField(raw)
		if !ok {
			labels := make([]string, 0, len(dom.Fields()))
			for _, f := range dom.Fields() {
				labels = append(labels, f.Label())
			}
			return req, &ParamError{Name: "sortfield", Value: raw, Type: "TodoField", Allowed: labels}
		}
		req.Sort.Field = f
	}
	if raw, ok := c.GetQuery("sortorder"); ok {
		d, ok := dom.ParseDirection(raw)
		if !ok {
			return req, &ParamError{Name: "sortorder", Value: raw, Type: "Direction", Allowed: []string{dom.Asc.String(), dom.Desc.String()}}
		}
		req.Sort.Direction = d
	}

	if req.Size < 1 || req.Size > service.MaxPageSize {
		return req, &ParamRangeError{Detail: "Limit must be between 1 and 20"}
	}
	if req.Page < 0 {
		return req, &ParamRangeError{Detail: "Page must not be less than zero"}
	}
	return req, nil
}

func pageToResponse(p service.Page) dto.PageResponse {
	content := make([]dto.TodoResponse, len(p.Items))
	for i := range p.Items {
		content[i] = dto.NewTodoResponse(p.Items[i])
	}
	return dto.PageResponse{
		Content: content,
		Page: dto.PageMetadata{
			Size:          p.Size,
			Number:        p.Number,
			TotalElements: p.TotalElements,
			TotalPages:    p.TotalPages,
		},
	}
}
