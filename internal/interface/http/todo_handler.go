package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/todocards/api/internal/application"
	"github.com/todocards/api/internal/domain/entity"
	"github.com/todocards/api/pkg/response"
	"github.com/todocards/api/pkg/validation"
)

// TodoHandler maps the card/item routes onto the store façade. Every route
// here runs behind the auth middleware, so userID is always present.
type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

// listsPayload is the response body shared by every card/item operation.
// The field names mirror what the frontend consumes.
type listsPayload struct {
	Lists           []entity.List `json:"lists"`
	Count           int           `json:"count,omitempty"`
	DefaultListName string        `json:"defaultListName"`
	RemovedImage    string        `json:"image,omitempty"`
}

func payloadFrom(res application.ListsResult, withCount bool) listsPayload {
	p := listsPayload{
		Lists:           res.Lists,
		DefaultListName: res.DefaultListName,
		RemovedImage:    res.RemovedImage,
	}
	if withCount {
		p.Count = len(res.Lists)
	}
	return p
}

// statusFor maps domain error kinds to HTTP statuses without reinterpreting
// them; anything unrecognized is a storage-level failure.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest, "validation failed"
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict, "concurrent update, please retry"
	default:
		return http.StatusInternalServerError, "storage error"
	}
}

func (h *TodoHandler) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError && h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("todo operation failed")
	}
	resp := response.Error[any](c, status, msg, err.Error())
	c.JSON(resp.Status, resp)
}

type addCardRequest struct {
	ListName string   `json:"listName" binding:"required"`
	ListImg  string   `json:"listImg" binding:"required,url"`
	ListBody string   `json:"listBody"`
	Items    []string `json:"items"`
}

type deleteCardRequest struct {
	ListID string `json:"listId" binding:"required"`
}

type updateCardRequest struct {
	ListID   string `json:"listId" binding:"required"`
	ListName string `json:"listName" binding:"required"`
	ListBody string `json:"listBody" binding:"required"`
	ListImg  string `json:"listImg"`
}

type addItemsRequest struct {
	List    string `json:"list" binding:"required"`
	NewItem string `json:"newItem" binding:"required"`
}

type itemRequest struct {
	ListName string `json:"listName" binding:"required"`
	ItemID   string `json:"itemId" binding:"required"`
}

// List GET /api/todos
func (h *TodoHandler) List(c *gin.Context) {
	res, err := h.Svc.ListAll(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, payloadFrom(res, true), "lists retrieved successfully", nil)
	c.JSON(resp.Status, resp)
}

// AddCard POST /api/todos/addCard
func (h *TodoHandler) AddCard(c *gin.Context) {
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	res, err := h.Svc.CreateList(c.Request.Context(), c.GetString("userID"), application.CreateListInput{
		Name:     req.ListName,
		ImageURL: req.ListImg,
		Body:     req.ListBody,
		Items:    req.Items,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, payloadFrom(res, false), "list added successfully", nil)
	c.JSON(resp.Status, resp)
}

// DeleteCard POST /api/todos/deleteCard
func (h *TodoHandler) DeleteCard(c *gin.Context) {
	var req deleteCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	res, err := h.Svc.DeleteList(c.Request.Context(), c.GetString("userID"), req.ListID)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, payloadFrom(res, false), "list removed successfully", nil)
	c.JSON(resp.Status, resp)
}

// UpdateCard PUT /api/todos/updateCard
func (h *TodoHandler) UpdateCard(c *gin.Context) {
	var req updateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	res, err := h.Svc.UpdateList(c.Request.Context(), c.GetString("userID"), application.UpdateListInput{
		ListID:   req.ListID,
		Name:     req.ListName,
		Body:     req.ListBody,
		ImageURL: req.ListImg,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, payloadFrom(res, false), "list updated successfully", nil)
	c.JSON(resp.Status, resp)
}

// AddItems POST /api/todos/addItems
func (h *TodoHandler) AddItems(c *gin.Context) {
	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	res, err := h.Svc.AddItem(c.Request.Context(), c.GetString("userID"), entity.ListRef{Name: req.List}, req.NewItem)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, payloadFrom(res, false), "item added successfully", nil)
	c.JSON(resp.Status, resp)
}

// CompleteItem PUT /api/todos/completeItem
func (h *TodoHandler) CompleteItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	res, err := h.Svc.CompleteItem(c.Request.Context(), c.GetString("userID"), entity.ListRef{Name: req.ListName}, req.ItemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, payloadFrom(res, false), "item completed successfully", nil)
	c.JSON(resp.Status, resp)
}

// DeleteItem DELETE /api/todos/deleteItem
func (h *TodoHandler) DeleteItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	res, err := h.Svc.DeleteCompletedItem(c.Request.Context(), c.GetString("userID"), entity.ListRef{Name: req.ListName}, req.ItemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, payloadFrom(res, false), "item deleted successfully", nil)
	c.JSON(resp.Status, resp)
}
