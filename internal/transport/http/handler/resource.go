package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/identity"
	"github.com/gin-gonic/gin"
)

type resourceUsecaser[T domain.Ownable] interface {
	Kind() domain.Kind
	Create(ctx context.Context, caller identity.Caller, r T) (T, error)
	List(ctx context.Context, caller identity.Caller) ([]T, error)
	Get(ctx context.Context, caller identity.Caller, id string) (T, error)
	Update(ctx context.Context, caller identity.Caller, id string, patch T) (T, error)
	Delete(ctx context.Context, caller identity.Caller, id string) (string, error)
}

// ResourceHandler serves the CRUD routes of one resource kind. bind turns the
// request body into a resource, render turns a resource into its JSON shape.
type ResourceHandler[T domain.Ownable] struct {
	usecase resourceUsecaser[T]
	kind    domain.Kind
	bind    func(c *gin.Context) (T, error)
	render  func(T) any
	logger  *slog.Logger
}

func newResourceHandler[T domain.Ownable](
	uc resourceUsecaser[T],
	bind func(c *gin.Context) (T, error),
	render func(T) any,
	logger *slog.Logger,
) *ResourceHandler[T] {
	kind := uc.Kind()
	return &ResourceHandler[T]{
		usecase: uc,
		kind:    kind,
		bind:    bind,
		render:  render,
		logger:  logger.With("component", string(kind)+"_handler"),
	}
}

// GET /<collection>
func (h *ResourceHandler[T]) List(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	items, err := h.usecase.List(c.Request.Context(), caller)
	if err != nil {
		h.fail(c, "list", "", err)
		return
	}

	resp := make([]any, len(items))
	for i, item := range items {
		resp[i] = h.render(item)
	}
	c.JSON(http.StatusOK, resp)
}

// POST /<collection>
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	r, err := h.bind(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), caller, r)
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}
	c.JSON(http.StatusCreated, h.render(created))
}

// GET /<collection>/:id
func (h *ResourceHandler[T]) GetByID(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id := c.Param("id")

	r, err := h.usecase.Get(c.Request.Context(), caller, id)
	if err != nil {
		h.fail(c, "get", id, err)
		return
	}
	c.JSON(http.StatusOK, h.render(r))
}

// PUT /<collection>/:id
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id := c.Param("id")

	patch, err := h.bind(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	updated, err := h.usecase.Update(c.Request.Context(), caller, id, patch)
	if err != nil {
		h.fail(c, "update", id, err)
		return
	}
	c.JSON(http.StatusOK, h.render(updated))
}

// DELETE /<collection>/:id
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id := c.Param("id")

	deleted, err := h.usecase.Delete(c.Request.Context(), caller, id)
	if err != nil {
		h.fail(c, "delete", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("%s deleted successfully", capitalize(string(h.kind))),
		"id":      deleted,
	})
}

func (h *ResourceHandler[T]) caller(c *gin.Context) (identity.Caller, bool) {
	caller, ok := identity.FromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, codeUnauthorized, errUnauthorized)
		return nil, false
	}
	return caller, true
}

func (h *ResourceHandler[T]) fail(c *gin.Context, op, id string, err error) {
	ctx := c.Request.Context()
	var ownErr *domain.OwnershipError
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		respondError(c, http.StatusBadRequest, codeInvalidID, errInvalidID)
	case errors.Is(err, domain.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, capitalize(string(h.kind))+" not found")
	case errors.As(err, &ownErr):
		h.logger.WarnContext(ctx, "ownership check failed",
			"action", ownErr.Action, "resource_id", id)
		respondError(c, http.StatusForbidden, codeForbidden, capitalize(ownErr.Error()))
	case errors.Is(err, domain.ErrInvalidRecurrence):
		respondError(c, http.StatusBadRequest, codeValidation, errInvalidRecurrence)
	case errors.Is(err, domain.ErrInvalidPeriod):
		respondError(c, http.StatusBadRequest, codeValidation, errInvalidPeriod)
	case errors.Is(err, domain.ErrResourceNameConflict):
		respondError(c, http.StatusConflict, codeConflict,
			capitalize(string(h.kind))+" with this name already exists")
	default:
		h.logger.ErrorContext(ctx, op+" "+string(h.kind), "resource_id", id, "error", err)
		respondError(c, http.StatusInternalServerError, codeServerError, errInternalServer)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
