package httpapi

import (
	"context"
	"net/http"

	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/service"

	"go.uber.org/zap"
)

// entityService service.EntityService 的方法集
type entityService[T any] interface {
	Name() string
	List(ctx context.Context, caller domain.Caller) ([]*T, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*T, error)
	Create(ctx context.Context, caller domain.Caller, v *T) (*T, error)
	Update(ctx context.Context, caller domain.Caller, id string, v *T) (*T, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

var _ entityService[domain.Property] = (*service.EntityService[domain.Property])(nil)

// EntityHandler 通用 CRUD 接口
//
//	GET    {base}        列表
//	POST   {base}        创建
//	GET    {base}/{id}   详情
//	PUT    {base}/{id}   更新
//	DELETE {base}/{id}   删除
type EntityHandler[T any] struct {
	base   string
	svc    entityService[T]
	logger *zap.Logger
}

func NewEntityHandler[T any](base string, svc entityService[T], logger *zap.Logger) *EntityHandler[T] {
	return &EntityHandler[T]{base: base, svc: svc, logger: logger}
}

// Collection {base}
func (h *EntityHandler[T]) Collection(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())

	switch r.Method {
	case http.MethodGet:
		items, err := h.svc.List(r.Context(), caller)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(items))
	case http.MethodPost:
		var v T
		if err := readBodyJSON(r, maxBodyBytes, &v); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
			return
		}
		created, err := h.svc.Create(r.Context(), caller, &v)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(created))
	default:
		methodNotAllowed(w, r)
	}
}

// Item {base}/{id}
func (h *EntityHandler[T]) Item(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())
	id, ok := pathID(r.URL.Path, h.base+"/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		v, err := h.svc.Get(r.Context(), caller, id)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(v))
	case http.MethodPut:
		var v T
		if err := readBodyJSON(r, maxBodyBytes, &v); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
			return
		}
		updated, err := h.svc.Update(r.Context(), caller, id, &v)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(updated))
	case http.MethodDelete:
		if err := h.svc.Delete(r.Context(), caller, id); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok[any](nil))
	default:
		methodNotAllowed(w, r)
	}
}
