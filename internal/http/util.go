package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hostelmate-data/internal/dashboard"
	"hostelmate-data/internal/repository"
	"hostelmate-data/internal/service"

	"go.uber.org/zap"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readBodyJSON 空请求体视为错误（写接口都需要请求体）
func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("request body is empty")
	}
	return json.Unmarshal(body, out)
}

// pathID 取 prefix 之后的单段 id；多段或为空返回 false
func pathID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// writeError 错误映射：
// 参数/请求体非法 → 400，无权限 → 403，不存在 → 404，其余 → 500（不向调用方暴露内部错误）
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, dashboard.ErrValidation), errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, Fail(err.Error()))
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, Fail("not found"))
	default:
		caller, _ := CallerFrom(r.Context())
		logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("owner_id", caller.OwnerID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("internal server error"))
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, Fail(fmt.Sprintf("method %s not allowed", r.Method)))
}
