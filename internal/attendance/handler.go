package attendance

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/directory"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CheckIn(ctx context.Context, user *directory.User, dto CheckInDTO) (*Record, error)
	CheckOut(ctx context.Context, user *directory.User) (*Record, error)
	ManualEdit(actor *directory.User, id string, dto ManualEditDTO) (*Record, error)
	Delete(actor *directory.User, id string) error
	Ledger(viewer *directory.User) ([]RecordView, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := directory.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CheckInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && err != io.EOF {
		h.Logger.Error("CheckIn: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.CheckIn(r.Context(), user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := directory.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.Service.CheckOut(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	user, ok := directory.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	views, err := h.Service.Ledger(user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": views,
	})
}

func (h *Handler) ManualEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := directory.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		h.WriteError(w, http.StatusBadRequest, "missing record id")
		return
	}

	var dto ManualEditDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ManualEdit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.ManualEdit(user, recordID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := directory.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		h.WriteError(w, http.StatusBadRequest, "missing record id")
		return
	}

	if err := h.Service.Delete(user, recordID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
