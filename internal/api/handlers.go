package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrbot/internal/models"
	"hrbot/internal/service"
)

// Handlers связывает HTTP-слой с сервисами. Все решения об успехе или
// неуспехе принимает сервисный слой; уведомления на ответ не влияют.
type Handlers struct {
	Payouts   *service.PayoutService
	Birthdays *service.BirthdayService
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("api: ошибка записи ответа: %v", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
	case errors.Is(err, service.ErrValidation):
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	default:
		log.Printf("api: внутренняя ошибка: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

func filterFromQuery(r *http.Request) models.PayoutFilter {
	q := r.URL.Query()
	return models.PayoutFilter{
		EmployeeID: q.Get("employee_id"),
		PayoutType: q.Get("payout_type"),
		Status:     q.Get("status"),
		Method:     q.Get("method"),
		FromDate:   q.Get("from_date"),
		ToDate:     q.Get("to_date"),
	}
}

// ListPayouts — GET /api/payouts
func (h *Handlers) ListPayouts(w http.ResponseWriter, r *http.Request) {
	rows := h.Payouts.ListPayouts(filterFromQuery(r))
	if rows == nil {
		rows = []models.Payout{}
	}
	respondJSON(w, http.StatusOK, rows)
}

type createPayoutRequest struct {
	EmployeeID string  `json:"user_id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Bank       string  `json:"bank"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	PayoutType string  `json:"payout_type"`
	IsManual   bool    `json:"is_manual"`
	SyncToBot  bool    `json:"sync_to_bot"`
}

// CreatePayout — POST /api/payouts
func (h *Handlers) CreatePayout(w http.ResponseWriter, r *http.Request) {
	var req createPayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "malformed json"})
		return
	}
	created, err := h.Payouts.CreatePayout(service.CreatePayoutInput{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Phone:      req.Phone,
		Bank:       req.Bank,
		Amount:     req.Amount,
		Method:     req.Method,
		PayoutType: req.PayoutType,
		IsManual:   req.IsManual,
	}, req.SyncToBot)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

// UpdatePayout — PUT /api/payouts/{id}
func (h *Handlers) UpdatePayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var upd models.PayoutUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "malformed json"})
		return
	}
	updated, err := h.Payouts.UpdatePayout(id, upd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// SetPayoutStatus — PUT /api/payouts/{id}/status
func (h *Handlers) SetPayoutStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Status *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "status required"})
		return
	}
	updated, err := h.Payouts.UpdateStatus(id, *body.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeletePayout — DELETE /api/payouts/{id}
func (h *Handlers) DeletePayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := h.Payouts.DeletePayout(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "deleted"})
}

// DeletePayouts — DELETE /api/payouts?ids=1,2,3
func (h *Handlers) DeletePayouts(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if err := h.Payouts.DeletePayouts(ids); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListActivePayouts — GET /api/payouts/active
func (h *Handlers) ListActivePayouts(w http.ResponseWriter, r *http.Request) {
	rows := h.Payouts.ListActivePayouts()
	if rows == nil {
		rows = []models.Payout{}
	}
	respondJSON(w, http.StatusOK, rows)
}

// ListControl — GET /api/payouts/control
func (h *Handlers) ListControl(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Payouts.ListControl(filterFromQuery(r)))
}

// ExportPayouts — GET /api/payouts/export
// Отдает xlsx-файл с отфильтрованными заявками.
func (h *Handlers) ExportPayouts(w http.ResponseWriter, r *http.Request) {
	path, err := h.Payouts.ExportPayouts(filterFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(path)+"\"")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

// AllBirthdays — GET /api/birthdays
func (h *Handlers) AllBirthdays(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Birthdays.AllBirthdays())
}

// TodayBirthdays — GET /api/birthdays/today
func (h *Handlers) TodayBirthdays(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Birthdays.TodayBirthdays())
}

// UpcomingBirthdays — GET /api/birthdays/upcoming?days=30
func (h *Handlers) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	respondJSON(w, http.StatusOK, h.Birthdays.UpcomingBirthdays(days))
}
