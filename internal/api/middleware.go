package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"hrbot/internal/models"
	"hrbot/internal/storage"
)

type contextKey struct {
	name string
}

// EmployeeContextKey — ключ, под которым аутентифицированный сотрудник
// лежит в контексте запроса.
var EmployeeContextKey = &contextKey{"Employee"}

// AuthMiddleware проверяет заголовок X-Telegram-Auth с initData мини-приложения
// и сопоставляет вызывающего с карточкой в справочнике сотрудников.
func AuthMiddleware(secretKey string, employees *storage.EmployeeRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("X-Telegram-Auth")
			if authHeader == "" {
				http.Error(w, "Unauthorized: missing X-Telegram-Auth header", http.StatusUnauthorized)
				return
			}

			userID, err := validateInitData(authHeader, secretKey)
			if err != nil {
				log.Printf("AuthMiddleware: initData не прошла проверку: %v", err)
				http.Error(w, "Unauthorized: invalid initData", http.StatusUnauthorized)
				return
			}

			emp, ok := employees.GetEmployee(strconv.FormatInt(userID, 10))
			if !ok {
				log.Printf("AuthMiddleware: сотрудник с chat ID %d не найден в справочнике", userID)
				http.Error(w, "Unauthorized: employee not found", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), EmployeeContextKey, emp)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly пропускает дальше только сотрудников с правами администратора.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		emp, ok := r.Context().Value(EmployeeContextKey).(models.Employee)
		if !ok {
			http.Error(w, "Forbidden: employee data not found in context", http.StatusForbidden)
			return
		}
		if !emp.IsAdmin {
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type initDataUser struct {
	ID int64 `json:"id"`
}

// validateInitData проверяет подпись initData по схеме Telegram WebApp
// (HMAC-SHA256 с ключом "WebAppData") и возвращает ID пользователя.
func validateInitData(initData, secret string) (int64, error) {
	q, err := url.ParseQuery(initData)
	if err != nil {
		return 0, fmt.Errorf("разбор initData: %w", err)
	}

	hash := q.Get("hash")
	if hash == "" {
		return 0, fmt.Errorf("в initData отсутствует hash")
	}

	userJSON := q.Get("user")
	if userJSON == "" {
		return 0, fmt.Errorf("в initData отсутствуют данные пользователя")
	}
	var user initDataUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return 0, fmt.Errorf("разбор данных пользователя: %w", err)
	}

	pairs := make([]string, 0, len(q))
	for k, v := range q {
		if k != "hash" {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, v[0]))
		}
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := hmac.New(sha256.New, []byte("WebAppData"))
	secretKey.Write([]byte(secret))
	h := hmac.New(sha256.New, secretKey.Sum(nil))
	h.Write([]byte(dataCheckString))

	if hex.EncodeToString(h.Sum(nil)) != hash {
		return 0, fmt.Errorf("подпись initData не совпала")
	}
	return user.ID, nil
}
