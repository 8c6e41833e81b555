package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrbot/internal/constants"
	"hrbot/internal/models"
	"hrbot/internal/service"
	"hrbot/internal/storage"
)

const testSecret = "123456:TEST-TOKEN"

// signInitData собирает initData мини-приложения с корректной подписью
// по схеме Telegram WebApp.
func signInitData(t *testing.T, secret string, userID int64) string {
	t.Helper()
	params := map[string]string{
		"user":      fmt.Sprintf(`{"id":%d,"first_name":"Тест"}`, userID),
		"auth_date": "1751900000",
		"query_id":  "AAE-test",
	}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	secretKey := hmac.New(sha256.New, []byte("WebAppData"))
	secretKey.Write([]byte(secret))
	h := hmac.New(sha256.New, secretKey.Sum(nil))
	h.Write([]byte(strings.Join(pairs, "\n")))

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(h.Sum(nil)))
	return values.Encode()
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()

	employeesPath := filepath.Join(dir, "employees.json")
	raw, err := json.Marshal(map[string]models.Employee{
		"1": {ID: "1", Name: "Админов", IsAdmin: true},
		"2": {ID: "2", Name: "Иванов", Bank: "Сбербанк"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(employeesPath, raw, 0644))

	employees := storage.NewEmployeeRepository(employeesPath, nil)
	payouts := storage.NewPayoutRepository(filepath.Join(dir, "payouts.json"))
	payoutSvc := service.NewPayoutService(payouts, employees, nil, nil, 50000)

	return NewRouter(Dependencies{
		SecretKey: testSecret,
		Employees: employees,
		Handlers: &Handlers{
			Payouts:   payoutSvc,
			Birthdays: service.NewBirthdayService(employees),
		},
	})
}

func doRequest(t *testing.T, router http.Handler, method, target, auth string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set("X-Telegram-Auth", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuth_MissingHeader(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/payouts", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidSignature(t *testing.T) {
	router := newTestRouter(t)
	auth := signInitData(t, "другой-токен", 1)
	rec := doRequest(t, router, http.MethodGet, "/api/payouts", auth, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_UnknownEmployee(t *testing.T) {
	router := newTestRouter(t)
	auth := signInitData(t, testSecret, 999)
	rec := doRequest(t, router, http.MethodGet, "/api/payouts", auth, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RegularEmployeeCannotMutate(t *testing.T) {
	router := newTestRouter(t)
	auth := signInitData(t, testSecret, 2)

	rec := doRequest(t, router, http.MethodGet, "/api/payouts", auth, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/payouts", auth,
		`{"user_id":"2","amount":5000,"method":"Перевод на карту"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPayoutLifecycleOverAPI(t *testing.T) {
	router := newTestRouter(t)
	admin := signInitData(t, testSecret, 1)

	// Создание: отображаемые поля дополняются из справочника.
	rec := doRequest(t, router, http.MethodPost, "/api/payouts", admin,
		`{"user_id":"2","amount":5000,"method":"Перевод на карту","payout_type":"Аванс"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created models.Payout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, constants.STATUS_PENDING, created.Status)
	assert.Equal(t, "Иванов", created.Name)
	assert.Equal(t, "Сбербанк", created.Bank)
	require.NotEmpty(t, created.ID)

	// Смена статуса.
	rec = doRequest(t, router, http.MethodPut, "/api/payouts/"+created.ID+"/status", admin,
		`{"status":"Одобрено"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Payout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, constants.STATUS_APPROVED, updated.Status)

	// Список.
	rec = doRequest(t, router, http.MethodGet, "/api/payouts?employee_id=2", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Payout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// Удаление.
	rec = doRequest(t, router, http.MethodDelete, "/api/payouts/"+created.ID, admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/payouts/"+created.ID, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetPayoutStatus_Validation(t *testing.T) {
	router := newTestRouter(t)
	admin := signInitData(t, testSecret, 1)

	rec := doRequest(t, router, http.MethodPut, "/api/payouts/1/status", admin, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/payouts/999/status", admin, `{"status":"Одобрено"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePayout_ValidationOverAPI(t *testing.T) {
	router := newTestRouter(t)
	admin := signInitData(t, testSecret, 1)

	rec := doRequest(t, router, http.MethodPost, "/api/payouts", admin,
		`{"user_id":"2","amount":-5,"method":"Перевод на карту"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/payouts", admin, `{не json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePayouts_Bulk(t *testing.T) {
	router := newTestRouter(t)
	admin := signInitData(t, testSecret, 1)

	for i := 0; i < 3; i++ {
		rec := doRequest(t, router, http.MethodPost, "/api/payouts", admin,
			`{"user_id":"2","amount":1000,"method":"Наличными"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, router, http.MethodDelete, "/api/payouts?ids=1,3", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/payouts", admin, "")
	var list []models.Payout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)
}

func TestListControl_AdminOnly(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/payouts/control", signInitData(t, testSecret, 2), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/payouts/control", signInitData(t, testSecret, 1), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBirthdaysEndpoints(t *testing.T) {
	router := newTestRouter(t)
	auth := signInitData(t, testSecret, 2)

	for _, target := range []string{"/api/birthdays", "/api/birthdays/today", "/api/birthdays/upcoming?days=60"} {
		rec := doRequest(t, router, http.MethodGet, target, auth, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}
