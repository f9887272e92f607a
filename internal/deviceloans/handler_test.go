package deviceloans

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-loans-backend/internal/platform/cosmos"
)

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func newTestRouter(repo Repository, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewService(repo), true, guard)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestHandler_CreateAndList(t *testing.T) {
	r := newTestRouter(NewMemoryStore(), nil)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/loans", upsertReq("loan-1"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "/api/v1/loans/loan-1", w.Header().Get("Location"))

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/loans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)

	var data []LoanResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data, *env.Count)
}

func TestHandler_Create_ValidationEnvelope(t *testing.T) {
	r := newTestRouter(NewMemoryStore(), nil)

	req := upsertReq("loan-1")
	req.LoanAmount = 0.5
	req.DueDate = req.StartDate

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/loans", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeValidationFailed, env.Error.Code)

	var details []string
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Len(t, details, 2)
}

func TestHandler_GetNotFound(t *testing.T) {
	r := newTestRouter(NewMemoryStore(), nil)
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/loans/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeNotFound, env.Error.Code)
}

func TestHandler_DeleteIdempotent(t *testing.T) {
	r := newTestRouter(NewMemoryStore(), nil)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/loans", upsertReq("loan-1"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/loans/loan-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env := doJSON(t, r, http.MethodDelete, "/api/v1/loans/loan-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeNotFound, env.Error.Code)
}

func TestHandler_Head(t *testing.T) {
	r := newTestRouter(NewMemoryStore(), nil)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/loans", upsertReq("loan-1"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodHead, "/api/v1/loans/loan-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doJSON(t, r, http.MethodHead, "/api/v1/loans/other", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Replace_IDMismatch(t *testing.T) {
	r := newTestRouter(NewMemoryStore(), nil)

	req := upsertReq("loan-2")
	w, env := doJSON(t, r, http.MethodPut, "/api/v1/loans/loan-1", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeInvalidArgument, env.Error.Code)
}

func TestHandler_GuardProtectsMutations(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	store := NewMemoryStore()
	r := newTestRouter(store, deny)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/loans", upsertReq("loan-1"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 読み取りはガード対象外
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/loans", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_MissingConfig(t *testing.T) {
	// Cosmos の必須環境変数が無い状態では、最初のストアアクセスが
	// 型付き ConfigError になり 400 で返る。
	for _, v := range []string{cosmos.EnvKey, cosmos.EnvEndpoint, cosmos.EnvDatabase, cosmos.EnvContainer} {
		t.Setenv(v, "")
	}

	r := newTestRouter(NewStore(cosmos.NewProvider()), nil)
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/loans", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeMissingConfig, env.Error.Code)
	assert.Contains(t, env.Error.Message, cosmos.EnvKey)
}

func TestHandler_Export(t *testing.T) {
	store := NewMemoryStore()
	l := mkLoan("x", StatusActive, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(context.Background(), &l))

	r := newTestRouter(store, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "device-loans.xlsx")
	assert.NotZero(t, w.Body.Len())
}
