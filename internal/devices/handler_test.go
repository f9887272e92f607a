package devices

import (
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

type stubRepo struct {
	items []Device
	err   error
}

func (s *stubRepo) FindAll(context.Context) ([]Device, error) { return s.items, s.err }
func (s *stubRepo) Save(context.Context, *Device) error       { return nil }

type envelope struct {
	Success bool             `json:"success"`
	Count   *int             `json:"count"`
	Data    []DeviceResponse `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func get(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func newTestRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewService(repo), true)
	return r
}

func TestListProducts_CountMatchesData(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubRepo{items: []Device{
		{ID: "d1", Name: "ThinkPad T14", Category: "laptop", Condition: "good", Available: true, CreatedAt: now},
		{ID: "d2", Name: "iPad Air", Category: "tablet", Condition: "fair", Available: false, CreatedAt: now},
	}}

	w, env := get(t, newTestRouter(repo), "/products")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
	assert.Len(t, env.Data, *env.Count)
	assert.Equal(t, "ThinkPad T14", env.Data[0].Name)
}

func TestListProducts_MissingConfig(t *testing.T) {
	for _, v := range []string{cosmos.EnvKey, cosmos.EnvEndpoint, cosmos.EnvDatabase, cosmos.EnvContainer} {
		t.Setenv(v, "")
	}

	w, env := get(t, newTestRouter(NewStore(cosmos.NewProvider())), "/products")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "MissingConfig", env.Error.Code)
	assert.Contains(t, env.Error.Message, cosmos.EnvKey)
}

func TestListProducts_StoreErrorIs500(t *testing.T) {
	repo := &stubRepo{err: context.DeadlineExceeded}
	w, env := get(t, newTestRouter(repo), "/products")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "InternalServerError", env.Error.Code)
}
