package devices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagtrack-server-go/internal/domain/registration/aggregate"
	"bagtrack-server-go/internal/domain/registration/service"
	"bagtrack-server-go/internal/platform/errors"
	"bagtrack-server-go/internal/platform/logging"
)

type fakeRegistrationRepo struct {
	records map[string]*aggregate.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{records: map[string]*aggregate.Registration{}}
}

func (f *fakeRegistrationRepo) Insert(_ context.Context, reg *aggregate.Registration) error {
	if _, ok := f.records[reg.DeviceID]; ok {
		return errors.New(errors.KindConflict, "fake.insert", "duplicate")
	}
	f.records[reg.DeviceID] = reg
	return nil
}

func (f *fakeRegistrationRepo) FindByDeviceID(_ context.Context, deviceID string) (*aggregate.Registration, error) {
	return f.records[deviceID], nil
}

func newTestRouter(t *testing.T, repo *fakeRegistrationRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.New(logging.Config{Level: "error"})
	require.NoError(t, err)

	svc, err := NewService(service.NewRegistrationService(repo), logger)
	require.NoError(t, err)

	engine := gin.New()
	require.NoError(t, svc.Register(context.Background(), engine.Group("/api")))
	return engine
}

func performJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRegisterDevice_ScannedPayload(t *testing.T) {
	repo := newFakeRegistrationRepo()
	engine := newTestRouter(t, repo)

	body := `{"scanned":"{\"deviceId\":\"D1\",\"location\":{\"lat\":6.9,\"lng\":79.8}}"}`
	w := performJSON(engine, http.MethodPost, "/api/register-device", body)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		NavigateTo string `json:"navigateTo"`
	}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "proceed to luggage registration", resp.NavigateTo)

	stored := repo.records["D1"]
	require.NotNil(t, stored)
	require.NotNil(t, stored.Location)
	assert.Equal(t, 6.9, stored.Location.Lat)
}

func TestRegisterDevice_TypedID(t *testing.T) {
	repo := newFakeRegistrationRepo()
	engine := newTestRouter(t, repo)

	w := performJSON(engine, http.MethodPost, "/api/register-device", `{"deviceId":"D2"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.records["D2"])
	assert.Nil(t, repo.records["D2"].Location)
}

func TestRegisterDevice_MissingIdentifier(t *testing.T) {
	engine := newTestRouter(t, newFakeRegistrationRepo())

	w := performJSON(engine, http.MethodPost, "/api/register-device", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must supply a device id or scan")
}

func TestRegisterDevice_MalformedScan(t *testing.T) {
	engine := newTestRouter(t, newFakeRegistrationRepo())

	w := performJSON(engine, http.MethodPost, "/api/register-device", `{"scanned":"not json"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid scan format")
}

func TestRegisterDevice_Duplicate(t *testing.T) {
	repo := newFakeRegistrationRepo()
	engine := newTestRouter(t, repo)

	first := performJSON(engine, http.MethodPost, "/api/register-device", `{"deviceId":"D3"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := performJSON(engine, http.MethodPost, "/api/register-device", `{"deviceId":"D3"}`)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Device already registered.")
	assert.Len(t, repo.records, 1)
}
