package luggage

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

	"bagtrack-server-go/internal/domain/luggage/aggregate"
	"bagtrack-server-go/internal/domain/luggage/service"
	"bagtrack-server-go/internal/platform/errors"
	"bagtrack-server-go/internal/platform/logging"
)

type fakeLuggageRepo struct {
	nextID  int64
	records map[int64]*aggregate.Luggage
	creds   map[int64]aggregate.Credentials
}

func newFakeLuggageRepo() *fakeLuggageRepo {
	return &fakeLuggageRepo{
		nextID:  1,
		records: map[int64]*aggregate.Luggage{},
		creds:   map[int64]aggregate.Credentials{},
	}
}

func (f *fakeLuggageRepo) Insert(_ context.Context, bag *aggregate.Luggage, creds aggregate.Credentials) error {
	bag.ID = f.nextID
	f.nextID++
	f.records[bag.ID] = bag
	f.creds[bag.ID] = creds
	return nil
}

func (f *fakeLuggageRepo) ListByUserID(_ context.Context, userID string) ([]*aggregate.Luggage, error) {
	var out []*aggregate.Luggage
	for _, bag := range f.records {
		if bag.UserID == userID {
			out = append(out, bag)
		}
	}
	return out, nil
}

func (f *fakeLuggageRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return errors.New(errors.KindNotFound, "fake.delete", "missing")
	}
	delete(f.records, id)
	delete(f.creds, id)
	return nil
}

func (f *fakeLuggageRepo) FindCredentials(_ context.Context, id int64) (*aggregate.Credentials, error) {
	creds, ok := f.creds[id]
	if !ok {
		return nil, nil
	}
	return &creds, nil
}

func newTestRouter(t *testing.T, repo *fakeLuggageRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.New(logging.Config{Level: "error"})
	require.NoError(t, err)

	svc, err := NewService(service.NewLuggageService(repo), logger)
	require.NoError(t, err)

	engine := gin.New()
	require.NoError(t, svc.Register(context.Background(), engine.Group("/api")))
	return engine
}

func perform(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRegisterLuggage_Success(t *testing.T) {
	repo := newFakeLuggageRepo()
	engine := newTestRouter(t, repo)

	body := `{"userId":"u1","luggageName":"Red Suitcase","account":"a","imei":"359339077000001","password":"p"}`
	w := perform(engine, http.MethodPost, "/api/register-luggage", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Luggage registered successfully.")

	// Credentials land in the vault, not in the response body.
	assert.NotContains(t, w.Body.String(), `"password"`)
	require.Len(t, repo.records, 1)
	assert.Equal(t, "a", repo.creds[1].Account)
}

func TestRegisterLuggage_MissingFields(t *testing.T) {
	engine := newTestRouter(t, newFakeLuggageRepo())

	w := perform(engine, http.MethodPost, "/api/register-luggage", `{"userId":"u1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "userId, luggageName, account, imei, and password are required")
}

func TestListLuggage_ByUser(t *testing.T) {
	repo := newFakeLuggageRepo()
	engine := newTestRouter(t, repo)

	for _, body := range []string{
		`{"userId":"u1","luggageName":"A","account":"x","imei":"1","password":"p"}`,
		`{"userId":"u1","luggageName":"B","account":"x","imei":"2","password":"p"}`,
		`{"userId":"u2","luggageName":"C","account":"x","imei":"3","password":"p"}`,
	} {
		require.Equal(t, http.StatusOK, perform(engine, http.MethodPost, "/api/register-luggage", body).Code)
	}

	w := perform(engine, http.MethodGet, "/api/registered-luggage?userId=u1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Luggage []*aggregate.Luggage `json:"luggage"`
	}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Luggage, 2)
}

func TestListLuggage_MissingUserID(t *testing.T) {
	engine := newTestRouter(t, newFakeLuggageRepo())

	w := perform(engine, http.MethodGet, "/api/registered-luggage", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteLuggage_Success(t *testing.T) {
	repo := newFakeLuggageRepo()
	engine := newTestRouter(t, repo)

	body := `{"userId":"u1","luggageName":"A","account":"x","imei":"1","password":"p"}`
	require.Equal(t, http.StatusOK, perform(engine, http.MethodPost, "/api/register-luggage", body).Code)

	w := perform(engine, http.MethodDelete, "/api/registered-luggage/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.records)
	assert.Empty(t, repo.creds)
}

func TestDeleteLuggage_NotFound(t *testing.T) {
	engine := newTestRouter(t, newFakeLuggageRepo())

	w := perform(engine, http.MethodDelete, "/api/registered-luggage/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Luggage not found"}`, w.Body.String())
}

func TestDeleteLuggage_MalformedID(t *testing.T) {
	engine := newTestRouter(t, newFakeLuggageRepo())

	w := perform(engine, http.MethodDelete, "/api/registered-luggage/not-a-number", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "server error")
}
