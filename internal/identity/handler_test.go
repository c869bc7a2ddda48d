package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(service *Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(service).RegisterRoutes(r)
	return r
}

func postRegister(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"email":"a@x.com","password":"pw123456","name":"A","role":"staff","emailVerified":"true","employmentType":"fulltime"}`

func TestHandler_Register_Created(t *testing.T) {
	repo := newMockRepository()
	sender := &mockSender{}
	router := newTestRouter(newTestService(repo, sender))

	rec := postRegister(t, router, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "An activation link has been sent to your mail", resp.Message)
	assert.Equal(t, 200, resp.StatusCode)

	assert.Len(t, repo.users, 1)
	assert.Len(t, sender.sent, 1)
}

func TestHandler_Register_RepeatedCallConflicts(t *testing.T) {
	repo := newMockRepository()
	router := newTestRouter(newTestService(repo, &mockSender{}))

	rec := postRegister(t, router, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postRegister(t, router, validBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"User Already Exist"}`, rec.Body.String())

	assert.Len(t, repo.users, 1)
}

func TestHandler_Register_IncompleteInput(t *testing.T) {
	router := newTestRouter(newTestService(newMockRepository(), &mockSender{}))

	body := `{"email":"a@x.com","password":"pw123456","name":"  ","role":"staff","emailVerified":"true","employmentType":"fulltime"}`
	rec := postRegister(t, router, body)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.JSONEq(t, `{"message":"Fields can't be empty","statusCode":204}`, rec.Body.String())
}

func TestHandler_Register_InvalidJSON(t *testing.T) {
	router := newTestRouter(newTestService(newMockRepository(), &mockSender{}))

	rec := postRegister(t, router, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Register_MailFailureIsGeneric(t *testing.T) {
	// Dependency failures flatten to one opaque message externally.
	sender := &mockSender{err: errors.New("dial smtp: connection refused")}
	router := newTestRouter(newTestService(newMockRepository(), sender))

	rec := postRegister(t, router, validBody)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.JSONEq(t, `{"message":"Oops, something went wrong"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "smtp")
}

func TestHandler_Activate_Flow(t *testing.T) {
	repo := newMockRepository()
	service := newTestService(repo, &mockSender{})
	router := newTestRouter(service)

	rec := postRegister(t, router, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var userID string
	for _, u := range repo.users {
		userID = u.ID
	}
	token := "tok-" + userID

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec2 := get("/auth/activation/" + token)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.JSONEq(t, `{"message":"Your account has been activated"}`, rec2.Body.String())

	rec2 = get("/auth/activation/" + token)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.JSONEq(t, `{"message":"Account already activated"}`, rec2.Body.String())

	rec2 = get("/auth/activation/garbage")
	assert.Equal(t, http.StatusNotFound, rec2.Code)
	assert.JSONEq(t, `{"message":"User does not exist"}`, rec2.Body.String())
}
