package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"personDirectory/internal/testutil"
	"personDirectory/models"
	"personDirectory/repository"
)

const testSecret = "test-secret"

type testAPI struct {
	handler    http.Handler
	adminToken string
	userToken  string
}

func newTestAPI(t *testing.T, name string) *testAPI {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	people := repository.NewPersonRepository(d)
	return &testAPI{
		handler:    NewHandler(testSecret, people),
		adminToken: testutil.GenerateJWTHS256(t, testSecret, "root", "admin"),
		userToken:  testutil.GenerateJWTHS256(t, testSecret, "alice", "client"),
	}
}

func (a *testAPI) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req = testutil.ReqWithBearer(req, token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz_NoAuthRequired(t *testing.T) {
	api := newTestAPI(t, "serverapi_health")
	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPersons_RequireAuth(t *testing.T) {
	api := newTestAPI(t, "serverapi_auth")
	rec := api.do(t, http.MethodGet, "/persons", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminTable_RequiresAdminKind(t *testing.T) {
	api := newTestAPI(t, "serverapi_admin")
	rec := api.do(t, http.MethodPost, "/admin/table", api.userToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/admin/table", api.adminToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Creating the table again conflicts.
	rec = api.do(t, http.MethodPost, "/admin/table", api.adminToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestPersonAPI_FullWalkthrough(t *testing.T) {
	api := newTestAPI(t, "serverapi_walkthrough")

	neo := models.Person{
		Username:   "Neo",
		Email:      "ThomasAnderson@gmail.com",
		FirstName:  "Thomas",
		LastName:   "Anderson",
		Biography:  "Thomas Anderson is a Computer Programmer.",
		Occupation: "Computer Programmer",
	}
	batch := []models.Person{
		{Username: "Janey", Email: "JaneDoe@gmail.com", FirstName: "Jane", LastName: "Doe", Biography: "Jane Doe is a Software Engineer.", Occupation: "Software Engineer"},
		{Username: "Joey", Email: "JoeShmo@gmail.com", FirstName: "Joseph", LastName: "Shmo", Biography: "Joseph Shmo is a Data Scientist.", Occupation: "Data Scientist"},
		{Username: "Jonny", Email: "JohnSmith@gmail.com", FirstName: "John", LastName: "Smith", Biography: "John Doe is a Database Administrator.", Occupation: "Database Administrator"},
	}

	rec := api.do(t, http.MethodPost, "/admin/table", api.adminToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/persons", api.userToken, neo)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/persons/batch", api.userToken, batch)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Full listing is ordered by lastname.
	rec = api.do(t, http.MethodGet, "/persons", api.userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 4)
	require.Equal(t, []string{"Anderson", "Doe", "Shmo", "Smith"},
		[]string{all[0].LastName, all[1].LastName, all[2].LastName, all[3].LastName})
	require.Equal(t, neo, all[0])

	// Exact lastname lookup is case-sensitive.
	rec = api.do(t, http.MethodGet, "/persons/lastname/Shmo", api.userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var joey models.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joey))
	require.Equal(t, batch[1], joey)

	rec = api.do(t, http.MethodGet, "/persons/lastname/shmo", api.userToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Biography search is case-insensitive and returns the first match.
	rec = api.do(t, http.MethodGet, "/persons/search?bio=ENG", api.userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var engineer models.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &engineer))
	require.Equal(t, "Doe", engineer.LastName)

	// Partial lastname search projects names ordered by firstname.
	rec = api.do(t, http.MethodGet, "/persons/search?lastname=s", api.userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var names []models.PersonName
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	require.Equal(t, []models.PersonName{
		{FirstName: "John", LastName: "Smith"},
		{FirstName: "Joseph", LastName: "Shmo"},
		{FirstName: "Thomas", LastName: "Anderson"},
	}, names)

	rec = api.do(t, http.MethodGet, "/persons/search", api.userToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, "/admin/table", api.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreatePerson_RejectsMalformedBody(t *testing.T) {
	api := newTestAPI(t, "serverapi_badbody")
	rec := api.do(t, http.MethodPost, "/admin/table", api.adminToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/persons", bytes.NewReader([]byte("{not json")))
	req = testutil.ReqWithBearer(req, api.userToken)
	out := httptest.NewRecorder()
	api.handler.ServeHTTP(out, req)
	require.Equal(t, http.StatusBadRequest, out.Code)
}
