package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doDelete(t *testing.T, a *API, url string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, url, nil))

	return w
}

func TestDeleteRemovesObject(t *testing.T) {
	a := newTestAPI(t)

	w := doUpload(t, a, "gone.txt", "text/plain", []byte("bye"), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	decodeBody(t, w, &resp)
	id := resp["fileId"].(string)

	w = doDelete(t, a, "/api/files/"+id)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Contains(t, body["message"], "deleted")

	// Gone from listings, payload unreachable, repeat delete errors
	assert.Empty(t, listEntries(t, a, "/api/tugas"))

	w = doGet(t, a, "/api/files/download/"+id)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doDelete(t, a, "/api/files/"+id)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUnknownID(t *testing.T) {
	a := newTestAPI(t)

	w := doDelete(t, a, "/api/files/doesnotexist")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLegacyDeleteRoute(t *testing.T) {
	a := newTestAPI(t)

	w := doUpload(t, a, "old.txt", "text/plain", []byte("legacy"), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	decodeBody(t, w, &resp)

	w = doDelete(t, a, "/api/tugas/"+resp["fileId"].(string))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listEntries(t, a, "/api/tugas"))
}
