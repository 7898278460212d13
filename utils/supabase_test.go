package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteFileFromSupabase(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Setenv("SUPABASE_URL", srv.URL)
	t.Setenv("SUPABASE_KEY", "test-key")

	publicURL := srv.URL + "/storage/v1/object/public/uploads/audio/lec-123.webm"
	require.NoError(t, DeleteFileFromSupabase(publicURL))

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/storage/v1/object/uploads/audio/lec-123.webm", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-key", gotAPIKey)
}

func TestDeleteFileFromSupabase_StripsQueryString(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	t.Setenv("SUPABASE_URL", srv.URL)
	t.Setenv("SUPABASE_KEY", "test-key")

	publicURL := srv.URL + "/storage/v1/object/public/uploads/audio/lec.webm?download=true"
	require.NoError(t, DeleteFileFromSupabase(publicURL))
	assert.Equal(t, "/storage/v1/object/uploads/audio/lec.webm", gotPath)
}

func TestDeleteFileFromSupabase_EmptyURLIsNoop(t *testing.T) {
	assert.NoError(t, DeleteFileFromSupabase(""))
}

func TestDeleteFileFromSupabase_RejectsForeignURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://supabase.example.com")
	t.Setenv("SUPABASE_KEY", "test-key")

	err := DeleteFileFromSupabase("https://cdn.example.com/files/lec.webm")
	assert.Error(t, err)
}

func TestDeleteFileFromSupabase_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	t.Setenv("SUPABASE_URL", srv.URL)
	t.Setenv("SUPABASE_KEY", "test-key")

	err := DeleteFileFromSupabase(srv.URL + "/storage/v1/object/public/uploads/audio/lec.webm")
	assert.Error(t, err)
}
