package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apptrack.local/internal/domain"
)

func staticToken(tok string) TokenSource {
	return func() string { return tok }
}

func TestBearerHeaderAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/applications", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok-9"))
	_, err := c.ListApplications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-9", gotAuth)
}

func TestNoBearerHeaderWhenUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  domain.User{ID: "u1", Name: "Ada", Email: "a@b.c"},
			"token": "fresh",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	_, _, err := c.Login(context.Background(), "a@b.c", "secret1")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedHookFiresOnAnyOperation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	fired := 0
	c := New(srv.URL, staticToken("stale"))
	c.OnUnauthorized(func() { fired++ })

	ctx := context.Background()

	_, err := c.ListApplications(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, fired)

	err = c.DeleteApplication(ctx, "x")
	require.Error(t, err)
	assert.Equal(t, 2, fired, "hook fires regardless of which call saw the 401")

	// The original failure still reaches the caller.
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Message)
}

func TestBackendMessageSurfacesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Email already registered."}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	_, _, err := c.Signup(context.Background(), "Ada", "a@b.c", "secret1")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already registered.", apiErr.Error())
}

func TestFailureWithoutMessageStillTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	_, err := c.ListApplications(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestUpdateSendsPartialPatchBody(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_ = json.NewEncoder(w).Encode(domain.Application{ID: "a1", Status: domain.StatusInterview})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	status := domain.StatusInterview
	_, err := c.UpdateApplication(context.Background(), "a1", domain.ApplicationPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/applications/a1", gotPath)
	assert.JSONEq(t, `{"status":"Interview"}`, gotBody, "only the provided field goes on the wire")
}

func TestListPreservesBackendOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"z","companyName":"Zeta","role":"SWE","status":"Applied"},
			{"id":"a","companyName":"Alpha","role":"SWE","status":"Offer"}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	apps, err := c.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "z", apps[0].ID)
	assert.Equal(t, "a", apps[1].ID)
}

func TestDeleteSendsNoBodyAndAcceptsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		b, _ := io.ReadAll(r.Body)
		assert.Empty(t, b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	require.NoError(t, c.DeleteApplication(context.Background(), "gone"))
}
