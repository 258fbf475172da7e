package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient_GetJSON(t *testing.T) {
	t.Run("decodes body and forwards params", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "0", r.URL.Query().Get("limit"))
			fmt.Fprint(w, `{"name":"fgi"}`)
		}))
		defer srv.Close()

		out := struct {
			Name string `json:"name"`
		}{}
		err := NewClient().GetJSON(context.Background(), srv.URL, url.Values{"limit": {"0"}}, &out)
		require.NoError(t, err)
		require.Equal(t, "fgi", out.Name)
	})

	t.Run("non 2xx is a status error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, "slow down")
		}))
		defer srv.Close()

		_, err := NewClient().Get(context.Background(), srv.URL, nil)
		require.Error(t, err)
		statusErr := &StatusError{}
		require.True(t, errors.As(err, &statusErr))
		require.Equal(t, http.StatusTooManyRequests, statusErr.Code)
		require.Equal(t, "slow down", statusErr.Body)
		require.True(t, IsTransient(err))
	})

	t.Run("client timeout is transient", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := NewClient(WithTimeout(20*time.Millisecond)).Get(context.Background(), srv.URL, nil)
		require.Error(t, err)
		require.True(t, IsTransient(err))
	})
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"500", &StatusError{Code: 500}, true},
		{"503 wrapped", fmt.Errorf("fetch: %w", &StatusError{Code: 503}), true},
		{"404", &StatusError{Code: 404}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"plain", errors.New("bad json"), false},
		{"marked", MarkTransient(errors.New("yahoo hiccup")), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, IsTransient(c.err))
		})
	}
}
