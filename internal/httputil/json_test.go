// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoReq struct {
	Name string `json:"name"`
}

type echoResp struct {
	Greeting string `json:"greeting"`
}

func TestPostJSON_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		var in echoReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(echoResp{Greeting: "hello " + in.Name})
	}))
	defer ts.Close()

	header := http.Header{}
	header.Set("X-Api-Key", "secret")

	var out echoResp
	err := PostJSON(context.Background(), ts.Client(), ts.URL, header, echoReq{Name: "jane"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hello jane", out.Greeting)
}

func TestPostJSON_StatusErrorNoRetry(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		unauthorized bool
		rateLimited  bool
	}{
		{"unauthorized", http.StatusUnauthorized, true, false},
		{"forbidden", http.StatusForbidden, true, false},
		{"rate limited", http.StatusTooManyRequests, false, true},
		{"server error", http.StatusInternalServerError, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":"nope"}`))
			}))
			defer ts.Close()

			var out echoResp
			err := PostJSON(context.Background(), ts.Client(), ts.URL, nil, echoReq{}, &out)
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.unauthorized, se.Unauthorized())
			assert.Equal(t, tt.rateLimited, se.RateLimited())
			assert.Contains(t, se.Body, "nope")
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "sent exactly once")
		})
	}
}

func TestPostJSON_BadBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	var out echoResp
	err := PostJSON(context.Background(), ts.Client(), ts.URL, nil, echoReq{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestPostJSON_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out echoResp
	err := PostJSON(ctx, ts.Client(), ts.URL, nil, echoReq{}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
