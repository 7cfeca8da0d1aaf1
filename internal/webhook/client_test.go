package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testClient(token string) *Client {
	var fn func() string
	if token != "" {
		fn = func() string { return token }
	}
	return NewClient(5*time.Second, NewHostLimiter(100, 100), fn)
}

func TestPost_SendsJSONWithBearer(t *testing.T) {
	var gotBody map[string]any
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := testClient("s3cret").Post(context.Background(), srv.URL, map[string]string{"title": "Eng"})

	assert.NoError(t, err)
	assert.Equal(t, "Bearer s3cret", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "Eng", gotBody["title"])
}

func TestPost_NoTokenMeansNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	assert.NoError(t, testClient("").Post(context.Background(), srv.URL, struct{}{}))
	assert.Empty(t, gotAuth)
}

func TestPost_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := testClient("").Post(context.Background(), srv.URL, struct{}{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestPost_EmptyURL(t *testing.T) {
	err := testClient("").Post(context.Background(), "", struct{}{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func trackingReq() *TrackingRequest {
	return &TrackingRequest{
		EmailRecipients:      []string{"a@b.co"},
		ProfileURLs:          []string{"https://www.linkedin.com/in/jane"},
		SignalConfigurations: []string{"job_change"},
	}
}

func TestStartTracking_ObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TrackingResult{RunID: "r1", ProfilesProcessed: 3})
	}))
	defer srv.Close()

	res, err := testClient("").StartTracking(context.Background(), srv.URL, trackingReq())

	assert.NoError(t, err)
	assert.Equal(t, "r1", res.RunID)
	assert.Equal(t, 3, res.ProfilesProcessed)
}

func TestStartTracking_ArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]TrackingResult{{RunID: "r2", ChangesDetected: 1}, {RunID: "ignored"}})
	}))
	defer srv.Close()

	res, err := testClient("").StartTracking(context.Background(), srv.URL, trackingReq())

	assert.NoError(t, err)
	assert.Equal(t, "r2", res.RunID)
	assert.Equal(t, 1, res.ChangesDetected)
}

func TestStartTracking_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := testClient("").StartTracking(context.Background(), srv.URL, trackingReq())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestStartTracking_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient("").StartTracking(context.Background(), srv.URL, trackingReq())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHostLimiter_SharedPerHost(t *testing.T) {
	l := NewHostLimiter(100, 1)

	a := l.limiterFor("example.com")
	b := l.limiterFor("example.com")
	c := l.limiterFor("other.com")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
