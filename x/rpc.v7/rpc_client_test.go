package rpc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------------------------

func TestNewRequest(t *testing.T) {
	req, err := NewRequest("GET", "-H\t abc.com \thttp://127.0.0.1/foo/bar", nil)
	require.NoError(t, err)

	assert.Equal(t, "abc.com", req.Host)
	assert.Equal(t, "/foo/bar", req.URL.Path)
	assert.Equal(t, "127.0.0.1", req.URL.Host)

	_, err = NewRequest("GET", "-H abc.com", nil)
	assert.Equal(t, ErrInvalidRequestURL, err)
}

// --------------------------------------------------------------------

func TestClient_GetPost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "QBox ak:sign", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Reqid"))
		if r.Method == "POST" {
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "op=a", string(body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"ok"}`))
	}))
	defer ts.Close()

	ctx := WithReqId(context.Background(), "req-1")
	header := http.Header{"Authorization": []string{"QBox ak:sign"}}
	client := Client{Client: ts.Client()}

	var ret struct {
		Name string `json:"name"`
	}
	resp, err := client.Get(ctx, ts.URL+"/get", header)
	require.NoError(t, err)
	require.NoError(t, CallRet(ctx, &ret, resp))
	assert.Equal(t, "ok", ret.Name)

	resp, err = client.Post(ctx, ts.URL+"/post", []byte("op=a"), header, "application/x-www-form-urlencoded")
	require.NoError(t, err)
	require.NoError(t, CallRet(ctx, nil, resp))
}

func TestClient_GeneratesReqId(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Len(t, r.Header.Get("X-Reqid"), 36)
	}))
	defer ts.Close()

	resp, err := Client{}.Get(context.Background(), ts.URL, nil)
	require.NoError(t, err)
	assert.NoError(t, CallRet(context.Background(), nil, resp))
}

func TestClient_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := Client{}.Post(context.Background(), url+"/delete/xx", nil, nil, "")
	require.Error(t, err)

	var e *ErrorInfo
	require.True(t, errors.As(err, &e))
	assert.Equal(t, NetworkError, e.Code)
	assert.NotNil(t, errors.Unwrap(err))
	assert.Equal(t, NetworkError, DetectCode(err))
}

func TestCallRet_InvalidBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":`))
	}))
	defer ts.Close()

	resp, err := Client{}.Get(context.Background(), ts.URL, nil)
	require.NoError(t, err)

	var ret map[string]interface{}
	err = CallRet(context.Background(), &ret, resp)
	require.Error(t, err)
	assert.Equal(t, 200, DetectCode(err))
}

func TestResponseError(t *testing.T) {

	fmtStr := "{\"error\":\"test error info\"}"
	mux := http.NewServeMux()
	mux.HandleFunc("/ct1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(599)
		w.Write([]byte(fmtStr))
	})
	mux.HandleFunc("/ct2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(599)
		w.Write([]byte(fmtStr))
	})
	mux.HandleFunc("/ct3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", " application/json ; charset=utf-8")
		w.WriteHeader(599)
		w.Write([]byte(fmtStr))
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(612)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, _ := http.Get(ts.URL + "/ct1")
	assert.Equal(t, "test error info", ResponseError(resp).Error())
	resp, _ = http.Get(ts.URL + "/ct2")
	assert.Equal(t, "test error info", ResponseError(resp).Error())
	resp, _ = http.Get(ts.URL + "/ct3")
	assert.Equal(t, "test error info", ResponseError(resp).Error())

	resp, _ = http.Get(ts.URL + "/plain")
	err := CallRet(context.Background(), nil, resp)
	assert.Equal(t, 612, DetectCode(err))
	assert.Equal(t, "612 ", err.Error())
}

// --------------------------------------------------------------------

func TestClient_UserAgent(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Header.Get("User-Agent"))
		mu.Unlock()
	}))
	defer ts.Close()

	old := UserAgent
	UserAgent = "global-ua"
	defer func() { UserAgent = old }()

	for _, client := range []Client{{}, {UserAgent: "client-ua"}} {
		resp, err := client.Get(context.Background(), ts.URL, nil)
		require.NoError(t, err)
		require.NoError(t, CallRet(context.Background(), nil, resp))
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"global-ua", "client-ua"}, got)
}
