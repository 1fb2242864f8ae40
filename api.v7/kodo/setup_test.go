package kodo

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/auth/qbox"
	"github.com/service-sdk/go-sdk-qn-manager/x/rpc.v7"
)

const (
	testRSHost  = "http://rs.test"
	testRSFHost = "http://rsf.test"
	testIoHost  = "http://io.test"
)

type recordedRequest struct {
	Method   string
	URL      string
	Body     []byte
	BodyType string
	Header   http.Header
}

type fakeResponse struct {
	code int
	body string
	err  error
}

// fakeTransport 按顺序返回预设的响应，预设用完后返回 200 和空 JSON 对象
type fakeTransport struct {
	requests  []recordedRequest
	responses []fakeResponse
}

func (f *fakeTransport) Get(_ context.Context, url string, header http.Header) (*http.Response, error) {
	f.requests = append(f.requests, recordedRequest{Method: "GET", URL: url, Header: header})
	return f.respond()
}

func (f *fakeTransport) Post(
	_ context.Context, url string, body []byte, header http.Header, bodyType string) (*http.Response, error) {

	f.requests = append(f.requests, recordedRequest{Method: "POST", URL: url, Body: body, BodyType: bodyType, Header: header})
	return f.respond()
}

func (f *fakeTransport) respond() (*http.Response, error) {
	r := fakeResponse{code: 200, body: "{}"}
	if len(f.responses) > 0 {
		r, f.responses = f.responses[0], f.responses[1:]
	}
	if r.err != nil {
		return nil, r.err
	}
	return &http.Response{
		StatusCode:    r.code,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(strings.NewReader(r.body)),
		ContentLength: int64(len(r.body)),
	}, nil
}

func (f *fakeTransport) paths() []string {
	paths := make([]string, len(f.requests))
	for i, req := range f.requests {
		paths[i] = req.Method + " " + req.URL
	}
	return paths
}

func newTestManager(t *testing.T, responses ...fakeResponse) (*BucketManager, *fakeTransport) {
	t.Helper()
	transport := &fakeTransport{responses: responses}
	m := NewBucketManager(qbox.NewMac("ak", "sk"), transport, &Config{
		RSHost:  testRSHost,
		RSFHost: testRSFHost,
		IoHost:  testIoHost,
	})
	return m, transport
}

func networkFailure() fakeResponse {
	return fakeResponse{err: &rpc.ErrorInfo{Err: "connection refused", Code: rpc.NetworkError}}
}
