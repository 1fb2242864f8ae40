package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequestURL = errors.New("invalid request url")
	UserAgent            = ""
)

// NetworkError 是请求未能得到服务端响应时 ErrorInfo.Code 的取值
const NetworkError = -1

// --------------------------------------------------------------------

type Client struct {
	*http.Client

	// UserAgent 非空时代替包级的 UserAgent
	UserAgent string
}

// --------------------------------------------------------------------

type reqIdKey struct{}

// WithReqId 为请求指定 X-Reqid，未指定时每个请求生成一个新的 id
func WithReqId(ctx context.Context, reqId string) context.Context {
	return context.WithValue(ctx, reqIdKey{}, reqId)
}

func ReqIdFromContext(ctx context.Context) (string, bool) {
	reqId, ok := ctx.Value(reqIdKey{}).(string)
	return reqId, ok && reqId != ""
}

// --------------------------------------------------------------------

func NewRequest(method, url1 string, body io.Reader) (req *http.Request, err error) {

	var host string

	// url1 = "-H <Host> http://<ip>[:<port>]/<path>"
	//
	if strings.HasPrefix(url1, "-H") {
		url2 := strings.TrimLeft(url1[2:], " \t")
		pos := strings.Index(url2, " ")
		if pos <= 0 {
			return nil, ErrInvalidRequestURL
		}
		host = url2[:pos]
		url1 = strings.TrimLeft(url2[pos+1:], " \t")
	}

	req, err = http.NewRequest(method, url1, body)
	if err != nil {
		return
	}
	if host != "" {
		req.Host = host
	}
	return
}

// Get 发送 GET 请求，header 通常是签名后得到的认证头
func (r Client) Get(ctx context.Context, url1 string, header http.Header) (resp *http.Response, err error) {

	req, err := NewRequest("GET", url1, nil)
	if err != nil {
		return
	}
	copyHeader(req.Header, header)
	return r.Do(ctx, req)
}

// Post 发送 POST 请求，body 可以为 nil
func (r Client) Post(
	ctx context.Context, url1 string, body []byte, header http.Header, bodyType string) (resp *http.Response, err error) {

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := NewRequest("POST", url1, reader)
	if err != nil {
		return
	}
	copyHeader(req.Header, header)
	if bodyType != "" {
		req.Header.Set("Content-Type", bodyType)
	}
	req.ContentLength = int64(len(body))
	return r.Do(ctx, req)
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

// Do 发送请求。网络层面的错误会被包装为 Code 为 NetworkError 的 *ErrorInfo
func (r Client) Do(ctx context.Context, req *http.Request) (resp *http.Response, err error) {

	if ctx == nil {
		ctx = context.Background()
	}

	reqId, ok := ReqIdFromContext(ctx)
	if !ok {
		reqId = uuid.NewString()
	}
	req.Header.Set("X-Reqid", reqId)

	if _, ok := req.Header["User-Agent"]; !ok {
		ua := r.UserAgent
		if ua == "" {
			ua = UserAgent
		}
		req.Header.Set("User-Agent", ua)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err = client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &ErrorInfo{Err: err.Error(), Reqid: reqId, Code: NetworkError, cause: err}
	}
	return
}

// --------------------------------------------------------------------

type ErrorInfo struct {
	Err   string `json:"error,omitempty"`
	Key   string `json:"key,omitempty"`
	Reqid string `json:"reqid,omitempty"`
	Errno int    `json:"errno,omitempty"`
	Code  int    `json:"code"`

	cause error
}

func (r *ErrorInfo) ErrorDetail() string {

	msg, _ := json.Marshal(r)
	return string(msg)
}

func (r *ErrorInfo) Error() string {

	if r.Err == "" && r.Code > 0 {
		return fmt.Sprintf("%d %s", r.Code, http.StatusText(r.Code))
	}
	return r.Err
}

func (r *ErrorInfo) Unwrap() error {

	return r.cause
}

func (r *ErrorInfo) RpcError() (code, errno int, key, err string) {

	return r.Code, r.Errno, r.Key, r.Err
}

func (r *ErrorInfo) HttpCode() int {

	return r.Code
}

// DetectCode 取出错误对应的 HTTP 状态码，非 *ErrorInfo 的错误返回 NetworkError，nil 返回 200
func DetectCode(err error) int {

	if err == nil {
		return 200
	}
	var e *ErrorInfo
	if errors.As(err, &e) {
		return e.Code
	}
	return NetworkError
}

// --------------------------------------------------------------------

func parseError(e *ErrorInfo, r io.Reader) {

	body, err1 := io.ReadAll(r)
	if err1 != nil {
		e.Err = err1.Error()
		return
	}

	var ret struct {
		Err   string `json:"error"`
		Key   string `json:"key"`
		Errno int    `json:"errno"`
	}
	if json.Unmarshal(body, &ret) == nil && ret.Err != "" {
		// qiniu error msg style returns here
		e.Err, e.Key, e.Errno = ret.Err, ret.Key, ret.Errno
		return
	}
	e.Err = string(body)
}

func ResponseError(resp *http.Response) (err error) {

	e := &ErrorInfo{
		Reqid: resp.Header.Get("X-Reqid"),
		Code:  resp.StatusCode,
	}
	if resp.StatusCode > 299 {
		if resp.ContentLength != 0 {
			if ct := resp.Header.Get("Content-Type"); strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]) == "application/json" {
				parseError(e, resp.Body)
			}
		}
	}
	return e
}

// CallRet 处理响应：2xx 时将 JSON 响应体解码到 ret（ret 为 nil 时忽略响应体），否则返回 *ErrorInfo
func CallRet(_ context.Context, ret interface{}, resp *http.Response) (err error) {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		if ret != nil && resp.ContentLength != 0 {
			err = json.NewDecoder(resp.Body).Decode(ret)
			if err != nil && !(err == io.EOF && resp.ContentLength < 0) {
				return &ErrorInfo{
					Err:   "invalid response body: " + err.Error(),
					Reqid: resp.Header.Get("X-Reqid"),
					Code:  resp.StatusCode,
					cause: err,
				}
			}
		}
		return nil
	}
	return ResponseError(resp)
}

// --------------------------------------------------------------------
