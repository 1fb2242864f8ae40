package qbox

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/url"
)

const formMime = "application/x-www-form-urlencoded"

var ErrEmptyAccessKey = errors.New("empty access key")

type Mac struct {
	accessKey string
	secretKey []byte
}

func NewMac(accessKey, secretKey string) (mac *Mac) {
	return &Mac{accessKey, []byte(secretKey)}
}

// GetAccessKey 获取 accessKey
func (mac *Mac) GetAccessKey() string {
	return mac.accessKey
}

// GetSecretKey 获取 secretKey
func (mac *Mac) GetSecretKey() string {
	return string(mac.secretKey)
}

func (mac *Mac) Sign(data []byte) (token string) {

	h := hmac.New(sha1.New, mac.secretKey)
	h.Write(data)

	sign := base64.URLEncoding.EncodeToString(h.Sum(nil))
	return mac.accessKey + ":" + sign
}

// SignRequest 对 path?query 以及表单类型的请求体签名
func (mac *Mac) SignRequest(req *http.Request) (token string, err error) {

	var body []byte
	if incBody(req.Header.Get("Content-Type"), req.Body != nil) {
		if body, err = io.ReadAll(req.Body); err != nil {
			return
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	return mac.Sign(signingData(req.URL, body)), nil
}

// Authorization 生成访问 url 所需的认证头，body 仅在 contentType 为表单类型时参与签名
func (mac *Mac) Authorization(url1 string, body []byte, contentType string) (http.Header, error) {

	if mac.accessKey == "" {
		return nil, ErrEmptyAccessKey
	}
	u, err := url.Parse(url1)
	if err != nil {
		return nil, err
	}
	if !incBody(contentType, body != nil) {
		body = nil
	}
	header := make(http.Header)
	header.Set("Authorization", "QBox "+mac.Sign(signingData(u, body)))
	return header, nil
}

func signingData(u *url.URL, body []byte) []byte {

	data := u.EscapedPath()
	if u.RawQuery != "" {
		data += "?" + u.RawQuery
	}
	return append([]byte(data+"\n"), body...)
}

func incBody(contentType string, hasBody bool) bool {

	return hasBody && contentType == formMime
}
