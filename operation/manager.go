package operation

import (
	"errors"
	"net/http"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/auth/qbox"
	"github.com/service-sdk/go-sdk-qn-manager/api.v7/conf"
	"github.com/service-sdk/go-sdk-qn-manager/api.v7/kodo"
	"github.com/service-sdk/go-sdk-qn-manager/x/rpc.v7"
)

var ErrMissingCredentials = errors.New("ak and sk are required")

// NewBucketManager 根据配置创建管理客户端
func NewBucketManager(c *Config) (*kodo.BucketManager, error) {
	if c.Ak == "" || c.Sk == "" {
		return nil, ErrMissingCredentials
	}
	client := rpc.Client{Client: &http.Client{
		Transport: newHttpClientTransport(c),
		Timeout:   buildDurationByMs(c.TimeoutMs, 0),
	}}
	if c.AppName != "" {
		ua, err := conf.UserAgent(c.AppName)
		if err != nil {
			return nil, err
		}
		client.UserAgent = ua
	}
	return kodo.NewBucketManager(qbox.NewMac(c.Ak, c.Sk), client, &kodo.Config{
		RSHost:           pickHost(c.RsHosts),
		RSFHost:          pickHost(c.RsfHosts),
		IoHost:           pickHost(c.IoHosts),
		BatchSize:        c.BatchSize,
		BatchConcurrency: c.BatchConcurrency,
	}), nil
}
