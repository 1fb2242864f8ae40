package kodo

import (
	"context"
	"net/http"
	"time"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/auth/qbox"
	"github.com/service-sdk/go-sdk-qn-manager/api.v7/conf"
	"github.com/service-sdk/go-sdk-qn-manager/x/rpc.v7"
)

const formMime = "application/x-www-form-urlencoded"

// Authenticator 为请求生成认证头。body 仅在 contentType 为表单类型时参与签名
type Authenticator interface {
	Authorization(url string, body []byte, contentType string) (http.Header, error)
}

// Transport 发送 HTTP 请求，*rpc.Client 实现了该接口
type Transport interface {
	Get(ctx context.Context, url string, header http.Header) (*http.Response, error)
	Post(ctx context.Context, url string, body []byte, header http.Header, bodyType string) (*http.Response, error)
}

type Config struct {
	RSHost  string
	RSFHost string
	IoHost  string

	// BatchChunked 每个请求最多包含的操作数，以及同时发出的请求数
	BatchSize        int
	BatchConcurrency int

	// Timeout 仅在通过 New 创建时用于 http.Client
	Timeout time.Duration
}

// BucketManager 空间及文件的管理客户端
type BucketManager struct {
	auth      Authenticator
	transport Transport
	cfg       Config
}

// NewBucketManager 使用给定的认证器和传输层创建管理客户端，transport 为 nil 时使用 http.DefaultClient
func NewBucketManager(auth Authenticator, transport Transport, cfg *Config) *BucketManager {
	m := &BucketManager{auth: auth, transport: transport}
	if cfg != nil {
		m.cfg = *cfg
	}
	if m.transport == nil {
		m.transport = rpc.Client{Client: http.DefaultClient}
	}
	if m.cfg.RSHost == "" {
		m.cfg.RSHost = conf.RS_HOST
	}
	if m.cfg.RSFHost == "" {
		m.cfg.RSFHost = conf.RSF_HOST
	}
	if m.cfg.IoHost == "" {
		m.cfg.IoHost = conf.IO_HOST
	}
	if m.cfg.BatchSize <= 0 {
		m.cfg.BatchSize = 100
	}
	if m.cfg.BatchConcurrency <= 0 {
		m.cfg.BatchConcurrency = 20
	}
	return m
}

// New 使用 accessKey/secretKey 创建管理客户端
func New(mac *qbox.Mac, cfg *Config) *BucketManager {
	var timeout time.Duration
	if cfg != nil {
		timeout = cfg.Timeout
	}
	return NewBucketManager(mac, rpc.Client{Client: &http.Client{Timeout: timeout}}, cfg)
}

// Config 返回补全默认值之后的配置
func (m *BucketManager) Config() Config {
	return m.cfg
}

// Buckets 列举所有空间名
func (m *BucketManager) Buckets(ctx context.Context) (buckets []string, err error) {
	err = m.get(ctx, m.cfg.RSHost+"/buckets", &buckets)
	return
}

// Stat 取文件属性
// @param ctx    是请求的上下文
// @param bucket 是文件所在的空间
// @param key    是要访问的文件的访问路径
func (m *BucketManager) Stat(ctx context.Context, bucket, key string) (info FileInfo, err error) {
	if err = checkBucket(bucket); err != nil {
		return
	}
	err = m.get(ctx, m.cfg.RSHost+"/"+opStat(bucket, key), &info)
	return
}

// Delete 删除一个文件
func (m *BucketManager) Delete(ctx context.Context, bucket, key string) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}
	return m.rsPost(ctx, opDelete(bucket, key))
}

// Copy 复制一个文件，可以跨空间
func (m *BucketManager) Copy(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	if err := checkBuckets(srcBucket, destBucket); err != nil {
		return err
	}
	return m.rsPost(ctx, opCopy(srcBucket, srcKey, destBucket, destKey))
}

// Move 移动一个文件，可以跨空间
func (m *BucketManager) Move(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	if err := checkBuckets(srcBucket, destBucket); err != nil {
		return err
	}
	return m.rsPost(ctx, opMove(srcBucket, srcKey, destBucket, destKey))
}

// Rename 在同一空间内重命名文件，等价于 Move(bucket, oldKey, bucket, newKey)
func (m *BucketManager) Rename(ctx context.Context, bucket, oldKey, newKey string) error {
	return m.Move(ctx, bucket, oldKey, bucket, newKey)
}

// ChangeMime 修改文件的MIME类型
func (m *BucketManager) ChangeMime(ctx context.Context, bucket, key, mime string) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}
	return m.rsPost(ctx, opChangeMime(bucket, key, mime))
}

// ChangeType 修改文件的存储类型
func (m *BucketManager) ChangeType(ctx context.Context, bucket, key string, fileType FileType) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}
	return m.rsPost(ctx, opChangeType(bucket, key, fileType))
}

// Fetch 从网上抓取一个资源并存储到空间中，key 已存在时覆盖。
// 返回成功仅表示服务端已接受请求。
func (m *BucketManager) Fetch(ctx context.Context, url, bucket, key string) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}
	return m.post(ctx, m.cfg.IoHost+uriFetch(url, EncodedEntry(bucket, key)), nil, nil)
}

// FetchWithoutKey 与 Fetch 相同，但由服务端决定文件的 key
func (m *BucketManager) FetchWithoutKey(ctx context.Context, url, bucket string) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}
	return m.post(ctx, m.cfg.IoHost+uriFetch(url, EncodedEntryWithoutKey(bucket)), nil, nil)
}

// Prefetch 要求镜像存储的空间从源站重新抓取文件
func (m *BucketManager) Prefetch(ctx context.Context, bucket, key string) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}
	return m.post(ctx, m.cfg.IoHost+uriPrefetch(bucket, key), nil, nil)
}

// Bucket 返回绑定了空间名的操作对象
func (m *BucketManager) Bucket(name string) *Bucket {
	return &Bucket{Manager: m, Name: name}
}

// ----------------------------------------------------------

func checkBuckets(buckets ...string) error {
	for _, bucket := range buckets {
		if err := checkBucket(bucket); err != nil {
			return err
		}
	}
	return nil
}

func (m *BucketManager) rsPost(ctx context.Context, op string) error {
	return m.post(ctx, m.cfg.RSHost+"/"+op, nil, nil)
}

func (m *BucketManager) get(ctx context.Context, url string, ret interface{}) error {
	header, err := m.auth.Authorization(url, nil, "")
	if err != nil {
		return err
	}
	elog.Debug("GET", url)
	resp, err := m.transport.Get(ctx, url, header)
	if err != nil {
		elog.Warn("GET", url, "failed:", err)
		return err
	}
	if err = rpc.CallRet(ctx, ret, resp); err != nil {
		elog.Warn("GET", url, "failed:", err)
	}
	return err
}

func (m *BucketManager) post(ctx context.Context, url string, body []byte, ret interface{}) error {
	header, err := m.auth.Authorization(url, body, formMime)
	if err != nil {
		return err
	}
	elog.Debug("POST", url, len(body))
	resp, err := m.transport.Post(ctx, url, body, header, formMime)
	if err != nil {
		elog.Warn("POST", url, "failed:", err)
		return err
	}
	if err = rpc.CallRet(ctx, ret, resp); err != nil {
		elog.Warn("POST", url, "failed:", err)
	}
	return err
}
