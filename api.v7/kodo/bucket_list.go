package kodo

import (
	"context"
	"net/url"
	"strconv"
)

// DefaultListLimit 是未指定每页数量时的默认值
const DefaultListLimit = 1000

// ListFiles 列举一页文件。首次请求时 marker 传 ""，返回的 Marker 为空表示没有更多数据。
// prefix、marker、delimiter 为空时不出现在请求参数中，limit <= 0 时由服务端决定每页数量
func (m *BucketManager) ListFiles(
	ctx context.Context, bucket, prefix, marker string, limit int, delimiter string) (ret ListResult, err error) {

	if err = checkBucket(bucket); err != nil {
		return
	}
	err = m.get(ctx, m.makeListURL(bucket, prefix, marker, limit, delimiter), &ret)
	return
}

func (m *BucketManager) makeListURL(bucket, prefix, marker string, limit int, delimiter string) string {

	query := make(url.Values)
	query.Add("bucket", bucket)
	if prefix != "" {
		query.Add("prefix", prefix)
	}
	if marker != "" {
		query.Add("marker", marker)
	}
	if delimiter != "" {
		query.Add("delimiter", delimiter)
	}
	if limit > 0 {
		query.Add("limit", strconv.Itoa(limit))
	}
	return m.cfg.RSFHost + "/list?" + query.Encode()
}

// NewFileListIterator 以默认每页数量、不带分隔符创建列举迭代器
func (m *BucketManager) NewFileListIterator(bucket, prefix string) (*FileListIterator, error) {
	return NewFileListIterator(m, bucket, prefix, DefaultListLimit, "")
}

// NewFileListIteratorWithLimit 创建列举迭代器，limit 必须大于 0
func (m *BucketManager) NewFileListIteratorWithLimit(bucket, prefix string, limit int, delimiter string) (*FileListIterator, error) {
	return NewFileListIterator(m, bucket, prefix, limit, delimiter)
}

// ListPrefix 列举前缀下的所有文件名
func (m *BucketManager) ListPrefix(ctx context.Context, bucket, prefix string) ([]string, error) {
	it, err := m.NewFileListIterator(bucket, prefix)
	if err != nil {
		return nil, err
	}
	var keys []string
	for it.HasNext() {
		page := it.Next(ctx)
		for _, item := range page.Items {
			keys = append(keys, item.Key)
		}
		elog.Debug("list len", it.Marker(), len(page.Items))
	}
	if err = it.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// ----------------------------------------------------------

// FileLister 提供单页列举能力，*BucketManager 实现了该接口
type FileLister interface {
	ListFiles(ctx context.Context, bucket, prefix, marker string, limit int, delimiter string) (ListResult, error)
}

type iteratorState int

const (
	iteratorReady iteratorState = iota
	iteratorExhausted
	iteratorFailed
)

type PageState int

const (
	// PageItems 成功取得一页数据，这一页可能是最后一页
	PageItems PageState = iota
	// PageEnd 列举已经结束，没有发出请求
	PageEnd
	// PageFailed 请求失败，Err 为失败原因
	PageFailed
)

// Page 是 FileListIterator.Next 的结果
type Page struct {
	State          PageState
	Items          []ListItem
	CommonPrefixes []string
	Err            error
}

// FileListIterator 按页列举文件，只能向前遍历一次。
//
//	for it.HasNext() {
//		page := it.Next(ctx)
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
//
// 请求失败后迭代器停止，已经返回的页仍然有效，失败原因通过 Err 获取。
// FileListIterator 不是并发安全的。
type FileListIterator struct {
	lister    FileLister
	bucket    string
	prefix    string
	delimiter string
	limit     int

	marker string
	state  iteratorState
	err    error
}

// NewFileListIterator 创建列举迭代器，limit <= 0 或 bucket 为空时返回 ErrInvalidArgument
func NewFileListIterator(lister FileLister, bucket, prefix string, limit int, delimiter string) (*FileListIterator, error) {
	if limit <= 0 {
		return nil, invalidArgument("limit must be greater than 0, got %d", limit)
	}
	if err := checkBucket(bucket); err != nil {
		return nil, err
	}
	return &FileListIterator{
		lister:    lister,
		bucket:    bucket,
		prefix:    prefix,
		delimiter: delimiter,
		limit:     limit,
	}, nil
}

// HasNext 在既没有列举完也没有失败时返回 true
func (it *FileListIterator) HasNext() bool {
	return it.state == iteratorReady
}

// Next 请求下一页。列举结束后返回 PageEnd，失败后返回 PageFailed，两者都不会再发出请求
func (it *FileListIterator) Next(ctx context.Context) Page {
	switch it.state {
	case iteratorExhausted:
		return Page{State: PageEnd}
	case iteratorFailed:
		return Page{State: PageFailed, Err: it.err}
	}

	ret, err := it.lister.ListFiles(ctx, it.bucket, it.prefix, it.marker, it.limit, it.delimiter)
	if err != nil {
		it.state = iteratorFailed
		it.err = err
		return Page{State: PageFailed, Err: err}
	}
	it.marker = ret.Marker
	if it.marker == "" {
		it.state = iteratorExhausted
	}
	return Page{State: PageItems, Items: ret.Items, CommonPrefixes: ret.CommonPrefixes}
}

// Err 返回导致迭代停止的错误，正常结束时为 nil
func (it *FileListIterator) Err() error {
	return it.err
}

// Marker 返回下一次请求将使用的 marker
func (it *FileListIterator) Marker() string {
	return it.marker
}
