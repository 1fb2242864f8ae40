package kodo

import "context"

// Bucket 绑定了空间名的 BucketManager
type Bucket struct {
	Manager *BucketManager
	Name    string
}

// Stat 取文件属性
// @param ctx 是请求的上下文
// @param key 是要访问的文件的访问路径
func (p Bucket) Stat(ctx context.Context, key string) (FileInfo, error) {
	return p.Manager.Stat(ctx, p.Name, key)
}

// Delete 删除一个文件
// @param ctx 是请求的上下文
// @param key 是要删除的文件的访问路径
func (p Bucket) Delete(ctx context.Context, key string) error {
	return p.Manager.Delete(ctx, p.Name, key)
}

// Move 移动一个文件。
// @param ctx     是请求的上下文。
// @param keySrc  是要移动的文件的旧路径。
// @param keyDest 是要移动的文件的新路径。
func (p Bucket) Move(ctx context.Context, keySrc, keyDest string) error {
	return p.Manager.Move(ctx, p.Name, keySrc, p.Name, keyDest)
}

// Rename 同 Move
func (p Bucket) Rename(ctx context.Context, keySrc, keyDest string) error {
	return p.Manager.Rename(ctx, p.Name, keySrc, keyDest)
}

// MoveTo 跨空间（bucket）移动一个文件。
// @param ctx        是请求的上下文。
// @param keySrc     是要移动的文件的旧路径。
// @param bucketDest 是文件的目标空间。
// @param keyDest    是要移动的文件的新路径。
func (p Bucket) MoveTo(ctx context.Context, keySrc, bucketDest, keyDest string) error {
	return p.Manager.Move(ctx, p.Name, keySrc, bucketDest, keyDest)
}

// Copy 复制一个文件。
// @param ctx     是请求的上下文。
// @param keySrc  是要复制的文件的源路径。
// @param keyDest 是要复制的文件的目标路径。
func (p Bucket) Copy(ctx context.Context, keySrc, keyDest string) error {
	return p.Manager.Copy(ctx, p.Name, keySrc, p.Name, keyDest)
}

// ChangeMime 修改文件的MIME类型。
func (p Bucket) ChangeMime(ctx context.Context, key, mime string) error {
	return p.Manager.ChangeMime(ctx, p.Name, key, mime)
}

// Fetch 从网上抓取一个资源并存储到空间中
// @param key 是要存储的文件的访问路径。如果文件已经存在则覆盖
// @param url 是要抓取的资源的URL
func (p Bucket) Fetch(ctx context.Context, key, url string) error {
	return p.Manager.Fetch(ctx, url, p.Name, key)
}

func (p Bucket) Prefetch(ctx context.Context, key string) error {
	return p.Manager.Prefetch(ctx, p.Name, key)
}

// List 列举一页文件，参见 BucketManager.ListFiles
func (p Bucket) List(ctx context.Context, prefix, delimiter, marker string, limit int) (ListResult, error) {
	return p.Manager.ListFiles(ctx, p.Name, prefix, marker, limit, delimiter)
}

func (p Bucket) BatchStat(ctx context.Context, keys ...string) ([]BatchOpRet, error) {
	return p.Manager.BatchChunked(ctx, NewBatch().Stat(p.Name, keys...))
}

func (p Bucket) BatchDelete(ctx context.Context, keys ...string) ([]BatchOpRet, error) {
	return p.Manager.BatchChunked(ctx, NewBatch().Delete(p.Name, keys...))
}

type KeyPair struct {
	SrcKey  string
	DestKey string
}

func (p Bucket) BatchMove(ctx context.Context, entries ...KeyPair) ([]BatchOpRet, error) {
	b := NewBatch()
	for _, e := range entries {
		b.Move(p.Name, e.SrcKey, p.Name, e.DestKey)
	}
	return p.Manager.BatchChunked(ctx, b)
}

func (p Bucket) BatchCopy(ctx context.Context, entries ...KeyPair) ([]BatchOpRet, error) {
	b := NewBatch()
	for _, e := range entries {
		b.Copy(p.Name, e.SrcKey, p.Name, e.DestKey)
	}
	return p.Manager.BatchChunked(ctx, b)
}
