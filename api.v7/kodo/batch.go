package kodo

import (
	"context"
	"strings"

	"github.com/service-sdk/go-sdk-qn-manager/x/goroutine_pool.v7"
)

// Batch 批量操作的构造器，操作按添加顺序执行并按相同顺序返回结果。
// 构造过程中的参数错误会被记录下来，由 Err 返回，出错的操作不会被添加。
type Batch struct {
	ops []string
	err error
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Batch) add(op string, buckets ...string) *Batch {
	if err := checkBuckets(buckets...); err != nil {
		b.setErr(err)
		return b
	}
	b.ops = append(b.ops, op)
	return b
}

func (b *Batch) Copy(srcBucket, srcKey, destBucket, destKey string) *Batch {
	return b.add(opCopy(srcBucket, srcKey, destBucket, destKey), srcBucket, destBucket)
}

func (b *Batch) Move(srcBucket, srcKey, destBucket, destKey string) *Batch {
	return b.add(opMove(srcBucket, srcKey, destBucket, destKey), srcBucket, destBucket)
}

// Rename 等价于 Move(bucket, oldKey, bucket, newKey)
func (b *Batch) Rename(bucket, oldKey, newKey string) *Batch {
	return b.Move(bucket, oldKey, bucket, newKey)
}

// Delete 为每个 key 添加一个删除操作，keys 为空时记录 ErrInvalidArgument
func (b *Batch) Delete(bucket string, keys ...string) *Batch {
	if len(keys) == 0 {
		b.setErr(invalidArgument("delete requires at least one key"))
		return b
	}
	for _, key := range keys {
		b.add(opDelete(bucket, key), bucket)
	}
	return b
}

// Stat 为每个 key 添加一个 stat 操作
func (b *Batch) Stat(bucket string, keys ...string) *Batch {
	for _, key := range keys {
		b.add(opStat(bucket, key), bucket)
	}
	return b
}

// Err 返回构造过程中遇到的第一个错误
func (b *Batch) Err() error {
	return b.err
}

func (b *Batch) Len() int {
	return len(b.ops)
}

// Ops 返回已添加操作的副本
func (b *Batch) Ops() []string {
	ops := make([]string, len(b.ops))
	copy(ops, b.ops)
	return ops
}

// Body 生成请求体 op=<op1>&op=<op2>...，没有任何操作时返回空切片
func (b *Batch) Body() []byte {
	if len(b.ops) == 0 {
		return []byte{}
	}
	return []byte("op=" + strings.Join(b.ops, "&op="))
}

// Split 将操作按顺序切分为每批最多 size 个的多个 Batch
func (b *Batch) Split(size int) []*Batch {
	if size <= 0 || len(b.ops) <= size {
		return []*Batch{{ops: b.Ops(), err: b.err}}
	}
	batches := make([]*Batch, 0, (len(b.ops)+size-1)/size)
	for i := 0; i < len(b.ops); i += size {
		end := i + size
		if end > len(b.ops) {
			end = len(b.ops)
		}
		ops := make([]string, end-i)
		copy(ops, b.ops[i:end])
		batches = append(batches, &Batch{ops: ops, err: b.err})
	}
	return batches
}

// ----------------------------------------------------------

// Batch 在一个请求中执行所有操作。单个操作的失败体现在对应的 BatchOpRet.Code 中
func (m *BucketManager) Batch(ctx context.Context, batch *Batch) (rets []BatchOpRet, err error) {
	if err = batch.Err(); err != nil {
		return
	}
	if batch.Len() == 0 {
		err = invalidArgument("empty batch")
		return
	}
	err = m.post(ctx, m.cfg.RSHost+"/batch", batch.Body(), &rets)
	return
}

// BatchChunked 将操作切分为每批 BatchSize 个，以 BatchConcurrency 的并发度执行，
// 结果按原始顺序合并。任一请求失败时返回该错误
func (m *BucketManager) BatchChunked(ctx context.Context, batch *Batch) ([]BatchOpRet, error) {
	if err := batch.Err(); err != nil {
		return nil, err
	}
	if batch.Len() <= m.cfg.BatchSize {
		return m.Batch(ctx, batch)
	}

	var (
		rets   = make([]BatchOpRet, batch.Len())
		chunks = batch.Split(m.cfg.BatchSize)
		pool   = goroutine_pool.NewGoroutinePool(m.cfg.BatchConcurrency)
	)
	for i, chunk := range chunks {
		func(offset int, chunk *Batch) {
			pool.Go(func(ctx context.Context) error {
				r, err := m.Batch(ctx, chunk)
				if err != nil {
					return err
				}
				copy(rets[offset:offset+chunk.Len()], r)
				return nil
			})
		}(i*m.cfg.BatchSize, chunk)
	}
	if err := pool.Wait(ctx); err != nil {
		return nil, err
	}
	return rets, nil
}
