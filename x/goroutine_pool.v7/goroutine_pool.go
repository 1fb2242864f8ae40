package goroutine_pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GoroutinePool 以固定数量的 goroutine 执行任务，任一任务出错后其余未开始的任务不再执行
type GoroutinePool struct {
	workers           []func(context.Context) error
	maxGoroutineCount int
}

func NewGoroutinePool(maxGoroutineCount int) *GoroutinePool {
	if maxGoroutineCount <= 0 {
		maxGoroutineCount = 1
	}
	return &GoroutinePool{maxGoroutineCount: maxGoroutineCount}
}

func (pool *GoroutinePool) Go(worker func(context.Context) error) {
	pool.workers = append(pool.workers, worker)
}

// Wait 执行所有已提交的任务并返回第一个错误
func (pool *GoroutinePool) Wait(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	workersChan := make(chan func(context.Context) error)

	count := pool.maxGoroutineCount
	if count > len(pool.workers) {
		count = len(pool.workers)
	}
	for i := 0; i < count; i++ {
		group.Go(func() error {
			for worker := range workersChan {
				if err := worker(ctx); err != nil {
					return err
				}
			}
			return nil
		})
	}

feed:
	for _, worker := range pool.workers {
		select {
		case workersChan <- worker:
		case <-ctx.Done():
			break feed
		}
	}
	close(workersChan)

	return group.Wait()
}
