package kodo

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument 表示调用参数不合法，这类错误在发出任何请求之前返回
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

func checkBucket(bucket string) error {
	if bucket == "" {
		return invalidArgument("bucket must not be empty")
	}
	return nil
}
