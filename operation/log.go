package operation

import (
	"github.com/service-sdk/go-sdk-qn-manager/api.v7/kodo"
	"github.com/service-sdk/go-sdk-qn-manager/x/log.v7"
)

// elog is embedded logger
var elog log.Ilog = log.Std

// SetLogger 设置全局 Logger
func SetLogger(logger log.Ilog) {
	elog = logger
	kodo.SetLogger(logger)
}
