package operation

import (
	"math/rand"
	"time"
)

// buildDurationByMs build time.Duration by ms, if ms <= 0, return defaultValue
func buildDurationByMs(ms int, defaultValue int) time.Duration {
	if ms <= 0 {
		return time.Duration(defaultValue) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

// pickHost 从配置的多个域名中随机选择一个，没有配置时返回空串
func pickHost(hosts []string) string {
	switch len(hosts) {
	case 0:
		return ""
	case 1:
		return hosts[0]
	default:
		return hosts[rand.Intn(len(hosts))]
	}
}
