package conf

import (
	"fmt"
	"runtime"
	"syscall"

	"github.com/service-sdk/go-sdk-qn-manager/x/ctype.v7"
	"github.com/service-sdk/go-sdk-qn-manager/x/rpc.v7"
)

const (
	version = "1.5.0"
)

// 默认的服务域名，配置文件未指定时使用
const (
	RS_HOST  = "https://rs.qbox.me"
	RSF_HOST = "https://rsf.qbox.me"
	IO_HOST  = "https://iovip.qbox.me"
)

// checkAppName userAppName should be [A-Za-z0-9_\ \-\.]*
func checkAppName(appName string) error {
	const ctypeAppName = ctype.ALPHA | ctype.DIGIT | ctype.UNDERLINE | ctype.SPACE_BAR | ctype.SUB | ctype.DOT
	if appName != "" && !ctype.IsType(ctypeAppName, appName) {
		return syscall.EINVAL
	}
	return nil
}

func uaString(userAppName string) string {
	return fmt.Sprintf(
		"QiniuGo/%s (%s; %s; %s) %s",
		version,
		runtime.GOOS,
		runtime.GOARCH,
		userAppName,
		runtime.Version(),
	)
}

// Version 返回 SDK 版本号
func Version() string {
	return version
}

// UserAgent 返回带有 userAppName 的 User-Agent，不修改全局设置
func UserAgent(userAppName string) (string, error) {
	if err := checkAppName(userAppName); err != nil {
		return "", err
	}
	return uaString(userAppName), nil
}

// SetAppName userAppName should be [A-Za-z0-9_\ \-\.]*
func SetAppName(userAppName string) error {
	ua, err := UserAgent(userAppName)
	if err != nil {
		return err
	}
	rpc.UserAgent = ua
	return nil
}

func init() {
	_ = SetAppName("")
}
