package operation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// replaceConfigFile 先写临时文件再 rename，避免监听到写了一半的内容
func replaceConfigFile(t *testing.T, path, content string) {
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0644))
	require.NoError(t, os.Rename(tmp, path))
}

// 访问真实服务的测试需要设置 QINIU_KODO_TEST，并通过 QINIU 指定配置文件
func checkSkipTest(t *testing.T) {
	if os.Getenv("QINIU_KODO_TEST") == "" {
		t.Skip("skipping test in short mode.")
	}
}
