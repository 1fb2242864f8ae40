package operation

import (
	"encoding/json"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kirsle/configdir"
	"github.com/pelletier/go-toml"
)

var ErrInvalidConfigFormat = errors.New("invalid configuration format")

// 配置文件
type Config struct {
	Ak       string   `json:"ak" toml:"ak"`
	Sk       string   `json:"sk" toml:"sk"`
	Bucket   string   `json:"bucket" toml:"bucket"`
	RsHosts  []string `json:"rs_hosts" toml:"rs_hosts"`
	RsfHosts []string `json:"rsf_hosts" toml:"rsf_hosts"`
	IoHosts  []string `json:"io_hosts" toml:"io_hosts"`

	BatchConcurrency int `json:"batch_concurrency" toml:"batch_concurrency"`
	BatchSize        int `json:"batch_size" toml:"batch_size"`

	DialTimeoutMs int `json:"dial_timeout_ms" toml:"dial_timeout_ms"`
	TimeoutMs     int `json:"timeout_ms" toml:"timeout_ms"`

	AppName string `json:"app_name" toml:"app_name"`
}

// 加载配置文件，支持 .json 和 .toml
func Load(file string) (*Config, error) {
	var configuration Config
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(path.Ext(file))
	if ext == ".json" {
		err = json.Unmarshal(raw, &configuration)
	} else if ext == ".toml" {
		err = toml.Unmarshal(raw, &configuration)
	} else {
		return nil, ErrInvalidConfigFormat
	}

	return &configuration, err
}

// DefaultConfigPath 返回用户配置目录下的 kodo.toml
func DefaultConfigPath() string {
	return filepath.Join(configdir.LocalConfig("qiniu", "kodo"), "kodo.toml")
}
