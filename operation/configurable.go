package operation

import (
	"errors"
	"os"
	"sync"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/kodo"
)

const QINIU_ENV = "QINIU"

var ErrNoConfig = errors.New("environment variable " + QINIU_ENV + " is not set")

// Configurable 持有从文件加载的配置及对应的管理客户端，文件变化时自动重新加载
type Configurable struct {
	path string

	rwLock  sync.RWMutex
	config  *Config
	manager *kodo.BucketManager

	watcher *configWatcher
}

// LoadConfigurable 加载配置文件并创建管理客户端，
// 未设置 QINIU_DISABLE_CONFIG_HOT_RELOADING 时监听文件变化
func LoadConfigurable(path string) (*Configurable, error) {
	c := &Configurable{path: path}
	if err := c.load(); err != nil {
		return nil, err
	}
	if os.Getenv(QINIU_DISABLE_CONFIG_HOT_RELOADING_ENV) != "" {
		return c, nil
	}
	watcher, err := newConfigWatcher(path, c.reload)
	if err != nil {
		return nil, err
	}
	c.watcher = watcher
	return c, nil
}

func (c *Configurable) load() error {
	config, err := Load(c.path)
	if err != nil {
		return err
	}
	manager, err := NewBucketManager(config)
	if err != nil {
		return err
	}

	c.rwLock.Lock()
	defer c.rwLock.Unlock()
	c.config = config
	c.manager = manager
	return nil
}

func (c *Configurable) reload() {
	if err := c.load(); err != nil {
		elog.Warn("Reload config failed", c.path, err)
		return
	}
	elog.Info("Reload config", c.path)
}

// Config 返回当前生效的配置
func (c *Configurable) Config() *Config {
	c.rwLock.RLock()
	defer c.rwLock.RUnlock()
	return c.config
}

// BucketManager 返回当前生效的管理客户端
func (c *Configurable) BucketManager() *kodo.BucketManager {
	c.rwLock.RLock()
	defer c.rwLock.RUnlock()
	return c.manager
}

// Close 停止监听配置文件
func (c *Configurable) Close() error {
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Close()
}

var (
	globalConfigurable        *Configurable
	globalConfigurableErr     error
	onceForGlobalConfigurable sync.Once
)

func initCurrentConfigurableOnce() {
	envVal := os.Getenv(QINIU_ENV)
	if envVal == "" {
		globalConfigurableErr = ErrNoConfig
		return
	}
	globalConfigurable, globalConfigurableErr = LoadConfigurable(envVal)
	if globalConfigurableErr != nil {
		elog.Warn("Init config from env failed", envVal, globalConfigurableErr)
	}
}

// NewBucketManagerV2 使用环境变量 QINIU 指向的配置文件创建管理客户端，
// 配置文件修改后再次调用即可得到新的客户端
func NewBucketManagerV2() (*kodo.BucketManager, error) {
	onceForGlobalConfigurable.Do(initCurrentConfigurableOnce)
	if globalConfigurableErr != nil {
		return nil, globalConfigurableErr
	}
	return globalConfigurable.BucketManager(), nil
}
