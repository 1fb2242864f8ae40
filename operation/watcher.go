package operation

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const QINIU_DISABLE_CONFIG_HOT_RELOADING_ENV = "QINIU_DISABLE_CONFIG_HOT_RELOADING"

// configWatcher 监听配置文件所在目录，文件被写入或重新创建时调用 onChange
type configWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()

	closeOnce sync.Once
	loopDone  chan struct{}
}

func newConfigWatcher(path string, onChange func()) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	watchDir := filepath.Dir(path)
	if err = watcher.Add(watchDir); err != nil {
		elog.Warn("add watch error:", watchDir, err)
		watcher.Close()
		return nil, err
	}

	w := &configWatcher{
		watcher:  watcher,
		path:     path,
		onChange: onChange,
		loopDone: make(chan struct{}),
	}
	go w.eventsLoop()
	return w, nil
}

func (w *configWatcher) eventsLoop() {
	defer close(w.loopDone)

	const WRITE_OR_CREATE_MASK = fsnotify.Write | fsnotify.Create
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&WRITE_OR_CREATE_MASK != 0 && filepath.Clean(event.Name) == w.path {
				w.onChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			elog.Warn("config watcher error:", err)
		}
	}
}

// Close 停止监听并等待事件循环退出
func (w *configWatcher) Close() (err error) {
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
		<-w.loopDone
	})
	return
}
