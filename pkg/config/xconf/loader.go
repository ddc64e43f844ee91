package xconf

import (
	"fmt"
	"os"
	"sync"
)

// Loader 持有一份已校验的 [Settings]，可从文件重载。
//
// Settings 与 Reload 可并发调用。
type Loader struct {
	path    string
	format  Format
	isBytes bool

	mu       sync.RWMutex
	settings Settings
}

// Load 从配置文件加载，格式由扩展名决定。
//
// 文件中未出现的键取 [Default] 的值；未知键、无法解析的取值与不满足
// [Settings.Validate] 的组合都会报错。
func Load(path string) (*Loader, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	l := &Loader{path: path, format: format}
	s, err := l.read()
	if err != nil {
		return nil, err
	}
	l.settings = s
	return l, nil
}

// LoadBytes 从内存数据加载。返回的 Loader 不支持 [Loader.Reload] 与 [Watch]。
func LoadBytes(data []byte, format Format) (*Loader, error) {
	s, err := decodeBytes(data, format)
	if err != nil {
		return nil, err
	}
	return &Loader{format: format, isBytes: true, settings: s}, nil
}

// Settings 返回当前配置的副本。
func (l *Loader) Settings() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings
}

// Path 返回配置文件路径，LoadBytes 创建时为空。
func (l *Loader) Path() string { return l.path }

// Format 返回配置格式。
func (l *Loader) Format() Format { return l.format }

// Reload 重新读取配置文件。失败时保留原配置并返回错误。
func (l *Loader) Reload() error {
	if l.isBytes {
		return ErrNotReloadable
	}
	s, err := l.read()
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.settings = s
	l.mu.Unlock()
	return nil
}

func (l *Loader) read() (Settings, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return decodeBytes(data, l.format)
}

func decodeBytes(data []byte, format Format) (Settings, error) {
	k, err := parse(data, format)
	if err != nil {
		return Settings{}, err
	}
	return decode(k)
}
