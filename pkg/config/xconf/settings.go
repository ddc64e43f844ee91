package xconf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/xengine/pkg/engine/xcontainer"
	"github.com/omeyang/xengine/pkg/engine/xendpoint"
	"github.com/omeyang/xengine/pkg/network/xuri"
	"github.com/omeyang/xengine/pkg/observability/xlog"
)

// Settings 是引擎客户端的全部配置。
//
//	endpoint: tcp://10.0.0.5:2375
//	query:
//	  all: true
//	  limit: 20
//	  filters:
//	    label: ["app=web"]
//	decode:
//	  skip_invalid: true
//	retry:
//	  attempts: 5
//	  delay: 500ms
//	cache:
//	  size: 16
//	  ttl: 2s
//	breaker:
//	  failures: 5
//	  timeout: 10s
//	log:
//	  level: debug
//	  format: json
//	  file: /var/log/xnetctl.log
type Settings struct {
	Endpoint xuri.URI         `koanf:"endpoint"`
	Query    xcontainer.Query `koanf:"query"`
	Decode   DecodeSettings   `koanf:"decode"`
	Retry    RetrySettings    `koanf:"retry"`
	Cache    CacheSettings    `koanf:"cache"`
	Breaker  BreakerSettings  `koanf:"breaker"`
	Log      LogSettings      `koanf:"log"`
}

// DecodeSettings 控制容器列表的映射模式。
type DecodeSettings struct {
	SkipInvalid bool `koanf:"skip_invalid"`
}

// RetrySettings 控制来源调用的重试。
type RetrySettings struct {
	Attempts uint          `koanf:"attempts"`
	Delay    time.Duration `koanf:"delay"`
}

// CacheSettings 控制查询结果缓存，Size 为 0 表示关闭。
type CacheSettings struct {
	Size int           `koanf:"size"`
	TTL  time.Duration `koanf:"ttl"`
}

// BreakerSettings 控制来源熔断，Failures 为 0 表示关闭。
type BreakerSettings struct {
	Failures uint32        `koanf:"failures"`
	Timeout  time.Duration `koanf:"timeout"`
}

// LogSettings 控制日志输出。File 为空时输出到 stderr。
type LogSettings struct {
	Level  xlog.Level `koanf:"level"`
	Format string     `koanf:"format"`
	File   string     `koanf:"file"`
}

// Default 返回默认配置：本机 unix socket，严格映射，重试 3 次。
func Default() Settings {
	return Settings{
		Endpoint: xuri.MustParse(xendpoint.DefaultURI),
		Retry:    RetrySettings{Attempts: 3, Delay: 200 * time.Millisecond},
		Breaker:  BreakerSettings{Failures: 5, Timeout: 10 * time.Second},
		Log:      LogSettings{Level: xlog.LevelInfo, Format: "text"},
	}
}

// Validate 检查取值之间的约束，返回的错误包装 [ErrInvalidSettings]。
func (s Settings) Validate() error {
	var errs []error
	if _, err := xendpoint.Resolve(s.Endpoint); err != nil {
		errs = append(errs, fmt.Errorf("endpoint: %w", err))
	}
	if err := s.Query.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("query: %w", err))
	}
	if s.Retry.Attempts < 1 {
		errs = append(errs, errors.New("retry.attempts must be at least 1"))
	}
	if s.Retry.Delay < 0 {
		errs = append(errs, errors.New("retry.delay must not be negative"))
	}
	if s.Cache.Size < 0 || (s.Cache.Size > 0 && s.Cache.TTL <= 0) {
		errs = append(errs, errors.New("cache requires size >= 0 and a positive ttl when enabled"))
	}
	if s.Breaker.Timeout < 0 {
		errs = append(errs, errors.New("breaker.timeout must not be negative"))
	}
	switch strings.ToLower(s.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", s.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// decode 以 [Default] 为底，将 k 中出现的键覆盖上去并校验。
//
// 设计决策: 启用 ErrorUnused，拼错的键（如 "retry.attemps"）直接报错，
// 而不是静默回落到默认值。
func decode(k *koanf.Koanf) (Settings, error) {
	s := Default()
	err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &s,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	})
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
