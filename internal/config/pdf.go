package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PDFConfig selects and tunes the PDF backend. It lives in pdf.yml so
// operators can flip backends or point at a different Chromium binary
// without a restart.
type PDFConfig struct {
	Backend        string `mapstructure:"backend"`
	ChromiumPath   string `mapstructure:"chromiumPath"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

const (
	PDFBackendChromium = "chromium"
	PDFBackendNative   = "native"
)

func DefaultPDFConfig() PDFConfig {
	return PDFConfig{
		Backend:        PDFBackendChromium,
		TimeoutSeconds: 30,
	}
}

func (c PDFConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type PDFConfigHolder struct {
	current atomic.Value // holds PDFConfig
}

func NewPDFConfigHolder() (*PDFConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pdf")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/invoicely/config") // Volume-mounted config
	v.AddConfigPath("/etc/invoicely")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("INVOICELY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPDFConfig()
		v.SetDefault("pdf.backend", defaults.Backend)
		v.SetDefault("pdf.timeoutSeconds", defaults.TimeoutSeconds)
	}

	var cfg PDFConfig
	if err := v.UnmarshalKey("pdf", &cfg); err != nil {
		return nil, err
	}
	cfg = normalizePDFConfig(cfg)
	if err := validatePDFConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PDFConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PDFConfig
		if err := v.UnmarshalKey("pdf", &updated); err != nil {
			log.Printf("[pdf-config] reload failed: %v", err)
			return
		}
		updated = normalizePDFConfig(updated)
		if err := validatePDFConfig(updated); err != nil {
			log.Printf("[pdf-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pdf-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PDFConfigHolder) Get() PDFConfig {
	return h.current.Load().(PDFConfig)
}

func normalizePDFConfig(cfg PDFConfig) PDFConfig {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = PDFBackendChromium
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultPDFConfig().TimeoutSeconds
	}
	return cfg
}

func validatePDFConfig(cfg PDFConfig) error {
	switch cfg.Backend {
	case PDFBackendChromium, PDFBackendNative:
		return nil
	default:
		return errors.New("pdf.backend must be chromium or native")
	}
}
