package config

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Totarae/URLRelay/internal/provider"
)

// Ключи конфигурации (совпадают с именами переменных окружения).
const (
	keyServerAddress   = "SERVER_ADDRESS"
	keyGRPCAddress     = "GRPC_ADDRESS"
	keyToken           = "BITLY_TOKEN"
	keyProviderURL     = "PROVIDER_URL"
	keyProviderDomain  = "PROVIDER_DOMAIN"
	keyProviderTimeout = "PROVIDER_TIMEOUT"
	keyEnableHTTPS     = "ENABLE_HTTPS"
	keyTLSCertPath     = "TLS_CERT_PATH"
	keyTLSKeyPath      = "TLS_KEY_PATH"
	keyLogLevel        = "LOG_LEVEL"
	keyShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

// Config хранит конфигурацию ретранслятора
type Config struct {
	ServerAddress   string        `json:"server_address"`
	GRPCAddress     string        `json:"grpc_address"`
	ProviderURL     string        `json:"provider_url"`
	ProviderDomain  string        `json:"provider_domain"`
	ProviderTimeout time.Duration `json:"provider_timeout"`
	EnableHTTPS     bool          `json:"enable_https"`
	TLSCertPath     string        `json:"tls_cert_path"`
	TLSKeyPath      string        `json:"tls_key_path"`
	LogLevel        string        `json:"log_level"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	v *viper.Viper
}

// NewConfig читает конфигурацию из аргументов командной строки процесса.
func NewConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load собирает конфигурацию. Приоритет по возрастанию:
// значения по умолчанию, JSON-файл (-c), .env, переменные окружения, флаги.
func Load(args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault(keyServerAddress, "localhost:8080") // Значения по умолчанию
	v.SetDefault(keyGRPCAddress, "")
	v.SetDefault(keyProviderURL, provider.DefaultEndpoint)
	v.SetDefault(keyProviderDomain, provider.DefaultDomain)
	v.SetDefault(keyProviderTimeout, time.Duration(0))
	v.SetDefault(keyEnableHTTPS, false)
	v.SetDefault(keyTLSCertPath, "cert.pem")
	v.SetDefault(keyTLSKeyPath, "key.pem")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyShutdownTimeout, 10*time.Second)

	v.AutomaticEnv()

	fs := flag.NewFlagSet("relay", flag.ContinueOnError)
	serverAddress := fs.String("a", "", "HTTP server address")
	grpcAddress := fs.String("g", "", "gRPC server address (empty disables gRPC)")
	providerURL := fs.String("p", "", "shortening provider endpoint")
	providerTimeout := fs.Duration("timeout", 0, "provider call timeout (0 means none)")
	enableHTTPS := fs.Bool("s", false, "enable HTTPS")
	tlsCertPath := fs.String("cert", "", "path to TLS certificate")
	tlsKeyPath := fs.String("key", "", "path to TLS key")
	logLevel := fs.String("l", "", "log level (debug, info, warn, error)")
	configPath := fs.String("c", "", "path to JSON config file")
	fs.StringVar(configPath, "config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// JSON-конфигурация ниже окружения: AutomaticEnv всё равно перекрывает её
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG")
	}
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		v.SetConfigType("json")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", *configPath, err)
		}
	}

	// Читаем .env, если есть (не переопределяет переменные окружения!)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig()

	cfg := &Config{
		ServerAddress:   v.GetString(keyServerAddress),
		GRPCAddress:     v.GetString(keyGRPCAddress),
		ProviderURL:     v.GetString(keyProviderURL),
		ProviderDomain:  v.GetString(keyProviderDomain),
		ProviderTimeout: v.GetDuration(keyProviderTimeout),
		EnableHTTPS:     v.GetBool(keyEnableHTTPS),
		TLSCertPath:     v.GetString(keyTLSCertPath),
		TLSKeyPath:      v.GetString(keyTLSKeyPath),
		LogLevel:        v.GetString(keyLogLevel),
		ShutdownTimeout: v.GetDuration(keyShutdownTimeout),
		v:               v,
	}

	// Флаг, если передан, главнее всего остального
	override := func(flagValue string, target *string) {
		if flagValue != "" {
			*target = flagValue
		}
	}
	override(*serverAddress, &cfg.ServerAddress)
	override(*grpcAddress, &cfg.GRPCAddress)
	override(*providerURL, &cfg.ProviderURL)
	override(*tlsCertPath, &cfg.TLSCertPath)
	override(*tlsKeyPath, &cfg.TLSKeyPath)
	override(*logLevel, &cfg.LogLevel)
	if *providerTimeout != 0 {
		cfg.ProviderTimeout = *providerTimeout
	}
	if *enableHTTPS {
		cfg.EnableHTTPS = true
	}

	log.Printf("Инициализация конфигурации: ServerAddress=%s", cfg.ServerAddress)
	log.Printf("Инициализация конфигурации: GRPCAddress=%s", cfg.GRPCAddress)
	log.Printf("Инициализация конфигурации: ProviderURL=%s", cfg.ProviderURL)
	log.Printf("Инициализация конфигурации: ProviderTimeout=%s", cfg.ProviderTimeout)
	log.Printf("Инициализация конфигурации: EnableHTTPS=%v", cfg.EnableHTTPS)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}
	return cfg, nil
}

// Credential возвращает токен провайдера на момент вызова.
// Токен не кэшируется: его отсутствие обнаруживается при каждом запросе.
func (cfg *Config) Credential() string {
	if cfg.v == nil {
		return os.Getenv(keyToken)
	}
	return cfg.v.GetString(keyToken)
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return fmt.Errorf("адрес сервера не может быть пустым")
	}
	u, err := url.Parse(cfg.ProviderURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("некорректный адрес провайдера %q", cfg.ProviderURL)
	}
	if cfg.ProviderDomain == "" {
		return fmt.Errorf("домен провайдера не может быть пустым")
	}
	if cfg.ProviderTimeout < 0 {
		return fmt.Errorf("таймаут провайдера не может быть отрицательным")
	}
	if cfg.EnableHTTPS && (cfg.TLSCertPath == "" || cfg.TLSKeyPath == "") {
		return fmt.Errorf("для HTTPS нужны сертификат и ключ")
	}
	return nil
}
