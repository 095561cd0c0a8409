package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀(如BOOKSHELF_DATABASE_PASSWORD → database.password)
const EnvPrefix = "BOOKSHELF"

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、.env文件、环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port          int           `mapstructure:"port"`
	Mode          string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	EnableSwagger bool          `mapstructure:"enable_swagger"`
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | memory
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"` // 启动时建表，默认关闭
}

// DSN 生成MySQL连接字符串
// 格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// 注意：loc参数需要URL编码（Asia/Shanghai → Asia%2FShanghai）
func (d DatabaseConfig) DSN() string {
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

// Location 连接使用的时区，与DSN中的loc一致(Local → 本机时区，空 → UTC)
func (d DatabaseConfig) Location() (*time.Location, error) {
	return time.LoadLocation(d.Loc)
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"` // 关闭时提示消息存放在进程内存
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name"`
	FlashTTL   time.Duration `mapstructure:"flash_ttl"`
	Secure     bool          `mapstructure:"secure"`
}

// MetadataConfig 外部图书目录服务(Open Library)
type MetadataConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"` // 连续失败多少次后熔断
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`  // 熔断持续时间
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"` // OTLP gRPC地址，如localhost:4317
}

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml，找不到配置文件时使用默认值
// 2. 通过环境变量BOOKSHELF_ENV指定环境（如config.prod.yaml）
// 3. 当前目录存在.env时先加载到环境变量
// 4. 环境变量覆盖（如BOOKSHELF_DATABASE_PASSWORD）
func Load() (*Config, error) {
	// .env不存在不算错误
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("读取.env失败: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	configName := "config"
	if env := os.Getenv(EnvPrefix + "_ENV"); env != "" {
		configName = "config." + env
	}
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	return unmarshal(v)
}

// unmarshal 绑定环境变量、解析并校验
func unmarshal(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}

	return &cfg, nil
}

// setDefaults 默认值
// AutomaticEnv只对viper已知的key生效，所以每个可覆盖的key都需要默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.enable_swagger", false)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "library")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("session.cookie_name", "bookshelf_sid")
	v.SetDefault("session.flash_ttl", 10*time.Minute)
	v.SetDefault("session.secure", false)

	v.SetDefault("metadata.base_url", "https://openlibrary.org")
	v.SetDefault("metadata.timeout", 5*time.Second)
	v.SetDefault("metadata.breaker_failures", 5)
	v.SetDefault("metadata.breaker_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.enable_caller", false)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "bookshelf")
	v.SetDefault("tracing.endpoint", "localhost:4317")
}

// Validate 配置校验
func (c *Config) Validate() error {
	return validation.Errors{
		"server": validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
			validation.Field(&c.Server.Mode, validation.In("debug", "release", "test")),
		),
		"database": validation.ValidateStruct(&c.Database,
			validation.Field(&c.Database.Driver, validation.Required, validation.In("mysql", "memory")),
			validation.Field(&c.Database.Host, validation.When(c.Database.Driver == "mysql", validation.Required)),
			validation.Field(&c.Database.DBName, validation.When(c.Database.Driver == "mysql", validation.Required)),
			validation.Field(&c.Database.Loc, validation.By(func(value interface{}) error {
				if _, err := time.LoadLocation(value.(string)); err != nil {
					return errors.New("无效的时区")
				}
				return nil
			})),
		),
		"redis": validation.ValidateStruct(&c.Redis,
			validation.Field(&c.Redis.Host, validation.When(c.Redis.Enabled, validation.Required)),
			validation.Field(&c.Redis.Port, validation.When(c.Redis.Enabled, validation.Required, validation.Max(65535))),
		),
		"session": validation.ValidateStruct(&c.Session,
			validation.Field(&c.Session.CookieName, validation.Required),
			validation.Field(&c.Session.FlashTTL, validation.Required),
		),
		"metadata": validation.ValidateStruct(&c.Metadata,
			validation.Field(&c.Metadata.BaseURL, validation.Required, is.URL),
			validation.Field(&c.Metadata.Timeout, validation.Required),
		),
		"log": validation.ValidateStruct(&c.Log,
			validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
			validation.Field(&c.Log.Format, validation.In("console", "json")),
		),
	}.Filter()
}
