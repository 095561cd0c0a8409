package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.False(t, cfg.Database.AutoMigrate, "建表默认关闭")
	assert.Equal(t, "https://openlibrary.org", cfg.Metadata.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Metadata.Timeout)
	assert.Equal(t, uint32(5), cfg.Metadata.BreakerFailures)
	assert.Equal(t, "bookshelf_sid", cfg.Session.CookieName)
}

func TestLoad_ConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := []byte("server:\n  port: 9000\ndatabase:\n  driver: memory\nmetadata:\n  timeout: 2s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), yaml, 0o644))

	t.Setenv("BOOKSHELF_SERVER_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "环境变量优先于配置文件")
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 2*time.Second, cfg.Metadata.Timeout)
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(v *viper.Viper){
		"端口越界":  func(v *viper.Viper) { v.Set("server.port", 70000) },
		"未知驱动":  func(v *viper.Viper) { v.Set("database.driver", "sqlite") },
		"日志级别":  func(v *viper.Viper) { v.Set("log.level", "verbose") },
		"目录服务地址": func(v *viper.Viper) { v.Set("metadata.base_url", "") },
		"redis缺少主机": func(v *viper.Viper) {
			v.Set("redis.enabled", true)
			v.Set("redis.host", "")
		},
		"未知时区": func(v *viper.Viper) { v.Set("database.loc", "Mars/Olympus") },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			mutate(v)

			_, err := unmarshal(v)
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "library",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(db:3306)/library?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}

func TestDatabaseConfig_Location(t *testing.T) {
	loc, err := DatabaseConfig{Loc: "Local"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = DatabaseConfig{Loc: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = DatabaseConfig{Loc: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
