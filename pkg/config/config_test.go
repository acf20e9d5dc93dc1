package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  name: fdbook
  version: 2.3.0
  mode: production
log:
  level: debug
api:
  base_url: http://backend:8084/api
  timeout: 5s
storage:
  driver: redis
  redis:
    addrs:
      - redis-1:6379
      - redis-2:6379
`

func writeTestConfig(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestNew(t *testing.T) {
	c := New(WithEnvPrefix("TEST"), WithOptional(true))
	assert.NotNil(t, c.viper)
	assert.Equal(t, "TEST", c.envPrefix)
	assert.True(t, c.optional)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, "config.yaml", testYAML)

	c := New(WithConfigFile(cfgPath))
	require.NoError(t, c.Load())

	assert.Equal(t, "fdbook", c.GetString("app.name"))
	assert.Equal(t, 5*time.Second, c.GetDuration("api.timeout"))
	assert.Equal(t, cfgPath, c.ConfigFileUsed())
	assert.Equal(t, "production", Get[string](c, "app.mode"))
	assert.Equal(t, 0, Get[int](c, "missing"))
}

func TestLoadWithNameAndPaths(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "myconfig.yaml", testYAML)

	c := New(
		WithConfigName("myconfig"),
		WithConfigType("yaml"),
		WithConfigPaths(dir),
	)
	require.NoError(t, c.Load())
	assert.Equal(t, "fdbook", c.GetString("app.name"))
}

func TestWithDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, "config.yaml", `
app:
  name: myapp
`)

	c := New(
		WithConfigFile(cfgPath),
		WithDefaults(map[string]any{
			"server.addr":     ":9090",
			"tracing.enabled": false,
		}),
	)
	require.NoError(t, c.Load())

	assert.Equal(t, "myapp", c.GetString("app.name"))
	assert.Equal(t, ":9090", c.GetString("server.addr"))
	assert.False(t, c.GetBool("tracing.enabled"))
	assert.True(t, c.IsSet("server.addr"))
}

func TestWithEnvPrefix(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, "config.yaml", `
app:
  name: myapp
`)

	t.Setenv("MYAPP_APP_NAME", "env-app")

	c := New(
		WithConfigFile(cfgPath),
		WithEnvPrefix("MYAPP"),
		WithEnvKeyReplacer(strings.NewReplacer(".", "_")),
	)
	require.NoError(t, c.Load())

	assert.Equal(t, "env-app", c.GetString("app.name"))
}

func TestSetOverrides(t *testing.T) {
	c := New(WithDefaults(map[string]any{"log.level": "INFO"}))
	require.NoError(t, c.Load())

	c.Set("log.level", "ERROR")
	assert.Equal(t, "ERROR", c.GetString("log.level"))
}

func TestUnmarshalKey(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, "config.yaml", testYAML)

	c := New(WithConfigFile(cfgPath))
	require.NoError(t, c.Load())

	var api API
	require.NoError(t, c.UnmarshalKey("api", &api))
	assert.Equal(t, "http://backend:8084/api", api.BaseURL)
	assert.Equal(t, 5*time.Second, api.Timeout)
}

func TestConfigFileNotFound(t *testing.T) {
	c := New(WithConfigFile("/nonexistent/path/config.yaml"))
	assert.ErrorIs(t, c.Load(), ErrConfigReadFailed)
}

func TestConfigFileNotFoundByName(t *testing.T) {
	dir := t.TempDir()
	c := New(
		WithConfigName("nonexistent"),
		WithConfigType("yaml"),
		WithConfigPaths(dir),
	)
	assert.ErrorIs(t, c.Load(), ErrConfigNotFound)

	c = New(
		WithConfigName("nonexistent"),
		WithConfigType("yaml"),
		WithConfigPaths(dir),
		WithOptional(true),
	)
	assert.NoError(t, c.Load())
}

func TestConcurrentAccess(t *testing.T) {
	c := New(WithDefaults(map[string]any{"api.base_url": "http://localhost:8084/api"}))
	require.NoError(t, c.Load())

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				c.Set("server.addr", ":8080")
				return
			}
			_ = c.GetString("api.base_url")
		}()
	}
	wg.Wait()
}

func TestLoadAppDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	app, _, err := LoadApp("")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Info.Version)
	assert.Equal(t, ModeDevelopment, app.Info.Mode)
	assert.True(t, app.IsDevelopment())
	assert.Equal(t, "INFO", app.Log.Level)
	assert.Equal(t, "http://localhost:8084/api", app.API.BaseURL)
	assert.Equal(t, 10*time.Second, app.API.Timeout)
	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Equal(t, "memory", app.Storage.Driver)
	assert.Equal(t, 30*time.Minute, app.Storage.SessionTTL)
	assert.False(t, app.Tracing.Enabled)
	assert.Equal(t, "1.0.0", app.Tracing.ServiceVersion)
}

func TestLoadAppEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FD_API_BASE_URL", "https://fd.example.com/api")
	t.Setenv("FD_APP_VERSION", "3.1.4")
	t.Setenv("FD_APP_MODE", "production")
	t.Setenv("FD_LOG_LEVEL", "warn")

	app, _, err := LoadApp("")
	require.NoError(t, err)

	assert.Equal(t, "https://fd.example.com/api", app.API.BaseURL)
	assert.Equal(t, "3.1.4", app.Info.Version)
	assert.False(t, app.IsDevelopment())
	assert.Equal(t, "warn", app.Log.Level)
}

func TestLoadAppFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, "fdbook.yaml", testYAML)

	app, c, err := LoadApp(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, c.ConfigFileUsed())
	assert.Equal(t, "2.3.0", app.Info.Version)
	assert.Equal(t, "debug", app.Log.Level)
	assert.Equal(t, []string{"redis-1:6379", "redis-2:6379"}, app.Storage.Redis.Addrs)

	// 环境变量优先于文件
	t.Setenv("FD_API_TIMEOUT", "2s")
	app, _, err = LoadApp(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, app.API.Timeout)
}

func TestLoadAppSearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0755))
	writeTestConfig(t, filepath.Join(dir, "config"), "fdbook.yaml", testYAML)
	t.Chdir(dir)

	app, _, err := LoadApp("")
	require.NoError(t, err)
	assert.Equal(t, "2.3.0", app.Info.Version)
}

func TestLoadAppMissingFile(t *testing.T) {
	_, _, err := LoadApp(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigReadFailed)
}

func TestLoadAppInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad mode", map[string]string{"FD_APP_MODE": "staging"}},
		{"bad url", map[string]string{"FD_API_BASE_URL": "not a url"}},
		{"bad driver", map[string]string{"FD_STORAGE_DRIVER": "etcd"}},
		{"bad exporter", map[string]string{"FD_TRACING_ENABLED": "true", "FD_TRACING_EXPORTER": "zipkin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, _, err := LoadApp("")
			assert.ErrorIs(t, err, ErrConfigInvalid)
		})
	}
}

func TestTracingSkippedWhenDisabled(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FD_TRACING_EXPORTER", "zipkin")

	_, _, err := LoadApp("")
	assert.NoError(t, err)
}
