package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
catalog:
  path: /etc/exchange-engine/catalog.yaml
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "testuser", cfg.Database.User)
				assert.Equal(t, "/etc/exchange-engine/catalog.yaml", cfg.Catalog.Path)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
catalog:
  path: catalog.yaml
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 2*time.Minute, cfg.Redis.TTL)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, 5*time.Minute, cfg.Catalog.ReloadInterval)
				assert.Equal(t, 10.0, cfg.RateLimit.PerSecond)
				assert.Equal(t, 20, cfg.RateLimit.Burst)
				assert.Equal(t, "exchange-engine", cfg.Tracing.ServiceName)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
  password: "${TEST_DB_PASSWORD}"
catalog:
  path: catalog.yaml
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
			},
		},
		{
			name: "missing required database.host",
			yaml: `
database:
  name: testdb
  user: testuser
catalog:
  path: catalog.yaml
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing required catalog.path",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
`,
			wantErr: "catalog.path is required",
		},
		{
			name: "tracing enabled without endpoint",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
catalog:
  path: catalog.yaml
tracing:
  enabled: true
`,
			wantErr: "tracing.endpoint is required when tracing is enabled",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
database:
  host: db.example.com
  port: 5433
  name: marketplace_prod
  user: admin
  password: pass
  sslmode: require
  pool_size: 20
redis:
  enabled: true
  addr: redis.internal:6379
  ttl: 30s
nats:
  enabled: true
  url: nats://broker.internal:4222
catalog:
  path: /etc/exchange-engine/catalog.yaml
  reload_interval: 1m
matching:
  pool_a_cap: 30
  max_results: 20
  floor_score: 10
rate_limit:
  per_second: 5
  burst: 10
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.PoolSize)
				assert.True(t, cfg.Redis.Enabled)
				assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
				assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
				assert.True(t, cfg.NATS.Enabled)
				assert.Equal(t, "nats://broker.internal:4222", cfg.NATS.URL)
				assert.Equal(t, time.Minute, cfg.Catalog.ReloadInterval)
				assert.Equal(t, 30, cfg.Matching.PoolACap)
				assert.Equal(t, 20, cfg.Matching.MaxResults)
				assert.Equal(t, 10, cfg.Matching.FloorScore)
				assert.Equal(t, 5.0, cfg.RateLimit.PerSecond)
				assert.Equal(t, 10, cfg.RateLimit.Burst)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		Name:     "marketplace",
		User:     "admin",
		Password: "s3cret",
		SSLMode:  "require",
	}
	assert.Equal(
		t,
		"host=db.example.com port=5433 dbname=marketplace user=admin password=s3cret sslmode=require",
		cfg.DSN(),
	)
}
