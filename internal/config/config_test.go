package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	if content == "" {
		return filepath.Join(tmpDir, "nonexistent.yaml")
	}
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9000
  read_timeout: 5
database:
  host: localhost
  port: 5433
  user: testuser
  password: testpass
  dbname: launcher
  sslmode: require
nats:
  url: "nats://localhost:4222"
  stream_name: "DOCS"
auth:
  jwt_public_key: "pem"
  api_keys:
    - key-1
    - key-2
chains:
  supported_chain_ids: [8453]
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 5, cfg.Server.ReadTimeout)
				assert.Equal(t, 10, cfg.Server.WriteTimeout)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "launcher", cfg.Database.DBName)
				assert.Equal(t, "DOCS", cfg.NATS.StreamName)
				assert.Equal(t, "pem", cfg.Auth.JWTPublicKey)
				assert.Equal(t, []string{"key-1", "key-2"}, cfg.Auth.APIKeys)
				assert.True(t, cfg.Chains.Supported(domain.ChainBaseMainnet))
				assert.False(t, cfg.Chains.Supported(domain.ChainBaseSepolia))
			},
		},
		{
			name:       "missing file uses defaults",
			configFile: "",
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, "DOCUMENT_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.True(t, cfg.Chains.Supported(domain.ChainBaseMainnet))
				assert.True(t, cfg.Chains.Supported(domain.ChainBaseSepolia))
				assert.False(t, cfg.Chains.Supported(domain.ChainID(1)))
			},
		},
		{
			name: "invalid yaml",
			configFile: `
server:
  port: invalid
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadTriggerWorkerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *TriggerWorkerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: localhost
  user: testuser
nats:
  url: "nats://localhost:4222"
  consumer_name: "custom-consumer"
  max_deliver: 7
  ack_wait: "1m"
firebase:
  project_id: "base-token-creator"
  credentials_file: "/secrets/sa.json"
  app_url: "https://app.example.com"
worker:
  pool_size: 4
  queue_size: 16
metrics:
  addr: ":9100"
`,
			validate: func(t *testing.T, cfg *TriggerWorkerConfig) {
				assert.Equal(t, "custom-consumer", cfg.NATS.ConsumerName)
				assert.Equal(t, 7, cfg.NATS.MaxDeliver)
				assert.Equal(t, time.Minute, cfg.NATS.AckWait)
				assert.Equal(t, "base-token-creator", cfg.Firebase.ProjectID)
				assert.Equal(t, "/secrets/sa.json", cfg.Firebase.CredentialsFile)
				assert.Equal(t, "https://app.example.com", cfg.Firebase.AppURL)
				assert.Equal(t, 4, cfg.Worker.WorkerPoolSize)
				assert.Equal(t, 16, cfg.Worker.WorkerQueueSize)
				assert.Equal(t, ":9100", cfg.Metrics.Addr)
			},
		},
		{
			name: "defaults",
			configFile: `
firebase:
  project_id: "p"
`,
			validate: func(t *testing.T, cfg *TriggerWorkerConfig) {
				assert.Equal(t, "trigger-worker", cfg.NATS.ConsumerName)
				assert.Equal(t, 3, cfg.NATS.MaxDeliver)
				assert.Equal(t, 30*time.Second, cfg.NATS.AckWait)
				assert.Equal(t, 20, cfg.Worker.WorkerPoolSize)
				assert.Equal(t, 1024, cfg.Worker.WorkerQueueSize)
				assert.Equal(t, ":9090", cfg.Metrics.Addr)
			},
		},
		{
			name: "missing firebase project",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadTriggerWorkerConfig(writeConfig(t, tt.configFile), t.TempDir())
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadCLIConfig(t *testing.T) {
	cfg, err := LoadCLIConfig(writeConfig(t, `
database:
  host: db.internal
  dbname: launcher
`), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2, cfg.Database.MaxOpenConns)
	assert.Equal(t, 1, cfg.Database.MaxIdleConns)

	_, err = LoadCLIConfig(writeConfig(t, "debug: true\n"), t.TempDir())
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	envContent := `TOKEN_LAUNCHER_DEBUG=true
TOKEN_LAUNCHER_DATABASE_HOST=env-host
TOKEN_LAUNCHER_DATABASE_PORT=3306
TOKEN_LAUNCHER_DATABASE_USER=env-user
TOKEN_LAUNCHER_SERVER_PORT=7070
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))
	t.Cleanup(func() {
		for _, k := range []string{
			"TOKEN_LAUNCHER_DEBUG",
			"TOKEN_LAUNCHER_DATABASE_HOST",
			"TOKEN_LAUNCHER_DATABASE_PORT",
			"TOKEN_LAUNCHER_DATABASE_USER",
			"TOKEN_LAUNCHER_SERVER_PORT",
		} {
			_ = os.Unsetenv(k)
		}
	})

	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
  user: file-user
`
	require.NoError(t, os.WriteFile(configPath, []byte(configFile), 0600))

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// .env values are exported by godotenv and win over the file
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, 7070, cfg.Server.Port)
}
