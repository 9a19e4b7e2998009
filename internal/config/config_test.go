package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helper function tests
// ---------------------------------------------------------------------------

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string // nil = don't set; pointer to distinguish "" from unset
		fallback string
		want     string
	}{
		{name: "returns fallback when unset", key: "KANBAN_TEST_GETENV_UNSET", setVal: nil, fallback: "default", want: "default"},
		{name: "returns env value when set", key: "KANBAN_TEST_GETENV_SET", setVal: strPtr("custom"), fallback: "default", want: "custom"},
		{name: "returns fallback when empty string", key: "KANBAN_TEST_GETENV_EMPTY", setVal: strPtr(""), fallback: "default", want: "default"},
		{name: "preserves whitespace", key: "KANBAN_TEST_GETENV_WS", setVal: strPtr("  spaced  "), fallback: "x", want: "  spaced  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			assert.Equal(t, tc.want, getEnv(tc.key, tc.fallback))
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback int
		want     int
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "KANBAN_TEST_INT_UNSET", fallback: 42, want: 42},
		{name: "parses valid int", key: "KANBAN_TEST_INT_VALID", setVal: strPtr("8080"), want: 8080},
		{name: "parses negative int", key: "KANBAN_TEST_INT_NEG", setVal: strPtr("-1"), want: -1},
		{name: "parses zero", key: "KANBAN_TEST_INT_ZERO", setVal: strPtr("0"), fallback: 99, want: 0},
		{name: "returns fallback for empty string", key: "KANBAN_TEST_INT_EMPTY", setVal: strPtr(""), fallback: 25, want: 25},
		{name: "errors on non-numeric", key: "KANBAN_TEST_INT_NAN", setVal: strPtr("abc"), wantErr: true},
		{name: "errors on float", key: "KANBAN_TEST_INT_FLOAT", setVal: strPtr("3.14"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvInt(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback float64
		want     float64
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "KANBAN_TEST_FLOAT_UNSET", fallback: 2.5, want: 2.5},
		{name: "parses decimal", key: "KANBAN_TEST_FLOAT_DEC", setVal: strPtr("0.5"), want: 0.5},
		{name: "parses integer", key: "KANBAN_TEST_FLOAT_INT", setVal: strPtr("20"), want: 20},
		{name: "errors on garbage", key: "KANBAN_TEST_FLOAT_BAD", setVal: strPtr("fast"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvFloat(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback time.Duration
		want     time.Duration
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "KANBAN_TEST_DUR_UNSET", fallback: 5 * time.Second, want: 5 * time.Second},
		{name: "parses seconds", key: "KANBAN_TEST_DUR_SEC", setVal: strPtr("30s"), want: 30 * time.Second},
		{name: "parses composite", key: "KANBAN_TEST_DUR_COMP", setVal: strPtr("1h30m"), want: 90 * time.Minute},
		{name: "errors on invalid", key: "KANBAN_TEST_DUR_INV", setVal: strPtr("notaduration"), wantErr: true},
		{name: "errors on bare number", key: "KANBAN_TEST_DUR_BARE", setVal: strPtr("30"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvDuration(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("KANBAN_TEST_LIST", " http://a.test , ,http://b.test")

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvList("KANBAN_TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, getEnvList("KANBAN_TEST_LIST_UNSET", []string{"x"}))
}

// ---------------------------------------------------------------------------
// Load()
// ---------------------------------------------------------------------------

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KANBAN_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "boards", cfg.Storage.Key)
	assert.Equal(t, "data", cfg.Storage.Dir)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Empty(t, cfg.Server.WebDir)
	assert.InDelta(t, 20.0, cfg.RateLimit.RPS, 0)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KANBAN_CONFIG", "")
	t.Setenv("KANBAN_STORAGE_BACKEND", "Redis")
	t.Setenv("KANBAN_STORAGE_KEY", "team-boards")
	t.Setenv("KANBAN_REDIS_ADDR", "cache:6380")
	t.Setenv("KANBAN_REDIS_DB", "3")
	t.Setenv("KANBAN_SERVER_ADDR", ":9000")
	t.Setenv("KANBAN_SERVER_READ_TIMEOUT", "5s")
	t.Setenv("KANBAN_CORS_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("KANBAN_WEB_DIR", "/srv/web")
	t.Setenv("KANBAN_RATE_LIMIT_RPS", "2.5")
	t.Setenv("KANBAN_RATE_LIMIT_BURST", "5")
	t.Setenv("KANBAN_LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend, "backend is case-insensitive")
	assert.Equal(t, "team-boards", cfg.Storage.Key)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/srv/web", cfg.Server.WebDir)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, "text", cfg.Log.Format)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kanban.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_TOMLFile(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "postgres"
key = "prod-boards"

[database]
host = "db.internal"
port = 5433
sslmode = "require"
max_conns = 4

[server]
addr = ":7000"
write_timeout = "1m"
cors_origins = ["https://kanban.test"]
`)
	t.Setenv("KANBAN_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "prod-boards", cfg.Storage.Key)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 4, cfg.Database.MaxConns)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://kanban.test"}, cfg.Server.CORSOrigins)

	// Untouched sections keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_EnvOverridesTOML(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":7000"
`)
	t.Setenv("KANBAN_CONFIG", path)
	t.Setenv("KANBAN_SERVER_ADDR", ":7001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.Server.Addr)
}

func TestLoad_TOMLErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("KANBAN_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config.Load")
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Setenv("KANBAN_CONFIG", writeConfig(t, "[server\naddr = "))

		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoad_InvalidEnvVars(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non-numeric db port", key: "KANBAN_DB_PORT", val: "abc"},
		{name: "non-numeric max conns", key: "KANBAN_DB_MAX_CONNS", val: "many"},
		{name: "non-numeric redis db", key: "KANBAN_REDIS_DB", val: "zero"},
		{name: "bad read timeout", key: "KANBAN_SERVER_READ_TIMEOUT", val: "soon"},
		{name: "bad write timeout", key: "KANBAN_SERVER_WRITE_TIMEOUT", val: "10"},
		{name: "bad rps", key: "KANBAN_RATE_LIMIT_RPS", val: "lots"},
		{name: "bad burst", key: "KANBAN_RATE_LIMIT_BURST", val: "1.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("KANBAN_CONFIG", "")
			t.Setenv(tc.key, tc.val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_DSN_Integration(t *testing.T) {
	t.Setenv("KANBAN_CONFIG", "")
	t.Setenv("KANBAN_DB_HOST", "myhost")
	t.Setenv("KANBAN_DB_PORT", "5433")
	t.Setenv("KANBAN_DB_USER", "myuser")
	t.Setenv("KANBAN_DB_PASSWORD", "mypass")
	t.Setenv("KANBAN_DB_NAME", "mydb")
	t.Setenv("KANBAN_DB_SSLMODE", "verify-full")

	cfg, err := Load()
	require.NoError(t, err)

	want := "host=myhost port=5433 user=myuser password=mypass dbname=mydb sslmode=verify-full"
	assert.Equal(t, want, cfg.Database.DSN())
}

// ---------------------------------------------------------------------------
// DSN()
// ---------------------------------------------------------------------------

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "default dev values",
			cfg: DatabaseConfig{
				Host: "localhost", Port: 5432, User: "kanban",
				Password: "", DBName: "kanban_dev", SSLMode: "disable",
			},
			want: "host=localhost port=5432 user=kanban password= dbname=kanban_dev sslmode=disable",
		},
		{
			name: "special characters in password",
			cfg: DatabaseConfig{
				Host: "h", Port: 1, User: "u",
				Password: "p=a&b c", DBName: "d", SSLMode: "s",
			},
			want: "host=h port=1 user=u password=p=a&b c dbname=d sslmode=s",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.cfg.DSN())
		})
	}
}

// ---------------------------------------------------------------------------
// validate() direct tests
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults pass", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "sqlite" }, wantErr: "KANBAN_STORAGE_BACKEND"},
		{name: "blank key", mutate: func(c *Config) { c.Storage.Key = "  " }, wantErr: "KANBAN_STORAGE_KEY"},
		{name: "file backend needs dir", mutate: func(c *Config) { c.Storage.Dir = "" }, wantErr: "KANBAN_STORAGE_DIR"},
		{name: "memory backend ignores dir", mutate: func(c *Config) {
			c.Storage.Backend = BackendMemory
			c.Storage.Dir = ""
		}},
		{name: "postgres port out of range", mutate: func(c *Config) {
			c.Storage.Backend = BackendPostgres
			c.Database.Port = 70000
		}, wantErr: "KANBAN_DB_PORT"},
		{name: "postgres max conns zero", mutate: func(c *Config) {
			c.Storage.Backend = BackendPostgres
			c.Database.MaxConns = 0
		}, wantErr: "KANBAN_DB_MAX_CONNS"},
		{name: "db bounds ignored for other backends", mutate: func(c *Config) { c.Database.Port = 0 }},
		{name: "negative redis db", mutate: func(c *Config) { c.Redis.DB = -1 }, wantErr: "KANBAN_REDIS_DB"},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }, wantErr: "KANBAN_SERVER_READ_TIMEOUT"},
		{name: "negative write timeout", mutate: func(c *Config) { c.Server.WriteTimeout = -time.Second }, wantErr: "KANBAN_SERVER_WRITE_TIMEOUT"},
		{name: "zero rps", mutate: func(c *Config) { c.RateLimit.RPS = 0 }, wantErr: "KANBAN_RATE_LIMIT_RPS"},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }, wantErr: "KANBAN_RATE_LIMIT_BURST"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)

			err := cfg.validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func strPtr(s string) *string {
	return &s
}
