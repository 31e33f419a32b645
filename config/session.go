package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultSessionKey is the well-known key the session record is stored under.
const DefaultSessionKey = "userData"

// Session local session store config struct
type Session struct {
	Driver string
	Key    string
	File   *SessionFile
	Sqlite *SessionSqlite
	Redis  *SessionRedis
}

// SessionFile file backend config struct
type SessionFile struct {
	Path string
}

// SessionSqlite sqlite backend config struct
type SessionSqlite struct {
	Source string
}

// SessionRedis redis backend config struct
type SessionRedis struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// getSessionConfig returns the session store config.
func getSessionConfig(v *viper.Viper) *Session {
	return &Session{
		Driver: getStringOrDefault(v, "session.driver", "file"),
		Key:    getStringOrDefault(v, "session.key", DefaultSessionKey),
		File: &SessionFile{
			Path: getStringOrDefault(v, "session.file.path", defaultStatePath("session.json")),
		},
		Sqlite: &SessionSqlite{
			Source: getStringOrDefault(v, "session.sqlite.source", defaultStatePath("session.db")),
		},
		Redis: &SessionRedis{
			Addr:     getStringOrDefault(v, "session.redis.addr", "127.0.0.1:6379"),
			Username: v.GetString("session.redis.username"),
			Password: v.GetString("session.redis.password"),
			DB:       v.GetInt("session.redis.db"),
			Prefix:   getStringOrDefault(v, "session.redis.prefix", "taskmate:"),
		},
	}
}

// defaultStatePath places local state under $HOME/.taskmate, falling back to the
// working directory when no home is available.
func defaultStatePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".taskmate", name)
	}
	return filepath.Join(home, ".taskmate", name)
}
