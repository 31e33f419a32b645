package config

import (
	"time"

	"github.com/spf13/viper"
)

// Stub local development API config struct
type Stub struct {
	Addr        string
	JWTSecret   string
	TokenExpire time.Duration
	Admin       *StubAdmin
}

// StubAdmin is the account seeded at stub startup. An empty mobile seeds nothing.
type StubAdmin struct {
	Name     string
	Mobile   string
	Password string
}

// getStubConfig returns the stub api config.
func getStubConfig(v *viper.Viper) *Stub {
	return &Stub{
		Addr:        getStringOrDefault(v, "stub.addr", "127.0.0.1:5000"),
		JWTSecret:   getStringOrDefault(v, "stub.jwt_secret", "taskmate-dev-secret"),
		TokenExpire: getDurationOrDefault(v, "stub.token_expire", 24*time.Hour),
		Admin: &StubAdmin{
			Name:     getStringOrDefault(v, "stub.admin.name", "Admin"),
			Mobile:   getStringOrDefault(v, "stub.admin.mobile", "9999999999"),
			Password: getStringOrDefault(v, "stub.admin.password", "admin123"),
		},
	}
}
