package config

import (
	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level           int
	Format          string
	Output          string
	OutputFile      string
	Desensitization *Desensitization
}

// Desensitization holds desensitization settings
type Desensitization struct {
	Enabled         bool
	SensitiveFields []string
	MaskChar        string
	FixedMaskLength int
}

// Default sensitive field patterns
var defaultSensitiveFields = []string{
	"password", "confirm_password", "passwd",
	"token", "jwttoken", "authorization",
	"secret", "api_key",
}

// getLoggerConfig returns the logger config; level defaults to warn (3).
func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:           getIntOrDefault(v, "logger.level", 3),
		Format:          getStringOrDefault(v, "logger.format", "text"),
		Output:          getStringOrDefault(v, "logger.output", "stderr"),
		OutputFile:      v.GetString("logger.output_file"),
		Desensitization: getDesensitizationConfig(v),
	}
}

// getDesensitizationConfig reads and returns desensitization configuration
func getDesensitizationConfig(v *viper.Viper) *Desensitization {
	cfg := &Desensitization{
		Enabled:         getBoolOrDefault(v, "logger.desensitization.enabled", true),
		SensitiveFields: v.GetStringSlice("logger.desensitization.sensitive_fields"),
		MaskChar:        getStringOrDefault(v, "logger.desensitization.mask_char", "*"),
		FixedMaskLength: getIntOrDefault(v, "logger.desensitization.fixed_mask_length", 6),
	}
	if len(cfg.SensitiveFields) == 0 {
		cfg.SensitiveFields = defaultSensitiveFields
	}
	return cfg
}
