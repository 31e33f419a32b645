package config

import (
	"time"

	"github.com/spf13/viper"
)

// Tracer config struct for OpenTelemetry
type Tracer struct {
	Endpoint string // OTLP gRPC endpoint, tracing is off when empty

	ServiceName    string
	ServiceVersion string
	Environment    string

	SamplingRate float64 // 0.0 to 1.0

	MaxExportBatchSize int
	BatchTimeout       time.Duration
	ExportTimeout      time.Duration
}

// Observes config struct
type Observes struct {
	Tracer *Tracer
}

// getTracerConfig get tracer config with defaults
func getTracerConfig(v *viper.Viper) *Tracer {
	return &Tracer{
		Endpoint: v.GetString("observes.tracer.endpoint"),

		ServiceName:    getStringOrDefault(v, "observes.tracer.service_name", v.GetString("app_name")),
		ServiceVersion: v.GetString("observes.tracer.service_version"),
		Environment:    getStringOrDefault(v, "observes.tracer.environment", v.GetString("run_mode")),

		SamplingRate: getFloat64OrDefault(v, "observes.tracer.sampling_rate", 1.0),

		MaxExportBatchSize: getIntOrDefault(v, "observes.tracer.max_export_batch_size", 512),
		BatchTimeout:       getDurationOrDefault(v, "observes.tracer.batch_timeout", 5*time.Second),
		ExportTimeout:      getDurationOrDefault(v, "observes.tracer.export_timeout", 30*time.Second),
	}
}

// get Observes config
func getObservesConfig(v *viper.Viper) *Observes {
	return &Observes{
		Tracer: getTracerConfig(v),
	}
}
