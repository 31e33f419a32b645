// Package config loads taskmate configuration with Viper.
//
// Configuration is read from config.yaml (searched in $HOME/.taskmate, the working
// directory and the executable directory) or from the file given with --conf.
// A missing default file is not an error: every key has a default. Environment
// variables prefixed with TASKMATE_ override file values:
//
//	TASKMATE_API_BASE_URL=https://tasks.example.com taskmate task list
//
// Example YAML:
//
//	app_name: taskmate
//	api:
//	  base_url: https://tasks.example.com
//	  timeout: 10s
//	  breaker:
//	    enabled: true
//	    failure_ratio: 0.6
//	session:
//	  driver: sqlite
//	  sqlite:
//	    source: /var/lib/taskmate/session.db
//	logger:
//	  level: 4
//	  format: json
//	observes:
//	  tracer:
//	    endpoint: localhost:4317
//
// Hot reload is available through Watch:
//
//	config.Watch(func(cfg *config.Config) {
//	    logger.SetLevel(cfg.Logger.Level)
//	})
package config
