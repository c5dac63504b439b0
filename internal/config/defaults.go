package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values used when neither the config file nor the environment
// provides one.
const (
	defaultServerAddress      = ":8080"
	defaultServerReadTimeout  = 30 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerIdleTimeout  = 60 * time.Second

	defaultOutputDir  = "./public/sitemaps"
	defaultMaxEntries = 50000
	defaultMaxBytes   = 50 * 1024 * 1024
	defaultChangeFreq = "daily"
	defaultPriority   = "0.5"

	defaultDatabasePort    = "5432"
	defaultDatabaseSSLMode = "disable"
	defaultSourcesTable    = "sitemap_urls"
)

// setDefaults registers defaults on the global viper instance. It must
// run after AutomaticEnv so environment variables take precedence.
func setDefaults() {
	viper.SetDefault("app.name", "gositemap")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")

	viper.SetDefault("server.address", defaultServerAddress)
	viper.SetDefault("server.read_timeout", defaultServerReadTimeout)
	viper.SetDefault("server.write_timeout", defaultServerWriteTimeout)
	viper.SetDefault("server.idle_timeout", defaultServerIdleTimeout)

	viper.SetDefault("sitemap.output_dir", defaultOutputDir)
	viper.SetDefault("sitemap.max_entries", defaultMaxEntries)
	viper.SetDefault("sitemap.max_bytes", defaultMaxBytes)
	viper.SetDefault("sitemap.default_changefreq", defaultChangeFreq)
	viper.SetDefault("sitemap.default_priority", defaultPriority)

	viper.SetDefault("database.port", defaultDatabasePort)
	viper.SetDefault("database.sslmode", defaultDatabaseSSLMode)

	viper.SetDefault("sources.postgres.enabled", false)
	viper.SetDefault("sources.postgres.table", defaultSourcesTable)

	viper.SetDefault("schedule.enabled", false)
}
