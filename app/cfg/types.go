package cfg

import "time"

type Cfg struct {
	// Cache configuration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CachePath       string
	CacheTTL        time.Duration
	CacheMaxEntries int

	// UniProt configuration
	UniProtURL     string
	UniProtTimeout time.Duration
	UniProtRetries int
	OrganismID     int

	// SIGNOR configuration
	SignorURL     string
	SignorTimeout time.Duration

	// Application configuration
	Port              string
	LinksFile         string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
