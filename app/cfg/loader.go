package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Cache configuration
	RedisAddr       string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address for the primary cache store"`
	RedisPassword   string `long:"redis-password" env:"REDIS_PASSWORD" description:"Redis password (optional)"`
	RedisDB         int    `long:"redis-db" env:"REDIS_DB" default:"0" description:"Redis database number"`
	CachePath       string `long:"cache-path" env:"CACHE_PATH" default:"./gene-comb.db" description:"SQLite file for the fallback cache store"`
	CacheTTL        int    `long:"cache-ttl" env:"CACHE_TTL" default:"86400" description:"Cache entry validity window in seconds"`
	CacheMaxEntries int    `long:"cache-max-entries" env:"CACHE_MAX_ENTRIES" default:"10000" description:"Maximum entries kept in the fallback cache store"`

	// UniProt configuration
	UniProtURL     string `long:"uniprot-url" env:"UNIPROT_URL" default:"https://rest.uniprot.org/uniprotkb/search" description:"UniProtKB search endpoint"`
	UniProtTimeout int    `long:"uniprot-timeout" env:"UNIPROT_TIMEOUT" default:"20" description:"UniProt request timeout in seconds"`
	UniProtRetries int    `long:"uniprot-retries" env:"UNIPROT_RETRIES" default:"2" description:"UniProt fetch attempts before giving up"`
	OrganismID     int    `long:"organism-id" env:"ORGANISM_ID" default:"9606" description:"NCBI taxonomy identifier to filter entries by"`

	// SIGNOR configuration
	SignorURL     string `long:"signor-url" env:"SIGNOR_URL" default:"https://signor.uniroma2.it/getData.php" description:"SIGNOR getData endpoint"`
	SignorTimeout int    `long:"signor-timeout" env:"SIGNOR_TIMEOUT" default:"10" description:"SIGNOR request timeout in seconds"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	LinksFile         string `long:"links-file" env:"LINKS_FILE" description:"Optional YAML file overriding cross-reference link templates"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for cache refresh"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"300" description:"Scheduler interval in seconds"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Gene Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		RedisAddr:         raw.RedisAddr,
		RedisPassword:     raw.RedisPassword,
		RedisDB:           raw.RedisDB,
		CachePath:         raw.CachePath,
		CacheTTL:          time.Duration(raw.CacheTTL) * time.Second,
		CacheMaxEntries:   raw.CacheMaxEntries,
		UniProtURL:        raw.UniProtURL,
		UniProtTimeout:    time.Duration(raw.UniProtTimeout) * time.Second,
		UniProtRetries:    raw.UniProtRetries,
		OrganismID:        raw.OrganismID,
		SignorURL:         raw.SignorURL,
		SignorTimeout:     time.Duration(raw.SignorTimeout) * time.Second,
		Port:              raw.Port,
		LinksFile:         raw.LinksFile,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		APIAccessKey:      raw.APIAccessKey,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
