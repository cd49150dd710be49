package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every environment variable recognized by the service.
// DEFAULT_*_TIME values are stored in the environment as milliseconds; they
// are converted to time.Duration once here so the rest of the codebase
// never has to think about the unit again.
type Config struct {
	DebugMode         bool   `mapstructure:"DEBUG_MODE"`
	Port              string `mapstructure:"PORT"`
	EnableOriginCheck bool   `mapstructure:"ENABLE_ORIGIN_CHECK"`
	AcceptableOrigins string `mapstructure:"ACCEPTABLE_ORIGINS"`

	DefaultBeforePickupTimeMs     int `mapstructure:"DEFAULT_BEFORE_PICKUP_TIME"`
	DefaultAfterPickupTimeMs      int `mapstructure:"DEFAULT_AFTER_PICKUP_TIME"`
	DefaultDropoffUnloadingTimeMs int `mapstructure:"DEFAULT_DROPOFF_UNLOADING_TIME"`

	GoogleAPIToken string `mapstructure:"GOOGLE_API_TOKEN"`

	EnableCache        bool   `mapstructure:"ENABLE_CACHE"`
	CacheType          string `mapstructure:"CACHE_TYPE"`
	CacheMemCapacity   int    `mapstructure:"CACHE_MEM_CAPACITY"`
	CacheTTLMs         int    `mapstructure:"CACHE_TTL"`
	CacheMongoURI      string `mapstructure:"CACHE_MONGODB_URI"`
	CacheMongoDB       string `mapstructure:"CACHE_MONGODB_DB"`
	CacheMongoColl     string `mapstructure:"CACHE_MONGODB_COLLECTION"`

	TaskTTLSec       int    `mapstructure:"TASK_TTL"`
	TaskMongoURI     string `mapstructure:"TASK_MONGODB_URI"`
	TaskMongoDB      string `mapstructure:"TASK_MONGODB_DB"`
	TaskMongoColl    string `mapstructure:"TASK_MONGODB_COLLECTION"`
	TaskReclaimAfterSec int `mapstructure:"TASK_RECLAIM_AFTER"`

	ProcessorThreadNumber int `mapstructure:"PROCESSOR_THREAD_NUMBER"`
	ProcessorBatchSize    int `mapstructure:"PROCESSOR_BATCH_SIZE"`
	ProcessorIntervalMs   int `mapstructure:"PROCESSOR_INTERVAL"`
}

var AppConfig Config

// LoadConfig loads .env (if present, for local development convenience),
// then viper defaults/environment, following the teacher's LoadConfig shape.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment only")
	}

	viper.AutomaticEnv()

	viper.SetDefault("DEBUG_MODE", false)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENABLE_ORIGIN_CHECK", false)
	viper.SetDefault("ACCEPTABLE_ORIGINS", "")

	viper.SetDefault("DEFAULT_BEFORE_PICKUP_TIME", 15*60*1000)
	viper.SetDefault("DEFAULT_AFTER_PICKUP_TIME", 30*60*1000)
	viper.SetDefault("DEFAULT_DROPOFF_UNLOADING_TIME", 2*60*1000)

	viper.SetDefault("GOOGLE_API_TOKEN", "")

	viper.SetDefault("ENABLE_CACHE", true)
	viper.SetDefault("CACHE_TYPE", "memory")
	viper.SetDefault("CACHE_MEM_CAPACITY", 1000)
	viper.SetDefault("CACHE_TTL", 15*60*1000)
	viper.SetDefault("CACHE_MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("CACHE_MONGODB_DB", "shuttlesched")
	viper.SetDefault("CACHE_MONGODB_COLLECTION", "directions_cache")

	viper.SetDefault("TASK_TTL", 86400)
	viper.SetDefault("TASK_MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("TASK_MONGODB_DB", "shuttlesched")
	viper.SetDefault("TASK_MONGODB_COLLECTION", "tasks")
	viper.SetDefault("TASK_RECLAIM_AFTER", 300)

	viper.SetDefault("PROCESSOR_THREAD_NUMBER", 4)
	viper.SetDefault("PROCESSOR_BATCH_SIZE", 10)
	viper.SetDefault("PROCESSOR_INTERVAL", 5000)

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
}

// BeforePickup is the default early-arrival margin for outgoing trips.
func (c Config) BeforePickup() time.Duration {
	return time.Duration(c.DefaultBeforePickupTimeMs) * time.Millisecond
}

// AfterPickup is the default late-arrival tolerance for last-leg trips.
func (c Config) AfterPickup() time.Duration {
	return time.Duration(c.DefaultAfterPickupTimeMs) * time.Millisecond
}

// DropoffUnloading is the default time a drop-off occupies before a vehicle
// is free for its next trip.
func (c Config) DropoffUnloading() time.Duration {
	return time.Duration(c.DefaultDropoffUnloadingTimeMs) * time.Millisecond
}

// CacheTTL is the cache entry lifetime; zero means never expire.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMs) * time.Millisecond
}

// TaskTTL is the TTL-index lifetime applied to a task's updatedAt.
func (c Config) TaskTTL() time.Duration {
	return time.Duration(c.TaskTTLSec) * time.Second
}

// ProcessorInterval is the dispatcher's fixed polling interval.
func (c Config) ProcessorInterval() time.Duration {
	return time.Duration(c.ProcessorIntervalMs) * time.Millisecond
}

// TaskReclaimAfter is how long a task may sit in PROCESSING before the
// dispatcher's liveness sweep resets it back to PENDING.
func (c Config) TaskReclaimAfter() time.Duration {
	return time.Duration(c.TaskReclaimAfterSec) * time.Second
}

// AllowedOrigins splits ACCEPTABLE_ORIGINS into a slice.
func (c Config) AllowedOrigins() []string {
	if c.AcceptableOrigins == "" {
		return nil
	}
	parts := strings.Split(c.AcceptableOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func IsProduction() bool {
	return !AppConfig.DebugMode
}
