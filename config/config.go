package config

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	StorageDriverFile     = "file"
	StorageDriverSQLite   = "sqlite"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Booking BookingConfig
	Catalog []ServiceConfig
}

type AppConfig struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin string
}

// StorageConfig selects where the appointment slot lives.
type StorageConfig struct {
	Driver     string
	SlotKey    string
	FileDir    string
	SQLitePath string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type BookingConfig struct {
	CurrencyPrefix string
	CloseDelay     time.Duration
	MessageTimeout time.Duration
	CatalogFile    string
}

// ServiceConfig is one bookable service. Price is kept as a string so the
// catalog repository can parse it with decimal precision.
type ServiceConfig struct {
	Name            string `mapstructure:"name"`
	Description     string `mapstructure:"description"`
	Price           string `mapstructure:"price"`
	DurationMinutes int    `mapstructure:"duration_minutes"`
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(afero.NewOsFs(), ".env")
}

// LoadConfigFrom reads configuration from envFile on fs, falling back to
// environment variables and defaults when the file does not exist.
func LoadConfigFrom(fs afero.Fs, envFile string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)
	v.AutomaticEnv()

	exists, err := afero.Exists(fs, envFile)
	if err != nil {
		return nil, fmt.Errorf("check config file %s: %w", envFile, err)
	}
	if exists {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", envFile, err)
		}
	}

	closeDelay, err := time.ParseDuration(v.GetString("BOOKING_CLOSE_DELAY"))
	if err != nil {
		closeDelay = 2 * time.Second
	}

	messageTimeout, err := time.ParseDuration(v.GetString("BOOKING_MESSAGE_TIMEOUT"))
	if err != nil {
		messageTimeout = 5 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:            v.GetString("APP_PORT"),
			Env:             v.GetString("APP_ENV"),
			LogLevel:        v.GetString("LOG_LEVEL"),
			CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		},
		Storage: StorageConfig{
			Driver:     v.GetString("STORAGE_DRIVER"),
			SlotKey:    v.GetString("STORAGE_SLOT_KEY"),
			FileDir:    v.GetString("STORAGE_FILE_DIR"),
			SQLitePath: v.GetString("STORAGE_SQLITE_PATH"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Booking: BookingConfig{
			CurrencyPrefix: v.GetString("BOOKING_CURRENCY_PREFIX"),
			CloseDelay:     closeDelay,
			MessageTimeout: messageTimeout,
			CatalogFile:    v.GetString("SERVICE_CATALOG_FILE"),
		},
	}

	switch config.Storage.Driver {
	case StorageDriverFile, StorageDriverSQLite, StorageDriverRedis, StorageDriverPostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", config.Storage.Driver)
	}

	catalog, err := loadCatalog(fs, config.Booking.CatalogFile)
	if err != nil {
		return nil, err
	}
	config.Catalog = catalog

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")

	v.SetDefault("STORAGE_DRIVER", StorageDriverFile)
	v.SetDefault("STORAGE_SLOT_KEY", "salonAppointments")
	v.SetDefault("STORAGE_FILE_DIR", "data")
	v.SetDefault("STORAGE_SQLITE_PATH", "data/salon.db")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("BOOKING_CURRENCY_PREFIX", "$")
	v.SetDefault("BOOKING_CLOSE_DELAY", "2s")
	v.SetDefault("BOOKING_MESSAGE_TIMEOUT", "5s")
}

// loadCatalog reads the services list from a YAML file. An empty path means the
// built-in catalog.
func loadCatalog(fs afero.Fs, path string) ([]ServiceConfig, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read service catalog %s: %w", path, err)
	}

	var services []ServiceConfig
	if err := v.UnmarshalKey("services", &services); err != nil {
		return nil, fmt.Errorf("decode service catalog %s: %w", path, err)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("service catalog %s has no services", path)
	}

	return services, nil
}

func DefaultCatalog() []ServiceConfig {
	return []ServiceConfig{
		{Name: "Haircut & Style", Description: "Wash, cut and blow-dry styling", Price: "45.00", DurationMinutes: 60},
		{Name: "Hair Coloring", Description: "Full color, highlights or balayage", Price: "85.00", DurationMinutes: 120},
		{Name: "Manicure", Description: "Nail shaping, cuticle care and polish", Price: "30.00", DurationMinutes: 45},
		{Name: "Pedicure", Description: "Foot soak, exfoliation and polish", Price: "40.00", DurationMinutes: 60},
		{Name: "Facial Treatment", Description: "Deep cleansing facial with mask", Price: "65.00", DurationMinutes: 60},
		{Name: "Massage Therapy", Description: "Relaxing full body massage", Price: "90.00", DurationMinutes: 90},
	}
}
