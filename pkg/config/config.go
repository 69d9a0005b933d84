package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Backend      BackendConfig
	Board        BoardConfig
	Tickets      TicketsConfig
	PubSub       PubSubConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Board.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"KITCHENBOARD_APP_ENV" required:"true"`
	Port         string   `envconfig:"KITCHENBOARD_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"KITCHENBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"KITCHENBOARD_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"KITCHENBOARD_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"KITCHENBOARD_SERVICE_KIND" default:"board"`
}

type DBConfig struct {
	DSN    string `envconfig:"KITCHENBOARD_DB_DSN"`
	Driver string `envconfig:"KITCHENBOARD_DB_DRIVER" default:"postgres"`

	SQLitePath string `envconfig:"KITCHENBOARD_SQLITE_PATH" default:"kitchenboard.db"`

	LegacyHost     string `envconfig:"KITCHENBOARD_DB_HOST"`
	LegacyPort     int    `envconfig:"KITCHENBOARD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KITCHENBOARD_DB_USER"`
	LegacyPassword string `envconfig:"KITCHENBOARD_DB_PASSWORD"`
	LegacyName     string `envconfig:"KITCHENBOARD_DB_NAME"`
	LegacySSLMode  string `envconfig:"KITCHENBOARD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KITCHENBOARD_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"KITCHENBOARD_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"KITCHENBOARD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KITCHENBOARD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the ticket archive runs on the embedded sqlite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"KITCHENBOARD_REDIS_URL"`
	Address      string        `envconfig:"KITCHENBOARD_REDIS_ADDR"`
	Password     string        `envconfig:"KITCHENBOARD_REDIS_PASSWORD"`
	DB           int           `envconfig:"KITCHENBOARD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KITCHENBOARD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KITCHENBOARD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KITCHENBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KITCHENBOARD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KITCHENBOARD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret string `envconfig:"KITCHENBOARD_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"KITCHENBOARD_JWT_ISSUER" required:"true"`
}

// BackendConfig points at the restaurant REST API that owns orders, menus and restaurants.
type BackendConfig struct {
	BaseURL  string        `envconfig:"KITCHENBOARD_BACKEND_URL" required:"true"`
	APIToken string        `envconfig:"KITCHENBOARD_BACKEND_TOKEN"`
	Timeout  time.Duration `envconfig:"KITCHENBOARD_BACKEND_TIMEOUT" default:"10s"`
}

type BoardConfig struct {
	RefreshInterval    time.Duration `envconfig:"KITCHENBOARD_REFRESH_INTERVAL" default:"30s"`
	PrintInterval      time.Duration `envconfig:"KITCHENBOARD_PRINT_INTERVAL" default:"5s"`
	StatusInterval     time.Duration `envconfig:"KITCHENBOARD_STATUS_INTERVAL" default:"10s"`
	ModificationWindow time.Duration `envconfig:"KITCHENBOARD_MODIFICATION_WINDOW" default:"2m"`
	PrintCooldown      time.Duration `envconfig:"KITCHENBOARD_PRINT_COOLDOWN" default:"30s"`
	ConfirmedDwell     time.Duration `envconfig:"KITCHENBOARD_CONFIRMED_DWELL" default:"2m"`
	PreparingDwell     time.Duration `envconfig:"KITCHENBOARD_PREPARING_DWELL" default:"15m"`
	ReadyDwell         time.Duration `envconfig:"KITCHENBOARD_READY_DWELL" default:"5m"`
	DefaultAutoPrint   bool          `envconfig:"KITCHENBOARD_DEFAULT_AUTO_PRINT" default:"true"`
	DefaultAutoStatus  bool          `envconfig:"KITCHENBOARD_DEFAULT_AUTO_STATUS" default:"false"`
	LeaseTTL           time.Duration `envconfig:"KITCHENBOARD_LEASE_TTL" default:"45s"`
}

func (b BoardConfig) validate() error {
	intervals := map[string]time.Duration{
		EnvRefreshInterval: b.RefreshInterval,
		EnvPrintInterval:   b.PrintInterval,
		EnvStatusInterval:  b.StatusInterval,
	}
	for env, value := range intervals {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", env)
		}
	}
	return nil
}

type TicketsConfig struct {
	Retention         time.Duration `envconfig:"KITCHENBOARD_TICKET_RETENTION" default:"72h"`
	RetentionInterval time.Duration `envconfig:"KITCHENBOARD_TICKET_RETENTION_INTERVAL" default:"24h"`
	RecentLimit       int           `envconfig:"KITCHENBOARD_TICKET_RECENT_LIMIT" default:"50"`
}

// PubSubConfig names the topic printed tickets are published to for remote printer agents.
type PubSubConfig struct {
	ProjectID   string `envconfig:"KITCHENBOARD_GCP_PROJECT_ID"`
	TicketTopic string `envconfig:"KITCHENBOARD_PUBSUB_TICKET_TOPIC"`
}

// Enabled reports whether ticket publishing has been configured.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.ProjectID) != "" && strings.TrimSpace(p.TicketTopic) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"KITCHENBOARD_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"KITCHENBOARD_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DBDriverSQLite
	}
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = db.SQLitePath
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
