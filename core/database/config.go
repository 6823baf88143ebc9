package database

// Config holds configuration for the database connection pool.
type Config struct {
	// Driver is the database driver (postgres, mysql).
	Driver string `mapstructure:"driver" default:"postgres"`
	// URL is a full connection string. When set it takes precedence over the
	// individual fields below.
	URL string `mapstructure:"url" default:""`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"5432"`
	// User is the database user.
	User string `mapstructure:"user" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"filevault"`
	// SSLMode is passed through to postgres.
	SSLMode string `mapstructure:"sslmode" default:"disable"`
	// MaxOpenConns caps simultaneous connections drawn from the pool.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"10"`
	// MaxIdleConns is the number of idle connections kept for reuse.
	MaxIdleConns int `mapstructure:"max_idle_conns" default:"5"`
	// ConnMaxLifetimeSeconds recycles connections older than this.
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds" default:"3600"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)
