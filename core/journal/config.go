package journal

// Config holds configuration for the lifecycle journal.
type Config struct {
	// Enabled toggles journaling.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the SQLite database file. Only used by the sqlite driver.
	Path string `mapstructure:"path" default:"data/journal.db"`
	// Host is the MySQL host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the MySQL port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the MySQL user.
	User string `mapstructure:"user" default:"root"`
	// Password is the MySQL password.
	Password string `mapstructure:"password" default:""`
	// Name is the MySQL database name.
	Name string `mapstructure:"name" default:"extension_host"`
	// TimeoutSeconds bounds connection setup and I/O for MySQL.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)
