package models

type Configuration struct {
	App      AppConfiguration      `mapstructure:"app"      validate:"required"`
	Database DatabaseConfiguration `mapstructure:"database" validate:"required"`
	Cache    CacheConfiguration    `mapstructure:"cache"    validate:"required"`
	Notifier NotifierConfiguration `mapstructure:"notifier"`
	Activity ActivityConfiguration `mapstructure:"activity"`
}

type AppConfiguration struct {
	AdminEmail         string   `mapstructure:"admin_email"          validate:"required,email"`
	AdminPassword      string   `mapstructure:"admin_password"       validate:"required"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"      validate:"required"`
	JWTSecret          string   `mapstructure:"jwt_secret"           validate:"required"`
	JWTRefreshSecret   string   `mapstructure:"jwt_refresh_secret"   validate:"required"`
	AccessTokenExpiry  int      `mapstructure:"access_token_expiry"  validate:"gte=1,lte=1440"`
	RefreshTokenExpiry int      `mapstructure:"refresh_token_expiry" validate:"gte=1,lte=20160"`
	LoginMaxAttempts   int      `mapstructure:"login_max_attempts"   validate:"gte=1,lte=100"`
	LoginAttemptTTL    int      `mapstructure:"login_attempt_ttl"    validate:"gte=1,lte=86400"`
	CacheEntryTTL      int      `mapstructure:"cache_entry_ttl"      validate:"gte=1,lte=3600"`
	RequestsPerMinute  int      `mapstructure:"requests_per_minute"  validate:"gte=1"`
	LogLevel           string   `mapstructure:"log_level"            validate:"oneof=debug info warn error fatal panic"`
	Port               int      `mapstructure:"port"                 validate:"gte=80,lte=65535"`
	TrustedProxies     []string `mapstructure:"trusted_proxies"`
}

// GetAuthConfig extracts the subset of the application configuration the
// auth service and middlewares depend on.
func (a AppConfiguration) GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:          a.JWTSecret,
		JWTRefreshSecret:   a.JWTRefreshSecret,
		AccessTokenExpiry:  a.AccessTokenExpiry,
		RefreshTokenExpiry: a.RefreshTokenExpiry,
		LoginMaxAttempts:   a.LoginMaxAttempts,
		LoginAttemptTTL:    a.LoginAttemptTTL,
	}
}

type AuthConfig struct {
	JWTSecret          string
	JWTRefreshSecret   string
	AccessTokenExpiry  int
	RefreshTokenExpiry int
	LoginMaxAttempts   int
	LoginAttemptTTL    int
}

type DatabaseConfiguration struct {
	Type     string `mapstructure:"type"     validate:"required,oneof=postgres sqlite"`
	Host     string `mapstructure:"host"     validate:"required_if=Type postgres"`
	Port     int32  `mapstructure:"port"     validate:"omitempty,gte=80,lte=65535"`
	User     string `mapstructure:"user"     validate:"required_if=Type postgres"`
	Password string `mapstructure:"password" validate:"required_if=Type postgres"`
	Name     string `mapstructure:"name"     validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CacheConfiguration struct {
	Type   string                    `mapstructure:"type"   validate:"required,oneof=redis valkey"`
	Redis  *RedisCacheConfiguration  `mapstructure:"redis"  validate:"required_if=Type redis"`
	Valkey *ValkeyCacheConfiguration `mapstructure:"valkey" validate:"required_if=Type valkey"`
}

type RedisCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type ValkeyCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type NotifierConfiguration struct {
	Type       string                           `mapstructure:"type"       validate:"omitempty,oneof=smtp filesystem"`
	SMTP       *SMTPNotifierConfiguration       `mapstructure:"smtp"       validate:"required_if=Type smtp"`
	Filesystem *FilesystemNotifierConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type SMTPNotifierConfiguration struct {
	Host          string `mapstructure:"host"            validate:"required"`
	Port          int    `mapstructure:"port"            validate:"gte=1,lte=65535"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	Sender        string `mapstructure:"sender"          validate:"required,email"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
	SkipVerifyTLS bool   `mapstructure:"skip_verify_tls"`
}

type FilesystemNotifierConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type ActivityConfiguration struct {
	Type       string                           `mapstructure:"type"       validate:"omitempty,oneof=filesystem"`
	Filesystem *FilesystemActivityConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type FilesystemActivityConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}
