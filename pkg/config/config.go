package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	DB          DBConfig
	JWT         JWTConfig
	HTTP        HTTPConfig
	Storage     StorageConfig
	Redis       RedisConfig
	Maintenance MaintenanceConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	PublicURL   string // base para los enlaces públicos de cotizaciones, ej: https://loja.exemplo.com
	LogLevel    string
	CORSOrigins string // orígenes permitidos, separados por coma
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	// ForceIPv4 resuelve el host solo a direcciones IPv4 (redes sin salida IPv6).
	ForceIPv4 bool
	// DNSResolver "host:port" del DNS usado con ForceIPv4; vacío usa el del sistema.
	DNSResolver string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig almacenamiento de imágenes de producto (S3/MinIO).
type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string // si está vacío: <endpoint>/<bucket>/<clave>
}

// Enabled indica si hay un endpoint configurado.
func (c StorageConfig) Enabled() bool { return c.Endpoint != "" }

// RedisConfig caché de configuración (opcional).
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	SettingsTTL time.Duration
}

// MaintenanceConfig tareas programadas.
type MaintenanceConfig struct {
	OrphanSweepCron string        // vacío = deshabilitado
	OrphanGrace     time.Duration // antigüedad mínima de un archivo huérfano antes de borrarlo
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	// .env al entorno del proceso; si no existe se ignora
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "orcamentos-api"),
			PublicURL:   strings.TrimRight(getString(v, "APP_PUBLIC_URL", "http://localhost:8080"), "/"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "orcamentos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    int32(getInt(v, "DB_MAX_CONNS", 10)),
			MinConns:    int32(getInt(v, "DB_MIN_CONNS", 1)),
			ForceIPv4:   getBool(v, "DB_FORCE_IPV4", false),
			DNSResolver: getString(v, "DB_DNS_RESOLVER", ""),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "orcamentos-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Endpoint:      getString(v, "STORAGE_ENDPOINT", ""),
			AccessKey:     getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey:     getString(v, "STORAGE_SECRET_KEY", ""),
			Bucket:        getString(v, "STORAGE_BUCKET", "product-images"),
			UseSSL:        getBool(v, "STORAGE_USE_SSL", false),
			PublicBaseURL: strings.TrimRight(getString(v, "STORAGE_PUBLIC_BASE_URL", ""), "/"),
		},
		Redis: RedisConfig{
			Addr:        getString(v, "REDIS_ADDR", ""),
			Password:    getString(v, "REDIS_PASSWORD", ""),
			DB:          getInt(v, "REDIS_DB", 0),
			SettingsTTL: time.Duration(getInt(v, "REDIS_SETTINGS_TTL_SECONDS", 600)) * time.Second,
		},
		Maintenance: MaintenanceConfig{
			OrphanSweepCron: getString(v, "ORPHAN_SWEEP_CRON", ""),
			OrphanGrace:     time.Duration(getInt(v, "ORPHAN_GRACE_MINUTES", 60)) * time.Minute,
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en production")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
