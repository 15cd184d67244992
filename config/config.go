package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// ContentfulConfig holds access parameters for the external content source.
// PageLimit caps a single entries page; the client pages with skip/limit
// until the reported total is exhausted.
type ContentfulConfig struct {
	BaseURL     string  `yaml:"base_url"`
	SpaceID     string  `yaml:"space_id"`
	Environment string  `yaml:"environment"`
	AccessToken string  `yaml:"access_token"`
	ContentType string  `yaml:"content_type"`
	PageLimit   int     `yaml:"page_limit"`
	Timeout     int     `yaml:"timeout"`
	RateLimit   float64 `yaml:"rate_limit"`
}

type SyncConfig struct {
	Cron string `yaml:"cron"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System     SystemConfig     `yaml:"system"`
	Web        WebConfig        `yaml:"web"`
	Database   DatabaseConfig   `yaml:"database"`
	Contentful ContentfulConfig `yaml:"contentful"`
	Sync       SyncConfig       `yaml:"sync"`
	Logger     LoggerConfig     `yaml:"logger"`
}

// DefaultAppConfig returns the built-in configuration defaults
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Appid:    "catalogd",
			Location: "UTC",
			Workdir:  "/var/catalogd",
		},
		Web: WebConfig{
			Host:   "0.0.0.0",
			Port:   1816,
			Secret: "9b6de5cc-catalogd-1816-secret",
		},
		Database: DatabaseConfig{
			Type:     "postgres",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "catalogd",
			User:     "postgres",
			Passwd:   "",
			MaxConn:  100,
			IdleConn: 10,
		},
		Contentful: ContentfulConfig{
			BaseURL:     "https://cdn.contentful.com",
			Environment: "master",
			ContentType: "product",
			PageLimit:   100,
			Timeout:     30,
			RateLimit:   5,
		},
		Sync: SyncConfig{
			Cron: "@hourly",
		},
		Logger: LoggerConfig{
			Mode:     "development",
			Filename: "/var/catalogd/catalogd.log",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults and applies
// environment overrides for credentials
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	setEnvStrValue("CATALOGD_DB_HOST", &cfg.Database.Host)
	setEnvStrValue("CATALOGD_DB_USER", &cfg.Database.User)
	setEnvStrValue("CATALOGD_DB_PWD", &cfg.Database.Passwd)
	setEnvStrValue("CATALOGD_DB_NAME", &cfg.Database.Name)
	setEnvStrValue("CATALOGD_WEB_SECRET", &cfg.Web.Secret)
	setEnvStrValue("CONTENTFUL_SPACE_ID", &cfg.Contentful.SpaceID)
	setEnvStrValue("CONTENTFUL_ACCESS_TOKEN", &cfg.Contentful.AccessToken)
	setEnvStrValue("CONTENTFUL_ENVIRONMENT", &cfg.Contentful.Environment)
	setEnvStrValue("CONTENTFUL_CONTENT_TYPE", &cfg.Contentful.ContentType)
	return cfg, nil
}

func setEnvStrValue(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
