package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// Commerce API shapes. SearchDetail needs a second call to fetch the
	// full order by internal id; SearchEmbedded gets it from the search
	// response directly.
	ShapeSearchDetail   = "search_detail"
	ShapeSearchEmbedded = "search_embedded"

	// Shipping lookup modes.
	ModeEnrichment = "enrichment"
	ModeSoleSource = "sole_source"
)

type Config struct {
	HTTPAddr    string `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
	SwaggerPath string `yaml:"swagger_path" env:"SWAGGER_PATH"`

	APIKey             string   `yaml:"api_key" env:"API_KEY" env-default:"change-me"`
	OrderIDRegex       string   `yaml:"order_id_regex" env:"ORDER_ID_REGEX" env-default:"^\\d{4,6}$"`
	EnforceIPAllowlist bool     `yaml:"enforce_ip_allowlist" env:"ENFORCE_IP_ALLOWLIST" env-default:"true"`
	AllowedProxyIPs    []string `yaml:"allowed_proxy_ips" env:"ALLOWED_PROXY_IPS" env-default:"34.228.46.223,34.230.166.144"`
	SupportContact     string   `yaml:"support_contact" env:"SUPPORT_CONTACT" env-default:"support"`

	Commerce CommerceConfig `yaml:"commerce"`
	Shipping ShippingConfig `yaml:"shipping"`
}

type CommerceConfig struct {
	Enable    bool   `yaml:"enable" env:"C7_ENABLE" env-default:"true"`
	BaseURL   string `yaml:"base_url" env:"C7_BASE_URL" env-default:"https://api.commerce7.com/v1"`
	AppID     string `yaml:"app_id" env:"C7_APP_ID"`
	AppSecret string `yaml:"app_secret" env:"C7_APP_SECRET"`
	Tenant    string `yaml:"tenant" env:"C7_TENANT"`
	TimeoutS  int    `yaml:"timeout_s" env:"C7_TIMEOUT_S" env-default:"3"`
	Shape     string `yaml:"shape" env:"C7_API_SHAPE" env-default:"search_detail"`
}

type ShippingConfig struct {
	Enable     bool   `yaml:"enable" env:"WS_ENABLE" env-default:"false"`
	Mode       string `yaml:"mode" env:"WS_MODE" env-default:"enrichment"`
	BaseURL    string `yaml:"base_url" env:"WS_BASE_URL" env-default:"https://developer.wineshipping.com/api/v3.1"`
	APIKey     string `yaml:"api_key" env:"WS_API_KEY"`
	UserKey    string `yaml:"user_key" env:"WS_USER_KEY"`
	Password   string `yaml:"password" env:"WS_PASSWORD"`
	CustomerNo string `yaml:"customer_no" env:"WS_CUSTOMER_NO"`
	TimeoutS   int    `yaml:"timeout_s" env:"WS_TIMEOUT_S" env-default:"3"`
}

// Load reads configuration once at startup. When filename is non-empty the
// YAML file is read first and env variables override it; otherwise env only.
func Load(filename string) (*Config, error) {
	var cfg Config
	if filename != "" {
		if _, err := os.Stat(filename); err != nil {
			return nil, fmt.Errorf("config file not found: %s", filename)
		}
		if err := cleanenv.ReadConfig(filename, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env variables: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Commerce.Shape {
	case ShapeSearchDetail, ShapeSearchEmbedded:
	default:
		return fmt.Errorf("unknown commerce shape: %q", c.Commerce.Shape)
	}
	switch c.Shipping.Mode {
	case ModeEnrichment, ModeSoleSource:
	default:
		return fmt.Errorf("unknown shipping mode: %q", c.Shipping.Mode)
	}
	if !c.Commerce.Enable && c.Shipping.Mode != ModeSoleSource {
		return fmt.Errorf("commerce disabled requires shipping mode %q", ModeSoleSource)
	}
	// The two shipping modes are alternate deployments, never combined:
	// sole-source exists only for installations without a commerce system.
	if c.Commerce.Enable && c.Shipping.Mode == ModeSoleSource {
		return fmt.Errorf("shipping mode %q requires commerce to be disabled", ModeSoleSource)
	}
	if c.Shipping.Mode == ModeSoleSource && !c.Shipping.Enable {
		return fmt.Errorf("shipping mode %q requires WS_ENABLE", ModeSoleSource)
	}
	for i, ip := range c.AllowedProxyIPs {
		c.AllowedProxyIPs[i] = strings.TrimSpace(ip)
	}
	return nil
}
