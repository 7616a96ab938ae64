package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/angas/cheapslots-go/calc"
	"github.com/angas/cheapslots-go/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var Providers = []string{"repono", "elprisetjustnu", "nordpool", "tibber"}

type AppConfigEnergyPrice struct {
	Provider    string   `mapstructure:"provider"`     // Primary provider, one of Providers
	Fallbacks   []string `mapstructure:"fallbacks"`    // Tried in order when the primary is unavailable
	EndpointURL string   `mapstructure:"endpoint_url"` // Price API url, only used by "repono"
	Area        string   `mapstructure:"area"`         // "DK1", "DK2", "SE3" etc., used by elprisetjustnu and nordpool
	Currency    string   `mapstructure:"currency"`     // "DKK", "SEK", "EUR"
	// Quotes priced at or above the threshold (per kWh) are never part of a window
	Threshold string `mapstructure:"threshold"`
	// Added to spot prices from providers that only publish market prices
	Surcharge string `mapstructure:"surcharge"`
	// VAT fraction applied to spot prices together with the surcharge, i.e. 0.25 for 25%
	Vat string `mapstructure:"vat"`
	// Also fetch this many following days, 0 means today only
	DaysAhead      int `mapstructure:"days_ahead"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (e AppConfigEnergyPrice) GetThreshold() decimal.Decimal {
	return decimal.RequireFromString(e.Threshold)
}

func (e AppConfigEnergyPrice) GetAdjuster() calc.PriceAdjuster {
	return calc.PriceAdjuster{
		Surcharge: decimal.RequireFromString(e.Surcharge),
		Vat:       decimal.RequireFromString(e.Vat),
	}
}

func (e AppConfigEnergyPrice) GetTimeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

type AppConfigSlack struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

type AppConfigMqtt struct {
	Broker   string // Empty disables MQTT
	Port     int16
	Username string
	Password string
	ClientID string `mapstructure:"client_id"`
	Topic    string
	Qos      byte
	Retain   bool
}

type AppConfigTibber struct {
	ApiToken string `mapstructure:"api_token"`
	HomeId   string `mapstructure:"home_id"`
}

type AppConfigDatabase struct {
	// Empty runs without a database, no log table and no delivery ledger
	Path string
}

type AppConfigDisplay struct {
	// Timezone used in messages, default: UTC
	Timezone *string `mapstructure:"timezone"`
	// Echo the message to stdout, default: true
	Console *bool `mapstructure:"console"`
}

func (d AppConfigDisplay) GetTimezone() string {
	if d.Timezone == nil {
		return "UTC"
	}
	return *d.Timezone
}

func (d AppConfigDisplay) GetConsole() bool {
	if d.Console == nil {
		return true
	}
	return *d.Console
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	return logging.FormatFromString(l.DbAttrsFormat)
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	EnergyPrice AppConfigEnergyPrice `mapstructure:"energy_price"`
	Slack       AppConfigSlack       `mapstructure:"slack"`
	Mqtt        AppConfigMqtt        `mapstructure:"mqtt"`
	Tibber      AppConfigTibber      `mapstructure:"tibber"`
	Database    AppConfigDatabase    `mapstructure:"database"`
	Display     AppConfigDisplay     `mapstructure:"display"`
	Logging     AppConfigLogging     `mapstructure:"logging"`
}

// Endpoints are the two urls the pipeline talks to.
type Endpoints struct {
	EndpointURL string
	WebhookURL  string
}

func (c *AppConfig) Endpoints() Endpoints {
	return Endpoints{EndpointURL: c.EnergyPrice.EndpointURL, WebhookURL: c.Slack.WebhookURL}
}

var defaults = map[string]any{
	"energy_price.provider":        "repono",
	"energy_price.fallbacks":       []string{},
	"energy_price.endpoint_url":    "https://elpriser.repono.dk/api/energy-prices",
	"energy_price.area":            "DK1",
	"energy_price.currency":        "DKK",
	"energy_price.threshold":       "2",
	"energy_price.surcharge":       "0",
	"energy_price.vat":             "0",
	"energy_price.days_ahead":      0,
	"energy_price.timeout_seconds": 30,
	"slack.webhook_url":            "",
	"mqtt.broker":                  "",
	"mqtt.port":                    1883,
	"mqtt.username":                "",
	"mqtt.password":                "",
	"mqtt.client_id":               "cheapslots",
	"mqtt.topic":                   "cheapslots/windows",
	"mqtt.qos":                     1,
	"mqtt.retain":                  true,
	"tibber.api_token":             "",
	"tibber.home_id":               "",
	"database.path":                "",
}

// Optional keys, nil unless set in the file or the environment.
var optional = []string{
	"display.timezone",
	"display.console",
	"logging.db_level",
	"logging.db_attrs_format",
	"logging.db_max_entries",
	"logging.console_level",
}

// Load reads the config file at path, or config/config.yaml when path is
// empty. Without an explicit path a missing file is fine and configuration
// comes from defaults and the environment, e.g. SLACK_WEBHOOK_URL.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range optional {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}

// Validate checks the values the getters and the pipeline rely on.
func (c *AppConfig) Validate() error {
	var errs []error
	ep := c.EnergyPrice

	for _, name := range append([]string{ep.Provider}, ep.Fallbacks...) {
		if !slices.Contains(Providers, name) {
			errs = append(errs, fmt.Errorf("energy_price: unknown provider %q, expected one of %s", name, strings.Join(Providers, ", ")))
		}
		if name == "tibber" && (c.Tibber.ApiToken == "" || c.Tibber.HomeId == "") {
			errs = append(errs, fmt.Errorf("tibber: api_token and home_id are required"))
		}
		if (name == "elprisetjustnu" || name == "nordpool") && ep.Area == "" {
			errs = append(errs, fmt.Errorf("energy_price.area is required by %s", name))
		}
	}

	for key, value := range map[string]string{"threshold": ep.Threshold, "surcharge": ep.Surcharge, "vat": ep.Vat} {
		if _, err := decimal.NewFromString(value); err != nil {
			errs = append(errs, fmt.Errorf("energy_price.%s: %q is not a number", key, value))
		}
	}
	if vat, err := decimal.NewFromString(ep.Vat); err == nil && vat.IsNegative() {
		errs = append(errs, fmt.Errorf("energy_price.vat must not be negative"))
	}
	if ep.DaysAhead < 0 {
		errs = append(errs, fmt.Errorf("energy_price.days_ahead must not be negative"))
	}
	if ep.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("energy_price.timeout_seconds must be positive"))
	}
	if c.Mqtt.Broker != "" && c.Mqtt.Topic == "" {
		errs = append(errs, fmt.Errorf("mqtt.topic is required when mqtt.broker is set"))
	}
	if c.Mqtt.Qos > 2 {
		errs = append(errs, fmt.Errorf("mqtt.qos must be 0, 1 or 2"))
	}
	if _, err := time.LoadLocation(c.Display.GetTimezone()); err != nil {
		errs = append(errs, fmt.Errorf("display.timezone: %w", err))
	}

	return errors.Join(errs...)
}
