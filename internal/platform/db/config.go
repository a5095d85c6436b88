package db

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"INOPNC-backend/internal/laborhours"
)

const (
	ModeDev     = "dev"
	ModeRelease = "release"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// PayrollConfig: 作業者ごとの単価が未設定のときに使う既定値（원/時間）
type PayrollConfig struct {
	DefaultHourlyRate   float64 `yaml:"default_hourly_rate"`
	DefaultOvertimeRate float64 `yaml:"default_overtime_rate"`
}

type Config struct {
	Version     string           `yaml:"version"`
	Mode        string           `yaml:"mode"`
	DB          DatabaseConfig   `yaml:"database"`
	Certificate Certs            `yaml:"certificate"`
	Auth        AuthConfig       `yaml:"auth"`
	Payroll     PayrollConfig    `yaml:"payroll"`
	Holidays    map[int][]string `yaml:"holidays"`
}

// 2025年の공휴일（대체공휴일・임시공휴일含む）。YAML に holidays が無いときだけ使う
var defaultHolidays = map[int][]string{
	2025: {
		"2025-01-01", "2025-01-27", "2025-01-28", "2025-01-29", "2025-01-30",
		"2025-03-01", "2025-03-03", "2025-05-05", "2025-05-06", "2025-06-03",
		"2025-06-06", "2025-08-15", "2025-10-03", "2025-10-05", "2025-10-06",
		"2025-10-07", "2025-10-08", "2025-10-09", "2025-12-25",
	},
}

func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込み失敗: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルのパース失敗: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDev
	}
	if c.DB.Port == 0 {
		c.DB.Port = 3306
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 24
	}
	if len(c.Holidays) == 0 {
		c.Holidays = defaultHolidays
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("mode は %q か %q: %q", ModeDev, ModeRelease, c.Mode)
	}
	if c.Mode == ModeRelease && c.Auth.JWTSecret == "" {
		return errors.New("release では auth.jwt_secret が必須")
	}
	if c.Payroll.DefaultHourlyRate < 0 || c.Payroll.DefaultOvertimeRate < 0 {
		return errors.New("payroll の既定単価は 0 以上")
	}
	return nil
}

// JWTSecret: dev で未設定なら固定の開発用キー
func (c *Config) JWTSecret() []byte {
	if c.Auth.JWTSecret == "" {
		return []byte("inopnc-dev-secret")
	}
	return []byte(c.Auth.JWTSecret)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func (c *Config) HolidayCalendar() *laborhours.HolidayCalendar {
	return laborhours.NewHolidayCalendar(c.Holidays)
}
