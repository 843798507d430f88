package commands

import (
	"playerbase/lib/configutil"
	"playerbase/lib/scrapers/wikipedia"
	"playerbase/lib/sqliteutil"
	"playerbase/services/clubs"
	"time"
)

type ScrapeConfig struct {
	DelayMs   int    `json:"delay_ms"`
	UserAgent string `json:"user_agent"`
	TimeoutMs int    `json:"timeout_ms"`
	// when set, every fetched page is written here
	DumpDir string `json:"dump_dir"`
}

func (c ScrapeConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

func (c ScrapeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type ClubsConfig struct {
	Threshold float64 `json:"threshold"`
}

type ReportConfig struct {
	Club string `json:"club"`
}

type Config struct {
	// a sqlite file path (may start with <dev_state>), ":memory:" or a libsql url
	Database  string       `json:"database"`
	AuthToken string       `json:"auth_token"`
	CsvPath   string       `json:"csv_path"`
	UrlsPath  string       `json:"urls_path"`
	Scrape    ScrapeConfig `json:"scrape"`
	Clubs     ClubsConfig  `json:"clubs"`
	Report    ReportConfig `json:"report"`
}

func (c Config) DatabaseConfig() sqliteutil.Config {
	return sqliteutil.Config{
		File:      c.Database,
		AuthToken: c.AuthToken,
	}
}

var defaultConfig = Config{
	Database: "players.db",
	CsvPath:  "data/playersData.csv",
	UrlsPath: "data/playersURLs.csv",
	Scrape: ScrapeConfig{
		DelayMs:   1000,
		UserAgent: wikipedia.DefaultUserAgent,
		TimeoutMs: 30000,
	},
	Clubs: ClubsConfig{
		Threshold: clubs.DefaultThreshold,
	},
	Report: ReportConfig{
		Club: "Barcelona",
	},
}

func loadConfig(path string) (Config, error) {
	return configutil.LoadWithDefaults(path, defaultConfig)
}
