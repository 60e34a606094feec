package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/zhouzirui/hearthstone/backend/internal/service/lookup"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Cards  CardsConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// CardsConfig 描述卡牌数据源与查询规则。
type CardsConfig struct {
	DataFile     string
	DefaultLimit int
	NamePolicy   lookup.Policy
	IDPolicy     lookup.Policy
}

// LookupOptions converts the configured policies for the lookup service.
func (c CardsConfig) LookupOptions() lookup.Options {
	return lookup.Options{NamePolicy: c.NamePolicy, IDPolicy: c.IDPolicy}
}

// fileConfig mirrors the optional TOML file named by CARDS_CONFIG_FILE.
type fileConfig struct {
	Port  string `toml:"port"`
	Cards struct {
		DataFile     string `toml:"data_file"`
		DefaultLimit *int   `toml:"default_limit"`
		NameMatch    string `toml:"name_match"`
		IDMatch      string `toml:"id_match"`
	} `toml:"cards"`
}

const (
	defaultPort     = "8000"
	defaultDataFile = "data/hs_cards.json"
)

// Load 从配置文件（可选）与环境变量加载配置，环境变量优先。
func Load() (*Config, error) {
	file, err := loadFileConfig(strings.TrimSpace(os.Getenv("CARDS_CONFIG_FILE")))
	if err != nil {
		return nil, err
	}

	server, err := loadServerConfig(file)
	if err != nil {
		return nil, err
	}

	cards, err := loadCardsConfig(file)
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Cards: cards}, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	return fc, nil
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig(file fileConfig) (ServerConfig, error) {
	fallback := defaultPort
	if p := strings.TrimSpace(file.Port); p != "" {
		fallback = p
	}
	port := getEnvOrDefault("PORT", fallback)

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8000" 或 "127.0.0.1:8000"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadCardsConfig(file fileConfig) (CardsConfig, error) {
	dataFile := defaultDataFile
	if file.Cards.DataFile != "" {
		dataFile = file.Cards.DataFile
	}

	limit := lookup.DefaultLimit
	if file.Cards.DefaultLimit != nil {
		limit = *file.Cards.DefaultLimit
	}
	if override, err := parseOptionalIntEnv("CARDS_DEFAULT_LIMIT"); err != nil {
		return CardsConfig{}, err
	} else if override != nil {
		limit = *override
	}
	if limit < 0 {
		return CardsConfig{}, fmt.Errorf("invalid default limit %d: must be >= 0", limit)
	}

	namePolicy, err := parsePolicy("CARDS_NAME_MATCH", file.Cards.NameMatch)
	if err != nil {
		return CardsConfig{}, err
	}
	idPolicy, err := parsePolicy("CARDS_ID_MATCH", file.Cards.IDMatch)
	if err != nil {
		return CardsConfig{}, err
	}

	return CardsConfig{
		DataFile:     getEnvOrDefault("CARDS_DATA_FILE", dataFile),
		DefaultLimit: limit,
		NamePolicy:   namePolicy,
		IDPolicy:     idPolicy,
	}, nil
}

// parsePolicy reads a match policy from key, then fileValue, defaulting to title.
func parsePolicy(key, fileValue string) (lookup.Policy, error) {
	fallback := string(lookup.PolicyTitle)
	if fileValue != "" {
		fallback = fileValue
	}
	raw := getEnvOrDefault(key, fallback)
	policy, err := lookup.ParsePolicy(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return policy, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
