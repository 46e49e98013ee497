package config

import (
	"bytes"
	"os"
	"time"

	"github.com/adrianliechti/mineru/pkg/mineru"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string
	Origins []string

	URL     string
	Timeout time.Duration

	limiter *rate.Limiter
	proxy   *proxyConfig

	template *mineru.Request
	zip      bool
}

// Default returns a configuration pointing at a local service, overridable
// by MINERU_URL.
func Default() *Config {
	url := os.Getenv("MINERU_URL")

	if url == "" {
		url = "http://localhost:8000"
	}

	return &Config{
		Address: ":8080",
		Origins: []string{"*"},

		URL:     url,
		Timeout: 10 * time.Minute,

		template: mineru.NewRequest(),
	}
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := Default()

	if file.URL != "" {
		c.URL = file.URL
	}

	if file.Timeout > 0 {
		c.Timeout = file.Timeout
	}

	c.limiter = createLimiter(file.Limit)
	c.proxy = file.Proxy

	if err := c.registerServer(file.Server); err != nil {
		return nil, err
	}

	if err := c.registerRequest(file.Request); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`

	Limit *int         `yaml:"limit"`
	Proxy *proxyConfig `yaml:"proxy"`

	Request *requestConfig `yaml:"request"`
	Server  *serverConfig  `yaml:"server"`
}

type serverConfig struct {
	Address string   `yaml:"address"`
	CORS    []string `yaml:"cors"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (cfg *Config) registerServer(s *serverConfig) error {
	if s == nil {
		return nil
	}

	if s.Address != "" {
		cfg.Address = s.Address
	}

	if len(s.CORS) > 0 {
		cfg.Origins = s.CORS
	}

	return nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil || *limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
