package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/triviaquiz/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

// FileConfig is the on-disk shape of the configuration. The format (YAML or
// JSON) is chosen by the file extension. Durations are strings such as "15m"
// so both formats read them the same way.
//
// Only non-empty values override what is already in Config.
type FileConfig struct {
	Env              string `yaml:"env" json:"env"`
	LogLevel         string `yaml:"log_level" json:"log_level"`
	EndpointAddrHTTP string `yaml:"endpoint_addr_http" json:"endpoint_addr_http"`
	EndpointAddrGRPC string `yaml:"endpoint_addr_grpc" json:"endpoint_addr_grpc"`
	DatabaseDSN      string `yaml:"database_dsn" json:"database_dsn"`
	JWTIssuer        string `yaml:"jwt_issuer" json:"jwt_issuer"`
	JWTAlgorithm     string `yaml:"jwt_algorithm" json:"jwt_algorithm"`
	JWTPublicKey     string `yaml:"jwt_public_key" json:"jwt_public_key"`
	JWTPrivateKey    string `yaml:"jwt_private_key" json:"jwt_private_key"`
	AccessTokenTTL   string `yaml:"access_token_ttl" json:"access_token_ttl"`
	HashWorkers      *int   `yaml:"hash_workers" json:"hash_workers"`
	HTTPReadTimeout  string `yaml:"http_read_timeout" json:"http_read_timeout"`
	HTTPWriteTimeout string `yaml:"http_write_timeout" json:"http_write_timeout"`
	HTTPIdleTimeout  string `yaml:"http_idle_timeout" json:"http_idle_timeout"`
}

// parseFile overlays the file named by -c/-config onto config. Without the
// flag nothing is loaded.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	var fc FileConfig
	if err := cleanenv.ReadConfig(path, &fc); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	return fc.apply(config)
}

func (fc *FileConfig) apply(config *Config) error {
	setString(&config.Env, fc.Env)
	setString(&config.LogLevel, fc.LogLevel)
	setString(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.JWTIssuer, fc.JWTIssuer)
	setString(&config.JWTAlgorithm, fc.JWTAlgorithm)
	setString(&config.JWTPublicKey, fc.JWTPublicKey)
	setString(&config.JWTPrivateKey, fc.JWTPrivateKey)

	if fc.HashWorkers != nil {
		config.HashWorkers = *fc.HashWorkers
	}

	durations := []struct {
		name string
		src  string
		dst  *time.Duration
	}{
		{"access_token_ttl", fc.AccessTokenTTL, &config.AccessTokenTTL},
		{"http_read_timeout", fc.HTTPReadTimeout, &config.HTTPReadTimeout},
		{"http_write_timeout", fc.HTTPWriteTimeout, &config.HTTPWriteTimeout},
		{"http_idle_timeout", fc.HTTPIdleTimeout, &config.HTTPIdleTimeout},
	}
	for _, d := range durations {
		if d.src == "" {
			continue
		}
		v, err := time.ParseDuration(d.src)
		if err != nil {
			return fmt.Errorf("config file: %s: %w", d.name, err)
		}
		*d.dst = v
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
