package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/focusgroup/internal/flagx"
	"github.com/dmitrijs2005/focusgroup/internal/timex"
)

// JsonConfig is the on-disk shape. Durations accept "1h" style strings or
// integer nanoseconds. Zero values keep the current setting.
type JsonConfig struct {
	HTTPAddr         string         `json:"http_addr"`
	GRPCHealthAddr   string         `json:"grpc_health_addr"`
	DatabaseDSN      string         `json:"database_dsn"`
	PublicBaseURL    string         `json:"public_base_url"`
	SecretKey        string         `json:"secret_key"`
	TokenValidity    timex.Duration `json:"token_validity"`
	ResetTokenTTL    timex.Duration `json:"reset_token_ttl"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	RedisAddr        string         `json:"redis_addr"`
	SettingsCacheTTL timex.Duration `json:"settings_cache_ttl"`
	AMQPURL          string         `json:"amqp_url"`
	MailProvider     string         `json:"mail_provider"`
	MailFrom         string         `json:"mail_from"`
	MailOps          string         `json:"mail_operations"`
	SMTPAddr         string         `json:"smtp_addr"`
	ResendAPIKey     string         `json:"resend_api_key"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func parseJson(c *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&c.HTTPAddr, jc.HTTPAddr)
	setString(&c.GRPCHealthAddr, jc.GRPCHealthAddr)
	setString(&c.DatabaseDSN, jc.DatabaseDSN)
	setString(&c.PublicBaseURL, jc.PublicBaseURL)
	setString(&c.SecretKey, jc.SecretKey)
	setString(&c.S3RootUser, jc.S3RootUser)
	setString(&c.S3RootPassword, jc.S3RootPassword)
	setString(&c.S3Bucket, jc.S3Bucket)
	setString(&c.S3Region, jc.S3Region)
	setString(&c.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&c.RedisAddr, jc.RedisAddr)
	setString(&c.AMQPURL, jc.AMQPURL)
	setString(&c.MailProvider, jc.MailProvider)
	setString(&c.MailFrom, jc.MailFrom)
	setString(&c.MailOps, jc.MailOps)
	setString(&c.SMTPAddr, jc.SMTPAddr)
	setString(&c.ResendAPIKey, jc.ResendAPIKey)
	setString(&c.LogLevel, jc.LogLevel)
	setString(&c.LogFormat, jc.LogFormat)

	if jc.TokenValidity.Duration > 0 {
		c.TokenValidity = jc.TokenValidity.Duration
	}
	if jc.ResetTokenTTL.Duration > 0 {
		c.ResetTokenTTL = jc.ResetTokenTTL.Duration
	}
	if jc.SettingsCacheTTL.Duration > 0 {
		c.SettingsCacheTTL = jc.SettingsCacheTTL.Duration
	}
	return nil
}
