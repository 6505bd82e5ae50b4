package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/flagx"
)

// parseFlags overlays the flags this package owns.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-h string   gRPC health bind address
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-b string   S3 bucket name
//	-e string   S3 base endpoint
//	-r string   Redis address
//	-q string   AMQP URL
//	-m string   mail provider (log, smtp, resend)
func parseFlags(c *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-h", "-d", "-s", "-t", "-b", "-e", "-r", "-q", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&c.HTTPAddr, "a", c.HTTPAddr, "HTTP address and port")
	fs.StringVar(&c.GRPCHealthAddr, "h", c.GRPCHealthAddr, "gRPC health address and port")
	fs.StringVar(&c.DatabaseDSN, "d", c.DatabaseDSN, "database DSN")
	fs.StringVar(&c.SecretKey, "s", c.SecretKey, "secret key")
	validity := fs.Int("t", int(c.TokenValidity.Hours()), "token validity (in hours)")
	fs.StringVar(&c.S3Bucket, "b", c.S3Bucket, "S3 bucket")
	fs.StringVar(&c.S3BaseEndpoint, "e", c.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&c.RedisAddr, "r", c.RedisAddr, "redis address")
	fs.StringVar(&c.AMQPURL, "q", c.AMQPURL, "AMQP URL")
	fs.StringVar(&c.MailProvider, "m", c.MailProvider, "mail provider")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	c.TokenValidity = time.Duration(*validity) * time.Hour
	return nil
}
