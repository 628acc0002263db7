package config

import (
	"os"
	"strings"
)

type Config struct {
	Addr             string
	DatabaseURL      string
	JWTSecret        string
	AdminRegisterKey string
	MailUser         string
	MailPass         string
	SMTPAddr         string
	AllowedOrigins   []string
}

func Load() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	smtpAddr := os.Getenv("SMTP_ADDR")
	if smtpAddr == "" {
		smtpAddr = "smtp.gmail.com:587"
	}

	origins := []string{"http://localhost:5173"}
	if client := os.Getenv("CLIENT_URL"); client != "" {
		origins = append(origins, client)
	}

	return Config{
		Addr:             addr,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminRegisterKey: os.Getenv("ADMIN_REGISTER_SECRET"),
		MailUser:         os.Getenv("MAIL_USER"),
		MailPass:         os.Getenv("MAIL_PASS"),
		SMTPAddr:         smtpAddr,
		AllowedOrigins:   origins,
	}
}

// Origins joins the allowed origin list for the CORS middleware config.
func (c Config) Origins() string {
	return strings.Join(c.AllowedOrigins, ",")
}
