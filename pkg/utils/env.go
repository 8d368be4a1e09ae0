package utils

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type EnvVars struct {
	Host       string
	HTTPPort   int
	GRPCPort   int
	RabbitHost string
	RabbitUser string
	RabbitPass string
	RabbitPort int
	RankQueue  string
	Config     string
	EngineLog  bool
	ServerLog  bool
}

func ReadEnvVars() EnvVars {
	// Loading .env file if it exists
	// It will not override already existing env vars
	_ = godotenv.Load()
	return EnvVars{
		Host:       envOr("HOST", "", parseString),
		HTTPPort:   envOr("HTTP_PORT", 8080, parsePort),
		GRPCPort:   envOr("GRPC_PORT", 1234, parsePort),
		RabbitHost: envOr("RABBIT_HOST", "", parseString),
		RabbitUser: envOr("RABBIT_USER", "guest", parseString),
		RabbitPass: envOr("RABBIT_PASSWORD", "guest", parseString),
		RabbitPort: envOr("RABBIT_PORT", 5672, parsePort),
		RankQueue:  envOr("RANK_QUEUE", "rank", parseString),
		Config:     envOr("CONFIG", "config.json", parseString),
		EngineLog:  envOr("ENGINE_LOG", false, strconv.ParseBool),
		ServerLog:  envOr("SERVER_LOG", false, strconv.ParseBool),
	}
}

// RabbitURL returns the AMQP connection string, empty when no broker is configured
func (e EnvVars) RabbitURL() string {
	if e.RabbitHost == "" {
		return ""
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(e.RabbitUser, e.RabbitPass),
		Host:   net.JoinHostPort(e.RabbitHost, strconv.Itoa(e.RabbitPort)),
		Path:   "/",
	}
	return u.String()
}

// envOr parses the variable name, falling back to or when it is unset or empty.
// A value parse rejects is reported and replaced by or.
func envOr[T any](name string, or T, parse func(string) (T, error)) T {
	raw := os.Getenv(name)
	if raw == "" {
		return or
	}
	value, err := parse(raw)
	if err != nil {
		WarnLog("env", "Ignoring %s=%q: %v", name, raw, err)
		return or
	}
	return value
}

func parseString(s string) (string, error) {
	return s, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}
