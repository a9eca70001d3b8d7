package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	RabbitMQURL        string
	RabbitExchange     string
	RabbitCommandQueue string
	RabbitCommandKey   string
	RabbitConsumerTag  string
	RabbitChangePrefix string

	SSEHeartbeat time.Duration

	FetchMinDelay    time.Duration
	FetchDelaySpread time.Duration
	FetchWaitTimeout time.Duration
	RandomSeed       int64

	LogJSON bool
	LogFile string

	OTELServiceName string
	OTLPEndpoint    string
	OTLPInsecure    bool
	OTELSampleRatio float64
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:           ":8080",
		RabbitExchange:     "mockui",
		RabbitCommandQueue: "mockui.commands",
		RabbitCommandKey:   "command.*",
		RabbitConsumerTag:  "mockui-commands",
		RabbitChangePrefix: "change",
		SSEHeartbeat:       15 * time.Second,
		FetchMinDelay:      300 * time.Millisecond,
		FetchDelaySpread:   1000 * time.Millisecond,
		FetchWaitTimeout:   5 * time.Second,
		LogFile:            "logs/app.log",
		OTELServiceName:    "mockui",
		OTLPInsecure:       true,
		OTELSampleRatio:    1,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")
	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.RabbitExchange = v
	}
	if v := os.Getenv("RABBITMQ_COMMAND_QUEUE"); v != "" {
		cfg.RabbitCommandQueue = v
	}
	if v := os.Getenv("RABBITMQ_COMMAND_KEY"); v != "" {
		cfg.RabbitCommandKey = v
	}
	if v := os.Getenv("RABBITMQ_CONSUMER_TAG"); v != "" {
		cfg.RabbitConsumerTag = v
	}
	if v := os.Getenv("RABBITMQ_CHANGE_PREFIX"); v != "" {
		cfg.RabbitChangePrefix = v
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	if v := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.OTELSampleRatio = f
		}
	}

	if v := os.Getenv("SSE_HEARTBEAT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSEHeartbeat = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("FETCH_MIN_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.FetchMinDelay = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("FETCH_DELAY_SPREAD_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.FetchDelaySpread = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("FETCH_WAIT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchWaitTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("RANDOM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.RandomSeed = n
		}
	}

	cfg.LogJSON = os.Getenv("GIN_MODE") == "release"
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.LogFile = v
	}

	return cfg
}
