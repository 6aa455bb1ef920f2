package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/models"
)

// Config holds the project config values
type Config struct {
	URL              string        `env:"DB_URI" envDefault:"mongodb://127.0.0.1:27017"`
	DatabaseName     string        `env:"DB_NAME" envDefault:"voluntariado"`
	BaseURL          string        `env:"BASE_URL" envDefault:"http://localhost:3000"`
	Port             string        `env:"PORT" envDefault:"8080"`
	Env              string        `env:"APP_ENV" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL"`
	LogFile          string        `env:"LOG_FILE"`
	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
	SendGridAPIKey   string        `env:"SENDGRID_API_KEY"`
	MailFrom         string        `env:"MAIL_FROM" envDefault:"no-reply@conectaong.org"`
	MailFromName     string        `env:"MAIL_FROM_NAME" envDefault:"Conecta ONG"`
	NotificationTTL  time.Duration `env:"NOTIFICATION_TTL" envDefault:"2160h"`
	SchedulerEnabled bool          `env:"SCHEDULER_ENABLED" envDefault:"true"`
	CORSOrigins      []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// New sets up all config related services. The logger is replaced even
// when the environment fails to parse, so callers can log the error.
func New() (*Config, error) {
	// a missing .env file is fine, the process environment wins anyway
	_ = godotenv.Load()

	conf := &Config{}
	parseErr := env.Parse(conf)

	//setup zap logger and replace default logger
	logger, err := setLogger(conf.Env, conf.LogLevel, conf.LogFile)
	if err != nil {
		logger = zap.NewExample()
		logger.Sugar().Errorw("failed to build logger, falling back to example logger", "error", err)
	}
	_ = zap.ReplaceGlobals(logger)

	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", parseErr)
	}
	return conf, nil
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message}}
	if err != nil {
		resp.Response.Error = err.Error()
	}
	writeError(httpStatusCode, w, resp, err)
}

// CodedErrorStatus is like ErrorStatus but sends a machine readable code and
// optional field errors instead of the raw error text
func CodedErrorStatus(message, code string, fields map[string]string, httpStatusCode int, w http.ResponseWriter, err error) {
	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message, Code: code, Fields: fields}}
	writeError(httpStatusCode, w, resp, err)
}

func writeError(httpStatusCode int, w http.ResponseWriter, resp models.ErrorMessageResponse, err error) {
	if httpStatusCode >= http.StatusInternalServerError {
		zap.S().With("error", err).Error(resp.Response.Message)
	} else {
		zap.S().With("error", err).Debug(resp.Response.Message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(resp)
	_, _ = w.Write(b)
}
