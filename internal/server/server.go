// Package server builds the fiber application shared by every route group.
package server

import (
	"errors"
	"strconv"

	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	AppName string
	// CookieKey is a base64 AES key; empty leaves cookies unencrypted.
	CookieKey string
}

func New(cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(Observe())
	app.Use(recover.New())
	if cfg.CookieKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cfg.CookieKey, Decryptor: decryptCookie}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}

// decryptCookie hands undecryptable values through unchanged. The default
// decryptor blanks them, which turns a tampered token into a missing one.
func decryptCookie(encrypted, key string) (string, error) {
	value, err := encryptcookie.DecryptCookie(encrypted, key)
	if err != nil {
		return encrypted, nil
	}
	return value, nil
}

// ErrorHandler renders every error as {error, details, code}. Causes of
// internal errors are logged and never sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(autherror.Response{
			Error: fiberErr.Message,
			Code:  "HTTP_" + strconv.Itoa(fiberErr.Code),
		})
	}

	appErr := autherror.As(err)
	if appErr.Kind == autherror.KindInternal {
		logging.Ctx(c.UserContext()).Error().Err(appErr.Err).
			Str("code", appErr.Code).
			Str("path", c.Path()).
			Msg(appErr.Message)
	}

	return c.Status(appErr.Status()).JSON(appErr.Response())
}
