package cache

import (
	"encoding/json"
	"errors"
	"time"

	"delivery-admin/internal/payload"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type SetRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
	TTL   payload.Int     `json:"ttl"`
}

type ClearRequest struct {
	Pattern string `json:"pattern"`
}

func serverError(op string, err error) error {
	log.Errorf("redis %s: %v", op, err)
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// GET /api/redis?key=
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("key")
		if key == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Key is required")
		}

		rdb, err := Client()
		if err != nil {
			return serverError("GET", err)
		}

		raw, err := rdb.Get(c.UserContext(), key).Bytes()
		if errors.Is(err, redis.Nil) {
			return c.JSON(fiber.Map{"value": nil})
		}
		if err != nil {
			return serverError("GET", err)
		}
		if !json.Valid(raw) {
			return serverError("GET", errors.New("stored value for "+key+" is not valid JSON"))
		}

		return c.JSON(fiber.Map{"value": json.RawMessage(raw)})
	}
}

// POST /api/redis {key, value, ttl?}
func SetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Key == "" || len(body.Value) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Key and value are required")
		}

		rdb, err := Client()
		if err != nil {
			return serverError("SET", err)
		}

		var ttl time.Duration
		if body.TTL.Value > 0 {
			ttl = time.Duration(body.TTL.Value) * time.Second
		}
		if err := rdb.Set(c.UserContext(), body.Key, []byte(body.Value), ttl).Err(); err != nil {
			return serverError("SET", err)
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/redis?key=
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("key")
		if key == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Key is required")
		}

		if err := Delete(c.UserContext(), key); err != nil {
			return serverError("DEL", err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/redis/clear {pattern?}
// Without a pattern the whole database is flushed.
func ClearHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClearRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
			}
		}

		if body.Pattern != "" {
			n, err := DeletePattern(c.UserContext(), body.Pattern)
			if err != nil {
				return serverError("CLEAR", err)
			}
			log.Infof("cleared %d keys matching %q", n, body.Pattern)
		} else {
			if err := Flush(c.UserContext()); err != nil {
				return serverError("FLUSHDB", err)
			}
			log.Info("flushed redis database")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
