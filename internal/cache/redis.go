// Package cache mirrors available drivers into Redis sets keyed by geohash
// cell, so lightweight consumers (driver maps, ops dashboards) can read
// nearby supply without hitting Postgres. The dispatch scoring path itself
// reads from the database; the mirror is maintained by the driver lifecycle
// writes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/mmcloughlin/geohash"
	"github.com/sirupsen/logrus"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/models"
)

// Cell precision of 5 gives ~4.9 km x 4.9 km buckets, a good match for the
// 10 km scoring radius.
const cellPrecision = 5

var Rdb *redis.Client

// InitRedis connects the client and verifies the connection.
func InitRedis() {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     config.Env("REDIS_ADDR", "localhost:6379"),
		Password: config.Env("REDIS_PASSWORD", ""),
	})

	if _, err := Rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected.")
}

// Cell returns the geohash cell key a position falls into.
func Cell(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, cellPrecision)
}

func cellKey(cell string) string {
	return fmt.Sprintf("drivers:%s", cell)
}

func driverKey(id uint) string {
	return fmt.Sprintf("driver:%d", id)
}

// AddAvailableDriver publishes a located, available driver: its id joins the
// cell set and its snapshot lands under driver:<id>. Set members are ids, not
// payloads, so a later removal doesn't depend on byte-identical JSON.
func AddAvailableDriver(ctx context.Context, driver *models.Driver) {
	if Rdb == nil || !driver.Located() || driver.Geohash == "" {
		return
	}
	payload, _ := json.Marshal(driver)
	if err := Rdb.SAdd(ctx, cellKey(driver.Geohash), driver.ID).Err(); err != nil {
		logrus.WithError(err).Warn("cache: failed to add driver to cell set")
		return
	}
	if err := Rdb.Set(ctx, driverKey(driver.ID), payload, 0).Err(); err != nil {
		logrus.WithError(err).Warn("cache: failed to store driver snapshot")
	}
}

// RemoveAvailableDriver drops a driver from the given cell set. Mirror writes
// are best effort; Postgres stays the source of truth.
func RemoveAvailableDriver(ctx context.Context, driverID uint, cell string) {
	if Rdb == nil || cell == "" {
		return
	}
	if err := Rdb.SRem(ctx, cellKey(cell), driverID).Err(); err != nil {
		logrus.WithError(err).Warn("cache: failed to remove driver from cell set")
	}
	if err := Rdb.Del(ctx, driverKey(driverID)).Err(); err != nil {
		logrus.WithError(err).Warn("cache: failed to drop driver snapshot")
	}
}
