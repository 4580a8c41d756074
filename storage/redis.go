package storage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

var bgContext = context.Background()

func InitializeRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("⚠️  REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})

	log.Println("🔧 Redis initialized with address:", redisURL)
}

// OTP codes live in redis with a TTL so password resets survive process
// restarts and work across replicas.
const otpTTL = 5 * time.Minute

func SetOTP(mobile, otp string) error {
	return Redis.Set(bgContext, "otp:"+mobile, otp, otpTTL).Err()
}

func GetOTP(mobile string) (string, error) {
	return Redis.Get(bgContext, "otp:"+mobile).Result()
}

func DeleteOTP(mobile string) {
	Redis.Del(bgContext, "otp:"+mobile)
}
