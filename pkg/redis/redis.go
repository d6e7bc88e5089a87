package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

type IRedis interface {
	GetCorpus(ctx context.Context) (string, error)
	SetCorpus(ctx context.Context, payload string, expiration time.Duration) error
}

var ErrCorpusNotCached = errors.New("corpus not cached")

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

const corpusCacheKey = "chatbot:corpus:v1"

func (r *redisClient) GetCorpus(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, corpusCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Debug("Training corpus not found in cache")
		return "", ErrCorpusNotCached
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading cached corpus: %v", err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) SetCorpus(ctx context.Context, payload string, expiration time.Duration) error {
	if err := r.client.Set(ctx, corpusCacheKey, payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching corpus: %v", err))
		return err
	}
	logrus.Debug(fmt.Sprintf("Cached training corpus for %v", expiration))
	return nil
}
