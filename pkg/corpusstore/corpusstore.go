package corpusstore

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"StorefrontGolang/pkg/chatbot"
	redisPkg "StorefrontGolang/pkg/redis"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const corpusCacheTTL = 6 * time.Hour

// ItfCorpusStore fetches the base training corpus document. It satisfies
// chatbot.CorpusSource.
type ItfCorpusStore interface {
	Load(ctx context.Context) (*chatbot.TrainingCorpus, error)
}

type corpusStore struct {
	log        *logrus.Logger
	session    *session.Session
	bucketName string
	objectKey  string
	cache      redisPkg.IRedis
}

func New(log *logrus.Logger, cache redisPkg.IRedis) (ItfCorpusStore, error) {
	sess, err := newSession()
	if err != nil {
		return nil, err
	}

	return &corpusStore{
		log:        log,
		session:    sess,
		bucketName: os.Getenv("AWS_BUCKET_NAME"),
		objectKey:  os.Getenv("CORPUS_OBJECT_KEY"),
		cache:      cache,
	}, nil
}

func newSession() (*session.Session, error) {
	region := os.Getenv("AWS_REGION")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return sess, nil
}

// Load returns the corpus from the redis cache when present, otherwise
// downloads it from the bucket and backfills the cache. Cache failures are
// logged and ignored; only a failed download or parse is an error.
func (c *corpusStore) Load(ctx context.Context) (*chatbot.TrainingCorpus, error) {
	if c.cache != nil {
		if payload, err := c.cache.GetCorpus(ctx); err == nil {
			corpus, parseErr := parseCorpus([]byte(payload))
			if parseErr == nil {
				c.log.WithFields(logrus.Fields{
					"intents": len(corpus.Intents),
				}).Debug("Training corpus served from cache")
				return corpus, nil
			}
			c.log.WithFields(logrus.Fields{
				"error": parseErr.Error(),
			}).Warn("Cached corpus unreadable, refetching")
		}
	}

	payload, err := c.download(ctx)
	if err != nil {
		return nil, err
	}

	corpus, err := parseCorpus(payload)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SetCorpus(ctx, string(payload), corpusCacheTTL); err != nil {
			c.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Failed to cache training corpus")
		}
	}

	return corpus, nil
}

func (c *corpusStore) download(ctx context.Context) ([]byte, error) {
	downloader := s3manager.NewDownloader(c.session)
	buf := aws.NewWriteAtBuffer([]byte{})

	_, err := downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download corpus %s/%s: %w", c.bucketName, c.objectKey, err)
	}

	return buf.Bytes(), nil
}

func parseCorpus(payload []byte) (*chatbot.TrainingCorpus, error) {
	var corpus chatbot.TrainingCorpus
	if err := json.Unmarshal(payload, &corpus); err != nil {
		return nil, fmt.Errorf("failed to parse corpus document: %w", err)
	}
	return &corpus, nil
}
