package svc

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "moodjournal-api/internal/cache"
	"moodjournal-api/internal/config"
	"moodjournal-api/internal/model"
	"moodjournal-api/internal/persistence/feed"
	"moodjournal-api/internal/persistence/mirror"
	"moodjournal-api/pkg/classifier"
	"moodjournal-api/pkg/journal"
	llmpkg "moodjournal-api/pkg/llm"
	"moodjournal-api/pkg/report"
	"moodjournal-api/pkg/tracker"
)

type ServiceContext struct {
	Config config.Config

	Store      *journal.Store
	Aggregator *report.Aggregator

	LLMConfig    *llmpkg.Config
	LLMClient    llmpkg.LLMClient
	Prompt       *llmpkg.PromptTemplate
	PromptDigest string
	Classifier   *classifier.LLM
	// Tracker is nil when no LLM credentials are available; read-only
	// endpoints keep working.
	Tracker *tracker.Tracker

	// Optional mirrors, wired only when configured.
	DBConn           sqlx.SqlConn
	MoodEntriesModel model.MoodEntriesModel
	Mirror           *mirror.Service
	Redis            *redis.Redis
	Feed             *feed.Feed
}

// Option customises service wiring, mostly for tests.
type Option func(*options)

type options struct {
	llmClient llmpkg.LLMClient
	feedStore feed.ListStore
}

// WithLLMClient injects a client instead of building one from config.
func WithLLMClient(client llmpkg.LLMClient) Option {
	return func(o *options) { o.llmClient = client }
}

// WithFeedStore injects the list store backing the recent-entry feed.
func WithFeedStore(store feed.ListStore) Option {
	return func(o *options) { o.feedStore = store }
}

func MustNewServiceContext(c config.Config, opts ...Option) *ServiceContext {
	svc, err := NewServiceContext(c, opts...)
	logx.Must(err)
	return svc
}

func NewServiceContext(c config.Config, opts ...Option) (*ServiceContext, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store := journal.NewStore(c.Journal.Path)
	if err := store.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize journal: %w", err)
	}
	svc := &ServiceContext{
		Config:     c,
		Store:      store,
		Aggregator: report.NewAggregator(store),
	}

	// Only wire the Postgres mirror when a DSN is provided; the CSV journal
	// remains the source of truth.
	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		if db, err := conn.RawDB(); err == nil {
			db.SetMaxOpenConns(c.Postgres.MaxOpen)
			db.SetMaxIdleConns(c.Postgres.MaxIdle)
		}
		svc.DBConn = conn
		svc.MoodEntriesModel = model.NewMoodEntriesModel(conn)
		svc.Mirror = mirror.NewService(mirror.Config{SQLConn: conn, EntriesModel: svc.MoodEntriesModel})
	}

	feedStore := o.feedStore
	if feedStore == nil && strings.TrimSpace(c.Redis.Host) != "" {
		rds, err := redis.NewRedis(c.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		svc.Redis = rds
		feedStore = rds
	}
	svc.Feed = feed.New(feed.Config{
		Store:  feedStore,
		MaxLen: c.Feed.MaxLen,
		TTL:    cachekeys.NewTTLSet(c.Feed),
	})

	if err := svc.initClassifier(c, o.llmClient); err != nil {
		return nil, err
	}
	return svc, nil
}

func (svc *ServiceContext) initClassifier(c config.Config, client llmpkg.LLMClient) error {
	if client == nil {
		llmCfg := c.LLM.Value
		if c.LLM.Skipped != nil {
			logx.Infof("llm not configured, analysis disabled: %v", c.LLM.Skipped)
			return nil
		}
		if llmCfg == nil {
			// No llm section: fall back to MOODJOURNAL_LLM_* variables.
			envCfg, err := llmpkg.LoadConfigFromReader(strings.NewReader(""))
			if err != nil {
				logx.Infof("llm not configured, analysis disabled: %v", err)
				return nil
			}
			llmCfg = envCfg
		}
		// Test environment pins the cheapest model.
		if c.IsTestEnv() {
			llmCfg = llmCfg.Clone()
			llmCfg.DefaultModel = "gemini-2.0-flash-lite"
		}
		built, err := llmpkg.NewClient(llmCfg)
		if err != nil {
			return fmt.Errorf("build llm client: %w", err)
		}
		client = built
	}
	svc.LLMClient = client
	svc.LLMConfig = client.GetConfig()

	clsOpts := []classifier.Option{classifier.WithModel(c.Classifier.Model)}
	if path := c.PromptFilePath(); path != "" {
		tmpl, err := llmpkg.NewPromptTemplate(path, nil)
		if err != nil {
			return fmt.Errorf("load prompt template: %w", err)
		}
		svc.Prompt = tmpl
		svc.PromptDigest = tmpl.Digest()
		clsOpts = append(clsOpts, classifier.WithTemplate(tmpl))
	}
	svc.Classifier = classifier.NewLLM(client, clsOpts...)

	var sinks []tracker.Sink
	if svc.Mirror != nil {
		sinks = append(sinks, svc.Mirror)
	}
	if svc.Feed != nil {
		sinks = append(sinks, svc.Feed)
	}
	t, err := tracker.New(svc.Classifier, svc.Store,
		tracker.WithMode(c.Mode()),
		tracker.WithPromptPrefix(c.Classifier.PromptPrefix),
		tracker.WithSinks(sinks...),
	)
	if err != nil {
		return err
	}
	svc.Tracker = t
	return nil
}
