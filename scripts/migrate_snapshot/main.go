// Command migrate_snapshot copies the directory corpus and the search-query
// journal from one persistence backend to another, so deployments can switch
// SNAPSHOT_BACKEND without losing data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/edurank/teacher-directory-api/internal/models"
	"github.com/edurank/teacher-directory-api/internal/snapshot"
	"github.com/edurank/teacher-directory-api/pkg/cache"
	"github.com/edurank/teacher-directory-api/pkg/config"
	"github.com/edurank/teacher-directory-api/pkg/database"
)

func main() {
	var (
		from    string
		to      string
		timeout time.Duration
	)
	flag.StringVar(&from, "from", config.SnapshotBackendFile, "Source backend (file|postgres|redis)")
	flag.StringVar(&to, "to", config.SnapshotBackendPostgres, "Target backend (file|postgres|redis)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	if from == to {
		log.Fatalf("source and target backends are both %q", from)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	srcCorpus, srcQueries, err := openStores(ctx, cfg, from)
	if err != nil {
		log.Fatalf("failed to open source backend %q: %v", from, err)
	}
	dstCorpus, dstQueries, err := openStores(ctx, cfg, to)
	if err != nil {
		log.Fatalf("failed to open target backend %q: %v", to, err)
	}

	var corpus models.Corpus
	switch err := srcCorpus.Load(ctx, &corpus); {
	case err == nil:
		if err := dstCorpus.Save(ctx, corpus); err != nil {
			log.Fatalf("failed to write corpus: %v", err)
		}
		fmt.Printf("corpus: %d instructors copied\n", len(corpus.Instructors))
	case errors.Is(err, snapshot.ErrEmpty):
		fmt.Println("corpus: source empty, nothing to copy")
	default:
		log.Fatalf("failed to read corpus: %v", err)
	}

	var queries models.QueryLog
	switch err := srcQueries.Load(ctx, &queries); {
	case err == nil:
		if err := dstQueries.Save(ctx, queries); err != nil {
			log.Fatalf("failed to write query log: %v", err)
		}
		fmt.Printf("query log: %d records copied\n", len(queries.Records))
	case errors.Is(err, snapshot.ErrEmpty):
		fmt.Println("query log: source empty, nothing to copy")
	default:
		log.Fatalf("failed to read query log: %v", err)
	}
}

func openStores(ctx context.Context, cfg *config.Config, backend string) (snapshot.Store, snapshot.Store, error) {
	switch backend {
	case config.SnapshotBackendFile:
		corpus, err := snapshot.NewFileStore(cfg.Snapshot.FilePath)
		if err != nil {
			return nil, nil, err
		}
		queries, err := snapshot.NewFileStore(cfg.Snapshot.QueryLogPath)
		if err != nil {
			return nil, nil, err
		}
		return corpus, queries, nil

	case config.SnapshotBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		corpus := snapshot.NewPostgresStore(db, cfg.Snapshot.PostgresKey)
		if err := corpus.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		return corpus, snapshot.NewPostgresStore(db, cfg.Snapshot.PostgresKey+"-queries"), nil

	case config.SnapshotBackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return snapshot.NewRedisStore(client, cfg.Snapshot.RedisKey), snapshot.NewRedisStore(client, cfg.Snapshot.QueryLogKey), nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}
