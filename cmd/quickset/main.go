package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/NoahCxrest/quickset/api"
	"github.com/NoahCxrest/quickset/config"
	"github.com/NoahCxrest/quickset/fulltext"
	"github.com/NoahCxrest/quickset/logging"
	"github.com/NoahCxrest/quickset/source/lineproto"
	"github.com/NoahCxrest/quickset/source/sqlsource"
	"github.com/NoahCxrest/quickset/store"
	"github.com/NoahCxrest/quickset/syncmgr"
	"github.com/NoahCxrest/quickset/transport/httpapi"
)

func main() {
	cfg := config.FromEnv()
	syncCfg := config.SyncSourceConfigFromEnv()

	logger := logging.New(cfg.LogLevel)

	var tokenizer fulltext.Tokenizer
	jieba, err := fulltext.NewJiebaTokenizer()
	if err != nil {
		logger.Warn("main", "falling back to standard tokenizer: %s", err)
		tokenizer = fulltext.NewStandardTokenizer()
	} else {
		tokenizer = jieba
	}

	db := store.New(tokenizer)

	var mgr *syncmgr.Manager
	if syncCfg.Enabled {
		mgr = buildSyncManager(syncCfg, logger)
		mgr.StartBackgroundSync(db)
		defer mgr.Stop()
	} else {
		logger.Info("main", "sync disabled (QUICKSET_SYNC_ENABLED not set)")
	}

	srv := api.New(db, mgr, logger)
	handler := httpapi.New(srv, cfg, logger)

	addr := cfg.Address()
	logger.Info("main", "listening on %s", addr)
	fmt.Printf("quickset listening on %s\n", addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func buildSyncManager(syncCfg config.SyncSourceConfig, logger logging.Logger) *syncmgr.Manager {
	var source syncmgr.Source
	switch syncCfg.SourceType {
	case "mysql", "postgres", "sqlite":
		source = sqlsource.New(sqlsource.Config{
			Driver:   syncCfg.SourceType,
			Host:     syncCfg.Host,
			Port:     syncCfg.Port,
			User:     syncCfg.User,
			Password: syncCfg.Password,
			Database: syncCfg.Database,
		})
	default: // "clickhouse"
		source = lineproto.New(lineproto.Config{
			Host:     syncCfg.Host,
			Port:     syncCfg.Port,
			User:     syncCfg.User,
			Password: syncCfg.Password,
			Database: syncCfg.Database,
		})
	}

	if err := source.Connect(); err != nil {
		logger.Error("main", "failed to connect sync source: %s", err)
	}

	mgrCfg := syncmgr.NewConfig().WithInterval(syncCfg.Interval)
	for _, pair := range syncCfg.Tables {
		src, dst := splitTablePair(pair)
		mgrCfg = mgrCfg.WithTable(syncmgr.NewSyncTable(src, dst))
	}

	return syncmgr.New(source, mgrCfg, logger)
}

func splitTablePair(pair string) (string, string) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == ':' {
			return pair[:i], pair[i+1:]
		}
	}
	return pair, pair
}
