package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/LouYuanbo1/statscraper/internal/config"
	"github.com/LouYuanbo1/statscraper/internal/infra/persistence"
	"github.com/LouYuanbo1/statscraper/internal/infra/persistence/csvfile"
	"github.com/LouYuanbo1/statscraper/internal/infra/persistence/es"
	"github.com/LouYuanbo1/statscraper/internal/infra/persistence/sqlite"
)

// openSinks builds one writer per configured sink. The returned func closes
// whatever the sinks hold open.
func openSinks(ctx context.Context, cfg *config.Config, out io.Writer) (persistence.DatasetWriter, func(), error) {
	var (
		writers []persistence.DatasetWriter
		closers []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("关闭输出失败: %v", err)
			}
		}
	}

	for _, sink := range cfg.Output.Sinks {
		switch sink {
		case config.SinkCSV:
			writers = append(writers, csvfile.New(cfg.Output.Dir, cfg.Output.FilePrefix, out))
		case config.SinkElasticsearch:
			//运行前确保es服务启动完成
			client, err := es.InitTypedEsClient(cfg)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			writers = append(writers, es.NewWriter(client))
		case config.SinkSQLite:
			store, err := sqlite.Open(ctx, cfg.SQLite.Path)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			writers = append(writers, store)
			closers = append(closers, store.Close)
		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown sink %q", sink)
		}
		log.Printf("输出: %s", sink)
	}
	return persistence.NewMultiWriter(writers...), closeAll, nil
}
