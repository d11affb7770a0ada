package source

import (
	"fmt"

	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/repo"
	"github.com/go-arcade/menuroute/pkg/database"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/google/wire"
)

// ProviderSet 提供菜单数据源
var ProviderSet = wire.NewSet(ProvideItemSource)

// ProvideItemSource 根据 source.type 选择数据源，db 类型时才连接数据库
func ProvideItemSource(cfg config.SourceConfig, dbConf database.Database) (ItemSource, func(), error) {
	noop := func() {}

	switch cfg.Type {
	case config.SourceNone:
		return NoneSource{}, noop, nil
	case config.SourceFile:
		log.Infow("menu source ready", "type", cfg.Type, "dir", cfg.Dir)
		return NewFileSource(cfg.Dir, cfg.ListField), noop, nil
	case config.SourceRemote:
		log.Infow("menu source ready", "type", cfg.Type, "baseURL", cfg.BaseURL, "action", cfg.Action)
		return NewRemoteSource(RemoteConfig{
			BaseURL:      cfg.BaseURL,
			Action:       cfg.Action,
			Token:        cfg.Token,
			SystemCode:   cfg.SystemCode,
			ClientIsGray: cfg.ClientIsGray,
			ListField:    cfg.ListField,
			Timeout:      cfg.TimeoutDuration(),
			Retries:      cfg.Retries,
		}), noop, nil
	case config.SourceDB:
		db, cleanup, err := database.NewDatabase(dbConf)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("menu source ready", "type", cfg.Type, "db", dbConf.DB)
		return NewDBSource(repo.NewFunctionRepo(db)), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source type %q", cfg.Type)
	}
}
