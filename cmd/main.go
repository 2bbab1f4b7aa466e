package main

import (
	"fmt"
	"log"
	"os"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/auth"
	"github.com/GabrielArdy/sigap-backend/internal/commands"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/config"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/repository/postgresql"
	"github.com/GabrielArdy/sigap-backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln("startup error:", err)
	}
}

func run() error {
	var flags struct {
		SkipMigrate bool `conf:"default:false,help:skip running schema migrations on startup"`
	}

	if err := conf.Parse(os.Args[1:], "SIGAP", &flags); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage("SIGAP", &flags)
			if err != nil {
				return errors.Wrap(err, "generating usage")
			}
			fmt.Println(usage)
			return nil
		}
		return errors.Wrap(err, "parsing flags")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	postgresDB, err := postgresql.NewDB(cfg)
	if err != nil {
		return errors.Wrap(err, "connecting to postgres")
	}
	defer postgresDB.Close()

	if !flags.SkipMigrate {
		commands.MigrateUP(postgresDB)
	}

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisDB.Close()

	authenticator := auth.New(cfg.JWTKey)

	r := router.NewRouter(web.NewApp(), postgresDB, redisDB, cfg, authenticator)

	return r.Init()
}
