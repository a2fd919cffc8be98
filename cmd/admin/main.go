// Command admin provisions the watchlist database: it creates the
// schema, seeds sample data and manages the single owner account. The
// web server assumes this has run at least once with -init.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"watchlist/internal/config"
	"watchlist/internal/domain"
	"watchlist/internal/repository"
	"watchlist/internal/repository/sqlite"
	"watchlist/internal/service"
)

var sampleMovies = []domain.Movie{
	{Title: "两杆大烟枪", Year: "1998"},
	{Title: "偷拐抢骗", Year: "2000"},
	{Title: "疯狂的石头", Year: "2006"},
	{Title: "疯狂的赛车", Year: "2009"},
	{Title: "驴得水", Year: "2016"},
	{Title: "让子弹飞", Year: "2010"},
	{Title: "阳光灿烂的日子", Year: "1995"},
	{Title: "乱世佳人", Year: "1939"},
	{Title: "七武士", Year: "1954"},
	{Title: "罗生门", Year: "1950"},
	{Title: "低俗小说", Year: "1994"},
	{Title: "心迷宫", Year: "2015"},
	{Title: "暴裂无声", Year: "2017"},
	{Title: "可可西里", Year: "2004"},
	{Title: "驭风男孩", Year: "2019"},
	{Title: "流浪地球", Year: "2019"},
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	initDB := flag.Bool("init", false, "create database tables")
	drop := flag.Bool("drop", false, "drop existing tables first (implies -init)")
	forge := flag.Bool("forge", false, "seed the sample owner name and movies")
	username := flag.String("username", "", "owner login username (create or update the account)")
	password := flag.String("password", "", "owner login password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if *drop {
		if err := dropTables(ctx, db); err != nil {
			logger.Fatalf("drop tables: %v", err)
		}
	}

	userRepo := sqlite.NewUserRepository(db)
	movieRepo := sqlite.NewMovieRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := movieRepo.Init(ctx); err != nil {
		logger.Fatalf("init movie repository: %v", err)
	}
	if err := messageRepo.Init(ctx); err != nil {
		logger.Fatalf("init message repository: %v", err)
	}

	acted := false

	if *initDB || *drop {
		logger.Info("initialized database")
		acted = true
	}

	if *forge {
		if err := seed(ctx, userRepo, movieRepo); err != nil {
			logger.Fatalf("forge sample data: %v", err)
		}
		logger.Infof("seeded %d movies", len(sampleMovies))
		acted = true
	}

	if *username != "" || *password != "" {
		users := service.NewUserService(userRepo)
		user, err := users.Provision(ctx, *username, *password)
		if err != nil {
			logger.Fatalf("provision owner: %v", err)
		}
		logger.Infof("owner account %q ready", user.Username)
		acted = true
	}

	if !acted {
		flag.Usage()
		os.Exit(2)
	}
}

func dropTables(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS movies`,
		`DROP TABLE IF EXISTS messages`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// seed creates the placeholder owner row if none exists yet (the
// account cannot log in until -username/-password provisions it) and
// inserts the sample watchlist.
func seed(ctx context.Context, users repository.UserRepository, movies repository.MovieRepository) error {
	_, err := users.First(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		user := &domain.User{Name: "Whxcer"}
		if _, err := users.Create(ctx, user); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	for i := range sampleMovies {
		movie := sampleMovies[i]
		if _, err := movies.Create(ctx, &movie); err != nil {
			return err
		}
	}
	return nil
}
