package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	pkg "git.solsynth.dev/hypernet/journal/pkg/internal"
	"git.solsynth.dev/hypernet/journal/pkg/internal/cache"
	"git.solsynth.dev/hypernet/journal/pkg/internal/cli"
	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"git.solsynth.dev/hypernet/journal/pkg/internal/grpc"
	"git.solsynth.dev/hypernet/journal/pkg/internal/http"
	"git.solsynth.dev/hypernet/journal/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/journal/pkg/internal/http/views"
	"git.solsynth.dev/hypernet/journal/pkg/internal/media"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("     _                              _\n    | | ___  _   _ _ __ _ __   __ _| |\n _  | |/ _ \\| | | | '__| '_ \\ / _` | |\n| |_| | (_) | |_| | |  | | | | (_| | |\n \\___/ \\___/ \\__,_|_|  |_| |_|\\__,_|_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Journal"), pkg.AppVersion)
	fmt.Printf("The blogging service in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("Loaded environment variables from .env file.")
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("journal")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("bind", "0.0.0.0:8000")
	viper.SetDefault("grpc_bind", "0.0.0.0:7000")
	viper.SetDefault("database.dsn", "sqlite:journal.sqlite3?_foreign_keys=on")
	viper.SetDefault("cache.index_ttl", api.DefaultIndexTTL)
	viper.SetDefault("media.driver", "local")
	viper.SetDefault("media.max_size", api.DefaultMaxImageSize)

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}
	if len(viper.GetString("security.secret")) == 0 {
		log.Fatal().Msg("The security.secret setting is required to sign sessions.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Administration commands
	if len(os.Args) > 1 {
		if err := cli.Run(os.Stdout, os.Args[1:]); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when running command.")
		}
		return
	}

	// Prepare caches and storage
	pages, err := cache.NewPageCache(viper.GetInt64("cache.max_cost"))
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}
	defer pages.Close()

	store, err := media.NewStoreFromSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing media store.")
	}

	// Server
	server := http.NewServer(&api.Handler{
		Pages:        pages,
		Media:        store,
		IndexTTL:     viper.GetDuration("cache.index_ttl"),
		MaxImageSize: viper.GetInt64("media.max_size"),
	}, views.NewRenderer(store))
	go server.Listen()

	rpc := grpc.NewGrpc()
	go func() {
		if err := rpc.Listen(); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when starting grpc server...")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	rpc.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server...")
	}
}
