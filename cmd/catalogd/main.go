package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nexcommerce/catalogd/config"
	"github.com/nexcommerce/catalogd/internal/adminapi"
	"github.com/nexcommerce/catalogd/internal/app"
	"github.com/nexcommerce/catalogd/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	x        = flag.Bool("x", false, "drop and recreate the database schema, then exit")
	conffile = flag.String("c", "", "config file path")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *x {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	ws := webserver.New(cfg)
	adminapi.InitRouter(ws, application)

	go func() {
		if err := ws.Start(); err != nil {
			zap.L().Error("web server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	_ = ws.Shutdown()
}
