package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/ffoods/quickbill/checkout"
	"github.com/ffoods/quickbill/config"
	"github.com/ffoods/quickbill/database"
	"github.com/ffoods/quickbill/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.Init()

	if err := database.ConnectAndMigrate(); err != nil {
		logrus.Fatalf("failed to initialize database, error: %v", err)
	}

	var billSink checkout.Exporter
	if dir := config.BillArchiveDir(); dir != "" {
		billSink = &checkout.FileExporter{Dir: dir}
	}

	svr := server.SetupRoutes(billSink)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("quickbill listening on %s", config.Port())
		if err := svr.Run(config.Port()); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server stopped, error: %v", err)
		}
	}()

	<-done
	logrus.Info("shutting down...")

	var errs error
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := database.Shutdown(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		logrus.WithError(errs).Error("shutdown finished with errors")
		os.Exit(1)
	}
	logrus.Info("shutdown complete")
}
