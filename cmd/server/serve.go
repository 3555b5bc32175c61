package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/govindrajkumar/easy-lease-sub000/api"
	"github.com/govindrajkumar/easy-lease-sub000/app"
	"github.com/govindrajkumar/easy-lease-sub000/mongodatabase"
	"github.com/govindrajkumar/easy-lease-sub000/scheduler"
	"github.com/govindrajkumar/easy-lease-sub000/storage"
	"github.com/govindrajkumar/easy-lease-sub000/util"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serves the easylease api, reminder schedule and change watchers",
		RunE:  run,
	}
}

func SetLogs() {
	now := time.Now()
	logFileName := now.Format("2006-01-02") + ".log"
	logFilePath := path.Join("./storage/logs", logFileName)

	if err := os.MkdirAll("./storage/logs", 0755); err != nil {
		logrus.Error("error creating log directory:", err)
		return
	}

	file, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		logrus.Error("error opening log file:", err)
		return
	}

	logrus.SetOutput(io.MultiWriter(os.Stdout, file))
	logrus.SetFormatter(&logrus.JSONFormatter{
		DisableHTMLEscape: true,
		TimestampFormat:   "2006-01-02 15:04:05",
	})
	logrus.SetReportCaller(true)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	api, err := api.New(app)
	if err != nil {
		return err
	}
	if api.Config.LogToFile {
		SetLogs()
	}

	// a sweep in flight at shutdown runs to completion
	sched, err := scheduler.New(context.WithoutCancel(ctx), &app.Config.Reminder, app.ReminderService)
	if err != nil {
		return err
	}
	sched.Start()
	logrus.WithField("next", sched.Next()).Info("rent reminder sweep scheduled")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		defer wg.Done()
		defer cancel()
		files, _ := app.Repos.Storage.(*storage.LocalStorage)
		serveAPI(ctx, api, files)
	}()

	if app.Config.Trigger.Enabled {
		wg.Add(1)
		go func() {
			defer util.RecoverGoroutinePanic(nil)
			defer wg.Done()
			watchChanges(ctx, app)
		}()
	}

	<-ctx.Done()
	logrus.Info("signal caught. shutting down...")
	sched.Stop()
	wg.Wait()
	return nil
}

func watchChanges(ctx context.Context, app *app.App) {
	watcher := mongodatabase.NewWatcher(app.DB.DB, app.Repos.Cache, app.TriggerService.Collections(), app.TriggerService.Handle)
	if err := watcher.EnablePreImages(ctx); err != nil {
		logrus.WithError(err).Warn("pre-images unavailable, deletes may arrive without a document")
	}
	if err := watcher.Run(ctx); err != nil {
		logrus.WithError(err).Error("change watcher stopped")
	}
}

func serveAPI(ctx context.Context, api *api.API, files *storage.LocalStorage) {
	cors := handlers.CORS(
		handlers.AllowCredentials(),
		handlers.AllowedOrigins(api.Config.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "Cookie", "X-Requested-With", "Origin", api.Config.AuthCookieName}),
	)

	router := mux.NewRouter()
	router.Use(cors)
	router.HandleFunc("/healthz", api.HealthCheck)
	api.Init(router.PathPrefix("/api").Subrouter().StrictSlash(true))
	if files != nil {
		router.PathPrefix("/files/").Handler(http.StripPrefix("/files/", files.Handler()))
	}

	s := &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		Handler:      handlers.RecoveryHandler()(router),
		ReadTimeout:  api.Config.ReadTimeout,
		WriteTimeout: api.Config.WriteTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), api.Config.CloseTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logrus.Error(err)
		}
		close(done)
	}()

	logrus.Infof("serving api at http://127.0.0.1:%d", api.Config.Port)
	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		logrus.Error(err)
		return
	}
	<-done
}
