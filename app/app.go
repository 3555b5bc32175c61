package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
	"github.com/govindrajkumar/easy-lease-sub000/app/esign"
	"github.com/govindrajkumar/easy-lease-sub000/app/jwtauth"
	"github.com/govindrajkumar/easy-lease-sub000/app/notification"
	"github.com/govindrajkumar/easy-lease-sub000/app/reminder"
	"github.com/govindrajkumar/easy-lease-sub000/app/trigger"
	"github.com/govindrajkumar/easy-lease-sub000/cache"
	"github.com/govindrajkumar/easy-lease-sub000/hellosign"
	"github.com/govindrajkumar/easy-lease-sub000/model"
	"github.com/govindrajkumar/easy-lease-sub000/mongodatabase"
	"github.com/govindrajkumar/easy-lease-sub000/push"
	"github.com/govindrajkumar/easy-lease-sub000/storage"
)

// App our application
type App struct {
	Config              *config.Config
	Repos               *model.Repos
	DB                  *mongodatabase.Database
	Cache               *cache.Cache
	NotificationService notification.Service
	ReminderService     reminder.Service
	TriggerService      trigger.Service
	ESignService        esign.Service
	JWTService          jwtauth.Service
}

// NewContext create new request context
func (a *App) NewContext() *Context {
	return &Context{
		Logger: logrus.StandardLogger(),
	}
}

// New create a new app connected to the configured stores and providers
func New(ctx context.Context) (app *App, err error) {
	appConf, err := config.InitConfig()
	if err != nil {
		return nil, err
	}

	mongoDBConf, err := mongodatabase.InitConfig()
	if err != nil {
		return nil, err
	}

	cacheConf, err := cache.InitConfig()
	if err != nil {
		return nil, err
	}

	pushConf, err := push.InitConfig()
	if err != nil {
		return nil, err
	}

	storageConf, err := storage.InitConfig()
	if err != nil {
		return nil, err
	}

	helloSignConf, err := hellosign.InitConfig()
	if err != nil {
		return nil, err
	}

	db, err := mongodatabase.New(ctx, mongoDBConf)
	if err != nil {
		return nil, err
	}

	pushSender, err := push.New(pushConf)
	if err != nil {
		db.Close()
		return nil, err
	}

	fileStorage, err := storage.New(storageConf)
	if err != nil {
		db.Close()
		return nil, err
	}

	repos := &model.Repos{
		Users:         mongodatabase.NewUserRepo(db.DB),
		Properties:    mongodatabase.NewPropertyRepo(db.DB),
		Leases:        mongodatabase.NewLeaseRepo(db.DB),
		RentPayments:  mongodatabase.NewRentPaymentRepo(db.DB),
		RentReminders: mongodatabase.NewRentReminderRepo(db.Client, db.DB),
		Storage:       fileStorage,
		Push:          pushSender,
		ESign:         hellosign.New(helloSignConf),
	}

	var redisCache *cache.Cache
	if cacheConf.Enabled {
		redisCache = cache.New(cacheConf)
		if err := redisCache.Ping(); err != nil {
			logrus.WithError(err).Warn("cache unavailable, change events will not be deduplicated")
			redisCache.Close()
			redisCache = nil
		} else {
			repos.Cache = redisCache
		}
	}

	app = NewWithRepos(appConf, repos)
	app.DB = db
	app.Cache = redisCache
	return app, nil
}

// NewWithRepos builds the services over already constructed repositories
func NewWithRepos(conf *config.Config, repos *model.Repos) *App {
	notificationService := notification.NewService(repos, conf)
	return &App{
		Config:              conf,
		Repos:               repos,
		NotificationService: notificationService,
		ReminderService:     reminder.NewService(repos, conf),
		TriggerService:      trigger.NewService(repos, conf, notificationService),
		ESignService:        esign.NewService(repos, conf),
		JWTService:          jwtauth.NewService(conf),
	}
}

// Close closes application handles and connections
func (a *App) Close() {
	logrus.Info("Closing Connection to database")

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logrus.Error("unable to close connection to database", err)
		}
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			logrus.Error("unable to close connection to cache", err)
		}
	}
}

// ValidationError error when inputs are invalid
type ValidationError struct {
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserError when user is disallowed from resource
type UserError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *UserError) Error() string {
	return e.Message
}
