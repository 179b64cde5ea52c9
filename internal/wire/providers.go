package wire

import (
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"parentforum/internal/common"
	"parentforum/internal/config"
	"parentforum/internal/dbmongo"
	"parentforum/internal/forum"
	"parentforum/internal/media"
	"parentforum/internal/notif"
)

// Application is everything cmd/forum-svc needs to serve and shut down.
type Application struct {
	Config        *config.Config
	DB            *gorm.DB
	Mongo         *dbmongo.MongoClient
	Router        *mux.Router
	Notifications *notif.NotificationManager
}

// ProvideNotificationManager starts the worker pool with the database
// observer already subscribed.
func ProvideNotificationManager(cfg *config.Config, writer notif.NotificationWriter) *notif.NotificationManager {
	manager := notif.NewNotificationManager(cfg.Notification.Workers, cfg.Notification.ChannelBufferSize)
	manager.Subscribe(notif.NewDatabaseNotificationObserver(writer))
	return manager
}

func ProvideTokenVerifier(cfg *config.Config) *common.TokenVerifier {
	return common.NewTokenVerifier(cfg.Auth.JWTSecret)
}

func ProvideMediaServer(cfg *config.Config, blobs media.BlobStore, refs media.RefStore) *media.HTTPServer {
	return media.NewHTTPServer(blobs, refs, cfg.Server.MediaBaseURL, cfg.Media.MaxUploadMB)
}

// ProvideRouter mounts the forum API behind the auth middleware. Media
// downloads stay public so <img> tags work without a token.
func ProvideRouter(
	verifier *common.TokenVerifier,
	accounts common.AccountStore,
	profiles common.ProfileSyncer,
	forumHandlers *forum.ForumHandlers,
	notifHandler *notif.NotificationHandler,
	mediaServer *media.HTTPServer,
) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1/forum").Subrouter()
	api.Use(common.AuthMiddleware(verifier, accounts, profiles))

	forumHandlers.RegisterRoutes(api)
	notifHandler.RegisterRoutes(api)
	mediaServer.RegisterRoutes(router, api)

	return router
}
