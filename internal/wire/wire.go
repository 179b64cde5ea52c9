//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"parentforum/internal/common"
	"parentforum/internal/config"
	"parentforum/internal/dbmongo"
	"parentforum/internal/dbmysql"
	"parentforum/internal/forum"
	"parentforum/internal/media"
	"parentforum/internal/notif"
	"parentforum/internal/profile"
)

var storeSet = wire.NewSet(
	dbmysql.NewMySQL,
	dbmongo.NewMongoConnection,
	forum.NewForumRepository,
	wire.Bind(new(forum.Store), new(*forum.ForumRepository)),
	dbmysql.NewNotificationRepository,
	wire.Bind(new(notif.NotificationStore), new(*dbmysql.NotificationRepository)),
	wire.Bind(new(notif.NotificationWriter), new(*dbmysql.NotificationRepository)),
	dbmysql.NewProfileRepository,
	wire.Bind(new(profile.ProfileStore), new(*dbmysql.ProfileRepository)),
	wire.Bind(new(common.ProfileSyncer), new(*dbmysql.ProfileRepository)),
	dbmysql.NewMediaRefRepository,
	wire.Bind(new(media.RefStore), new(*dbmysql.MediaRefRepository)),
	dbmongo.NewAccountStore,
	wire.Bind(new(common.AccountStore), new(*dbmongo.AccountStore)),
	wire.Bind(new(profile.AccountLookup), new(*dbmongo.AccountStore)),
	dbmongo.NewMediaStorage,
	wire.Bind(new(media.BlobStore), new(*dbmongo.MediaStorage)),
)

var serviceSet = wire.NewSet(
	profile.NewResolver,
	wire.Bind(new(forum.IdentityResolver), new(*profile.Resolver)),
	wire.Bind(new(notif.IdentityResolver), new(*profile.Resolver)),
	ProvideNotificationManager,
	wire.Bind(new(common.Subject), new(*notif.NotificationManager)),
	notif.NewFanOut,
	wire.Bind(new(forum.Notifier), new(*notif.FanOut)),
	forum.NewForumService,
	wire.Bind(new(forum.ForumUsecase), new(*forum.ForumService)),
	notif.NewNotificationService,
	wire.Bind(new(notif.NotificationUsecase), new(*notif.NotificationService)),
)

var httpSet = wire.NewSet(
	ProvideTokenVerifier,
	forum.NewForumHandlers,
	notif.NewNotificationHandler,
	ProvideMediaServer,
	ProvideRouter,
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		config.LoadConfig,
		storeSet,
		serviceSet,
		httpSet,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
