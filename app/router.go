package app

import (
	"fmt"
	"strings"
	"time"

	"mediakeep/media-api/app/file"
	"mediakeep/media-api/app/metadata"
	"mediakeep/media-api/app/root"
	"mediakeep/media-api/app/tenant"
	"mediakeep/media-api/app/upload"
	"mediakeep/media-api/app/user"
	"mediakeep/media-api/app/video"
	"mediakeep/media-api/aws"
	"mediakeep/media-api/db"
	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/media"
	"mediakeep/media-api/internal/service"
	"mediakeep/media-api/internal/storage"
	"mediakeep/media-api/pkg/middleware"
	"mediakeep/media-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TODO: use redis
var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	logger, err := makeLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger, %w", err)
	}
	zap.ReplaceGlobals(logger)

	d := &internal.Deps{
		Argon: security.New(),
	}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	d.Store = storage.NewS3Store(s3)

	queue := media.NewJobQueue()
	queue.StartWorkerPool()

	d.Media = media.NewTransformer(queue)
	d.Uploader = service.NewUploader(d.DB, d.Store, d.Media)

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Range"},
			ExposeHeaders:    []string{"Content-Length", "Content-Range"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		middleware.NewMetricsMiddleware(),
		ginzap.Ginzap(logger, time.RFC3339, false),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	rateLimit := viper.GetInt("security.rate_limit")

	jwt := middleware.NewJWTMiddleware()
	optJWT := middleware.NewOptionalJWTMiddleware()
	bodyLimit := middleware.BodySizeLimiter(viper.GetInt64("upload.max_size"))
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		m.GET("/validate", jwt, root.Validate)

		// POST /api/upload		-> Runs the full upload pipeline
		m.POST("/upload", jwt, bodyLimit, func(c *gin.Context) { upload.Upload(c, d) })

		// GET /api/my-files		-> Lists the requester's tenant files
		m.GET("/my-files", jwt, func(c *gin.Context) { file.FileList(c, d) })

		// GET /api/my-videos		-> Lists the requester's tenant videos
		m.GET("/my-videos", jwt, func(c *gin.Context) { video.VideoList(c, d) })

		// GET /api/metadata		-> Extracted metadata by videoId or blobName
		m.GET("/metadata", optJWT, func(c *gin.Context) { metadata.MetadataFetch(c, d) })
	}

	u := m.Group("/users")
	{
		// GET /api/users		-> Returns the basic info of a user
		u.GET("", jwt, func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/users 		-> Registers a new user
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user and returns a JWT token
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })
	}

	t := m.Group("/tenants", jwt)
	{
		// GET /api/tenants		-> Lists tenants with their user counts
		t.GET("", cacheFor(60), func(c *gin.Context) { tenant.TenantList(c, d) })

		// POST /api/tenants/switch	-> Moves the user to another tenant
		t.POST("/switch", func(c *gin.Context) { tenant.TenantSwitch(c, d) })
	}

	ff := m.Group("/files")
	{
		// GET /api/files/:id		-> Returns a file by its public ID
		ff.GET("/:id", optJWT, func(c *gin.Context) { file.FileFetch(c, d) })

		// GET /api/files/:id/download	-> Streams the file as an attachment
		ff.GET("/:id/download", optJWT, func(c *gin.Context) { file.FileDownload(c, d) })

		// GET /api/files/:id/serve	-> Streams the file inline
		ff.GET("/:id/serve", optJWT, func(c *gin.Context) { file.FileServe(c, d) })

		// POST /api/files/:id/visibility -> Changes who can see the file
		ff.POST("/:id/visibility", jwt, func(c *gin.Context) { file.FileVisibility(c, d) })
	}

	v := m.Group("/videos")
	{
		// GET /api/videos/:id		-> Returns a video by its public ID
		v.GET("/:id", optJWT, func(c *gin.Context) { video.VideoFetch(c, d) })

		// GET /api/videos/:id/download	-> Streams the video as an attachment
		v.GET("/:id/download", optJWT, func(c *gin.Context) { video.VideoDownload(c, d) })

		// GET /api/videos/:id/serve	-> Streams the video inline
		v.GET("/:id/serve", optJWT, func(c *gin.Context) { video.VideoServe(c, d) })

		// GET /api/videos/:id/thumbnail -> Streams the still-frame thumbnail
		v.GET("/:id/thumbnail", optJWT, func(c *gin.Context) { video.VideoThumbnail(c, d) })

		// POST /api/videos/:id/visibility -> Changes who can see the video
		v.POST("/:id/visibility", jwt, func(c *gin.Context) { video.VideoVisibility(c, d) })
	}

	return router, nil
}

func makeLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(viper.GetString("app.log_level"))
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true

	return cfg.Build()
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
