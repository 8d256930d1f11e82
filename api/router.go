// Package api contains all endpoints available
package api

import (
	"context"
	"fmt"
	"time"

	"pioo/tugas-api/db"
	"pioo/tugas-api/middleware"
	"pioo/tugas-api/security"
	"pioo/tugas-api/storage"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Store  storage.BlobStore
}

// NewRouter wires the production dependencies (configured database,
// S3 blob store) and builds the router around them.
func NewRouter() (*API, error) {
	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	makeLogger()

	store, err := storage.NewS3(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store, %w", err)
	}

	return New(d, store), nil
}

// New builds the router on top of explicitly provided stores. Tests use
// this directly with throwaway backends.
func New(d *gorm.DB, store storage.BlobStore) *API {
	a := &API{
		DB:    d,
		Argon: security.New(),
		Store: store,
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("cors.allowed_origins"),
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 5 << 20

	auth := middleware.NewOptionalAuthMiddleware()
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// GET /api/galeri		-> Lists all galeri objects
		main.GET("/galeri", a.GaleriList)
	}

	authGroup := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register 	-> Creates a new account
		authGroup.POST("/register", a.AuthRegister)

		// POST /api/auth/login 	-> Verifies an account
		authGroup.POST("/login", a.AuthLogin)
	}

	tugas := main.Group("/tugas")
	{
		// POST /api/tugas/upload	-> Uploads a new file with its metadata
		tugas.POST("/upload", auth, middleware.BodySizeLimiter(maxUploadSize), a.FileUpload)

		// GET /api/tugas		-> Lists all non-galeri objects
		tugas.GET("", a.TugasList)

		// POST /api/tugas/verify-password/:id -> Legacy private file password check
		tugas.POST("/verify-password/:id", a.FileVerifyPassword)

		// GET /api/tugas/download/:id	-> Legacy download route
		tugas.GET("/download/:id", a.FileDownload)

		// DELETE /api/tugas/:id	-> Legacy delete route
		tugas.DELETE("/:id", a.FileDelete)
	}

	files := main.Group("/files")
	{
		// GET /api/files/view/:id	-> Streams a file inline for previews
		files.GET("/view/:id", a.FileView)

		// GET /api/files/download/:id	-> Streams a file as an attachment
		files.GET("/download/:id", a.FileDownload)

		// DELETE /api/files/:id	-> Removes a file and its metadata
		files.DELETE("/:id", a.FileDelete)
	}

	// Everything else is the SPA bundle
	router.NoRoute(a.ServeSPA)

	return a
}

// Close releases the database handle. The blob store holds no
// connections of its own.
func (a *API) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
