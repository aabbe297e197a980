package router

import (
	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/metrics"
	"app/internal/middleware"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/service"
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the full request path: DB, storage and event clients,
// repositories, services, handlers and the middleware chain.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	// 1. Open DB connection (connection pooling)
	db, err := sql.Open("pgx", cfg.DBConnectionString)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Initialize S3 client for avatar uploads
	s3Config, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, nil, err
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		if cfg.S3URL != "" {
			o.BaseEndpoint = aws.String(cfg.S3URL)
		}
		o.UsePathStyle = true
	})

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize review event publisher; disabled without a project ID
	var publisher pubsub.Publisher
	if cfg.GCPProjectID != "" {
		p, err := pubsub.NewPublisher(context.Background(), cfg.GCPProjectID)
		if err != nil {
			return nil, nil, err
		}
		publisher = p
	} else {
		logger.Warn().Msg("GCP_PROJECT_ID not set, review events disabled")
	}

	// 5. Initialize repositories & services & handlers
	profileRepo := repository.NewProfileRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	userSvc := service.NewUserService(profileRepo, reviewRepo, cfg.JWTSecret)
	courseSvc := service.NewCourseService(courseRepo, reviewRepo)
	reviewSvc := service.NewReviewService(reviewRepo, courseRepo, publisher, cfg.ReviewEventTopic, logger)
	photoSvc := service.NewPhotoService(s3Client, cfg.S3Bucket, logger)

	userHandler := handler.NewUserHandler(userSvc, photoSvc, validate, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, logger)
	reviewHandler := handler.NewReviewHandler(reviewSvc, validate, logger)

	// 6. Initialize middleware. Rate limiting runs after session resolution
	// so signed-in clients are keyed by user ID instead of a shared IP.
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	optionalAuthMiddleware := middleware.OptionalAuthMiddleware(cfg.JWTSecret)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	authChain := func(next http.Handler) http.Handler {
		return authMiddleware(rateLimiter.Middleware(next))
	}
	optionalChain := func(next http.Handler) http.Handler {
		return optionalAuthMiddleware(rateLimiter.Middleware(next))
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 7. Create ServeMux router
	apiV1Mux := http.NewServeMux()
	userHandler.RegisterRoutes(apiV1Mux, authChain, optionalChain)
	courseHandler.RegisterRoutes(apiV1Mux, optionalChain)
	reviewHandler.RegisterRoutes(apiV1Mux, authChain)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.Handle("/metrics", metrics.Handler(registry))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(collector.Middleware(c.Handler(mux))), db, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services. See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
