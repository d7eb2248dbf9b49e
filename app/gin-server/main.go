package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/init-club/Init-Website-sub000/config"
	"github.com/init-club/Init-Website-sub000/internal/api/handlers"
	"github.com/init-club/Init-Website-sub000/internal/api/middleware"
	"github.com/init-club/Init-Website-sub000/internal/api/routes"
	"github.com/init-club/Init-Website-sub000/internal/auth"
	"github.com/init-club/Init-Website-sub000/internal/cache"
	"github.com/init-club/Init-Website-sub000/internal/gate"
	"github.com/init-club/Init-Website-sub000/internal/logger"
	pgrepo "github.com/init-club/Init-Website-sub000/internal/repositories/postgres"
	"github.com/init-club/Init-Website-sub000/internal/services"
	"github.com/init-club/Init-Website-sub000/internal/workers"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("postgres init failed")
	}
	log.Info("postgres connected")

	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("redis init failed")
	}
	log.Info("redis connected")

	sb, err := config.LoadSupabase()
	if err != nil {
		log.WithError(err).Fatal("supabase config failed")
	}

	// Identity provider integration
	verifier := auth.NewTokenVerifier(sb)
	gotrue := auth.NewClient(sb)
	state := auth.NewStateSigner(sb.StateKey)

	watcher := auth.NewWatcher(config.RedisClient, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)
	defer watcher.Close()

	// Gates. The membership gate goes through the member_status()
	// procedure; the role gate reads the members table directly. The two
	// call shapes are equivalent by contract.
	denials := workers.NewDenialNotifier(config.RedisClient, log)
	membershipGate := gate.NewMembershipGate(pgrepo.NewRPCStatusQuery(config.PostgresDB), gotrue, denials, log)
	roleGate := gate.NewRoleGate(pgrepo.NewTableStatusQuery(config.PostgresDB), log)

	// Data plane
	rcache := cache.NewRedisCache(config.RedisClient)
	reviewFeed := workers.NewReviewNotifier(config.RedisClient, log)

	memberSvc := services.NewMemberService(pgrepo.NewMemberRepo(config.PostgresDB))
	blogSvc := services.NewBlogService(pgrepo.NewBlogRepo(config.PostgresDB), rcache, reviewFeed, log)
	projectSvc := services.NewProjectService(pgrepo.NewProjectRepo(config.PostgresDB))
	eventSvc := services.NewEventService(pgrepo.NewEventRepo(config.PostgresDB), rcache, log)
	ideaSvc := services.NewIdeaService(pgrepo.NewIdeaRepo(config.PostgresDB))

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Verifier:       verifier,
		MembershipGate: membershipGate,
		RoleGate:       roleGate,

		Auth:        handlers.NewAuthHandler(gotrue, state, watcher, sb.SiteURL, log),
		Member:      handlers.NewMemberHandler(memberSvc),
		Blog:        handlers.NewBlogHandler(blogSvc),
		Project:     handlers.NewProjectHandler(projectSvc),
		Event:       handlers.NewEventHandler(eventSvc),
		Idea:        handlers.NewIdeaHandler(ideaSvc),
		ReviewFeed:  handlers.NewReviewFeedHandler(config.RedisClient, log),
		SessionFeed: handlers.NewSessionFeedHandler(watcher, membershipGate, log),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
