package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/init-club/Init-Website-sub000/internal/api/handlers"
	"github.com/init-club/Init-Website-sub000/internal/api/middleware"
	"github.com/init-club/Init-Website-sub000/internal/auth"
	"github.com/init-club/Init-Website-sub000/internal/gate"
)

type Deps struct {
	Verifier       *auth.TokenVerifier
	MembershipGate *gate.MembershipGate
	RoleGate       *gate.RoleGate

	Auth       *handlers.AuthHandler
	Member     *handlers.MemberHandler
	Blog       *handlers.BlogHandler
	Project    *handlers.ProjectHandler
	Event      *handlers.EventHandler
	Idea        *handlers.IdeaHandler
	ReviewFeed  *handlers.ReviewFeedHandler
	SessionFeed *handlers.SessionFeedHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.Use(middleware.Authenticate(d.Verifier))

	// OAuth surface
	r.GET("/auth/login", d.Auth.Login)
	r.GET("/auth/callback", d.Auth.Callback)
	r.POST("/auth/logout", middleware.RequireSession(), d.Auth.Logout)
	r.POST("/auth/refreshed", middleware.RequireSession(), d.Auth.Refreshed)

	// Per-tab session bootstrap: membership decisions stream here. Kept
	// outside the membership gate on purpose; its job is to deliver the
	// deny.
	r.GET("/session/feed", middleware.RequireSession(), d.SessionFeed.Feed)

	// Public pages
	r.GET("/blogs", d.Blog.ListPublished)
	r.GET("/blogs/:blog_id", d.Blog.Get)
	r.GET("/projects", d.Project.ListActive)
	r.GET("/projects/:project_id", d.Project.Get)
	r.GET("/graveyard", d.Project.Graveyard)
	r.GET("/events", d.Event.List)
	r.GET("/ideas", d.Idea.List)

	// Member area: session plus membership gate on every entry
	member := r.Group("/")
	member.Use(middleware.RequireSession(), middleware.RequireMembership(d.MembershipGate))

	member.GET("/members", d.Member.List)
	member.GET("/members/me", d.Member.Me)
	member.POST("/profile-setup", d.Member.CompleteProfile)
	member.POST("/blogs", d.Blog.Submit)
	member.POST("/ideas", d.Idea.Post)

	// Admin area: independent role gate on every entry
	admin := r.Group("/admin")
	admin.Use(middleware.RequireReviewer(d.RoleGate))

	admin.GET("/blogs/pending", d.Blog.ListPending)
	admin.POST("/blogs/:blog_id/review", d.Blog.Review)
	admin.PUT("/projects/:project_id", d.Project.Update)
	admin.POST("/events", d.Event.Create)
	admin.PUT("/events/:event_id", d.Event.Update)
	admin.DELETE("/events/:event_id", d.Event.Delete)
	admin.DELETE("/ideas/:idea_id", d.Idea.Delete)
	admin.GET("/review-feed", d.ReviewFeed.Feed)
}
