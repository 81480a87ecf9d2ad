package routes

import (
	"net/http"

	"github.com/EvgrafovDR/todolist-clone/internal/app"
	"github.com/EvgrafovDR/todolist-clone/internal/handler"
	"github.com/EvgrafovDR/todolist-clone/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	board := handler.NewBoardHandler(app.BoardService)
	category := handler.NewCategoryHandler(app.CategoryService)
	goal := handler.NewGoalHandler(app.GoalService)
	comment := handler.NewCommentHandler(app.CommentService)
	bot := handler.NewBotHandler(app.BotLinkService)

	mux := http.NewServeMux()

	// Auth flow (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /core/signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /core/login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /core/profile", middleware.RequireAuth(auth.Profile))
	mux.HandleFunc("PUT /core/profile", middleware.RequireAuth(auth.UpdateProfile))
	mux.HandleFunc("DELETE /core/profile", middleware.RequireAuth(auth.Logout))
	mux.HandleFunc("PUT /core/update_password", middleware.RequireAuth(auth.UpdatePassword))

	// Boards
	mux.HandleFunc("POST /goals/board/create", middleware.RequireAuth(board.Create))
	mux.HandleFunc("GET /goals/board/list", middleware.RequireAuth(board.List))
	mux.HandleFunc("GET /goals/board/{id}", middleware.RequireAuth(board.Retrieve))
	mux.HandleFunc("PUT /goals/board/{id}", middleware.RequireAuth(board.Update))
	mux.HandleFunc("DELETE /goals/board/{id}", middleware.RequireAuth(board.Delete))

	// Goal categories
	mux.HandleFunc("POST /goals/goal_category/create", middleware.RequireAuth(category.Create))
	mux.HandleFunc("GET /goals/goal_category/list", middleware.RequireAuth(category.List))
	mux.HandleFunc("GET /goals/goal_category/{id}", middleware.RequireAuth(category.Retrieve))
	mux.HandleFunc("PUT /goals/goal_category/{id}", middleware.RequireAuth(category.Update))
	mux.HandleFunc("DELETE /goals/goal_category/{id}", middleware.RequireAuth(category.Delete))

	// Goals
	mux.HandleFunc("POST /goals/goal/create", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /goals/goal/list", middleware.RequireAuth(goal.List))
	mux.HandleFunc("GET /goals/goal/{id}", middleware.RequireAuth(goal.Retrieve))
	mux.HandleFunc("PUT /goals/goal/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /goals/goal/{id}", middleware.RequireAuth(goal.Delete))

	// Goal comments
	mux.HandleFunc("POST /goals/goal_comment/create", middleware.RequireAuth(comment.Create))
	mux.HandleFunc("GET /goals/goal_comment/list", middleware.RequireAuth(comment.List))
	mux.HandleFunc("GET /goals/goal_comment/{id}", middleware.RequireAuth(comment.Retrieve))
	mux.HandleFunc("PUT /goals/goal_comment/{id}", middleware.RequireAuth(comment.Update))
	mux.HandleFunc("DELETE /goals/goal_comment/{id}", middleware.RequireAuth(comment.Delete))

	// Telegram account linking
	mux.HandleFunc("PATCH /bot/verify", middleware.RequireAuth(bot.Verify))

	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.Auth(app.AuthService, app.UserService),
	)
}
