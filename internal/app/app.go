package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EvgrafovDR/todolist-clone/internal/access"
	"github.com/EvgrafovDR/todolist-clone/internal/config"
	"github.com/EvgrafovDR/todolist-clone/internal/db"
	"github.com/EvgrafovDR/todolist-clone/internal/repository"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	UserService     *service.UserService
	BoardService    *service.BoardService
	CategoryService *service.CategoryService
	GoalService     *service.GoalService
	CommentService  *service.CommentService
	BotLinkService  *service.BotLinkService

	// GoalRepository is exposed for the bot process, which lists goals
	// without going through the HTTP permission layer.
	GoalRepository repository.GoalRepository
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return FromDB(cfg, database), nil
}

// FromDB wires services on an already migrated database handle.
func FromDB(cfg *config.Config, database *sqlx.DB) *App {
	userRepository := repository.NewUserRepository(database)
	boardRepository := repository.NewBoardRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	tgUserRepository := repository.NewTgUserRepository(database)

	checker := access.NewChecker(boardRepository)

	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.IsProduction(), cfg.JWTExpiry)
	userService := service.NewUserService(userRepository)
	boardService := service.NewBoardService(boardRepository, userRepository, checker)
	categoryService := service.NewCategoryService(categoryRepository, boardRepository, checker)
	goalService := service.NewGoalService(goalRepository, categoryRepository, checker)
	commentService := service.NewCommentService(commentRepository, goalRepository, checker)
	botLinkService := service.NewBotLinkService(tgUserRepository)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		UserService:     userService,
		BoardService:    boardService,
		CategoryService: categoryService,
		GoalService:     goalService,
		CommentService:  commentService,
		BotLinkService:  botLinkService,
		GoalRepository:  goalRepository,
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
