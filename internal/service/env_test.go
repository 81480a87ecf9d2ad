package service_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/EvgrafovDR/todolist-clone/internal/access"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/repository"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
	"github.com/EvgrafovDR/todolist-clone/internal/testutil"
)

// env wires the full service layer onto a migrated throwaway database.
type env struct {
	db *sqlx.DB

	boards     *service.BoardService
	categories *service.CategoryService
	goals      *service.GoalService
	comments   *service.CommentService
	auth       *service.AuthService
	botlink    *service.BotLinkService

	goalRepo repository.GoalRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()

	database := testutil.NewDB(t)

	userRepo := repository.NewUserRepository(database)
	boardRepo := repository.NewBoardRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	tgUserRepo := repository.NewTgUserRepository(database)

	checker := access.NewChecker(boardRepo)

	return &env{
		db:         database,
		boards:     service.NewBoardService(boardRepo, userRepo, checker),
		categories: service.NewCategoryService(categoryRepo, boardRepo, checker),
		goals:      service.NewGoalService(goalRepo, categoryRepo, checker),
		comments:   service.NewCommentService(commentRepo, goalRepo, checker),
		auth:       service.NewAuthService(userRepo, "test-secret", false, time.Hour),
		botlink:    service.NewBotLinkService(tgUserRepo),
		goalRepo:   goalRepo,
	}
}

func (e *env) user(t *testing.T, username string) *model.User {
	t.Helper()
	return testutil.CreateUser(t, e.db, username)
}
