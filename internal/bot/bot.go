// Package bot runs the Telegram side of account linking: it registers
// unknown Telegram identities, hands out verification codes, and serves a
// read-only goal listing to linked users.
package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/EvgrafovDR/todolist-clone/internal/config"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/repository"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

const (
	msgGreeting   = "Hello! Here is your verification code: %s\nSubmit it in the application to link your account."
	msgNewCode    = "Your account is not linked yet. New verification code: %s"
	msgLinked     = "Your account is already linked. Send /goals to list your goals."
	msgNoGoals    = "You have no active goals."
	msgInternal   = "An internal error occurred. Please try again later."
	msgNeedToLink = "Link your account first: submit the verification code in the application."
)

type Bot struct {
	telebot        *telebot.Bot
	log            *slog.Logger
	botLinkService *service.BotLinkService
	goalRepository repository.GoalRepository
}

// New builds the telegram bot with a long poller configured from the
// application settings.
func New(
	cfg *config.Config,
	log *slog.Logger,
	botLinkService *service.BotLinkService,
	goalRepository repository.GoalRepository,
) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.BotToken,
		Poller: &telebot.LongPoller{
			Timeout: cfg.BotPollTimeout,
		},
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	b := &Bot{
		telebot:        tb,
		log:            log,
		botLinkService: botLinkService,
		goalRepository: goalRepository,
	}

	tb.Handle("/start", b.handleStart)
	tb.Handle("/goals", b.handleGoals)
	tb.Handle(telebot.OnText, b.handleText)

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	b.telebot.Start()
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	b.log.Info("stopping telegram bot")
	b.telebot.Stop()
}

func (b *Bot) handleStart(c telebot.Context) error {
	tgUser, created, err := b.register(c)
	if err != nil {
		return c.Send(msgInternal)
	}

	if tgUser.Linked() {
		return c.Send(msgLinked)
	}

	if created {
		return c.Send(fmt.Sprintf(msgGreeting, tgUser.VerificationCode))
	}

	return b.sendFreshCode(c, tgUser)
}

func (b *Bot) handleGoals(c telebot.Context) error {
	tgUser, _, err := b.register(c)
	if err != nil {
		return c.Send(msgInternal)
	}

	if !tgUser.Linked() {
		return c.Send(msgNeedToLink)
	}

	goals, err := b.goalRepository.ForUser(*tgUser.UserID)
	if err != nil {
		b.log.Error("failed to list goals", slog.Int64("tg_id", tgUser.TgID), slog.Any("error", err))
		return c.Send(msgInternal)
	}

	if len(goals) == 0 {
		return c.Send(msgNoGoals)
	}

	return c.Send(formatGoals(goals))
}

// handleText answers any other message: linked users get a hint, unlinked
// users get a fresh verification code.
func (b *Bot) handleText(c telebot.Context) error {
	tgUser, created, err := b.register(c)
	if err != nil {
		return c.Send(msgInternal)
	}

	if tgUser.Linked() {
		return c.Send(msgLinked)
	}

	if created {
		return c.Send(fmt.Sprintf(msgGreeting, tgUser.VerificationCode))
	}

	return b.sendFreshCode(c, tgUser)
}

func (b *Bot) register(c telebot.Context) (*model.TgUser, bool, error) {
	sender := c.Sender()
	if sender == nil {
		return nil, false, fmt.Errorf("update has no sender")
	}

	var chatID int64
	if c.Chat() != nil {
		chatID = c.Chat().ID
	}

	tgUser, created, err := b.botLinkService.Register(sender.ID, chatID, sender.Username)
	if err != nil {
		b.log.Error("failed to register telegram user", slog.Int64("tg_id", sender.ID), slog.Any("error", err))
		return nil, false, err
	}

	return tgUser, created, nil
}

func (b *Bot) sendFreshCode(c telebot.Context, tgUser *model.TgUser) error {
	err := b.botLinkService.RotateCode(tgUser)
	if err != nil {
		b.log.Error("failed to rotate verification code", slog.Int64("tg_id", tgUser.TgID), slog.Any("error", err))
		return c.Send(msgInternal)
	}

	return c.Send(fmt.Sprintf(msgNewCode, tgUser.VerificationCode))
}

func formatGoals(goals []*model.Goal) string {
	out := "Your goals:\n"
	for _, g := range goals {
		out += fmt.Sprintf("- %s\n", g.Title)
	}
	return out
}
