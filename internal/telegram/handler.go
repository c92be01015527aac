package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PoluyanbIch/ZooTotemBot/internal/service"
)

// Sender is the subset of *tgbotapi.BotAPI used to talk to users.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Options struct {
	// AssetsDir holds animal images named by the table's image field.
	AssetsDir string
	// AnswerDelay is the pause between echoing an answer and the next question.
	AnswerDelay time.Duration
	GuardianURL string
	Debug       bool

	Board    service.ResultBoard
	Notifier Notifier
	Logger   *slog.Logger
}

type Bot struct {
	api      *tgbotapi.BotAPI
	out      Sender
	engine   *service.Engine
	board    service.ResultBoard
	notifier Notifier
	logger   *slog.Logger
	opts     Options

	mu    sync.Mutex
	flows map[int64]*userFlow
}

// userFlow is everything the bot remembers about one user. mu serializes
// handling of that user's updates, so a duplicated callback cannot submit the
// same answer twice.
type userFlow struct {
	mu       sync.Mutex
	session  *service.QuizSession
	promptID int
}

func NewBot(token string, engine *service.Engine, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = opts.Debug

	b := newBot(api, engine, opts)
	b.api = api
	return b, nil
}

func newBot(out Sender, engine *service.Engine, opts Options) *Bot {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Board == nil {
		opts.Board = service.NewMemoryResultBoard()
	}
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{Logger: opts.Logger}
	}
	return &Bot{
		out:      out,
		engine:   engine,
		board:    opts.Board,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		opts:     opts,
		flows:    make(map[int64]*userFlow),
	}
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("authorised", "account", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	err := b.serve(ctx, updates)
	b.api.StopReceivingUpdates()
	return err
}

// serve handles every update in its own goroutine. Updates of a single user
// are serialized by their userFlow. serve returns when ctx is cancelled or
// updates is closed, after the handlers in flight have finished.
func (b *Bot) serve(ctx context.Context, updates <-chan tgbotapi.Update) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Go(func() {
				b.handleUpdate(ctx, update)
			})
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	user := sender(msg.From, chatID)

	switch msg.Command() {
	case "start":
		b.sendMainMenu(chatID)
	case "quiz":
		b.startQuiz(chatID, user)
	case "help":
		b.sendMessage(chatID, helpText)
	case "info":
		b.handleInfo(chatID)
	case "result":
		b.showResult(chatID, user)
	case "stats":
		b.handleStats(chatID)
	case "":
		text := strings.TrimSpace(msg.Text)
		switch {
		case strings.HasPrefix(text, "Feedback"):
			b.handleFeedback(ctx, chatID, user, text)
		case strings.EqualFold(text, "Confirm"):
			b.handleConfirm(ctx, chatID, user)
		default:
			b.sendMessage(chatID, defaultResponseText)
		}
	default:
		b.sendMessage(chatID, defaultResponseText)
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.out.Request(callbackConfig); err != nil {
		b.logger.Warn("answer callback", "error", err)
	}
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data
	user := sender(callback.From, chatID)

	switch {
	case data == "start_quiz", data == "restart_quiz":
		b.startQuiz(chatID, user)
	case strings.HasPrefix(data, answerPrefix):
		b.handleQuizAnswer(chatID, user, data)
	case data == "show_result":
		b.showResult(chatID, user)
	case data == "get_result":
		b.sendResultCard(chatID, user)
	case data == "guardian":
		b.sendGuardianInfo(chatID)
	case data == "back_to_menu":
		b.sendMainMenu(chatID)
	case data == "info":
		b.handleInfo(chatID)
	case data == "stats":
		b.handleStats(chatID)
	default:
		b.sendMessage(chatID, defaultResponseText)
	}
}

// userRef identifies who sent an update. Private chats without a From fall
// back to the chat ID.
type userRef struct {
	ID       int64
	Username string
	Name     string
}

func sender(from *tgbotapi.User, chatID int64) userRef {
	if from == nil {
		return userRef{ID: chatID}
	}
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	return userRef{ID: from.ID, Username: from.UserName, Name: name}
}

// flow returns the user's flow, locked. Callers must unlock it.
func (b *Bot) flow(userID int64) *userFlow {
	b.mu.Lock()
	f, ok := b.flows[userID]
	if !ok {
		f = &userFlow{}
		b.flows[userID] = f
	}
	b.mu.Unlock()

	f.mu.Lock()
	return f
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐾 QUIZ", "start_quiz"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Popular animals", "stats"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Info", "info"),
			tgbotapi.NewInlineKeyboardButtonData("🤝 Become a guardian?", "guardian"),
		),
	)
	b.send(msg, "main menu")
}

func (b *Bot) handleInfo(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, infoText)
	rows := [][]tgbotapi.InlineKeyboardButton{}
	if b.opts.GuardianURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Guardianship program", b.opts.GuardianURL),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "back_to_menu"),
	))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg, "info")
}

func (b *Bot) handleStats(chatID int64) {
	top := b.board.GetTop(5)
	if len(top) == 0 {
		b.sendMessage(chatID, "📊 Nobody has finished the quiz yet. Be the first! 🐾")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Most popular totem animals\n\n")
	for i, entry := range top {
		name := entry.CategoryID
		if e, ok := b.engine.Table().Lookup(entry.CategoryID); ok {
			name = e.DisplayName()
		}
		fmt.Fprintf(&sb, "%d. %s: %d\n", i+1, name, entry.Count)
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text), "message")
}

func (b *Bot) send(c tgbotapi.Chattable, what string) (tgbotapi.Message, bool) {
	sent, err := b.out.Send(c)
	if err != nil {
		b.logger.Error("send "+what, "error", err)
		return sent, false
	}
	return sent, true
}
