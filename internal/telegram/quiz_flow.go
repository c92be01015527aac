package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PoluyanbIch/ZooTotemBot/internal/report"
	"github.com/PoluyanbIch/ZooTotemBot/internal/service"
)

const answerPrefix = "answer_"

func (b *Bot) startQuiz(chatID int64, user userRef) {
	f := b.flow(user.ID)
	defer f.mu.Unlock()

	if f.session == nil {
		f.session = b.engine.NewSession(user.ID)
	}
	prompt := f.session.Start()

	b.sendMessage(chatID, quizStartText)
	b.sendPrompt(chatID, f, prompt)
}

func (b *Bot) sendPrompt(chatID int64, f *userFlow, prompt service.Prompt) {
	text := fmt.Sprintf("❓ <b>Question %d/%d</b>\n\n%s",
		prompt.Index+1,
		prompt.Total,
		html.EscapeString(prompt.Text))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, label := range prompt.Labels {
		callbackData := fmt.Sprintf("%s%d_%d", answerPrefix, prompt.Index, i+1)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData),
		))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if sent, ok := b.send(msg, "question"); ok {
		f.promptID = sent.MessageID
	}
}

// parseAnswerData parses "answer_<question index>_<ordinal>".
func parseAnswerData(data string) (index, ordinal int, err error) {
	parts := strings.Split(strings.TrimPrefix(data, answerPrefix), "_")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed answer callback %q", data)
	}
	if index, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("answer callback %q: %w", data, err)
	}
	if ordinal, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("answer callback %q: %w", data, err)
	}
	return index, ordinal, nil
}

func (b *Bot) handleQuizAnswer(chatID int64, user userRef, data string) {
	index, ordinal, err := parseAnswerData(data)
	if err != nil {
		b.logger.Warn("bad answer callback", "user", user.ID, "error", err)
		return
	}

	f := b.flow(user.ID)
	defer f.mu.Unlock()

	if f.session == nil {
		b.sendMessage(chatID, noQuizText)
		return
	}
	// Buttons of an already answered question (or a repeated delivery of the
	// same callback) must not count for the current one.
	if current, err := f.session.Current(); err != nil || current.Index != index {
		b.logger.Debug("stale answer ignored", "session", f.session.ID, "user", user.ID, "question", index)
		return
	}

	step, err := f.session.SubmitAnswer(ordinal)
	switch {
	case errors.Is(err, service.ErrOrdinalOutOfRange):
		b.logger.Warn("answer rejected", "session", f.session.ID, "user", user.ID, "error", err)
		b.sendMessage(chatID, "Please pick one of the buttons below the question.")
		return
	case err != nil:
		b.logger.Error("quiz failed", "session", f.session.ID, "user", user.ID, "error", err)
		b.sendMessage(chatID, quizBrokenText)
		return
	}

	b.sendMessage(chatID, step.Response)
	if f.promptID != 0 {
		if _, err := b.out.Request(tgbotapi.NewDeleteMessage(chatID, f.promptID)); err != nil {
			b.logger.Warn("delete question", "error", err)
		}
		f.promptID = 0
	}
	b.pause()

	if !step.Completed {
		b.sendPrompt(chatID, f, *step.Next)
		return
	}
	b.finishQuiz(chatID, user, f.session)
}

func (b *Bot) finishQuiz(chatID int64, user userRef, s *service.QuizSession) {
	result, err := s.Result()
	if err != nil {
		b.logger.Error("completed quiz has no result", "session", s.ID, "error", err)
		return
	}
	b.board.AddEntry(user.ID, user.Username, user.Name, s.ID, result)

	msg := tgbotapi.NewMessage(chatID, resultReadyText)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐾 View result", "show_result"),
			tgbotapi.NewInlineKeyboardButtonData("🔁 Restart quiz", "restart_quiz"),
		),
	)
	b.send(msg, "finish message")
}

// completedSession returns the user's completed session or sends notCompleted
// and returns nil.
func (b *Bot) completedSession(chatID int64, f *userFlow, notCompleted string) *service.QuizSession {
	if f.session != nil {
		if _, err := f.session.Result(); err == nil {
			return f.session
		}
	}
	b.sendMessage(chatID, notCompleted)
	return nil
}

func (b *Bot) showResult(chatID int64, user userRef) {
	f := b.flow(user.ID)
	defer f.mu.Unlock()

	animal, ok := b.resultAnimal(f, user.ID)
	if !ok {
		b.sendMessage(chatID, takeQuizFirstText)
		return
	}

	caption := fmt.Sprintf("<b>%s</b>\n%s",
		html.EscapeString(animal.DisplayName()),
		html.EscapeString(animal.Description))

	if path := b.imagePath(animal); path != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		b.send(photo, "result photo")
	} else {
		msg := tgbotapi.NewMessage(chatID, caption)
		msg.ParseMode = tgbotapi.ModeHTML
		b.send(msg, "result")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if animal.URL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Learn more about the animal", animal.URL),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📄 Download result", "get_result")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🤝 Become a guardian?", "guardian")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔁 Try again?", "restart_quiz")),
	)
	msg := tgbotapi.NewMessage(chatID, nextStepsText)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg, "next steps")
}

// resultAnimal returns the animal of the user's completed session. While a
// restarted quiz is still open it falls back to the user's last result on the
// board.
func (b *Bot) resultAnimal(f *userFlow, userID int64) (service.CategoryEntry, bool) {
	if f.session != nil {
		if result, err := f.session.Result(); err == nil {
			return result.Category, true
		}
	}
	entry, ok := b.board.Latest(userID)
	if !ok {
		return service.CategoryEntry{}, false
	}
	return b.engine.Table().Lookup(entry.CategoryID)
}

// imagePath returns the animal's image file under AssetsDir, or "" when there
// is none.
func (b *Bot) imagePath(animal service.CategoryEntry) string {
	if b.opts.AssetsDir == "" || animal.Image == "" {
		return ""
	}
	path := filepath.Join(b.opts.AssetsDir, filepath.Base(animal.Image))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return ""
	}
	return path
}

func (b *Bot) sendResultCard(chatID int64, user userRef) {
	f := b.flow(user.ID)
	defer f.mu.Unlock()

	s := b.completedSession(chatID, f, "Result not found. Take the quiz first.")
	if s == nil {
		return
	}
	r, err := report.FromSession(s, user.Name)
	if err != nil {
		b.logger.Error("build report", "session", s.ID, "error", err)
		return
	}
	card, err := report.RenderCard(r)
	if err != nil {
		b.logger.Error("render result card", "session", s.ID, "error", err)
		b.sendMessage(chatID, quizBrokenText)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: report.CardFileName(r), Bytes: card})
	doc.Caption = "Totem animal"
	if _, ok := b.send(doc, "result card"); ok {
		b.sendMessage(chatID, shareResultText)
	}
}

func (b *Bot) sendGuardianInfo(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, guardianText)
	msg.ParseMode = tgbotapi.ModeHTML
	if b.opts.GuardianURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🌐 Guardianship program", b.opts.GuardianURL),
			),
		)
	}
	b.send(msg, "guardian info")
}

func (b *Bot) handleFeedback(ctx context.Context, chatID int64, user userRef, text string) {
	f := b.flow(user.ID)
	defer f.mu.Unlock()

	s := b.completedSession(chatID, f, "Quiz not completed yet, maybe you haven't formed an opinion yet.")
	if s == nil {
		return
	}
	r, err := report.FromSession(s, user.Name)
	if err != nil {
		b.logger.Error("build report", "session", s.ID, "error", err)
		return
	}

	subject := fmt.Sprintf("Feedback from User: %s, ID: %d", user.Name, user.ID)
	body := text + "\n\n" + report.Transcript(r)
	b.deliver(ctx, chatID, subject, body,
		"Thank you for your feedback! It has been received and processed.",
		"Failed to process your request, please try again later.")
}

func (b *Bot) handleConfirm(ctx context.Context, chatID int64, user userRef) {
	f := b.flow(user.ID)
	defer f.mu.Unlock()

	s := b.completedSession(chatID, f, "Quiz not completed yet, this keyword should be used later.")
	if s == nil {
		return
	}
	r, err := report.FromSession(s, user.Name)
	if err != nil {
		b.logger.Error("build report", "session", s.ID, "error", err)
		return
	}
	b.deliver(ctx, chatID, "Quiz Results from Zoo-Bot", report.Transcript(r),
		"Sent", "Unable to send, try again later")
}

func (b *Bot) deliver(ctx context.Context, chatID int64, subject, body, okText, failText string) {
	if err := b.notifier.Notify(ctx, subject, body); err != nil {
		b.logger.Error("notify", "subject", subject, "error", err)
		b.sendMessage(chatID, failText)
		return
	}
	b.sendMessage(chatID, okText)
}

func (b *Bot) pause() {
	if b.opts.AnswerDelay > 0 {
		time.Sleep(b.opts.AnswerDelay)
	}
}
