package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/example/flashquiz/internal/quiz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil && update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			b.handleStartCommand(update.Message)
		case "quiz":
			b.handleQuizCommand(update.Message)
		case "categories":
			b.handleCategoriesCommand(update.Message)
		case "remind":
			b.handleRemindCommand(update.Message)
		default:
			b.send(update.Message.Chat.ID, "Unknown command. Try /quiz, /categories or /remind.")
		}
		return
	}
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// handleStartCommand handles the /start command
func (b *Bot) handleStartCommand(message *tgbotapi.Message) {
	welcomeText := `Welcome to the flashcard quiz bot!

Available commands:
/quiz [category] - Start a quiz (random category if omitted)
/categories - List available categories
/remind - Toggle daily review reminders`
	b.send(message.Chat.ID, welcomeText)
}

// handleCategoriesCommand lists the categories available for quizzing
func (b *Bot) handleCategoriesCommand(message *tgbotapi.Message) {
	categories, err := b.categories.GetAll()
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		b.send(message.Chat.ID, "Could not load categories, please try again.")
		return
	}
	if len(categories) == 0 {
		b.send(message.Chat.ID, "No categories found. Import some cards first!")
		return
	}

	var text strings.Builder
	text.WriteString("Available categories:\n")
	for _, category := range categories {
		text.WriteString("- " + category.Name + "\n")
	}
	b.send(message.Chat.ID, text.String())
}

// handleRemindCommand toggles daily reminders for the chat
func (b *Bot) handleRemindCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	b.mu.Lock()
	b.subscribers[chatID] = !b.subscribers[chatID]
	enabled := b.subscribers[chatID]
	if !enabled {
		delete(b.subscribers, chatID)
	}
	b.mu.Unlock()

	if enabled {
		b.send(chatID, "Daily review reminders enabled.")
	} else {
		b.send(chatID, "Daily review reminders disabled.")
	}
}

// handleQuizCommand starts a new quiz session for the chat
func (b *Bot) handleQuizCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	categoryName := strings.TrimSpace(message.CommandArguments())

	session, err := b.engine.NewSession(categoryName, b.config.QuestionCount, b.config.ChoicesCount)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrNoCategories):
			b.send(chatID, "No categories found. Come back when you have added some cards!")
		case errors.Is(err, quiz.ErrNoPools):
			b.send(chatID, "That category has no pools of cards to quiz on.")
		default:
			slog.Error("failed to start session", "error", err)
			b.send(chatID, "Could not start a quiz, please try again.")
		}
		return
	}
	if len(session.Questions) == 0 {
		b.send(chatID, "No usable cards were found for a quiz.")
		return
	}

	b.mu.Lock()
	b.sessions[chatID] = &quizSession{session: session}
	b.mu.Unlock()

	b.send(chatID, fmt.Sprintf("==========> %s (%d questions) <==========", session.Category, len(session.Questions)))
	b.sendQuestion(chatID)
}

// sendQuestion renders the chat's current question with an option keyboard
func (b *Bot) sendQuestion(chatID int64) {
	b.mu.Lock()
	qs, ok := b.sessions[chatID]
	if !ok || qs.session.Done() {
		b.mu.Unlock()
		return
	}
	question := qs.session.Current()
	qs.options, qs.correct = b.engine.RandomizeOptions(question)
	idx := qs.session.CurrentIndex()
	total := len(qs.session.Questions)
	b.mu.Unlock()

	var text strings.Builder
	text.WriteString(fmt.Sprintf("%d/%d. %s (%d)\n", idx+1, total, renderOption(question.Front), question.Score))
	for i, option := range qs.options {
		text.WriteString(fmt.Sprintf("%d. %s\n", i+1, renderOption(option)))
	}

	var row []tgbotapi.InlineKeyboardButton
	for i := range qs.options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(i+1), fmt.Sprintf("answer_%d", i)))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Quit", "quit")),
	)

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		slog.Warn("failed to send question", "chat", chatID, "error", err)
	}
}

// handleCallbackQuery handles answer and quit buttons
func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))

	if callback.Data == "quit" {
		b.mu.Lock()
		if qs, ok := b.sessions[chatID]; ok {
			qs.session.Quit()
			delete(b.sessions, chatID)
		}
		b.mu.Unlock()
		b.send(chatID, "Quitting early!")
		return
	}

	if !strings.HasPrefix(callback.Data, "answer_") {
		return
	}
	picked, err := strconv.Atoi(strings.TrimPrefix(callback.Data, "answer_"))
	if err != nil {
		return
	}

	b.mu.Lock()
	qs, ok := b.sessions[chatID]
	b.mu.Unlock()
	if !ok || qs.session.Done() {
		b.send(chatID, "No quiz in progress. Send /quiz to start one.")
		return
	}

	correct := picked == qs.correct
	score, err := qs.session.Answer(correct)
	if err != nil {
		slog.Error("failed to record answer", "chat", chatID, "error", err)
		b.send(chatID, "Could not record your answer, please try again.")
		return
	}

	if correct {
		b.send(chatID, fmt.Sprintf("Correct!: %d -> %d", score-1, score))
	} else {
		b.send(chatID, fmt.Sprintf("Incorrect!: %d -> %d\nThe correct choice was %d.", score+1, score, qs.correct+1))
	}

	if qs.session.Done() {
		b.send(chatID, fmt.Sprintf("Done! %d/%d correct.", qs.session.CorrectCount(), len(qs.session.Questions)))
		b.mu.Lock()
		delete(b.sessions, chatID)
		b.mu.Unlock()
		return
	}
	b.sendQuestion(chatID)
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Warn("failed to send message", "chat", chatID, "error", err)
	}
}

// renderOption prints an option's text, appending the image path; chat
// clients open paths themselves.
func renderOption(option quiz.OptionPair) string {
	switch {
	case option.HasText() && option.HasImage():
		return fmt.Sprintf("%s [image: %s]", option.Text, option.Image)
	case option.HasImage():
		return fmt.Sprintf("[image: %s]", option.Image)
	default:
		return option.Text
	}
}
