package bot

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/example/flashquiz/internal/database"
	"github.com/example/flashquiz/internal/quiz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// quizSession is one chat's in-flight quiz: the engine session plus the
// shuffled options of the question currently on screen.
type quizSession struct {
	session *quiz.Session
	options []quiz.OptionPair
	correct int
}

// Bot is the Telegram presentation loop. It renders questions as inline
// keyboards and feeds answers back into the quiz engine; all persistence
// stays behind the engine and its store handle.
type Bot struct {
	api        *tgbotapi.BotAPI
	token      string
	engine     *quiz.Engine
	categories *database.CategoryRepository
	config     *BotConfig

	mu          sync.Mutex
	sessions    map[int64]*quizSession
	subscribers map[int64]bool
}

// New creates a new bot instance
func New(token string, store *database.Store, config *BotConfig) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is not set")
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Bot{
		token:       token,
		engine:      quiz.NewEngine(store),
		categories:  database.NewCategoryRepository(store),
		config:      config,
		sessions:    make(map[int64]*quizSession),
		subscribers: make(map[int64]bool),
	}, nil
}

// Start connects to Telegram and handles updates until the channel closes.
func (b *Bot) Start() error {
	api, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}
	b.api = api
	slog.Info("authorized on telegram", "account", api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	for update := range updates {
		b.handleUpdate(update)
	}
	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	slog.Info("bot stopped")
}

// SendReminder implements scheduler.Notifier.
func (b *Bot) SendReminder(chatID int64, count int) error {
	if b.api == nil {
		return fmt.Errorf("bot is not connected")
	}
	text := fmt.Sprintf("You have %d cards that need review! Send /quiz to practice.", count)
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// Subscribers implements scheduler.SubscriberSource.
func (b *Bot) Subscribers() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	chats := make([]int64, 0, len(b.subscribers))
	for chatID := range b.subscribers {
		chats = append(chats, chatID)
	}
	return chats
}
