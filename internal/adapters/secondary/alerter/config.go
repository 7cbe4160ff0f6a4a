package alerter

import "time"

// Config Telegram-алертер; пустой BOT_TOKEN отключает алерты
type Config struct {
	BotToken        string        `envconfig:"BOT_TOKEN"`
	ChatID          int64         `envconfig:"CHAT_ID"`
	MessageThreadID *int64        `envconfig:"MESSAGE_THREAD_ID"`
	APIBaseURL      string        `envconfig:"API_BASE_URL" default:"https://api.telegram.org"`
	Timeout         time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

func (c *Config) IsEnabled() bool {
	return c != nil && c.BotToken != "" && c.ChatID != 0
}
