package web

type Config struct {
	Addr           string  `envconfig:"SERVER_ADDR" default:":8080"`
	RateLimitRPS   float64 `envconfig:"SERVER_RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst int     `envconfig:"SERVER_RATE_LIMIT_BURST" default:"5"`
	HistoryLimit   int     `envconfig:"SERVER_HISTORY_LIMIT" default:"5"`
}
