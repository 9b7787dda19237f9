package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/fairdraw/backend/config"
	"github.com/fairdraw/backend/pkg/xcontext"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return duration
}

func parsePrice(value string) uint64 {
	price, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		panic(err)
	}

	return price
}

func (s *srv) loadConfig() {
	chainCfg, err := config.LoadChainConfigs(getEnv("CHAIN_CONFIG_PATH", "chain.toml"))
	if err != nil {
		panic(err)
	}

	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", ""),
			Port: getEnv("PORT", "8080"),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "fairdraw"),
			Password: getEnv("MYSQL_PASSWORD", "fairdraw"),
			Database: getEnv("MYSQL_DATABASE", "fairdraw"),
		},
		Lottery: config.LotteryConfigs{
			DrawDuration: parseDuration(getEnv("DRAW_DURATION", "24h")),
			TicketPrices: map[string]uint64{
				"gems":  parsePrice(getEnv("TICKET_PRICE_GEMS", "100")),
				"coins": parsePrice(getEnv("TICKET_PRICE_COINS", "2500")),
			},
		},
		Chain: chainCfg,
		Token: config.TokenConfigs{
			Secret:     getEnv("TOKEN_SECRET", "token_secret"),
			Expiration: parseDuration(getEnv("TOKEN_EXPIRATION", "24h")),
		},
		Auth: config.AuthConfigs{
			AccessTokenName: getEnv("ACCESS_TOKEN_NAME", "access_token"),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), *s.configs)
}
