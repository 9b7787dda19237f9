package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Lottery   LotteryConfigs
	Chain     ChainConfigs
	Token     TokenConfigs
	Auth      AuthConfigs
}

type ServerConfigs struct {
	Host string
	Port string
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type TokenConfigs struct {
	Secret     string
	Expiration time.Duration
}

type AuthConfigs struct {
	// AccessTokenName is the cookie carrying the access token when no
	// Authorization header is present.
	AccessTokenName string
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type LotteryConfigs struct {
	// DrawDuration is the time between opening a draw and its scheduled
	// finalization.
	DrawDuration time.Duration

	// TicketPrices maps a spendable resource type to the price of one ticket.
	TicketPrices map[string]uint64
}

// TicketPrice returns the price of one ticket paid with the given resource
// type, or false if tickets cannot be bought with it.
func (l LotteryConfigs) TicketPrice(resourceType string) (uint64, bool) {
	price, ok := l.TicketPrices[resourceType]
	return price, ok
}

type ChainConfigs struct {
	Chain string   `toml:"chain"`
	Rpcs  []string `toml:"rpcs"`

	// SettlementRPC is the endpoint of the settlement-contract gateway.
	SettlementRPC string `toml:"settlement_rpc"`

	// RPCName prefixes every method of the settlement gateway.
	RPCName string `toml:"rpc_name"`

	// ConfirmTimeoutSeconds bounds how long a finalize or claim call waits
	// for its transaction receipt.
	ConfirmTimeoutSeconds int `toml:"confirm_timeout_seconds"`
}

func (c ChainConfigs) ConfirmTimeout() time.Duration {
	return time.Duration(c.ConfirmTimeoutSeconds) * time.Second
}

// LoadChainConfigs reads the chain configuration from a TOML file.
func LoadChainConfigs(path string) (ChainConfigs, error) {
	var cfg ChainConfigs
	data, err := os.ReadFile(path)
	if err != nil {
		return ChainConfigs{}, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return ChainConfigs{}, err
	}

	if cfg.ConfirmTimeoutSeconds == 0 {
		cfg.ConfirmTimeoutSeconds = 30
	}

	return cfg, nil
}
