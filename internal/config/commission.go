package config

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CommissionTier maps a group attainment percentage band to a payout multiplier.
// MaxPercent nil means the band is open-ended.
type CommissionTier struct {
	MinPercent float64  `mapstructure:"minPercent" json:"min_percent"`
	MaxPercent *float64 `mapstructure:"maxPercent" json:"max_percent,omitempty"`
	Multiplier float64  `mapstructure:"multiplier" json:"multiplier"`
}

// QuotaDefault is the fallback weekly target used when no weekly_quotas row
// exists for a (role, level) pair.
type QuotaDefault struct {
	Role   string `mapstructure:"role" json:"role"`
	Level  string `mapstructure:"level" json:"level"`
	Target int    `mapstructure:"target" json:"target"`
}

// SupervisorBase is the monetary commission base per supervisor level, in cents.
type SupervisorBase struct {
	Level       string `mapstructure:"level" json:"level"`
	AmountCents int64  `mapstructure:"amountCents" json:"amount_cents"`
}

type CommissionConfig struct {
	Tiers           []CommissionTier `mapstructure:"tiers"`
	QuotaDefaults   []QuotaDefault   `mapstructure:"quotaDefaults"`
	SupervisorBases []SupervisorBase `mapstructure:"supervisorBases"`
}

func DefaultCommissionConfig() CommissionConfig {
	return CommissionConfig{
		Tiers: []CommissionTier{
			{MinPercent: 0, MaxPercent: floatPtr(70), Multiplier: 0},
			{MinPercent: 70, MaxPercent: floatPtr(90), Multiplier: 0.5},
			{MinPercent: 90, MaxPercent: floatPtr(110), Multiplier: 1.0},
			{MinPercent: 110, MaxPercent: floatPtr(130), Multiplier: 1.2},
			{MinPercent: 130, MaxPercent: nil, Multiplier: 1.5},
		},
		QuotaDefaults: []QuotaDefault{
			{Role: "vendedor", Level: "junior", Target: 7},
			{Role: "vendedor", Level: "pleno", Target: 10},
			{Role: "vendedor", Level: "senior", Target: 14},
			{Role: "sdr_inbound", Level: "junior", Target: 8},
			{Role: "sdr_inbound", Level: "pleno", Target: 10},
			{Role: "sdr_inbound", Level: "senior", Target: 12},
			{Role: "sdr_outbound", Level: "junior", Target: 8},
			{Role: "sdr_outbound", Level: "pleno", Target: 10},
			{Role: "sdr_outbound", Level: "senior", Target: 12},
		},
		SupervisorBases: []SupervisorBase{
			{Level: "junior", AmountCents: 300_000},
			{Level: "pleno", AmountCents: 400_000},
			{Level: "senior", AmountCents: 500_000},
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

// CommissionConfigHolder exposes the current commission rule set. The config
// file is watched and swapped atomically; readers always see a validated set.
type CommissionConfigHolder struct {
	current atomic.Value // holds CommissionConfig
}

func NewCommissionConfigHolder() (*CommissionConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("commission")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/salesops/config")
	v.AddConfigPath("/etc/salesops")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SALESOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCommissionConfig()
		v.SetDefault("commission.tiers", defaults.Tiers)
		v.SetDefault("commission.quotaDefaults", defaults.QuotaDefaults)
		v.SetDefault("commission.supervisorBases", defaults.SupervisorBases)
	}

	var cfg CommissionConfig
	if err := v.UnmarshalKey("commission", &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Tiers) == 0 && len(cfg.QuotaDefaults) == 0 {
		cfg = DefaultCommissionConfig()
	}
	if err := validateCommissionConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CommissionConfigHolder{}
	holder.current.Store(normalizeCommissionConfig(cfg))

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CommissionConfig
		if err := v.UnmarshalKey("commission", &updated); err != nil {
			log.Printf("[commission-config] reload failed: %v", err)
			return
		}
		if err := validateCommissionConfig(updated); err != nil {
			log.Printf("[commission-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(normalizeCommissionConfig(updated))
		log.Printf("[commission-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticCommissionConfigHolder wraps a fixed rule set, for tests and tools.
func NewStaticCommissionConfigHolder(cfg CommissionConfig) *CommissionConfigHolder {
	holder := &CommissionConfigHolder{}
	holder.current.Store(normalizeCommissionConfig(cfg))
	return holder
}

func (h *CommissionConfigHolder) Get() CommissionConfig {
	return h.current.Load().(CommissionConfig)
}

func normalizeCommissionConfig(cfg CommissionConfig) CommissionConfig {
	sort.SliceStable(cfg.Tiers, func(i, j int) bool {
		return cfg.Tiers[i].MinPercent < cfg.Tiers[j].MinPercent
	})
	return cfg
}

func validateCommissionConfig(cfg CommissionConfig) error {
	if len(cfg.Tiers) == 0 {
		return errors.New("commission.tiers cannot be empty")
	}
	for _, tier := range cfg.Tiers {
		if tier.MinPercent < 0 {
			return errors.New("commission tier minPercent cannot be negative")
		}
		if tier.MaxPercent != nil && *tier.MaxPercent <= tier.MinPercent {
			return errors.New("commission tier maxPercent must exceed minPercent")
		}
		if tier.Multiplier < 0 {
			return errors.New("commission tier multiplier cannot be negative")
		}
	}
	for _, quota := range cfg.QuotaDefaults {
		if quota.Target < 0 {
			return errors.New("quota default target cannot be negative")
		}
	}
	return nil
}
