package config

import (
	"time"

	"github.com/spf13/viper"
)

type FormConfig struct {
	SubmitDelay time.Duration // artificial latency before the save collaborator runs
	DraftTTL    time.Duration // how long an untouched form stays open
	LockTTL     time.Duration // upper bound on a single mutation or submission
	IDPrefix    string
}

func LoadFormConfig() *FormConfig {
	viper.SetDefault("form.submit_delay", time.Second)
	viper.SetDefault("form.draft_ttl", 30*time.Minute)
	viper.SetDefault("form.lock_ttl", 30*time.Second)
	viper.SetDefault("form.id_prefix", "USR-")

	cfg := &FormConfig{
		SubmitDelay: viper.GetDuration("form.submit_delay"),
		DraftTTL:    viper.GetDuration("form.draft_ttl"),
		LockTTL:     viper.GetDuration("form.lock_ttl"),
		IDPrefix:    viper.GetString("form.id_prefix"),
	}

	// The lock has to outlive the submit delay or a second submit could
	// slip in while the first one is still waiting.
	if floor := cfg.SubmitDelay + 5*time.Second; cfg.LockTTL < floor {
		cfg.LockTTL = floor
	}
	return cfg
}
