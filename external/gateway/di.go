package gateway

import (
	"github.com/samber/do/v2"
	"github.com/starfieldlab/cosmobot/internal/config"
	gatewaypkg "github.com/starfieldlab/cosmobot/internal/gateway"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (gatewaypkg.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewClient(cfg.DiscordToken), nil
	})
}
