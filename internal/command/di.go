package command

import (
	"github.com/samber/do/v2"
	"github.com/starfieldlab/cosmobot/internal/config"
	"github.com/starfieldlab/cosmobot/internal/content"
	"github.com/starfieldlab/cosmobot/internal/gateway"
	"github.com/starfieldlab/cosmobot/internal/scraper"
	"github.com/starfieldlab/cosmobot/internal/session"
	"github.com/starfieldlab/cosmobot/internal/verify"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		gw := do.MustInvoke[gateway.Client](i)
		gate := do.MustInvoke[*verify.Gate](i)
		fetcher := do.MustInvoke[scraper.Fetcher](i)
		library := do.MustInvoke[*content.Library](i)
		registry := do.MustInvoke[*session.Registry](i)
		return NewManager(cfg, gw, gate, fetcher, library, registry), nil
	})
}
