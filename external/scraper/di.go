package scraper

import (
	"github.com/samber/do/v2"
	"github.com/starfieldlab/cosmobot/internal/config"
	internalscraper "github.com/starfieldlab/cosmobot/internal/scraper"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (internalscraper.Fetcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewHTTPFetcher(cfg.FactSourceURL), nil
	})
}
