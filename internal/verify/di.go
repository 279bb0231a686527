package verify

import (
	"github.com/samber/do/v2"
	"github.com/starfieldlab/cosmobot/internal/repository"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Cache, error) {
		return NewCache(), nil
	})
	do.Provide(injector, func(i do.Injector) (*Gate, error) {
		cache := do.MustInvoke[*Cache](i)
		repo := do.MustInvoke[repository.Repository](i)
		return NewGate(cache, repo), nil
	})
}
