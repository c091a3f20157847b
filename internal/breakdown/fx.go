package breakdown

import (
	"github.com/smallbiznis/storefront/internal/breakdown/render"
	"github.com/smallbiznis/storefront/internal/breakdown/service"
	"go.uber.org/fx"
)

var Module = fx.Module("breakdown.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(render.NewPDFRenderer),
	fx.Provide(service.NewService),
)
