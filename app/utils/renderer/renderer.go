package renderer

import (
	"github.com/ckendallart/storefront/app/configs"
	"github.com/unrolled/render"
)

// New builds the JSON renderer backing every handler. The storefront pages
// are statically generated; this service only answers their fetch calls.
func New() *render.Render {
	return render.New(render.Options{
		IndentJSON: configs.LoadENV.APP_ENV != "production",
	})
}
