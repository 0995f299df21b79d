package helpers

import (
	"fmt"

	"github.com/ckendallart/storefront/app/models"
)

var imgBreakpointsByTShirtSize = map[string]string{
	"small":  "(min-width: 0px) and (max-width: 767px)",
	"medium": "(min-width: 768px) and (max-width: 1399px)",
	"large":  "(min-width: 1400px)",
}

// GetResponsiveImages derives the renderer-facing descriptor from a variant's
// cached image asset. Sizes that were never generated are left out; a variant
// with no asset at all yields nil.
func GetResponsiveImages(img *models.ImageAsset) *models.ResponsiveImageSet {
	if img == nil {
		return nil
	}

	sizes := []struct {
		name  string
		fixed models.ImageFixed
	}{
		{"small", img.Small},
		{"medium", img.Medium},
		{"large", img.Large},
	}

	set := &models.ResponsiveImageSet{ResponsiveImgs: []models.ResponsiveImage{}}
	for _, size := range sizes {
		if size.fixed.Src == "" {
			continue
		}
		set.ResponsiveImgs = append(set.ResponsiveImgs, models.ResponsiveImage{
			ImgSize: size.name,
			Src:     size.fixed.Src,
			Width:   size.fixed.Width,
			Height:  size.fixed.Height,
			Media:   imgBreakpointsByTShirtSize[size.name],
		})
	}
	return set
}

// GetServerSideMediaQueries renders the per-breakpoint sizing rules for a
// selector, for renderers that size images before any script runs.
func GetServerSideMediaQueries(responsiveImgs []models.ResponsiveImage, selector string) string {
	css := ""
	for _, img := range responsiveImgs {
		if img.Media == "" {
			continue
		}
		css += fmt.Sprintf(
			"@media%s { %s { width: %dpx !important; height: %dpx !important; } }\n",
			img.Media, selector, img.Width, img.Height,
		)
	}
	return css
}
