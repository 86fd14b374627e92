// Package bundler groups raw uploaded images into billable line-item
// groups. It is the single source of truth for how uploads become
// billable units: pure partitioning, no I/O.
package bundler

import (
	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
)

// PackageType selects the bundling strategy for a submission.
type PackageType string

const (
	PackageIndividual PackageType = "individual"
	PackageLightbox   PackageType = "lightbox"
)

// Image is one uploaded image as seen by the bundler.
type Image struct {
	AspectRatio model.AspectRatio
	Hangers     bool
	Data        []byte
}

// Group is one line-item group ready for ledger persistence.
type Group struct {
	ItemTypeID int64
	HasHangers bool
	Images     []Image
}

// Config maps aspect-ratio classes onto catalog item-type ids.
type Config struct {
	LightboxID  int64
	Single4x4ID int64
	Double4x4ID int64
	Single4x6ID int64
	Single6x4ID int64
}

// Bundler partitions upload sequences into line-item groups.
type Bundler struct {
	cfg Config
}

// New constructs a Bundler with the given catalog mapping.
func New(cfg Config) *Bundler {
	return &Bundler{cfg: cfg}
}

// Bundle partitions images in submission order.
//
// Lightbox submissions form a single group regardless of count or aspect
// mix. Individual submissions pair consecutive 4x4 images into doubles; a
// trailing unpaired 4x4 and every non-4x4 image become singleton groups.
// A group requests hangers when any of its images does.
func (b *Bundler) Bundle(pkg PackageType, images []Image) ([]Group, error) {
	if len(images) == 0 {
		return nil, domainErrors.ErrEmptyUpload
	}

	for _, img := range images {
		switch img.AspectRatio {
		case model.AspectRatio4x4, model.AspectRatio4x6, model.AspectRatio6x4:
		default:
			return nil, domainErrors.ErrUnsupportedAspectRatio
		}
	}

	if pkg == PackageLightbox {
		return []Group{b.group(b.cfg.LightboxID, images)}, nil
	}

	var groups []Group
	var pending []Image

	flushPending := func() {
		if len(pending) == 2 {
			groups = append(groups, b.group(b.cfg.Double4x4ID, pending))
		} else if len(pending) == 1 {
			groups = append(groups, b.group(b.cfg.Single4x4ID, pending))
		}
		pending = nil
	}

	for _, img := range images {
		if img.AspectRatio == model.AspectRatio4x4 {
			pending = append(pending, img)
			if len(pending) == 2 {
				flushPending()
			}
			continue
		}

		switch img.AspectRatio {
		case model.AspectRatio4x6:
			groups = append(groups, b.group(b.cfg.Single4x6ID, []Image{img}))
		case model.AspectRatio6x4:
			groups = append(groups, b.group(b.cfg.Single6x4ID, []Image{img}))
		}
	}
	flushPending()

	return groups, nil
}

func (b *Bundler) group(itemTypeID int64, images []Image) Group {
	g := Group{ItemTypeID: itemTypeID, Images: images}
	for _, img := range images {
		if img.Hangers {
			g.HasHangers = true
		}
	}
	return g
}
