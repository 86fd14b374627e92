package bundler

import (
	"errors"
	"testing"

	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
)

var testConfig = Config{
	LightboxID:  5,
	Single4x4ID: 6,
	Double4x4ID: 7,
	Single4x6ID: 8,
	Single6x4ID: 9,
}

func img(ratio model.AspectRatio, hangers bool) Image {
	return Image{AspectRatio: ratio, Hangers: hangers}
}

func TestBundlePairsSquaresAndSplitsSingles(t *testing.T) {
	groups, err := New(testConfig).Bundle(PackageIndividual, []Image{
		img(model.AspectRatio4x4, false),
		img(model.AspectRatio4x4, true),
		img(model.AspectRatio4x6, false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].ItemTypeID != 7 || len(groups[0].Images) != 2 {
		t.Errorf("expected double 4x4 group, got %+v", groups[0])
	}
	if !groups[0].HasHangers {
		t.Error("expected hanger flag to propagate from any member")
	}
	if groups[1].ItemTypeID != 8 || len(groups[1].Images) != 1 {
		t.Errorf("expected single 4x6 group, got %+v", groups[1])
	}
	if groups[1].HasHangers {
		t.Error("unexpected hanger flag on 4x6 single")
	}
}

func TestBundleTrailingSquareBecomesSingle(t *testing.T) {
	groups, err := New(testConfig).Bundle(PackageIndividual, []Image{
		img(model.AspectRatio4x4, false),
		img(model.AspectRatio6x4, false),
		img(model.AspectRatio4x4, false),
		img(model.AspectRatio4x4, false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	// The first two 4x4s pair across the interleaved 6x4.
	if groups[0].ItemTypeID != 9 {
		t.Errorf("expected 6x4 single first, got %+v", groups[0])
	}
	if groups[1].ItemTypeID != 7 {
		t.Errorf("expected double 4x4, got %+v", groups[1])
	}
	if groups[2].ItemTypeID != 6 || len(groups[2].Images) != 1 {
		t.Errorf("expected trailing single 4x4, got %+v", groups[2])
	}
}

func TestBundleGroupCountProperty(t *testing.T) {
	sequences := [][]Image{
		{img(model.AspectRatio4x6, false)},
		{img(model.AspectRatio4x4, false)},
		{img(model.AspectRatio4x4, false), img(model.AspectRatio4x4, false), img(model.AspectRatio4x4, false)},
		{img(model.AspectRatio6x4, false), img(model.AspectRatio4x6, false), img(model.AspectRatio4x4, false), img(model.AspectRatio4x4, false)},
	}
	for _, seq := range sequences {
		groups, err := New(testConfig).Bundle(PackageIndividual, seq)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		squares, others := 0, 0
		for _, i := range seq {
			if i.AspectRatio == model.AspectRatio4x4 {
				squares++
			} else {
				others++
			}
		}
		want := others + (squares+1)/2
		if len(groups) != want {
			t.Errorf("sequence %v: expected %d groups, got %d", seq, want, len(groups))
		}
		for _, g := range groups {
			if len(g.Images) > 2 {
				t.Errorf("group exceeds 2 images: %+v", g)
			}
		}
	}
}

func TestBundleLightboxIsSingleGroup(t *testing.T) {
	images := []Image{
		img(model.AspectRatio4x4, false),
		img(model.AspectRatio4x6, false),
		img(model.AspectRatio6x4, true),
		img(model.AspectRatio4x4, false),
		img(model.AspectRatio4x4, false),
	}
	groups, err := New(testConfig).Bundle(PackageLightbox, images)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].ItemTypeID != 5 || len(groups[0].Images) != 5 {
		t.Errorf("expected lightbox bundle with all images, got %+v", groups[0])
	}
	if !groups[0].HasHangers {
		t.Error("expected hanger flag from any member")
	}
}

func TestBundleRejectsUnknownAspectRatio(t *testing.T) {
	_, err := New(testConfig).Bundle(PackageIndividual, []Image{img("8x10", false)})
	if !errors.Is(err, domainErrors.ErrUnsupportedAspectRatio) {
		t.Fatalf("expected unsupported aspect ratio error, got %v", err)
	}
}

func TestBundleRejectsEmptyUpload(t *testing.T) {
	_, err := New(testConfig).Bundle(PackageIndividual, nil)
	if !errors.Is(err, domainErrors.ErrEmptyUpload) {
		t.Fatalf("expected empty upload error, got %v", err)
	}
}
