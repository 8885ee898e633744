package widgets

import (
	"testing"

	"github.com/piwi3910/PlateQuote/internal/imposition"
)

func TestImpositionSummary(t *testing.T) {
	plate := imposition.Dimensions{Width: 1000, Height: 1400}
	result := imposition.Compute(imposition.Dimensions{Width: 300, Height: 400}, plate, 10)

	got := ImpositionSummary(plate, result, 12)
	want := "9 per plate (3 x 3, normal), 12 plate(s), 77.1% used"
	if got != want {
		t.Errorf("ImpositionSummary() = %q, want %q", got, want)
	}
}

func TestImpositionSummary_Rotated(t *testing.T) {
	plate := imposition.Dimensions{Width: 1000, Height: 500}
	result := imposition.Compute(imposition.Dimensions{Width: 400, Height: 900}, plate, 0)

	got := ImpositionSummary(plate, result, 1)
	want := "1 per plate (1 x 1, rotated), 1 plate(s), 72.0% used"
	if got != want {
		t.Errorf("ImpositionSummary() = %q, want %q", got, want)
	}
}

func TestImpositionSummary_DoesNotFit(t *testing.T) {
	plate := imposition.Dimensions{Width: 100, Height: 100}
	result := imposition.Compute(imposition.Dimensions{Width: 300, Height: 400}, plate, 0)

	if got := ImpositionSummary(plate, result, 0); got != "Does not fit" {
		t.Errorf("ImpositionSummary() = %q, want %q", got, "Does not fit")
	}
}

func TestPlateCanvas_Scale(t *testing.T) {
	plate := imposition.Dimensions{Width: 2000, Height: 1000}
	pc := NewPlateCanvas(plate, imposition.Result{}, 400, 400)
	if got := pc.scale(); got != 0.2 {
		t.Errorf("scale() = %v, want 0.2", got)
	}
}
