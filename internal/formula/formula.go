// Package formula evaluates the flat-size formulas of product types.
//
// A formula is an arithmetic expression over the finished dimensions of a
// display: l (width), L (length) and H (height), all in mm. For example a
// counter display folds out to "100 + l + L + l" by "100 + H + l + 100".
package formula

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/piwi3910/PlateQuote/internal/imposition"
	"github.com/piwi3910/PlateQuote/internal/model"
)

// ErrEmptyFormula is returned when the expression is blank.
var ErrEmptyFormula = errors.New("empty formula")

// ErrNotFinite is returned when a formula evaluates to NaN or infinity.
var ErrNotFinite = errors.New("formula result is not finite")

// Vars are the finished dimensions a formula may reference.
type Vars struct {
	Width  float64 `json:"l"`
	Length float64 `json:"L"`
	Height float64 `json:"H"`
}

func (v Vars) env() map[string]interface{} {
	return map[string]interface{}{
		"l": v.Width,
		"L": v.Length,
		"H": v.Height,
	}
}

// Evaluate computes expression with the given dimensions.
func Evaluate(expression string, vars Vars) (float64, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return 0, ErrEmptyFormula
	}

	env := vars.env()
	program, err := expr.Compile(expression, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return 0, fmt.Errorf("failed to compile formula %q: %w", expression, err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate formula %q: %w", expression, err)
	}

	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("formula %q returned %T, expected a number", expression, out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("formula %q: %w", expression, ErrNotFinite)
	}
	return v, nil
}

// Validate checks that expression compiles against the formula variables.
func Validate(expression string) error {
	_, err := Evaluate(expression, Vars{Width: 1, Length: 1, Height: 1})
	if errors.Is(err, ErrNotFinite) {
		return nil
	}
	return err
}

// FlatSize returns the unfolded footprint of a product type. Blank formulas
// fall back to the defaults (l by L).
func FlatSize(pt model.ProductType, vars Vars) (imposition.Dimensions, error) {
	wf := pt.FlatWidthFormula
	if strings.TrimSpace(wf) == "" {
		wf = model.DefaultFlatWidthFormula
	}
	hf := pt.FlatHeightFormula
	if strings.TrimSpace(hf) == "" {
		hf = model.DefaultFlatHeightFormula
	}

	w, err := Evaluate(wf, vars)
	if err != nil {
		return imposition.Dimensions{}, fmt.Errorf("flat width of %s: %w", pt.Name, err)
	}
	h, err := Evaluate(hf, vars)
	if err != nil {
		return imposition.Dimensions{}, fmt.Errorf("flat height of %s: %w", pt.Name, err)
	}
	return imposition.Dimensions{Width: w, Height: h}, nil
}
