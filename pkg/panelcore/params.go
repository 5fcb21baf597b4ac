package panelcore

import "math"

// Params holds the three recognized detection-tuning keys: sensitivity,
// maxGap, closeGap. Unknown keys passed to ParamsFromMap are ignored.
type Params struct {
	Sensitivity float64
	MaxGap      int
	CloseGap    int
}

// DefaultParams returns the tuned defaults: sensitivity such that
// sensitivity*ln(10) ~= 16, maxGap=3, closeGap=5.
func DefaultParams() Params {
	return Params{
		Sensitivity: 16.0 / math.Log(10),
		MaxGap:      3,
		CloseGap:    5,
	}
}

// ParamsFromMap builds Params from a loosely typed dictionary, applying
// DefaultParams() for any key that is absent. Unknown keys are ignored.
// required names the keys that must be present for the invoking entry
// point; a missing required key yields a General error naming it.
func ParamsFromMap(dict map[string]any, required ...string) (Params, error) {
	p := DefaultParams()

	for _, key := range required {
		if _, ok := dict[key]; !ok {
			return Params{}, newGeneralError(0, "missing required parameter %q", key)
		}
	}

	if v, ok := dict["sensitivity"]; ok {
		f, err := toFloat(v)
		if err != nil {
			return Params{}, newGeneralError(0, "invalid sensitivity: %v", err)
		}
		p.Sensitivity = f
	}
	if v, ok := dict["maxGap"]; ok {
		n, err := toInt(v)
		if err != nil {
			return Params{}, newGeneralError(0, "invalid maxGap: %v", err)
		}
		p.MaxGap = n
	}
	if v, ok := dict["closeGap"]; ok {
		n, err := toInt(v)
		if err != nil {
			return Params{}, newGeneralError(0, "invalid closeGap: %v", err)
		}
		p.CloseGap = n
	}

	return p, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, errUnsupportedType(v)
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, errUnsupportedType(v)
	}
}

type unsupportedTypeError struct{ v any }

func (e unsupportedTypeError) Error() string {
	return "unsupported parameter value type"
}

func errUnsupportedType(v any) error { return unsupportedTypeError{v} }
