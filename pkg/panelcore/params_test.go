package panelcore

import "testing"

func TestParamsFromMapAppliesDefaults(t *testing.T) {
	p, err := ParamsFromMap(nil)
	if err != nil {
		t.Fatalf("ParamsFromMap: %v", err)
	}
	if p != DefaultParams() {
		t.Errorf("ParamsFromMap(nil) = %+v, want %+v", p, DefaultParams())
	}
}

func TestParamsFromMapOverridesPresentKeys(t *testing.T) {
	p, err := ParamsFromMap(map[string]any{"maxGap": 7, "closeGap": 2.0})
	if err != nil {
		t.Fatalf("ParamsFromMap: %v", err)
	}
	if p.MaxGap != 7 || p.CloseGap != 2 {
		t.Errorf("got %+v, want maxGap=7 closeGap=2", p)
	}
	if p.Sensitivity != DefaultParams().Sensitivity {
		t.Errorf("sensitivity should keep its default when not overridden, got %v", p.Sensitivity)
	}
}

func TestParamsFromMapMissingRequiredKey(t *testing.T) {
	_, err := ParamsFromMap(map[string]any{}, "sensitivity")
	if err == nil {
		t.Fatal("expected an error for a missing required key")
	}
	ge, ok := err.(*Error)
	if !ok || ge.Kind != General {
		t.Errorf("expected a General error, got %v", err)
	}
}

func TestParamsFromMapUnknownKeysIgnored(t *testing.T) {
	p, err := ParamsFromMap(map[string]any{"bogus": 42})
	if err != nil {
		t.Fatalf("ParamsFromMap: %v", err)
	}
	if p != DefaultParams() {
		t.Errorf("unknown keys should not change params, got %+v", p)
	}
}
