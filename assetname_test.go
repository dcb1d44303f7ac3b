package hdsprite

import "testing"

func TestNormalizeAssetName(t *testing.T) {
	cases := map[string]string{
		"Characters/Abigail":      "Characters/Abigail",
		`Characters\Abigail`:      "Characters/Abigail",
		"/Characters//Abigail/":   "Characters/Abigail",
		`Characters\\Farmer\base`: "Characters/Farmer/base",
		"":                        "",
	}
	for in, want := range cases {
		if got := NormalizeAssetName(in); got != want {
			t.Errorf("NormalizeAssetName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"Characters/Abigail.fr-FR": "Characters/Abigail",
		"Characters/Abigail.pt-BR": "Characters/Abigail",
		"Characters/Abigail.png":   "Characters/Abigail.png",
		"Characters/Abigail":       "Characters/Abigail",
		"Maps.v2/Town":             "Maps.v2/Town",
	}
	for in, want := range cases {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEquivalent(t *testing.T) {
	if !Equivalent("Characters/Farmer/farmer_base", `characters\FARMER\Farmer_Base`) {
		t.Error("names differing in case and separators should be equivalent")
	}
	if Equivalent("Characters/Abigail", "Characters/Haley") {
		t.Error("different names should not be equivalent")
	}
}

func TestIsBaseTarget(t *testing.T) {
	if !isBaseTarget(assetKey("Characters/Farmer/farmer_base")) {
		t.Error("farmer_base should be a base target")
	}
	if !isBaseTarget(assetKey("Characters/Farmer/Farmer_Girl_Base")) {
		t.Error("match should be case-insensitive")
	}
	if isBaseTarget(assetKey("Characters/farmer_stuff/Abigail")) {
		t.Error("marker in a directory should not count")
	}
}
