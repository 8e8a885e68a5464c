package hanseg

import "testing"

func TestEncodePOS(t *testing.T) {
	if got := EncodePOS("a"); got != 24832 {
		t.Errorf("EncodePOS(\"a\") = %d, want 24832", got)
	}
	if got := EncodePOS("ad"); got != 24932 {
		t.Errorf("EncodePOS(\"ad\") = %d, want 24932", got)
	}
}

func TestPOSRoundTrip(t *testing.T) {
	for _, tag := range []string{"a", "ad", "n", "nr", "vn"} {
		code := EncodePOS(tag)
		if got := DecodePOS(code); got != tag {
			t.Errorf("DecodePOS(EncodePOS(%q)) = %q, want %q", tag, got, tag)
		}
	}
}

func TestFeatureKind(t *testing.T) {
	cases := []struct {
		code int
		kind FeatureKind
	}{
		{0, KindAmbiguous},
		{2, KindUseWordFeature},
		{CTChinese, KindCharClass},
		{EncodePOS("n"), KindPOS},
	}
	for _, c := range cases {
		if got := (Feature{Code: c.code}).Kind(); got != c.kind {
			t.Errorf("Feature{%d}.Kind() = %v, want %v", c.code, got, c.kind)
		}
	}
}
