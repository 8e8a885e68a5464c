package hanseg

import "testing"

func buildFixtureGraph() Graph[string] {
	return Graph[string]{
		"c": {"d": 3, "e": 2},
		"d": {"f": 4},
		"e": {"d": 1, "f": 2, "g": 3},
		"f": {"g": 2, "h": 1},
		"g": {"h": 2},
		"h": {},
	}
}

func TestDijkstraShortestPath(t *testing.T) {
	g := buildFixtureGraph()
	path, dist := DijkstraShortestPath(g, "c", "h")
	want := []string{"c", "e", "f", "h"}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q (full path %v)", i, path[i], want[i], path)
		}
	}
	if dist != 5 {
		t.Errorf("dist = %v, want 5", dist)
	}
}

func TestYenKSPTop3(t *testing.T) {
	g := buildFixtureGraph()
	paths := YenKSP(g, "c", "h", 3)
	if len(paths) != 3 {
		t.Fatalf("len(paths) = %d, want 3", len(paths))
	}

	want := [][]string{
		{"c", "e", "f", "h"},
		{"c", "e", "g", "h"},
		{"c", "d", "f", "h"},
	}
	for i, w := range want {
		got := paths[i].Path
		if len(got) != len(w) {
			t.Fatalf("paths[%d] = %v, want %v", i, got, w)
		}
		for j := range w {
			if got[j] != w[j] {
				t.Errorf("paths[%d][%d] = %q, want %q (full path %v)", i, j, got[j], w[j], got)
			}
		}
	}
}

func TestYenKSPUnreachable(t *testing.T) {
	g := Graph[string]{"a": {"b": 1}, "b": {}, "z": {}}
	paths := YenKSP(g, "a", "z", 3)
	if paths != nil {
		t.Errorf("YenKSP to an unreachable node = %v, want nil", paths)
	}
}
