package quiz

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestAnswers_SetReplacesWholeList(t *testing.T) {
	s := NewAnswers()
	s.Set(QComplications, List("business", "debts"))
	s.Set(QComplications, List("none"))

	got, ok := s.Get(QComplications)
	if !ok {
		t.Fatal("answer missing")
	}
	if !slices.Equal(got.Values(), []string{"none"}) {
		t.Errorf("Values() = %v, want [none]", got.Values())
	}
	if _, ok := s.Get(QEstateValue); ok {
		t.Error("unanswered question should report ok=false")
	}
}

func TestAnswers_SnapshotIsIsolated(t *testing.T) {
	s := NewAnswers()
	s.Set(QEstateValue, Single(EstateUnder100K))
	snap := s.Snapshot()

	s.Set(QEstateValue, Single(EstateOver2M))
	s.Set(QPaperwork, Single("very"))

	if !snap.Has(QEstateValue, EstateUnder100K) {
		t.Error("snapshot changed after store mutation")
	}
	if snap.Len() != 1 {
		t.Errorf("snapshot Len() = %d, want 1", snap.Len())
	}

	m := snap.Map()
	m[QTiming] = Single("90_plus")
	if _, ok := snap.Get(QTiming); ok {
		t.Error("snapshot changed through Map()")
	}
}

func TestAnswer_ValuesIsCopy(t *testing.T) {
	a := List("cost", "speed")
	vs := a.Values()
	vs[0] = "hands_off"
	if a.Value() != "cost" {
		t.Errorf("answer mutated through Values(): %v", a.Values())
	}
}

func TestAnswer_JSON(t *testing.T) {
	in := map[string]Answer{
		QEstateValue: Single("over_2m"),
		QAssets:      List(),
		QPriorities:  List("speed", "cost"),
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"q1":"over_2m","q2":[],"q6":["speed","cost"]}`
	if string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}

	var out map[string]Answer
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	for id, a := range in {
		if !out[id].Equal(a) {
			t.Errorf("%s: got %v (list=%v), want %v", id, out[id].Values(), out[id].IsList(), a.Values())
		}
	}

	var bad Answer
	if err := json.Unmarshal([]byte(`{"x":1}`), &bad); err == nil {
		t.Error("expected error for object answer")
	}
}

func TestParseAnswers(t *testing.T) {
	doc := []byte(`
q1: under_100k
q3: [none]
q6:
  - hands_off
  - cost
`)
	snap, err := ParseAnswers(doc)
	if err != nil {
		t.Fatalf("ParseAnswers: %v", err)
	}
	if a, _ := snap.Get(QEstateValue); a.IsList() || a.Value() != EstateUnder100K {
		t.Errorf("q1 = %v", a.Values())
	}
	if a, _ := snap.Get(QComplications); !a.IsList() || a.Value() != "none" {
		t.Errorf("q3 = %v", a.Values())
	}
	if a, _ := snap.Get(QPriorities); !slices.Equal(a.Values(), []string{"hands_off", "cost"}) {
		t.Errorf("q6 = %v", a.Values())
	}
	if got := snap.IDs(); !slices.Equal(got, []string{"q1", "q3", "q6"}) {
		t.Errorf("IDs() = %v", got)
	}

	raw := []byte(`{"q1": "over_2m", "q2": ["none"], "q3": ["disputes"]}`)
	snap, err = ParseAnswers(raw)
	if err != nil {
		t.Fatalf("ParseAnswers(json): %v", err)
	}
	if !snap.Has(QComplications, ComplicationFeud) {
		t.Error("JSON input not decoded")
	}

	if _, err := ParseAnswers([]byte("q1: {a: b}")); err == nil {
		t.Error("expected error for mapping answer")
	}
}
