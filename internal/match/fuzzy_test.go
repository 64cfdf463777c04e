package match

import (
	"testing"

	"slatelink/internal/dataset"
)

func TestMatchFuzzyRanksByConfidence(t *testing.T) {
	table := tableOf([]string{"Name"},
		dataset.Row{"Name": "unrelated"},
		dataset.Row{"Name": "DunesPart2"},
		dataset.Row{"Name": "Dunes"},
	)

	candidates, explanation := MatchFuzzy("Slate3-Take1-Dunes.jpg", table, "Name", nil, 0.6)
	if len(candidates) != 2 {
		t.Fatalf("candidates = %v, want 2", candidates)
	}
	if candidates[0].Index != 2 {
		t.Errorf("best index = %d, want the exact-production row", candidates[0].Index)
	}
	if candidates[0].Confidence < candidates[1].Confidence {
		t.Errorf("results not sorted descending: %v", candidates)
	}
	if explanation.BestConfidence != candidates[0].Confidence {
		t.Errorf("explanation best = %v, want %v", explanation.BestConfidence, candidates[0].Confidence)
	}
	if explanation.CandidateCount != 2 {
		t.Errorf("candidate count = %d, want 2", explanation.CandidateCount)
	}
}

func TestMatchFuzzyFiltersBelowFloor(t *testing.T) {
	table := tableOf([]string{"Name"},
		dataset.Row{"Name": "Dunes"},
		dataset.Row{"Name": "zzz"},
	)

	candidates, _ := MatchFuzzy("Dunes_0042.jpg", table, "Name", nil, 0.6)
	for _, c := range candidates {
		if c.Confidence < 0.6 {
			t.Errorf("candidate %+v below the floor", c)
		}
	}
	if len(candidates) != 1 || candidates[0].Index != 0 {
		t.Errorf("candidates = %v, want only the Dunes row", candidates)
	}
}

func TestMatchFuzzyTiesKeepTableOrder(t *testing.T) {
	table := tableOf([]string{"Name"},
		dataset.Row{"Name": "Dunes"},
		dataset.Row{"Name": "Dunes"},
	)

	candidates, _ := MatchFuzzy("Dunes_0042.jpg", table, "Name", nil, 0.6)
	if len(candidates) != 2 {
		t.Fatalf("candidates = %v, want 2", candidates)
	}
	if candidates[0].Index != 0 || candidates[1].Index != 1 {
		t.Errorf("tie order = %v, want table order", candidates)
	}
}

func TestMatchFuzzyFallbackKeysOnlyWhenPrimaryEmpty(t *testing.T) {
	table := tableOf([]string{"Name", "clip"},
		dataset.Row{"Name": "zzz", "clip": "Dunes"},
	)

	candidates, explanation := MatchFuzzy("Dunes_0042.jpg", table, "Name", []string{"clip"}, 0.6)
	if len(candidates) != 1 || candidates[0].Index != 0 {
		t.Fatalf("candidates = %v, want the clip-matched row", candidates)
	}
	if len(explanation.KeysTried) != 2 || explanation.KeysTried[1] != "clip" {
		t.Errorf("keys tried = %v, want [Name clip]", explanation.KeysTried)
	}

	// When the primary key produces candidates, fallbacks are skipped.
	table = tableOf([]string{"Name", "clip"},
		dataset.Row{"Name": "Dunes", "clip": "Dunes"},
	)
	_, explanation = MatchFuzzy("Dunes_0042.jpg", table, "Name", []string{"clip"}, 0.6)
	if len(explanation.KeysTried) != 1 {
		t.Errorf("keys tried = %v, want only the primary key", explanation.KeysTried)
	}
}

func TestMatchFuzzyEmptyInputs(t *testing.T) {
	if candidates, _ := MatchFuzzy("a.jpg", &dataset.Table{}, "Name", nil, 0.6); len(candidates) != 0 {
		t.Errorf("empty table: candidates = %v", candidates)
	}

	table := tableOf([]string{"Scene"}, dataset.Row{"Scene": "12"})
	candidates, explanation := MatchFuzzy("a.jpg", table, "Name", []string{"clip"}, 0.6)
	if len(candidates) != 0 {
		t.Errorf("missing columns: candidates = %v", candidates)
	}
	if len(explanation.KeysTried) != 0 {
		t.Errorf("keys tried = %v, want none", explanation.KeysTried)
	}
}

func TestMatchFuzzySkipsEmptyCells(t *testing.T) {
	table := tableOf([]string{"Name"},
		dataset.Row{"Name": ""},
		dataset.Row{"Name": "Dunes"},
	)

	candidates, _ := MatchFuzzy("Dunes_0042.jpg", table, "Name", nil, 0.6)
	if len(candidates) != 1 || candidates[0].Index != 1 {
		t.Errorf("candidates = %v, want only the populated row", candidates)
	}
}
