package dataset

import "testing"

func TestValidateJoinColumnClean(t *testing.T) {
	table := &Table{
		Headers: []string{"Name"},
		Rows:    []Row{{"Name": "a.jpg"}, {"Name": "b.jpg"}},
	}
	v := ValidateJoinColumn(table, "Name")
	if !v.Valid || len(v.Issues) != 0 {
		t.Errorf("expected clean validation, got %+v", v)
	}
	if v.TotalRows != 2 {
		t.Errorf("total rows = %d, want 2", v.TotalRows)
	}
}

func TestValidateJoinColumnMissingAndDuplicate(t *testing.T) {
	table := &Table{
		Headers: []string{"Name"},
		Rows: []Row{
			{"Name": "a.jpg"},
			{"Name": ""},
			{"Name": "a.jpg"},
			{"Name": "   "},
		},
	}
	v := ValidateJoinColumn(table, "Name")
	if v.Valid {
		t.Error("expected invalid")
	}
	if v.MissingCount != 2 {
		t.Errorf("missing = %d, want 2", v.MissingCount)
	}
	if v.DuplicateCount != 1 {
		t.Errorf("duplicates = %d, want 1", v.DuplicateCount)
	}

	var dup *Issue
	for i := range v.Issues {
		if v.Issues[i].Kind == IssueDuplicate {
			dup = &v.Issues[i]
		}
	}
	if dup == nil {
		t.Fatal("no duplicate issue")
	}
	if dup.Value != "a.jpg" || len(dup.Rows) != 2 || dup.Rows[0] != 1 || dup.Rows[1] != 3 {
		t.Errorf("duplicate issue = %+v", dup)
	}
}

func TestValidateJoinColumnMissingColumn(t *testing.T) {
	table := &Table{Headers: []string{"Scene"}, Rows: []Row{{"Scene": "1"}}}
	v := ValidateJoinColumn(table, "Name")
	if !v.Valid {
		t.Error("missing column should validate as clean, not error")
	}
}

func TestDetectJoinKey(t *testing.T) {
	priority := []string{"Name", "Filename", "Clip Name"}
	tests := []struct {
		name    string
		headers []string
		want    string
	}{
		{"first priority present", []string{"Scene", "Name", "Take"}, "Name"},
		{"second priority", []string{"Filename", "Scene"}, "Filename"},
		{"no priority match", []string{"Scene", "Take"}, "Scene"},
		{"no headers", nil, "filename"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectJoinKey(tt.headers, priority); got != tt.want {
				t.Errorf("DetectJoinKey = %q, want %q", got, tt.want)
			}
		})
	}
}
