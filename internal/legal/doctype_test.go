package legal

import "testing"

func TestDetectDocType(t *testing.T) {
	tests := []struct {
		path string
		want DocType
	}{
		{"corpus/नेपालको संविधान.txt", DocTypeConstitution},
		{"corpus/Constitution_of_Nepal_2072.md", DocTypeConstitution},
		{"corpus/मुलुकी देवानी संहिता.txt", DocTypeMulukiAct},
		{"corpus/muluki_criminal_code.txt", DocTypeMulukiAct},
		{"corpus/श्रम नियमावली.txt", DocTypeRule},
		{"corpus/rules/labour.txt", DocTypeRule},
		{"corpus/labour_act_2074.txt", DocTypeAct},
	}

	for _, tt := range tests {
		if got := DetectDocType(tt.path); got != tt.want {
			t.Errorf("DetectDocType(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestDocType_Priority(t *testing.T) {
	tests := []struct {
		docType DocType
		want    int
	}{
		{DocTypeConstitution, 1},
		{DocTypeMulukiAct, 2},
		{DocTypeAct, 3},
		{DocTypeRule, 4},
		{DocType("unknown"), 4},
	}
	for _, tt := range tests {
		if got := tt.docType.Priority(); got != tt.want {
			t.Errorf("%s.Priority() = %d, want %d", tt.docType, got, tt.want)
		}
	}
}

func TestParseDocType(t *testing.T) {
	got, err := ParseDocType(" Muluki_Act ")
	if err != nil {
		t.Fatalf("ParseDocType() error = %v", err)
	}
	if got != DocTypeMulukiAct {
		t.Errorf("ParseDocType() = %s", got)
	}

	if _, err := ParseDocType("ordinance"); err == nil {
		t.Error("expected error for unknown doc type")
	}
}
