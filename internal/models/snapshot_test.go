package models

import "testing"

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Snapshot
		wantErr bool
	}{
		{
			name: "valid",
			build: func() *Snapshot {
				s := NewSnapshot("/api/topics.json", "#tmpl-topics", "html", 2, "<li>a</li>")
				s.SetID("id-1")
				return s
			},
		},
		{
			name:    "missing id",
			build:   func() *Snapshot { return NewSnapshot("/api/topics.json", "#tmpl-topics", "html", 0, "") },
			wantErr: true,
		},
		{
			name: "missing index path",
			build: func() *Snapshot {
				s := NewSnapshot(" ", "#tmpl-topics", "html", 0, "")
				s.SetID("id-2")
				return s
			},
			wantErr: true,
		},
		{
			name: "unknown format",
			build: func() *Snapshot {
				s := NewSnapshot("/api/topics.json", "", "pdf", 0, "")
				s.SetID("id-3")
				return s
			},
			wantErr: true,
		},
		{
			name: "negative count",
			build: func() *Snapshot {
				s := NewSnapshot("/api/topics.json", "", "json", -1, "")
				s.SetID("id-4")
				return s
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotSetBody(t *testing.T) {
	s := NewSnapshot("/api/brokers.json", "#tmpl-brokers", "html", 0, "")
	s.SetBody("<p>x</p>", 3)
	if s.Body() != "<p>x</p>" || s.ItemCount() != 3 {
		t.Errorf("SetBody() did not update body/count: %q %d", s.Body(), s.ItemCount())
	}
	if !s.CreatedAt().Equal(s.UpdatedAt()) {
		t.Error("new snapshot should have equal created/updated timestamps")
	}
}
