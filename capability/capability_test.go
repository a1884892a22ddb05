package capability

import (
	"runtime"
	"testing"
)

func TestRecord_Accelerated(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"none", Record{Cores: 8}, false},
		{"sve only", Record{Cores: 8, SVE: true}, false},
		{"i8mm only", Record{Cores: 8, I8MM: true}, false},
		{"both", Record{Cores: 8, SVE: true, I8MM: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Accelerated(); got != tt.want {
				t.Errorf("Accelerated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecord_Workers(t *testing.T) {
	if got := (Record{}).Workers(); got != 1 {
		t.Errorf("Workers() = %d, want 1 for zero cores", got)
	}
	if got := (Record{Cores: 6}).Workers(); got != 6 {
		t.Errorf("Workers() = %d, want 6", got)
	}
}

func TestDetect(t *testing.T) {
	rec := Detect("")

	if rec.Cores != runtime.NumCPU() {
		t.Errorf("Cores = %d, want %d", rec.Cores, runtime.NumCPU())
	}
}
