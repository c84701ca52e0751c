package game

import (
	"errors"
	"strconv"
	"testing"
)

type memKV struct {
	data   map[string]string
	getErr error
	sets   int
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.sets++
	m.data[key] = value
	return nil
}

func TestRecordLoss(t *testing.T) {
	tests := []struct {
		name     string
		stored   *string
		score    int
		wantBest int
		wantNew  bool
		wantSets int
	}{
		{"first run", nil, 5, 5, true, 1},
		{"beats best", ptr("3"), 5, 5, true, 1},
		{"below best", ptr("7"), 5, 7, false, 0},
		{"ties best", ptr("7"), 7, 7, false, 0},
		{"zero on empty store", nil, 0, 0, false, 0},
		{"garbage counts as zero", ptr("abc"), 2, 2, true, 1},
		{"padded value", ptr(" 9 "), 4, 9, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := newMemKV()
			if tc.stored != nil {
				kv.data[BestScoreKey] = *tc.stored
			}

			best, isNew, err := RecordLoss(kv, tc.score)
			if err != nil {
				t.Fatalf("RecordLoss: %v", err)
			}
			if best != tc.wantBest || isNew != tc.wantNew {
				t.Errorf("RecordLoss(%d) = %d, %v; expected %d, %v", tc.score, best, isNew, tc.wantBest, tc.wantNew)
			}
			if kv.sets != tc.wantSets {
				t.Errorf("Set called %d times, expected %d", kv.sets, tc.wantSets)
			}
			if tc.wantNew && kv.data[BestScoreKey] != strconv.Itoa(tc.score) {
				t.Errorf("stored %q, expected %q", kv.data[BestScoreKey], strconv.Itoa(tc.score))
			}
		})
	}
}

func TestRecordLossGetError(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")

	if _, _, err := RecordLoss(kv, 3); !errors.Is(err, kv.getErr) {
		t.Errorf("RecordLoss error = %v, expected wrapped get error", err)
	}
	if kv.sets != 0 {
		t.Error("nothing should be stored when the read fails")
	}
}

func ptr(s string) *string { return &s }
