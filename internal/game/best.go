package game

import (
	"fmt"
	"strconv"
	"strings"
)

// BestScoreKey is the key the best score is stored under.
const BestScoreKey = "score"

// KV is the string key/value store the best score lives in.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MaxKV is a KV that can raise a numeric value atomically. RecordLoss
// prefers it so that concurrent losses never lower the stored best.
type MaxKV interface {
	KV
	SetIfGreater(key string, value int) (written bool, err error)
}

// LoadBest returns the stored best score. A missing or unparsable value
// counts as zero.
func LoadBest(kv KV) (int, error) {
	raw, ok, err := kv.Get(BestScoreKey)
	if err != nil {
		return 0, fmt.Errorf("load best score: %w", err)
	}
	if !ok {
		return 0, nil
	}
	best, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || best < 0 {
		return 0, nil
	}
	return best, nil
}

// RecordLoss compares a finished run's score with the stored best and
// stores it only when it is strictly greater. It returns the best score
// after the update and whether this run set it.
func RecordLoss(kv KV, score int) (best int, isNew bool, err error) {
	if m, ok := kv.(MaxKV); ok && score > 0 {
		written, err := m.SetIfGreater(BestScoreKey, score)
		if err != nil {
			return 0, false, fmt.Errorf("store best score: %w", err)
		}
		if written {
			return score, true, nil
		}
		best, err = LoadBest(kv)
		return best, false, err
	}

	best, err = LoadBest(kv)
	if err != nil {
		return 0, false, err
	}
	if score <= best {
		return best, false, nil
	}
	if err := kv.Set(BestScoreKey, strconv.Itoa(score)); err != nil {
		return best, false, fmt.Errorf("store best score: %w", err)
	}
	return score, true, nil
}
