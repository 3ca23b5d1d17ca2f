// internal/words/daily.go
//
// The daily word: every round started on the same UTC day gets the same word.
//
// The word index is HMAC-SHA256(salt, "endgame/daily/" + YYYY-MM-DD) reduced
// modulo the vocabulary size, so the sequence of daily words can't be guessed
// without the salt but stays stable across restarts.
//
// Environment variables (read by the callers):
//   DAILY_SALT=some-secret   (changing it reshuffles every future day)

package words

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

const dailyDomain = "endgame/daily/"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailySource yields the same word for every round started on the same UTC day.
type DailySource struct {
	vocab *Vocabulary
	salt  []byte
	now   func() time.Time
}

// NewDailySource returns a DailySource over v keyed by salt.
func NewDailySource(v *Vocabulary, salt string) *DailySource {
	return &DailySource{vocab: v, salt: []byte(salt), now: time.Now}
}

// index maps a date key onto the vocabulary.
func (s *DailySource) index(key string) int {
	n := s.vocab.Len()
	if n == 0 {
		return 0
	}
	mac := hmac.New(sha256.New, s.salt)
	mac.Write([]byte(dailyDomain + key))
	return int(binary.BigEndian.Uint64(mac.Sum(nil)) % uint64(n))
}

// PickWord returns today's word.
func (s *DailySource) PickWord() string { return s.WordOn(s.Date()) }

// WordOn returns the word for the day named by key (YYYY-MM-DD).
func (s *DailySource) WordOn(key string) string { return s.vocab.At(s.index(key)) }

// Date returns today's date key.
func (s *DailySource) Date() string { return DateKey(s.now()) }
