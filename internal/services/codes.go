package services

import (
	"math/rand"
	"sync"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodePool holds the pre-generated registration codes. Codes are issued
// by popping from the end; the pool is never replenished, so a restart
// regenerates it from scratch.
type CodePool struct {
	mu    sync.Mutex
	codes []string
}

// NewCodePool generates count distinct codes of the form AY????RA where
// each ? is drawn from the 36-character alphanumeric alphabet. Collisions
// are discarded until the target count is reached.
func NewCodePool(count int) *CodePool {
	seen := make(map[string]struct{}, count)
	codes := make([]string, 0, count)
	for len(codes) < count {
		code := "AY" + randomString(4) + "RA"
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return &CodePool{codes: codes}
}

// Take removes and returns the last code in the pool. The second return
// value is false when the pool is exhausted.
func (p *CodePool) Take() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.codes) == 0 {
		return "", false
	}
	code := p.codes[len(p.codes)-1]
	p.codes = p.codes[:len(p.codes)-1]
	return code, true
}

func (p *CodePool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.codes)
}

func randomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}
