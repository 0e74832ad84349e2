package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestStart_DrawsAndClears(t *testing.T) {
	var out syncBuffer
	stop := Start(&out, "Generating")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Generating")
	}, time.Second, 10*time.Millisecond)

	stop()
	stop()

	s := out.String()
	assert.Contains(t, s, frames[0]+" Generating")
	assert.True(t, strings.HasSuffix(s, "\r"+strings.Repeat(" ", len("Generating")+2)+"\r"))
}

func TestStartIfTerminal_NonTerminalIsSilent(t *testing.T) {
	var out bytes.Buffer
	stop := StartIfTerminal(&out, "Generating")
	time.Sleep(3 * Interval)
	stop()
	assert.Empty(t, out.String())
}
