package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFoldErrors(t *testing.T) {
	t.Parallel()

	e1 := fmt.Errorf("uart close")
	e2 := fmt.Errorf("gpio close")
	assert.NoError(t, FoldErrors(nil))
	assert.NoError(t, FoldErrors([]error{nil, nil}))
	assert.Equal(t, e1, FoldErrors([]error{nil, e1}))
	assert.Equal(t, "uart close\ngpio close", FoldErrors([]error{e1, nil, e2}).Error())
}

func TestDurationDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3*time.Second, IntSecondDefault(0, 3*time.Second))
	assert.Equal(t, 5*time.Second, IntSecondDefault(5, 3*time.Second))
	assert.Equal(t, time.Second, IntMillisecondDefault(-1, time.Second))
	assert.Equal(t, 250*time.Millisecond, IntMillisecondDefault(250, time.Second))
}
