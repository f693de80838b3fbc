package inspect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"routekit/pkg/shared"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUndefined, kindOf(nil))
	assert.Equal(t, KindNull, kindOf(shared.Null))
	assert.Equal(t, KindFunction, kindOf(func() {}))
	assert.Equal(t, KindString, kindOf("x"))
	assert.Equal(t, KindNumber, kindOf(1.5))
	assert.Equal(t, KindBoolean, kindOf(true))
	assert.Equal(t, KindArray, kindOf([]any{}))
	assert.Equal(t, KindObject, kindOf(map[string]any{}))
	assert.Equal(t, KindObject, kindOf(time.Time{}))
	assert.Equal(t, KindOther, kindOf(complex(1, 2)))
}
