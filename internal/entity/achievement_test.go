package entity

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxCompletionsColumnHasNoDefault(t *testing.T) {
	field, ok := reflect.TypeOf(Achievement{}).FieldByName("MaxCompletions")
	require.True(t, ok)

	// Zero means unlimited for repeatable definitions. With a column
	// default, gorm drops the zero value on insert and the database would
	// persist the default instead, capping the definition at one grant.
	assert.NotContains(t, field.Tag.Get("gorm"), "default")
}
