package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "linked_stack", SnakeCase("LinkedStack"))
	assert.Equal(t, "point", SnakeCase("Point"))
	assert.Equal(t, "http2_frame", SnakeCase("Http2Frame"))
	assert.Equal(t, "", SnakeCase(""))
}

func TestExportedUnexported(t *testing.T) {
	assert.Equal(t, "Items", Exported("items"))
	assert.Equal(t, "items", Unexported("Items"))
	assert.Equal(t, "", Exported(""))
}
