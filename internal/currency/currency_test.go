package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "€12.50", FormatPrice(12.5))
	assert.Equal(t, "€0.00", FormatPrice(0))
	assert.Equal(t, "€1234.57", FormatPrice(1234.567))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "3.0", Format(3, false, 1))
	assert.Equal(t, "€3", Format(3, true, 0))
	assert.Equal(t, "€3.00", Format(3, true, -1))
	assert.Equal(t, "€", Symbol())
	assert.Equal(t, "EUR", Code())
}
