package models

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stay dates must round-trip as the exact YYYY-MM-DD strings the API
// accepts. A DATE column would come back from the driver as a time.Time
// under parseTime=True and re-render as RFC3339 text, so the columns have
// to stay textual.
func TestBookingDateColumnsAreTextual(t *testing.T) {
	typ := reflect.TypeOf(Booking{})
	for _, name := range []string{"CheckIn", "CheckOut"} {
		field, ok := typ.FieldByName(name)
		require.True(t, ok, name)
		tag := field.Tag.Get("gorm")
		assert.Contains(t, tag, "type:varchar", name)
		assert.NotContains(t, tag, "type:date", name)
	}
}
