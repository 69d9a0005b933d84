package tickets

import (
	"testing"

	"github.com/angelmondragon/kitchenboard/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAutoTicketText(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(testRequest(enums.TriggerAuto, true))
	require.NoError(t, err)

	assert.Contains(t, out.Text, "Trattoria Uno")
	assert.Contains(t, out.Text, "KITCHEN TICKET - AUTO-PRINTED")
	assert.Contains(t, out.Text, "AUTO-STATUS ACTIVE")
	assert.Contains(t, out.Text, "Table: 5")
	assert.Contains(t, out.Text, "Customer: Ana (555)")
	assert.Contains(t, out.Text, "2x Margherita [large] @ 9.50 = 19.00")
	assert.Contains(t, out.Text, "note: no basil")
	assert.Contains(t, out.Text, "1x Tiramisu @ 4.25 = 4.25")
	assert.Contains(t, out.Text, "Subtotal: 23.25")
	assert.Contains(t, out.Text, "Printed: 2026-10-16 12:03:00 UTC")
}

func TestRenderManualTicketWithoutAutoStatus(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(testRequest(enums.TriggerManual, false))
	require.NoError(t, err)

	assert.Contains(t, out.Text, "MANUAL PRINT")
	assert.NotContains(t, out.Text, "AUTO-PRINTED")
	assert.NotContains(t, out.Text, "AUTO-STATUS ACTIVE")
	assert.Contains(t, out.HTML, "MANUAL PRINT")
}

func TestRenderHTMLEscapesCustomerInput(t *testing.T) {
	r := newTestRenderer(t)
	req := testRequest(enums.TriggerAuto, false)
	req.Group.CustomerName = "<script>x</script>"

	out, err := r.Render(req)
	require.NoError(t, err)

	assert.NotContains(t, out.HTML, "<script>x</script>")
	assert.Contains(t, out.HTML, "&lt;script&gt;")
	assert.Contains(t, out.HTML, "Subtotal: 23.25")
}

func TestDocumentFallsBackForMissingTable(t *testing.T) {
	r := newTestRenderer(t)
	req := testRequest(enums.TriggerAuto, false)
	req.Group.TableNumber = ""
	req.Group.RestaurantID = "9"

	doc := r.Document(req)

	assert.Equal(t, "-", doc.Table)
	assert.Equal(t, "Restaurant #9", doc.Restaurant)
	assert.Len(t, doc.Lines, 2)
}

func TestNewRendererRequiresNames(t *testing.T) {
	_, err := NewRenderer(nil)
	require.Error(t, err)
}
