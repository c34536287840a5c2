package wanotify

import (
	"testing"

	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	vars := TemplateVars{
		Name:         "Budi",
		Code:         "LND-ABC123",
		StatusLabel:  "Sedang Dicuci",
		PaymentLabel: "Lunas",
		Nominal:      "Rp 35.000",
	}

	out := RenderTemplate("Halo {{nama}}, pesanan {{kode}} kini {{status}}. Bayar: {{status_bayar}} ({{nominal}})", vars)
	assert.Equal(t, "Halo Budi, pesanan LND-ABC123 kini Sedang Dicuci. Bayar: Lunas (Rp 35.000)", out)
}

func TestRenderTemplateFallbacks(t *testing.T) {
	out := RenderTemplate("{{nama}}/{{kode}}/{{status}}/{{status_bayar}}/{{nominal}}", TemplateVars{})
	assert.Equal(t, "Pelanggan/-/-/-/-", out)
}

func TestRenderTemplateIgnoresUnknownPlaceholders(t *testing.T) {
	out := RenderTemplate("Halo {{nama}}, {{alamat}}", TemplateVars{Name: "Budi"})
	assert.Equal(t, "Halo Budi, {{alamat}}", out)
}

func TestDefaultTemplateCoversEveryStage(t *testing.T) {
	for _, status := range []types.OrderStatus{
		types.OrderStatusReceived,
		types.OrderStatusWashing,
		types.OrderStatusReady,
		types.OrderStatusPickedUp,
	} {
		tpl := DefaultTemplate(status)
		assert.NotEmpty(t, tpl)
		assert.Contains(t, tpl, "{{nama}}")
		assert.Contains(t, tpl, "{{kode}}")
	}

	// Unknown statuses fall back to the received-stage template.
	assert.Equal(t, DefaultTemplate(types.OrderStatusReceived), DefaultTemplate(types.OrderStatus("antah")))
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{5000, "Rp 5.000"},
		{35000, "Rp 35.000"},
		{1250000, "Rp 1.250.000"},
		{-7500, "-Rp 7.500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatRupiah(tt.amount))
	}
}
