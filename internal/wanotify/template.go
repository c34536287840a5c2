// Package wanotify implements the outbound WhatsApp notification
// collaborator: per-tenant message templates with built-in defaults, phone
// normalization and a fire-and-forget HTTP gateway client.
package wanotify

import (
	"strings"

	"github.com/lordbyaku/lbpos/internal/types"
)

// defaultTemplates are the built-in per-status message templates used when a
// tenant has not customized its own. Keys are the order status values.
var defaultTemplates = map[types.OrderStatus]string{
	types.OrderStatusReceived: "Halo *{{nama}}*,\n\nPesanan laundry Anda telah kami terima! 📥\n\n📦 *Kode:* {{kode}}\n🔄 *Status:* {{status}}\n\nTerima kasih telah menggunakan layanan kami! 🧺",
	types.OrderStatusWashing:  "Halo *{{nama}}*,\n\nPesanan laundry Anda sedang dalam proses pencucian. 🫧\n\n📦 *Kode:* {{kode}}\n🔄 *Status:* {{status}}\n\nTerima kasih! 🧺",
	types.OrderStatusReady:    "Halo *{{nama}}*,\n\nPesanan laundry Anda sudah selesai dan siap diambil! 🎉\n\n📦 *Kode:* {{kode}}\n🔄 *Status:* {{status}}\n\nTerima kasih! 🧺",
	types.OrderStatusPickedUp: "Halo *{{nama}}*,\n\nTerima kasih sudah mengambil laundry Anda. Sampai jumpa lagi! 👋\n\n📦 *Kode:* {{kode}}\n🔄 *Status:* {{status}}",
}

// DefaultTemplate returns the built-in template for a status. Unknown
// statuses fall back to the received-stage template.
func DefaultTemplate(status types.OrderStatus) string {
	if t, ok := defaultTemplates[status]; ok {
		return t
	}
	return defaultTemplates[types.OrderStatusReceived]
}

// TemplateVars are the values substituted into a message template. The
// placeholder grammar ({{nama}} etc.) is fixed: tenants already store
// templates in this syntax.
type TemplateVars struct {
	Name         string
	Code         string
	StatusLabel  string
	PaymentLabel string
	Nominal      string
}

// RenderTemplate substitutes the placeholders into the template. Empty
// values render the same fallbacks the counter UI shows.
func RenderTemplate(template string, vars TemplateVars) string {
	name := vars.Name
	if name == "" {
		name = "Pelanggan"
	}
	r := strings.NewReplacer(
		"{{nama}}", name,
		"{{kode}}", orDash(vars.Code),
		"{{status}}", orDash(vars.StatusLabel),
		"{{status_bayar}}", orDash(vars.PaymentLabel),
		"{{nominal}}", orDash(vars.Nominal),
	)
	return r.Replace(template)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// FormatRupiah renders an IDR amount with Indonesian thousand separators,
// e.g. "Rp 35.000".
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := []byte(formatInt(amount))
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(d)
	}
	return b.String()
}

func formatInt(v int64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
