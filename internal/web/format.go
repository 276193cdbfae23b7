package web

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"mini-admin/internal/model"
)

var funcs = template.FuncMap{
	"fieldErrors": func(s model.FormState, field string) []string { return s.Errors[field] },
	"date":        formatDate,
	"price":       formatPrice,
	"deref":       deref,
	"roleLabel":   roleLabel,
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006/01/02")
}

// formatPrice renders a price in yen with thousands separators. Fractions are
// only shown when present.
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("¥")
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if frac != "00" {
		b.WriteString("." + frac)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func roleLabel(role string) string {
	switch role {
	case model.RoleAdmin:
		return "管理者"
	case model.RoleUser:
		return "一般ユーザー"
	}
	return role
}
