// Package core holds the template helpers shared by every console page.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
)

// DateTimeLayout is the display format for timestamps in tables.
const DateTimeLayout = "Jan 2, 2006 3:04 PM"

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns the helpers available to every template.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": FriendlyTime,
		"timeTag":      timeTag,
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"formatNumber": FormatNumber,
		"formatMoney":  FormatMoney,
		"maskPhone":    MaskPhone,
		"phone":        Phone,
		"roleName":     roleName,
		"statusClass":  statusClass,
		"truncateText": TruncateText,
		"yesNo":        yesNo,
	}

	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - output of our own html/template set, already escaped.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return funcs
}

func asTime(ts any) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

// FriendlyTime formats a time.Time or *time.Time for tables; zero renders as "".
func FriendlyTime(ts any) string {
	t0 := asTime(ts)
	if t0.IsZero() {
		return ""
	}
	return t0.Local().Format(DateTimeLayout)
}

func timeTag(ts any) template.HTML {
	t0 := asTime(ts)
	if t0.IsZero() {
		return ""
	}
	// #nosec G203 - built from formatted times only.
	return template.HTML(fmt.Sprintf(
		`<time datetime="%s" title="%s">%s</time>`,
		t0.UTC().Format(time.RFC3339),
		template.HTMLEscapeString(t0.Local().Format(time.RFC1123)),
		template.HTMLEscapeString(FriendlyTime(t0)),
	))
}

// FormatNumber renders integers and whole floats with thousands separators.
// Other values fall back to fmt.
func FormatNumber(v any) string {
	switch x := v.(type) {
	case int:
		return groupDigits(int64(x))
	case int32:
		return groupDigits(int64(x))
	case int64:
		return groupDigits(x)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return groupDigits(int64(x))
		}
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return fmt.Sprint(v)
	}
}

// FormatMoney renders a rupee amount with two decimals.
func FormatMoney(amount float64) string {
	whole := math.Trunc(amount)
	paise := int64(math.Round(math.Abs(amount-whole) * 100))
	if paise == 100 {
		whole += math.Copysign(1, amount)
		paise = 0
	}
	return fmt.Sprintf("₹%s.%02d", groupDigits(int64(whole)), paise)
}

func groupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var b strings.Builder
		head := len(s) % 3
		if head == 0 {
			head = 3
		}
		b.WriteString(s[:head])
		for i := head; i < len(s); i += 3 {
			b.WriteByte(',')
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// MaskPhone keeps the first two and last two digits of a phone number.
func MaskPhone(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	r := []rune(p)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:2]) + strings.Repeat("*", len(r)-4) + string(r[len(r)-2:])
}

// Phone shows p as-is when visible and masked otherwise.
func Phone(p string, visible bool) string {
	if visible {
		return p
	}
	return MaskPhone(p)
}

func roleName(level any) string {
	switch v := level.(type) {
	case domainauth.RoleLevel:
		return v.String()
	case int:
		return domainauth.RoleLevel(v).String()
	default:
		return fmt.Sprint(level)
	}
}

func statusClass(status any) string {
	switch strings.ToLower(fmt.Sprint(status)) {
	case "open", "pending":
		return "badge-info"
	case "assigned", "in_transit":
		return "badge-warning"
	case "delivered", "accepted", "true":
		return "badge-success"
	case "cancelled", "rejected":
		return "badge-danger"
	default:
		return "badge-light"
	}
}

// TruncateText shortens s to maxLen runes, ending with an ellipsis when cut.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen > 1 {
		return string(runes[:maxLen-1]) + "…"
	}
	return string(runes[:1])
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
