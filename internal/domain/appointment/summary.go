package appointment

import (
	"fmt"
	"strings"
)

// Summary is the human readable description of a booking shown to the
// customer before confirmation and sent to both parties afterwards.
type Summary struct {
	Name    string
	Salon   string
	Barber  string
	Service string
	Date    string
	Time    string
	Phone   string
}

func (s Summary) Text() string {
	var b strings.Builder
	b.WriteString("🆕 New booking:\n")
	fmt.Fprintf(&b, "👤 Name: %s\n", s.Name)
	fmt.Fprintf(&b, "🏠 Salon: %s\n", s.Salon)
	fmt.Fprintf(&b, "💈 Barber: %s\n", s.Barber)
	fmt.Fprintf(&b, "💇‍♂️ Service: %s\n", s.Service)
	fmt.Fprintf(&b, "🌞 Day: %s\n", s.Date)
	fmt.Fprintf(&b, "⏰ Time: %s\n", s.Time)
	fmt.Fprintf(&b, "📞 Phone: %s", s.Phone)
	return b.String()
}
