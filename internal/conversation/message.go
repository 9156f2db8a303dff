package conversation

// Input is one incoming update from a user.
type Input struct {
	UserID   int64
	ChatID   int64
	Username string
	FullName string

	Text        string
	PhotoFileID string

	// Callback carries inline button data; MessageID is the message the
	// button belongs to.
	Callback  string
	MessageID int
}

type Button struct {
	Text string
	Data string
}

type Location struct {
	Latitude  float64
	Longitude float64
}

// Reply is one outgoing action. Alert replies answer the callback that
// triggered them instead of sending a message.
type Reply struct {
	Text string

	Keyboard       [][]string
	Inline         [][]Button
	RemoveKeyboard bool

	Location *Location

	Alert bool

	// DeleteMessageID removes a previously sent message when non-zero.
	DeleteMessageID int
}

const (
	CommandStart = "/start"

	ActionConfirmBooking = "confirm_booking"
	ActionCancelBooking  = "cancel_booking"

	BtnBook       = "Book a haircut 💇"
	BtnSalons     = "Salons 💇🏻"
	BtnBack       = "Back"
	BtnBroadcast  = "Broadcast 🔊"
	BtnAdminPanel = "Admin panel"
	BtnConfirm    = "Confirm ✅"
	BtnCancel     = "Cancel ❌"
)

const keyboardColumns = 2

// grid lays labels out in rows of keyboardColumns, optionally closing with
// a Back row.
func grid(labels []string, withBack bool) [][]string {
	rows := make([][]string, 0, len(labels)/keyboardColumns+2)
	for i := 0; i < len(labels); i += keyboardColumns {
		end := i + keyboardColumns
		if end > len(labels) {
			end = len(labels)
		}
		rows = append(rows, append([]string(nil), labels[i:end]...))
	}
	if withBack {
		rows = append(rows, []string{BtnBack})
	}
	return rows
}

func mainMenu() [][]string {
	return [][]string{{BtnBook, BtnSalons}}
}

func adminMenu() [][]string {
	return [][]string{{BtnBook, BtnSalons}, {BtnBroadcast, BtnAdminPanel}}
}

func confirmButtons() [][]Button {
	return [][]Button{{
		{Text: BtnConfirm, Data: ActionConfirmBooking},
		{Text: BtnCancel, Data: ActionCancelBooking},
	}}
}

func text(s string) Reply {
	return Reply{Text: s}
}

func withKeyboard(s string, kb [][]string) Reply {
	return Reply{Text: s, Keyboard: kb}
}

func alert(s string) Reply {
	return Reply{Text: s, Alert: true}
}
