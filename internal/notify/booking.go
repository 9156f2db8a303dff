package notify

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
)

const BookingConfirmedText = "Your booking is confirmed!"

// BookingNotifier tells the barber and the customer about a new booking.
// Every delivery is attempted; the joined error lists the ones that failed.
type BookingNotifier struct {
	sender Sender
	sms    SMSSender
}

// NewBookingNotifier builds a notifier. sms may be nil.
func NewBookingNotifier(sender Sender, sms SMSSender) *BookingNotifier {
	return &BookingNotifier{sender: sender, sms: sms}
}

func (n *BookingNotifier) NotifyBooking(ctx context.Context, notice domain.BookingNotice) error {
	text := notice.Summary.Text()
	var errs []error

	if notice.BarberChatID != 0 {
		if err := n.sender.SendText(ctx, notice.BarberChatID, text); err != nil {
			errs = append(errs, fmt.Errorf("notify barber: %w", err))
		}
	}

	if notice.CustomerChatID != 0 {
		if err := n.sender.SendText(ctx, notice.CustomerChatID, text); err != nil {
			errs = append(errs, fmt.Errorf("notify customer: %w", err))
		} else if err := n.sender.SendText(ctx, notice.CustomerChatID, BookingConfirmedText); err != nil {
			errs = append(errs, fmt.Errorf("confirm customer: %w", err))
		}
	}

	if n.sms != nil && notice.CustomerPhone != "" {
		if err := n.sms.SendSMS(ctx, notice.CustomerPhone, text); err != nil {
			errs = append(errs, fmt.Errorf("sms customer: %w", err))
		}
	}

	return errors.Join(errs...)
}
