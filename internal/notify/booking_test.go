package notify

import (
	"context"
	"errors"
	"testing"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
)

type smsRecorder struct {
	to []string
}

func (s *smsRecorder) SendSMS(_ context.Context, to, _ string) error {
	s.to = append(s.to, to)
	return nil
}

func notice() domain.BookingNotice {
	return domain.BookingNotice{
		BarberChatID:   7001,
		CustomerChatID: 100,
		CustomerPhone:  "+998901234567",
		Summary:        domain.Summary{Name: "Ali", Barber: "Jasur", Time: "12:00"},
	}
}

func TestBookingNotifierMessagesBothParties(t *testing.T) {
	sender := &stubSender{}
	sms := &smsRecorder{}

	if err := NewBookingNotifier(sender, sms).NotifyBooking(context.Background(), notice()); err != nil {
		t.Fatal(err)
	}

	if len(sender.texts[7001]) != 1 {
		t.Fatalf("barber should get the summary once, got %v", sender.texts[7001])
	}
	customer := sender.texts[100]
	if len(customer) != 2 || customer[1] != BookingConfirmedText {
		t.Fatalf("customer should get the summary and the confirmation, got %v", customer)
	}
	if len(sms.to) != 1 || sms.to[0] != "+998901234567" {
		t.Fatalf("unexpected sms recipients %v", sms.to)
	}
}

func TestBookingNotifierSkipsBarberWithoutChat(t *testing.T) {
	sender := &stubSender{}
	n := notice()
	n.BarberChatID = 0

	if err := NewBookingNotifier(sender, nil).NotifyBooking(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	if len(sender.texts) != 1 {
		t.Fatalf("only the customer should be messaged, got %v", sender.texts)
	}
}

func TestBookingNotifierReportsFailuresButContinues(t *testing.T) {
	sender := &stubSender{sendErr: map[int64]error{7001: ErrRecipientBlocked}}

	err := NewBookingNotifier(sender, nil).NotifyBooking(context.Background(), notice())
	if !errors.Is(err, ErrRecipientBlocked) {
		t.Fatalf("expected the barber failure to be reported, got %v", err)
	}
	if len(sender.texts[100]) != 2 {
		t.Fatal("customer must still be notified when the barber is unreachable")
	}
}
